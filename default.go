package inject

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

var defaultLogger atomic.Pointer[zerolog.Logger]

func init() {
	nop := zerolog.Nop()
	defaultLogger.Store(&nop)
}

// SetLogger sets the logger used by the package-level functions.
// This is similar to slog.SetDefault.
//
// Resolution decisions are logged at debug level. The default logger discards everything.
func SetLogger(l zerolog.Logger) {
	defaultLogger.Store(&l)
}

// Logger returns the current package logger.
func Logger() *zerolog.Logger {
	return defaultLogger.Load()
}
