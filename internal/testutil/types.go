package testutil

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/junioryono/inject"
)

// Common test errors
var (
	ErrTest        = errors.New("test error")
	ErrConstructor = errors.New("constructor error")
)

// Database is a concrete dependency.
type Database struct {
	ID  string
	DSN string
}

// NewDatabase creates a Database with a fresh ID.
func NewDatabase() *Database {
	return &Database{
		ID:  uuid.NewString(),
		DSN: "memory://test",
	}
}

// Cache is an interface dependency.
type Cache interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// MemoryCache implements Cache.
type MemoryCache struct {
	ID   string
	mu   sync.Mutex
	data map[string]string
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		ID:   uuid.NewString(),
		data: make(map[string]string),
	}
}

func (c *MemoryCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok
}

func (c *MemoryCache) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
}

// Logger is a second interface dependency, used by reference.
type Logger interface {
	Log(msg string)
}

// WidgetParams is the parameter struct of NewWidget.
type WidgetParams struct {
	inject.Params

	DB      *Database `inject:"db"`
	Cache   Cache     `inject:"cache"`
	Timeout int       `inject:"timeout" default:"30"`
}

// Widget depends on a Database and a Cache.
type Widget struct {
	ID      string
	DB      *Database
	Cache   Cache
	Timeout int
}

// NewWidget creates a Widget.
func NewWidget(p WidgetParams) *Widget {
	return &Widget{
		ID:      uuid.NewString(),
		DB:      p.DB,
		Cache:   p.Cache,
		Timeout: p.Timeout,
	}
}

// GadgetParams has a variadic-keyword and a defaulted parameter besides a required one.
type GadgetParams struct {
	DB      *Database      `inject:"db"`
	Retries int            `inject:"retries" default:"3"`
	Label   string         `inject:"label,optional"`
	Extra   map[string]any `inject:"extra,rest"`
}

// Gadget records what its constructor received.
type Gadget struct {
	DB      *Database
	Retries int
	Label   string
	Extra   map[string]any
	Args    []string
}

// NewGadget creates a Gadget.
func NewGadget(p GadgetParams, args ...string) *Gadget {
	return &Gadget{
		DB:      p.DB,
		Retries: p.Retries,
		Label:   p.Label,
		Extra:   p.Extra,
		Args:    args,
	}
}

// Plain has no constructor of its own.
type Plain struct {
	Name string
}
