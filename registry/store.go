package registry

import (
	"reflect"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rs/zerolog"
)

// Option configures a [Store] or [Dig] registry.
type Option interface {
	apply(*options)
}

type options struct {
	logger zerolog.Logger
}

type optionFunc func(*options)

func (f optionFunc) apply(opts *options) {
	f(opts)
}

// WithLogger logs registrations to l at debug level.
func WithLogger(l zerolog.Logger) Option {
	return optionFunc(func(opts *options) {
		opts.logger = l
	})
}

func newOptions(opts []Option) options {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&o)
		}
	}
	return o
}

type entry struct {
	t        reflect.Type
	instance any
	name     string
}

// Store is an in-memory service locator keyed by type and by name.
//
// It is safe for concurrent use. Registering a type or name again replaces
// the previous instance.
type Store struct {
	id     string
	byType *xsync.MapOf[reflect.Type, entry]
	byName *xsync.MapOf[string, entry]
	log    zerolog.Logger
}

// New creates an empty [Store].
func New(opts ...Option) *Store {
	o := newOptions(opts)
	id := uuid.NewString()

	return &Store{
		id:     id,
		byType: xsync.NewMapOf[reflect.Type, entry](),
		byName: xsync.NewMapOf[string, entry](),
		log:    o.logger.With().Str("registry", id).Logger(),
	}
}

// ID returns the unique identifier of the store.
func (s *Store) ID() string {
	return s.id
}

// GetByType returns the instance registered for t.
func (s *Store) GetByType(t reflect.Type) (any, bool) {
	e, ok := s.byType.Load(t)
	if !ok {
		return nil, false
	}
	return e.instance, true
}

// GetByName returns the instance registered under name.
func (s *Store) GetByName(name string) (any, bool) {
	e, ok := s.byName.Load(name)
	if !ok {
		return nil, false
	}
	return e.instance, true
}

// RegisterType stores instance under t and, when name is not empty, under name.
func (s *Store) RegisterType(t reflect.Type, instance any, name string) error {
	if t == nil {
		return ErrTypeNil
	}

	e := entry{t: t, instance: instance, name: name}
	if _, replaced := s.byType.LoadAndStore(t, e); replaced {
		s.log.Debug().Str("type", t.String()).Msg("replacing registered instance")
	}
	if name != "" {
		s.byName.Store(name, e)
	}

	s.log.Debug().Str("type", t.String()).Str("name", name).Msg("type registered")
	return nil
}

// Types returns the registered types in no particular order.
func (s *Store) Types() []reflect.Type {
	types := make([]reflect.Type, 0, s.byType.Size())
	s.byType.Range(func(t reflect.Type, _ entry) bool {
		types = append(types, t)
		return true
	})
	return types
}

// Len returns the number of registered types.
func (s *Store) Len() int {
	return s.byType.Size()
}
