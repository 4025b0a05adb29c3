package inject

import (
	"github.com/rs/zerolog"

	"github.com/junioryono/inject/internal/reflection"
)

// Dependencies maps constructor parameter names to resolved instances.
type Dependencies map[string]any

// ResolveOption configures [ResolveDependencies].
type ResolveOption interface {
	applyResolve(*resolveOptions)
}

type resolveOptions struct {
	allowMissing bool
	logger       *zerolog.Logger
	supplied     Args
}

type resolveOptionFunc func(*resolveOptions)

func (f resolveOptionFunc) applyResolve(opts *resolveOptions) {
	f(opts)
}

// AllowMissing makes resolution tolerant: a parameter without a type, with an
// unresolvable type reference, or without a registry entry is left out of the
// result instead of failing the whole class. Callers are expected to supply
// those parameters themselves.
func AllowMissing() ResolveOption {
	return resolveOptionFunc(func(opts *resolveOptions) {
		opts.allowMissing = true
	})
}

// WithLogger logs resolution decisions to l instead of the package logger.
func WithLogger(l zerolog.Logger) ResolveOption {
	return resolveOptionFunc(func(opts *resolveOptions) {
		opts.logger = &l
	})
}

// withSupplied marks parameters the caller provides; they are not required.
func withSupplied(args Args) ResolveOption {
	return resolveOptionFunc(func(opts *resolveOptions) {
		opts.supplied = args
	})
}

// ResolveDependencies looks up every constructor parameter of c in reg by type.
//
// Parameters are handled in declaration order:
//  1. variadic and rest parameters are skipped
//  2. parameters with a default are skipped
//  3. a parameter without a declared type fails with [NoTypeHintError]
//  4. an unresolved type reference is looked up once more in the class's
//     module, failing with [ForwardReferenceError]
//  5. the type is looked up with [Registry.GetByType], failing with
//     [DependencyNotFoundError]
//
// The first failure aborts resolution, unless [AllowMissing] is given, in
// which case the failing parameter is left out and resolution continues.
// The registry is queried at most once per parameter.
//
// Available options:
//   - [AllowMissing] tolerates missing parameters.
//   - [WithLogger] overrides the package logger.
func ResolveDependencies(c *Class, reg Registry, opts ...ResolveOption) (Dependencies, error) {
	if c == nil {
		return nil, ErrClassNil
	}
	if reg == nil {
		return nil, ErrRegistryNil
	}

	options := resolveOptions{logger: Logger()}
	for _, opt := range opts {
		if opt != nil {
			opt.applyResolve(&options)
		}
	}

	sig, err := c.signature()
	if err != nil {
		return nil, err
	}

	anns, err := extractAnnotations(c, sig)
	if err != nil {
		return nil, err
	}

	r := resolver{
		class:   c,
		reg:     reg,
		anns:    anns,
		options: options,
		log:     options.logger.With().Str("class", c.name).Logger(),
	}

	deps := make(Dependencies, len(sig.Params))
	for _, p := range sig.Params {
		val, ok, err := r.resolveParam(p)
		if err != nil {
			return nil, err
		}
		if ok {
			deps[p.Name] = val
		}
	}

	return deps, nil
}

type resolver struct {
	class   *Class
	reg     Registry
	anns    Annotations
	options resolveOptions
	log     zerolog.Logger
}

func (r *resolver) resolveParam(p reflection.Param) (any, bool, error) {
	log := r.log.With().Str("param", p.Name).Logger()

	if p.Kind == reflection.Variadic || p.Kind == reflection.Rest {
		log.Debug().Stringer("kind", p.Kind).Msg("skipping variadic parameter")
		return nil, false, nil
	}

	if p.HasDefault {
		log.Debug().Msg("skipping parameter with default")
		return nil, false, nil
	}

	if _, supplied := r.options.supplied[p.Name]; supplied {
		log.Debug().Msg("skipping supplied parameter")
		return nil, false, nil
	}

	ann, ok := r.anns[p.Name]
	if !ok {
		return r.missing(log, NoTypeHintError{Class: r.class.name, Param: p.Name})
	}

	t := ann.Type
	if t == nil {
		t, ok = resolveRef(r.class.module, ann.Ref)
		if !ok {
			return r.missing(log, ForwardReferenceError{Class: r.class.name, Param: p.Name, Ref: ann.Ref})
		}
		log.Debug().Str("ref", ann.Ref).Str("type", formatType(t)).Msg("resolved type reference")
	}

	instance, found := r.reg.GetByType(t)
	if !found {
		return r.missing(log, DependencyNotFoundError{Class: r.class.name, Param: p.Name, TypeName: formatType(t)})
	}

	log.Debug().Str("type", formatType(t)).Msg("dependency resolved")
	return instance, true, nil
}

func (r *resolver) missing(log zerolog.Logger, err error) (any, bool, error) {
	if !r.options.allowMissing {
		return nil, false, err
	}

	log.Debug().Err(err).Msg("omitting unresolved parameter")
	return nil, false, nil
}
