package pipeline

import (
	"fmt"
	"strings"
	"sync"

	"github.com/c360/fluxkit/errors"
)

// MapperFunc transforms one item into another.
type MapperFunc func(any) any

// PredicateFunc decides whether an item passes a filter stage.
type PredicateFunc func(any) bool

// MapperFactory builds a mapper from an optional configuration argument.
type MapperFactory func(arg any) (MapperFunc, error)

// PredicateFactory builds a predicate from an optional configuration argument.
type PredicateFactory func(arg any) (PredicateFunc, error)

// Registry maps operation names referenced by pipeline configuration to
// the factories that build them. It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	mappers    map[string]MapperFactory
	predicates map[string]PredicateFactory
}

// NewRegistry creates an empty operation registry.
func NewRegistry() *Registry {
	return &Registry{
		mappers:    make(map[string]MapperFactory),
		predicates: make(map[string]PredicateFactory),
	}
}

// RegisterMapper registers a mapper factory under name.
func (r *Registry) RegisterMapper(name string, factory MapperFactory) error {
	if name == "" || factory == nil {
		return errors.WrapInvalid(errors.ErrInvalidConfig,
			"Registry", "RegisterMapper", "validate name and factory")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.mappers[name]; exists {
		return errors.WrapInvalid(
			fmt.Errorf("%w: mapper %q", errors.ErrAlreadyRegistered, name),
			"Registry", "RegisterMapper", "check for duplicate")
	}

	r.mappers[name] = factory
	return nil
}

// RegisterPredicate registers a predicate factory under name.
func (r *Registry) RegisterPredicate(name string, factory PredicateFactory) error {
	if name == "" || factory == nil {
		return errors.WrapInvalid(errors.ErrInvalidConfig,
			"Registry", "RegisterPredicate", "validate name and factory")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.predicates[name]; exists {
		return errors.WrapInvalid(
			fmt.Errorf("%w: predicate %q", errors.ErrAlreadyRegistered, name),
			"Registry", "RegisterPredicate", "check for duplicate")
	}

	r.predicates[name] = factory
	return nil
}

// Mapper resolves and builds the named mapper.
func (r *Registry) Mapper(name string, arg any) (MapperFunc, error) {
	r.mu.RLock()
	factory, exists := r.mappers[name]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: mapper %q", errors.ErrUnknownOperation, name),
			"Registry", "Mapper", "lookup")
	}
	return factory(arg)
}

// Predicate resolves and builds the named predicate.
func (r *Registry) Predicate(name string, arg any) (PredicateFunc, error) {
	r.mu.RLock()
	factory, exists := r.predicates[name]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: predicate %q", errors.ErrUnknownOperation, name),
			"Registry", "Predicate", "lookup")
	}
	return factory(arg)
}

// DefaultRegistry returns a registry with the built-in string operations
// registered. Items are compared and transformed through their fmt.Sprint
// rendering, matching how filter rules treat scalar values.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	// Mappers without arguments.
	noArg := map[string]func(string) string{
		"uppercase": strings.ToUpper,
		"lowercase": strings.ToLower,
		"trim":      strings.TrimSpace,
	}
	for name, fn := range noArg {
		fn := fn
		mustRegisterMapper(r, name, func(any) (MapperFunc, error) {
			return func(v any) any { return fn(asString(v)) }, nil
		})
	}

	// Mappers taking a string argument.
	mustRegisterMapper(r, "prefix", func(arg any) (MapperFunc, error) {
		p, err := requireStringArg("prefix", arg)
		if err != nil {
			return nil, err
		}
		return func(v any) any { return p + asString(v) }, nil
	})
	mustRegisterMapper(r, "suffix", func(arg any) (MapperFunc, error) {
		s, err := requireStringArg("suffix", arg)
		if err != nil {
			return nil, err
		}
		return func(v any) any { return asString(v) + s }, nil
	})

	// Predicates.
	mustRegisterPredicate(r, "equals", func(arg any) (PredicateFunc, error) {
		want := asString(arg)
		return func(v any) bool { return asString(v) == want }, nil
	})
	mustRegisterPredicate(r, "not_equals", func(arg any) (PredicateFunc, error) {
		want := asString(arg)
		return func(v any) bool { return asString(v) != want }, nil
	})
	mustRegisterPredicate(r, "contains", func(arg any) (PredicateFunc, error) {
		want, err := requireStringArg("contains", arg)
		if err != nil {
			return nil, err
		}
		return func(v any) bool { return strings.Contains(asString(v), want) }, nil
	})
	mustRegisterPredicate(r, "non_empty", func(any) (PredicateFunc, error) {
		return func(v any) bool { return asString(v) != "" }, nil
	})

	return r
}

func mustRegisterMapper(r *Registry, name string, factory MapperFactory) {
	if err := r.RegisterMapper(name, factory); err != nil {
		panic(err)
	}
}

func mustRegisterPredicate(r *Registry, name string, factory PredicateFactory) {
	if err := r.RegisterPredicate(name, factory); err != nil {
		panic(err)
	}
}

// asString renders an item for the built-in string operations.
func asString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func requireStringArg(op string, arg any) (string, error) {
	if arg == nil {
		return "", errors.WrapInvalid(
			fmt.Errorf("%w: operation %q requires an argument", errors.ErrMissingConfig, op),
			"Registry", "build", "validate argument")
	}
	return asString(arg), nil
}
