package validation

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnsupportedSchema reports a schema value matching none of the registered
// adapters. It signals a programming error by the consumer and is never
// converted into field errors.
var ErrUnsupportedSchema = errors.New("validation: unsupported schema")

// Adapter translates one third-party schema library into field errors.
//
// Validate runs the library against the full form state in collect-all mode
// where the library supports it. It returns the translated failures with
// native messages preserved verbatim and paths dot-joined, an empty
// collection on success, or the native error unchanged when its shape is not
// the library's recognized validation failure.
type Adapter interface {
	Name() string
	Detect(schema any) bool
	Validate(ctx context.Context, schema any, state map[string]any) (Errors, error)
}

// RuleSet declares go-playground/validator rules keyed by field name. A value
// is either a tag string ("required,email") or a nested RuleSet describing a
// nested object. RuleSet is the schema shape consumed by the declared-rules
// adapter.
type RuleSet map[string]any

// Registry holds adapters in detection priority order. Order matters: schema
// shapes can overlap structurally, and the first adapter whose Detect accepts
// the value wins.
type Registry struct {
	adapters []Adapter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends an adapter, preserving registration order. Duplicate names
// and nil adapters return an error.
func (r *Registry) Register(adapter Adapter) error {
	if adapter == nil {
		return fmt.Errorf("validation: adapter is required")
	}
	name := adapter.Name()
	if name == "" {
		return fmt.Errorf("validation: adapter name is required")
	}
	for _, existing := range r.adapters {
		if existing.Name() == name {
			return fmt.Errorf("validation: adapter %q already registered", name)
		}
	}
	r.adapters = append(r.adapters, adapter)
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(adapter Adapter) {
	if err := r.Register(adapter); err != nil {
		panic(err)
	}
}

// Classify returns the first adapter that recognizes schema. An unrecognized
// schema yields an error wrapping ErrUnsupportedSchema.
func (r *Registry) Classify(schema any) (Adapter, error) {
	if schema == nil {
		return nil, fmt.Errorf("%w: <nil>", ErrUnsupportedSchema)
	}
	for _, adapter := range r.adapters {
		if adapter.Detect(schema) {
			return adapter, nil
		}
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedSchema, schema)
}

// Names returns the adapter names in priority order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.adapters))
	for _, adapter := range r.adapters {
		names = append(names, adapter.Name())
	}
	return names
}
