package orchestrator

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-formkit/internal/logger"
	"github.com/goliatone/go-formkit/internal/schema/cueschema"
	"github.com/goliatone/go-formkit/internal/schema/goskemaschema"
	"github.com/goliatone/go-formkit/internal/schema/openapischema"
	"github.com/goliatone/go-formkit/internal/schema/rulesschema"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// Validator is the consumer-supplied imperative validator. It reads the full
// form state and returns any number of field errors; a returned error aborts
// the pass without touching the collection.
type Validator func(ctx context.Context, state map[string]any) (validation.Errors, error)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithSchema supplies the schema object. Classification happens on the first
// validation pass; a shape matching no registered adapter surfaces as
// validation.ErrUnsupportedSchema.
func WithSchema(schema any) Option {
	return func(o *Orchestrator) {
		o.schema = schema
	}
}

// WithValidator supplies the imperative validator. Its results precede schema
// results in the combined collection.
func WithValidator(v Validator) Option {
	return func(o *Orchestrator) {
		o.validator = v
	}
}

// WithRegistry replaces the default adapter registry.
func WithRegistry(registry *validation.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithLogger attaches a logger for debug tracing of validation passes.
func WithLogger(log *logger.Logger) Option {
	return func(o *Orchestrator) {
		o.log = log
	}
}

// Orchestrator coordinates per-field and whole-form validation and is the
// only writer of the error collection. All methods are safe for concurrent
// use.
type Orchestrator struct {
	registry  *validation.Registry
	schema    any
	validator Validator
	log       *logger.Logger

	mu      sync.RWMutex
	errors  validation.Errors
	version uint64
	// started tracks the newest validation generation per path; startedAll
	// tracks the newest whole-collection write. A pass only applies its
	// result while it is still the newest for its scope, so a slow earlier
	// pass never overwrites a later one.
	started    map[string]uint64
	startedAll uint64
}

// New constructs an Orchestrator applying any provided options. The default
// registry carries the built-in adapters in their documented detection
// order: goskema, CUE, OpenAPI, declared rules.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		started: make(map[string]uint64),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.registry == nil {
		o.registry = DefaultRegistry()
	}
	return o
}

// DefaultRegistry returns a registry holding the built-in adapters in
// detection priority order.
func DefaultRegistry() *validation.Registry {
	registry := validation.NewRegistry()
	registry.MustRegister(goskemaschema.New())
	registry.MustRegister(cueschema.New())
	registry.MustRegister(openapischema.New())
	registry.MustRegister(rulesschema.New())
	return registry
}

// ValidateField re-validates the form and replaces the collection entries for
// path, leaving every other path untouched. Validation failures are recorded
// silently; the returned error reports only infrastructure failures such as
// an unsupported schema.
func (o *Orchestrator) ValidateField(ctx context.Context, state map[string]any, path string) error {
	o.mu.Lock()
	o.version++
	generation := o.version
	o.started[path] = generation
	o.mu.Unlock()

	result, err := o.run(ctx, state)
	if err != nil {
		o.log.Error("field validation aborted", err)
		return err
	}
	scoped := result.ForPath(path)

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.started[path] != generation || o.startedAll > generation {
		// A newer pass already owns this path.
		return nil
	}
	o.errors = append(o.errors.Without(path), scoped...)
	o.log.Debugf("validated field %q: %d error(s)", path, len(scoped))
	return nil
}

// ValidateAll re-validates the form and replaces the whole collection
// atomically. It returns the unchanged state on success, the resulting
// error collection when any field fails, or an infrastructure error.
func (o *Orchestrator) ValidateAll(ctx context.Context, state map[string]any) (map[string]any, error) {
	o.mu.Lock()
	o.version++
	generation := o.version
	o.startedAll = generation
	o.mu.Unlock()

	result, err := o.run(ctx, state)
	if err != nil {
		o.log.Error("form validation aborted", err)
		return nil, err
	}

	o.mu.Lock()
	if o.startedAll == generation {
		// Paths re-validated after this pass started keep their fresher
		// entries instead of the ones this pass computed.
		merged := append(validation.Errors(nil), result...)
		for path, gen := range o.started {
			if gen <= generation {
				continue
			}
			merged = append(merged.Without(path), o.errors.ForPath(path)...)
		}
		o.errors = merged
	}
	o.mu.Unlock()

	o.log.Debugf("validated form: %d error(s)", len(result))
	if len(result) > 0 {
		return nil, result
	}
	return state, nil
}

// Errors returns a copy of the current collection.
func (o *Orchestrator) Errors() validation.Errors {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return append(validation.Errors(nil), o.errors...)
}

// ErrorsFor returns the current entries whose path equals path.
func (o *Orchestrator) ErrorsFor(path string) validation.Errors {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.errors.ForPath(path)
}

// SetErrors replaces the whole collection with externally imposed errors,
// typically returned by a server after submission.
func (o *Orchestrator) SetErrors(errs validation.Errors) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.version++
	o.startedAll = o.version
	o.errors = append(validation.Errors(nil), errs...)
}

// SetErrorsFor replaces the entries for path with the supplied errors,
// ignoring entries whose path differs.
func (o *Orchestrator) SetErrorsFor(path string, errs validation.Errors) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.version++
	o.started[path] = o.version
	o.errors = append(o.errors.Without(path), errs.ForPath(path)...)
}

// Clear empties the collection.
func (o *Orchestrator) Clear() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.version++
	o.startedAll = o.version
	o.errors = nil
}

// ClearFor removes the entries for path, leaving others untouched.
func (o *Orchestrator) ClearFor(path string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.version++
	o.started[path] = o.version
	o.errors = o.errors.Without(path)
}

// run executes one validation pass: imperative validator first, then the
// schema adapter, concatenated in that order.
func (o *Orchestrator) run(ctx context.Context, state map[string]any) (validation.Errors, error) {
	if ctx == nil {
		return nil, fmt.Errorf("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var combined validation.Errors
	if o.validator != nil {
		imperative, err := o.validator(ctx, state)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: imperative validator: %w", err)
		}
		combined = append(combined, imperative...)
	}

	if o.schema != nil {
		adapter, err := o.registry.Classify(o.schema)
		if err != nil {
			return nil, err
		}
		o.log.Debugf("schema classified as %q", adapter.Name())
		translated, err := adapter.Validate(ctx, o.schema, state)
		if err != nil {
			return nil, err
		}
		combined = append(combined, translated...)
	}

	return combined, nil
}
