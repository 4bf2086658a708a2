package form

import (
	"context"

	"github.com/goliatone/go-formkit/internal/logger"
	"github.com/goliatone/go-formkit/pkg/events"
	"github.com/goliatone/go-formkit/pkg/orchestrator"
)

// SubmitHandler receives the validated state when submission succeeds.
type SubmitHandler func(ctx context.Context, state map[string]any)

// ErrorHandler receives the enriched error collection when submission fails
// validation. Each entry carries the identifier of the field handle
// registered at its path so callers can move focus to the offending input.
type ErrorHandler func(ctx context.Context, errs []AttributedError)

// Options describes a form's configuration.
type Options struct {
	// State is the data being edited. The form never replaces the map;
	// field handles mutate it in place.
	State map[string]any

	// Schema is the optional schema object handed to the orchestrator.
	// Absence skips schema-based validation entirely.
	Schema any

	// Validator is the optional imperative validator.
	Validator orchestrator.Validator

	// Triggers lists the lifecycle event types that cause re-validation.
	// Defaults to all four.
	Triggers []events.Type

	// Bus carries lifecycle events. A private bus is created when nil.
	Bus *events.Bus

	// Logger enables debug tracing. Nil disables logging.
	Logger *logger.Logger

	// Disabled starts the form in the disabled state.
	Disabled bool

	OnSubmit SubmitHandler
	OnError  ErrorHandler
}

// OptionFn mutates Options during construction.
type OptionFn func(*Options)

// DefaultOptions returns the baseline configuration.
func DefaultOptions() Options {
	return Options{
		Triggers: events.Types(),
	}
}

// NewOptions builds Options from the defaults plus any overrides.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.State == nil {
		opts.State = make(map[string]any)
	}
	if opts.Triggers == nil {
		opts.Triggers = events.Types()
	}
	return opts
}

// WithState supplies the state map being edited.
func WithState(state map[string]any) OptionFn {
	return func(o *Options) { o.State = state }
}

// WithSchema supplies the schema object.
func WithSchema(schema any) OptionFn {
	return func(o *Options) { o.Schema = schema }
}

// WithValidator supplies the imperative validator.
func WithValidator(v orchestrator.Validator) OptionFn {
	return func(o *Options) { o.Validator = v }
}

// WithTriggers restricts which lifecycle events cause re-validation. Passing
// no types disables event-driven validation entirely.
func WithTriggers(types ...events.Type) OptionFn {
	return func(o *Options) { o.Triggers = append([]events.Type(nil), types...) }
}

// WithBus injects a shared event bus.
func WithBus(bus *events.Bus) OptionFn {
	return func(o *Options) { o.Bus = bus }
}

// WithLogger attaches a logger.
func WithLogger(log *logger.Logger) OptionFn {
	return func(o *Options) { o.Logger = log }
}

// WithDisabled starts the form disabled.
func WithDisabled(disabled bool) OptionFn {
	return func(o *Options) { o.Disabled = disabled }
}

// OnSubmit registers the success signal handler.
func OnSubmit(fn SubmitHandler) OptionFn {
	return func(o *Options) { o.OnSubmit = fn }
}

// OnError registers the failure signal handler.
func OnError(fn ErrorHandler) OptionFn {
	return func(o *Options) { o.OnError = fn }
}
