package form

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-formkit/pkg/events"
	"github.com/goliatone/go-formkit/pkg/orchestrator"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// AttributedError is a field error enriched with the identifier of the field
// handle registered at its path. FieldID is empty when no handle exists for
// the path.
type AttributedError struct {
	validation.FieldError
	FieldID string
}

// Form composes the event bus, the validation orchestrator, and the field
// handles into one public surface.
type Form struct {
	opts Options
	bus  *events.Bus
	orch *orchestrator.Orchestrator

	mu       sync.RWMutex
	state    map[string]any
	fields   map[string]*Field
	nextID   int
	disabled bool
}

// New constructs a form with default options plus any overrides, subscribing
// the orchestrator to the configured field-level triggers.
func New(fns ...OptionFn) *Form {
	opts := NewOptions(fns...)

	bus := opts.Bus
	if bus == nil {
		bus = events.NewBus()
	}

	f := &Form{
		opts: opts,
		bus:  bus,
		orch: orchestrator.New(
			orchestrator.WithSchema(opts.Schema),
			orchestrator.WithValidator(opts.Validator),
			orchestrator.WithLogger(opts.Logger),
		),
		state:    opts.State,
		fields:   make(map[string]*Field),
		disabled: opts.Disabled,
	}

	if triggers := f.fieldTriggers(); len(triggers) > 0 {
		bus.Subscribe(f.handleEvent, events.WithTypes(triggers...))
	}
	return f
}

// fieldTriggers returns the configured triggers minus submit, which is
// handled by Submit rather than by bus delivery.
func (f *Form) fieldTriggers() []events.Type {
	var out []events.Type
	for _, t := range f.opts.Triggers {
		if t != events.TypeSubmit {
			out = append(out, t)
		}
	}
	return out
}

// handleEvent re-validates the event's field path on its own goroutine so
// slow schema libraries never block event publication.
func (f *Form) handleEvent(evt events.Event) {
	go func() {
		if err := f.orch.ValidateField(context.Background(), f.snapshot(), evt.Path); err != nil {
			f.opts.Logger.Error(fmt.Sprintf("revalidation after %s failed", evt.Type), err)
		}
	}()
}

// Bus exposes the event bus so consumers can attach additional observers.
func (f *Form) Bus() *events.Bus {
	return f.bus
}

// RegisterField returns the handle for path, creating it on first use. The
// handle carries a stable identifier used to correlate errors with inputs.
func (f *Form) RegisterField(path string) *Field {
	f.mu.Lock()
	defer f.mu.Unlock()
	if field, ok := f.fields[path]; ok {
		return field
	}
	f.nextID++
	field := &Field{
		form: f,
		path: path,
		id:   fmt.Sprintf("field-%d", f.nextID),
	}
	f.fields[path] = field
	return field
}

// State returns the live state map. The form itself never mutates it outside
// field handle writes.
func (f *Form) State() map[string]any {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state
}

// snapshot deep-copies the state under the lock. Validation passes read the
// snapshot so field handle writes never race a schema library iterating the
// map on another goroutine.
func (f *Form) snapshot() map[string]any {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return copyState(f.state)
}

func copyState(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for key, value := range src {
		out[key] = copyStateValue(value)
	}
	return out
}

func copyStateValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return copyState(v)
	case []any:
		out := make([]any, len(v))
		for i, element := range v {
			out[i] = copyStateValue(element)
		}
		return out
	default:
		return value
	}
}

// SetDisabled flips the form-wide disabled flag read by every field handle.
func (f *Form) SetDisabled(disabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disabled = disabled
}

// Disabled reports the form-wide disabled flag.
func (f *Form) Disabled() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.disabled
}

// Submit runs the submission flow: a full validation pass when "submit" is a
// configured trigger, then either the success signal carrying the state or
// the error signal carrying the enriched collection. Validation failure is
// routed to OnError and never returned; only infrastructure errors such as an
// unsupported schema propagate to the caller.
func (f *Form) Submit(ctx context.Context) error {
	if f.Disabled() {
		return nil
	}

	state := f.snapshot()
	if f.triggersSubmit() {
		if _, err := f.orch.ValidateAll(ctx, state); err != nil {
			errs, ok := validation.AsErrors(err)
			if !ok {
				return err
			}
			f.bus.Publish(events.Event{Type: events.TypeSubmit})
			if f.opts.OnError != nil {
				f.opts.OnError(ctx, f.attribute(errs))
			}
			return nil
		}
	}

	f.bus.Publish(events.Event{Type: events.TypeSubmit})
	if f.opts.OnSubmit != nil {
		f.opts.OnSubmit(ctx, state)
	}
	return nil
}

func (f *Form) triggersSubmit() bool {
	for _, t := range f.opts.Triggers {
		if t == events.TypeSubmit {
			return true
		}
	}
	return false
}

// attribute pairs each error with the identifier of the field handle
// registered at its path.
func (f *Form) attribute(errs validation.Errors) []AttributedError {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]AttributedError, 0, len(errs))
	for _, fe := range errs {
		var id string
		if field, ok := f.fields[fe.Path]; ok {
			id = field.id
		}
		out = append(out, AttributedError{FieldError: fe, FieldID: id})
	}
	return out
}

// Validate runs a full validation pass and returns the state, or the error
// collection when any field fails.
func (f *Form) Validate(ctx context.Context) (map[string]any, error) {
	return f.orch.ValidateAll(ctx, f.snapshot())
}

// ValidateField re-validates a single path silently.
func (f *Form) ValidateField(ctx context.Context, path string) error {
	return f.orch.ValidateField(ctx, f.snapshot(), path)
}

// Errors returns a copy of the current error collection.
func (f *Form) Errors() validation.Errors {
	return f.orch.Errors()
}

// ErrorsFor returns the current entries for path.
func (f *Form) ErrorsFor(path string) validation.Errors {
	return f.orch.ErrorsFor(path)
}

// SetErrors replaces the whole collection with externally imposed errors.
func (f *Form) SetErrors(errs validation.Errors) {
	f.orch.SetErrors(errs)
}

// SetErrorsFor replaces the entries for path with externally imposed errors.
func (f *Form) SetErrorsFor(path string, errs validation.Errors) {
	f.orch.SetErrorsFor(path, errs)
}

// Clear empties the error collection.
func (f *Form) Clear() {
	f.orch.Clear()
}

// ClearFor removes the entries for path.
func (f *Form) ClearFor(path string) {
	f.orch.ClearFor(path)
}
