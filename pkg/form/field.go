package form

import (
	"strings"

	"github.com/goliatone/go-formkit/pkg/events"
)

// Field is the handle an input component holds for one form path. It is the
// explicit channel for everything the component needs: state writes,
// lifecycle event emission, inline error reads, and the shared disabled flag.
type Field struct {
	form *Form
	path string
	id   string
}

// ID returns the identifier correlating this field with attributed errors.
func (f *Field) ID() string { return f.id }

// Path returns the dot-separated state path the field is bound to.
func (f *Field) Path() string { return f.path }

// Set writes value at the field's path, creating intermediate maps for
// nested paths, and emits input and change events.
func (f *Field) Set(value any) {
	f.form.mu.Lock()
	setPath(f.form.state, f.path, value)
	f.form.mu.Unlock()

	f.Input()
	f.Change()
}

// Value reads the current state value at the field's path.
func (f *Field) Value() (any, bool) {
	f.form.mu.RLock()
	defer f.form.mu.RUnlock()
	return getPath(f.form.state, f.path)
}

// Blur emits a blur lifecycle event for the field.
func (f *Field) Blur() {
	f.form.bus.Publish(events.Event{Type: events.TypeBlur, Path: f.path})
}

// Input emits an input lifecycle event for the field.
func (f *Field) Input() {
	f.form.bus.Publish(events.Event{Type: events.TypeInput, Path: f.path})
}

// Change emits a change lifecycle event for the field.
func (f *Field) Change() {
	f.form.bus.Publish(events.Event{Type: events.TypeChange, Path: f.path})
}

// Errors returns the current error entries for the field's path.
func (f *Field) Errors() []string {
	entries := f.form.ErrorsFor(f.path)
	out := make([]string, 0, len(entries))
	for _, fe := range entries {
		out = append(out, fe.Message)
	}
	return out
}

// Disabled reports the form-wide disabled flag.
func (f *Field) Disabled() bool {
	return f.form.Disabled()
}

// setPath writes value into nested maps following a dot path. Existing
// non-map intermediates are replaced.
func setPath(state map[string]any, path string, value any) {
	if path == "" {
		return
	}
	segments := strings.Split(path, ".")
	current := state
	for _, segment := range segments[:len(segments)-1] {
		next, ok := current[segment].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[segment] = next
		}
		current = next
	}
	current[segments[len(segments)-1]] = value
}

// getPath reads the value at a dot path, reporting whether every segment
// resolved.
func getPath(state map[string]any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	segments := strings.Split(path, ".")
	current := state
	for _, segment := range segments[:len(segments)-1] {
		next, ok := current[segment].(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}
	value, ok := current[segments[len(segments)-1]]
	return value, ok
}
