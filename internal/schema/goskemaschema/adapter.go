// Package goskemaschema adapts goskema object schemas to the formkit field
// error model. Detection is structural: any value carrying goskema's
// Parse/Validate method set over map states is accepted, which keeps the
// adapter decoupled from concrete builder types.
package goskemaschema

import (
	"context"
	"strings"

	goskema "github.com/reoring/goskema"

	"github.com/goliatone/go-formkit/pkg/validation"
)

// objectSchema is the method subset shared by every goskema schema built over
// a map state. Satisfied by goskema.Schema[map[string]any].
type objectSchema interface {
	Parse(ctx context.Context, v any) (map[string]any, error)
	Validate(ctx context.Context, v any) error
}

// Adapter translates goskema validation issues into field errors.
type Adapter struct{}

var _ validation.Adapter = (*Adapter)(nil)

// New constructs the goskema adapter.
func New() *Adapter {
	return &Adapter{}
}

// Name identifies the adapter inside a registry.
func (a *Adapter) Name() string { return "goskema" }

// Detect reports whether schema exposes the goskema object schema surface.
func (a *Adapter) Detect(schema any) bool {
	_, ok := schema.(objectSchema)
	return ok
}

// Validate runs the schema against the full state. goskema collects every
// issue by default; fail-fast applies only when callers opt in through the
// context, which this adapter never does.
func (a *Adapter) Validate(ctx context.Context, schema any, state map[string]any) (validation.Errors, error) {
	s, ok := schema.(objectSchema)
	if !ok {
		return nil, validation.ErrUnsupportedSchema
	}

	err := s.Validate(ctx, state)
	if err == nil {
		return nil, nil
	}

	issues, ok := goskema.AsIssues(err)
	if !ok {
		// Not a validation failure. Infrastructure errors pass through
		// untranslated.
		return nil, err
	}

	out := make(validation.Errors, 0, len(issues))
	for _, issue := range issues {
		out = append(out, validation.FieldError{
			Path:    dotPath(issue.Path),
			Message: issue.Message,
		})
	}
	return out, nil
}

// dotPath converts a goskema JSON Pointer ("/items/2/price") into the
// dot-joined form ("items.2.price"). Root-level issues map to the empty path.
func dotPath(pointer string) string {
	trimmed := strings.TrimPrefix(pointer, "/")
	if trimmed == "" {
		return ""
	}
	segments := strings.Split(trimmed, "/")
	for i, segment := range segments {
		segment = strings.ReplaceAll(segment, "~1", "/")
		segments[i] = strings.ReplaceAll(segment, "~0", "~")
	}
	return strings.Join(segments, ".")
}
