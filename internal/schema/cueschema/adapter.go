// Package cueschema adapts CUE values to the formkit field error model. The
// consumer supplies a compiled cue.Value (typically a schema definition looked
// up from a compiled package); validation unifies the form state with it and
// requires every field to be concrete.
package cueschema

import (
	"context"
	"strings"

	"cuelang.org/go/cue"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/goliatone/go-formkit/pkg/validation"
)

// Adapter translates CUE validation errors into field errors.
type Adapter struct{}

var _ validation.Adapter = (*Adapter)(nil)

// New constructs the CUE adapter.
func New() *Adapter {
	return &Adapter{}
}

// Name identifies the adapter inside a registry.
func (a *Adapter) Name() string { return "cue" }

// Detect reports whether schema is a cue.Value.
func (a *Adapter) Detect(schema any) bool {
	_, ok := schema.(cue.Value)
	return ok
}

// Validate unifies the state with the schema value and validates with
// concrete semantics. CUE accumulates every failure during Validate, so the
// collect-all contract holds without extra options.
func (a *Adapter) Validate(ctx context.Context, schema any, state map[string]any) (validation.Errors, error) {
	val, ok := schema.(cue.Value)
	if !ok {
		return nil, validation.ErrUnsupportedSchema
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cctx := val.Context()
	unified := val.Unify(cctx.Encode(state))
	err := unified.Validate(cue.Concrete(true))
	if err == nil {
		return nil, nil
	}

	list := cueerrors.Errors(err)
	if len(list) == 0 {
		return nil, err
	}

	out := make(validation.Errors, 0, len(list))
	for _, e := range list {
		path := strings.Join(cueerrors.Path(e), ".")
		out = append(out, validation.FieldError{
			Path:    path,
			Message: trimPathPrefix(e.Error(), path),
		})
	}
	return out, nil
}

// trimPathPrefix drops a redundant leading path from a CUE message. CUE often
// renders errors as "<path>: <message>"; the path already lives in
// FieldError.Path.
func trimPathPrefix(msg, path string) string {
	if path == "" {
		return msg
	}
	if strings.HasPrefix(msg, path) {
		msg = strings.TrimPrefix(msg, path)
		msg = strings.TrimPrefix(msg, ":")
		msg = strings.TrimSpace(msg)
	}
	return msg
}
