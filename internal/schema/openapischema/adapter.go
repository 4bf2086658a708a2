// Package openapischema adapts kin-openapi schemas to the formkit field error
// model. The consumer supplies an *openapi3.Schema (or SchemaRef) describing
// the form payload; validation visits the state as a JSON value with
// multi-error collection enabled.
package openapischema

import (
	"context"
	"errors"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formkit/pkg/validation"
)

// Adapter translates kin-openapi schema errors into field errors.
type Adapter struct{}

var _ validation.Adapter = (*Adapter)(nil)

// New constructs the OpenAPI adapter.
func New() *Adapter {
	return &Adapter{}
}

// Name identifies the adapter inside a registry.
func (a *Adapter) Name() string { return "openapi" }

// Detect reports whether schema is a kin-openapi schema or schema reference.
func (a *Adapter) Detect(schema any) bool {
	switch s := schema.(type) {
	case *openapi3.Schema:
		return s != nil
	case *openapi3.SchemaRef:
		return s != nil && s.Value != nil
	default:
		return false
	}
}

// Validate visits the state against the schema with openapi3.MultiErrors so
// every violation is collected instead of failing fast.
func (a *Adapter) Validate(ctx context.Context, schema any, state map[string]any) (validation.Errors, error) {
	var target *openapi3.Schema
	switch s := schema.(type) {
	case *openapi3.Schema:
		target = s
	case *openapi3.SchemaRef:
		target = s.Value
	}
	if target == nil {
		return nil, validation.ErrUnsupportedSchema
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	err := target.VisitJSON(map[string]any(state), openapi3.MultiErrors())
	if err == nil {
		return nil, nil
	}
	return translate(err)
}

// translate maps a VisitJSON failure onto field errors. Anything that is not
// a schema violation comes back unchanged through the error return.
func translate(err error) (validation.Errors, error) {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		out := make(validation.Errors, 0, len(multi))
		for _, element := range multi {
			fe, ok := fieldError(element)
			if !ok {
				// A non-schema failure hiding inside the multi error is
				// not a translatable validation result.
				return nil, err
			}
			out = append(out, fe)
		}
		return out, nil
	}

	if fe, ok := fieldError(err); ok {
		return validation.Errors{fe}, nil
	}
	return nil, err
}

func fieldError(err error) (validation.FieldError, bool) {
	var schemaErr *openapi3.SchemaError
	if !errors.As(err, &schemaErr) {
		return validation.FieldError{}, false
	}
	msg := schemaErr.Reason
	if msg == "" {
		msg = schemaErr.Error()
	}
	return validation.FieldError{
		Path:    strings.Join(schemaErr.JSONPointer(), "."),
		Message: msg,
	}, true
}
