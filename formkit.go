// Package formkit re-exports the common formkit entry points so callers can
// assemble a validated form from a single import.
package formkit

import (
	"context"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/orchestrator"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// FieldError describes a single validation failure tied to one form field.
type FieldError = validation.FieldError

// Errors is an ordered collection of field errors.
type Errors = validation.Errors

// RuleSet declares go-playground/validator rules keyed by field name.
type RuleSet = validation.RuleSet

// Validator is the consumer-supplied imperative validator.
type Validator = orchestrator.Validator

// AttributedError pairs a field error with its input correlation identifier.
type AttributedError = form.AttributedError

// ErrUnsupportedSchema reports a schema matching none of the built-in
// adapters.
var ErrUnsupportedSchema = validation.ErrUnsupportedSchema

// NewForm exposes the form constructor from the top-level module.
func NewForm(fns ...form.OptionFn) *form.Form {
	return form.New(fns...)
}

// Validate runs a one-shot full validation of state against schema using the
// default adapter registry. It is the simplest entry point for callers that
// only want the error collection.
func Validate(ctx context.Context, schema any, state map[string]any) (Errors, error) {
	o := orchestrator.New(orchestrator.WithSchema(schema))
	if _, err := o.ValidateAll(ctx, state); err != nil {
		if errs, ok := validation.AsErrors(err); ok {
			return errs, nil
		}
		return nil, err
	}
	return nil, nil
}
