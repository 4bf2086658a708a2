// Package rulesschema adapts go-playground/validator map rules to the formkit
// field error model. The consumer supplies a validation.RuleSet whose values
// are validator tag strings or nested rule sets mirroring the state's nesting.
package rulesschema

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-formkit/pkg/validation"
)

// Adapter runs declared rules over map states.
type Adapter struct {
	validate *validator.Validate
}

var _ validation.Adapter = (*Adapter)(nil)

// New constructs the rules adapter with a dedicated validator instance.
func New() *Adapter {
	return &Adapter{validate: validator.New()}
}

// Name identifies the adapter inside a registry.
func (a *Adapter) Name() string { return "rules" }

// Detect reports whether schema is a declared rule set.
func (a *Adapter) Detect(schema any) bool {
	_, ok := schema.(validation.RuleSet)
	return ok
}

// Validate evaluates every declared rule against the state. ValidateMapCtx
// already reports all failing fields, so no fail-fast handling is needed.
// Rule evaluation order is made deterministic by sorting field names while
// flattening the result.
func (a *Adapter) Validate(ctx context.Context, schema any, state map[string]any) (validation.Errors, error) {
	rules, ok := schema.(validation.RuleSet)
	if !ok {
		return nil, validation.ErrUnsupportedSchema
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := a.validate.ValidateMapCtx(ctx, state, map[string]any(rules))
	if len(results) == 0 {
		return nil, nil
	}

	var out validation.Errors
	if err := flatten("", results, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// flatten walks the nested result map produced by ValidateMapCtx, joining
// field names into dot paths and emitting one field error per failed rule.
func flatten(prefix string, results map[string]any, out *validation.Errors) error {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		switch res := results[name].(type) {
		case validator.ValidationErrors:
			for _, fe := range res {
				*out = append(*out, validation.FieldError{
					Path:    path,
					Message: messageFor(fe),
				})
			}
		case map[string]any:
			if err := flatten(path, res, out); err != nil {
				return err
			}
		case error:
			// Anything other than rule failures is not a translatable
			// validation result.
			return res
		}
	}
	return nil
}

func messageFor(fe validator.FieldError) string {
	if param := fe.Param(); param != "" {
		return fmt.Sprintf("failed rule %q with parameter %q", fe.Tag(), param)
	}
	return fmt.Sprintf("failed rule %q", fe.Tag())
}
