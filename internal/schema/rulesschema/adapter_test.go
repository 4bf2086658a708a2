package rulesschema

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-formkit/pkg/validation"
)

func TestDetect(t *testing.T) {
	adapter := New()
	if !adapter.Detect(validation.RuleSet{"email": "required"}) {
		t.Fatalf("expected RuleSet to be detected")
	}
	if adapter.Detect(map[string]any{"email": "required"}) {
		t.Fatalf("plain map should not be detected")
	}
}

func TestValidateSuccess(t *testing.T) {
	adapter := New()
	rules := validation.RuleSet{"email": "required,email", "age": "gte=0"}

	errs, err := adapter.Validate(context.Background(), rules, map[string]any{
		"email": "a@b.c",
		"age":   30,
	})
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("expected no field errors, got %v", errs)
	}
}

func TestValidateReportsEveryFailedField(t *testing.T) {
	adapter := New()
	rules := validation.RuleSet{"email": "required,email", "age": "gte=0"}

	errs, err := adapter.Validate(context.Background(), rules, map[string]any{
		"email": "not-an-email",
		"age":   -1,
	})
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if len(errs) != 2 {
		t.Fatalf("expected two field errors, got %v", errs)
	}
	// flatten sorts field names, so age precedes email.
	if errs[0].Path != "age" || errs[1].Path != "email" {
		t.Fatalf("unexpected paths: %v", errs)
	}
	if !strings.Contains(errs[0].Message, "gte") {
		t.Fatalf("expected failed tag in message, got %q", errs[0].Message)
	}
	if !strings.Contains(errs[0].Message, "0") {
		t.Fatalf("expected rule parameter in message, got %q", errs[0].Message)
	}
}

func TestValidateNestedRules(t *testing.T) {
	adapter := New()
	rules := validation.RuleSet{
		"address": map[string]any{
			"city": "required",
		},
	}

	errs, err := adapter.Validate(context.Background(), rules, map[string]any{
		"address": map[string]any{"city": ""},
	})
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if len(errs) != 1 {
		t.Fatalf("expected one field error, got %v", errs)
	}
	if errs[0].Path != "address.city" {
		t.Fatalf("path = %q, want %q", errs[0].Path, "address.city")
	}
}

func TestValidateMissingField(t *testing.T) {
	adapter := New()
	rules := validation.RuleSet{"email": "required"}

	errs, err := adapter.Validate(context.Background(), rules, map[string]any{})
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if len(errs) != 1 || errs[0].Path != "email" {
		t.Fatalf("expected a single error at email, got %v", errs)
	}
}

func TestValidatePropagatesNonRuleErrors(t *testing.T) {
	adapter := New()
	rules := validation.RuleSet{
		"address": map[string]any{
			"city": "required",
		},
	}

	// A nested rule set over a non-map value makes the validator report a
	// plain error instead of rule failures; it must come back untranslated.
	errs, err := adapter.Validate(context.Background(), rules, map[string]any{
		"address": "downtown",
	})
	if err == nil {
		t.Fatalf("expected the native error to propagate")
	}
	if _, ok := validation.AsErrors(err); ok {
		t.Fatalf("native error must not be a field error collection, got %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("native errors must not become field errors, got %v", errs)
	}
}

func TestValidateRejectsForeignSchema(t *testing.T) {
	adapter := New()
	if _, err := adapter.Validate(context.Background(), "email=required", nil); err != validation.ErrUnsupportedSchema {
		t.Fatalf("expected ErrUnsupportedSchema, got %v", err)
	}
}
