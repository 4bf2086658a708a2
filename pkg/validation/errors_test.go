package validation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestErrorsForPath(t *testing.T) {
	errs := Errors{
		{Path: "email", Message: "required"},
		{Path: "age", Message: "must be positive"},
		{Path: "email", Message: "must contain @"},
	}

	got := errs.ForPath("email")
	want := Errors{
		{Path: "email", Message: "required"},
		{Path: "email", Message: "must contain @"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ForPath mismatch (-want +got):\n%s", diff)
	}
}

func TestErrorsWithout(t *testing.T) {
	errs := Errors{
		{Path: "email", Message: "required"},
		{Path: "age", Message: "must be positive"},
		{Path: "email", Message: "must contain @"},
	}

	got := errs.Without("email")
	want := Errors{{Path: "age", Message: "must be positive"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Without mismatch (-want +got):\n%s", diff)
	}
}

func TestErrorsPaths(t *testing.T) {
	errs := Errors{
		{Path: "email", Message: "required"},
		{Path: "age", Message: "must be positive"},
		{Path: "email", Message: "must contain @"},
		{Path: "", Message: "root failure"},
	}

	got := errs.Paths()
	want := []string{"email", "age", ""}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Paths mismatch (-want +got):\n%s", diff)
	}
}

func TestErrorsSummary(t *testing.T) {
	if got := (Errors{}).Error(); got != "" {
		t.Fatalf("empty collection should produce empty summary, got %q", got)
	}

	errs := Errors{
		{Path: "email", Message: "required"},
		{Path: "", Message: "root failure"},
	}
	want := "email: required; root failure"
	if got := errs.Error(); got != want {
		t.Fatalf("summary = %q, want %q", got, want)
	}

	var long Errors
	for i := 0; i < 5; i++ {
		long = append(long, FieldError{Path: fmt.Sprintf("f%d", i), Message: "bad"})
	}
	got := long.Error()
	want = "f0: bad; f1: bad; f2: bad; ... (total 5)"
	if got != want {
		t.Fatalf("truncated summary = %q, want %q", got, want)
	}
}

func TestAsErrors(t *testing.T) {
	errs := Errors{{Path: "email", Message: "required"}}
	wrapped := fmt.Errorf("submit: %w", errs)

	got, ok := AsErrors(wrapped)
	if !ok {
		t.Fatalf("expected wrapped Errors to be extracted")
	}
	if diff := cmp.Diff(errs, got); diff != "" {
		t.Fatalf("AsErrors mismatch (-want +got):\n%s", diff)
	}

	if _, ok := AsErrors(errors.New("boom")); ok {
		t.Fatalf("plain error should not extract as Errors")
	}
	if _, ok := AsErrors(nil); ok {
		t.Fatalf("nil error should not extract as Errors")
	}
}
