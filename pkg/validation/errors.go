package validation

import (
	"errors"
	"fmt"
	"strings"
)

// FieldError describes a single validation failure tied to one form field.
// Path identifies the field with dot-separated nesting ("address.city"); a
// root-level failure carries an empty path.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Errors is an ordered collection of field errors. It implements error so
// that a full-form validation pass can surface the collection directly.
type Errors []FieldError

// Error summarizes the first few entries.
func (e Errors) Error() string {
	if len(e) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	shown := len(e)
	if shown > maxShown {
		shown = maxShown
	}
	for i := 0; i < shown; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fe := e[i]
		if fe.Path == "" {
			b.WriteString(fe.Message)
			continue
		}
		fmt.Fprintf(b, "%s: %s", fe.Path, fe.Message)
	}
	if len(e) > shown {
		fmt.Fprintf(b, "; ... (total %d)", len(e))
	}
	return b.String()
}

// ForPath returns the entries whose path equals path, preserving order.
func (e Errors) ForPath(path string) Errors {
	var out Errors
	for _, fe := range e {
		if fe.Path == path {
			out = append(out, fe)
		}
	}
	return out
}

// Without returns the entries whose path differs from path, preserving order.
func (e Errors) Without(path string) Errors {
	var out Errors
	for _, fe := range e {
		if fe.Path != path {
			out = append(out, fe)
		}
	}
	return out
}

// Paths returns the distinct paths present in the collection, in first-seen
// order.
func (e Errors) Paths() []string {
	seen := make(map[string]struct{}, len(e))
	var out []string
	for _, fe := range e {
		if _, ok := seen[fe.Path]; ok {
			continue
		}
		seen[fe.Path] = struct{}{}
		out = append(out, fe.Path)
	}
	return out
}

// AsErrors extracts an Errors collection from err using errors.As.
func AsErrors(err error) (Errors, bool) {
	if err == nil {
		return nil, false
	}
	var e Errors
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
