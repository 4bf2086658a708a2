// Package orchestrator owns the authoritative collection of current
// validation failures for a form. It combines a consumer-supplied imperative
// validator with a schema adapter resolved through the validation registry,
// re-validating a single field path or the whole form and keeping the
// collection consistent when asynchronous passes overlap.
package orchestrator
