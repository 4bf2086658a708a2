// Package form is the public surface of a formkit form: it owns the form
// state, wires field handles to the validation orchestrator over an explicit
// event bus, and routes submission to success or error signals.
//
// The concurrency model is cooperative: state writes go through field
// handles, validation triggered by lifecycle events runs on its own
// goroutine, and the orchestrator sequences overlapping passes so a stale
// result never overwrites a newer one.
package form
