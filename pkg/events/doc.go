// Package events carries field lifecycle events from input components to the
// validation orchestrator. A Bus is an explicit in-process channel passed by
// reference from the form container to its fields; nothing is registered
// globally, so two forms on one page never share subscribers.
package events
