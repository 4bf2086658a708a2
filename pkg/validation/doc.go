// Package validation defines the field error model shared by every formkit
// component and the adapter contract used to plug third-party schema
// libraries into the orchestrator. Adapter implementations live under
// internal/schema and are registered through a Registry whose order decides
// how an opaque schema value is classified.
package validation
