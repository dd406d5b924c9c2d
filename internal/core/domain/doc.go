// Package domain defines the core business entities for docflow.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Event: The envelope tracking one document through the pipeline
//   - Status: The pipeline state an Event has reached
//   - RawDocument: A claimed intake file before extraction
//   - Classification / RoutingInfo: Stage outputs recorded on the Event
//   - StageResult: The tagged outcome a stage hands back to the orchestrator
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
