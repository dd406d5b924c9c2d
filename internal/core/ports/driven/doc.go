// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the pipeline to function:
//
//   - Intake: Claims unprocessed files and archives routed ones
//   - DocumentReader: Reads the raw bytes of a claimed file
//   - TextRecogniser: Turns non-text documents into text (the OCR boundary)
//   - EntityExtractor: Extracts structured fields from text
//   - DocumentClassifier: Assigns a document type and confidence
//   - StepReporter: Records every stage transition for operators
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the pipeline degrades gracefully:
//
//   - EventStore: Audit log of finished events. Without it, events are only logged.
//   - IntakeWatcher: Change notifications that wake the poll loop early.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or provider package
package driven
