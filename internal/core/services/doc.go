// Package services implements the driving port interfaces.
// Services hold the pipeline logic: the three agent stages, the
// orchestrator that folds a document through them, and the poll loop
// that feeds it from the intake. They talk to the outside world only
// through driven ports.
package services
