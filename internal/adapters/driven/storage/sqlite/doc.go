// Package sqlite provides the SQLite-backed event audit store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Every event that leaves the pipeline is
// written once with its run ID, final status and archive outcome.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is an NNN_name.up.sql file.
//
// # Data Location
//
// By default, the database is stored at ~/.docflow/data/events.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
