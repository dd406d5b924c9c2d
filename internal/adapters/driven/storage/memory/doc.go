// Package memory provides in-process implementations of the store ports.
// They back the process command when no audit database is wanted, and
// stand in for the file and SQLite stores in tests.
package memory
