// Package driving defines what the CLI and the MCP server may ask of docflow:
// run the pipeline, drive the poll loop, query the audit log and read or
// change settings.
//
// internal/core/services implements every interface here.
package driving
