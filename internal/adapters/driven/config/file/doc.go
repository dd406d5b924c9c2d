// Package file provides the TOML-backed configuration store.
//
// Keys are flattened to dot notation ("pipeline.intake_dir") in memory and
// written back as nested tables, so the file stays hand-editable:
//
//	[pipeline]
//	intake_dir = "documents_to_process"
//	poll_interval = "5s"
//
// Environment variables of the form DOCFLOW_PIPELINE_INTAKE_DIR override
// values read from the file but are never written back.
package file
