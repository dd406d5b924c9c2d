// Package mcp provides an MCP (Model Context Protocol) server adapter for docflow.
// It lets AI assistants push documents through the pipeline and read the
// event audit log.
package mcp

import "errors"

// ErrMissingPipeline is returned when the pipeline is not provided.
var ErrMissingPipeline = errors.New("mcp: pipeline is required")

// ErrMissingLocator is returned when a pipeline is given without a way to
// turn paths into documents.
var ErrMissingLocator = errors.New("mcp: document locator is required")
