package mcp

import (
	"github.com/custodia-labs/docflow/internal/core/domain"
	"github.com/custodia-labs/docflow/internal/core/ports/driving"
)

// Locator resolves a filesystem path to a document the pipeline can run.
type Locator func(path string) (domain.RawDocument, error)

// Ports aggregates the driving ports required by the MCP server.
type Ports struct {
	// Pipeline processes documents.
	Pipeline driving.Pipeline

	// Locate turns a path into a document.
	Locate Locator

	// Events reads the audit log. Optional.
	Events driving.EventService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Pipeline == nil {
		return ErrMissingPipeline
	}
	if p.Locate == nil {
		return ErrMissingLocator
	}
	return nil
}
