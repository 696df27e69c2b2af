package mcp

import (
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driven"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retrieval searches the index of past applications.
	Retrieval driving.RetrievalService

	// Generation writes application sections.
	Generation driving.GenerationService

	// Discovery finds funding opportunities.
	Discovery driving.DiscoveryService

	// Drafts persists generated drafts.
	Drafts driving.DraftService

	// Normaliser cleans up model output.
	Normaliser driven.TextNormaliser
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	// The remaining ports are optional; their tools report errNotConfigured.
	return nil
}
