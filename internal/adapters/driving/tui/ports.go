// Package tui provides an interactive terminal interface for grantcraft.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI talks to.
type Ports struct {
	// Retrieval searches the example index. Required.
	Retrieval driving.RetrievalService

	// Discovery finds funding opportunities.
	Discovery driving.DiscoveryService

	// Generation drafts proposals for an opportunity.
	Generation driving.GenerationService

	// Drafts stores generated drafts.
	Drafts driving.DraftService

	// Organization is shown under the menu title.
	Organization string
}

// Validate ensures the required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	return nil
}
