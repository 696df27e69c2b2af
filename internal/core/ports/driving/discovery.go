package driving

import (
	"context"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
)

// DiscoveryService finds opportunities relevant to the organisation.
type DiscoveryService interface {
	// Discover queries every source, scores the combined records and returns
	// those scoring at least the relevance threshold, best first.
	Discover(ctx context.Context, keywords []string) ([]domain.OpportunityRecord, error)
}
