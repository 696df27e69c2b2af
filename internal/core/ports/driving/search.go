package driving

import (
	"context"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
)

// RetrievalService exposes the retrieval index to external actors.
type RetrievalService interface {
	// Index embeds and upserts chunks, returning the resulting index state.
	Index(ctx context.Context, chunks []domain.Chunk) (domain.IndexHandle, error)

	// Search returns up to k chunks by descending similarity.
	// An empty index yields an empty slice, never an error.
	Search(ctx context.Context, query string, k int) ([]domain.SearchResult, error)

	// VoiceExamples returns excerpts of the organisation's own language.
	VoiceExamples(ctx context.Context, voiceType string, k int) ([]domain.SearchResult, error)

	// Clear destroys and recreates an empty index with the same identity.
	Clear(ctx context.Context) error

	// Stats returns the current index state.
	Stats(ctx context.Context) (domain.IndexHandle, error)
}
