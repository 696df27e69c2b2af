package driven

import (
	"context"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
)

// VectorStore persists chunk vectors and answers nearest-neighbour queries.
// Implementations must allow concurrent readers alongside a single writer.
type VectorStore interface {
	// Upsert inserts or replaces records keyed by chunk ID.
	Upsert(ctx context.Context, records []VectorRecord) error

	// Search returns up to k records ordered by descending cosine similarity.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Reset drops all records and recreates an empty collection with the same identity.
	Reset(ctx context.Context) error

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// Collection returns the store's identity.
	Collection() string

	// Close releases resources.
	Close() error
}

// VectorRecord is one chunk with its embedding.
type VectorRecord struct {
	Chunk     domain.Chunk
	Embedding []float32
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// Chunk is the matched chunk.
	Chunk domain.Chunk

	// Similarity is the cosine similarity score.
	Similarity float64
}
