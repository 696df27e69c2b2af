package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driven/storage/vectormath"
	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driven"
)

// Ensure VectorStore implements the interface.
var _ driven.VectorStore = (*VectorStore)(nil)

// VectorStore is an in-memory implementation of driven.VectorStore.
// The first upsert fixes the vector dimension until the next Reset.
type VectorStore struct {
	mu         sync.RWMutex
	collection string
	dimensions int
	records    map[string]driven.VectorRecord
}

// NewVectorStore creates an empty in-memory vector store.
func NewVectorStore(collection string) *VectorStore {
	if collection == "" {
		collection = domain.DefaultCollection
	}
	return &VectorStore{
		collection: collection,
		records:    make(map[string]driven.VectorRecord),
	}
}

// Upsert inserts or replaces records keyed by chunk ID.
func (s *VectorStore) Upsert(_ context.Context, records []driven.VectorRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dims := s.dimensions
	for _, rec := range records {
		if dims == 0 {
			dims = len(rec.Embedding)
		}
		if err := vectormath.CheckDimensions(dims, len(rec.Embedding)); err != nil {
			return err
		}
	}

	s.dimensions = dims
	for _, rec := range records {
		s.records[rec.Chunk.ID()] = driven.VectorRecord{
			Chunk:     rec.Chunk,
			Embedding: append([]float32(nil), rec.Embedding...),
		}
	}
	return nil
}

// Search returns up to k records ordered by descending cosine similarity.
func (s *VectorStore) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.records) == 0 {
		return []driven.VectorHit{}, nil
	}
	if err := vectormath.CheckDimensions(s.dimensions, len(query)); err != nil {
		return nil, err
	}

	records := make([]driven.VectorRecord, 0, len(s.records))
	for _, rec := range s.records {
		records = append(records, rec)
	}
	return vectormath.Rank(records, query, k), nil
}

// Reset drops all records.
func (s *VectorStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]driven.VectorRecord)
	s.dimensions = 0
	return nil
}

// Count returns the number of stored records.
func (s *VectorStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// Collection returns the store's identity.
func (s *VectorStore) Collection() string {
	return s.collection
}

// Close is a no-op.
func (s *VectorStore) Close() error {
	return nil
}
