package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driven"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driving"
	"github.com/custodia-labs/grantcraft-cli/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// embedBatchSize bounds the number of texts sent to the embedder per call.
const embedBatchSize = 64

// RetrievalService embeds chunks into a vector store and answers similarity queries.
// Indexing takes an exclusive lock; searches share a read lock.
type RetrievalService struct {
	mu       sync.RWMutex
	vectors  driven.VectorStore
	embedder driven.EmbeddingService
	profile  domain.OrganizationProfile
	topK     int
}

// NewRetrievalService creates a retrieval service.
// The embedder is optional; without it indexing fails and searching a
// non-empty index fails with domain.ErrEmbeddingUnavailable.
func NewRetrievalService(
	vectors driven.VectorStore,
	embedder driven.EmbeddingService,
	profile domain.OrganizationProfile,
	topK int,
) *RetrievalService {
	if topK <= 0 {
		topK = domain.DefaultTopK
	}
	return &RetrievalService{
		vectors:  vectors,
		embedder: embedder,
		profile:  profile,
		topK:     topK,
	}
}

// Index embeds and upserts chunks. Re-indexing a chunk ID replaces it.
func (s *RetrievalService) Index(ctx context.Context, chunks []domain.Chunk) (domain.IndexHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger.Section("Indexing")
	logger.Debug("Chunks: %d", len(chunks))

	if len(chunks) > 0 {
		if s.embedder == nil {
			return domain.IndexHandle{}, domain.ErrEmbeddingUnavailable
		}

		for start := 0; start < len(chunks); start += embedBatchSize {
			end := start + embedBatchSize
			if end > len(chunks) {
				end = len(chunks)
			}
			if err := s.indexBatch(ctx, chunks[start:end]); err != nil {
				return domain.IndexHandle{}, err
			}
			logger.Debug("Indexed %d/%d chunks", end, len(chunks))
		}
	}

	return s.stats(ctx)
}

func (s *RetrievalService) indexBatch(ctx context.Context, batch []domain.Chunk) error {
	texts := make([]string, len(batch))
	for i, c := range batch {
		texts[i] = c.Text
	}

	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed chunks: %w", err)
	}
	if len(embeddings) != len(batch) {
		return fmt.Errorf("embed chunks: got %d embeddings for %d texts", len(embeddings), len(batch))
	}

	records := make([]driven.VectorRecord, len(batch))
	for i, c := range batch {
		records[i] = driven.VectorRecord{Chunk: c, Embedding: embeddings[i]}
	}

	if err := s.vectors.Upsert(ctx, records); err != nil {
		return fmt.Errorf("upsert vectors: %w", err)
	}
	return nil
}

// Search returns up to k chunks similar to query, best first.
// A non-positive k uses the configured default. An empty query or an
// empty index yields an empty slice.
func (s *RetrievalService) Search(ctx context.Context, query string, k int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logger.Debug("Retrieval query: %q (k=%d)", query, k)

	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.SearchResult{}, nil
	}
	if k <= 0 {
		k = s.topK
	}

	count, err := s.vectors.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count vectors: %w", err)
	}
	if count == 0 {
		logger.Debug("Index is empty, returning no results")
		return []domain.SearchResult{}, nil
	}

	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := s.vectors.Search(ctx, embedding, k)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(hits))
	for _, hit := range hits {
		score := hit.Similarity
		results = append(results, domain.SearchResult{
			Text:     hit.Chunk.Text,
			Metadata: hit.Chunk.Metadata,
			Score:    &score,
		})
	}

	logger.Debug("Retrieved %d results", len(results))
	return results, nil
}

// VoiceExamples searches with the organisation's fixed identity query.
func (s *RetrievalService) VoiceExamples(ctx context.Context, voiceType string, k int) ([]domain.SearchResult, error) {
	return s.Search(ctx, s.profile.VoiceQuery(voiceType), k)
}

// Clear drops every indexed chunk, keeping the collection identity.
func (s *RetrievalService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.vectors.Reset(ctx); err != nil {
		return fmt.Errorf("reset index: %w", err)
	}
	logger.Info("Cleared index %s", s.vectors.Collection())
	return nil
}

// Stats returns the current index state.
func (s *RetrievalService) Stats(ctx context.Context) (domain.IndexHandle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats(ctx)
}

func (s *RetrievalService) stats(ctx context.Context) (domain.IndexHandle, error) {
	count, err := s.vectors.Count(ctx)
	if err != nil {
		return domain.IndexHandle{}, fmt.Errorf("count vectors: %w", err)
	}
	return domain.IndexHandle{Collection: s.vectors.Collection(), Count: count}, nil
}
