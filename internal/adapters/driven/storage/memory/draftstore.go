package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driven"
)

// Ensure DraftStore implements the interface.
var _ driven.DraftStore = (*DraftStore)(nil)

// DraftStore is an in-memory implementation of driven.DraftStore.
type DraftStore struct {
	mu     sync.RWMutex
	drafts map[string]domain.Draft
}

// NewDraftStore creates an empty draft store.
func NewDraftStore() *DraftStore {
	return &DraftStore{drafts: make(map[string]domain.Draft)}
}

// SaveDraft inserts or replaces a draft.
func (s *DraftStore) SaveDraft(_ context.Context, draft *domain.Draft) error {
	if draft == nil || draft.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[draft.ID] = copyDraft(*draft)
	return nil
}

// GetDraft returns a draft by ID.
func (s *DraftStore) GetDraft(_ context.Context, id string) (*domain.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := copyDraft(draft)
	return &out, nil
}

// ListDrafts returns all drafts, newest first.
func (s *DraftStore) ListDrafts(_ context.Context) ([]domain.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	drafts := make([]domain.Draft, 0, len(s.drafts))
	for _, d := range s.drafts {
		drafts = append(drafts, copyDraft(d))
	}
	sort.Slice(drafts, func(i, j int) bool {
		if drafts[i].CreatedAt.Equal(drafts[j].CreatedAt) {
			return drafts[i].ID < drafts[j].ID
		}
		return drafts[i].CreatedAt.After(drafts[j].CreatedAt)
	})
	return drafts, nil
}

// DeleteDraft removes a draft.
func (s *DraftStore) DeleteDraft(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
	return nil
}

// copyDraft detaches the section slice so callers cannot mutate stored drafts.
func copyDraft(d domain.Draft) domain.Draft {
	d.Sections = append([]domain.GeneratedSection(nil), d.Sections...)
	return d
}
