package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driven"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driving"
)

// Ensure DraftService implements the interface.
var _ driving.DraftService = (*DraftService)(nil)

// DraftService manages persisted drafts.
type DraftService struct {
	store driven.DraftStore
	now   func() time.Time
}

// NewDraftService creates a draft service.
func NewDraftService(store driven.DraftStore) *DraftService {
	return &DraftService{store: store, now: time.Now}
}

// Save persists a draft, assigning an ID and creation time when missing.
func (s *DraftService) Save(ctx context.Context, draft *domain.Draft) error {
	if draft == nil {
		return fmt.Errorf("%w: no draft", domain.ErrInvalidInput)
	}
	if draft.ID == "" {
		draft.ID = uuid.NewString()
	}
	now := s.now()
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = now
	}
	if draft.UpdatedAt.IsZero() {
		draft.UpdatedAt = draft.CreatedAt
	}
	if err := s.store.SaveDraft(ctx, draft); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// Get returns a draft by ID.
func (s *DraftService) Get(ctx context.Context, id string) (*domain.Draft, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: draft id is required", domain.ErrInvalidInput)
	}
	return s.store.GetDraft(ctx, id)
}

// List returns all drafts, newest first.
func (s *DraftService) List(ctx context.Context) ([]domain.Draft, error) {
	return s.store.ListDrafts(ctx)
}

// Delete removes a draft.
func (s *DraftService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: draft id is required", domain.ErrInvalidInput)
	}
	return s.store.DeleteDraft(ctx, id)
}
