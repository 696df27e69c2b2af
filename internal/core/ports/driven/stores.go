package driven

import (
	"context"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
)

// VoiceStore persists the voice signature of each ingested document.
type VoiceStore interface {
	// SaveVoice replaces the stored signature for a document.
	SaveVoice(ctx context.Context, docID string, sig domain.VoiceSignature) error

	// Voice returns the merged signature across all documents, in document ID order.
	Voice(ctx context.Context) (domain.VoiceSignature, error)

	// ClearVoice removes all stored signatures.
	ClearVoice(ctx context.Context) error
}

// DraftStore persists application drafts.
type DraftStore interface {
	// SaveDraft inserts or replaces a draft.
	SaveDraft(ctx context.Context, draft *domain.Draft) error

	// GetDraft returns a draft by ID or domain.ErrNotFound.
	GetDraft(ctx context.Context, id string) (*domain.Draft, error)

	// ListDrafts returns all drafts, newest first.
	ListDrafts(ctx context.Context) ([]domain.Draft, error)

	// DeleteDraft removes a draft. Deleting a missing draft is not an error.
	DeleteDraft(ctx context.Context, id string) error
}
