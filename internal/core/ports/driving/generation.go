package driving

import (
	"context"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
)

// GenerationService writes and refines application drafts.
type GenerationService interface {
	// Generate writes each requested section. A failed section holds a
	// placeholder; it never aborts the draft.
	Generate(ctx context.Context, opp domain.OpportunityRecord, sections []domain.SectionType) (*domain.Draft, error)

	// GenerateSection writes a single section.
	GenerateSection(ctx context.Context, opp domain.OpportunityRecord, section domain.SectionType) domain.GeneratedSection

	// Refine rewrites every section of a draft against free-form feedback.
	// A section whose refinement fails keeps its previous text.
	Refine(ctx context.Context, draft *domain.Draft, feedback string) (*domain.Draft, error)
}

// DraftService reads and writes persisted drafts.
type DraftService interface {
	// Save assigns an ID to a new draft and persists it.
	Save(ctx context.Context, draft *domain.Draft) error

	// Get returns a draft by ID or domain.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Draft, error)

	// List returns all drafts, newest first.
	List(ctx context.Context) ([]domain.Draft, error)

	// Delete removes a draft.
	Delete(ctx context.Context, id string) error
}
