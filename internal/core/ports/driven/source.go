package driven

import (
	"context"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
)

// DocumentSource supplies historical grant documents.
type DocumentSource interface {
	// List returns the identifiers and paths of whitelisted documents.
	List(ctx context.Context) ([]DocumentRef, error)

	// Load reads and decodes one document. Format is left unset.
	Load(ctx context.Context, ref DocumentRef) (*domain.RawDocument, error)
}

// DocumentRef points at one document in a source.
type DocumentRef struct {
	ID   string
	Path string
}

// DocumentWatcher reports changes to a document source.
type DocumentWatcher interface {
	// Watch blocks, calling onChange with the refs changed in each burst of
	// events, until ctx is cancelled.
	Watch(ctx context.Context, onChange func([]DocumentRef)) error
}

// OpportunitySource produces opportunity records for a keyword list.
type OpportunitySource interface {
	// Name identifies the source in logs.
	Name() string

	// Search returns records matching the keywords. Ordering is source-defined.
	Search(ctx context.Context, keywords []string) ([]domain.OpportunityRecord, error)
}
