package driving

import (
	"context"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
)

// IngestService loads historical documents into the retrieval index.
type IngestService interface {
	// Ingest parses, chunks and indexes every whitelisted document,
	// replacing what the previous ingest stored. Unreadable documents are
	// skipped and reported, never fatal.
	Ingest(ctx context.Context) (*domain.IngestReport, error)

	// Parse returns the parsed form of every whitelisted document without indexing.
	Parse(ctx context.Context) ([]*domain.ParsedDocument, []string, error)

	// Clear empties the index and the stored voice signatures.
	Clear(ctx context.Context) error

	// Voice returns the organisation's merged voice signature.
	Voice(ctx context.Context) (domain.VoiceSignature, error)
}
