package driven

import (
	"context"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
)

// Normaliser transforms a raw grant document into its parsed form.
type Normaliser interface {
	// Normalise classifies the document, extracts its sections and scans
	// its voice signature. It fails only on nil input.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*domain.ParsedDocument, error)
}

// VoiceExtractor scans free text for an organisation's signal phrases.
type VoiceExtractor interface {
	// Extract never fails; absence of matches yields empty categories.
	Extract(text string) domain.VoiceSignature
}

// TextNormaliser cleans generated text before it reaches the user.
type TextNormaliser interface {
	// Normalise is total and deterministic; applying it to its own output
	// returns the output unchanged.
	Normalise(text string) string
}
