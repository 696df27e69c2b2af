package grant

import (
	"context"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser classifies grant documents and extracts their sections and voice.
type Normaliser struct {
	voice driven.VoiceExtractor
}

// New creates a grant normaliser. The voice extractor is optional; without it
// parsed documents carry an empty voice signature.
func New(voice driven.VoiceExtractor) *Normaliser {
	return &Normaliser{voice: voice}
}

// Normalise converts a raw document into its parsed form.
// A document with no recognisable sections yields an empty section list, not an error.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.ParsedDocument, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	src := *raw
	if !src.Format.IsValid() {
		src.Format = Classify(src.ID)
	}

	doc := &domain.ParsedDocument{
		ID:       src.ID,
		Format:   src.Format,
		Sections: Extract(src.Format, src.Text),
		Raw:      &src,
	}
	if n.voice != nil {
		doc.Voice = n.voice.Extract(src.Text)
	}

	return doc, nil
}
