package grant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
)

type stubVoice struct {
	seen string
}

func (s *stubVoice) Extract(text string) domain.VoiceSignature {
	s.seen = text
	return domain.VoiceSignature{MissionPhrases: []string{"Our mission"}}
}

func TestNormalise_NilInput(t *testing.T) {
	_, err := New(nil).Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalise_ClassifiesAndExtracts(t *testing.T) {
	voice := &stubVoice{}
	raw := &domain.RawDocument{ID: "DATA_BRL_2024", Path: "/docs/DATA_BRL_2024.txt", Text: "one\ntwo"}

	doc, err := New(voice).Normalise(context.Background(), raw)

	require.NoError(t, err)
	assert.Equal(t, "DATA_BRL_2024", doc.ID)
	assert.Equal(t, domain.FormatCatalyst, doc.Format)
	assert.Equal(t, []string{"content_0", "content_1"}, doc.SectionNames())
	assert.Equal(t, []string{"Our mission"}, doc.Voice.MissionPhrases)
	assert.Equal(t, "one\ntwo", voice.seen, "voice scans the raw text")
	require.NotNil(t, doc.Raw)
	assert.Equal(t, domain.FormatCatalyst, doc.Raw.Format)
	assert.Empty(t, raw.Format, "input document is not modified")
}

func TestNormalise_KeepsPresetFormat(t *testing.T) {
	raw := &domain.RawDocument{ID: "DATA_AWS", Format: domain.FormatGeneral, Text: "para one\n\npara two"}

	doc, err := New(nil).Normalise(context.Background(), raw)

	require.NoError(t, err)
	assert.Equal(t, domain.FormatGeneral, doc.Format)
	assert.Len(t, doc.Sections, 2)
	assert.Zero(t, doc.Voice.Len())
}

func TestNormalise_StructuredWithoutMatchesIsEmpty(t *testing.T) {
	raw := &domain.RawDocument{ID: "DATA_AWS_Letter", Text: "Thank you for your support of our work."}

	doc, err := New(nil).Normalise(context.Background(), raw)

	require.NoError(t, err)
	assert.Equal(t, domain.FormatStructured, doc.Format)
	assert.Empty(t, doc.Sections)
}
