package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driven"
	"github.com/custodia-labs/grantcraft-cli/internal/normalisers/grant"
	"github.com/custodia-labs/grantcraft-cli/internal/normalisers/voice"
	"github.com/custodia-labs/grantcraft-cli/internal/postprocessors"
	"github.com/custodia-labs/grantcraft-cli/internal/postprocessors/chunker"
)

// fakeSource serves documents from memory. Paths listed in broken fail to load.
type fakeSource struct {
	docs    []domain.RawDocument
	broken  map[string]bool
	listErr error
}

var _ driven.DocumentSource = (*fakeSource)(nil)

func (f *fakeSource) List(context.Context) ([]driven.DocumentRef, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	refs := make([]driven.DocumentRef, len(f.docs))
	for i, d := range f.docs {
		refs[i] = driven.DocumentRef{ID: d.ID, Path: d.Path}
	}
	return refs, nil
}

func (f *fakeSource) Load(_ context.Context, ref driven.DocumentRef) (*domain.RawDocument, error) {
	if f.broken[ref.Path] {
		return nil, domain.ErrDecodeFailed
	}
	for _, d := range f.docs {
		if d.ID == ref.ID {
			doc := d
			return &doc, nil
		}
	}
	return nil, domain.ErrNotFound
}

func sampleDocuments() []domain.RawDocument {
	return []domain.RawDocument{
		{
			ID:   "DATA AWS Application",
			Path: "docs/DATA AWS Application.txt",
			Text: "1.1 Please provide a high-level project overview. Our mission is to serve BIPOC youth.\n1.2 Budget",
		},
		{
			ID:   "DATA BRL Catalyst",
			Path: "docs/DATA BRL Catalyst.txt",
			Text: "Journey helps 500 learners\n\nWe are inclusive",
		},
		{
			ID:   "Scaling Impact",
			Path: "docs/Scaling Impact.txt",
			Text: "First paragraph about youth.\n\nSecond paragraph about adults.",
		},
	}
}

func newTestIngest(t *testing.T, source driven.DocumentSource, voices driven.VoiceStore) (*IngestService, *RetrievalService) {
	t.Helper()
	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry)
	pipeline, err := postprocessors.FromConfig(registry, domain.DefaultPipelineConfig())
	require.NoError(t, err)

	retrieval := newTestRetrieval(&fakeEmbedder{})
	normaliser := grant.New(voice.Default())
	return NewIngestService(source, normaliser, pipeline, retrieval, voices), retrieval
}

func TestIngestService_Ingest(t *testing.T) {
	ctx := context.Background()
	voices := memory.NewVoiceStore()
	service, retrieval := newTestIngest(t, &fakeSource{docs: sampleDocuments()}, voices)

	report, err := service.Ingest(ctx)

	require.NoError(t, err)
	assert.Equal(t, 3, report.Documents)
	assert.Empty(t, report.Skipped)
	// overview + two lines + two paragraphs
	assert.Equal(t, 5, report.Chunks)
	assert.Equal(t, map[domain.FormatTag]int{
		domain.FormatStructured: 1,
		domain.FormatCatalyst:   1,
		domain.FormatGeneral:    1,
	}, report.Formats)
	assert.Equal(t, domain.IndexHandle{Collection: domain.DefaultCollection, Count: 5}, report.Index)

	results, err := retrieval.Search(ctx, "youth", 10)
	require.NoError(t, err)
	assert.Len(t, results, 5)

	sig, err := voices.Voice(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"500 learners"}, sig.ImpactMetrics)
	assert.NotEmpty(t, sig.MissionPhrases)
}

func TestIngestService_SkipsUnreadableDocuments(t *testing.T) {
	docs := sampleDocuments()
	source := &fakeSource{docs: docs, broken: map[string]bool{docs[1].Path: true}}
	service, _ := newTestIngest(t, source, nil)

	report, err := service.Ingest(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, report.Documents)
	assert.Equal(t, []string{docs[1].Path}, report.Skipped)
	assert.Equal(t, 3, report.Chunks)
}

func TestIngestService_EmptySource(t *testing.T) {
	service, _ := newTestIngest(t, &fakeSource{}, nil)

	report, err := service.Ingest(context.Background())

	require.NoError(t, err)
	assert.Zero(t, report.Documents)
	assert.Zero(t, report.Chunks)
	assert.Zero(t, report.Index.Count)
}

func TestIngestService_ListFailure(t *testing.T) {
	service, _ := newTestIngest(t, &fakeSource{listErr: errBackend}, nil)

	_, err := service.Ingest(context.Background())

	assert.ErrorIs(t, err, errBackend)
}

func TestIngestService_IndexFailure(t *testing.T) {
	pipeline := postprocessors.NewPipeline(chunker.New())
	retrieval := newTestRetrieval(&fakeEmbedder{err: errBackend})
	service := NewIngestService(&fakeSource{docs: sampleDocuments()}, grant.New(nil), pipeline, retrieval, nil)

	_, err := service.Ingest(context.Background())

	assert.ErrorIs(t, err, errBackend)
}

func TestIngestService_Parse(t *testing.T) {
	service, _ := newTestIngest(t, &fakeSource{docs: sampleDocuments()}, nil)

	docs, skipped, err := service.Parse(context.Background())

	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, docs, 3)
	assert.Equal(t, []string{"project_overview"}, docs[0].SectionNames())
	assert.Equal(t, []string{"content_0", "content_1"}, docs[1].SectionNames())
	assert.Equal(t, []string{"section_0", "section_1"}, docs[2].SectionNames())
}

func TestIngestService_VoiceWithoutStore(t *testing.T) {
	service, _ := newTestIngest(t, &fakeSource{docs: sampleDocuments()}, nil)

	sig, err := service.Voice(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"500 learners"}, sig.ImpactMetrics)
	assert.Equal(t, []string{"Journey helps 500 learners\n\nWe are inclusive"}, sig.ProgramNames)
	assert.NotNil(t, sig.ValuesLanguage)
}

func TestIngestService_VoiceEmpty(t *testing.T) {
	service, _ := newTestIngest(t, &fakeSource{}, nil)

	sig, err := service.Voice(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, sig.MissionPhrases)
	assert.Zero(t, sig.Len())
}

func TestIngestService_ReingestReplacesEditedDocument(t *testing.T) {
	ctx := context.Background()
	source := &fakeSource{docs: []domain.RawDocument{
		{ID: "Scaling Plan", Path: "docs/Scaling Plan.txt", Text: "one\n\ntwo\n\nthree"},
	}}
	service, retrieval := newTestIngest(t, source, nil)

	report, err := service.Ingest(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, report.Chunks)

	source.docs[0].Text = "only paragraph now"
	report, err = service.Ingest(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Chunks)
	assert.Equal(t, report.Chunks, report.Index.Count)

	results, err := retrieval.Search(ctx, "paragraph", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "only paragraph now", results[0].Text)
}

func TestIngestService_ReingestDropsRemovedDocumentVoice(t *testing.T) {
	ctx := context.Background()
	voices := memory.NewVoiceStore()
	source := &fakeSource{docs: []domain.RawDocument{
		{ID: "DATA old", Path: "docs/DATA old.txt", Text: "Our mission is to serve BIPOC youth."},
	}}
	service, _ := newTestIngest(t, source, voices)

	_, err := service.Ingest(ctx)
	require.NoError(t, err)
	sig, err := service.Voice(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, sig.MissionPhrases)

	source.docs = []domain.RawDocument{
		{ID: "DATA new", Path: "docs/DATA new.txt", Text: "Plain text."},
	}
	_, err = service.Ingest(ctx)
	require.NoError(t, err)

	sig, err = service.Voice(ctx)
	require.NoError(t, err)
	assert.Empty(t, sig.MissionPhrases)
	assert.Empty(t, sig.PopulationFocus)
}

func TestIngestService_Clear(t *testing.T) {
	ctx := context.Background()
	voices := memory.NewVoiceStore()
	service, retrieval := newTestIngest(t, &fakeSource{docs: sampleDocuments()}, voices)

	_, err := service.Ingest(ctx)
	require.NoError(t, err)

	require.NoError(t, service.Clear(ctx))

	stats, err := retrieval.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Count)

	sig, err := voices.Voice(ctx)
	require.NoError(t, err)
	assert.Zero(t, sig.Len())
}

func TestIngestService_ChunkFailureKeepsIndex(t *testing.T) {
	ctx := context.Background()
	source := &fakeSource{docs: sampleDocuments()}
	service, retrieval := newTestIngest(t, source, nil)

	_, err := service.Ingest(ctx)
	require.NoError(t, err)

	service.pipeline = failingPipeline{}
	_, err = service.Ingest(ctx)
	require.ErrorIs(t, err, errBackend)

	stats, err := retrieval.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Count)
}

type failingPipeline struct{}

func (failingPipeline) Process(context.Context, *domain.ParsedDocument) ([]domain.Chunk, error) {
	return nil, errBackend
}
