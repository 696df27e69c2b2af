package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driven"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driving"
	"github.com/custodia-labs/grantcraft-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService runs historical documents through parsing, chunking and indexing.
type IngestService struct {
	source     driven.DocumentSource
	normaliser driven.Normaliser
	pipeline   driven.PostProcessorPipeline
	retrieval  driving.RetrievalService
	voices     driven.VoiceStore
}

// NewIngestService creates an ingest service.
// The voice store is optional; without it Voice re-parses the source.
func NewIngestService(
	source driven.DocumentSource,
	normaliser driven.Normaliser,
	pipeline driven.PostProcessorPipeline,
	retrieval driving.RetrievalService,
	voices driven.VoiceStore,
) *IngestService {
	return &IngestService{
		source:     source,
		normaliser: normaliser,
		pipeline:   pipeline,
		retrieval:  retrieval,
		voices:     voices,
	}
}

// Parse loads and parses every whitelisted document.
// Documents that fail to load or parse are logged and returned by path in skipped.
func (s *IngestService) Parse(ctx context.Context) ([]*domain.ParsedDocument, []string, error) {
	refs, err := s.source.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list documents: %w", err)
	}
	logger.Debug("Found %d documents", len(refs))

	docs := make([]*domain.ParsedDocument, 0, len(refs))
	skipped := []string{}
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		raw, err := s.source.Load(ctx, ref)
		if err != nil {
			logger.Warn("Skipping %s: %v", ref.Path, err)
			skipped = append(skipped, ref.Path)
			continue
		}

		doc, err := s.normaliser.Normalise(ctx, raw)
		if err != nil {
			logger.Warn("Skipping %s: %v", ref.Path, err)
			skipped = append(skipped, ref.Path)
			continue
		}

		logger.Debug("Parsed %s as %s (%d sections)", doc.ID, doc.Format, len(doc.Sections))
		docs = append(docs, doc)
	}

	return docs, skipped, nil
}

// Ingest parses, chunks and indexes every whitelisted document and records
// each document's voice signature. The index and voice store are replaced,
// so chunks and phrases from edited or removed documents do not survive a
// re-ingest. Nothing is cleared until every document has been chunked.
func (s *IngestService) Ingest(ctx context.Context) (*domain.IngestReport, error) {
	logger.Section("Ingestion")
	defer logger.Timed("ingestion")()

	docs, skipped, err := s.Parse(ctx)
	if err != nil {
		return nil, err
	}

	report := &domain.IngestReport{
		Documents: len(docs),
		Skipped:   skipped,
		Formats:   make(map[domain.FormatTag]int),
	}

	var chunks []domain.Chunk
	for _, doc := range docs {
		report.Formats[doc.Format]++

		docChunks, err := s.pipeline.Process(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("chunk %s: %w", doc.ID, err)
		}
		chunks = append(chunks, docChunks...)
	}
	report.Chunks = len(chunks)

	if err := s.Clear(ctx); err != nil {
		return nil, err
	}
	if s.voices != nil {
		for _, doc := range docs {
			if err := s.voices.SaveVoice(ctx, doc.ID, doc.Voice); err != nil {
				return nil, fmt.Errorf("save voice for %s: %w", doc.ID, err)
			}
		}
	}

	handle, err := s.retrieval.Index(ctx, chunks)
	if err != nil {
		return nil, err
	}
	report.Index = handle

	logger.Info("Ingested %d documents into %d chunks (%d skipped)", report.Documents, report.Chunks, len(skipped))
	return report, nil
}

// Clear empties the index and the stored voice signatures.
func (s *IngestService) Clear(ctx context.Context) error {
	if err := s.retrieval.Clear(ctx); err != nil {
		return err
	}
	if s.voices == nil {
		return nil
	}
	if err := s.voices.ClearVoice(ctx); err != nil {
		return fmt.Errorf("clear voice: %w", err)
	}
	return nil
}

// Voice returns the merged voice signature of every ingested document.
func (s *IngestService) Voice(ctx context.Context) (domain.VoiceSignature, error) {
	if s.voices != nil {
		return s.voices.Voice(ctx)
	}

	docs, _, err := s.Parse(ctx)
	if err != nil {
		return domain.VoiceSignature{}, err
	}
	merged := emptySignature()
	for _, doc := range docs {
		merged = merged.Merge(doc.Voice)
	}
	return merged, nil
}

func emptySignature() domain.VoiceSignature {
	return domain.VoiceSignature{
		MissionPhrases:  []string{},
		PopulationFocus: []string{},
		ProgramNames:    []string{},
		ImpactMetrics:   []string{},
		ValuesLanguage:  []string{},
	}
}
