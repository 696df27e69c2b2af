package mcp

import (
	"context"
	"strings"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
)

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	results   []domain.SearchResult
	stats     domain.IndexHandle
	err       error
	lastQuery string
	lastVoice string
	lastK     int
}

func (m *mockRetrievalService) Index(_ context.Context, chunks []domain.Chunk) (domain.IndexHandle, error) {
	return domain.IndexHandle{Count: len(chunks)}, m.err
}

func (m *mockRetrievalService) Search(_ context.Context, query string, k int) ([]domain.SearchResult, error) {
	m.lastQuery = query
	m.lastK = k
	return m.results, m.err
}

func (m *mockRetrievalService) VoiceExamples(_ context.Context, voiceType string, k int) ([]domain.SearchResult, error) {
	m.lastVoice = voiceType
	m.lastK = k
	return m.results, m.err
}

func (m *mockRetrievalService) Clear(_ context.Context) error {
	return m.err
}

func (m *mockRetrievalService) Stats(_ context.Context) (domain.IndexHandle, error) {
	return m.stats, m.err
}

// mockGenerationService is a mock implementation of driving.GenerationService.
type mockGenerationService struct {
	err error
}

func (m *mockGenerationService) Generate(
	ctx context.Context,
	opp domain.OpportunityRecord,
	sections []domain.SectionType,
) (*domain.Draft, error) {
	if m.err != nil {
		return nil, m.err
	}
	draft := &domain.Draft{ID: "draft-1", Opportunity: opp}
	for _, t := range sections {
		draft.Put(m.GenerateSection(ctx, opp, t))
	}
	return draft, nil
}

func (m *mockGenerationService) GenerateSection(
	_ context.Context,
	opp domain.OpportunityRecord,
	section domain.SectionType,
) domain.GeneratedSection {
	return domain.GeneratedSection{Type: section, Text: section.Title() + " for " + opp.Title}
}

func (m *mockGenerationService) Refine(_ context.Context, draft *domain.Draft, _ string) (*domain.Draft, error) {
	return draft, m.err
}

// mockDiscoveryService is a mock implementation of driving.DiscoveryService.
type mockDiscoveryService struct {
	records  []domain.OpportunityRecord
	keywords []string
	err      error
}

func (m *mockDiscoveryService) Discover(_ context.Context, keywords []string) ([]domain.OpportunityRecord, error) {
	m.keywords = keywords
	return m.records, m.err
}

// mockDraftService is a mock implementation of driving.DraftService.
type mockDraftService struct {
	drafts map[string]*domain.Draft
	err    error
}

func newMockDraftService() *mockDraftService {
	return &mockDraftService{drafts: make(map[string]*domain.Draft)}
}

func (m *mockDraftService) Save(_ context.Context, draft *domain.Draft) error {
	if m.err != nil {
		return m.err
	}
	m.drafts[draft.ID] = draft
	return nil
}

func (m *mockDraftService) Get(_ context.Context, id string) (*domain.Draft, error) {
	if m.err != nil {
		return nil, m.err
	}
	d, ok := m.drafts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

func (m *mockDraftService) List(_ context.Context) ([]domain.Draft, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Draft, 0, len(m.drafts))
	for _, d := range m.drafts {
		out = append(out, *d)
	}
	return out, nil
}

func (m *mockDraftService) Delete(_ context.Context, id string) error {
	delete(m.drafts, id)
	return m.err
}

// upperNormaliser is a stand-in driven.TextNormaliser.
type upperNormaliser struct{}

func (upperNormaliser) Normalise(text string) string {
	return strings.ToUpper(strings.TrimSpace(text))
}
