package tui

import (
	"context"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
)

type mockRetrieval struct {
	results []domain.SearchResult
}

func (m *mockRetrieval) Index(_ context.Context, chunks []domain.Chunk) (domain.IndexHandle, error) {
	return domain.IndexHandle{Count: len(chunks)}, nil
}

func (m *mockRetrieval) Search(_ context.Context, _ string, _ int) ([]domain.SearchResult, error) {
	return m.results, nil
}

func (m *mockRetrieval) VoiceExamples(_ context.Context, _ string, _ int) ([]domain.SearchResult, error) {
	return m.results, nil
}

func (m *mockRetrieval) Clear(_ context.Context) error { return nil }

func (m *mockRetrieval) Stats(_ context.Context) (domain.IndexHandle, error) {
	return domain.IndexHandle{Count: len(m.results)}, nil
}

type mockDiscovery struct {
	opps []domain.OpportunityRecord
}

func (m *mockDiscovery) Discover(_ context.Context, _ []string) ([]domain.OpportunityRecord, error) {
	return m.opps, nil
}

type mockDrafts struct {
	drafts []domain.Draft
}

func (m *mockDrafts) Save(_ context.Context, d *domain.Draft) error {
	m.drafts = append([]domain.Draft{*d}, m.drafts...)
	return nil
}

func (m *mockDrafts) Get(_ context.Context, id string) (*domain.Draft, error) {
	for i := range m.drafts {
		if m.drafts[i].ID == id {
			return &m.drafts[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockDrafts) List(_ context.Context) ([]domain.Draft, error) {
	return m.drafts, nil
}

func (m *mockDrafts) Delete(_ context.Context, _ string) error { return nil }
