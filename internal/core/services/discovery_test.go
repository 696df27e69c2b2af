package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driven"
)

// stubSource returns fixed records and remembers the keywords it was given.
type stubSource struct {
	name     string
	records  []domain.OpportunityRecord
	err      error
	keywords [][]string
}

var _ driven.OpportunitySource = (*stubSource)(nil)

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Search(_ context.Context, keywords []string) ([]domain.OpportunityRecord, error) {
	s.keywords = append(s.keywords, keywords)
	return s.records, s.err
}

func TestRelevanceScore(t *testing.T) {
	focus := []string{"education", "AI", "youth", "digital skills"}

	tests := []struct {
		name   string
		record domain.OpportunityRecord
		want   int
	}{
		{"no match", domain.OpportunityRecord{Title: "Parks Grant"}, 0},
		{"case insensitive", domain.OpportunityRecord{Title: "EDUCATION fund", Description: "for Youth"}, 2},
		{"counts keywords not occurrences", domain.OpportunityRecord{Title: "education education education"}, 1},
		{"focus areas searched", domain.OpportunityRecord{FocusAreas: []string{"Digital Skills", "Education"}}, 2},
		{"substring match", domain.OpportunityRecord{Description: "maintain trails"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelevanceScore(tt.record, focus))
		})
	}
}

func TestFilterRelevant(t *testing.T) {
	focus := []string{"education", "technology", "youth", "workforce"}
	records := []domain.OpportunityRecord{
		{Title: "A", Description: "education technology"},
		{Title: "B", Description: "only education"},
		{Title: "C", Description: "education technology youth workforce"},
		{Title: "D", Description: "youth workforce"},
	}

	relevant := FilterRelevant(records, focus)

	require.Len(t, relevant, 3)
	assert.Equal(t, "C", relevant[0].Title)
	assert.Equal(t, 4, relevant[0].Score())
	// Equal scores keep input order.
	assert.Equal(t, "A", relevant[1].Title)
	assert.Equal(t, "D", relevant[2].Title)
	assert.Nil(t, records[0].RelevanceScore, "input records are not modified")
}

func TestFilterRelevant_Empty(t *testing.T) {
	relevant := FilterRelevant(nil, domain.DefaultFocusKeywords())
	assert.NotNil(t, relevant)
	assert.Empty(t, relevant)
}

func TestDiscoveryService_Discover(t *testing.T) {
	good := &stubSource{name: "good", records: []domain.OpportunityRecord{
		{Title: "AI for Education", Description: "technology for youth"},
		{Title: "Bridge repair"},
	}}
	broken := &stubSource{name: "broken", err: errBackend}
	more := &stubSource{name: "more", records: []domain.OpportunityRecord{
		{Title: "Workforce Innovation", Description: "nonprofit"},
	}}
	settings := domain.DefaultAppSettings().Discovery
	service := NewDiscoveryService(settings, good, broken, more)

	records, err := service.Discover(context.Background(), []string{"education"})

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "AI for Education", records[0].Title)
	assert.Equal(t, "Workforce Innovation", records[1].Title)
	assert.Equal(t, [][]string{{"education"}}, good.keywords)
	assert.Equal(t, [][]string{{"education"}}, broken.keywords)
}

func TestDiscoveryService_DefaultKeywordsAndLimit(t *testing.T) {
	var many []domain.OpportunityRecord
	for i := 0; i < 5; i++ {
		many = append(many, domain.OpportunityRecord{Title: "Education technology grant"})
	}
	source := &stubSource{name: "many", records: many}
	settings := domain.DiscoverySettings{
		MaxResults:     3,
		SearchKeywords: []string{"AI", "nonprofit"},
	}
	service := NewDiscoveryService(settings, source)

	records, err := service.Discover(context.Background(), nil)

	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, [][]string{{"AI", "nonprofit"}}, source.keywords)
}

func TestDiscoveryService_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	service := NewDiscoveryService(domain.DiscoverySettings{}, &stubSource{name: "s"})

	_, err := service.Discover(ctx, nil)

	assert.ErrorIs(t, err, context.Canceled)
}
