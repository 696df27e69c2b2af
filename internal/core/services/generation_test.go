package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driven"
	"github.com/custodia-labs/grantcraft-cli/internal/normalisers/output"
)

var fixedTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestGeneration(llm driven.LLMService) *GenerationService {
	composer := NewPromptComposer(&stubRetrieval{results: results("past answer")}, domain.DefaultOrganizationProfile())
	return NewGenerationService(composer, llm, output.New(), time.Minute, WithClock(func() time.Time { return fixedTime }))
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t,
		"Error generating project_overview section. Please try again. (Check logs for details)",
		Placeholder(domain.SectionProjectOverview))
}

func TestGenerationService_GenerateDefaultSections(t *testing.T) {
	llm := &mockLLM{respond: func([]driven.ChatMessage) (string, error) {
		return "**Cambio Labs** serves youth..  ", nil
	}}
	service := newTestGeneration(llm)

	draft, err := service.Generate(context.Background(), sampleOpportunity(), nil)

	require.NoError(t, err)
	assert.NotEmpty(t, draft.ID)
	assert.Equal(t, fixedTime, draft.CreatedAt)
	assert.Equal(t, sampleOpportunity(), draft.Opportunity)
	require.Len(t, draft.Sections, len(domain.DefaultSectionTypes()))
	for i, section := range draft.Sections {
		assert.Equal(t, domain.DefaultSectionTypes()[i], section.Type)
		assert.Equal(t, "Cambio Labs serves youth.", section.Text)
		assert.False(t, section.Failed)
	}
	assert.Equal(t, len(domain.DefaultSectionTypes()), llm.calls())
	assert.Zero(t, draft.FailedCount())
}

func TestGenerationService_CallsAreBounded(t *testing.T) {
	llm := &mockLLM{}
	service := newTestGeneration(llm)

	_, err := service.Generate(context.Background(), sampleOpportunity(), []domain.SectionType{domain.SectionProjectOverview})

	require.NoError(t, err)
	assert.Equal(t, []bool{true}, llm.deadline)
}

func TestGenerationService_PartialFailure(t *testing.T) {
	llm := &mockLLM{respond: func(messages []driven.ChatMessage) (string, error) {
		if strings.Contains(messages[0].Content, "(intended_outcomes)") {
			return "", context.DeadlineExceeded
		}
		return "Fine text", nil
	}}
	service := newTestGeneration(llm)
	sections := []domain.SectionType{
		domain.SectionProjectOverview,
		domain.SectionIntendedOutcomes,
		domain.SectionSustainabilityPlan,
	}

	draft, err := service.Generate(context.Background(), sampleOpportunity(), sections)

	require.NoError(t, err)
	require.Len(t, draft.Sections, 3)
	assert.Equal(t, "Fine text.", draft.Sections[0].Text)
	assert.Equal(t, Placeholder(domain.SectionIntendedOutcomes), draft.Sections[1].Text)
	assert.True(t, draft.Sections[1].Failed)
	assert.Equal(t, "Fine text.", draft.Sections[2].Text)
	assert.Equal(t, 1, draft.FailedCount())
	// One call per section, no retry.
	assert.Equal(t, 3, llm.calls())
}

func TestGenerationService_EmptyReplyIsFailure(t *testing.T) {
	llm := &mockLLM{respond: func([]driven.ChatMessage) (string, error) { return "  \n", nil }}
	service := newTestGeneration(llm)

	section := service.GenerateSection(context.Background(), sampleOpportunity(), domain.SectionProjectOverview)

	assert.True(t, section.Failed)
	assert.Equal(t, Placeholder(domain.SectionProjectOverview), section.Text)
}

func TestGenerationService_NoLLM(t *testing.T) {
	service := newTestGeneration(nil)

	draft, err := service.Generate(context.Background(), sampleOpportunity(), []domain.SectionType{domain.SectionProjectOverview})

	require.NoError(t, err)
	assert.Equal(t, 1, draft.FailedCount())
}

func TestGenerationService_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	service := newTestGeneration(&mockLLM{})

	_, err := service.Generate(ctx, sampleOpportunity(), nil)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerationService_UsesRetrievedContext(t *testing.T) {
	llm := &mockLLM{}
	service := newTestGeneration(llm)

	service.GenerateSection(context.Background(), sampleOpportunity(), domain.SectionProjectDescription)

	require.Equal(t, 1, llm.calls())
	assert.Contains(t, llm.requests[0][1].Content, "Example 1: past answer")
}

func TestGenerationService_Refine(t *testing.T) {
	llm := &mockLLM{respond: func(messages []driven.ChatMessage) (string, error) {
		if strings.Contains(messages[1].Content, "keep me") {
			return "", errBackend
		}
		return "Refined -- text", nil
	}}
	service := newTestGeneration(llm)
	draft := &domain.Draft{
		ID: "d1",
		Sections: []domain.GeneratedSection{
			{Type: domain.SectionProjectOverview, Text: "old overview"},
			{Type: domain.SectionIntendedOutcomes, Text: "keep me"},
			{Type: domain.SectionImplementationPlan, Text: Placeholder(domain.SectionImplementationPlan), Failed: true},
		},
	}

	refined, err := service.Refine(context.Background(), draft, "  More specific  ")

	require.NoError(t, err)
	assert.Equal(t, "d1", refined.ID)
	assert.Equal(t, fixedTime, refined.UpdatedAt)
	assert.Equal(t, "Refined - text.", refined.Sections[0].Text)
	assert.Equal(t, "keep me", refined.Sections[1].Text)
	assert.Equal(t, "Refined - text.", refined.Sections[2].Text)
	assert.False(t, refined.Sections[2].Failed)
	assert.Contains(t, llm.requests[0][1].Content, "Feedback to address:\nMore specific\n")

	// The input draft is left unchanged.
	assert.Equal(t, "old overview", draft.Sections[0].Text)
	assert.True(t, draft.Sections[2].Failed)
}

func TestGenerationService_RefineInvalidInput(t *testing.T) {
	service := newTestGeneration(&mockLLM{})

	_, err := service.Refine(context.Background(), nil, "feedback")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = service.Refine(context.Background(), &domain.Draft{}, " ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewGenerationService_DefaultTimeout(t *testing.T) {
	service := NewGenerationService(NewPromptComposer(nil, domain.DefaultOrganizationProfile()), nil, nil, 0)
	assert.Equal(t, domain.DefaultLLMTimeout, service.timeout)
}
