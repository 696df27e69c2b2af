package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driven"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driving"
	"github.com/custodia-labs/grantcraft-cli/internal/logger"
)

// Ensure GenerationService implements the interface.
var _ driving.GenerationService = (*GenerationService)(nil)

// Placeholder returns the text shown for a section whose generation failed.
func Placeholder(section domain.SectionType) string {
	return fmt.Sprintf("Error generating %s section. Please try again. (Check logs for details)", section)
}

// GenerationService writes application sections one LLM call at a time.
// Every call is bounded by the configured timeout and is never retried.
type GenerationService struct {
	composer   *PromptComposer
	llm        driven.LLMService
	normaliser driven.TextNormaliser
	timeout    time.Duration
	options    driven.ChatOptions
	now        func() time.Time
}

// GenerationOption configures a GenerationService.
type GenerationOption func(*GenerationService)

// WithChatOptions sets the token and temperature limits for every call.
func WithChatOptions(opts driven.ChatOptions) GenerationOption {
	return func(s *GenerationService) {
		s.options = opts
	}
}

// WithClock replaces the time source used for draft timestamps.
func WithClock(now func() time.Time) GenerationOption {
	return func(s *GenerationService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewGenerationService creates a generation service.
// The LLM is optional; without it every section holds a placeholder.
// A non-positive timeout uses domain.DefaultLLMTimeout.
func NewGenerationService(
	composer *PromptComposer,
	llm driven.LLMService,
	normaliser driven.TextNormaliser,
	timeout time.Duration,
	opts ...GenerationOption,
) *GenerationService {
	if timeout <= 0 {
		timeout = domain.DefaultLLMTimeout
	}
	s := &GenerationService{
		composer:   composer,
		llm:        llm,
		normaliser: normaliser,
		timeout:    timeout,
		options:    driven.ChatOptions{Temperature: 0.7},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate writes every requested section in order. An empty section list
// selects the default application sections.
func (s *GenerationService) Generate(
	ctx context.Context, opp domain.OpportunityRecord, sections []domain.SectionType,
) (*domain.Draft, error) {
	logger.Section("Generation")
	logger.Debug("Opportunity: %q", opp.Title)
	defer logger.Timed("generation")()

	if len(sections) == 0 {
		sections = domain.DefaultSectionTypes()
	}

	now := s.now()
	draft := &domain.Draft{
		ID:          uuid.NewString(),
		Opportunity: opp,
		Sections:    make([]domain.GeneratedSection, 0, len(sections)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	for _, section := range sections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		draft.Put(s.GenerateSection(ctx, opp, section))
	}

	if failed := draft.FailedCount(); failed > 0 {
		logger.Warn("%d of %d sections failed to generate", failed, len(draft.Sections))
	}
	return draft, nil
}

// GenerateSection writes one section. Failures yield a placeholder section.
func (s *GenerationService) GenerateSection(
	ctx context.Context, opp domain.OpportunityRecord, section domain.SectionType,
) domain.GeneratedSection {
	req := s.composer.Request(ctx, opp, section)

	text, err := s.chat(ctx, s.composer.Messages(req))
	if err != nil {
		logger.Error("Generating %s failed: %v", section, err)
		return domain.GeneratedSection{Type: section, Text: Placeholder(section), Failed: true}
	}

	return domain.GeneratedSection{Type: section, Text: text}
}

// Refine rewrites every section of a draft against the feedback and returns
// the refined copy. A section whose refinement fails keeps its previous text.
func (s *GenerationService) Refine(ctx context.Context, draft *domain.Draft, feedback string) (*domain.Draft, error) {
	if draft == nil {
		return nil, fmt.Errorf("%w: no draft", domain.ErrInvalidInput)
	}
	feedback = strings.TrimSpace(feedback)
	if feedback == "" {
		return nil, fmt.Errorf("%w: feedback is empty", domain.ErrInvalidInput)
	}

	logger.Section("Refinement")
	logger.Debug("Draft %s, feedback: %q", draft.ID, feedback)

	refined := *draft
	refined.Sections = make([]domain.GeneratedSection, len(draft.Sections))
	copy(refined.Sections, draft.Sections)

	for i, section := range refined.Sections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := s.chat(ctx, s.composer.RefineMessages(section.Type, section.Text, feedback))
		if err != nil {
			logger.Error("Refining %s failed: %v", section.Type, err)
			continue
		}
		refined.Sections[i] = domain.GeneratedSection{Type: section.Type, Text: text}
	}

	refined.UpdatedAt = s.now()
	return &refined, nil
}

// chat makes one bounded LLM call and normalises the reply.
func (s *GenerationService) chat(ctx context.Context, messages []driven.ChatMessage) (string, error) {
	if s.llm == nil {
		return "", domain.ErrLLMUnavailable
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	reply, err := s.llm.Chat(callCtx, messages, s.options)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}
	logger.Debug("LLM replied in %s", time.Since(start).Round(time.Millisecond))

	if strings.TrimSpace(reply) == "" {
		return "", fmt.Errorf("%w: empty response", domain.ErrGenerationFailed)
	}
	if s.normaliser != nil {
		reply = s.normaliser.Normalise(reply)
	}
	return reply, nil
}
