package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driven"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driving"
	"github.com/custodia-labs/grantcraft-cli/internal/logger"
)

// Retrieval limits used when composing a generation request.
const (
	contextSearchK = 3
	voiceSearchK   = 10
	promptContextN = 2
	promptVoiceN   = 3
	unknownField   = "Unknown"
)

// DefaultGenerationSystemPrompt is the fallback identity and style directive.
// %s is replaced with the organisation name.
const DefaultGenerationSystemPrompt = `You are a grant writing assistant for %s, a nonprofit organisation.

Your writing should be:
- Professional yet warm and human-centered
- Focused on impact and community empowerment
- Specific about measurable outcomes
- Authentic to the organisation's mission and voice
- Natural and conversational, avoiding overly formal or robotic language
- Free of typos, double punctuation, or formatting errors

Use natural connecting words like 'where' and 'which' to create flowing paragraphs. Write in complete paragraphs rather than bullet points or numbered lists unless specifically requested. Use only single periods, no double periods (..) or double hyphens (--).`

// DefaultRefineSystemPrompt is the fallback directive for refinement.
// The first %s is the section name in words, the second the organisation name.
const DefaultRefineSystemPrompt = `You are refining the %s section of a grant application for %s based on user feedback.

CRITICAL FORMATTING RULES:
- Use ONLY single periods (.) at the end of sentences - NEVER double periods (..)
- Use ONLY single hyphens (-) - NEVER double hyphens (--)
- Write professional grant language without typos or formatting errors
- Proofread carefully for double punctuation before responding`

// DefaultPrompts returns the built-in templates keyed by prompt name.
func DefaultPrompts() map[string]string {
	return map[string]string{
		driven.PromptGenerationSystem: DefaultGenerationSystemPrompt,
		driven.PromptRefineSystem:     DefaultRefineSystemPrompt,
	}
}

const defaultSectionInstruction = "Write appropriate content for this grant application section."

// sectionInstruction returns the writing instruction for a section type.
func sectionInstruction(section domain.SectionType, profile domain.OrganizationProfile) string {
	switch section {
	case domain.SectionProjectOverview:
		return fmt.Sprintf("Write a compelling 3-4 sentence project overview that captures the essence of "+
			"the proposed work and its alignment with both the grant opportunity and %s' mission.", profile.Name)
	case domain.SectionOrganizationalBackground:
		return fmt.Sprintf("Describe %s' background, mission, and relevant experience. Focus on our work with "+
			"underestimated BIPOC communities, the %s platform, and our track record of impact.", profile.Name, profile.Program)
	case domain.SectionProjectDescription:
		return fmt.Sprintf("Provide a detailed description of the proposed project, explaining how it builds on "+
			"%s' existing work and addresses the specific needs outlined in the grant opportunity.", profile.Name)
	case domain.SectionIntendedOutcomes:
		return "Describe the expected outcomes and impact of the project, including specific metrics " +
			"and how success will be measured."
	case domain.SectionImplementationPlan:
		return "Outline the project implementation approach, timeline, and key milestones."
	case domain.SectionSustainabilityPlan:
		return "Explain how the project will be sustained beyond the grant period, including revenue models " +
			"and long-term planning."
	default:
		return defaultSectionInstruction
	}
}

// PromptComposer turns an opportunity and a section type into chat messages
// conditioned on retrieved examples of the organisation's past writing.
type PromptComposer struct {
	retrieval   driving.RetrievalService
	profile     domain.OrganizationProfile
	promptStore driven.PromptStore
}

// NewPromptComposer creates a composer. The retrieval service is optional;
// without it requests carry no excerpts.
func NewPromptComposer(retrieval driving.RetrievalService, profile domain.OrganizationProfile) *PromptComposer {
	return &PromptComposer{retrieval: retrieval, profile: profile}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
// If not set, the composer uses the default prompts.
func (c *PromptComposer) SetPromptStore(store driven.PromptStore) {
	c.promptStore = store
}

// RetrievalQuery joins the opportunity title, its focus areas and the section
// type in words.
func RetrievalQuery(opp domain.OpportunityRecord, section domain.SectionType) string {
	return strings.Join([]string{
		opp.Title,
		strings.Join(opp.FocusAreas, " "),
		section.Words(),
	}, " ")
}

// Request gathers the retrieved context and voice excerpts for one section.
// Retrieval failures degrade to an empty excerpt list.
func (c *PromptComposer) Request(
	ctx context.Context, opp domain.OpportunityRecord, section domain.SectionType,
) domain.GenerationRequest {
	req := domain.GenerationRequest{
		Opportunity: opp,
		SectionType: section,
		Context:     []string{},
		Voice:       []string{},
	}
	if c.retrieval == nil {
		return req
	}

	results, err := c.retrieval.Search(ctx, RetrievalQuery(opp, section), contextSearchK)
	if err != nil {
		logger.Warn("Context retrieval for %s failed: %v", section, err)
	}
	req.Context = texts(results)

	voice, err := c.retrieval.VoiceExamples(ctx, "", voiceSearchK)
	if err != nil {
		logger.Warn("Voice retrieval for %s failed: %v", section, err)
	}
	req.Voice = texts(voice)

	logger.Debug("Composed %s with %d context and %d voice excerpts", section, len(req.Context), len(req.Voice))
	return req
}

// texts keeps the non-empty result texts in order.
func texts(results []domain.SearchResult) []string {
	out := []string{}
	for _, r := range results {
		if r.Text != "" {
			out = append(out, r.Text)
		}
	}
	return out
}

// Messages renders a generation request as a system and a user message.
func (c *PromptComposer) Messages(req domain.GenerationRequest) []driven.ChatMessage {
	system := fmt.Sprintf(c.loadPrompt(driven.PromptGenerationSystem, DefaultGenerationSystemPrompt), c.profile.Name)
	system += fmt.Sprintf("\n\nFor this section (%s): %s", req.SectionType, sectionInstruction(req.SectionType, c.profile))

	return []driven.ChatMessage{
		{Role: driven.RoleSystem, Content: system},
		{Role: driven.RoleUser, Content: c.userPrompt(req)},
	}
}

func (c *PromptComposer) userPrompt(req domain.GenerationRequest) string {
	opp := req.Opportunity
	var b strings.Builder

	b.WriteString("Grant Opportunity Details:\n")
	fmt.Fprintf(&b, "Title: %s\n", orDefault(opp.Title, unknownField))
	fmt.Fprintf(&b, "Organization: %s\n", orDefault(opp.Organization, unknownField))
	fmt.Fprintf(&b, "Deadline: %s\n", opp.DeadlineOrDefault())
	fmt.Fprintf(&b, "Amount: %s\n", opp.AmountOrDefault())
	fmt.Fprintf(&b, "Focus Areas: %s\n", strings.Join(opp.FocusAreas, ", "))
	fmt.Fprintf(&b, "Description: %s\n", opp.Description)
	if opp.Eligibility != "" {
		fmt.Fprintf(&b, "Eligibility: %s\n", opp.Eligibility)
	}
	requirements := domain.NotSpecified
	if len(opp.Requirements) > 0 {
		requirements = strings.Join(opp.Requirements, "; ")
	}
	fmt.Fprintf(&b, "\nRequirements: %s\n", requirements)

	b.WriteString("\nRelevant Examples from Past Applications:\n")
	for i, example := range head(req.Context, promptContextN) {
		fmt.Fprintf(&b, "\nExample %d: %s\n", i+1, example)
	}

	fmt.Fprintf(&b, "\n%s Organizational Voice Examples:\n", c.profile.Name)
	for i, example := range head(req.Voice, promptVoiceN) {
		fmt.Fprintf(&b, "\nVoice Example %d: %s\n", i+1, example)
	}

	fmt.Fprintf(&b, "\nBased on this grant opportunity and using %s' authentic voice and approach, "+
		"write the %s section of the grant application.\n\n", c.profile.Name, req.SectionType.Words())
	b.WriteString("Remember:\n")
	fmt.Fprintf(&b, "- Stay true to %s' mission of empowering underestimated BIPOC youth and adults\n", c.profile.Name)
	fmt.Fprintf(&b, "- Reference the %s platform where relevant\n", c.profile.Program)
	b.WriteString("- Use specific, measurable impact metrics\n")
	b.WriteString("- Write in flowing paragraphs with natural language\n")
	b.WriteString("- Be conversational and human-centered, not robotic\n")
	b.WriteString("- Focus on community empowerment and equitable access\n\n")
	b.WriteString("Write the section now:")

	return b.String()
}

// RefineMessages builds the messages that rewrite existing section text
// against free-form feedback.
func (c *PromptComposer) RefineMessages(section domain.SectionType, content, feedback string) []driven.ChatMessage {
	system := fmt.Sprintf(c.loadPrompt(driven.PromptRefineSystem, DefaultRefineSystemPrompt), section.Words(), c.profile.Name)

	user := fmt.Sprintf(`Original content:
%s

Feedback to address:
%s

Please revise the content to address the feedback while maintaining %s' authentic voice and mission focus. Keep the writing natural, conversational, and human-centered.

CRITICAL: Use only single periods (.) - NEVER double periods (..). Check your output carefully.`, content, feedback, c.profile.Name)

	return []driven.ChatMessage{
		{Role: driven.RoleSystem, Content: system},
		{Role: driven.RoleUser, Content: user},
	}
}

// loadPrompt loads a prompt from the store, falling back to the default if unavailable.
func (c *PromptComposer) loadPrompt(name, fallback string) string {
	if c.promptStore == nil {
		return fallback
	}
	prompt, err := c.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
