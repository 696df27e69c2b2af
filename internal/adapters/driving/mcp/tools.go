package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
)

const defaultLimit = 5

// SearchInput is the input schema for the search_examples tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"text to match against past application excerpts"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of excerpts to return (default 5)"`
}

// VoiceInput is the input schema for the voice_examples tool.
type VoiceInput struct {
	VoiceType string `json:"voice_type,omitempty" jsonschema:"optional register to narrow the voice query, such as impact or mission"`
	Limit     int    `json:"limit,omitempty" jsonschema:"maximum number of excerpts to return (default 5)"`
}

// SearchOutput is the output schema for the search tools.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single retrieved excerpt.
type SearchResultOutput struct {
	Source  string   `json:"source"`
	Format  string   `json:"format"`
	Section string   `json:"section"`
	ChunkID string   `json:"chunk_id"`
	Score   *float64 `json:"score,omitempty"`
	Text    string   `json:"text"`
}

// DiscoverInput is the input schema for the discover_grants tool.
type DiscoverInput struct {
	Keywords []string `json:"keywords,omitempty" jsonschema:"search keywords; the configured defaults are used when empty"`
}

// DiscoverOutput is the output schema for the discover_grants tool.
type DiscoverOutput struct {
	Opportunities []domain.OpportunityRecord `json:"opportunities"`
	Count         int                        `json:"count"`
}

// SectionInput is the input schema for the generate_section tool.
type SectionInput struct {
	Opportunity domain.OpportunityRecord `json:"opportunity" jsonschema:"the funding opportunity being applied to"`
	Section     string                   `json:"section" jsonschema:"section type, such as project_overview or intended_outcomes"`
}

// DraftInput is the input schema for the generate_draft tool.
type DraftInput struct {
	Opportunity domain.OpportunityRecord `json:"opportunity" jsonschema:"the funding opportunity being applied to"`
	Sections    []string                 `json:"sections,omitempty" jsonschema:"section types to write; the standard six when empty"`
	Save        bool                     `json:"save,omitempty" jsonschema:"persist the draft so it can be refined later"`
}

// NormalizeInput is the input schema for the normalize_text tool.
type NormalizeInput struct {
	Text string `json:"text" jsonschema:"model output to clean up"`
}

// NormalizeOutput is the output schema for the normalize_text tool.
type NormalizeOutput struct {
	Text string `json:"text"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_examples",
		Description: "Search past grant applications for excerpts relevant to a query",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "voice_examples",
		Description: "Retrieve excerpts that show the organisation's own voice",
	}, s.handleVoice)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "discover_grants",
		Description: "Find funding opportunities ranked by relevance to the organisation's focus",
	}, s.handleDiscover)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_section",
		Description: "Write one application section for an opportunity in the organisation's voice",
	}, s.handleGenerateSection)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_draft",
		Description: "Write a full application draft for an opportunity",
	}, s.handleGenerateDraft)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "normalize_text",
		Description: "Strip markdown and repair punctuation in generated text",
	}, s.handleNormalize)
}

// handleSearch handles the search_examples tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	results, err := s.ports.Retrieval.Search(ctx, input.Query, limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}
	return nil, toSearchOutput(results), nil
}

// handleVoice handles the voice_examples tool invocation.
func (s *Server) handleVoice(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input VoiceInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	results, err := s.ports.Retrieval.VoiceExamples(ctx, input.VoiceType, limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}
	return nil, toSearchOutput(results), nil
}

func toSearchOutput(results []domain.SearchResult) SearchOutput {
	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = SearchResultOutput{
			Source:  results[i].Metadata.Source,
			Format:  string(results[i].Metadata.Format),
			Section: results[i].Metadata.Section,
			ChunkID: results[i].Metadata.ChunkID,
			Score:   results[i].Score,
			Text:    results[i].Text,
		}
	}
	return output
}

// handleDiscover handles the discover_grants tool invocation.
func (s *Server) handleDiscover(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DiscoverInput,
) (*mcp.CallToolResult, DiscoverOutput, error) {
	if s.ports.Discovery == nil {
		return nil, DiscoverOutput{}, fmt.Errorf("discover_grants: %w", errNotConfigured)
	}

	records, err := s.ports.Discovery.Discover(ctx, input.Keywords)
	if err != nil {
		return nil, DiscoverOutput{}, err
	}
	return nil, DiscoverOutput{Opportunities: records, Count: len(records)}, nil
}

// handleGenerateSection handles the generate_section tool invocation.
// A failed generation is returned as a placeholder section, not an error.
func (s *Server) handleGenerateSection(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SectionInput,
) (*mcp.CallToolResult, domain.GeneratedSection, error) {
	if s.ports.Generation == nil {
		return nil, domain.GeneratedSection{}, fmt.Errorf("generate_section: %w", errNotConfigured)
	}
	if input.Section == "" {
		return nil, domain.GeneratedSection{}, fmt.Errorf("%w: section is required", domain.ErrInvalidInput)
	}

	section := s.ports.Generation.GenerateSection(ctx, input.Opportunity, domain.SectionType(input.Section))
	return nil, section, nil
}

// handleGenerateDraft handles the generate_draft tool invocation.
func (s *Server) handleGenerateDraft(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DraftInput,
) (*mcp.CallToolResult, domain.Draft, error) {
	if s.ports.Generation == nil {
		return nil, domain.Draft{}, fmt.Errorf("generate_draft: %w", errNotConfigured)
	}

	var sections []domain.SectionType
	for _, name := range input.Sections {
		sections = append(sections, domain.SectionType(name))
	}
	if len(sections) == 0 {
		sections = domain.DefaultSectionTypes()
	}

	draft, err := s.ports.Generation.Generate(ctx, input.Opportunity, sections)
	if err != nil {
		return nil, domain.Draft{}, err
	}

	if input.Save {
		if s.ports.Drafts == nil {
			return nil, domain.Draft{}, fmt.Errorf("saving draft: %w", errNotConfigured)
		}
		if err := s.ports.Drafts.Save(ctx, draft); err != nil {
			return nil, domain.Draft{}, fmt.Errorf("saving draft: %w", err)
		}
	}
	return nil, *draft, nil
}

// handleNormalize handles the normalize_text tool invocation.
func (s *Server) handleNormalize(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input NormalizeInput,
) (*mcp.CallToolResult, NormalizeOutput, error) {
	if s.ports.Normaliser == nil {
		return nil, NormalizeOutput{}, fmt.Errorf("normalize_text: %w", errNotConfigured)
	}
	return nil, NormalizeOutput{Text: s.ports.Normaliser.Normalise(input.Text)}, nil
}
