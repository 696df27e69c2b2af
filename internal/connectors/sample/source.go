// Package sample provides the built-in opportunity records that discovery
// always includes, so drafting works without network access.
package sample

import (
	"context"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driven"
)

// Name identifies the sample source.
const Name = "sample"

// Ensure Source implements the interface.
var _ driven.OpportunitySource = (*Source)(nil)

// Source returns a fixed set of opportunities regardless of keywords.
type Source struct{}

// New creates the sample source.
func New() *Source {
	return &Source{}
}

// Name returns "sample".
func (s *Source) Name() string {
	return Name
}

// Search returns fresh copies of the sample opportunities.
func (s *Source) Search(ctx context.Context, _ []string) ([]domain.OpportunityRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Opportunities(), nil
}

// Opportunities returns the sample opportunity records.
func Opportunities() []domain.OpportunityRecord {
	return []domain.OpportunityRecord{
		{
			Title:        "AI for Education Innovation Grant",
			Organization: "National Science Foundation",
			Deadline:     "2025-10-15",
			Amount:       "$500,000",
			FocusAreas:   []string{"Educational Technology", "AI in Education", "Workforce Development"},
			Description: "Funding for innovative AI applications in educational settings, particularly those " +
				"serving underrepresented communities. Priority given to projects that demonstrate scalable " +
				"impact and sustainable implementation models.",
			Eligibility: "Nonprofit organizations, educational institutions, and research organizations",
			Requirements: []string{
				"Demonstrate clear educational impact metrics",
				"Include community engagement component",
				"Show sustainability plan beyond grant period",
				"Partner with local educational institutions",
			},
			Source: Name,
		},
		{
			Title:        "Workforce Development Technology Grant",
			Organization: "Department of Labor",
			Deadline:     "2025-11-30",
			Amount:       "$750,000",
			FocusAreas:   []string{"Workforce Development", "Digital Skills", "Underrepresented Communities"},
			Description: "Support for technology-enabled workforce development programs targeting " +
				"underrepresented populations. Emphasis on programs that provide pathways to high-growth " +
				"industries and sustainable careers.",
			Eligibility: "Nonprofit organizations, workforce development boards, community colleges",
			Requirements: []string{
				"Serve primarily underrepresented populations",
				"Include industry partnership component",
				"Demonstrate measurable employment outcomes",
				"Provide comprehensive support services",
			},
			Source: Name,
		},
	}
}
