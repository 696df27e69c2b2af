package grant

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
)

// sectionRule locates one named section of a structured application.
type sectionRule struct {
	name   string
	anchor *regexp.Regexp
}

func newSectionRule(name, phrase string) sectionRule {
	return sectionRule{name: name, anchor: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(phrase))}
}

// structuredRules lists the prompt questions of the structured funder template.
var structuredRules = []sectionRule{
	newSectionRule("project_overview", "Please provide a high-level project overview"),
	newSectionRule("project_description", "Describe your project in depth"),
	newSectionRule("intended_outcomes", "What are the intended outcomes"),
	newSectionRule("driving_need", "What is driving the need"),
	newSectionRule("long_term_support", "How will you support this project long-term"),
	newSectionRule("technical_resources", "Describe the resources and technical skills"),
}

// numberedItem marks the start of the next question ("3.2").
var numberedItem = regexp.MustCompile(`\d+\.\d+`)

// Extract pulls named sections from text using the strategy for format.
func Extract(format domain.FormatTag, text string) []domain.Section {
	switch format {
	case domain.FormatStructured:
		return extractStructured(text)
	case domain.FormatCatalyst:
		return extractCatalyst(text)
	case domain.FormatEmpowerment:
		return extractEmpowerment(text)
	default:
		return extractParagraphs(text)
	}
}

// extractStructured returns a section for every rule whose question appears.
// A section spans from its question to the first numbered item after it.
func extractStructured(text string) []domain.Section {
	sections := []domain.Section{}
	for _, rule := range structuredRules {
		loc := rule.anchor.FindStringIndex(text)
		if loc == nil {
			continue
		}
		end := len(text)
		if next := numberedItem.FindStringIndex(text[loc[1]:]); next != nil {
			end = loc[1] + next[0]
		}
		sections = append(sections, domain.Section{
			Name: rule.name,
			Text: CleanText(text[loc[0]:end]),
		})
	}
	return sections
}

func extractCatalyst(text string) []domain.Section {
	return extractLines(text)
}

func extractEmpowerment(text string) []domain.Section {
	return extractLines(text)
}

// extractLines makes every non-blank line a section.
func extractLines(text string) []domain.Section {
	sections := []domain.Section{}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		sections = append(sections, domain.Section{
			Name: fmt.Sprintf("content_%d", len(sections)),
			Text: CleanText(line),
		})
	}
	return sections
}

// extractParagraphs makes every non-blank paragraph a section. Names use the
// paragraph's position among all paragraphs, blank ones included.
func extractParagraphs(text string) []domain.Section {
	sections := []domain.Section{}
	for i, para := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(para) == "" {
			continue
		}
		sections = append(sections, domain.Section{
			Name: fmt.Sprintf("section_%d", i),
			Text: CleanText(para),
		})
	}
	return sections
}
