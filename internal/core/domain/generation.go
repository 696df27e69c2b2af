package domain

import (
	"fmt"
	"strings"
	"time"
)

// SectionType identifies an application section the generator can write.
type SectionType string

// Application section types.
const (
	SectionProjectOverview          SectionType = "project_overview"
	SectionOrganizationalBackground SectionType = "organizational_background"
	SectionProjectDescription       SectionType = "project_description"
	SectionIntendedOutcomes         SectionType = "intended_outcomes"
	SectionImplementationPlan       SectionType = "implementation_plan"
	SectionSustainabilityPlan       SectionType = "sustainability_plan"
)

// DefaultSectionTypes returns the sections of a standard application, in order.
func DefaultSectionTypes() []SectionType {
	return []SectionType{
		SectionProjectOverview,
		SectionOrganizationalBackground,
		SectionProjectDescription,
		SectionIntendedOutcomes,
		SectionImplementationPlan,
		SectionSustainabilityPlan,
	}
}

// IsKnown returns true if the section type has a dedicated instruction.
// Unknown section types are still accepted and use the default instruction.
func (s SectionType) IsKnown() bool {
	for _, t := range DefaultSectionTypes() {
		if t == s {
			return true
		}
	}
	return false
}

// String returns the string representation.
func (s SectionType) String() string {
	return string(s)
}

// Words returns the section type with underscores replaced by spaces.
func (s SectionType) Words() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// Title returns a display heading for the section type.
func (s SectionType) Title() string {
	words := strings.Fields(s.Words())
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ParseSectionTypes splits a comma separated list of section types.
// An empty input yields the default sections.
func ParseSectionTypes(list string) ([]SectionType, error) {
	if strings.TrimSpace(list) == "" {
		return DefaultSectionTypes(), nil
	}
	var out []SectionType
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.ContainsAny(part, " \t") {
			return nil, fmt.Errorf("%w: section type %q", ErrInvalidInput, part)
		}
		out = append(out, SectionType(part))
	}
	return out, nil
}

// GenerationRequest is everything the generator needs to write one section.
// It is constructed per call and discarded afterwards.
type GenerationRequest struct {
	Opportunity OpportunityRecord
	SectionType SectionType

	// Context holds retrieved excerpts relevant to the opportunity and section.
	Context []string

	// Voice holds retrieved excerpts of the organisation's own language.
	Voice []string
}

// GeneratedSection is normalised text for one section of a draft.
type GeneratedSection struct {
	Type SectionType `json:"type"`
	Text string      `json:"text"`

	// Failed is true when Text is a placeholder for a failed generation.
	Failed bool `json:"failed,omitempty"`
}

// Draft is the ordered set of generated sections for one application.
type Draft struct {
	ID          string             `json:"id"`
	Opportunity OpportunityRecord  `json:"opportunity"`
	Sections    []GeneratedSection `json:"sections"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// Section returns the generated section of the given type.
func (d *Draft) Section(t SectionType) (GeneratedSection, bool) {
	for _, s := range d.Sections {
		if s.Type == t {
			return s, true
		}
	}
	return GeneratedSection{}, false
}

// Put replaces the section of the same type, or appends it if absent.
func (d *Draft) Put(s GeneratedSection) {
	for i := range d.Sections {
		if d.Sections[i].Type == s.Type {
			d.Sections[i] = s
			return
		}
	}
	d.Sections = append(d.Sections, s)
}

// FailedCount returns the number of sections holding a failure placeholder.
func (d *Draft) FailedCount() int {
	n := 0
	for _, s := range d.Sections {
		if s.Failed {
			n++
		}
	}
	return n
}

// Markdown renders the draft as a document with one heading per section.
func (d *Draft) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", d.Opportunity.Title)
	if d.Opportunity.Organization != "" {
		fmt.Fprintf(&b, "_%s_\n\n", d.Opportunity.Organization)
	}
	for _, s := range d.Sections {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", s.Type.Title(), strings.TrimSpace(s.Text))
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
