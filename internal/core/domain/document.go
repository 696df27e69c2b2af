package domain

import "strings"

// FormatTag identifies the layout family of a historical grant document.
// The set is closed; every document resolves to exactly one tag.
type FormatTag string

// Known document formats.
const (
	// FormatStructured is a funder template with numbered prompt questions.
	FormatStructured FormatTag = "AWS Grant"

	// FormatCatalyst is a line-per-answer application layout.
	FormatCatalyst FormatTag = "BRL Catalyst"

	// FormatEmpowerment is a line-per-answer application layout.
	// It is kept distinct from FormatCatalyst even though both currently
	// parse the same way.
	FormatEmpowerment FormatTag = "AI for Economic Empowerment"

	// FormatGeneral is the paragraph-oriented fallback.
	FormatGeneral FormatTag = "General Grant"
)

// IsValid returns true if the format tag is recognised.
func (f FormatTag) IsValid() bool {
	switch f {
	case FormatStructured, FormatCatalyst, FormatEmpowerment, FormatGeneral:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f FormatTag) String() string {
	return string(f)
}

// AllFormatTags returns every format tag in classification priority order.
func AllFormatTags() []FormatTag {
	return []FormatTag{FormatStructured, FormatCatalyst, FormatEmpowerment, FormatGeneral}
}

// RawDocument is a historical grant document as supplied by the document source.
// It is immutable once loaded.
type RawDocument struct {
	// ID is derived from the source name (file name without extension).
	ID string

	// Path is the original location on disk.
	Path string

	// Format is the layout family inferred by the classifier.
	Format FormatTag

	// Text is the decoded document text.
	Text string
}

// Section is one named region of a parsed document.
type Section struct {
	// Name is unique within its document.
	Name string

	// Text is the cleaned section text.
	Text string
}

// ParsedDocument holds the sections and voice signature extracted from a RawDocument.
// It is created once per RawDocument and never mutated afterwards.
type ParsedDocument struct {
	// ID matches the RawDocument identifier.
	ID string

	// Format is the layout family the sections were extracted with.
	Format FormatTag

	// Sections are ordered by encounter order in the raw text.
	Sections []Section

	// Voice is the signal phrases found anywhere in the raw text.
	Voice VoiceSignature

	// Raw references the source document.
	Raw *RawDocument
}

// Section returns the text of the named section.
func (d *ParsedDocument) Section(name string) (string, bool) {
	for _, s := range d.Sections {
		if s.Name == name {
			return s.Text, true
		}
	}
	return "", false
}

// SectionNames returns the section names in encounter order.
func (d *ParsedDocument) SectionNames() []string {
	names := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		names[i] = s.Name
	}
	return names
}

// HasPrefix reports whether the identifier starts with any of the given prefixes.
func HasPrefix(id string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(id, p) {
			return true
		}
	}
	return false
}
