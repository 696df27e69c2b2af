package voice

import (
	"fmt"
	"regexp"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driven"
)

// Window widths around population and values keywords, in characters.
const (
	PopulationWindow = 50
	ValuesWindow     = 30
)

// impactPatterns match numeric outcome statements.
var impactPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d+[,\d]*\s+learners?`),
	regexp.MustCompile(`(?i)\d+x\s+increase`),
	regexp.MustCompile(`(?i)\$[\d,]+(?:M|K)?`),
}

// Ensure Extractor implements the interface.
var _ driven.VoiceExtractor = (*Extractor)(nil)

// Extractor compiles the pattern families for one organisation profile.
// It is safe for concurrent use.
type Extractor struct {
	mission    []*regexp.Regexp
	population []*regexp.Regexp
	program    *regexp.Regexp
	values     []*regexp.Regexp
}

// New compiles an extractor for the given profile. Empty anchors and keywords are ignored.
func New(profile domain.OrganizationProfile) *Extractor {
	e := &Extractor{}

	anchors := append([]string{profile.Name}, profile.MissionAnchors...)
	for _, anchor := range anchors {
		if anchor == "" {
			continue
		}
		e.mission = append(e.mission, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(anchor)+`[^.\n]*`))
	}

	e.population = windowPatterns(profile.PopulationKeywords, PopulationWindow)
	e.values = windowPatterns(profile.ValuesKeywords, ValuesWindow)

	if profile.Program != "" {
		e.program = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(profile.Program) + `[^.]*`)
	}

	return e
}

// Default returns an extractor for the default organisation profile.
func Default() *Extractor {
	return New(domain.DefaultOrganizationProfile())
}

func windowPatterns(keywords []string, width int) []*regexp.Regexp {
	var patterns []*regexp.Regexp
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		patterns = append(patterns, regexp.MustCompile(
			fmt.Sprintf(`(?i).{0,%d}%s.{0,%d}`, width, regexp.QuoteMeta(kw), width)))
	}
	return patterns
}

// Extract scans text and returns every match per category.
// Matches keep their original casing and order; duplicates are kept.
func (e *Extractor) Extract(text string) domain.VoiceSignature {
	sig := domain.VoiceSignature{
		MissionPhrases:  []string{},
		PopulationFocus: []string{},
		ProgramNames:    []string{},
		ImpactMetrics:   []string{},
		ValuesLanguage:  []string{},
	}

	for _, re := range e.mission {
		sig.MissionPhrases = append(sig.MissionPhrases, missionMatches(re, text)...)
	}
	for _, re := range e.population {
		sig.PopulationFocus = append(sig.PopulationFocus, re.FindAllString(text, -1)...)
	}
	if e.program != nil {
		sig.ProgramNames = append(sig.ProgramNames, e.program.FindAllString(text, -1)...)
	}
	for _, re := range impactPatterns {
		sig.ImpactMetrics = append(sig.ImpactMetrics, re.FindAllString(text, -1)...)
	}
	for _, re := range e.values {
		sig.ValuesLanguage = append(sig.ValuesLanguage, re.FindAllString(text, -1)...)
	}

	return sig
}

// missionMatches returns the phrases matched by re that run up to a sentence
// end. A phrase must stop at a period, at the end of text, or at a newline
// that is the last character of text; a phrase cut off by any other line
// break is not a complete sentence and is dropped.
func missionMatches(re *regexp.Regexp, text string) []string {
	var out []string
	for _, loc := range re.FindAllStringIndex(text, -1) {
		end := loc[1]
		switch {
		case end == len(text), text[end] == '.':
		case text[end] == '\n' && end == len(text)-1:
		default:
			continue
		}
		out = append(out, text[loc[0]:end])
	}
	return out
}
