package output

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.TextNormaliser = (*Normaliser)(nil)

// Pass is one named rewrite step.
type Pass struct {
	Name  string
	Apply func(string) string
}

// replace builds a pass from a pattern and replacement template.
func replace(name, pattern, repl string) Pass {
	re := regexp.MustCompile(pattern)
	return Pass{Name: name, Apply: func(s string) string {
		return re.ReplaceAllString(s, repl)
	}}
}

// repeat applies p n times in a row.
func repeat(p Pass, n int) Pass {
	return Pass{Name: p.Name, Apply: func(s string) string {
		for i := 0; i < n; i++ {
			s = p.Apply(s)
		}
		return s
	}}
}

// collapseRuns reduces repeated periods, commas, hyphens and spaces to one.
var collapseRuns = chain("collapse_runs",
	replace("periods", `\.\.+`, "."),
	replace("commas", `,,+`, ","),
	replace("hyphens", `--+`, "-"),
	replace("spaces", `  +`, " "),
)

func chain(name string, passes ...Pass) Pass {
	return Pass{Name: name, Apply: func(s string) string {
		for _, p := range passes {
			s = p.Apply(s)
		}
		return s
	}}
}

// DefaultPasses returns the cleanup passes in application order.
func DefaultPasses() []Pass {
	return []Pass{
		{Name: "trim", Apply: strings.TrimSpace},
		replace("bold", `\*\*([^*]+)\*\*`, "$1"),
		replace("italic", `\*([^*]+)\*`, "$1"),
		replace("bullets", `(?m)^\s*[-•]\s*`, ""),
		replace("blank_lines", `\n\s*\n\s*\n+`, "\n\n"),
		repeat(collapseRuns, 3),
		replace("decimals", `(\d)\.\s+(\d)`, "$1.$2"),
		replace("period_before_punct", `\.([,;:])`, "$1"),
		replace("space_before_punct", `\s+([.,;:!?])`, "$1"),
		replace("space_before_capital", `([.,;:!?])([A-Z])`, "$1 $2"),
		replace("space_after_sentence", `([.!?])\s+`, "$1 "),
		{Name: "trim", Apply: strings.TrimSpace},
	}
}

// maxRounds bounds the fixed-point loop. Real model output settles in two or three.
const maxRounds = 10

// Normaliser applies an ordered list of passes until the text stops changing,
// then terminates the text with sentence punctuation.
type Normaliser struct {
	passes []Pass
}

// New creates a normaliser with the default passes.
func New() *Normaliser {
	return &Normaliser{passes: DefaultPasses()}
}

// Passes returns the pass names in order.
func (n *Normaliser) Passes() []string {
	names := make([]string, len(n.passes))
	for i, p := range n.passes {
		names[i] = p.Name
	}
	return names
}

// Normalise cleans text. Empty input yields ".".
func (n *Normaliser) Normalise(text string) string {
	for round := 0; round < maxRounds; round++ {
		next := text
		for _, p := range n.passes {
			next = p.Apply(next)
		}
		if next == text {
			break
		}
		text = next
	}
	return terminate(text)
}

// terminate appends a period unless text already ends a sentence.
func terminate(text string) string {
	if text == "" {
		return "."
	}
	switch text[len(text)-1] {
	case '.', '!', '?':
		return text
	default:
		return text + "."
	}
}
