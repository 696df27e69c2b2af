package grant

import (
	"regexp"
	"strings"
)

var (
	// numberingPrefix matches a leading "2.1" item number with an optional
	// stray bullet or replacement glyph left over from PDF conversion.
	numberingPrefix = regexp.MustCompile(`^\d+\.\d+\s*[\x{FFFD}\x{2022}]?\s*`)

	// boilerplate matches funder word-count instructions.
	boilerplate = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Please use \d+ words or less`),
		regexp.MustCompile(`(?i)\(\d+-\d+ words\)`),
	}
)

// CleanText normalises extracted section text. Whitespace is collapsed
// before the numbering prefix and boilerplate are removed, so a removed
// phrase leaves its surrounding spaces in place.
func CleanText(text string) string {
	text = collapseSpace(text)
	text = numberingPrefix.ReplaceAllString(text, "")
	for _, re := range boilerplate {
		text = re.ReplaceAllString(text, "")
	}
	return text
}

func collapseSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
