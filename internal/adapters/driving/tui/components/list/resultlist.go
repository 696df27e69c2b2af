// Package list provides navigable list components for the TUI.
package list

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
)

// rowsPerResult is the number of lines each result occupies.
const rowsPerResult = 3

// ResultList displays retrieved chunks with their provenance and score.
type ResultList struct {
	results []domain.SearchResult
	cursor  *Cursor
	styles  *styles.Styles
	width   int
	height  int
}

// NewResultList creates an empty result list.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	r := &ResultList{
		cursor: NewCursor(1),
		styles: s,
	}
	r.SetDimensions(80, 10)
	return r
}

// View renders the visible results.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No results")
	}

	lines := []string{r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(r.results))), ""}
	start, end := r.cursor.Window()
	for i := start; i < end; i++ {
		lines = append(lines, r.renderResult(i, &r.results[i]))
	}
	return strings.Join(lines, "\n")
}

// renderResult draws the provenance line, the section and a preview.
func (r *ResultList) renderResult(index int, res *domain.SearchResult) string {
	indicator := "  "
	if index == r.cursor.Selected() {
		indicator = "> "
	}

	title := res.Metadata.Source
	if title == "" {
		title = "(unknown source)"
	}
	titleWidth := r.width - 20
	if titleWidth < 10 {
		titleWidth = 10
	}
	title = Clip(title, titleWidth)

	score := "-"
	if res.Score != nil {
		score = fmt.Sprintf("%.3f", *res.Score)
	}

	var head string
	if index == r.cursor.Selected() {
		head = r.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, titleWidth, title, score))
	} else {
		head = r.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, titleWidth, title)) +
			r.styles.Score.Render(score)
	}

	where := res.Metadata.Section
	if res.Metadata.Format != "" {
		where = fmt.Sprintf("%s · %s", res.Metadata.Format, where)
	}
	previewWidth := r.width - 6
	if previewWidth < 20 {
		previewWidth = 20
	}

	return head + "\n" +
		r.styles.Subtitle.Render("    "+where) + "\n" +
		r.styles.Muted.Render("    "+Clip(res.Text, previewWidth))
}

// SetResults replaces the results and selects the first.
func (r *ResultList) SetResults(results []domain.SearchResult) {
	r.results = results
	r.cursor.Reset(len(results))
}

func (r *ResultList) Results() []domain.SearchResult { return r.results }

func (r *ResultList) Selected() int { return r.cursor.Selected() }

// SelectedResult returns the highlighted result, or nil when the list is empty.
func (r *ResultList) SelectedResult() *domain.SearchResult {
	if len(r.results) == 0 {
		return nil
	}
	return &r.results[r.cursor.Selected()]
}

func (r *ResultList) MoveUp() { r.cursor.Up() }

func (r *ResultList) MoveDown() { r.cursor.Down() }

// SetDimensions fits the list into width by height cells.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
	r.cursor.SetVisible((height - 2) / rowsPerResult)
}

func (r *ResultList) Count() int { return len(r.results) }

// Clip collapses whitespace in s and shortens it to at most n runes.
func Clip(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
