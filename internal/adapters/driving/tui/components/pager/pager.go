// Package pager provides a scrolling, word-wrapped text reader.
package pager

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driving/tui/styles"
)

// chrome is the number of lines taken by the title, rule, position and help.
const chrome = 6

// Pager shows a titled block of text one screen at a time.
type Pager struct {
	styles *styles.Styles
	keys   *keymap.KeyMap

	title   string
	content string
	lines   []string
	offset  int
	width   int
	height  int
}

// New creates an empty pager.
func New(s *styles.Styles, km *keymap.KeyMap) *Pager {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Pager{styles: s, keys: km, width: 80, height: 24}
}

// SetContent replaces the text and scrolls to the top.
func (p *Pager) SetContent(title, content string) {
	p.title = title
	p.content = content
	p.offset = 0
	p.wrap()
}

// HandleKey scrolls on navigation keys and reports whether the key was used.
func (p *Pager) HandleKey(keyStr string) bool {
	switch {
	case keymap.Matches(keyStr, p.keys.Up):
		if p.offset > 0 {
			p.offset--
		}
	case keymap.Matches(keyStr, p.keys.Down):
		if p.offset < p.maxOffset() {
			p.offset++
		}
	case keymap.Matches(keyStr, p.keys.PageUp):
		p.offset = max(p.offset-p.pageSize(), 0)
	case keymap.Matches(keyStr, p.keys.PageDown):
		p.offset = min(p.offset+p.pageSize(), p.maxOffset())
	case keymap.Matches(keyStr, p.keys.Top):
		p.offset = 0
	case keymap.Matches(keyStr, p.keys.Bottom):
		p.offset = p.maxOffset()
	default:
		return false
	}
	return true
}

// View renders the visible page.
func (p *Pager) View() string {
	var b strings.Builder

	b.WriteString(p.styles.Title.Render(p.title))
	b.WriteString("\n")
	b.WriteString(p.styles.Muted.Render(strings.Repeat("─", min(max(p.width-4, 1), 60))))
	b.WriteString("\n\n")

	if len(p.lines) == 0 {
		b.WriteString(p.styles.Muted.Render("(empty)"))
	} else {
		end := min(p.offset+p.pageSize(), len(p.lines))
		for _, line := range p.lines[p.offset:end] {
			b.WriteString(p.styles.Normal.Render(line))
			b.WriteString("\n")
		}
		if len(p.lines) > p.pageSize() {
			percent := 100
			if p.maxOffset() > 0 {
				percent = p.offset * 100 / p.maxOffset()
			}
			b.WriteString(p.styles.Muted.Render(fmt.Sprintf("  [%d%%] line %d-%d of %d",
				percent, p.offset+1, end, len(p.lines))))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(p.renderHelp())
	return b.String()
}

func (p *Pager) renderHelp() string {
	parts := make([]string, 0, 6)
	for _, k := range p.keys.ReaderHelp() {
		h := k.Help()
		parts = append(parts, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
	}
	return p.styles.Help.Render(strings.Join(parts, "  "))
}

// SetDimensions rewraps the content for the new size.
func (p *Pager) SetDimensions(width, height int) {
	p.width = width
	p.height = height
	p.wrap()
	p.offset = min(p.offset, p.maxOffset())
}

func (p *Pager) Title() string { return p.title }

func (p *Pager) Content() string { return p.content }

func (p *Pager) Lines() []string { return p.lines }

func (p *Pager) Offset() int { return p.offset }

func (p *Pager) pageSize() int {
	return max(p.height-chrome, 1)
}

func (p *Pager) maxOffset() int {
	return max(len(p.lines)-p.pageSize(), 0)
}

func (p *Pager) wrap() {
	p.lines = nil
	if p.content == "" {
		return
	}
	width := max(p.width-4, 20)
	for _, line := range strings.Split(p.content, "\n") {
		p.lines = append(p.lines, Wrap(line, width)...)
	}
}

// Wrap breaks line at word boundaries into rows no wider than width cells.
// Words longer than width are split.
func Wrap(line string, width int) []string {
	if lipgloss.Width(line) <= width {
		return []string{line}
	}

	var rows []string
	var row []rune
	flush := func() {
		rows = append(rows, strings.TrimRight(string(row), " "))
		row = row[:0]
	}
	for _, word := range strings.Fields(line) {
		w := []rune(word)
		for len(w) > width {
			if len(row) > 0 {
				flush()
			}
			row = append(row, w[:width]...)
			flush()
			w = w[width:]
		}
		if len(row) > 0 && len(row)+1+len(w) > width {
			flush()
		}
		if len(row) > 0 {
			row = append(row, ' ')
		}
		row = append(row, w...)
	}
	if len(row) > 0 {
		flush()
	}
	return rows
}
