// Package status provides the status bar shown at the bottom of list views.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driving/tui/styles"
)

// State is what the bar reports on its left side.
type State string

const (
	StateReady   State = "ready"
	StateWorking State = "working"
	StateError   State = "error"
	StateDone    State = "done"
)

// Bar shows progress, counts and errors on the left and key hints on the right.
type Bar struct {
	styles  *styles.Styles
	state   State
	message string
	count   int
	noun    string
	hints   []key.Binding
	width   int
}

// NewBar creates a status bar that counts items as noun ("results", "drafts").
func NewBar(s *styles.Styles, noun string) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Bar{
		styles: s,
		state:  StateReady,
		noun:   noun,
		width:  80,
	}
}

// View renders the bar at its full width.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	padding := b.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}
	return b.styles.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", padding) + right)
}

func (b *Bar) renderLeft() string {
	switch b.state {
	case StateWorking:
		msg := b.message
		if msg == "" {
			msg = "Working..."
		}
		return b.styles.Muted.Render(msg)
	case StateError:
		if b.message != "" {
			return b.styles.Error.Render("Error: " + b.message)
		}
		return b.styles.Error.Render("Error")
	case StateDone:
		if b.message != "" {
			return b.styles.Success.Render(b.message)
		}
		return b.styles.Normal.Render(fmt.Sprintf("%d %s", b.count, b.noun))
	}
	if b.message != "" {
		return b.styles.Normal.Render(b.message)
	}
	return b.styles.Muted.Render("Ready")
}

func (b *Bar) renderRight() string {
	parts := make([]string, 0, len(b.hints))
	for _, h := range b.hints {
		help := h.Help()
		parts = append(parts, fmt.Sprintf("%s: %s", help.Key, help.Desc))
	}
	return b.styles.Muted.Render(strings.Join(parts, " | "))
}

// Working shows msg as an in-progress message.
func (b *Bar) Working(msg string) {
	b.state = StateWorking
	b.message = msg
}

// Fail shows err on the bar.
func (b *Bar) Fail(err error) {
	b.state = StateError
	b.message = err.Error()
}

// Done shows the item count, or msg when it is non-empty.
func (b *Bar) Done(count int, msg string) {
	b.state = StateDone
	b.count = count
	b.message = msg
}

// SetHints replaces the key hints on the right side.
func (b *Bar) SetHints(hints []key.Binding) {
	b.hints = hints
}

func (b *Bar) SetWidth(width int) { b.width = width }

func (b *Bar) State() State { return b.state }

func (b *Bar) Message() string { return b.message }

func (b *Bar) Count() int { return b.count }

// Clear resets the bar to Ready.
func (b *Bar) Clear() {
	b.state = StateReady
	b.message = ""
	b.count = 0
}
