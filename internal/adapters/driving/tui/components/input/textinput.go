// Package input provides the labelled text input used by the query views.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driving/tui/styles"
)

const charLimit = 256

// QueryInput wraps a bubbles textinput with a label.
type QueryInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	width     int
}

// NewQueryInput creates a focused input rendered as "label: [placeholder]".
func NewQueryInput(s *styles.Styles, label, placeholder string) *QueryInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = charLimit
	ti.Width = 50
	ti.Focus()

	return &QueryInput{
		textinput: ti,
		styles:    s,
		label:     label,
		width:     50,
	}
}

// Init starts the cursor blinking.
func (q *QueryInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards the message to the textinput.
func (q *QueryInput) Update(msg tea.Msg) (*QueryInput, tea.Cmd) {
	var cmd tea.Cmd
	q.textinput, cmd = q.textinput.Update(msg)
	return q, cmd
}

// View renders the label and the input field side by side.
func (q *QueryInput) View() string {
	label := q.styles.Title.Render(q.label + ": ")
	field := q.styles.InputField.Render(q.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

func (q *QueryInput) Value() string { return q.textinput.Value() }

func (q *QueryInput) SetValue(value string) { q.textinput.SetValue(value) }

func (q *QueryInput) Focus() tea.Cmd { return q.textinput.Focus() }

func (q *QueryInput) Blur() { q.textinput.Blur() }

func (q *QueryInput) Focused() bool { return q.textinput.Focused() }

// SetWidth sizes the field to the terminal, leaving room for the label.
func (q *QueryInput) SetWidth(width int) {
	q.width = width
	field := width - len(q.label) - 8
	if field < 20 {
		field = 20
	}
	q.textinput.Width = field
}

func (q *QueryInput) Width() int { return q.width }

// Reset clears the value.
func (q *QueryInput) Reset() {
	q.textinput.Reset()
}
