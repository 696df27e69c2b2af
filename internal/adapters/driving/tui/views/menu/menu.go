// Package menu is the TUI's start screen.
package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driving/tui/styles"
)

const defaultSubtitle = "Grant writing from your own proposals"

// Item is one entry. Choosing it switches to View, or quits when Quit is set.
type Item struct {
	Label string
	Hint  string
	View  messages.ViewType
	Quit  bool
}

// DefaultItems lists every screen plus Quit.
func DefaultItems() []Item {
	return []Item{
		{Label: "Search examples", Hint: "find passages in past proposals", View: messages.ViewSearch},
		{Label: "Opportunities", Hint: "discover grants and draft a proposal", View: messages.ViewOpportunities},
		{Label: "Drafts", Hint: "read and manage saved drafts", View: messages.ViewDrafts},
		{Label: "Help", View: messages.ViewHelp},
		{Label: "Quit", Quit: true},
	}
}

type View struct {
	styles   *styles.Styles
	keys     *keymap.KeyMap
	items    []Item
	cursor   *list.Cursor
	subtitle string
	ready    bool
}

// NewView builds the menu. Nil arguments take the defaults.
func NewView(s *styles.Styles, km *keymap.KeyMap, items []Item) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if items == nil {
		items = DefaultItems()
	}
	cursor := list.NewCursor(len(items))
	cursor.Reset(len(items))
	return &View{styles: s, keys: km, items: items, cursor: cursor}
}

// SetSubtitle replaces the tagline under the title with the organisation name.
func (v *View) SetSubtitle(subtitle string) {
	v.subtitle = subtitle
}

func (v *View) Init() tea.Cmd { return nil }

func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
	case tea.KeyMsg:
		pressed := msg.String()
		switch {
		case keymap.Matches(pressed, v.keys.Up):
			v.cursor.Up()
		case keymap.Matches(pressed, v.keys.Down):
			v.cursor.Down()
		case keymap.Matches(pressed, v.keys.Open) && len(v.items) > 0:
			return v, v.choose(v.items[v.cursor.Selected()])
		case keymap.Matches(pressed, v.keys.Quit):
			return v, tea.Quit
		}
	}
	return v, nil
}

func (v *View) choose(item Item) tea.Cmd {
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg { return messages.ViewChanged{View: item.View} }
}

func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	subtitle := v.subtitle
	if subtitle == "" {
		subtitle = defaultSubtitle
	}
	lines := []string{
		v.styles.Title.Render("Grantcraft"),
		"",
		v.styles.Muted.Render(subtitle),
		"",
	}
	for i, item := range v.items {
		if i != v.cursor.Selected() {
			lines = append(lines, "  "+v.styles.Normal.Render(item.Label))
			continue
		}
		line := "> " + v.styles.Subtitle.Render(item.Label)
		if item.Hint != "" {
			line += v.styles.Muted.Render("  " + item.Hint)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [q] Quit"))
	return strings.Join(lines, "\n")
}

// SetDimensions marks the view ready; the menu does not depend on size.
func (v *View) SetDimensions(_, _ int) {
	v.ready = true
}

func (v *View) Selected() int { return v.cursor.Selected() }

func (v *View) Items() []Item { return v.items }
