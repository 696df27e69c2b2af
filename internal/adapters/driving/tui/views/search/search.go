// Package search provides the example search view for the TUI.
package search

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driving/tui/components/pager"
	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driving"
)

// View searches the example index. Tab switches between topic search and
// voice search, which looks for the organisation's own phrasing of a kind.
type View struct {
	styles    *styles.Styles
	keys      *keymap.KeyMap
	input     *input.QueryInput
	list      *list.ResultList
	statusbar *status.Bar
	reader    *pager.Pager

	retrieval driving.RetrievalService
	ctx       context.Context
	limit     int

	voice      bool
	focusInput bool // true = typing, false = navigating results
	reading    bool
	width      int
	height     int
	ready      bool
	err        error
}

// NewView creates a search view returning up to limit results per query.
func NewView(s *styles.Styles, km *keymap.KeyMap, retrieval driving.RetrievalService, limit int) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if limit <= 0 {
		limit = domain.DefaultTopK
	}

	v := &View{
		styles:     s,
		keys:       km,
		input:      input.NewQueryInput(s, "Search", "e.g. youth entrepreneurship outcomes"),
		list:       list.NewResultList(s),
		statusbar:  status.NewBar(s, "results"),
		reader:     pager.New(s, km),
		retrieval:  retrieval,
		ctx:        context.Background(),
		limit:      limit,
		focusInput: true,
	}
	v.statusbar.SetHints(km.InputHelp())
	v.SetDimensions(80, 24)
	v.ready = false
	return v
}

// WithContext sets the context searches run under.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.Fail(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	if v.focusInput {
		v.input, cmd = v.input.Update(msg)
	}
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.reading {
		if msg.Type == tea.KeyEsc {
			v.reading = false
			return v, nil
		}
		v.reader.HandleKey(msg.String())
		return v, nil
	}

	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.focusInput {
		//nolint:exhaustive // only submit and mode toggle are intercepted
		switch msg.Type {
		case tea.KeyEnter:
			query := v.input.Value()
			if query == "" {
				return v, nil
			}
			v.statusbar.Working("Searching...")
			v.focusInput = false
			v.input.Blur()
			return v, v.performSearch(query)
		case tea.KeyTab:
			v.voice = !v.voice
			return v, nil
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	switch s := msg.String(); {
	case keymap.Matches(s, v.keys.Up):
		v.list.MoveUp()
	case keymap.Matches(s, v.keys.Down):
		v.list.MoveDown()
	case keymap.Matches(s, v.keys.Open):
		if res := v.list.SelectedResult(); res != nil {
			v.reader.SetContent(readerTitle(res), res.Text)
			v.reading = true
		}
	case keymap.Matches(s, v.keys.Edit):
		v.focusInput = true
		v.input.SetValue("")
		v.statusbar.SetHints(v.keys.InputHelp())
		return v, v.input.Focus()
	}
	return v, nil
}

// performSearch runs the query against the index in the background.
func (v *View) performSearch(query string) tea.Cmd {
	retrieval, ctx, limit, voice := v.retrieval, v.ctx, v.limit, v.voice
	return func() tea.Msg {
		if retrieval == nil {
			return messages.ErrorOccurred{Err: ErrNoRetrievalService}
		}
		var (
			results []domain.SearchResult
			err     error
		)
		if voice {
			results, err = retrieval.VoiceExamples(ctx, query, limit)
		} else {
			results, err = retrieval.Search(ctx, query, limit)
		}
		return messages.SearchCompleted{Query: query, Results: results, Err: err}
	}
}

func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.Fail(msg.Err)
		return
	}

	v.err = nil
	v.list.SetResults(msg.Results)
	v.statusbar.Done(len(msg.Results), "")
	v.statusbar.SetHints(v.keys.ResultsHelp())
	v.focusInput = false
	v.input.Blur()
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}
	if v.reading {
		return v.reader.View()
	}

	mode := "topic search"
	if v.voice {
		mode = "voice search"
	}
	sections := []string{
		v.styles.Title.Render("Search examples") + v.styles.Muted.Render("  "+mode+" [tab] to switch"),
		"",
		v.input.View(),
		"",
	}
	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}
	sections = append(sections, v.list.View(), "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func readerTitle(res *domain.SearchResult) string {
	title := res.Metadata.Source
	if res.Metadata.Section != "" {
		title += " / " + res.Metadata.Section
	}
	return title
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10)
	v.statusbar.SetWidth(width)
	v.reader.SetDimensions(width, height)
}

// Reset returns the view to an empty query.
func (v *View) Reset() {
	v.focusInput = true
	v.reading = false
	v.input.Focus()
	v.input.SetValue("")
	v.list.SetResults(nil)
	v.err = nil
	v.statusbar.Clear()
	v.statusbar.SetHints(v.keys.InputHelp())
}

func (v *View) Ready() bool { return v.ready }

func (v *View) Query() string { return v.input.Value() }

func (v *View) SetQuery(query string) { v.input.SetValue(query) }

func (v *View) Results() []domain.SearchResult { return v.list.Results() }

func (v *View) SelectedIndex() int { return v.list.Selected() }

func (v *View) SelectedResult() *domain.SearchResult { return v.list.SelectedResult() }

func (v *View) Err() error { return v.err }

func (v *View) InputFocused() bool { return v.focusInput }

// VoiceMode reports whether queries run as voice searches.
func (v *View) VoiceMode() bool { return v.voice }

// Reading reports whether a result is open in the reader.
func (v *View) Reading() bool { return v.reading }

// Status returns the status bar.
func (v *View) Status() *status.Bar { return v.statusbar }
