// Package opportunities provides the grant discovery view for the TUI.
package opportunities

import (
	"context"
	"errors"
	"fmt"
	"strings"

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

var (
	// ErrNoDiscoveryService indicates that discovery is not configured.
	ErrNoDiscoveryService = errors.New("discovery service is required")

	// ErrNoGenerationService indicates that drafting is not configured.
	ErrNoGenerationService = errors.New("generation service is required")
)

// rowsPerOpportunity is the number of lines each opportunity occupies.
const rowsPerOpportunity = 2

// View discovers opportunities by keyword and drafts proposals for them.
type View struct {
	styles    *styles.Styles
	keys      *keymap.KeyMap
	input     *input.QueryInput
	cursor    *list.Cursor
	statusbar *status.Bar
	reader    *pager.Pager

	discovery  driving.DiscoveryService
	generation driving.GenerationService
	drafts     driving.DraftService
	ctx        context.Context

	opportunities []domain.OpportunityRecord
	focusInput    bool
	reading       bool
	busy          bool
	width         int
	height        int
	err           error
}

// NewView creates the view. Generation and drafts may be nil, in which case
// drafting reports an error and generated drafts are not saved.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	discovery driving.DiscoveryService,
	generation driving.GenerationService,
	drafts driving.DraftService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	v := &View{
		styles:     s,
		keys:       km,
		input:      input.NewQueryInput(s, "Keywords", "blank lists every opportunity"),
		cursor:     list.NewCursor(1),
		statusbar:  status.NewBar(s, "opportunities"),
		reader:     pager.New(s, km),
		discovery:  discovery,
		generation: generation,
		drafts:     drafts,
		ctx:        context.Background(),
		focusInput: true,
	}
	v.statusbar.SetHints(km.InputHelp())
	v.SetDimensions(80, 24)
	return v
}

// WithContext sets the context discovery and generation run under.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the opportunities view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.OpportunitiesLoaded:
		v.busy = false
		if msg.Err != nil {
			v.fail(msg.Err)
			return v, nil
		}
		v.err = nil
		v.opportunities = msg.Opportunities
		v.cursor.Reset(len(msg.Opportunities))
		v.statusbar.Done(len(msg.Opportunities), "")
		v.statusbar.SetHints(v.keys.OpportunityHelp())
		return v, nil

	case messages.DraftGenerated:
		v.busy = false
		if msg.Err != nil {
			v.fail(msg.Err)
			return v, nil
		}
		v.err = nil
		v.reader.SetContent(msg.Draft.Opportunity.Title, msg.Draft.Markdown())
		v.reading = true
		note := "Draft ready (not saved)"
		if msg.Saved {
			note = "Saved draft " + msg.Draft.ID
		}
		if n := msg.Draft.FailedCount(); n > 0 {
			note += fmt.Sprintf(", %d sections failed", n)
		}
		v.statusbar.Done(len(v.opportunities), note)
		return v, nil

	case messages.ErrorOccurred:
		v.busy = false
		v.fail(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	if v.focusInput {
		v.input, cmd = v.input.Update(msg)
	}
	return v, cmd
}

func (v *View) fail(err error) {
	v.err = err
	v.statusbar.Fail(err)
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
		if msg.Type == tea.KeyEnter {
			v.focusInput = false
			v.input.Blur()
			return v, v.discover(strings.Fields(v.input.Value()))
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	if v.busy {
		return v, nil
	}

	switch s := msg.String(); {
	case keymap.Matches(s, v.keys.Up):
		v.cursor.Up()
	case keymap.Matches(s, v.keys.Down):
		v.cursor.Down()
	case keymap.Matches(s, v.keys.Open):
		if opp := v.Selected(); opp != nil {
			v.reader.SetContent(opp.Title, Describe(*opp))
			v.reading = true
		}
	case keymap.Matches(s, v.keys.Generate):
		if opp := v.Selected(); opp != nil {
			return v, v.generate(*opp)
		}
	case keymap.Matches(s, v.keys.Edit):
		v.focusInput = true
		v.statusbar.SetHints(v.keys.InputHelp())
		return v, v.input.Focus()
	}
	return v, nil
}

// discover runs discovery in the background.
func (v *View) discover(keywords []string) tea.Cmd {
	v.busy = true
	v.statusbar.Working("Discovering opportunities...")
	discovery, ctx := v.discovery, v.ctx
	return func() tea.Msg {
		if discovery == nil {
			return messages.ErrorOccurred{Err: ErrNoDiscoveryService}
		}
		opps, err := discovery.Discover(ctx, keywords)
		return messages.OpportunitiesLoaded{Keywords: keywords, Opportunities: opps, Err: err}
	}
}

// generate drafts every default section for opp and saves the result.
func (v *View) generate(opp domain.OpportunityRecord) tea.Cmd {
	v.busy = true
	v.statusbar.Working(fmt.Sprintf("Drafting %q...", opp.Title))
	generation, drafts, ctx := v.generation, v.drafts, v.ctx
	return func() tea.Msg {
		if generation == nil {
			return messages.ErrorOccurred{Err: ErrNoGenerationService}
		}
		draft, err := generation.Generate(ctx, opp, domain.DefaultSectionTypes())
		if err != nil {
			return messages.DraftGenerated{Err: err}
		}
		if drafts == nil {
			return messages.DraftGenerated{Draft: draft}
		}
		if err := drafts.Save(ctx, draft); err != nil {
			return messages.DraftGenerated{Err: fmt.Errorf("saving draft: %w", err)}
		}
		return messages.DraftGenerated{Draft: draft, Saved: true}
	}
}

// View renders the opportunities view.
func (v *View) View() string {
	if v.reading {
		return v.reader.View()
	}

	sections := []string{v.styles.Title.Render("Opportunities"), "", v.input.View(), ""}
	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	switch {
	case len(v.opportunities) == 0:
		sections = append(sections, v.styles.Muted.Render("No opportunities"))
	default:
		start, end := v.cursor.Window()
		for i := start; i < end; i++ {
			sections = append(sections, v.renderOpportunity(i, &v.opportunities[i]))
		}
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderOpportunity(index int, opp *domain.OpportunityRecord) string {
	titleWidth := max(v.width-12, 10)
	title := list.Clip(opp.Title, titleWidth)
	score := fmt.Sprintf("%3d", opp.Score())

	var head string
	if index == v.cursor.Selected() {
		head = v.styles.Selected.Render(fmt.Sprintf("> %-*s %s", titleWidth, title, score))
	} else {
		head = v.styles.Normal.Render(fmt.Sprintf("  %-*s ", titleWidth, title)) + v.styles.Score.Render(score)
	}
	detail := fmt.Sprintf("    %s · due %s · %s", opp.Organization, opp.DeadlineOrDefault(), opp.AmountOrDefault())
	return head + "\n" + v.styles.Muted.Render(list.Clip(detail, max(v.width-2, 20)))
}

// Describe renders an opportunity as readable text.
func Describe(opp domain.OpportunityRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Organization: %s\n", opp.Organization)
	fmt.Fprintf(&b, "Deadline: %s\n", opp.DeadlineOrDefault())
	fmt.Fprintf(&b, "Amount: %s\n", opp.AmountOrDefault())
	if len(opp.FocusAreas) > 0 {
		fmt.Fprintf(&b, "Focus areas: %s\n", strings.Join(opp.FocusAreas, ", "))
	}
	if opp.RelevanceScore != nil {
		fmt.Fprintf(&b, "Relevance: %d\n", *opp.RelevanceScore)
	}
	if opp.URL != "" {
		fmt.Fprintf(&b, "URL: %s\n", opp.URL)
	}
	if opp.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", opp.Description)
	}
	if opp.Eligibility != "" {
		fmt.Fprintf(&b, "\nEligibility: %s\n", opp.Eligibility)
	}
	if len(opp.Requirements) > 0 {
		b.WriteString("\nRequirements:\n")
		for _, r := range opp.Requirements {
			fmt.Fprintf(&b, "- %s\n", r)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
	v.reader.SetDimensions(width, height)
	v.cursor.SetVisible((height - 8) / rowsPerOpportunity)
}

// Selected returns the highlighted opportunity, or nil when there are none.
func (v *View) Selected() *domain.OpportunityRecord {
	if len(v.opportunities) == 0 {
		return nil
	}
	return &v.opportunities[v.cursor.Selected()]
}

func (v *View) Opportunities() []domain.OpportunityRecord { return v.opportunities }

func (v *View) InputFocused() bool { return v.focusInput }

func (v *View) Reading() bool { return v.reading }

func (v *View) Busy() bool { return v.busy }

func (v *View) Err() error { return v.err }

// Reader returns the pager used for details and generated drafts.
func (v *View) Reader() *pager.Pager { return v.reader }

// Status returns the status bar.
func (v *View) Status() *status.Bar { return v.statusbar }
