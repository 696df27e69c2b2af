// Package drafts provides the saved drafts view for the TUI.
package drafts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driving/tui/components/pager"
	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driving"
)

// ErrNoDraftService indicates that draft storage is not configured.
var ErrNoDraftService = errors.New("draft service is required")

const timeLayout = "2006-01-02 15:04"

// View lists saved drafts and opens them as markdown.
type View struct {
	styles    *styles.Styles
	keys      *keymap.KeyMap
	cursor    *list.Cursor
	statusbar *status.Bar
	reader    *pager.Pager

	service driving.DraftService
	ctx     context.Context

	drafts     []domain.Draft
	loading    bool
	reading    bool
	confirming bool
	width      int
	height     int
	err        error
}

// NewView creates the drafts view.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.DraftService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	v := &View{
		styles:    s,
		keys:      km,
		cursor:    list.NewCursor(1),
		statusbar: status.NewBar(s, "drafts"),
		reader:    pager.New(s, km),
		service:   service,
		ctx:       context.Background(),
	}
	v.statusbar.SetHints(km.DraftHelp())
	v.SetDimensions(80, 24)
	return v
}

// WithContext sets the context storage calls run under.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the drafts.
func (v *View) Init() tea.Cmd {
	v.reading = false
	v.confirming = false
	return v.load()
}

func (v *View) load() tea.Cmd {
	v.loading = true
	v.statusbar.Working("Loading drafts...")
	service, ctx := v.service, v.ctx
	return func() tea.Msg {
		if service == nil {
			return messages.DraftsLoaded{Err: ErrNoDraftService}
		}
		drafts, err := service.List(ctx)
		return messages.DraftsLoaded{Drafts: drafts, Err: err}
	}
}

func (v *View) remove(id string) tea.Cmd {
	service, ctx := v.service, v.ctx
	return func() tea.Msg {
		if service == nil {
			return messages.DraftDeleted{ID: id, Err: ErrNoDraftService}
		}
		return messages.DraftDeleted{ID: id, Err: service.Delete(ctx, id)}
	}
}

// Update handles messages for the drafts view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DraftsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.Fail(msg.Err)
			return v, nil
		}
		v.err = nil
		v.drafts = msg.Drafts
		v.cursor.SetCount(len(msg.Drafts))
		v.statusbar.Done(len(msg.Drafts), "")
		return v, nil

	case messages.DraftDeleted:
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.Fail(msg.Err)
			return v, nil
		}
		return v, v.load()

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.Fail(msg.Err)
		return v, nil
	}
	return v, nil
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

	if v.confirming {
		v.confirming = false
		if msg.String() == "y" {
			if d := v.Selected(); d != nil {
				return v, v.remove(d.ID)
			}
		}
		return v, nil
	}

	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	switch s := msg.String(); {
	case keymap.Matches(s, v.keys.Up):
		v.cursor.Up()
	case keymap.Matches(s, v.keys.Down):
		v.cursor.Down()
	case keymap.Matches(s, v.keys.Open):
		if d := v.Selected(); d != nil {
			v.reader.SetContent(d.Opportunity.Title, d.Markdown())
			v.reading = true
		}
	case keymap.Matches(s, v.keys.Delete):
		if v.Selected() != nil {
			v.confirming = true
		}
	case keymap.Matches(s, v.keys.Reload):
		return v, v.load()
	}
	return v, nil
}

// View renders the drafts view.
func (v *View) View() string {
	if v.reading {
		return v.reader.View()
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Drafts (%d)", len(v.drafts))))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading drafts..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case len(v.drafts) == 0:
		b.WriteString(v.styles.Muted.Render("No saved drafts. Draft one from Opportunities."))
	default:
		start, end := v.cursor.Window()
		for i := start; i < end; i++ {
			b.WriteString(v.renderDraft(i, &v.drafts[i]))
			b.WriteString("\n")
		}
	}

	if v.confirming {
		if d := v.Selected(); d != nil {
			b.WriteString("\n")
			b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Delete draft for %q? [y/N]", d.Opportunity.Title)))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.statusbar.View())
	return b.String()
}

func (v *View) renderDraft(index int, d *domain.Draft) string {
	state := fmt.Sprintf("%d sections", len(d.Sections))
	if n := d.FailedCount(); n > 0 {
		state += fmt.Sprintf(", %d failed", n)
	}
	titleWidth := max(v.width-len(timeLayout)-len(state)-8, 10)
	line := fmt.Sprintf("%-*s  %s  %s",
		titleWidth, list.Clip(d.Opportunity.Title, titleWidth), d.UpdatedAt.Local().Format(timeLayout), state)

	if index == v.cursor.Selected() {
		return v.styles.Selected.Render("> " + line)
	}
	return v.styles.Normal.Render("  " + line)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.statusbar.SetWidth(width)
	v.reader.SetDimensions(width, height)
	v.cursor.SetVisible(height - 6)
}

// Selected returns the highlighted draft, or nil when there are none.
func (v *View) Selected() *domain.Draft {
	if len(v.drafts) == 0 {
		return nil
	}
	return &v.drafts[v.cursor.Selected()]
}

func (v *View) Drafts() []domain.Draft { return v.drafts }

func (v *View) Reading() bool { return v.reading }

func (v *View) Confirming() bool { return v.confirming }

func (v *View) Err() error { return v.err }

// Reader returns the pager drafts are opened in.
func (v *View) Reader() *pager.Pager { return v.reader }
