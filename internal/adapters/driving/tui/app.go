package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driving/tui/views/drafts"
	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driving/tui/views/opportunities"
	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driving/tui/views/search"
)

// App is the root TUI model following the Elm architecture.
// It owns one view per screen and routes messages to the active one.
type App struct {
	ports *Ports
	ctx   context.Context

	styles *styles.Styles
	keys   *keymap.KeyMap

	menuView          *menu.View
	searchView        *search.View
	opportunitiesView *opportunities.View
	draftsView        *drafts.View

	currentView messages.ViewType
	err         error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	menuView := menu.NewView(s, km, nil)
	menuView.SetSubtitle(ports.Organization)

	return &App{
		ports:             ports,
		ctx:               context.Background(),
		styles:            s,
		keys:              km,
		menuView:          menuView,
		searchView:        search.NewView(s, km, ports.Retrieval, 0),
		opportunitiesView: opportunities.NewView(s, km, ports.Discovery, ports.Generation, ports.Drafts),
		draftsView:        drafts.NewView(s, km, ports.Drafts),
		currentView:       messages.ViewMenu,
	}, nil
}

// WithContext sets the context every background command runs under.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.opportunitiesView.WithContext(ctx)
	a.draftsView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.SetWindowTitle("grantcraft")
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message router
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.searchView.SetDimensions(msg.Width, msg.Height)
		a.opportunitiesView.SetDimensions(msg.Width, msg.Height)
		a.draftsView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			if msg.Type == tea.KeyEsc || msg.String() == "q" {
				a.currentView = messages.ViewMenu
			}
			return a, nil
		}

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewSearch:
			a.searchView.Reset()
			return a, a.searchView.Init()
		case messages.ViewOpportunities:
			return a, a.opportunitiesView.Init()
		case messages.ViewDrafts:
			return a, a.draftsView.Init()
		case messages.ViewMenu, messages.ViewHelp:
		}
		return a, nil

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = msg.Err
		return a, cmd

	case messages.OpportunitiesLoaded, messages.DraftGenerated:
		a.opportunitiesView, cmd = a.opportunitiesView.Update(msg)
		a.err = a.opportunitiesView.Err()
		return a, cmd

	case messages.DraftsLoaded, messages.DraftDeleted:
		a.draftsView, cmd = a.draftsView.Update(msg)
		a.err = a.draftsView.Err()
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
	}

	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewOpportunities:
		a.opportunitiesView, cmd = a.opportunitiesView.Update(msg)
	case messages.ViewDrafts:
		a.draftsView, cmd = a.draftsView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewOpportunities:
		return a.opportunitiesView.View()
	case messages.ViewDrafts:
		return a.draftsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Anywhere:
  ctrl+c      Quit
  esc         Back

Search examples:
  (type)      Enter a query
  tab         Switch topic / voice search
  enter       Search, then open the selected excerpt
  /, n        New query

Opportunities:
  enter       Discover with the typed keywords (blank lists all)
  enter       Open the selected opportunity
  g           Draft a proposal and save it

Drafts:
  enter       Read the selected draft
  d           Delete (confirm with y)
  r           Reload

Reader:
  j/k, ↑/↓    Scroll
  pgup/pgdn   Page
  g/G         Top / bottom

` + a.styles.Help.Render("[esc] back to menu")
}

// Run starts the TUI on the alternate screen and blocks until it exits.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the active view.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error reported by a view.
func (a *App) Err() error {
	return a.err
}

// Ready reports whether the terminal size is known.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sizes the app without a window message.
func (a *App) SetDimensions(width, height int) {
	a.Update(tea.WindowSizeMsg{Width: width, Height: height})
}

func (a *App) SearchView() *search.View { return a.searchView }

func (a *App) OpportunitiesView() *opportunities.View { return a.opportunitiesView }

func (a *App) DraftsView() *drafts.View { return a.draftsView }
