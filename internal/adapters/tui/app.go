package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"fonoteca/internal/adapters/tui/views"
	"fonoteca/internal/catalog"
	"fonoteca/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewFilter
	ViewCreate
	ViewEdit
	ViewDelete
	ViewHelp
	ViewStats
)

// App is the main TUI application model
type App struct {
	player  ports.PlayerOpener
	changes <-chan struct{}

	state   ViewState
	browser *views.BrowserModel
	filter  *views.FilterModel
	create  *views.CreateModel
	edit    *views.EditModel
	del     *views.DeleteModel
	help    *views.HelpModel
	stats   *views.StatsModel

	width  int
	height int
}

// NewApp creates a new TUI application. engine must read from api; player
// may be nil, in which case playback is reported as unavailable.
func NewApp(ctx context.Context, engine *catalog.Engine, api ports.CatalogAPI, player ports.PlayerOpener) *App {
	return &App{
		player:  player,
		state:   ViewBrowser,
		browser: views.NewBrowserModel(ctx, engine),
		filter:  views.NewFilterModel(),
		create:  views.NewCreateModel(ctx, api),
		edit:    views.NewEditModel(ctx, api),
		del:     views.NewDeleteModel(ctx, api),
		help:    views.NewHelpModel(),
		stats:   views.NewStatsModel(ctx, api),
	}
}

// WatchChanges reloads the browser whenever ch receives. Call before the
// program starts.
func (a *App) WatchChanges(ch <-chan struct{}) {
	a.changes = ch
}

// State returns the active view
func (a *App) State() ViewState {
	return a.state
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.browser.Init(), a.waitForChange())
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.filter.SetSize(msg.Width, msg.Height)
		a.create.SetSize(msg.Width, msg.Height)
		a.edit.SetSize(msg.Width, msg.Height)
		a.del.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		a.stats.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, nil

	case views.SwitchToFilterMsg:
		a.state = ViewFilter
		a.filter.SetCriteria(a.browser.Criteria())
		return a, a.filter.Init()

	case views.SwitchToCreateMsg:
		a.state = ViewCreate
		a.create.Reset()
		return a, a.create.Init()

	case views.SwitchToEditMsg:
		a.state = ViewEdit
		a.edit.SetTarget(msg.Asset)
		return a, a.edit.Init()

	case views.SwitchToDeleteMsg:
		a.state = ViewDelete
		a.del.SetTarget(msg.Asset)
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToStatsMsg:
		a.state = ViewStats
		return a, a.stats.Init()

	case views.FilterAppliedMsg:
		if err := a.browser.ApplyFilter(msg.Criteria); err != nil {
			a.filter.SetError(err)
			return a, nil
		}
		a.state = ViewBrowser
		return a, nil

	case views.MutationDoneMsg:
		a.state = ViewBrowser
		_, cmd := a.browser.Update(msg)
		return a, cmd

	case views.CatalogChangedMsg:
		_, cmd := a.browser.Update(msg)
		return a, tea.Batch(cmd, a.waitForChange())

	case views.PlayMsg:
		return a, a.play(msg.Path)

	case playerFinishedMsg:
		if msg.err != nil {
			a.browser.SetError(msg.err)
		}
		return a, nil
	}

	cmds := []tea.Cmd{a.updateCurrent(msg)}

	// async results (reloads, searches, spinner ticks) belong to the
	// browser even while another view is showing
	if _, isKey := msg.(tea.KeyMsg); !isKey && a.state != ViewBrowser {
		_, cmd := a.browser.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewFilter:
		_, cmd = a.filter.Update(msg)
	case ViewCreate:
		_, cmd = a.create.Update(msg)
	case ViewEdit:
		_, cmd = a.edit.Update(msg)
	case ViewDelete:
		_, cmd = a.del.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	case ViewStats:
		_, cmd = a.stats.Update(msg)
	}
	return cmd
}

func (a *App) waitForChange() tea.Cmd {
	if a.changes == nil {
		return nil
	}
	ch := a.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return views.CatalogChangedMsg{}
	}
}

type playerFinishedMsg struct{ err error }

func (a *App) play(path string) tea.Cmd {
	if a.player == nil {
		return func() tea.Msg {
			return playerFinishedMsg{err: fmt.Errorf("no audio player configured")}
		}
	}

	cmd, err := a.player.Command(path)
	if err != nil {
		return func() tea.Msg {
			return playerFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		if err != nil {
			err = fmt.Errorf("player: %w", err)
		}
		return playerFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewFilter:
		return a.filter.View()
	case ViewCreate:
		return a.create.View()
	case ViewEdit:
		return a.edit.View()
	case ViewDelete:
		return a.del.View()
	case ViewHelp:
		return a.help.View()
	case ViewStats:
		return a.stats.View()
	default:
		return a.browser.View()
	}
}
