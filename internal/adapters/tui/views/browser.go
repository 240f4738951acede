package views

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"fonoteca/internal/adapters/tui/styles"
	"fonoteca/internal/catalog"
	"fonoteca/internal/domain"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	PrevPage  key.Binding
	NextPage  key.Binding
	FirstPage key.Binding
	LastPage  key.Binding
	PageSize  key.Binding
	Play      key.Binding
	Copy      key.Binding
	Search    key.Binding
	Filter    key.Binding
	Clear     key.Binding
	New       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Stats     key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left", "pgup"),
		key.WithHelp("h/←", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right", "pgdown"),
		key.WithHelp("l/→", "next page"),
	),
	FirstPage: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "first page"),
	),
	LastPage: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "last page"),
	),
	PageSize: key.NewBinding(
		key.WithKeys("z"),
		key.WithHelp("z", "page size"),
	),
	Play: key.NewBinding(
		key.WithKeys("enter", "p"),
		key.WithHelp("enter", "play"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy path"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Filter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "filter"),
	),
	Clear: key.NewBinding(
		key.WithKeys("c", "esc"),
		key.WithHelp("c", "clear"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Stats: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "stats"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// PageSizes are the page sizes the browser cycles through
var PageSizes = []int{10, 20, 50}

// BrowserModel is the paginated asset list. All view state lives in the
// engine; the model keeps the last snapshot for rendering.
type BrowserModel struct {
	ViewState
	ctx     context.Context
	engine  *catalog.Engine
	snap    catalog.Snapshot
	cursor  int
	search  SearchPrompt
	loading bool
}

type reloadDoneMsg struct {
	res catalog.ReloadResult
}

type searchDoneMsg struct {
	res catalog.SearchResult
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(ctx context.Context, engine *catalog.Engine) *BrowserModel {
	m := &BrowserModel{
		ctx:    ctx,
		engine: engine,
		search: NewSearchPrompt(),
	}
	m.sync()
	return m
}

// Init loads the collection
func (m *BrowserModel) Init() tea.Cmd {
	return m.Reload()
}

// Reload issues a collection reload and returns the command that runs it
func (m *BrowserModel) Reload() tea.Cmd {
	req := m.engine.BeginReload()
	m.loading = true
	return func() tea.Msg {
		return reloadDoneMsg{res: m.engine.ExecReload(m.ctx, req)}
	}
}

// ApplyFilter replaces the structural criteria
func (m *BrowserModel) ApplyFilter(c domain.FilterCriteria) error {
	if err := m.engine.SetStructuralFilter(c); err != nil {
		return err
	}
	m.search.Done()
	m.cursor = 0
	m.sync()
	return nil
}

// Criteria returns the active structural criteria
func (m *BrowserModel) Criteria() domain.FilterCriteria {
	return m.snap.Criteria
}

// Selected returns the asset under the cursor
func (m *BrowserModel) Selected() (domain.Asset, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snap.Page) {
		return domain.Asset{}, false
	}
	return m.snap.Page[m.cursor], true
}

// sync re-reads the engine state and keeps the cursor on the page
func (m *BrowserModel) sync() {
	m.snap = m.engine.Snapshot()
	if m.cursor >= len(m.snap.Page) {
		m.cursor = max(0, len(m.snap.Page)-1)
	}
}

func (m *BrowserModel) goToPage(n int) {
	if m.engine.GoToPage(n) {
		m.cursor = 0
		m.sync()
	}
}

func (m *BrowserModel) startSearch(query string) tea.Cmd {
	req, remote := m.engine.BeginSearch(query)
	m.cursor = 0
	m.sync()
	if !remote {
		m.search.Done()
		return nil
	}
	exec := func() tea.Msg {
		return searchDoneMsg{res: m.engine.ExecSearch(m.ctx, req)}
	}
	return tea.Batch(m.search.Start(req.Query), exec)
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case reloadDoneMsg:
		err := m.engine.ApplyReload(msg.res)
		if errors.Is(err, catalog.ErrSuperseded) {
			return m, nil
		}
		m.loading = false
		if err != nil {
			m.SetError(err)
		}
		m.sync()
		return m, nil

	case searchDoneMsg:
		err := m.engine.ApplySearch(msg.res)
		if errors.Is(err, catalog.ErrSuperseded) {
			return m, nil
		}
		m.search.Done()
		m.cursor = 0
		m.sync()
		if err != nil {
			m.SetError(err)
		} else {
			m.SetMessage(fmt.Sprintf("%d results", m.snap.Pagination.TotalItems), MessageInfo)
		}
		return m, nil

	case MutationDoneMsg:
		m.SetMessage(msg.Message, MessageInfo)
		return m, m.Reload()

	case CatalogChangedMsg:
		return m, m.Reload()

	case tea.KeyMsg:
		if m.search.Active() {
			return m, m.updateSearchInput(msg)
		}
		return m, m.handleKey(msg)
	}

	return m, m.search.Update(msg)
}

func (m *BrowserModel) updateSearchInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, SearchKeys.Cancel):
		m.search.Close()
		return nil
	case key.Matches(msg, SearchKeys.Submit):
		query := m.search.Value()
		m.search.Close()
		m.ClearMessage()
		return m.startSearch(query)
	}
	return m.search.Update(msg)
}

func (m *BrowserModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.ClearMessage()

	switch {
	case key.Matches(msg, BrowserKeys.Quit):
		return tea.Quit

	case key.Matches(msg, BrowserKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		} else if m.engine.PrevPage() {
			m.sync()
			m.cursor = max(0, len(m.snap.Page)-1)
		}

	case key.Matches(msg, BrowserKeys.Down):
		if m.cursor < len(m.snap.Page)-1 {
			m.cursor++
		} else if m.engine.NextPage() {
			m.cursor = 0
			m.sync()
		}

	case key.Matches(msg, BrowserKeys.PrevPage):
		m.goToPage(m.snap.Pagination.CurrentPage - 1)

	case key.Matches(msg, BrowserKeys.NextPage):
		m.goToPage(m.snap.Pagination.CurrentPage + 1)

	case key.Matches(msg, BrowserKeys.FirstPage):
		m.goToPage(1)

	case key.Matches(msg, BrowserKeys.LastPage):
		m.goToPage(m.snap.Pagination.TotalPages)

	case key.Matches(msg, BrowserKeys.PageSize):
		m.cyclePageSize()

	case key.Matches(msg, BrowserKeys.Play):
		if a, ok := m.Selected(); ok {
			return send(PlayMsg{Path: a.Path})
		}

	case key.Matches(msg, BrowserKeys.Copy):
		if a, ok := m.Selected(); ok {
			if err := clipboard.WriteAll(a.Path); err != nil {
				m.SetError(fmt.Errorf("copy path: %w", err))
			} else {
				m.SetMessage("Copied "+a.Path, MessageInfo)
			}
		}

	case key.Matches(msg, BrowserKeys.Search):
		query := ""
		if s, ok := m.snap.State.(catalog.RemotelySearched); ok {
			query = s.Query
		}
		return m.search.Open(query)

	case key.Matches(msg, BrowserKeys.Clear):
		m.engine.ClearFilters()
		m.search.Done()
		m.cursor = 0
		m.sync()

	case key.Matches(msg, BrowserKeys.Filter):
		return send(SwitchToFilterMsg{})

	case key.Matches(msg, BrowserKeys.New):
		return send(SwitchToCreateMsg{})

	case key.Matches(msg, BrowserKeys.Edit):
		if a, ok := m.Selected(); ok {
			return send(SwitchToEditMsg{Asset: a})
		}

	case key.Matches(msg, BrowserKeys.Delete):
		if a, ok := m.Selected(); ok {
			return send(SwitchToDeleteMsg{Asset: a})
		}

	case key.Matches(msg, BrowserKeys.Stats):
		return send(SwitchToStatsMsg{})

	case key.Matches(msg, BrowserKeys.Refresh):
		return m.Reload()

	case key.Matches(msg, BrowserKeys.Help):
		return send(SwitchToHelpMsg{})
	}

	return nil
}

// cyclePageSize moves to the next entry of PageSizes, which returns to page 1
func (m *BrowserModel) cyclePageSize() {
	next := PageSizes[0]
	if i := slices.Index(PageSizes, m.snap.Pagination.ItemsPerPage); i >= 0 {
		next = PageSizes[(i+1)%len(PageSizes)]
	}
	if err := m.engine.ChangePageSize(next); err != nil {
		m.SetError(err)
		return
	}
	m.cursor = 0
	m.sync()
	m.SetMessage(fmt.Sprintf("%d assets per page", next), MessageInfo)
}

// View renders the browser
func (m *BrowserModel) View() string {
	v := NewViewBuilder()

	ps := m.snap.Pagination
	header := styles.Title.Render("Fonoteca") + "  " + RenderViewBadge(m.snap.State)
	header += styles.StatusText.Render(fmt.Sprintf("  %d of %d assets", ps.TotalItems, m.snap.CacheSize))
	v.Line(header).BlankLine()

	if prompt := m.search.View(); prompt != "" {
		v.Line(prompt).BlankLine()
	}

	switch {
	case len(m.snap.Page) > 0:
		for i, a := range m.snap.Page {
			v.Line(RenderAssetRow(a, i == m.cursor, m.Width-6))
		}
	case m.loading && !m.snap.Loaded:
		v.Muted("Loading catalog…")
	case m.snap.CacheSize == 0:
		v.Muted("The catalog is empty. Press n to add an asset.")
	default:
		v.Muted("No assets match. Press c to clear filters.")
	}
	v.BlankLine()

	if ps.TotalPages > 1 {
		v.Line(fmt.Sprintf("%s  %s",
			styles.StatusText.Render(fmt.Sprintf("page %d/%d", ps.CurrentPage, ps.TotalPages)),
			RenderPageWindow(m.snap.Window, ps.CurrentPage),
		)).BlankLine()
	}

	v.Message(m.Message, m.MessageKind)

	return v.Help(
		BrowserKeys.Play,
		BrowserKeys.Search,
		BrowserKeys.Filter,
		BrowserKeys.Clear,
		BrowserKeys.PrevPage,
		BrowserKeys.NextPage,
		BrowserKeys.New,
		BrowserKeys.Help,
		BrowserKeys.Quit,
	).String()
}
