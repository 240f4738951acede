package views

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"fonoteca/internal/adapters/tui/styles"
	"fonoteca/internal/application/commands"
	"fonoteca/internal/ports"
)

const statsBarWidth = 30

// StatsModel shows collection statistics
type StatsModel struct {
	ViewState
	ctx     context.Context
	api     ports.CatalogAPI
	spinner spinner.Model
	loading bool
	result  *commands.StatsResult
}

type statsLoadedMsg struct {
	result *commands.StatsResult
	err    error
}

// NewStatsModel creates a new stats view model
func NewStatsModel(ctx context.Context, api ports.CatalogAPI) *StatsModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return &StatsModel{ctx: ctx, api: api, spinner: s}
}

// Init starts fetching statistics
func (m *StatsModel) Init() tea.Cmd {
	m.loading = true
	m.result = nil
	m.ClearMessage()
	return tea.Batch(m.spinner.Tick, m.load)
}

func (m *StatsModel) load() tea.Msg {
	result, err := commands.NewStatsCommand(m.api).Execute(m.ctx)
	return statsLoadedMsg{result: result, err: err}
}

// Update handles messages for the stats view
func (m *StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case statsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.SetError(msg.err)
			return m, nil
		}
		m.result = msg.result
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, send(SwitchToBrowserMsg{})
		}
	}

	return m, nil
}

// View renders the stats view
func (m *StatsModel) View() string {
	v := NewViewBuilder().Title("Collection Statistics")

	switch {
	case m.loading:
		v.Line(m.spinner.View() + styles.MutedText.Render(" loading statistics…"))
	case m.result != nil:
		v.Raw(renderStats(m.result))
	}
	v.BlankLine()

	return v.Message(m.Message, m.MessageKind).Help(HelpKeys.Close).String()
}

func renderStats(res *commands.StatsResult) string {
	var b strings.Builder
	if res.Stats.CollectionName != "" {
		b.WriteString(RenderLabelValue("Collection", res.Stats.CollectionName))
		b.WriteString("\n")
	}
	b.WriteString(RenderLabelValue("Total", fmt.Sprint(res.Stats.TotalCount)))
	b.WriteString("\n\n")

	types := make([]string, 0, len(res.Stats.TypeCounts))
	for t := range res.Stats.TypeCounts {
		types = append(types, t)
	}
	sort.Strings(types)

	for _, t := range types {
		n := res.Stats.TypeCounts[t]
		width := 0
		if res.Stats.TotalCount > 0 {
			width = n * statsBarWidth / res.Stats.TotalCount
		}
		fmt.Fprintf(&b, "  %-11s %5d  %s\n", t, n, styles.Bar.Render(strings.Repeat("█", width)))
	}

	if len(res.Types) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("accepted types: " + strings.Join(res.Types, ", ")))
		b.WriteString("\n")
	}
	return b.String()
}
