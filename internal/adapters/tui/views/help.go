package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"fonoteca/internal/adapters/tui/styles"
	"fonoteca/internal/domain"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, send(SwitchToBrowserMsg{})
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Fonoteca Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.Subtitle.Render("Audio asset catalog browser"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Navigation"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move up/down, crossing pages"))
	b.WriteString(helpLine("h / l / ← / →", "Previous/next page"))
	b.WriteString(helpLine("g / G", "First/last page"))
	b.WriteString(helpLine("z", "Cycle page size"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Finding assets"))
	b.WriteString("\n")
	b.WriteString(helpLine("/", "Semantic search (empty query filters locally)"))
	b.WriteString(helpLine("f", "Filter by type, tag and duration"))
	b.WriteString(helpLine("c / esc", "Clear search and filters"))
	b.WriteString(helpLine("r", "Reload the catalog"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Assets"))
	b.WriteString("\n")
	b.WriteString(helpLine("enter / p", "Play selected asset"))
	b.WriteString(helpLine("y", "Copy file path"))
	b.WriteString(helpLine("n", "Add an audio file"))
	b.WriteString(helpLine("e", "Edit type, description and tags"))
	b.WriteString(helpLine("d", "Delete selected asset"))
	b.WriteString(helpLine("s", "Collection statistics"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Duration rules"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  action, transition : more than 1, less than 10 seconds"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  ambient, music     : more than 60 seconds"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  mood               : more than 30 seconds"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  types              : " + domain.JoinTypes(", ")))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

// padRight pads s with spaces to length runes
func padRight(s string, length int) string {
	n := len([]rune(s))
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}
