package views

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"fonoteca/internal/adapters/tui/styles"
)

// SearchKeyMap defines key bindings for the search prompt
type SearchKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

var SearchKeys = SearchKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "search"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// SearchPrompt is the inline free-text search input of the browser. While a
// remote search is in flight it shows a spinner instead of the input.
type SearchPrompt struct {
	input   textinput.Model
	spinner spinner.Model
	active  bool
	pending string // query of the in-flight search
}

// NewSearchPrompt creates a closed search prompt
func NewSearchPrompt() SearchPrompt {
	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "heavy rain on a tin roof"
	input.CharLimit = 200

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return SearchPrompt{input: input, spinner: s}
}

// Open shows the input, prefilled with the last query
func (p *SearchPrompt) Open(query string) tea.Cmd {
	p.active = true
	p.input.SetValue(query)
	p.input.CursorEnd()
	p.input.Focus()
	return textinput.Blink
}

// Close hides the input
func (p *SearchPrompt) Close() {
	p.active = false
	p.input.Blur()
}

// Active reports whether the input has focus
func (p *SearchPrompt) Active() bool {
	return p.active
}

// Value returns the typed query
func (p *SearchPrompt) Value() string {
	return p.input.Value()
}

// Start marks query as in flight and starts the spinner
func (p *SearchPrompt) Start(query string) tea.Cmd {
	p.pending = query
	return p.spinner.Tick
}

// Done stops the spinner
func (p *SearchPrompt) Done() {
	p.pending = ""
}

// Pending reports whether a search is in flight
func (p *SearchPrompt) Pending() bool {
	return p.pending != ""
}

// Update forwards input and spinner messages
func (p *SearchPrompt) Update(msg tea.Msg) tea.Cmd {
	if tick, ok := msg.(spinner.TickMsg); ok {
		if !p.Pending() {
			return nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(tick)
		return cmd
	}
	if !p.active {
		return nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// View renders the prompt line, or "" when there is nothing to show
func (p *SearchPrompt) View() string {
	switch {
	case p.active:
		return styles.InputFocused.Render(p.input.View())
	case p.Pending():
		return p.spinner.View() + styles.MutedText.Render(" searching for "+`"`+p.pending+`"…`)
	default:
		return ""
	}
}
