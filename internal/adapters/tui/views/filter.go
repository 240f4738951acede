package views

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"fonoteca/internal/application"
	"fonoteca/internal/domain"
)

const (
	filterFieldType = iota
	filterFieldTag
	filterFieldMin
	filterFieldMax
)

// FilterModel edits the structural filter criteria
type FilterModel struct {
	ViewState
	form *InputForm
}

// NewFilterModel creates a new filter view model
func NewFilterModel() *FilterModel {
	return &FilterModel{
		form: NewInputForm(
			NewInputField("Type", "any", 20).WithHint(domain.JoinTypes(" | ")),
			NewInputField("Tag contains", "any", 64),
			NewInputField("Min duration (seconds)", "none", 6),
			NewInputField("Max duration (seconds)", "none", 6),
		),
	}
}

// SetCriteria prefills the form with the active criteria
func (m *FilterModel) SetCriteria(c domain.FilterCriteria) {
	m.ClearMessage()
	m.form.Reset()
	m.form.SetValue(filterFieldType, string(c.Type))
	m.form.SetValue(filterFieldTag, c.Tag)
	if c.MinDuration != nil {
		m.form.SetValue(filterFieldMin, strconv.Itoa(*c.MinDuration))
	}
	if c.MaxDuration != nil {
		m.form.SetValue(filterFieldMax, strconv.Itoa(*c.MaxDuration))
	}
}

// Init initializes the filter view
func (m *FilterModel) Init() tea.Cmd {
	return m.form.Init()
}

// Criteria parses the form into filter criteria
func (m *FilterModel) Criteria() (domain.FilterCriteria, error) {
	return application.ParseCriteria(
		m.form.Value(filterFieldType),
		m.form.Value(filterFieldTag),
		m.form.Value(filterFieldMin),
		m.form.Value(filterFieldMax),
	)
}

// Update handles messages for the filter view
func (m *FilterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, send(SwitchToBrowserMsg{})
		case key.Matches(msg, m.form.Keys.Submit):
			criteria, err := m.Criteria()
			if err != nil {
				m.SetError(err)
				return m, nil
			}
			return m, send(FilterAppliedMsg{Criteria: criteria})
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

// View renders the filter view
func (m *FilterModel) View() string {
	return NewViewBuilder().
		Title("Filter").
		Subtitle("Empty fields match everything").
		Line(m.form.Render()).
		BlankLine().
		Message(m.Message, m.MessageKind).
		Raw(m.form.RenderHelp("apply")).
		String()
}
