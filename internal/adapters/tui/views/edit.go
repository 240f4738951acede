package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"fonoteca/internal/application/commands"
	"fonoteca/internal/domain"
	"fonoteca/internal/ports"
)

const (
	editFieldType = iota
	editFieldDescription
	editFieldTags
)

// EditModel edits type, description and tags of one asset
type EditModel struct {
	ViewState
	ctx    context.Context
	api    ports.CatalogAPI
	target domain.Asset
	form   *InputForm
}

// NewEditModel creates a new edit view model
func NewEditModel(ctx context.Context, api ports.CatalogAPI) *EditModel {
	return &EditModel{
		ctx: ctx,
		api: api,
		form: NewInputForm(
			NewInputField("Type", "", 20).WithHint(domain.JoinTypes(" | ")),
			NewInputField("Description", "", 200),
			NewInputField("Tags", "", 200).WithHint("comma separated, empty clears all tags"),
		),
	}
}

// SetTarget loads an asset into the form
func (m *EditModel) SetTarget(a domain.Asset) {
	m.target = a
	m.ClearMessage()
	m.form.Reset()
	m.form.SetValue(editFieldType, string(a.Type))
	m.form.SetValue(editFieldDescription, a.Description)
	m.form.SetValue(editFieldTags, strings.Join(a.Tags, ", "))
	m.form.SetFocus(editFieldDescription)
}

// Init initializes the edit view
func (m *EditModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the edit view
func (m *EditModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case MutationErrMsg:
		m.SetError(msg.Err)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, send(SwitchToBrowserMsg{})
		case key.Matches(msg, m.form.Keys.Submit):
			return m, m.save()
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

// updateCommand builds the update from the fields that differ from the target
func (m *EditModel) updateCommand() *commands.UpdateCommand {
	cmd := commands.NewUpdateCommand(m.api, nil, m.target.ID)

	if v := m.form.Value(editFieldType); v != string(m.target.Type) {
		cmd.Type = &v
	}
	if v := m.form.Value(editFieldDescription); v != m.target.Description {
		cmd.Description = &v
	}
	if v := m.form.Value(editFieldTags); v != strings.Join(m.target.Tags, ", ") {
		tags := domain.SplitTags(v)
		if tags == nil {
			tags = []string{}
		}
		cmd.Tags = &tags
	}
	return cmd
}

func (m *EditModel) save() tea.Cmd {
	cmd := m.updateCommand()
	if cmd.Type == nil && cmd.Description == nil && cmd.Tags == nil {
		return send(SwitchToBrowserMsg{})
	}
	if err := cmd.Validate(); err != nil {
		return send(MutationErrMsg{Err: err})
	}

	return func() tea.Msg {
		result, err := cmd.Execute(m.ctx)
		if err != nil {
			return MutationErrMsg{Err: err}
		}
		return MutationDoneMsg{Message: result.Message}
	}
}

// View renders the edit view
func (m *EditModel) View() string {
	return NewViewBuilder().
		Title("Edit Asset").
		Line(RenderAssetRow(m.target, false, m.Width)).
		Muted("    " + m.target.Path).
		BlankLine().
		Line(m.form.Render()).
		BlankLine().
		Message(m.Message, m.MessageKind).
		Raw(m.form.RenderHelp("save")).
		String()
}
