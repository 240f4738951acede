package views

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"fonoteca/internal/application"
	"fonoteca/internal/application/commands"
	"fonoteca/internal/domain"
	"fonoteca/internal/ports"
)

const (
	createFieldPath = iota
	createFieldType
	createFieldDescription
	createFieldTags
	createFieldDuration
)

// CreateModel is the model for the create view
type CreateModel struct {
	ViewState
	ctx  context.Context
	api  ports.CatalogWriter
	form *InputForm
}

// NewCreateModel creates a new create view model
func NewCreateModel(ctx context.Context, api ports.CatalogWriter) *CreateModel {
	return &CreateModel{
		ctx:  ctx,
		api:  api,
		form: newCreateForm(),
	}
}

func newCreateForm() *InputForm {
	return NewInputForm(
		NewInputField("File", "~/Music/sfx/door_slam.wav", 512),
		NewInputField("Type", "ambient", 20).
			WithHint(domain.JoinTypes(" | ")+"  (guessed from the file name when left empty)"),
		NewInputField("Description", "derived from the file name", 200),
		NewInputField("Tags", "door, wood, slam", 200).
			WithHint("comma separated"),
		NewInputField("Duration (seconds)", "detected when empty", 6),
	)
}

// Reset clears the form for a new asset
func (m *CreateModel) Reset() {
	m.form.Reset()
	m.ClearMessage()
}

// Init initializes the create view
func (m *CreateModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the create view
func (m *CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			m.suggestType()
			return m, m.create()
		}
	}

	leaving := m.form.FocusedField
	handled, cmd := m.form.Update(msg)
	if handled && leaving == createFieldPath {
		m.suggestType()
	}
	return m, cmd
}

// suggestType fills the type field from the file name if it is still empty
func (m *CreateModel) suggestType() {
	if m.form.Value(createFieldType) != "" {
		return
	}
	if t := domain.SuggestType(m.form.Value(createFieldPath)); t != "" {
		m.form.SetValue(createFieldType, string(t))
	}
}

func (m *CreateModel) create() tea.Cmd {
	cmd := commands.NewCreateCommand(m.api, nil, m.form.Value(createFieldPath), m.form.Value(createFieldType))
	cmd.Description = m.form.Value(createFieldDescription)
	cmd.Tags = domain.SplitTags(m.form.Value(createFieldTags))

	if v := m.form.Value(createFieldDuration); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return send(MutationErrMsg{Err: &application.ValidationError{Field: "duration", Message: "duration must be a whole number of seconds"}})
		}
		cmd.Duration = n
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

// View renders the create view
func (m *CreateModel) View() string {
	return NewViewBuilder().
		Title("New Asset").
		Subtitle("Register an audio file in the catalog").
		Line(m.form.Render()).
		BlankLine().
		Message(m.Message, m.MessageKind).
		Raw(m.form.RenderHelp("create")).
		String()
}
