package views

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"fonoteca/internal/adapters/tui/styles"
	"fonoteca/internal/application/commands"
	"fonoteca/internal/ports"
)

// DeleteModel is the model for the delete confirmation view
type DeleteModel struct {
	ConfirmationModel
	ctx context.Context
	api ports.CatalogWriter
}

// NewDeleteModel creates a new delete view model
func NewDeleteModel(ctx context.Context, api ports.CatalogWriter) *DeleteModel {
	return &DeleteModel{
		ConfirmationModel: NewConfirmationModel(),
		ctx:               ctx,
		api:               api,
	}
}

// Init initializes the delete view
func (m *DeleteModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the delete view
func (m *DeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case MutationErrMsg:
		m.SetError(msg.Err)
		return m, nil

	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg,
			m.doDelete,
			func() tea.Msg { return SwitchToBrowserMsg{} },
		)
		if handled {
			return m, cmd
		}
	}

	return m, nil
}

// doDelete runs on the command goroutine. The browser reloads the collection
// when it receives the result, so no observer is passed.
func (m *DeleteModel) doDelete() tea.Msg {
	if m.Target == nil {
		return MutationErrMsg{Err: fmt.Errorf("no asset selected")}
	}

	result, err := commands.NewDeleteCommand(m.api, nil, m.Target.ID).Execute(m.ctx)
	if err != nil {
		return MutationErrMsg{Err: err}
	}
	return MutationDoneMsg{Message: result.Message}
}

// View renders the delete confirmation view
func (m *DeleteModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Delete Asset"))
	b.WriteString("\n\n")

	b.WriteString(styles.ErrorMsg.Render("This action cannot be undone!"))
	b.WriteString("\n\n")

	b.WriteString(RenderTargetInfo(m.Target, "Delete"))
	b.WriteString("\n\n")

	if m.Message != "" {
		b.WriteString(RenderMessage(m.Message, m.MessageKind))
		b.WriteString("\n\n")
	}

	b.WriteString(RenderConfirmPrompt("Are you sure?"))

	return styles.App.Render(b.String())
}
