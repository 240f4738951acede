package views

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"fonoteca/internal/catalog"
	"fonoteca/internal/domain"
)

// MessageKind selects how a status message is styled
type MessageKind int

const (
	MessageInfo MessageKind = iota
	MessageWarning
	MessageError
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width       int
	Height      int
	Message     string
	MessageKind MessageKind
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, kind MessageKind) {
	s.Message = msg
	s.MessageKind = kind
}

// SetError shows err, unwrapping a failed search into a warning since the
// view has already fallen back to local results
func (s *ViewState) SetError(err error) {
	var searchErr *catalog.SearchError
	if errors.As(err, &searchErr) {
		s.SetMessage(searchErr.Error()+"; showing local filter results", MessageWarning)
		return
	}
	s.SetMessage(err.Error(), MessageError)
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageKind = MessageInfo
}

// View switching messages

type SwitchToBrowserMsg struct{}

type SwitchToHelpMsg struct{}

type SwitchToStatsMsg struct{}

type SwitchToFilterMsg struct{}

type SwitchToCreateMsg struct{}

type SwitchToEditMsg struct {
	Asset domain.Asset
}

type SwitchToDeleteMsg struct {
	Asset domain.Asset
}

// PlayMsg asks the app to preview an audio file in the external player
type PlayMsg struct {
	Path string
}

// FilterAppliedMsg carries new structural criteria from the filter form
type FilterAppliedMsg struct {
	Criteria domain.FilterCriteria
}

// MutationDoneMsg reports an accepted create, update or delete. The browser
// reloads the collection on receipt.
type MutationDoneMsg struct {
	Message string
}

// MutationErrMsg reports a rejected mutation to the view that issued it
type MutationErrMsg struct {
	Err error
}

// CatalogChangedMsg signals that the catalog changed outside this process
type CatalogChangedMsg struct{}

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
