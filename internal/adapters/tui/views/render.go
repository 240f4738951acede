package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"fonoteca/internal/adapters/tui/styles"
	"fonoteca/internal/catalog"
	"fonoteca/internal/domain"
)

// RenderKeyHelp formats a key binding as help text (key + description)
func RenderKeyHelp(b key.Binding) string {
	help := b.Help()
	return fmt.Sprintf("%s %s",
		styles.HelpKey.Render(help.Key),
		styles.HelpDesc.Render(help.Desc),
	)
}

// RenderHelpLine renders multiple key bindings as a help line separated by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		parts = append(parts, RenderKeyHelp(b))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage renders a status message styled by kind
func RenderMessage(message string, kind MessageKind) string {
	if message == "" {
		return ""
	}
	switch kind {
	case MessageError:
		return styles.ErrorMsg.Render(message)
	case MessageWarning:
		return styles.WarningMsg.Render(message)
	default:
		return styles.Success.Render(message)
	}
}

// RenderLabelValue renders a label: value pair
func RenderLabelValue(label, value string) string {
	return fmt.Sprintf("%s %s",
		styles.InputLabel.Render(label+":"),
		value,
	)
}

// RenderAssetRow renders one asset as a list line, truncated to width
func RenderAssetRow(a domain.Asset, selected bool, width int) string {
	desc := a.Description
	if desc == "" {
		desc = styles.MutedText.Render("(no description)")
	}
	line := fmt.Sprintf("%s  %s %s  %s",
		styles.RowID.Render(fmt.Sprint(a.ID)),
		styles.TypeLabel(a.Type),
		styles.RowDuration.Render(domain.FormatDuration(a.Duration)),
		desc,
	)
	if len(a.Tags) > 0 {
		line += "  " + styles.RowTags.Render(strings.Join(a.Tags, ", "))
	}
	if width > 0 {
		line = lipgloss.NewStyle().MaxWidth(width).Render(line)
	}
	if selected {
		return styles.RowSelected.Render("▶ ") + line
	}
	return "  " + line
}

// RenderAssetDetail renders all fields of an asset, one per line
func RenderAssetDetail(a domain.Asset) string {
	lines := []string{
		RenderLabelValue("ID", fmt.Sprint(a.ID)),
		RenderLabelValue("Type", styles.TypeLabel(a.Type)),
		RenderLabelValue("Description", a.Description),
		RenderLabelValue("Tags", strings.Join(a.Tags, ", ")),
		RenderLabelValue("Duration", domain.FormatDuration(a.Duration)),
		RenderLabelValue("Path", a.Path),
	}
	return strings.Join(lines, "\n")
}

// RenderPageWindow renders page navigation markers, highlighting current
func RenderPageWindow(window []catalog.PageMarker, current int) string {
	parts := make([]string, len(window))
	for i, m := range window {
		switch {
		case m.Gap:
			parts[i] = styles.MutedText.Render(m.String())
		case m.Page == current:
			parts[i] = styles.PageCurrent.Render(m.String())
		default:
			parts[i] = styles.PageOther.Render(m.String())
		}
	}
	return strings.Join(parts, "")
}

// RenderViewBadge renders the view state as a colored badge
func RenderViewBadge(state catalog.ViewState) string {
	color := styles.Muted
	switch state.Kind() {
	case catalog.KindLocallyFiltered:
		color = styles.Secondary
	case catalog.KindRemotelySearched:
		color = styles.Primary
	}
	return styles.Badge.Background(color).Render(state.String())
}

// ViewBuilder helps construct view output with consistent formatting
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates a new view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title adds a title section
func (v *ViewBuilder) Title(title string) *ViewBuilder {
	v.b.WriteString(styles.Title.Render(title))
	v.b.WriteString("\n\n")
	return v
}

// Subtitle adds a subtitle section
func (v *ViewBuilder) Subtitle(subtitle string) *ViewBuilder {
	v.b.WriteString(styles.Subtitle.Render(subtitle))
	v.b.WriteString("\n\n")
	return v
}

// Line adds a line of text
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString("\n")
	return v
}

// BlankLine adds a blank line
func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteString("\n")
	return v
}

// Muted adds muted text followed by a newline
func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	v.b.WriteString(styles.MutedText.Render(text))
	v.b.WriteString("\n")
	return v
}

// Message adds a message if non-empty, styled by kind
func (v *ViewBuilder) Message(message string, kind MessageKind) *ViewBuilder {
	if message == "" {
		return v
	}
	v.b.WriteString(RenderMessage(message, kind))
	v.b.WriteString("\n\n")
	return v
}

// Help adds a help line with key bindings
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	v.b.WriteString(RenderHelpLine(bindings...))
	return v
}

// Raw adds raw text without any formatting
func (v *ViewBuilder) Raw(text string) *ViewBuilder {
	v.b.WriteString(text)
	return v
}

// String returns the built view string wrapped in the app style
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}
