package styles

import (
	"github.com/charmbracelet/lipgloss"

	"fonoteca/internal/domain"
)

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// Asset type colors
	TypeMusic      = lipgloss.Color("#6366F1") // Indigo
	TypeAmbient    = lipgloss.Color("#10B981") // Green
	TypeMood       = lipgloss.Color("#EC4899") // Pink
	TypeAction     = lipgloss.Color("#F97316") // Orange
	TypeTransition = lipgloss.Color("#60A5FA") // Blue

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Asset list styles
	RowSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	RowID = lipgloss.NewStyle().
		Foreground(Muted).
		Width(6).
		Align(lipgloss.Right)

	RowDuration = lipgloss.NewStyle().
			Width(8).
			Align(lipgloss.Right)

	RowTags = lipgloss.NewStyle().
		Foreground(Muted).
		Italic(true)

	// Page window
	PageCurrent = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Padding(0, 1)

	PageOther = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1)

	// View state badge
	Badge = lipgloss.NewStyle().
		Foreground(White).
		Padding(0, 1)

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(White).
			Padding(0, 1)

	StatusText = lipgloss.NewStyle().
			Foreground(Muted)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	WarningMsg = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Spinner = lipgloss.NewStyle().
		Foreground(Primary)

	// Stats bars
	Bar = lipgloss.NewStyle().
		Foreground(Secondary)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// TypeColor returns the color for an asset type
func TypeColor(t domain.AssetType) lipgloss.Color {
	switch t {
	case domain.AssetTypeMusic:
		return TypeMusic
	case domain.AssetTypeAmbient:
		return TypeAmbient
	case domain.AssetTypeMood:
		return TypeMood
	case domain.AssetTypeAction:
		return TypeAction
	case domain.AssetTypeTransition:
		return TypeTransition
	default:
		return Primary
	}
}

// TypeLabel renders an asset type in its color, padded to a fixed width
func TypeLabel(t domain.AssetType) string {
	return lipgloss.NewStyle().
		Foreground(TypeColor(t)).
		Width(11).
		Render(string(t))
}
