package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorBase   = lipgloss.Color("#221A1E")
	ColorCard   = lipgloss.Color("#FFF5F7")
	ColorInk    = lipgloss.Color("#4A2B35")
	ColorMuted  = lipgloss.Color("#9C7C86")
	ColorText   = lipgloss.Color("#F4E1E6")
	ColorAccent = lipgloss.Color("#FF6B8A")
	ColorGreen  = lipgloss.Color("#a6e3a1")
	ColorRed    = lipgloss.Color("#f38ba8")
	ColorYellow = lipgloss.Color("#f9e2af")
)

// Styles
var (
	BaseStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorBase)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(ColorMuted)

	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true).
				Padding(0, 1).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(ColorMuted)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(ColorBase).
				Background(ColorAccent).
				Bold(false)

	NormalRowStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(ColorMuted)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Padding(0, 1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	BorderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)

	ActiveBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorAccent).
				Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(ColorMuted).
			Padding(1, 2)

	BreadcrumbStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	BreadcrumbActiveStyle = lipgloss.NewStyle().
				Foreground(ColorAccent)

	EmptyStateStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true).
			Padding(2, 4)

	SelectorStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	SelectorActiveStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)

	LinkStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Underline(true)
)

// Card styles. Every span inside the valentine card carries the card
// background so inner resets do not punch holes into it.
var (
	CardTitleStyle = lipgloss.NewStyle().
			Background(ColorCard).
			Foreground(ColorAccent).
			Bold(true)

	CardTextStyle = lipgloss.NewStyle().
			Background(ColorCard).
			Foreground(ColorInk)

	CardMutedStyle = lipgloss.NewStyle().
			Background(ColorCard).
			Foreground(ColorMuted).
			Italic(true)

	YesButtonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)

	NoButtonStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#E0D4D8")).
			Foreground(ColorInk)
)
