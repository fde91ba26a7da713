package ui

import (
	"strings"

	"valentine/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// RenderHelp renders context-sensitive help footer.
func RenderHelp(screen model.Screen, mode model.Mode, width int) string {
	if mode == model.ModeInsert {
		return renderFormHelp(width)
	}

	switch screen {
	case model.ScreenLink:
		return renderLinkHelp(width)
	case model.ScreenHistory:
		return renderHistoryHelp(width)
	case model.ScreenValentine:
		return renderValentineHelp(width)
	case model.ScreenInvalid:
		return renderInvalidHelp(width)
	default:
		return renderDefaultHelp(width)
	}
}

func renderLinkHelp(width int) string {
	keys := []string{
		helpKey("c", "copy"),
		helpKey("p", "preview"),
		helpKey("a", "new valentine"),
		helpKey("H", "history"),
		helpKey("q", "quit"),
	}
	return renderHelpLine(keys, width)
}

func renderHistoryHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("enter", "preview"),
		helpKey("c", "copy"),
		helpKey("d", "delete"),
		helpKey("u", "undo"),
		helpKey("a", "new valentine"),
		helpKey("q", "quit"),
	}
	return renderHelpLine(keys, width)
}

func renderValentineHelp(width int) string {
	keys := []string{
		helpKey("y", "yes"),
		helpKey("n", "no"),
		helpKey("tab", "switch"),
		helpKey("enter", "press"),
		helpKey("esc", "close"),
	}
	return renderHelpLine(keys, width)
}

func renderCelebrationHelp(width int) string {
	keys := []string{
		helpKey("r", "more confetti"),
		helpKey("esc", "close"),
		helpKey("q", "quit"),
	}
	return renderHelpLine(keys, width)
}

func renderInvalidHelp(width int) string {
	keys := []string{
		helpKey("a", "make your own"),
		helpKey("q", "quit"),
	}
	return renderHelpLine(keys, width)
}

func renderFormHelp(width int) string {
	keys := []string{
		helpKey("tab", "next field"),
		helpKey("shift+tab", "prev field"),
		helpKey("←/→", "choose"),
		helpKey("ctrl+s", "create link"),
		helpKey("esc", "cancel"),
	}
	return renderHelpLine(keys, width)
}

func renderDefaultHelp(width int) string {
	keys := []string{
		helpKey("?", "help"),
		helpKey("q", "quit"),
	}
	return renderHelpLine(keys, width)
}

func helpKey(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

func renderHelpLine(keys []string, width int) string {
	line := strings.Join(keys, "  ")
	return FooterStyle.Width(width).Render(line)
}

// RenderFullHelp renders the full help screen.
func RenderFullHelp(width, height int) string {
	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-6).
		Padding(1, 2)

	sections := []string{
		titleSection("Builder (Insert Mode)"),
		helpSection([]helpItem{
			{"tab / shift+tab", "Next / previous field"},
			{"← / →", "Cycle question preset or theme"},
			{"ctrl+s", "Validate and create the link"},
			{"esc", "Cancel"},
		}),
		titleSection("Link Screen"),
		helpSection([]helpItem{
			{"c", "Copy link to clipboard"},
			{"p", "Preview the valentine"},
			{"a", "Build another valentine"},
			{"H", "Open link history"},
		}),
		titleSection("History Screen"),
		helpSection([]helpItem{
			{"j / k", "Move down / up"},
			{"enter", "Preview selected valentine"},
			{"c", "Copy selected link"},
			{"d", "Delete selected link"},
			{"u / ctrl+r", "Undo / redo a delete"},
		}),
		titleSection("Valentine"),
		helpSection([]helpItem{
			{"y", "Yes"},
			{"n", "No (while it lasts)"},
			{"tab / ← / →", "Switch focused button"},
			{"enter / space", "Press focused button"},
			{"r", "More confetti (after yes)"},
			{"esc", "Close preview"},
		}),
		titleSection("General"),
		helpSection([]helpItem{
			{"?", "Toggle help"},
			{"q / ctrl+c", "Quit"},
		}),
	}

	helpText := content.Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		helpText,
		FooterStyle.Width(width).Render(HelpKeyStyle.Render("esc")+" "+HelpDescStyle.Render("close help")),
	)
}

type helpItem struct {
	key  string
	desc string
}

func titleSection(title string) string {
	return LabelStyle.Render(title)
}

func helpSection(items []helpItem) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, "  "+HelpKeyStyle.Render(item.key)+" - "+HelpDescStyle.Render(item.desc))
	}
	return strings.Join(lines, "\n")
}
