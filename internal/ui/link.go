package ui

import (
	"strings"

	"valentine/internal/model"
	"valentine/internal/theme"
	"valentine/internal/util"
)

// LinkModel shows a freshly created link.
type LinkModel struct {
	entry   model.LinkEntry
	theme   *theme.Theme
	copied  bool
	copySeq int
}

// NewLinkModel creates the link screen for entry.
func NewLinkModel(entry model.LinkEntry, th *theme.Theme) *LinkModel {
	return &LinkModel{entry: entry, theme: th}
}

// View renders the link screen.
func (m *LinkModel) View(width, height int) string {
	rec := m.entry.Record
	inner := max(20, width-10)

	styleName := rec.Style
	if m.theme != nil {
		styleName = m.theme.Emoji + " " + m.theme.Name
	}

	lines := []string{
		LabelStyle.Render("Your valentine is ready 💌"),
		"",
		HelpDescStyle.Render("For    ") + util.TruncateString(rec.To, inner-7),
		HelpDescStyle.Render("From   ") + util.TruncateString(rec.From, inner-7),
		HelpDescStyle.Render("Asks   ") + util.TruncateString(rec.Question, inner-7),
		HelpDescStyle.Render("Style  ") + styleName,
	}
	if rec.YesText != "" {
		lines = append(lines, HelpDescStyle.Render("On yes ")+util.TruncateString(rec.YesText, inner-7))
	}
	if !m.entry.CreatedAt.IsZero() {
		lines = append(lines, HelpDescStyle.Render("Saved  ")+util.FormatDate(m.entry.CreatedAt))
	}

	lines = append(lines, "", LinkStyle.Render(util.TruncateMiddle(m.entry.Link, inner)))

	status := HelpDescStyle.Render("Press c to copy the link and send it to " + rec.To + ".")
	if m.copied {
		status = SuccessStyle.UnsetPadding().Render("Copied!")
	}
	lines = append(lines, "", status)

	n := len(m.entry.Link)
	lines = append(lines, HelpDescStyle.Render(util.FormatCount(n)+" "+util.Plural(n, "character", "characters")))

	return PanelStyle.
		Width(width - 4).
		Height(height - 4).
		Render(strings.Join(lines, "\n"))
}

// markCopied shows the confirmation and returns the sequence number its
// reset must carry.
func (m *LinkModel) markCopied() int {
	m.copySeq++
	m.copied = true
	return m.copySeq
}

func (m *LinkModel) resetCopied(seq int) {
	if seq == m.copySeq {
		m.copied = false
	}
}

