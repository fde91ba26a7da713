package ui

import (
	"valentine/internal/model"
	"valentine/internal/theme"
	"valentine/internal/util"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HistoryModel lists the links the sender created.
type HistoryModel struct {
	entries []model.LinkEntry
	catalog *theme.Catalog
	table   table.Model
	width   int
}

// NewHistoryModel creates the history screen.
func NewHistoryModel(entries []model.LinkEntry, catalog *theme.Catalog) *HistoryModel {
	styles := table.DefaultStyles()
	styles.Header = TableHeaderStyle
	styles.Cell = NormalRowStyle
	styles.Selected = SelectedRowStyle

	m := &HistoryModel{
		entries: entries,
		catalog: catalog,
		table: table.New(
			table.WithFocused(true),
			table.WithStyles(styles),
		),
	}
	m.layout(80, 20)
	return m
}

// Selected returns the highlighted entry.
func (m *HistoryModel) Selected() (model.LinkEntry, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.entries) {
		return model.LinkEntry{}, false
	}
	return m.entries[i], true
}

// Remove drops the entry with id after it was deleted from the database.
func (m *HistoryModel) Remove(id string) {
	for i, e := range m.entries {
		if e.ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			break
		}
	}
	m.table.SetRows(m.rows())
	if m.table.Cursor() >= len(m.entries) && len(m.entries) > 0 {
		m.table.SetCursor(len(m.entries) - 1)
	}
}

// Len returns the number of entries.
func (m *HistoryModel) Len() int {
	return len(m.entries)
}

// Update forwards navigation keys to the table.
func (m *HistoryModel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return cmd
}

func (m *HistoryModel) layout(width, height int) {
	if width == m.width && m.table.Height() == height {
		return
	}
	m.width = width

	// Fixed columns take what they need, names and question share the rest.
	const created, style = 16, 12
	rest := max(30, width-created-style-12)
	nameW := rest / 4
	questionW := rest - 2*nameW

	m.table.SetColumns([]table.Column{
		{Title: "To", Width: nameW},
		{Title: "From", Width: nameW},
		{Title: "Question", Width: questionW},
		{Title: "Style", Width: style},
		{Title: "Created", Width: created},
	})
	m.table.SetRows(m.rows())
	m.table.SetWidth(width)
	m.table.SetHeight(height)
}

func (m *HistoryModel) rows() []table.Row {
	rows := make([]table.Row, 0, len(m.entries))
	for _, e := range m.entries {
		style := e.Record.Style
		if th, ok := m.catalog.Lookup(style); ok {
			style = th.Emoji + " " + th.Name
		}
		rows = append(rows, table.Row{
			e.Record.To,
			e.Record.From,
			e.Record.Question,
			style,
			util.FormatAge(e.CreatedAt),
		})
	}
	return rows
}

// View renders the table, or an empty state.
func (m *HistoryModel) View(width, height int) string {
	if len(m.entries) == 0 {
		return EmptyStateStyle.Render("No links yet. Press a to build your first valentine.")
	}

	m.layout(width-2, height-2)
	n := len(m.entries)
	count := HelpDescStyle.Render(util.FormatCount(n) + " " + util.Plural(n, "link", "links"))
	return lipgloss.JoinVertical(lipgloss.Left, m.table.View(), "", " "+count)
}

