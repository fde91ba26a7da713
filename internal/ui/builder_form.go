package ui

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"valentine/internal/codec"
	"valentine/internal/db"
	"valentine/internal/model"
	"valentine/internal/theme"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Builder fields in focus order.
const (
	fieldFrom = iota
	fieldTo
	fieldPreset
	fieldQuestion
	fieldStyle
	fieldYesText
	fieldCount
)

// BuilderFormModel is the sender's form.
type BuilderFormModel struct {
	db      *sql.DB
	catalog *theme.Catalog
	baseURL string
	keys    FormKeyMap

	focusedField int
	from         textinput.Model
	to           textinput.Model
	question     textinput.Model
	yesText      textinput.Model

	presets   []theme.Preset // catalog presets plus the custom entry
	presetIdx int
	styles    []*theme.Theme
	styleIdx  int

	errors map[int]string
}

// NewBuilderFormModel creates a builder prefilled from prefs.
func NewBuilderFormModel(database *sql.DB, catalog *theme.Catalog, baseURL string, prefs UIPreferences) *BuilderFormModel {
	m := &BuilderFormModel{
		db:      database,
		catalog: catalog,
		baseURL: baseURL,
		keys:    DefaultFormKeyMap(),
		presets: append(catalog.Presets(), theme.Preset{ID: model.CustomQuestion, Text: "Write my own…"}),
		styles:  catalog.Themes(),
		errors:  make(map[int]string),
	}

	m.from = textinput.New()
	m.from.Placeholder = "Your name"
	m.from.CharLimit = 60
	m.from.SetValue(prefs.LastFrom)

	m.to = textinput.New()
	m.to.Placeholder = "Their name"
	m.to.CharLimit = 60

	m.question = textinput.New()
	m.question.Placeholder = "Will you be my Valentine?"
	m.question.CharLimit = 200

	m.yesText = textinput.New()
	m.yesText.Placeholder = "Optional, shown after they say yes"
	m.yesText.CharLimit = 200

	for i, p := range m.presets {
		if p.ID == prefs.LastPreset {
			m.presetIdx = i
		}
	}
	for i, th := range m.styles {
		if th.ID == prefs.LastStyle {
			m.styleIdx = i
		}
	}

	if prefs.LastFrom != "" {
		m.focusedField = fieldTo
	}
	m.focus()
	return m
}

// Draft returns the current form state.
func (m *BuilderFormModel) Draft() model.Draft {
	d := model.Draft{
		From:     m.from.Value(),
		To:       m.to.Value(),
		Question: m.question.Value(),
		YesText:  m.yesText.Value(),
	}
	if len(m.presets) > 0 {
		d.QuestionPreset = m.presets[m.presetIdx].ID
	}
	if len(m.styles) > 0 {
		d.Style = m.styles[m.styleIdx].ID
	}
	return d
}

// Update handles input.
func (m BuilderFormModel) Update(msg tea.KeyMsg) (BuilderFormModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		return m, func() tea.Msg {
			return model.FormCancelledMsg{}
		}
	case key.Matches(msg, m.keys.Save):
		return m, m.save()
	case key.Matches(msg, m.keys.NextField):
		m.move(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevField):
		m.move(-1)
		return m, nil
	}

	switch m.focusedField {
	case fieldPreset:
		switch {
		case key.Matches(msg, m.keys.PrevOpt):
			m.presetIdx = cycle(m.presetIdx, -1, len(m.presets))
		case key.Matches(msg, m.keys.NextOpt):
			m.presetIdx = cycle(m.presetIdx, 1, len(m.presets))
		}
		delete(m.errors, fieldPreset)
		return m, nil
	case fieldStyle:
		switch {
		case key.Matches(msg, m.keys.PrevOpt):
			m.styleIdx = cycle(m.styleIdx, -1, len(m.styles))
		case key.Matches(msg, m.keys.NextOpt):
			m.styleIdx = cycle(m.styleIdx, 1, len(m.styles))
		}
		return m, nil
	}

	input := m.input(m.focusedField)
	if input == nil {
		return m, nil
	}
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	delete(m.errors, m.focusedField)
	return m, cmd
}

func (m *BuilderFormModel) customQuestion() bool {
	return len(m.presets) == 0 || m.presets[m.presetIdx].ID == model.CustomQuestion
}

func (m *BuilderFormModel) input(field int) *textinput.Model {
	switch field {
	case fieldFrom:
		return &m.from
	case fieldTo:
		return &m.to
	case fieldQuestion:
		return &m.question
	case fieldYesText:
		return &m.yesText
	}
	return nil
}

// move shifts focus, skipping the question input unless the custom preset
// is selected.
func (m *BuilderFormModel) move(delta int) {
	m.blur()
	for {
		m.focusedField = cycle(m.focusedField, delta, fieldCount)
		if m.focusedField != fieldQuestion || m.customQuestion() {
			break
		}
	}
	m.focus()
}

func (m *BuilderFormModel) focus() {
	if in := m.input(m.focusedField); in != nil {
		in.Focus()
	}
}

func (m *BuilderFormModel) blur() {
	if in := m.input(m.focusedField); in != nil {
		in.Blur()
	}
}

func cycle(i, delta, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i+delta)%n + n) % n
}

// save validates synchronously so field errors show up right away; the
// encode-and-store step runs as a command.
func (m *BuilderFormModel) save() tea.Cmd {
	rec, errs := codec.FromDraft(m.Draft(), m.catalog)
	m.errors = make(map[int]string)
	if len(errs) > 0 {
		for _, fe := range errs {
			m.errors[m.fieldFor(fe.Field)] = fe.Message
		}
		return nil
	}

	database, baseURL := m.db, m.baseURL
	return func() tea.Msg {
		entry, err := createLink(database, rec, baseURL)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.LinkCreatedMsg{Entry: entry}
	}
}

func (m *BuilderFormModel) fieldFor(name string) int {
	switch name {
	case model.FieldFrom:
		return fieldFrom
	case model.FieldTo:
		return fieldTo
	case model.FieldQuestion:
		if m.customQuestion() {
			return fieldQuestion
		}
		return fieldPreset
	case model.FieldYesText:
		return fieldYesText
	default:
		return fieldStyle
	}
}

// createLink encodes rec, builds its link and records it in history when a
// database is available.
func createLink(database *sql.DB, rec model.Record, baseURL string) (model.LinkEntry, error) {
	token, err := codec.Encode(rec)
	if err != nil {
		return model.LinkEntry{}, fmt.Errorf("failed to encode valentine: %w", err)
	}
	link, err := codec.Link(baseURL, token)
	if err != nil {
		return model.LinkEntry{}, fmt.Errorf("failed to build link: %w", err)
	}

	slog.Debug("link created", "style", rec.Style, "token_len", len(token))
	if database == nil {
		return model.LinkEntry{Record: rec, Token: token, Link: link}, nil
	}
	return db.InsertLink(database, rec, token, link)
}

// View renders the form.
func (m *BuilderFormModel) View(width, height int) string {
	fieldWidth := max(20, min(70, width-12))
	for _, in := range []*textinput.Model{&m.from, &m.to, &m.question, &m.yesText} {
		in.Width = fieldWidth - 4
	}

	var fields []string
	fields = append(fields, m.field("From *", m.from.View(), fieldFrom, fieldWidth))
	fields = append(fields, m.field("To *", m.to.View(), fieldTo, fieldWidth))
	fields = append(fields, m.field("Question *", m.renderPreset(), fieldPreset, fieldWidth))
	if m.customQuestion() {
		fields = append(fields, m.field("Your question *", m.question.View(), fieldQuestion, fieldWidth))
	}
	fields = append(fields, m.field("Style *", m.renderStyle(), fieldStyle, fieldWidth))
	fields = append(fields, m.field("Text after yes", m.yesText.View(), fieldYesText, fieldWidth))

	formContent := strings.Join(fields, "\n")

	return PanelStyle.
		Width(width - 4).
		Height(height - 4).
		Render(formContent)
}

func (m *BuilderFormModel) field(label, content string, field, width int) string {
	style := BorderStyle
	if m.focusedField == field {
		style = ActiveBorderStyle
	}

	parts := []string{LabelStyle.Render(label), content}
	if msg, ok := m.errors[field]; ok {
		parts = append(parts, ErrorStyle.UnsetPadding().Render("✗ "+msg))
	}
	return style.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m *BuilderFormModel) renderPreset() string {
	if len(m.presets) == 0 {
		return EmptyStateStyle.UnsetPadding().Render("no presets")
	}
	return m.selector(m.presets[m.presetIdx].Text, m.focusedField == fieldPreset)
}

func (m *BuilderFormModel) renderStyle() string {
	if len(m.styles) == 0 {
		return EmptyStateStyle.UnsetPadding().Render("no styles")
	}
	th := m.styles[m.styleIdx]
	line := m.selector(th.Emoji+" "+th.Name, m.focusedField == fieldStyle)
	return lipgloss.JoinVertical(lipgloss.Left, line, HelpDescStyle.Render(th.Description))
}

func (m *BuilderFormModel) selector(text string, active bool) string {
	if active {
		return SelectorActiveStyle.Render("‹ " + text + " ›")
	}
	return SelectorStyle.Render("  " + text)
}
