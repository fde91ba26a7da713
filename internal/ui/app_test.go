package ui

import (
	"errors"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"

	"valentine/internal/codec"
	"valentine/internal/db"
	"valentine/internal/model"
	"valentine/internal/theme"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	f.text = text
	return f.err
}

func testOptions(cb Clipboard) Options {
	return Options{
		Catalog:   theme.Default(),
		BaseURL:   "https://example.com/",
		Clipboard: cb,
		Rand:      rand.New(rand.NewPCG(5, 6)),
	}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Expected ui.Model, got %T", next)
	}
	return out, cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	m, _ = send(t, m, runes(s))
	return m
}

func TestBuilderCreatesLinkAndCopies(t *testing.T) {
	cb := &fakeClipboard{}
	m := New(testOptions(cb))
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	if m.Screen() != model.ScreenBuilder {
		t.Fatalf("Expected builder screen, got %v", m.Screen())
	}

	m = typeText(t, m, "Alex")
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "Sam")

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("Expected a create-link command")
	}
	created, ok := cmd().(model.LinkCreatedMsg)
	if !ok {
		t.Fatal("Expected LinkCreatedMsg")
	}

	token, err := codec.TokenFrom(created.Entry.Link)
	if err != nil {
		t.Fatalf("Expected token in link: %v", err)
	}
	rec, err := codec.Decode(token, theme.Default())
	if err != nil {
		t.Fatalf("Expected link to decode: %v", err)
	}
	if rec.From != "Alex" || rec.To != "Sam" || rec.Style != "cute" {
		t.Errorf("Unexpected record %+v", rec)
	}

	m, _ = send(t, m, created)
	if m.Screen() != model.ScreenLink {
		t.Fatalf("Expected link screen, got %v", m.Screen())
	}

	m, cmd = send(t, m, runes("c"))
	if cmd == nil {
		t.Fatal("Expected a copy command")
	}
	result := cmd()
	if cb.text != created.Entry.Link {
		t.Errorf("Expected link on clipboard, got %q", cb.text)
	}

	m, cmd = send(t, m, result)
	if cmd == nil || !m.link.copied {
		t.Fatal("Expected copied confirmation with a reset timer")
	}
	if !strings.Contains(m.View(), "Copied!") {
		t.Error("Expected confirmation in the view")
	}

	m, _ = send(t, m, model.CopyResetMsg{Seq: m.link.copySeq})
	if m.link.copied {
		t.Error("Expected confirmation to reset")
	}
}

func TestCopyResetIgnoresStaleSeq(t *testing.T) {
	m := New(testOptions(&fakeClipboard{}))
	m, _ = send(t, m, model.LinkCreatedMsg{Entry: model.LinkEntry{Link: "https://example.com/valentine.html?d=x"}})

	m, _ = send(t, m, model.ClipboardMsg{})
	m, _ = send(t, m, model.ClipboardMsg{})
	m, _ = send(t, m, model.CopyResetMsg{Seq: 1})
	if !m.link.copied {
		t.Error("Expected the older reset to leave the newer confirmation up")
	}
}

func TestCopyFailureShowsError(t *testing.T) {
	m := New(testOptions(&fakeClipboard{}))
	m, _ = send(t, m, model.LinkCreatedMsg{Entry: model.LinkEntry{Link: "https://example.com/"}})
	m, _ = send(t, m, model.ClipboardMsg{Err: errors.New("no clipboard tool")})
	if !strings.Contains(m.error, "no clipboard tool") {
		t.Errorf("Expected error banner, got %q", m.error)
	}
}

func TestBuilderFieldErrors(t *testing.T) {
	m := New(testOptions(&fakeClipboard{}))
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil {
		t.Error("Expected no command for an invalid form")
	}
	if _, ok := m.builder.errors[fieldFrom]; !ok {
		t.Error("Expected an error on the from field")
	}
	if _, ok := m.builder.errors[fieldTo]; !ok {
		t.Error("Expected an error on the to field")
	}
	if m.Screen() != model.ScreenBuilder {
		t.Error("Expected to stay on the builder")
	}
}

func TestBuilderCustomQuestion(t *testing.T) {
	b := NewBuilderFormModel(nil, theme.Default(), "https://example.com/", UIPreferences{LastPreset: model.CustomQuestion})
	if !b.customQuestion() {
		t.Fatal("Expected custom question preset from prefs")
	}

	form := *b
	form, _ = form.Update(runes("Alex"))
	form, _ = form.Update(tea.KeyMsg{Type: tea.KeyTab})
	form, _ = form.Update(runes("Sam"))
	form, _ = form.Update(tea.KeyMsg{Type: tea.KeyTab}) // preset
	form, _ = form.Update(tea.KeyMsg{Type: tea.KeyTab}) // question
	form, _ = form.Update(runes("Dinner?"))

	d := form.Draft()
	if d.QuestionPreset != model.CustomQuestion || d.Question != "Dinner?" {
		t.Errorf("Unexpected draft %+v", d)
	}
}

func TestBuilderCyclesStyles(t *testing.T) {
	b := NewBuilderFormModel(nil, theme.Default(), "https://example.com/", UIPreferences{LastFrom: "Alex"})
	form := *b
	if form.focusedField != fieldTo {
		t.Fatalf("Expected focus on the recipient when the sender is remembered, got %d", form.focusedField)
	}
	for form.focusedField != fieldStyle {
		form, _ = form.Update(tea.KeyMsg{Type: tea.KeyTab})
	}

	ids := theme.Default().IDs()
	form, _ = form.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if got := form.Draft().Style; got != ids[len(ids)-1] {
		t.Errorf("Expected left to wrap to %q, got %q", ids[len(ids)-1], got)
	}
	form, _ = form.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := form.Draft().Style; got != ids[0] {
		t.Errorf("Expected right to come back to %q, got %q", ids[0], got)
	}
}

func TestViewerOpensLink(t *testing.T) {
	rec := model.Record{From: "Alex", To: "Sam", Question: "Will you?", Style: "dogs"}
	token, err := codec.Encode(rec)
	if err != nil {
		t.Fatal(err)
	}
	link, err := codec.Link("https://example.com/", token)
	if err != nil {
		t.Fatal(err)
	}

	for _, input := range []string{link, token} {
		m := NewViewer(testOptions(&fakeClipboard{}), input)
		if m.Screen() != model.ScreenValentine {
			t.Fatalf("Expected valentine screen for %q, got %v", input, m.Screen())
		}
		m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
		m, _ = send(t, m, runes("y"))
		if !m.valentine.Celebrating() {
			t.Error("Expected yes to reach the engine")
		}
		if _, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEsc}); cmd == nil {
			t.Error("Expected esc to quit a standalone viewer")
		}
	}
}

func TestViewerInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Garbage token", "!!!"},
		{"Link without data", "https://example.com/valentine.html"},
		{"Unknown style", mustToken(t, model.Record{From: "a", To: "b", Question: "q", Style: "dragons"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewViewer(testOptions(&fakeClipboard{}), tt.input)
			if m.Screen() != model.ScreenInvalid {
				t.Fatalf("Expected invalid screen, got %v", m.Screen())
			}
			m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
			if !strings.Contains(m.View(), "invalid or missing") {
				t.Error("Expected the invalid message")
			}
			m, _ = send(t, m, runes("a"))
			if m.Screen() != model.ScreenBuilder {
				t.Errorf("Expected a to open the builder, got %v", m.Screen())
			}
		})
	}
}

func TestPreviewReturnsToLink(t *testing.T) {
	m := New(testOptions(&fakeClipboard{}))
	entry := model.LinkEntry{Record: model.Record{From: "Alex", To: "Sam", Question: "q", Style: "memes"}, Link: "https://example.com/"}
	m, _ = send(t, m, model.LinkCreatedMsg{Entry: entry})

	m, _ = send(t, m, runes("p"))
	if m.Screen() != model.ScreenValentine {
		t.Fatalf("Expected preview, got %v", m.Screen())
	}
	m, _ = send(t, m, runes("n"))
	if m.valentine.Frame().DeclineCount != 1 {
		t.Error("Expected the preview to take key presses")
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Screen() != model.ScreenLink {
		t.Errorf("Expected to return to the link screen, got %v", m.Screen())
	}
}

func TestHistoryWithoutDatabase(t *testing.T) {
	m := NewHistory(testOptions(&fakeClipboard{}))
	msg := m.Init()()
	if _, ok := msg.(model.ErrorMsg); !ok {
		t.Fatalf("Expected ErrorMsg, got %T", msg)
	}
}

func TestHistoryScreen(t *testing.T) {
	cb := &fakeClipboard{}
	m := NewHistory(testOptions(cb))
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	entries := []model.LinkEntry{
		{ID: "1", Record: model.Record{From: "Alex", To: "Sam", Question: "q1", Style: "cats"}, Link: "https://example.com/1"},
		{ID: "2", Record: model.Record{From: "Alex", To: "Kim", Question: "q2", Style: "dogs"}, Link: "https://example.com/2"},
	}
	m, _ = send(t, m, model.HistoryLoadedMsg{Entries: entries})
	if !strings.Contains(m.View(), "Kim") {
		t.Error("Expected entries in the table")
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := send(t, m, runes("c"))
	if cmd == nil {
		t.Fatal("Expected copy command")
	}
	cmd()
	if cb.text != "https://example.com/2" {
		t.Errorf("Expected second link copied, got %q", cb.text)
	}

	m, _ = send(t, m, model.HistoryDeletedMsg{ID: "2"})
	if m.history.Len() != 1 {
		t.Errorf("Expected one entry left, got %d", m.history.Len())
	}
	if sel, ok := m.history.Selected(); !ok || sel.ID != "1" {
		t.Errorf("Expected cursor back on the remaining entry, got %+v", sel)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Screen() != model.ScreenValentine {
		t.Errorf("Expected enter to preview, got %v", m.Screen())
	}
}

func TestHistoryUndoDelete(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "ui.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer database.Close()
	if _, err := db.InsertLink(database, model.Record{From: "Alex", To: "Sam", Question: "q", Style: "cats"}, "t", "l"); err != nil {
		t.Fatalf("InsertLink failed: %v", err)
	}

	opts := testOptions(&fakeClipboard{})
	opts.DB = database
	m := NewHistory(opts)
	m, _ = send(t, m, m.Init()())
	if m.history.Len() != 1 {
		t.Fatalf("Expected one entry, got %d", m.history.Len())
	}

	m, _ = send(t, m, runes("u"))
	if m.info != "Nothing to undo" {
		t.Errorf("Expected empty undo stack, got %q", m.info)
	}

	_, cmd := send(t, m, runes("d"))
	m, _ = send(t, m, cmd())
	if m.history.Len() != 0 {
		t.Fatalf("Expected the entry to be gone, got %d", m.history.Len())
	}

	m, cmd = send(t, m, runes("u"))
	if cmd == nil {
		t.Fatal("Expected an undo command")
	}
	m, reload := send(t, m, cmd())
	if !strings.HasPrefix(m.info, "Undid:") {
		t.Errorf("Expected undo confirmation, got %q", m.info)
	}
	m, _ = send(t, m, reload())
	if m.history.Len() != 1 {
		t.Errorf("Expected the entry back, got %d", m.history.Len())
	}

	m, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if cmd == nil {
		t.Fatal("Expected a redo command")
	}
	m, reload = send(t, m, cmd())
	m, _ = send(t, m, reload())
	if m.history.Len() != 0 {
		t.Errorf("Expected redo to delete again, got %d", m.history.Len())
	}
}

func mustToken(t *testing.T, rec model.Record) string {
	t.Helper()
	token, err := codec.Encode(rec)
	if err != nil {
		t.Fatal(err)
	}
	return token
}
