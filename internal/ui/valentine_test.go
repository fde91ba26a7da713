package ui

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"valentine/internal/model"
	"valentine/internal/theme"

	tea "github.com/charmbracelet/bubbletea"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestValentine(t *testing.T) (*ValentineModel, *theme.Theme) {
	t.Helper()
	th, ok := theme.Default().Lookup("cats")
	if !ok {
		t.Fatal("Expected cats theme")
	}
	rec := model.Record{From: "Alex", To: "Sam", Question: "Will you?", Style: "cats"}
	m := NewValentine(rec, th, nil, rand.New(rand.NewPCG(1, 2)))
	m.SetSize(100, 30)
	return m, th
}

func TestValentineDeclineDrivesEngine(t *testing.T) {
	m, th := newTestValentine(t)

	if cmd := m.Update(runes("n")); cmd == nil {
		t.Error("Expected a shake command after declining")
	}
	f := m.Frame()
	if f.DeclineCount != 1 {
		t.Fatalf("Expected 1 decline, got %d", f.DeclineCount)
	}
	if f.Message != th.DeclineMessages[0] {
		t.Errorf("Expected %q, got %q", th.DeclineMessages[0], f.Message)
	}
	if f.Image != th.Images[1] {
		t.Errorf("Expected second image, got %q", f.Image)
	}
	if m.shakeStep != len(shakeOffsets) {
		t.Errorf("Expected shake to start, got step %d", m.shakeStep)
	}
}

func TestValentineShakeRunsOut(t *testing.T) {
	m, _ := newTestValentine(t)
	m.Update(runes("n"))
	emphasis := m.Frame().Emphasis

	// A tick left over from an earlier decline is ignored.
	if cmd := m.Update(shakeMsg{emphasis: emphasis - 1}); cmd != nil {
		t.Error("Expected stale shake tick to be dropped")
	}

	steps := 0
	for cmd := m.Update(shakeMsg{emphasis: emphasis}); cmd != nil; cmd = m.Update(shakeMsg{emphasis: emphasis}) {
		steps++
		if steps > len(shakeOffsets) {
			t.Fatal("Shake never stopped")
		}
	}
	if m.shakeStep != 0 {
		t.Errorf("Expected shake to finish, got step %d", m.shakeStep)
	}
}

func TestValentineExhaustionForcesYes(t *testing.T) {
	m, th := newTestValentine(t)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focusYes {
		t.Fatal("Expected tab to focus the decline button")
	}

	for range th.DeclineMessages {
		m.Update(runes("n"))
	}
	f := m.Frame()
	if f.DeclineVisible {
		t.Fatal("Expected the decline button to be gone")
	}
	if f.Message != theme.ClosingMessage {
		t.Errorf("Expected closing message, got %q", f.Message)
	}
	if !m.focusYes {
		t.Error("Expected focus to move to yes")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Celebrating() {
		t.Error("Expected enter to accept once only yes is left")
	}
}

func TestValentineEnterPressesFocusedButton(t *testing.T) {
	m, _ := newTestValentine(t)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.Frame().DeclineCount; got != 1 {
		t.Errorf("Expected enter on no to decline, got %d declines", got)
	}
}

func TestValentineAcceptStartsCelebration(t *testing.T) {
	m, th := newTestValentine(t)
	m.Update(runes("n"))

	if cmd := m.Update(runes("y")); cmd == nil {
		t.Fatal("Expected celebration commands")
	}
	if !m.Celebrating() || m.celebration == nil {
		t.Fatal("Expected celebration to start")
	}
	if got := m.Frame().Celebration; got != th.CelebrationMessage {
		t.Errorf("Expected %q, got %q", th.CelebrationMessage, got)
	}

	first := m.celebration
	m.Update(runes("y"))
	m.Update(runes("n"))
	if m.celebration != first {
		t.Error("Expected accepting twice not to restart the celebration")
	}
	if m.Frame().DeclineCount != 1 {
		t.Errorf("Expected declines frozen after yes, got %d", m.Frame().DeclineCount)
	}

	if cmd := m.Update(frameMsg{id: first.id}); cmd == nil {
		t.Error("Expected another confetti frame")
	}
	if cmd := m.Update(frameMsg{id: first.id + 1000}); cmd != nil {
		t.Error("Expected frames from another celebration to be ignored")
	}
}

func TestValentineArtLoaded(t *testing.T) {
	m, th := newTestValentine(t)
	m.Update(model.ArtLoadedMsg{Ref: th.Images[0], Art: "(=^.^=)"})
	if !strings.Contains(m.View(), "(=^.^=)") {
		t.Error("Expected loaded art in the view")
	}

	m.Update(model.ArtLoadedMsg{Ref: th.Images[1], Err: errors.New("offline")})
	if _, ok := m.art[th.Images[1]]; ok {
		t.Error("Expected failed art to be skipped")
	}
}

func TestValentineView(t *testing.T) {
	m, _ := newTestValentine(t)
	view := m.View()
	for _, want := range []string{"Sam, this is for you", "Will you?", "Yes!", "No"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected view to contain %q", want)
		}
	}
	if lines := strings.Count(view, "\n") + 1; lines != 30 {
		t.Errorf("Expected 30 rows, got %d", lines)
	}

	m.Update(runes("y"))
	view = m.View()
	if !strings.Contains(view, "Alex ❤️ Sam") {
		t.Error("Expected couple names after yes")
	}
}
