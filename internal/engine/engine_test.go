package engine

import (
	"fmt"
	"reflect"
	"testing"

	"valentine/internal/model"
	"valentine/internal/theme"
)

func testTheme(messages, images int) *theme.Theme {
	th := &theme.Theme{
		ID:                 "test",
		CelebrationImage:   "yes.gif",
		CelebrationMessage: "default yay",
		Gradient:           []string{"#000000", "#ffffff"},
		Accent:             "#ff0000",
	}
	for i := 0; i < messages; i++ {
		th.DeclineMessages = append(th.DeclineMessages, fmt.Sprintf("msg-%d", i))
	}
	for i := 0; i < images; i++ {
		th.Images = append(th.Images, fmt.Sprintf("img-%d.gif", i))
	}
	return th
}

var alexToSam = model.Record{From: "Alex", To: "Sam", Question: "Will you?", Style: "test"}

func TestInitialFrame(t *testing.T) {
	th := testTheme(8, 7)
	e := New(alexToSam, th)

	f := e.Frame()
	if f.Phase != model.PhaseAsking {
		t.Errorf("Expected asking, got %v", f.Phase)
	}
	if f.Image != "img-0.gif" {
		t.Errorf("Expected neutral image, got %q", f.Image)
	}
	if f.Message != "" {
		t.Errorf("Expected no message, got %q", f.Message)
	}
	if !f.DeclineVisible || f.DeclineStage != 0 || f.AcceptScale != 1 {
		t.Errorf("Unexpected control state %+v", f)
	}
	if f.Question != "Will you?" || f.To != "Sam" || f.From != "Alex" {
		t.Errorf("Expected record fields in frame, got %+v", f)
	}
	if e.State().DeclineCount != 0 {
		t.Errorf("Expected zero declines, got %d", e.State().DeclineCount)
	}
}

func TestDeclineStaging(t *testing.T) {
	tests := []struct {
		name     string
		messages int
		images   int
	}{
		{"Catalog sized", 8, 7},
		{"More images than messages", 4, 10},
		{"Few images", 8, 3},
		{"Single image", 12, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(alexToSam, testTheme(tt.messages, tt.images))

			for k := 1; k < tt.messages; k++ {
				e.OnDecline()
				f := e.Frame()

				if want := fmt.Sprintf("msg-%d", k-1); f.Message != want {
					t.Errorf("k=%d: expected message %q, got %q", k, want, f.Message)
				}
				if want := fmt.Sprintf("img-%d.gif", min(k, tt.images-1)); f.Image != want {
					t.Errorf("k=%d: expected image %q, got %q", k, want, f.Image)
				}
				if want := min(k, MaxShrinkStage); f.DeclineStage != want {
					t.Errorf("k=%d: expected stage %d, got %d", k, want, f.DeclineStage)
				}
				if want := 1 + float64(k)*ScaleStep; f.AcceptScale != want {
					t.Errorf("k=%d: expected scale %v, got %v", k, want, f.AcceptScale)
				}
				if !f.DeclineVisible {
					t.Errorf("k=%d: decline control hidden too early", k)
				}
				if f.Emphasis != k {
					t.Errorf("k=%d: expected emphasis %d, got %d", k, k, f.Emphasis)
				}
			}
		})
	}
}

func TestDeclineExhaustion(t *testing.T) {
	const n = 8
	e := New(alexToSam, testTheme(n, 7))

	for k := 1; k < n; k++ {
		e.OnDecline()
	}
	before := e.Frame()

	e.OnDecline()
	f := e.Frame()
	if f.DeclineVisible {
		t.Error("Expected decline control to be hidden after the last message")
	}
	if f.Message != theme.ClosingMessage {
		t.Errorf("Expected closing message, got %q", f.Message)
	}
	if !e.State().Exhausted {
		t.Error("Expected exhausted state")
	}
	if f.Phase != model.PhaseAsking {
		t.Errorf("Expected to still be asking, got %v", f.Phase)
	}
	if f.Image != before.Image || f.DeclineStage != before.DeclineStage || f.AcceptScale != before.AcceptScale {
		t.Errorf("Expected visuals to stay at the last stage, got %+v", f)
	}

	// Further declines are no-ops.
	for i := 0; i < 5; i++ {
		e.OnDecline()
	}
	if e.State().DeclineCount != n {
		t.Errorf("Expected decline count to stop at %d, got %d", n, e.State().DeclineCount)
	}
	if !reflect.DeepEqual(e.Frame(), f) {
		t.Error("Expected frame unchanged by declines after exhaustion")
	}
}

func TestShrinkStageClampIndependentOfMessages(t *testing.T) {
	declines := 11
	e := New(alexToSam, testTheme(20, 3))
	for k := 0; k < declines; k++ {
		e.OnDecline()
	}
	f := e.Frame()
	if f.DeclineStage != MaxShrinkStage {
		t.Errorf("Expected stage clamped at %d, got %d", MaxShrinkStage, f.DeclineStage)
	}
	if f.Image != "img-2.gif" {
		t.Errorf("Expected last image, got %q", f.Image)
	}
	if f.AcceptScale != 1+float64(declines)*ScaleStep {
		t.Errorf("Expected scale to keep growing, got %v", f.AcceptScale)
	}
}

func TestZeroMessagesExhaustsImmediately(t *testing.T) {
	e := New(alexToSam, testTheme(0, 2))
	e.OnDecline()
	if !e.State().Exhausted || e.Frame().DeclineVisible {
		t.Error("Expected the first decline to exhaust an empty progression")
	}
}

func TestAccept(t *testing.T) {
	const n = 8

	tests := []struct {
		name     string
		declines int
		yesText  string
		want     string
	}{
		{"At zero without yes text", 0, "", "default yay"},
		{"At zero with yes text", 0, "Finally!", "Finally!"},
		{"At N-1 without yes text", n - 1, "", "default yay"},
		{"At N-1 with yes text", n - 1, "Finally!", "Finally!"},
		{"After exhaustion", n + 3, "", "default yay"},
		{"Blank yes text", 2, "   ", "default yay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := alexToSam
			rec.YesText = tt.yesText

			celebrations := 0
			e := New(rec, testTheme(n, 7), WithCelebrate(func() { celebrations++ }))
			for i := 0; i < tt.declines; i++ {
				e.OnDecline()
			}

			e.OnAccept()
			f := e.Frame()
			if f.Phase != model.PhaseCelebrating || e.State().Phase != model.PhaseCelebrating {
				t.Fatalf("Expected celebrating, got %v", f.Phase)
			}
			if f.Celebration != tt.want {
				t.Errorf("Expected celebration %q, got %q", tt.want, f.Celebration)
			}
			if f.Image != "yes.gif" {
				t.Errorf("Expected celebration image, got %q", f.Image)
			}
			if len(f.Gradient) != len(theme.CelebrationGradient) || f.Gradient[0] != theme.CelebrationGradient[0] {
				t.Errorf("Expected celebration gradient, got %v", f.Gradient)
			}
			if celebrations != 1 {
				t.Errorf("Expected celebrate hook once, got %d", celebrations)
			}
		})
	}
}

func TestCelebratingIsTerminal(t *testing.T) {
	celebrations := 0
	e := New(alexToSam, testTheme(8, 7), WithCelebrate(func() { celebrations++ }))
	e.OnDecline()
	e.OnAccept()
	f := e.Frame()

	e.OnDecline()
	e.OnAccept()
	e.OnDecline()

	if e.Frame().Phase != model.PhaseCelebrating {
		t.Error("Expected to stay celebrating")
	}
	if e.State().DeclineCount != 1 {
		t.Errorf("Expected decline count frozen at 1, got %d", e.State().DeclineCount)
	}
	if celebrations != 1 {
		t.Errorf("Expected celebrate hook once, got %d", celebrations)
	}
	if e.Frame().Celebration != f.Celebration {
		t.Error("Expected celebration text unchanged")
	}
}

func TestListenerReceivesEveryChange(t *testing.T) {
	var frames []Frame
	e := New(alexToSam, testTheme(3, 3), WithListener(func(f Frame) { frames = append(frames, f) }))

	e.OnDecline() // msg-0
	e.OnDecline() // msg-1
	e.OnDecline() // exhausted
	e.OnDecline() // no-op
	e.OnAccept()
	e.OnAccept() // no-op

	if len(frames) != 5 {
		t.Fatalf("Expected 5 frames, got %d", len(frames))
	}
	wantMessages := []string{"", "msg-0", "msg-1", theme.ClosingMessage, theme.ClosingMessage}
	for i, want := range wantMessages {
		if frames[i].Message != want {
			t.Errorf("Frame %d: expected message %q, got %q", i, want, frames[i].Message)
		}
	}
	if frames[4].Phase != model.PhaseCelebrating {
		t.Errorf("Expected last frame to celebrate, got %v", frames[4].Phase)
	}
}

func TestCatsExample(t *testing.T) {
	cats, ok := theme.Default().Lookup("cats")
	if !ok {
		t.Fatal("Expected cats theme")
	}
	e := New(model.Record{From: "Alex", To: "Sam", Question: "Will you?", Style: "cats"}, cats)
	e.OnAccept()
	if got := e.Frame().Celebration; got != cats.CelebrationMessage {
		t.Errorf("Expected %q, got %q", cats.CelebrationMessage, got)
	}
}
