// Package engine holds the valentine interaction state machine. It owns the
// decline counter and derives everything the screen paints from it; it never
// renders anything itself.
package engine

import (
	"strings"

	"valentine/internal/model"
	"valentine/internal/theme"
)

const (
	// MaxShrinkStage is the smallest size class of the decline control.
	MaxShrinkStage = 7
	// ScaleStep is how much the accept control grows per decline.
	ScaleStep = 0.1
)

// State is the runtime state of one valentine interaction.
type State struct {
	DeclineCount int
	Phase        model.Phase
	// Exhausted is set once the decline messages run out; the decline
	// control is gone for good.
	Exhausted bool
	Record    model.Record
	Theme     *theme.Theme
}

// Frame is everything the renderer needs to paint the current state.
type Frame struct {
	Phase    model.Phase
	From     string
	To       string
	Question string

	Image   string
	Message string

	DeclineCount   int
	DeclineStage   int
	DeclineVisible bool
	AcceptScale    float64

	// Emphasis changes on every decline so the renderer can restart the
	// shake even when the message text repeats.
	Emphasis int

	Gradient    []string
	Accent      string
	Celebration string
}

// Option configures an Engine.
type Option func(*Engine)

// WithListener registers fn to receive a Frame after every state change.
func WithListener(fn func(Frame)) Option {
	return func(e *Engine) { e.listener = fn }
}

// WithCelebrate registers fn to run once when the recipient accepts.
func WithCelebrate(fn func()) Option {
	return func(e *Engine) { e.celebrate = fn }
}

// Engine drives one valentine from the first question to the celebration.
// It is not safe for concurrent use; all events come from one UI loop.
type Engine struct {
	state     State
	frame     Frame
	listener  func(Frame)
	celebrate func()
}

// New binds a validated record to its theme. The initial frame is emitted
// to the listener before New returns.
func New(rec model.Record, th *theme.Theme, opts ...Option) *Engine {
	e := &Engine{
		state: State{
			Phase:  model.PhaseAsking,
			Record: rec,
			Theme:  th,
		},
	}
	for _, opt := range opts {
		opt(e)
	}

	e.frame = Frame{
		Phase:          model.PhaseAsking,
		From:           rec.From,
		To:             rec.To,
		Question:       rec.Question,
		Image:          imageAt(th.Images, 0),
		DeclineVisible: true,
		AcceptScale:    1,
		Gradient:       th.Gradient,
		Accent:         th.Accent,
	}
	e.emit()
	return e
}

// OnDecline handles the recipient pressing "no".
func (e *Engine) OnDecline() {
	if e.state.Phase != model.PhaseAsking || e.state.Exhausted {
		return
	}

	e.state.DeclineCount++
	count := e.state.DeclineCount
	e.frame.DeclineCount = count

	messages := e.state.Theme.DeclineMessages
	if count >= len(messages) {
		e.state.Exhausted = true
		e.frame.DeclineVisible = false
		e.frame.Message = theme.ClosingMessage
		e.emit()
		return
	}

	e.frame.Message = messages[count-1]
	e.frame.Image = imageAt(e.state.Theme.Images, count)
	e.frame.DeclineStage = min(count, MaxShrinkStage)
	e.frame.AcceptScale = 1 + float64(count)*ScaleStep
	e.frame.Emphasis++
	e.emit()
}

// OnAccept handles the recipient pressing "yes". It works at any decline
// count and is terminal.
func (e *Engine) OnAccept() {
	if e.state.Phase != model.PhaseAsking {
		return
	}

	e.state.Phase = model.PhaseCelebrating
	e.frame.Phase = model.PhaseCelebrating
	e.frame.DeclineVisible = false
	e.frame.Gradient = theme.CelebrationGradient
	e.frame.Image = e.state.Theme.CelebrationImage
	e.frame.Celebration = CelebrationText(e.state.Record, e.state.Theme)
	e.emit()

	if e.celebrate != nil {
		e.celebrate()
	}
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	return e.state
}

// Frame returns the most recent frame.
func (e *Engine) Frame() Frame {
	return e.frame
}

// CelebrationText picks the sender's custom text, falling back to the
// theme default.
func CelebrationText(rec model.Record, th *theme.Theme) string {
	if strings.TrimSpace(rec.YesText) != "" {
		return rec.YesText
	}
	return th.CelebrationMessage
}

func (e *Engine) emit() {
	if e.listener != nil {
		e.listener(e.frame)
	}
}

// imageAt clamps i to the last image so a long run of declines keeps
// showing the saddest one.
func imageAt(images []string, i int) string {
	if len(images) == 0 {
		return ""
	}
	return images[min(i, len(images)-1)]
}
