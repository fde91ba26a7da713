package ui

import (
	"math"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"valentine/internal/confetti"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	heartCount    = 30
	heartInterval = 100 * time.Millisecond
)

// Emoji with a stable two-cell width in common terminals.
var heartGlyphs = []string{"💕", "💖", "💗", "💝", "💘", "💓", "💞"}

var confettiGlyphs = []string{"▬", "▞", "▮", "▚"}

var celebrationSeq atomic.Int64

// frameMsg advances the confetti by one frame.
type frameMsg struct{ id int64 }

// respawnMsg fires once, RespawnAfter into the celebration.
type respawnMsg struct{ id int64 }

// heartsMsg moves the falling hearts.
type heartsMsg struct {
	id int64
	at time.Time
}

// heart falls from the top edge forever once its delay has passed.
type heart struct {
	glyph    string
	x        float64 // fraction of the width
	duration time.Duration
	delay    time.Duration
}

// Celebration owns the confetti simulation and the hearts for one accepted
// valentine and schedules their frames.
type Celebration struct {
	id      int64
	sim     *confetti.Sim
	colors  map[string]colorful.Color
	hearts  []heart
	started time.Time
	now     time.Time
	running bool
	width   int
	height  int
}

// NewCelebration sizes the confetti viewport to width x height cells. A nil
// rnd is seeded randomly.
func NewCelebration(width, height int, rnd *rand.Rand) *Celebration {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	cfg := confetti.DefaultConfig()
	c := &Celebration{
		id:     celebrationSeq.Add(1),
		sim:    confetti.New(cfg, float64(width*cellW), float64(height*cellH), rnd),
		colors: make(map[string]colorful.Color, len(cfg.Palette)),
		width:  width,
		height: height,
	}
	for _, hex := range c.sim.Config().Palette {
		if col, ok := parseHex(hex); ok {
			c.colors[hex] = col
		}
	}

	c.hearts = make([]heart, heartCount)
	for i := range c.hearts {
		c.hearts[i] = heart{
			glyph:    heartGlyphs[rnd.IntN(len(heartGlyphs))],
			x:        rnd.Float64(),
			duration: time.Duration((3 + rnd.Float64()*5) * float64(time.Second)),
			delay:    time.Duration(rnd.Float64() * 5 * float64(time.Second)),
		}
	}
	return c
}

// Start kicks off the frame loop, the one-shot respawn and the hearts.
func (c *Celebration) Start(now time.Time) tea.Cmd {
	c.started = now
	c.now = now
	c.running = true
	return tea.Batch(c.frameCmd(), c.respawnCmd(), c.heartsCmd())
}

// Update consumes celebration messages. Messages from an older celebration
// are dropped.
func (c *Celebration) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case frameMsg:
		if msg.id != c.id {
			return nil
		}
		if c.sim.Tick() {
			return c.frameCmd()
		}
		c.running = false
		return nil

	case respawnMsg:
		if msg.id != c.id {
			return nil
		}
		if c.sim.ScheduledRespawn() {
			return c.wake()
		}
		return nil

	case heartsMsg:
		if msg.id != c.id {
			return nil
		}
		c.now = msg.at
		return c.heartsCmd()
	}
	return nil
}

// Again throws a fresh batch of confetti.
func (c *Celebration) Again() tea.Cmd {
	c.sim.Respawn()
	return c.wake()
}

// Resize keeps the simulation viewport in step with the terminal.
func (c *Celebration) Resize(width, height int) {
	c.width = width
	c.height = height
	c.sim.Resize(float64(width*cellW), float64(height*cellH))
}

// Running reports whether confetti frames are still being scheduled.
func (c *Celebration) Running() bool {
	return c.running
}

func (c *Celebration) wake() tea.Cmd {
	if c.running {
		return nil
	}
	c.running = true
	return c.frameCmd()
}

func (c *Celebration) frameCmd() tea.Cmd {
	id := c.id
	return tea.Tick(c.sim.Config().FrameInterval, func(time.Time) tea.Msg {
		return frameMsg{id: id}
	})
}

func (c *Celebration) respawnCmd() tea.Cmd {
	id := c.id
	return tea.Tick(c.sim.Config().RespawnAfter, func(time.Time) tea.Msg {
		return respawnMsg{id: id}
	})
}

func (c *Celebration) heartsCmd() tea.Cmd {
	id := c.id
	return tea.Tick(heartInterval, func(t time.Time) tea.Msg {
		return heartsMsg{id: id, at: t}
	})
}

// Layer paints confetti and hearts for the current frame over bg.
func (c *Celebration) Layer(bg []colorful.Color) layer {
	out := make(layer)

	for _, p := range c.sim.Pieces() {
		if p.Opacity <= 0 {
			continue
		}
		row := int(math.Floor(p.Y / cellH))
		col := int(math.Floor(p.X / cellW))
		if row < 0 || row >= c.height || col < 0 || col >= c.width || row >= len(bg) {
			continue
		}
		base, ok := c.colors[p.Color]
		if !ok {
			continue
		}
		out.put(row, col, sprite{
			glyph: pieceGlyph(p),
			fg:    base.BlendRgb(bg[row], 1-p.Opacity).Clamped(),
			width: 1,
		})
	}

	elapsed := c.now.Sub(c.started)
	for _, h := range c.hearts {
		row, ok := h.row(elapsed, c.height)
		if !ok || row >= len(bg) {
			continue
		}
		col := int(h.x * float64(max(0, c.width-2)))
		out.put(row, col, sprite{glyph: h.glyph, fg: bg[row], width: 2})
	}
	return out
}

func (h heart) row(elapsed time.Duration, height int) (int, bool) {
	if elapsed < h.delay || h.duration <= 0 || height <= 0 {
		return 0, false
	}
	phase := float64((elapsed-h.delay)%h.duration) / float64(h.duration)
	return min(height-1, int(phase*float64(height))), true
}

// pieceGlyph approximates a rotated rectangle with a block character.
func pieceGlyph(p confetti.Piece) string {
	if p.W*p.H < 24 {
		return "▪"
	}
	angle := math.Mod(p.Rotation, 180)
	if angle < 0 {
		angle += 180
	}
	return confettiGlyphs[int(angle/45)%len(confettiGlyphs)]
}
