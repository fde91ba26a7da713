// Package confetti simulates the celebration particles. The host drives it
// one frame at a time and owns all scheduling: it asks for another frame
// only while Tick reports live pieces, and calls Respawn once after
// Config.RespawnAfter.
package confetti

import (
	"math/rand/v2"
	"time"
)

// fadeEpsilon snaps opacities left over from float rounding to zero.
const fadeEpsilon = 1e-9

// Piece is one confetti particle. Units are virtual pixels per frame.
type Piece struct {
	X, Y     float64
	W, H     float64
	Color    string
	Rotation float64 // degrees
	Spin     float64 // degrees per frame
	VX, VY   float64
	Opacity  float64
}

// Config holds the simulation constants.
type Config struct {
	Count   int
	Palette []string

	MinWidth, MaxWidth   float64
	MinHeight, MaxHeight float64

	// MaxSpin and MaxDrift are symmetric bounds: values fall in [-max, max).
	MaxSpin  float64
	MaxDrift float64
	MinFall  float64
	MaxFall  float64

	// FadeStep is subtracted from opacity each frame once a piece is below
	// the viewport.
	FadeStep float64

	FrameInterval time.Duration
	RespawnAfter  time.Duration
}

// DefaultConfig returns the stock celebration: 150 pieces in eight colours.
func DefaultConfig() Config {
	return Config{
		Count: 150,
		Palette: []string{
			"#ff6b8a", "#ff4757", "#6c5ce7", "#fd79a8",
			"#ffeaa7", "#00b894", "#e17055", "#dfe6e9",
		},
		MinWidth:      5,
		MaxWidth:      15,
		MinHeight:     3,
		MaxHeight:     9,
		MaxSpin:       5,
		MaxDrift:      1.5,
		MinFall:       2,
		MaxFall:       5,
		FadeStep:      0.02,
		FrameInterval: time.Second / 60,
		RespawnAfter:  3 * time.Second,
	}
}

// Sim is a batch of confetti pieces inside a width x height viewport.
// It is not safe for concurrent use.
type Sim struct {
	cfg       Config
	width     float64
	height    float64
	pieces    []Piece
	rnd       *rand.Rand
	respawned bool
}

// New allocates cfg.Count pieces scattered above the viewport so they fall
// into view. A nil rnd gets a randomly seeded generator.
func New(cfg Config, width, height float64, rnd *rand.Rand) *Sim {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if len(cfg.Palette) == 0 {
		cfg.Palette = DefaultConfig().Palette
	}

	s := &Sim{
		cfg:    cfg,
		width:  width,
		height: height,
		pieces: make([]Piece, cfg.Count),
		rnd:    rnd,
	}
	for i := range s.pieces {
		s.pieces[i] = s.spawn()
	}
	return s
}

func (s *Sim) spawn() Piece {
	c := s.cfg
	return Piece{
		X:        s.rnd.Float64() * s.width,
		Y:        s.rnd.Float64()*s.height - s.height,
		W:        between(s.rnd, c.MinWidth, c.MaxWidth),
		H:        between(s.rnd, c.MinHeight, c.MaxHeight),
		Color:    c.Palette[s.rnd.IntN(len(c.Palette))],
		Rotation: s.rnd.Float64() * 360,
		Spin:     between(s.rnd, -c.MaxSpin, c.MaxSpin),
		VX:       between(s.rnd, -c.MaxDrift, c.MaxDrift),
		VY:       between(s.rnd, c.MinFall, c.MaxFall),
		Opacity:  1,
	}
}

// Tick advances every live piece by one frame and reports whether the host
// should request another frame. Pieces that have left the bottom of the
// viewport fade out; faded pieces stay in the batch for Respawn.
func (s *Sim) Tick() bool {
	live := 0
	for i := range s.pieces {
		p := &s.pieces[i]
		if p.Opacity <= 0 {
			continue
		}
		live++

		p.X += p.VX
		p.Y += p.VY
		p.Rotation += p.Spin

		if p.Y > s.height {
			p.Opacity -= s.cfg.FadeStep
			if p.Opacity < fadeEpsilon {
				p.Opacity = 0
			}
		}
	}
	return live > 0
}

// Respawn puts every piece back above the viewport at full opacity,
// whatever state it was in. Velocities, sizes and colours are kept.
func (s *Sim) Respawn() {
	for i := range s.pieces {
		p := &s.pieces[i]
		p.Y = s.rnd.Float64()*s.height - s.height
		p.X = s.rnd.Float64() * s.width
		p.Opacity = 1
	}
}

// ScheduledRespawn performs the one-shot delayed respawn. Only the first
// call has an effect; it reports whether the respawn happened.
func (s *Sim) ScheduledRespawn() bool {
	if s.respawned {
		return false
	}
	s.respawned = true
	s.Respawn()
	return true
}

// Resize changes the viewport used for fading and respawning.
func (s *Sim) Resize(width, height float64) {
	s.width = width
	s.height = height
}

// Size returns the viewport dimensions.
func (s *Sim) Size() (width, height float64) {
	return s.width, s.height
}

// Active returns the number of pieces that are still visible.
func (s *Sim) Active() int {
	n := 0
	for _, p := range s.pieces {
		if p.Opacity > 0 {
			n++
		}
	}
	return n
}

// Pieces returns a snapshot of the batch.
func (s *Sim) Pieces() []Piece {
	return append([]Piece(nil), s.pieces...)
}

// Config returns the constants the simulation runs with.
func (s *Sim) Config() Config {
	return s.cfg
}

func between(rnd *rand.Rand, lo, hi float64) float64 {
	return lo + rnd.Float64()*(hi-lo)
}
