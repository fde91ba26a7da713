package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Each terminal cell stands for an 8x16 patch of the virtual pixel
// viewport the particle simulation runs in.
const (
	cellW = 8
	cellH = 16
)

var fallbackBackground = colorful.Color{R: 0x22 / 255.0, G: 0x1A / 255.0, B: 0x1E / 255.0}

// sprite is one glyph painted over the scene background.
type sprite struct {
	glyph string
	fg    colorful.Color
	width int
}

// layer maps row -> column -> sprite.
type layer map[int]map[int]sprite

func (l layer) put(row, col int, s sprite) {
	cols, ok := l[row]
	if !ok {
		cols = make(map[int]sprite)
		l[row] = cols
	}
	s.width = max(1, s.width)
	cols[col] = s
}

func parseHex(hex string) (colorful.Color, bool) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// gradientRows blends the stops evenly over rows, top to bottom.
func gradientRows(stops []string, rows int) []colorful.Color {
	if rows <= 0 {
		return nil
	}

	var colors []colorful.Color
	for _, s := range stops {
		if c, ok := parseHex(s); ok {
			colors = append(colors, c)
		}
	}

	out := make([]colorful.Color, rows)
	switch len(colors) {
	case 0:
		for i := range out {
			out[i] = fallbackBackground
		}
		return out
	case 1:
		for i := range out {
			out[i] = colors[0]
		}
		return out
	}

	segments := float64(len(colors) - 1)
	for i := range out {
		t := 0.0
		if rows > 1 {
			t = float64(i) / float64(rows-1)
		}
		pos := t * segments
		seg := min(int(pos), len(colors)-2)
		out[i] = colors[seg].BlendRgb(colors[seg+1], pos-float64(seg)).Clamped()
	}
	return out
}

// composeScene centres card on a gradient background and paints the
// overlay into the margins around it. The card itself is never painted over.
func composeScene(width, height int, card string, bg []colorful.Color, overlay layer) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	lines := strings.Split(card, "\n")
	if card == "" {
		lines = nil
	}
	cardW := 0
	for _, l := range lines {
		cardW = max(cardW, lipgloss.Width(l))
	}
	if len(lines) > height {
		lines = lines[:height]
	}

	top := (height - len(lines)) / 2
	left := max(0, (width-cardW)/2)
	right := min(width, left+cardW)

	rows := make([]string, height)
	for row := 0; row < height; row++ {
		rowBg := fallbackBackground
		if row < len(bg) {
			rowBg = bg[row]
		}
		sprites := overlay[row]

		i := row - top
		if i < 0 || i >= len(lines) {
			rows[row] = paintMargin(0, width, rowBg, sprites)
			continue
		}

		line := lines[i]
		if pad := cardW - lipgloss.Width(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		rows[row] = paintMargin(0, left, rowBg, sprites) + line + paintMargin(right, width, rowBg, sprites)
	}
	return strings.Join(rows, "\n")
}

// paintMargin renders columns [from, to) of one row.
func paintMargin(from, to int, bg colorful.Color, sprites map[int]sprite) string {
	if from >= to {
		return ""
	}

	bgStyle := lipgloss.NewStyle().Background(lipgloss.Color(bg.Hex()))
	var b strings.Builder
	blank := 0
	flush := func() {
		if blank > 0 {
			b.WriteString(bgStyle.Render(strings.Repeat(" ", blank)))
			blank = 0
		}
	}

	for col := from; col < to; {
		s, ok := sprites[col]
		if !ok || col+s.width > to {
			blank++
			col++
			continue
		}
		flush()
		b.WriteString(bgStyle.Foreground(lipgloss.Color(s.fg.Hex())).Render(s.glyph))
		col += s.width
	}
	flush()
	return b.String()
}
