package ui

import (
	"log/slog"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"valentine/internal/engine"
	"valentine/internal/model"
	"valentine/internal/theme"
	"valentine/internal/util"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const shakeInterval = 50 * time.Millisecond

// Horizontal offsets of the decline message while it shakes, 0.4s in all.
var shakeOffsets = []int{2, -2, 2, -2, 1, -1, 1, 0}

// No-button labels and padding per shrink stage.
var (
	declineLabels  = []string{"No", "No", "No", "no", "no", "n", "n", "·"}
	declinePadding = []int{3, 2, 2, 1, 1, 0, 0, 0}
)

// shakeMsg steps the shake animation started by decline number emphasis.
type shakeMsg struct{ emphasis int }

// ValentineModel is the recipient's screen: it forwards key presses to the
// engine and paints whatever frame the engine last emitted.
type ValentineModel struct {
	engine *engine.Engine
	frame  engine.Frame
	theme  *theme.Theme
	keys   KeyMap

	focusYes  bool
	shakeStep int

	loader *ArtLoader
	art    map[string]string

	celebrate   bool
	celebration *Celebration
	rnd         *rand.Rand

	width  int
	height int
}

// NewValentine binds a validated record to its theme. loader may be nil, in
// which case the theme emoji stands in for pictures.
func NewValentine(rec model.Record, th *theme.Theme, loader *ArtLoader, rnd *rand.Rand) *ValentineModel {
	m := &ValentineModel{
		theme:    th,
		keys:     DefaultKeyMap(),
		focusYes: true,
		loader:   loader,
		art:      make(map[string]string),
		rnd:      rnd,
	}
	m.engine = engine.New(rec, th,
		engine.WithListener(func(f engine.Frame) { m.frame = f }),
		engine.WithCelebrate(func() { m.celebrate = true }),
	)
	return m
}

// Init prefetches the first two illustrations.
func (m *ValentineModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadArt(m.frame.Image)}
	if len(m.theme.Images) > 1 {
		cmds = append(cmds, m.loadArt(m.theme.Images[1]))
	}
	return tea.Batch(cmds...)
}

// SetSize sets the scene size in cells.
func (m *ValentineModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.celebration != nil {
		m.celebration.Resize(width, height)
	}
}

// Frame returns the frame currently on screen.
func (m *ValentineModel) Frame() engine.Frame {
	return m.frame
}

// Celebrating reports whether the recipient said yes.
func (m *ValentineModel) Celebrating() bool {
	return m.frame.Phase == model.PhaseCelebrating
}

// Update handles keys, art and animation messages.
func (m *ValentineModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case shakeMsg:
		if msg.emphasis != m.frame.Emphasis || m.shakeStep <= 0 {
			return nil
		}
		m.shakeStep--
		if m.shakeStep > 0 {
			return shakeCmd(msg.emphasis)
		}
		return nil

	case model.ArtLoadedMsg:
		if msg.Err == nil && msg.Art != "" {
			m.art[msg.Ref] = msg.Art
		}
		return nil

	case frameMsg, respawnMsg, heartsMsg:
		if m.celebration != nil {
			return m.celebration.Update(msg)
		}
	}
	return nil
}

func (m *ValentineModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.Celebrating() {
		if key.Matches(msg, m.keys.Again) && m.celebration != nil {
			return m.celebration.Again()
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Yes):
		return m.accept()
	case key.Matches(msg, m.keys.No):
		return m.decline()
	case key.Matches(msg, m.keys.Focus):
		if m.frame.DeclineVisible {
			m.focusYes = !m.focusYes
		}
		return nil
	case msg.String() == "enter" || msg.String() == " ":
		if m.focusYes || !m.frame.DeclineVisible {
			return m.accept()
		}
		return m.decline()
	}
	return nil
}

func (m *ValentineModel) decline() tea.Cmd {
	before := m.frame.Emphasis
	m.engine.OnDecline()

	if !m.frame.DeclineVisible {
		m.focusYes = true
	}
	if m.frame.Emphasis == before {
		return nil
	}

	m.shakeStep = len(shakeOffsets)
	cmds := []tea.Cmd{shakeCmd(m.frame.Emphasis), m.loadArt(m.frame.Image)}
	if next := m.frame.DeclineCount + 1; next < len(m.theme.Images) {
		cmds = append(cmds, m.loadArt(m.theme.Images[next]))
	}
	return tea.Batch(cmds...)
}

func (m *ValentineModel) accept() tea.Cmd {
	m.engine.OnAccept()
	if !m.celebrate {
		return nil
	}
	m.celebrate = false

	slog.Debug("valentine accepted", "style", m.theme.ID, "declines", m.frame.DeclineCount)
	m.celebration = NewCelebration(max(1, m.width), max(1, m.height), m.rnd)
	return tea.Batch(m.celebration.Start(time.Now()), m.loadArt(m.frame.Image))
}

func shakeCmd(emphasis int) tea.Cmd {
	return tea.Tick(shakeInterval, func(time.Time) tea.Msg {
		return shakeMsg{emphasis: emphasis}
	})
}

func (m *ValentineModel) loadArt(ref string) tea.Cmd {
	if m.loader == nil || ref == "" {
		return nil
	}
	if _, ok := m.art[ref]; ok {
		return nil
	}
	w, h := m.artSize()
	return loadArtCmd(m.loader, ref, w, h)
}

func (m *ValentineModel) artSize() (int, int) {
	w := max(16, min(48, m.width/3))
	h := max(6, min(14, m.height/3))
	return w, h
}

// View renders the scene.
func (m *ValentineModel) View() string {
	bg := gradientRows(m.frame.Gradient, m.height)

	var card string
	var overlay layer
	if m.Celebrating() {
		card = m.renderCelebrationCard()
		if m.celebration != nil {
			overlay = m.celebration.Layer(bg)
		}
	} else {
		card = m.renderQuestionCard()
	}
	return composeScene(m.width, m.height, card, bg, overlay)
}

func (m *ValentineModel) innerWidth() int {
	return max(20, min(56, m.width-10))
}

func (m *ValentineModel) renderQuestionCard() string {
	w := m.innerWidth()
	centered := func(s lipgloss.Style) lipgloss.Style { return s.Width(w).Align(lipgloss.Center) }

	lines := []string{
		m.illustration(w, m.theme.Emoji),
		cardBlank(w),
		centered(CardTextStyle).Render(m.frame.To + ", this is for you ✨"),
		centered(CardTitleStyle).Render(m.frame.Question),
		cardBlank(w),
		m.renderMessage(w),
		cardBlank(w),
		m.renderButtons(w),
	}
	return cardBlock(lines, w)
}

func (m *ValentineModel) renderMessage(w int) string {
	if m.frame.Message == "" {
		return cardBlank(w)
	}
	offset := 0
	if m.shakeStep > 0 {
		offset = shakeOffsets[len(shakeOffsets)-m.shakeStep]
	}
	return CardMutedStyle.
		Width(w).
		Align(lipgloss.Center).
		PaddingLeft(3 + offset).
		PaddingRight(3 - offset).
		Render(m.frame.Message)
}

func (m *ValentineModel) renderButtons(w int) string {
	accent := lipgloss.Color(m.theme.Accent)
	scale := m.frame.AcceptScale
	hpad := 2 + int(math.Round((scale-1)*10))
	vpad := min(2, int((scale-1)/0.5))

	yesLabel := "Yes!"
	if m.frame.DeclineVisible && m.focusYes {
		yesLabel = "› Yes! ‹"
	}
	yes := YesButtonStyle.Background(accent).Padding(vpad, hpad).Render(yesLabel)
	if !m.frame.DeclineVisible {
		return lipgloss.PlaceHorizontal(w, lipgloss.Center, yes, lipgloss.WithWhitespaceBackground(ColorCard))
	}

	stage := min(m.frame.DeclineStage, len(declineLabels)-1)
	noLabel := declineLabels[stage]
	if !m.focusYes {
		noLabel = "›" + noLabel + "‹"
	}
	no := NoButtonStyle.Padding(0, declinePadding[stage]).Render(noLabel)
	h := lipgloss.Height(yes)
	no = lipgloss.PlaceVertical(h, lipgloss.Center, no, lipgloss.WithWhitespaceBackground(ColorCard))
	gap := lipgloss.NewStyle().Background(ColorCard).Width(4).Height(h).Render("")

	row := lipgloss.JoinHorizontal(lipgloss.Center, yes, gap, no)
	return lipgloss.PlaceHorizontal(w, lipgloss.Center, row, lipgloss.WithWhitespaceBackground(ColorCard))
}

func (m *ValentineModel) renderCelebrationCard() string {
	w := m.innerWidth()
	centered := func(s lipgloss.Style) lipgloss.Style { return s.Width(w).Align(lipgloss.Center) }

	lines := []string{
		m.illustration(w, "🎉 "+m.theme.Emoji+" 🎉"),
		cardBlank(w),
		centered(CardTitleStyle).Render(m.frame.Celebration),
		cardBlank(w),
		centered(CardTextStyle).Render(util.CoupleNames(m.frame.From, m.frame.To)),
		cardBlank(w),
		centered(CardMutedStyle).Render("press r for more confetti"),
	}
	return cardBlock(lines, w)
}

func (m *ValentineModel) illustration(w int, fallback string) string {
	if art, ok := m.art[m.frame.Image]; ok {
		return lipgloss.PlaceHorizontal(w, lipgloss.Center, art, lipgloss.WithWhitespaceBackground(ColorCard))
	}
	return CardTextStyle.Width(w).Align(lipgloss.Center).Render(fallback)
}

func cardBlank(w int) string {
	return lipgloss.NewStyle().Background(ColorCard).Width(w).Render("")
}

// cardBlock frames lines of width w with the card background.
func cardBlock(lines []string, w int) string {
	side := lipgloss.NewStyle().Background(ColorCard).Render("  ")
	var rows []string
	rows = append(rows, side+cardBlank(w)+side)
	for _, block := range lines {
		for _, line := range strings.Split(block, "\n") {
			if pad := w - lipgloss.Width(line); pad > 0 {
				line = lipgloss.PlaceHorizontal(w, lipgloss.Center, line, lipgloss.WithWhitespaceBackground(ColorCard))
			}
			rows = append(rows, side+line+side)
		}
	}
	rows = append(rows, side+cardBlank(w)+side)
	return strings.Join(rows, "\n")
}

// renderInvalid is shown when a link is missing or cannot be decoded.
func renderInvalid(width, height int) string {
	w := max(20, min(56, width-10))
	centered := func(s lipgloss.Style) lipgloss.Style { return s.Width(w).Align(lipgloss.Center) }

	lines := []string{
		centered(CardTextStyle).Render("💔"),
		cardBlank(w),
		centered(CardTitleStyle).Render("Oops! This valentine got lost"),
		cardBlank(w),
		centered(CardTextStyle).Render("The link is invalid or missing its data."),
		centered(CardMutedStyle).Render("Ask the sender for a fresh link, or press a to make your own."),
	}
	bg := gradientRows(theme.CelebrationGradient, height)
	return composeScene(width, height, cardBlock(lines, w), bg, nil)
}
