package ui

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"valentine/internal/codec"
	"valentine/internal/db"
	"valentine/internal/model"
	"valentine/internal/theme"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Options wires the root model to its dependencies.
type Options struct {
	DB        *sql.DB // nil disables history
	Catalog   *theme.Catalog
	BaseURL   string
	ConfigDir string
	Clipboard Clipboard  // defaults to SystemClipboard
	Art       *ArtLoader // nil renders emoji instead of pictures
	Rand      *rand.Rand // confetti randomness; nil seeds randomly
}

// Model is the root Bubble Tea model.
type Model struct {
	db        *sql.DB
	catalog   *theme.Catalog
	baseURL   string
	configDir string
	clipboard Clipboard
	art       *ArtLoader
	rnd       *rand.Rand

	screen model.Screen
	mode   model.Mode

	width  int
	height int

	error       string
	info        string
	showingHelp bool

	// standalone is set when the binary was started to view a link; closing
	// the valentine quits instead of returning to the builder.
	standalone bool
	returnTo   model.Screen

	// Screen models
	builder   *BuilderFormModel
	link      *LinkModel
	history   *HistoryModel
	valentine *ValentineModel

	keys  KeyMap
	prefs UIPreferences

	undoStack []undoAction
	redoStack []undoAction
}

func newModel(opts Options) Model {
	if opts.Catalog == nil {
		opts.Catalog = theme.Default()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = SystemClipboard{}
	}
	return Model{
		db:        opts.DB,
		catalog:   opts.Catalog,
		baseURL:   opts.BaseURL,
		configDir: opts.ConfigDir,
		clipboard: opts.Clipboard,
		art:       opts.Art,
		rnd:       opts.Rand,
		mode:      model.ModeNav,
		keys:      DefaultKeyMap(),
		prefs:     loadUIPreferences(opts.ConfigDir),
	}
}

// New creates a root model that starts on the builder.
func New(opts Options) Model {
	m := newModel(opts)
	m.openBuilder()
	return m
}

// NewHistory creates a root model that starts on the link history.
func NewHistory(opts Options) Model {
	m := newModel(opts)
	m.screen = model.ScreenHistory
	return m
}

// NewViewer creates a root model for a recipient opening input, which may
// be a full link or a bare token. Anything that does not decode to a valid
// record shows the invalid screen.
func NewViewer(opts Options, input string) Model {
	m := newModel(opts)
	m.standalone = true

	rec, th, err := resolveValentine(input, m.catalog)
	if err != nil {
		slog.Warn("cannot open valentine", "error", err)
		m.screen = model.ScreenInvalid
		return m
	}
	m.valentine = NewValentine(rec, th, m.art, m.rnd)
	m.screen = model.ScreenValentine
	return m
}

func resolveValentine(input string, cat *theme.Catalog) (model.Record, *theme.Theme, error) {
	token, err := codec.TokenFrom(input)
	if err != nil {
		return model.Record{}, nil, err
	}
	rec, err := codec.Decode(token, cat)
	if err != nil {
		return model.Record{}, nil, err
	}
	th, ok := cat.Lookup(rec.Style)
	if !ok {
		return model.Record{}, nil, fmt.Errorf("%w: unknown style %q", codec.ErrValidation, rec.Style)
	}
	return rec, th, nil
}

// Screen returns the active screen.
func (m Model) Screen() model.Screen {
	return m.screen
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	switch m.screen {
	case model.ScreenHistory:
		return loadHistoryCmd(m.db)
	case model.ScreenValentine:
		if m.valentine != nil {
			return m.valentine.Init()
		}
	}
	return nil
}

func (m Model) contentHeight() int {
	return max(1, m.height-4)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.valentine != nil {
			m.valentine.SetSize(m.width, m.contentHeight())
		}
		return m, nil

	case tea.KeyMsg:
		// Handle ctrl+c globally
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Handle help toggle
		if msg.String() == "?" && m.mode == model.ModeNav {
			m.showingHelp = !m.showingHelp
			return m, nil
		}

		if m.showingHelp {
			if msg.String() == "esc" || msg.String() == "?" {
				m.showingHelp = false
			}
			return m, nil
		}

		// Route to mode-specific handlers
		if m.mode == model.ModeNav {
			return m.handleNavMode(msg)
		}
		return m.handleInsertMode(msg)

	case model.ErrorMsg:
		m.error = msg.Err.Error()
		return m, nil

	case model.LinkCreatedMsg:
		if m.builder != nil {
			d := m.builder.Draft()
			m.prefs = UIPreferences{LastFrom: strings.TrimSpace(d.From), LastStyle: d.Style, LastPreset: d.QuestionPreset}
			if err := saveUIPreferences(m.configDir, m.prefs); err != nil {
				slog.Warn("failed to save preferences", "error", err)
			}
		}
		th, _ := m.catalog.Lookup(msg.Entry.Record.Style)
		m.link = NewLinkModel(msg.Entry, th)
		m.builder = nil
		m.mode = model.ModeNav
		m.screen = model.ScreenLink
		m.error = ""
		if msg.Entry.ID != "" {
			m.info = "Link saved to history"
		}
		return m, nil

	case model.HistoryLoadedMsg:
		m.history = NewHistoryModel(msg.Entries, m.catalog)
		m.error = ""
		return m, nil

	case model.HistoryDeletedMsg:
		if m.history != nil {
			m.history.Remove(msg.ID)
		}
		m.pushUndoAction(m.buildDeleteLinkAction(msg))
		m.info = "Link deleted (u to undo)"
		return m, nil

	case undoAppliedMsg:
		return m, m.applyUndoResult(msg)

	case model.ClipboardMsg:
		if msg.Err != nil {
			m.error = "Copy failed: " + msg.Err.Error()
			return m, nil
		}
		m.error = ""
		if m.screen == model.ScreenLink && m.link != nil {
			return m, copyResetCmd(m.link.markCopied())
		}
		m.info = "Link copied to clipboard"
		return m, nil

	case model.CopyResetMsg:
		if m.link != nil {
			m.link.resetCopied(msg.Seq)
		}
		return m, nil

	case model.FormCancelledMsg:
		m.mode = model.ModeNav
		m.builder = nil
		m.screen = model.ScreenHistory
		return m, loadHistoryCmd(m.db)

	case model.ArtLoadedMsg, frameMsg, respawnMsg, heartsMsg, shakeMsg:
		if m.valentine != nil {
			return m, m.valentine.Update(msg)
		}
		return m, nil
	}

	return m, nil
}

// View renders the current screen.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showingHelp {
		return RenderFullHelp(m.width, m.height)
	}

	var content string
	var breadcrumbParts []string
	contentHeight := m.contentHeight()

	footer := RenderHelp(m.screen, m.mode, m.width)

	switch m.screen {
	case model.ScreenBuilder:
		breadcrumbParts = []string{"New valentine"}
		if m.builder != nil {
			content = m.builder.View(m.width, contentHeight)
		}
	case model.ScreenLink:
		breadcrumbParts = []string{"New valentine", "Link"}
		if m.link != nil {
			content = m.link.View(m.width, contentHeight)
		}
	case model.ScreenHistory:
		breadcrumbParts = []string{"History"}
		if m.history != nil {
			content = m.history.View(m.width, contentHeight)
		}
	case model.ScreenValentine:
		breadcrumbParts = []string{"Preview"}
		if m.standalone {
			breadcrumbParts = []string{"For you"}
		}
		if m.valentine != nil {
			// The scene is sized to the full content area; banners would
			// push it past the footer.
			if m.valentine.Celebrating() {
				footer = renderCelebrationHelp(m.width)
			}
			return lipgloss.JoinVertical(lipgloss.Left,
				renderHeader(breadcrumbParts, m.width), m.valentine.View(), footer)
		}
	case model.ScreenInvalid:
		breadcrumbParts = []string{"Invalid link"}
		content = renderInvalid(m.width, contentHeight)
	}

	header := renderHeader(breadcrumbParts, m.width)

	// Ensure content fills the available height to anchor footer at bottom
	var banners []string
	if m.error != "" {
		banners = append(banners, ErrorStyle.Width(m.width).Render("Error: "+m.error))
	}
	if m.info != "" {
		banners = append(banners, SuccessStyle.Width(m.width).Render(m.info))
	}
	contentStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(max(1, contentHeight-len(banners))).
		MaxHeight(max(1, contentHeight-len(banners)))
	content = contentStyle.Render(content)

	parts := append([]string{header}, banners...)
	parts = append(parts, content, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderHeader(breadcrumbParts []string, width int) string {
	// Left side: app name + breadcrumb
	title := HeaderStyle.Render("valentine 💘")

	var breadcrumb string
	if len(breadcrumbParts) > 0 {
		separator := BreadcrumbStyle.Render(" › ")
		parts := make([]string, len(breadcrumbParts))
		for i, part := range breadcrumbParts {
			if i == len(breadcrumbParts)-1 {
				parts[i] = BreadcrumbActiveStyle.Render(part)
			} else {
				parts[i] = BreadcrumbStyle.Render(part)
			}
		}
		breadcrumb = separator + strings.Join(parts, separator)
	}

	left := "  " + title + breadcrumb

	// Right side: current date
	dateStr := time.Now().Format("Mon 02 Jan")
	right := BreadcrumbStyle.Render(dateStr) + "  "

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	headerContent := left + strings.Repeat(" ", padding) + right
	return TitleStyle.Width(width).Render(headerContent)
}

// handleNavMode handles navigation mode input.
func (m Model) handleNavMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case model.ScreenLink:
		return m.handleLinkNav(msg)
	case model.ScreenHistory:
		return m.handleHistoryNav(msg)
	case model.ScreenValentine:
		return m.handleValentineNav(msg)
	case model.ScreenInvalid:
		switch {
		case key.Matches(msg, m.keys.NewLink):
			m.standalone = false
			m.openBuilder()
			return m, nil
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) handleInsertMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.builder == nil {
		m.mode = model.ModeNav
		return m, nil
	}
	updated, cmd := m.builder.Update(msg)
	m.builder = &updated
	return m, cmd
}

func (m Model) handleLinkNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Copy):
		if m.link != nil {
			return m, copyCmd(m.clipboard, m.link.entry.Link)
		}
	case key.Matches(msg, m.keys.Preview):
		if m.link != nil {
			return m.openPreview(m.link.entry.Record, model.ScreenLink)
		}
	case key.Matches(msg, m.keys.NewLink):
		m.openBuilder()
		return m, nil
	case key.Matches(msg, m.keys.History):
		m.info = ""
		m.screen = model.ScreenHistory
		return m, loadHistoryCmd(m.db)
	}
	return m, nil
}

func (m Model) handleHistoryNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NewLink), key.Matches(msg, m.keys.Back):
		m.openBuilder()
		return m, nil
	case key.Matches(msg, m.keys.Undo):
		if len(m.undoStack) == 0 {
			m.info = "Nothing to undo"
			return m, nil
		}
		return m, m.undoCmd()
	case key.Matches(msg, m.keys.Redo):
		if len(m.redoStack) == 0 {
			m.info = "Nothing to redo"
			return m, nil
		}
		return m, m.redoCmd()
	}

	if m.history == nil {
		return m, nil
	}
	entry, ok := m.history.Selected()

	switch {
	case key.Matches(msg, m.keys.Select):
		if ok {
			return m.openPreview(entry.Record, model.ScreenHistory)
		}
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		if ok {
			return m, copyCmd(m.clipboard, entry.Link)
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if ok {
			return m, deleteLinkCmd(m.db, entry)
		}
		return m, nil
	}
	return m, m.history.Update(msg)
}

func (m Model) handleValentineNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		if m.standalone {
			return m, tea.Quit
		}
		m.valentine = nil
		m.screen = m.returnTo
		return m, nil
	}
	if m.valentine == nil {
		return m, nil
	}
	return m, m.valentine.Update(msg)
}

func (m *Model) openBuilder() {
	m.builder = NewBuilderFormModel(m.db, m.catalog, m.baseURL, m.prefs)
	m.screen = model.ScreenBuilder
	m.mode = model.ModeInsert
	m.error = ""
	m.info = ""
}

func (m Model) openPreview(rec model.Record, returnTo model.Screen) (tea.Model, tea.Cmd) {
	th, ok := m.catalog.Lookup(rec.Style)
	if !ok {
		m.error = "unknown style " + rec.Style
		return m, nil
	}
	m.valentine = NewValentine(rec, th, m.art, m.rnd)
	m.valentine.SetSize(m.width, m.contentHeight())
	m.returnTo = returnTo
	m.screen = model.ScreenValentine
	m.error = ""
	m.info = ""
	return m, m.valentine.Init()
}

var errNoHistory = errors.New("link history is unavailable")

func loadHistoryCmd(database *sql.DB) tea.Cmd {
	return func() tea.Msg {
		if database == nil {
			return model.ErrorMsg{Err: errNoHistory}
		}
		entries, err := db.ListLinks(database, "")
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.HistoryLoadedMsg{Entries: entries}
	}
}

func deleteLinkCmd(database *sql.DB, entry model.LinkEntry) tea.Cmd {
	return func() tea.Msg {
		if database == nil {
			return model.ErrorMsg{Err: errNoHistory}
		}
		if err := db.DeleteLink(database, entry.ID); err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.HistoryDeletedMsg{ID: entry.ID, Deleted: entry}
	}
}
