package cmd

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type OnboardingSettings struct {
	Completed bool   `json:"completed"`
	BaseURL   string `json:"base_url"`
	Images    bool   `json:"images"`
}

func onboardingPath(configDir string) string {
	return filepath.Join(configDir, "onboarding.json")
}

func loadOnboardingSettings(configDir string) (OnboardingSettings, error) {
	path := onboardingPath(configDir)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return OnboardingSettings{}, nil
		}
		return OnboardingSettings{}, err
	}

	var settings OnboardingSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return OnboardingSettings{}, err
	}
	return settings, nil
}

func saveOnboardingSettings(configDir string, settings OnboardingSettings) error {
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(onboardingPath(configDir), data, 0644)
}

func shouldRunOnboarding(settings OnboardingSettings) bool {
	if settings.Completed {
		return false
	}
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// validateBaseURL accepts absolute http(s) or file URLs.
func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	switch u.Scheme {
	case "http", "https":
		if u.Host == "" {
			return fmt.Errorf("missing host")
		}
	case "file":
	default:
		return fmt.Errorf("use an http(s) URL")
	}
	return nil
}

type onboardingStep int

const (
	stepBaseURL onboardingStep = iota
	stepImages
	stepDone
)

type onboardingModel struct {
	step     onboardingStep
	images   bool
	urlInput textinput.Model
	settings OnboardingSettings
	status   string
	warning  string
	width    int
	height   int
}

var (
	obColorMuted  = lipgloss.Color("#9C7C86")
	obColorText   = lipgloss.Color("#F4E1E6")
	obColorAccent = lipgloss.Color("#FF6B8A")
	obColorDanger = lipgloss.Color("#f38ba8")

	obTitleStyle = lipgloss.NewStyle().
			Foreground(obColorAccent).
			Bold(true)

	obHeaderStyle = lipgloss.NewStyle().
			Foreground(obColorAccent).
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(obColorMuted)

	obTabsStyle = lipgloss.NewStyle().
			Padding(0, 2).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(obColorMuted)

	obTabInactive = lipgloss.NewStyle().
			Foreground(obColorMuted).
			Padding(0, 2)

	obTabActive = lipgloss.NewStyle().
			Foreground(obColorText).
			Bold(true).
			Underline(true).
			Padding(0, 2)

	obPanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(obColorMuted).
			Padding(1, 2)

	obInputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(obColorAccent).
			Padding(0, 1)

	obLabelStyle = lipgloss.NewStyle().
			Foreground(obColorAccent).
			Bold(true)

	obMutedStyle = lipgloss.NewStyle().
			Foreground(obColorMuted)

	obOptionStyle = lipgloss.NewStyle().
			Foreground(obColorText)

	obOptionSelected = lipgloss.NewStyle().
				Foreground(obColorAccent).
				Bold(true)

	obWarnStyle = lipgloss.NewStyle().
			Foreground(obColorDanger)

	obFooterStyle = lipgloss.NewStyle().
			Foreground(obColorMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(obColorMuted)
)

func newOnboardingModel(existingURL string) onboardingModel {
	in := textinput.New()
	in.Placeholder = DefaultBaseURL
	in.CharLimit = 300
	in.Prompt = "url> "
	in.TextStyle = lipgloss.NewStyle().Foreground(obColorText)
	in.PlaceholderStyle = lipgloss.NewStyle().Foreground(obColorMuted)
	in.Cursor.Style = lipgloss.NewStyle().Foreground(obColorText).Background(obColorAccent)
	in.SetValue(strings.TrimSpace(existingURL))
	in.Focus()

	return onboardingModel{
		step:     stepBaseURL,
		images:   false,
		urlInput: in,
		settings: OnboardingSettings{Completed: true},
	}
}

func (m onboardingModel) Init() tea.Cmd { return textinput.Blink }

func (m onboardingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch m.step {
		case stepBaseURL:
			switch msg.String() {
			case "enter":
				raw := strings.TrimSpace(m.urlInput.Value())
				if raw == "" {
					raw = DefaultBaseURL
				}
				if err := validateBaseURL(raw); err != nil {
					m.warning = "Invalid URL: " + err.Error()
					return m, nil
				}
				m.warning = ""
				m.settings.BaseURL = raw
				m.step = stepImages
				return m, nil
			case "esc":
				m.settings.BaseURL = DefaultBaseURL
				m.warning = ""
				m.step = stepImages
				return m, nil
			case "ctrl+c":
				m.settings.BaseURL = DefaultBaseURL
				m.status = "Setup canceled. Using the default page URL."
				m.step = stepDone
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.urlInput, cmd = m.urlInput.Update(msg)
			return m, cmd
		case stepImages:
			switch msg.String() {
			case "y", "Y":
				m.images = true
				return m.finish()
			case "n", "N":
				m.images = false
				return m.finish()
			case "up", "k", "left", "h":
				m.images = true
				return m, nil
			case "down", "j", "right", "l":
				m.images = false
				return m, nil
			case "enter":
				return m.finish()
			case "ctrl+c", "q":
				m.images = false
				return m.finish()
			default:
				return m, nil
			}
		}
	}
	return m, nil
}

func (m onboardingModel) finish() (tea.Model, tea.Cmd) {
	m.settings.Images = m.images
	if m.images {
		m.status = "Links will point to " + m.settings.BaseURL + ". Image previews enabled."
	} else {
		m.status = "Links will point to " + m.settings.BaseURL + ". Image previews disabled."
	}
	m.step = stepDone
	return m, tea.Quit
}

func (m onboardingModel) View() string {
	width := m.width
	height := m.height
	if width <= 0 {
		width = 100
	}
	if height <= 0 {
		height = 28
	}

	header := m.renderHeader(width)
	tabs := m.renderTabs(width)
	footer := m.renderFooter(width)

	contentHeight := height - 6
	if contentHeight < 8 {
		contentHeight = 8
	}
	content := m.renderContent(width, contentHeight)
	ui := lipgloss.JoinVertical(lipgloss.Left, header, tabs, content, footer)

	return lipgloss.NewStyle().
		Foreground(obColorText).
		Width(width).
		Height(height).
		Render(ui)
}

func (m onboardingModel) renderHeader(width int) string {
	left := "  " + obTitleStyle.Render("valentine") + " " + obMutedStyle.Render("› Setup")
	right := obMutedStyle.Render(time.Now().Format("Mon 02 Jan")) + "  "
	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}
	return obHeaderStyle.Width(width).Render(left + strings.Repeat(" ", padding) + right)
}

func (m onboardingModel) renderTabs(width int) string {
	urlTab := obTabInactive.Render("Page URL")
	imagesTab := obTabInactive.Render("Images")
	if m.step == stepBaseURL {
		urlTab = obTabActive.Render("Page URL")
	}
	if m.step == stepImages {
		imagesTab = obTabActive.Render("Images")
	}
	return obTabsStyle.Width(width).Render(lipgloss.JoinHorizontal(lipgloss.Left, "  ", urlTab, imagesTab))
}

func (m onboardingModel) renderFooter(width int) string {
	switch m.step {
	case stepBaseURL:
		return obFooterStyle.Width(width).Render("enter save  esc use default  ctrl+c cancel")
	case stepImages:
		return obFooterStyle.Width(width).Render("↑↓/jk to navigate  y/n enter to confirm  q skip")
	default:
		return obFooterStyle.Width(width).Render("Setup complete")
	}
}

func (m onboardingModel) renderContent(width, height int) string {
	cardWidth := min(92, width-6)
	if cardWidth < 40 {
		cardWidth = width - 2
	}

	var body string
	switch m.step {
	case stepBaseURL:
		input := obInputStyle.Width(max(30, cardWidth-14)).Render(m.urlInput.View())
		lines := []string{
			obLabelStyle.Render("Where is your valentine page hosted?"),
			"",
			obMutedStyle.Render("Links open valentine.html under this address, e.g."),
			obMutedStyle.Render("https://you.github.io/valentine/"),
			"",
			input,
		}
		if m.warning != "" {
			lines = append(lines, "", obWarnStyle.Render(m.warning))
		}
		lines = append(lines, "", obMutedStyle.Render("Press Enter to save, Esc to keep the default."))
		body = lipgloss.JoinVertical(lipgloss.Left, lines...)
	case stepImages:
		question := obLabelStyle.Render("Render theme pictures as ASCII art?")
		on := "Download and render images"
		off := "Use emoji only"

		var onDisplay, offDisplay string
		if m.images {
			onDisplay = "  " + obOptionSelected.Render("→ "+on)
			offDisplay = "    " + obOptionStyle.Render(off)
		} else {
			onDisplay = "    " + obOptionStyle.Render(on)
			offDisplay = "  " + obOptionSelected.Render("→ "+off)
		}

		body = lipgloss.JoinVertical(
			lipgloss.Left,
			question,
			"",
			onDisplay,
			offDisplay,
			"",
			obMutedStyle.Render("Images are fetched from GIPHY when a valentine is opened."),
			obMutedStyle.Render("You can change this later in ~/.valentine/onboarding.json"),
		)
	default:
		body = lipgloss.JoinVertical(lipgloss.Left, obLabelStyle.Render("Onboarding Complete"), "", obMutedStyle.Render(m.status))
	}

	card := obPanelStyle.Width(cardWidth).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, card)
}

func runOnboarding(configDir string, existingURL string) (OnboardingSettings, error) {
	model := newOnboardingModel(existingURL)
	prog := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := prog.Run()
	if err != nil {
		return OnboardingSettings{}, fmt.Errorf("onboarding tui failed: %w", err)
	}
	m, ok := finalModel.(onboardingModel)
	if !ok {
		return OnboardingSettings{}, fmt.Errorf("unexpected onboarding model type")
	}
	if m.settings.BaseURL == "" {
		m.settings.BaseURL = DefaultBaseURL
	}
	if err := saveOnboardingSettings(configDir, m.settings); err != nil {
		return OnboardingSettings{}, err
	}
	return m.settings, nil
}
