package ui

import (
	"time"

	"valentine/internal/model"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// copyConfirmDuration is how long "Copied!" stays up.
const copyConfirmDuration = 2 * time.Second

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard uses the platform clipboard tool (pbcopy, xclip, wl-copy).
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

func copyCmd(cb Clipboard, text string) tea.Cmd {
	return func() tea.Msg {
		return model.ClipboardMsg{Err: cb.WriteAll(text)}
	}
}

func copyResetCmd(seq int) tea.Cmd {
	return tea.Tick(copyConfirmDuration, func(time.Time) tea.Msg {
		return model.CopyResetMsg{Seq: seq}
	})
}
