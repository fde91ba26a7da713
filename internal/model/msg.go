package model

// Bubble Tea message types

// ErrorMsg represents an error message.
type ErrorMsg struct {
	Err error
}

// LinkCreatedMsg is sent when the builder produced and stored a link.
type LinkCreatedMsg struct {
	Entry LinkEntry
}

// HistoryLoadedMsg is sent when link history is loaded.
type HistoryLoadedMsg struct {
	Entries []LinkEntry
}

// HistoryDeletedMsg is sent after a history entry is removed. Deleted holds
// the entry as it was so the removal can be undone.
type HistoryDeletedMsg struct {
	ID      string
	Deleted LinkEntry
}

// ClipboardMsg reports the outcome of a copy-to-clipboard request.
type ClipboardMsg struct {
	Err error
}

// CopyResetMsg clears the "copied" confirmation. Seq guards against
// resetting a newer confirmation.
type CopyResetMsg struct {
	Seq int
}

// ArtLoadedMsg carries a rendered illustration for an image reference.
type ArtLoadedMsg struct {
	Ref string
	Art string
	Err error
}

// FormCancelledMsg is sent when a form is cancelled.
type FormCancelledMsg struct{}

// Screen represents different app screens.
type Screen int

const (
	ScreenBuilder Screen = iota
	ScreenLink
	ScreenHistory
	ScreenValentine
	ScreenInvalid
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNav Mode = iota
	ModeInsert
)
