package model

import "time"

// Record is the valentine payload carried end-to-end inside a link.
type Record struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Question string `json:"question"`
	Style    string `json:"style"`
	YesText  string `json:"yesText,omitempty"`
}

// Draft is the free-text form state before validation.
type Draft struct {
	From           string `json:"from"`
	To             string `json:"to"`
	QuestionPreset string `json:"questionPreset,omitempty"` // preset ID, CustomQuestion when the user typed their own
	Question       string `json:"question"`
	Style          string `json:"style"`
	YesText        string `json:"yesText,omitempty"`
}

// CustomQuestion is the preset ID that selects the free-text question.
const CustomQuestion = "custom"

// Form field names reported in FieldError.
const (
	FieldFrom     = "from"
	FieldTo       = "to"
	FieldQuestion = "question"
	FieldStyle    = "style"
	FieldYesText  = "yesText"
)

// FieldError marks a single form field that failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Phase is the coarse state of a valentine interaction.
type Phase int

const (
	PhaseAsking Phase = iota
	PhaseCelebrating
)

func (p Phase) String() string {
	switch p {
	case PhaseAsking:
		return "asking"
	case PhaseCelebrating:
		return "celebrating"
	default:
		return "unknown"
	}
}

// LinkEntry is a link the sender created, as kept in local history.
type LinkEntry struct {
	ID        string
	Record    Record
	Token     string
	Link      string
	CreatedAt time.Time
}
