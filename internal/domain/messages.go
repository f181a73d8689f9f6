package domain

import "fmt"

// Severity tags a user-facing message for rendering by the caller.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Message is a single user-facing feedback line. The core never renders
// these; they ride on operation outcomes for the front end to display.
type Message struct {
	Severity Severity `json:"severity"`
	Text     string   `json:"text"`
}

// Messages is the small per-operation feedback queue.
type Messages []Message

func (m *Messages) Info(format string, args ...any) {
	*m = append(*m, Message{Severity: SeverityInfo, Text: fmt.Sprintf(format, args...)})
}

func (m *Messages) Success(format string, args ...any) {
	*m = append(*m, Message{Severity: SeveritySuccess, Text: fmt.Sprintf(format, args...)})
}

func (m *Messages) Warning(format string, args ...any) {
	*m = append(*m, Message{Severity: SeverityWarning, Text: fmt.Sprintf(format, args...)})
}

func (m *Messages) Error(format string, args ...any) {
	*m = append(*m, Message{Severity: SeverityError, Text: fmt.Sprintf(format, args...)})
}
