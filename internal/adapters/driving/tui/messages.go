package tui

// AnswerReceived carries the assistant's reply (or failure) back to the
// chat model.
type AnswerReceived struct {
	Question string
	Answer   string
	Err      error
}
