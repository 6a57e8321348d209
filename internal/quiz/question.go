package quiz

// Mode selects how a quiz is generated and scored.
type Mode string

const (
	// ModeClosed uses multiple-choice questions scored locally.
	ModeClosed Mode = "closed"
	// ModeOpen uses free-text prompts evaluated by the model.
	ModeOpen Mode = "open"
)

func (m Mode) IsValid() bool {
	return m == ModeClosed || m == ModeOpen
}

// Question is either a ClosedQuestion or an OpenQuestion.
type Question interface {
	Prompt() string
	isQuestion()
}

// ClosedQuestion is a multiple-choice question with exactly one correct
// option. The correct answer never leaves the server while a quiz is
// in progress.
type ClosedQuestion struct {
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

func (q ClosedQuestion) Prompt() string { return q.Text }
func (q ClosedQuestion) isQuestion()   {}

// OpenQuestion is a free-text prompt with no predefined answer.
type OpenQuestion struct {
	Text string `json:"question"`
}

func (q OpenQuestion) Prompt() string { return q.Text }
func (q OpenQuestion) isQuestion()   {}

// Answer pairs a question with what the candidate submitted. An empty
// Given means the question timed out unanswered.
type Answer struct {
	Question Question
	Given    string
}
