package quiz

// QuestionView is the client-facing shape of the current question. It
// carries options for closed questions only and never the correct
// answer.
type QuestionView struct {
	Index    int      `json:"index"`
	Total    int      `json:"total"`
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
}

func questionView(q Question, index, total int) *QuestionView {
	view := &QuestionView{
		Index:    index,
		Total:    total,
		Question: q.Prompt(),
	}
	if closed, ok := q.(ClosedQuestion); ok {
		options := make([]string, len(closed.Options))
		copy(options, closed.Options)
		view.Options = options
	}
	return view
}

// ResultView is the final score attached to a completed session.
type ResultView struct {
	Score          int `json:"score"`
	CorrectAnswers int `json:"correctAnswers"`
	TotalQuestions int `json:"totalQuestions"`
	TimeTaken      int `json:"timeTaken"`
}

// Snapshot is a point-in-time view of a session, sent over HTTP and
// pushed to websocket subscribers.
type Snapshot struct {
	State       State         `json:"state"`
	Question    *QuestionView `json:"question,omitempty"`
	SecondsLeft int           `json:"secondsLeft"`
	Result      *ResultView   `json:"result,omitempty"`
	Error       string        `json:"error,omitempty"`
}

// AnswerRequest is the body of a manual submission.
type AnswerRequest struct {
	Answer string `json:"answer"`
}
