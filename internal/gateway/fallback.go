package gateway

import (
	"context"

	"github.com/skillcheck-ai/skillcheck-api/internal/ingestion"
	"github.com/skillcheck-ai/skillcheck-api/internal/quiz"
)

// fallbackProvider serves canned data so the pipeline can be exercised
// end to end without model access.
type fallbackProvider struct{}

func NewFallback() Provider {
	return fallbackProvider{}
}

func (fallbackProvider) ExtractSkills(_ context.Context, _ []byte) (ingestion.ResumeData, error) {
	return ingestion.ResumeData{
		Name:   "Jane Doe",
		Skills: []string{"React", "TypeScript", "Node.js", "Tailwind CSS", "System Design"},
		Experience: []string{
			"Lead Frontend Developer at TechCorp (3 years)",
			"Software Engineer at Innovate LLC (2 years)",
		},
	}, nil
}

var cannedClosed = []quiz.ClosedQuestion{
	{
		Text:          "What is a closure in JavaScript?",
		Options:       []string{"A function having access to the parent scope", "A type of class", "A way to close a file", "A variable type"},
		CorrectAnswer: "A function having access to the parent scope",
	},
	{
		Text:          "Which hook is used to perform side effects in a React functional component?",
		Options:       []string{"useState", "useEffect", "useContext", "useReducer"},
		CorrectAnswer: "useEffect",
	},
	{
		Text:          "What does `npm` stand for?",
		Options:       []string{"Node Package Manager", "New Project Manager", "Node Project Module", "N-tier Package Module"},
		CorrectAnswer: "Node Package Manager",
	},
	{
		Text:          "In Tailwind CSS, what utility class is used for flexbox?",
		Options:       []string{"flexbox", "flex-container", "flex", "display-flex"},
		CorrectAnswer: "flex",
	},
	{
		Text:          "What is the purpose of TypeScript?",
		Options:       []string{"To add static typing to JavaScript", "To style web pages", "To manage databases", "To create 3D graphics"},
		CorrectAnswer: "To add static typing to JavaScript",
	},
}

var cannedOpen = []quiz.OpenQuestion{
	{Text: "Explain how you would structure state management in a large React application."},
	{Text: "Describe a performance problem you diagnosed in a web application and how you fixed it."},
	{Text: "How do you decide between REST and a message queue for service communication?"},
	{Text: "Walk through how you would review a pull request that touches authentication."},
	{Text: "What trade-offs do you weigh when adding a third-party dependency?"},
}

func (fallbackProvider) GenerateQuestions(_ context.Context, _ ingestion.ResumeData, mode quiz.Mode, count int) ([]quiz.Question, error) {
	questions := make([]quiz.Question, 0, count)
	for i := 0; i < count; i++ {
		if mode == quiz.ModeOpen {
			questions = append(questions, cannedOpen[i%len(cannedOpen)])
		} else {
			questions = append(questions, cannedClosed[i%len(cannedClosed)])
		}
	}
	return questions, nil
}

// EvaluateAnswers awards a flat five points per non-empty answer.
func (fallbackProvider) EvaluateAnswers(_ context.Context, _ []string, answers []quiz.Answer) ([]int, error) {
	scores := make([]int, len(answers))
	for i, answer := range answers {
		if answer.Given != "" {
			scores[i] = 5
		}
	}
	return scores, nil
}
