package gateway

import (
	"fmt"
	"strings"

	"github.com/skillcheck-ai/skillcheck-api/internal/quiz"
)

const extractPrompt = `You are screening resumes. The attached image is the first page of a candidate's resume. Extract the candidate's full name, their technical skills, and their work experience entries. Provide the response as a JSON object with the keys "name", "skills" and "experience".`

func closedQuizPrompt(skills []string, count int) string {
	return fmt.Sprintf(`Based on the following skills: %s, generate %d conceptual multiple-choice questions to test a candidate's knowledge. Each question must have exactly 4 options, with only one correct answer. Provide the response as a JSON object.`,
		strings.Join(skills, ", "), count)
}

func openQuizPrompt(skills []string, count int) string {
	return fmt.Sprintf(`Based on the following skills: %s, generate %d open-ended interview questions that test a candidate's practical understanding. Each question should be answerable in two or three sentences. Provide the response as a JSON object with a "questions" array of objects, each with a "question" key.`,
		strings.Join(skills, ", "), count)
}

func evaluatePrompt(skills []string, answers []quiz.Answer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are grading a technical screening for a candidate with these skills: %s.\n", strings.Join(skills, ", "))
	b.WriteString("Score each answer from 0 to 10 for correctness and depth. An empty answer scores 0.\n")
	b.WriteString(`Provide the response as a JSON object with a "scores" array of integers, one per answer, in order.` + "\n\n")
	for i, answer := range answers {
		fmt.Fprintf(&b, "Question %d: %s\nAnswer %d: %s\n\n", i+1, answer.Question.Prompt(), i+1, answer.Given)
	}
	return b.String()
}
