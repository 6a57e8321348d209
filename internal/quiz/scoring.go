package quiz

import "math"

// countCorrect tallies exact matches against the stored correct option.
// Open questions never count here; they are graded by the evaluator.
func countCorrect(answers []Answer) int {
	correct := 0
	for _, answer := range answers {
		if closed, ok := answer.Question.(ClosedQuestion); ok && answer.Given == closed.CorrectAnswer {
			correct++
		}
	}
	return correct
}

// countAnswered tallies non-empty submissions.
func countAnswered(answers []Answer) int {
	answered := 0
	for _, answer := range answers {
		if answer.Given != "" {
			answered++
		}
	}
	return answered
}

// closedScore awards 10 points per correct answer minus a time penalty
// of the average seconds spent per question, floored at zero.
func closedScore(correct, elapsedSeconds, totalQuestions int) int {
	if totalQuestions == 0 {
		return 0
	}
	penalty := int(math.Round(float64(elapsedSeconds) / float64(totalQuestions)))
	score := correct*10 - penalty
	if score < 0 {
		return 0
	}
	return score
}
