package quiz

import "errors"

var (
	// ErrGenerationFailed indicates question generation did not produce a
	// usable quiz.
	ErrGenerationFailed = errors.New("quiz generation failed")
	// ErrEvaluationFailed indicates open answers could not be graded.
	ErrEvaluationFailed = errors.New("answer evaluation failed")
	// ErrMissingPrerequisite is returned when a quiz is started before a
	// resume has been ingested.
	ErrMissingPrerequisite = errors.New("no resume on file")
	// ErrNoSession is returned when a user acts on a quiz they never started.
	ErrNoSession = errors.New("quiz session not found")
	// ErrQuizFinished is returned when an answer arrives after the quiz
	// has already completed.
	ErrQuizFinished = errors.New("quiz already finished")
)
