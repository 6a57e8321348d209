package quiz

import (
	"errors"
	"testing"
	"time"
)

func testQuestions(n int) []Question {
	questions := make([]Question, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, closedQuestion("question", "a"))
	}
	return questions
}

func TestSessionLifecycle(t *testing.T) {
	session := newSession("user-1", "user@example.com", []string{"Go"}, ModeClosed, 60)

	snap := session.snapshot()
	if snap.State != StateLoading {
		t.Fatalf("new session state = %q, want loading", snap.State)
	}

	snap = session.begin(testQuestions(2))
	if snap.State != StateInProgress {
		t.Fatalf("state after begin = %q", snap.State)
	}
	if snap.Question == nil || snap.Question.Index != 0 || snap.Question.Total != 2 {
		t.Fatalf("unexpected question view: %+v", snap.Question)
	}
	if snap.SecondsLeft != 60 {
		t.Fatalf("secondsLeft = %d, want 60", snap.SecondsLeft)
	}

	snap, finished, err := session.submit("a")
	if err != nil || finished {
		t.Fatalf("first submit: finished=%v err=%v", finished, err)
	}
	if snap.Question.Index != 1 {
		t.Fatalf("index after submit = %d, want 1", snap.Question.Index)
	}
	if snap.SecondsLeft != 60 {
		t.Fatalf("timer should reset per question, got %d", snap.SecondsLeft)
	}

	snap, finished, err = session.submit("b")
	if err != nil || !finished {
		t.Fatalf("last submit: finished=%v err=%v", finished, err)
	}
	if snap.State != StateCompleted {
		t.Fatalf("state after last submit = %q", snap.State)
	}

	if _, _, err := session.submit("c"); !errors.Is(err, ErrQuizFinished) {
		t.Fatalf("submit after completion: %v", err)
	}
}

func TestSessionQuestionViewHidesCorrectAnswer(t *testing.T) {
	session := newSession("user-1", "user@example.com", nil, ModeClosed, 60)
	snap := session.begin(testQuestions(1))

	if len(snap.Question.Options) != 4 {
		t.Fatalf("options = %v", snap.Question.Options)
	}
	// The view is a value type; nothing resembling the answer key is present.
	if snap.Question.Question != "question" {
		t.Fatalf("prompt = %q", snap.Question.Question)
	}
}

func TestSessionTimerExpiryMatchesEmptySubmit(t *testing.T) {
	timed := newSession("user-1", "user@example.com", nil, ModeClosed, 2)
	timed.begin(testQuestions(1))

	if snap, finished := timed.tick(); finished {
		t.Fatalf("finished after one tick, snapshot %+v", snap)
	}
	snap, finished := timed.tick()
	if !finished {
		t.Fatal("second tick should exhaust the question")
	}
	if snap.State != StateCompleted {
		t.Fatalf("state after expiry = %q", snap.State)
	}

	manual := newSession("user-2", "user@example.com", nil, ModeClosed, 2)
	manual.begin(testQuestions(1))
	manualSnap, _, err := manual.submit("")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	_, timedAnswers, _ := timed.finalAnswers()
	_, manualAnswers, _ := manual.finalAnswers()
	if timedAnswers[0].Given != manualAnswers[0].Given {
		t.Fatalf("expiry recorded %q, manual empty submit recorded %q", timedAnswers[0].Given, manualAnswers[0].Given)
	}
	if snap.State != manualSnap.State {
		t.Fatalf("expiry state %q, manual state %q", snap.State, manualSnap.State)
	}
}

func TestSessionTickAfterCompletionIsNoop(t *testing.T) {
	session := newSession("user-1", "user@example.com", nil, ModeClosed, 60)
	session.begin(testQuestions(1))
	if _, finished, _ := session.submit("a"); !finished {
		t.Fatal("expected completion")
	}

	snap, finished := session.tick()
	if finished {
		t.Fatal("tick after completion reported finished")
	}
	if snap.State != StateCompleted {
		t.Fatalf("state = %q", snap.State)
	}
	if _, answers, _ := session.finalAnswers(); len(answers) != 1 {
		t.Fatalf("tick after completion grew answers to %d", len(answers))
	}
}

func TestSessionSubscribeReceivesUpdates(t *testing.T) {
	session := newSession("user-1", "user@example.com", nil, ModeClosed, 60)
	session.begin(testQuestions(2))

	updates, cancel := session.subscribe()
	defer cancel()

	initial := <-updates
	if initial.State != StateInProgress {
		t.Fatalf("initial snapshot state = %q", initial.State)
	}

	if _, _, err := session.submit("a"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	select {
	case snap := <-updates:
		if snap.Question == nil || snap.Question.Index != 1 {
			t.Fatalf("expected advance to question 1, got %+v", snap.Question)
		}
	case <-time.After(time.Second):
		t.Fatal("no update after submit")
	}
}

func TestSessionSlowSubscriberSeesFreshSnapshot(t *testing.T) {
	session := newSession("user-1", "user@example.com", nil, ModeClosed, 60)
	session.begin(testQuestions(20))

	updates, cancel := session.subscribe()
	defer cancel()

	// Never read while the session advances; stale snapshots get dropped.
	for i := 0; i < 15; i++ {
		if _, _, err := session.submit("a"); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}

	var last Snapshot
	drained := false
	for !drained {
		select {
		case snap := <-updates:
			last = snap
		default:
			drained = true
		}
	}
	if last.Question == nil || last.Question.Index != 15 {
		t.Fatalf("last drained snapshot should be current, got %+v", last.Question)
	}
}
