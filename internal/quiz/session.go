package quiz

import (
	"sync"
	"time"
)

// State is the lifecycle phase of a quiz session.
type State string

const (
	StateLoading    State = "loading"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
	StateError      State = "error"
)

// Session holds one user's quiz run in memory. All mutation goes
// through the mutex; the countdown goroutine and HTTP handlers share it.
type Session struct {
	userID   string
	userName string
	skills   []string
	mode     Mode

	now func() time.Time

	mu          sync.RWMutex
	state       State
	questions   []Question
	answers     []Answer
	current     int
	secondsLeft int
	perQuestion int
	startedAt   time.Time
	result      *ResultView
	failure     string
	subscribers map[chan Snapshot]struct{}

	done     chan struct{}
	stopOnce sync.Once
}

func newSession(userID, userName string, skills []string, mode Mode, perQuestion int) *Session {
	return newSessionWithClock(userID, userName, skills, mode, perQuestion, time.Now)
}

// newSessionWithClock allows deterministic timestamps in tests.
func newSessionWithClock(userID, userName string, skills []string, mode Mode, perQuestion int, now func() time.Time) *Session {
	return &Session{
		userID:      userID,
		userName:    userName,
		skills:      skills,
		mode:        mode,
		now:         now,
		state:       StateLoading,
		perQuestion: perQuestion,
		subscribers: make(map[chan Snapshot]struct{}),
		done:        make(chan struct{}),
	}
}

// begin moves the session from loading to in progress with the
// generated questions.
func (s *Session) begin(questions []Question) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateInProgress
	s.questions = questions
	s.answers = make([]Answer, 0, len(questions))
	s.current = 0
	s.secondsLeft = s.perQuestion
	s.startedAt = s.now()
	return s.broadcastLocked()
}

// fail parks the session in the error state and stops the countdown.
func (s *Session) fail(reason string) Snapshot {
	s.mu.Lock()
	s.state = StateError
	s.failure = reason
	snap := s.broadcastLocked()
	s.mu.Unlock()

	s.stop()
	return snap
}

// submit records an answer for the current question and advances. The
// returned bool reports whether this submission completed the quiz.
func (s *Session) submit(given string) (Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return s.snapshotLocked(), false, ErrQuizFinished
	}
	snap, finished := s.advanceLocked(given)
	return snap, finished, nil
}

// tick burns one second off the current question. A question that runs
// out of time advances exactly like a manual submission with an empty
// answer.
func (s *Session) tick() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return s.snapshotLocked(), false
	}
	s.secondsLeft--
	if s.secondsLeft > 0 {
		return s.broadcastLocked(), false
	}
	return s.advanceLocked("")
}

// advanceLocked is the single transition out of a question, shared by
// manual submissions and timer expiry.
func (s *Session) advanceLocked(given string) (Snapshot, bool) {
	s.answers = append(s.answers, Answer{
		Question: s.questions[s.current],
		Given:    given,
	})
	s.current++
	if s.current >= len(s.questions) {
		s.state = StateCompleted
		return s.broadcastLocked(), true
	}
	s.secondsLeft = s.perQuestion
	return s.broadcastLocked(), false
}

// setResult attaches the final score once grading is done.
func (s *Session) setResult(result ResultView) Snapshot {
	s.mu.Lock()
	s.result = &result
	snap := s.broadcastLocked()
	s.mu.Unlock()

	s.stop()
	return snap
}

func (s *Session) elapsedSeconds() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int(s.now().Sub(s.startedAt) / time.Second)
}

func (s *Session) snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Session) finalAnswers() (Mode, []Answer, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	answers := make([]Answer, len(s.answers))
	copy(answers, s.answers)
	return s.mode, answers, len(s.questions)
}

// stop terminates the countdown goroutine. Safe to call repeatedly.
func (s *Session) stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

func (s *Session) subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 8)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	initial := s.snapshotLocked()
	s.mu.Unlock()

	ch <- initial

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *Session) broadcastLocked() Snapshot {
	snap := s.snapshotLocked()
	for ch := range s.subscribers {
		select {
		case ch <- snap:
		default:
			// Drop the stale snapshot so a slow reader never blocks the timer.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
	return snap
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:       s.state,
		SecondsLeft: s.secondsLeft,
		Result:      s.result,
		Error:       s.failure,
	}
	if s.state == StateInProgress && s.current < len(s.questions) {
		snap.Question = questionView(s.questions[s.current], s.current, len(s.questions))
	}
	return snap
}
