package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/skillcheck-ai/skillcheck-api/internal/config"
	"github.com/skillcheck-ai/skillcheck-api/internal/ingestion"
	"github.com/skillcheck-ai/skillcheck-api/internal/results"
	"github.com/skillcheck-ai/skillcheck-api/internal/store"
	"golang.org/x/sync/singleflight"
)

// Gateway generates and grades quiz content.
type Gateway interface {
	// GenerateQuestions builds count questions tailored to the resume.
	GenerateQuestions(ctx context.Context, resume ingestion.ResumeData, mode Mode, count int) ([]Question, error)
	// EvaluateAnswers grades open answers, returning 0-10 points per answer.
	EvaluateAnswers(ctx context.Context, skills []string, answers []Answer) ([]int, error)
}

// ResultRecorder persists a finished quiz.
type ResultRecorder interface {
	Append(ctx context.Context, entry results.Entry) error
}

type Service interface {
	// Start begins a quiz for the user, or returns the running session's
	// snapshot if one is already in flight.
	Start(ctx context.Context, userID, userName string) (Snapshot, error)
	// Answer submits an answer for the current question.
	Answer(ctx context.Context, userID, answer string) (Snapshot, error)
	// Get returns the current snapshot.
	Get(ctx context.Context, userID string) (Snapshot, error)
	// Abandon discards the session without recording a result.
	Abandon(ctx context.Context, userID string) error
	// Subscribe streams snapshots until cancel is called.
	Subscribe(userID string) (<-chan Snapshot, func(), error)
}

type service struct {
	sessions *SessionStore
	kv       store.KV
	gateway  Gateway
	recorder ResultRecorder

	mode          Mode
	questionCount int
	perQuestion   int

	now func() time.Time
	sf  singleflight.Group
}

func NewService(sessions *SessionStore, kv store.KV, gateway Gateway, recorder ResultRecorder, mode Mode, questionCount, secondsPerQuestion int) Service {
	return NewServiceWithClock(sessions, kv, gateway, recorder, mode, questionCount, secondsPerQuestion, time.Now)
}

// NewServiceWithClock is test-only for deterministic timing.
func NewServiceWithClock(sessions *SessionStore, kv store.KV, gateway Gateway, recorder ResultRecorder, mode Mode, questionCount, secondsPerQuestion int, now func() time.Time) Service {
	return &service{
		sessions:      sessions,
		kv:            kv,
		gateway:       gateway,
		recorder:      recorder,
		mode:          mode,
		questionCount: questionCount,
		perQuestion:   secondsPerQuestion,
		now:           now,
	}
}

func (s *service) Start(ctx context.Context, userID, userName string) (Snapshot, error) {
	// Concurrent starts from the same user collapse into one generation.
	v, err, _ := s.sf.Do(userID, func() (interface{}, error) {
		snap, err := s.start(ctx, userID, userName)
		return snap, err
	})
	if err != nil {
		return Snapshot{}, err
	}
	return v.(Snapshot), nil
}

func (s *service) start(ctx context.Context, userID, userName string) (Snapshot, error) {
	log := config.WithContext(ctx)

	if existing, ok := s.sessions.Get(userID); ok {
		snap := existing.snapshot()
		if snap.State == StateLoading || snap.State == StateInProgress {
			return snap, nil
		}
		existing.stop()
		s.sessions.Delete(userID)
	}

	var resume ingestion.ResumeData
	err := s.kv.Get(ctx, store.ResumeKey(userID), &resume)
	if errors.Is(err, store.ErrKeyNotFound) {
		return Snapshot{}, ErrMissingPrerequisite
	}
	if err != nil {
		return Snapshot{}, err
	}

	session := newSessionWithClock(userID, userName, resume.Skills, s.mode, s.perQuestion, s.now)
	s.sessions.Set(userID, session)

	questions, err := s.gateway.GenerateQuestions(ctx, resume, s.mode, s.questionCount)
	if err == nil && len(questions) == 0 {
		err = fmt.Errorf("%w: empty question set", ErrGenerationFailed)
	}
	if err != nil {
		if !errors.Is(err, ErrGenerationFailed) {
			err = fmt.Errorf("%w: %v", ErrGenerationFailed, err)
		}
		log.WithError(err).Error("Failed to generate quiz")
		session.fail(err.Error())
		s.sessions.Delete(userID)
		return Snapshot{}, err
	}

	snap := session.begin(questions)
	go s.runCountdown(session)

	log.WithField("user_id", userID).Infof("Quiz started with %d questions", len(questions))
	return snap, nil
}

func (s *service) Answer(ctx context.Context, userID, answer string) (Snapshot, error) {
	session, ok := s.sessions.Get(userID)
	if !ok {
		return Snapshot{}, ErrNoSession
	}
	snap, finished, err := session.submit(answer)
	if err != nil {
		return snap, err
	}
	if finished {
		return s.finish(ctx, session)
	}
	return snap, nil
}

func (s *service) Get(_ context.Context, userID string) (Snapshot, error) {
	session, ok := s.sessions.Get(userID)
	if !ok {
		return Snapshot{}, ErrNoSession
	}
	return session.snapshot(), nil
}

func (s *service) Abandon(ctx context.Context, userID string) error {
	session, ok := s.sessions.Get(userID)
	if !ok {
		return ErrNoSession
	}
	session.stop()
	s.sessions.Delete(userID)
	config.WithContext(ctx).WithField("user_id", userID).Info("Quiz abandoned")
	return nil
}

func (s *service) Subscribe(userID string) (<-chan Snapshot, func(), error) {
	session, ok := s.sessions.Get(userID)
	if !ok {
		return nil, nil, ErrNoSession
	}
	ch, cancel := session.subscribe()
	return ch, cancel, nil
}

// runCountdown drives the per-question timer until the session stops.
func (s *service) runCountdown(session *Session) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-session.done:
			return
		case <-ticker.C:
			if _, finished := session.tick(); finished {
				// finish logs its own failures; nothing to do with the error here.
				s.finish(context.Background(), session)
				return
			}
		}
	}
}

// finish grades the completed session and records the result.
func (s *service) finish(ctx context.Context, session *Session) (Snapshot, error) {
	log := config.WithContext(ctx)

	mode, answers, total := session.finalAnswers()
	elapsed := session.elapsedSeconds()

	var score, correct int
	switch mode {
	case ModeOpen:
		points, err := s.gateway.EvaluateAnswers(ctx, session.skills, answers)
		if err != nil {
			if !errors.Is(err, ErrEvaluationFailed) {
				err = fmt.Errorf("%w: %v", ErrEvaluationFailed, err)
			}
			log.WithError(err).Error("Failed to evaluate answers")
			session.fail(err.Error())
			return Snapshot{}, err
		}
		for _, p := range points {
			score += p
		}
		correct = countAnswered(answers)
	default:
		correct = countCorrect(answers)
		score = closedScore(correct, elapsed, total)
	}

	entry := results.Entry{
		UserID:         session.userID,
		UserName:       session.userName,
		Score:          score,
		TimeTaken:      elapsed,
		CorrectAnswers: correct,
		TotalQuestions: total,
		Skills:         session.skills,
	}
	if err := s.recorder.Append(ctx, entry); err != nil {
		// The candidate still sees their score; only the history write failed.
		log.WithError(err).Error("Failed to record quiz result")
	}

	snap := session.setResult(ResultView{
		Score:          score,
		CorrectAnswers: correct,
		TotalQuestions: total,
		TimeTaken:      elapsed,
	})
	log.WithField("user_id", session.userID).Infof("Quiz completed: score=%d correct=%d/%d", score, correct, total)
	return snap, nil
}
