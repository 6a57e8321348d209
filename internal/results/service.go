package results

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/skillcheck-ai/skillcheck-api/internal/config"
	"github.com/skillcheck-ai/skillcheck-api/internal/store"
	"gorm.io/datatypes"
)

type Service interface {
	// Append adds a completed quiz to the history and records it as the
	// user's latest result. Entries are never mutated afterwards.
	Append(ctx context.Context, entry Entry) error
	// Latest returns the user's most recent result.
	Latest(ctx context.Context, userID string) (*ResultResponse, error)
	// Rank produces a sorted, filtered view over the history. It never
	// mutates the underlying collection.
	Rank(ctx context.Context, query RankQuery) ([]ResultResponse, error)
}

type service struct {
	repo Repository
	kv   store.KV
}

func NewService(repo Repository, kv store.KV) Service {
	return &service{repo: repo, kv: kv}
}

func (s *service) Append(ctx context.Context, entry Entry) error {
	log := config.WithContext(ctx)

	if entry.CorrectAnswers < 0 || entry.CorrectAnswers > entry.TotalQuestions {
		return fmt.Errorf("%w: correct answers %d out of range for %d questions",
			ErrInvalidResult, entry.CorrectAnswers, entry.TotalQuestions)
	}
	if entry.Score < 0 {
		return fmt.Errorf("%w: negative score %d", ErrInvalidResult, entry.Score)
	}

	userID, err := uuid.Parse(entry.UserID)
	if err != nil {
		return fmt.Errorf("%w: bad user id %q", ErrInvalidResult, entry.UserID)
	}

	skills := entry.Skills
	if skills == nil {
		skills = []string{}
	}
	skillsJSON, err := json.Marshal(skills)
	if err != nil {
		return err
	}

	result := QuizResult{
		UserID:         userID,
		UserName:       entry.UserName,
		Score:          entry.Score,
		TimeTaken:      entry.TimeTaken,
		CorrectAnswers: entry.CorrectAnswers,
		TotalQuestions: entry.TotalQuestions,
		Skills:         datatypes.JSON(skillsJSON),
	}
	if err := s.repo.Create(&result); err != nil {
		log.WithError(err).Error("Failed to append quiz result")
		return err
	}

	latest := toResponse(result)
	if err := s.kv.Set(ctx, store.LatestResultKey(entry.UserID), latest); err != nil {
		log.WithError(err).Error("Failed to store latest result")
		return err
	}

	log.WithField("user_id", entry.UserID).Infof("Quiz result recorded: score=%d", entry.Score)
	return nil
}

func (s *service) Latest(ctx context.Context, userID string) (*ResultResponse, error) {
	var latest ResultResponse
	err := s.kv.Get(ctx, store.LatestResultKey(userID), &latest)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil, ErrNoResult
	}
	if err != nil {
		return nil, err
	}
	return &latest, nil
}

func (s *service) Rank(ctx context.Context, query RankQuery) ([]ResultResponse, error) {
	if !query.SortBy.IsValid() {
		return nil, ErrInvalidSortField
	}

	all, err := s.repo.ListAll()
	if err != nil {
		return nil, err
	}

	view := make([]ResultResponse, 0, len(all))
	for _, result := range all {
		response := toResponse(result)
		if query.Skill != "" && !matchesSkill(response.Skills, query.Skill) {
			continue
		}
		view = append(view, response)
	}

	// Stable sort keeps insertion order for ties.
	sort.SliceStable(view, func(i, j int) bool {
		less := fieldLess(view[i], view[j], query.SortBy)
		if query.Desc {
			return fieldLess(view[j], view[i], query.SortBy)
		}
		return less
	})

	return view, nil
}

func matchesSkill(skills []string, filter string) bool {
	needle := strings.ToLower(filter)
	for _, skill := range skills {
		if strings.Contains(strings.ToLower(skill), needle) {
			return true
		}
	}
	return false
}

func fieldLess(a, b ResultResponse, field SortField) bool {
	switch field {
	case SortByName:
		return a.UserName < b.UserName
	case SortByTime:
		return a.TimeTaken < b.TimeTaken
	case SortByCorrect:
		return a.CorrectAnswers < b.CorrectAnswers
	case SortByTotal:
		return a.TotalQuestions < b.TotalQuestions
	default:
		return a.Score < b.Score
	}
}

func toResponse(result QuizResult) ResultResponse {
	var skills []string
	if err := json.Unmarshal(result.Skills, &skills); err != nil || skills == nil {
		skills = []string{}
	}
	return ResultResponse{
		UserID:         result.UserID.String(),
		UserName:       result.UserName,
		Score:          result.Score,
		TimeTaken:      result.TimeTaken,
		CorrectAnswers: result.CorrectAnswers,
		TotalQuestions: result.TotalQuestions,
		Skills:         skills,
	}
}
