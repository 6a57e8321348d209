package results

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/skillcheck-ai/skillcheck-api/internal/store"
)

func newTestService(t *testing.T) (Service, *MemoryRepository, store.KV) {
	t.Helper()
	repo := NewMemoryRepository()
	kv := store.NewMemoryKV()
	return NewService(repo, kv), repo, kv
}

func sampleEntry(name string, score int) Entry {
	return Entry{
		UserID:         uuid.NewString(),
		UserName:       name,
		Score:          score,
		TimeTaken:      50,
		CorrectAnswers: 4,
		TotalQuestions: 5,
		Skills:         []string{"Go", "React"},
	}
}

func TestAppendPreservesOrder(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := svc.Append(ctx, sampleEntry(fmt.Sprintf("user-%d", i), i*10)); err != nil {
			t.Fatalf("Append: %v", err)
		}
		// Read-side views between appends must not disturb the history.
		if _, err := svc.Rank(ctx, RankQuery{SortBy: SortByScore, Desc: true}); err != nil {
			t.Fatalf("Rank: %v", err)
		}
	}

	all, err := repo.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(all))
	}
	for i, result := range all {
		if result.UserName != fmt.Sprintf("user-%d", i) {
			t.Errorf("entry %d: got %q, append order lost", i, result.UserName)
		}
		if result.Seq != int64(i+1) {
			t.Errorf("entry %d: seq = %d", i, result.Seq)
		}
	}
}

func TestAppendRejectsInvalidEntries(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		entry Entry
	}{
		{"correct above total", Entry{UserID: uuid.NewString(), CorrectAnswers: 6, TotalQuestions: 5}},
		{"negative correct", Entry{UserID: uuid.NewString(), CorrectAnswers: -1, TotalQuestions: 5}},
		{"negative score", Entry{UserID: uuid.NewString(), Score: -1, TotalQuestions: 5}},
		{"bad user id", Entry{UserID: "not-a-uuid", TotalQuestions: 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.Append(ctx, tc.entry); !errors.Is(err, ErrInvalidResult) {
				t.Fatalf("expected ErrInvalidResult, got %v", err)
			}
		})
	}

	all, _ := repo.ListAll()
	if len(all) != 0 {
		t.Fatalf("rejected entries must not reach the history, found %d", len(all))
	}
}

func TestLatest(t *testing.T) {
	svc, _, kv := newTestService(t)
	ctx := context.Background()

	entry := sampleEntry("Jane Doe", 40)
	if err := svc.Append(ctx, entry); err != nil {
		t.Fatalf("Append: %v", err)
	}

	latest, err := svc.Latest(ctx, entry.UserID)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.UserName != "Jane Doe" || latest.Score != 40 {
		t.Fatalf("unexpected latest result: %+v", latest)
	}

	second := entry
	second.Score = 20
	if err := svc.Append(ctx, second); err != nil {
		t.Fatalf("Append: %v", err)
	}
	latest, err = svc.Latest(ctx, entry.UserID)
	if err != nil {
		t.Fatalf("Latest after second append: %v", err)
	}
	if latest.Score != 20 {
		t.Fatalf("latest should follow the most recent append, got score %d", latest.Score)
	}

	if err := kv.Delete(ctx, store.LatestResultKey(entry.UserID)); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Latest(ctx, entry.UserID); !errors.Is(err, ErrNoResult) {
		t.Fatalf("expected ErrNoResult, got %v", err)
	}
}

func TestRankSortDirections(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	scores := []int{30, 10, 50, 10, 40}
	for i, score := range scores {
		entry := sampleEntry(fmt.Sprintf("user-%d", i), score)
		entry.CorrectAnswers = score / 10
		if err := svc.Append(ctx, entry); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	asc, err := svc.Rank(ctx, RankQuery{SortBy: SortByScore})
	if err != nil {
		t.Fatalf("Rank asc: %v", err)
	}
	desc, err := svc.Rank(ctx, RankQuery{SortBy: SortByScore, Desc: true})
	if err != nil {
		t.Fatalf("Rank desc: %v", err)
	}
	if len(asc) != len(scores) || len(desc) != len(scores) {
		t.Fatalf("rank dropped rows: asc=%d desc=%d", len(asc), len(desc))
	}
	for i := 1; i < len(asc); i++ {
		if asc[i-1].Score > asc[i].Score {
			t.Errorf("ascending order broken at %d: %d > %d", i, asc[i-1].Score, asc[i].Score)
		}
		if desc[i-1].Score < desc[i].Score {
			t.Errorf("descending order broken at %d: %d < %d", i, desc[i-1].Score, desc[i].Score)
		}
	}

	// Ties keep append order in both directions.
	if asc[0].UserName != "user-1" || asc[1].UserName != "user-3" {
		t.Errorf("ascending ties out of append order: %q, %q", asc[0].UserName, asc[1].UserName)
	}
	if desc[3].UserName != "user-1" || desc[4].UserName != "user-3" {
		t.Errorf("descending ties out of append order: %q, %q", desc[3].UserName, desc[4].UserName)
	}
}

func TestRankSkillFilter(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	alice := sampleEntry("Alice", 40)
	alice.Skills = []string{"TypeScript", "CSS"}
	bob := sampleEntry("Bob", 30)
	bob.Skills = []string{"Go", "PostgreSQL"}
	for _, entry := range []Entry{alice, bob} {
		if err := svc.Append(ctx, entry); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	matched, err := svc.Rank(ctx, RankQuery{SortBy: SortByScore, Skill: "script"})
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(matched) != 1 || matched[0].UserName != "Alice" {
		t.Fatalf("substring filter should match Alice only, got %+v", matched)
	}

	none, err := svc.Rank(ctx, RankQuery{SortBy: SortByScore, Skill: "Rust"})
	if err != nil {
		t.Fatalf("Rank with no matches: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected empty view, got %d rows", len(none))
	}
}

func TestRankRejectsUnknownSortField(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Rank(context.Background(), RankQuery{SortBy: SortField("password")})
	if !errors.Is(err, ErrInvalidSortField) {
		t.Fatalf("expected ErrInvalidSortField, got %v", err)
	}
}
