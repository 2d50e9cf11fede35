package progress

import (
	"context"
	"fmt"
	"testing"

	"github.com/JeyrellT/pl300/internal/catalog"
	"github.com/JeyrellT/pl300/internal/mastery"
	"github.com/JeyrellT/pl300/internal/store"
	"github.com/JeyrellT/pl300/internal/tracker"
)

func newTestService(t *testing.T) (*Service, *store.MemoryKV) {
	t.Helper()
	kv := store.NewMemoryKV()
	s, err := NewService(context.Background(), kv, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return s, kv
}

func result(session string, total, correct int) QuizResult {
	return QuizResult{
		SessionID:      session,
		Mode:           "standard",
		Domain:         catalog.DomainAny,
		Level:          catalog.LevelAny,
		TotalQuestions: total,
		CorrectAnswers: correct,
		CompletedAt:    day("2026-03-10"),
	}
}

func TestRecordQuizCompletionAwards(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	// 4/5 correct: 40 points, 80 XP + 50 bonus.
	out, err := s.RecordQuizCompletion(ctx, result("quiz-1", 5, 4), nil)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if out.PointsEarned != 40 {
		t.Errorf("points = %d, want 40", out.PointsEarned)
	}
	if out.XPEarned != 130 {
		t.Errorf("xp = %d, want 130", out.XPEarned)
	}
	if out.TotalPoints != 40 || out.TotalXP != 130 {
		t.Errorf("totals = %d/%d", out.TotalPoints, out.TotalXP)
	}
	if out.Duplicate {
		t.Error("first call flagged as duplicate")
	}

	// 1/5 correct: below the bonus threshold.
	out, err = s.RecordQuizCompletion(ctx, result("quiz-2", 5, 1), nil)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if out.PointsEarned != 10 || out.XPEarned != 20 {
		t.Errorf("awards = %d/%d, want 10/20", out.PointsEarned, out.XPEarned)
	}
}

func TestRecordQuizCompletionIdempotent(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	first, err := s.RecordQuizCompletion(ctx, result("quiz-42", 5, 5), nil)
	if err != nil {
		t.Fatalf("first: %v", err)
	}

	second, err := s.RecordQuizCompletion(ctx, result("quiz-42", 5, 5), nil)
	if err != nil {
		t.Fatalf("second: %v", err)
	}

	if !second.Duplicate {
		t.Error("replay not flagged as duplicate")
	}
	if second.PointsEarned != first.PointsEarned || second.XPEarned != first.XPEarned {
		t.Errorf("replay echoed %d/%d, want %d/%d",
			second.PointsEarned, second.XPEarned, first.PointsEarned, first.XPEarned)
	}
	if s.TotalPoints() != first.TotalPoints || s.TotalXP() != first.TotalXP {
		t.Errorf("totals changed on replay: %d/%d", s.TotalPoints(), s.TotalXP())
	}
	if s.QuizzesCompleted() != 1 {
		t.Errorf("quizzes completed = %d, want 1", s.QuizzesCompleted())
	}
	if len(s.History()) != 1 {
		t.Errorf("history length = %d, want 1", len(s.History()))
	}
}

func TestIdempotenceSurvivesReload(t *testing.T) {
	kv := store.NewMemoryKV()
	ctx := context.Background()

	s, err := NewService(ctx, kv, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if _, err := s.RecordQuizCompletion(ctx, result("quiz-7", 3, 3), nil); err != nil {
		t.Fatalf("record: %v", err)
	}

	s2, err := NewService(ctx, kv, nil)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	out, err := s2.RecordQuizCompletion(ctx, result("quiz-7", 3, 3), nil)
	if err != nil {
		t.Fatalf("replay after reload: %v", err)
	}
	if !out.Duplicate {
		t.Error("processed key lost across reload")
	}
	if s2.TotalPoints() != 30 {
		t.Errorf("points after reload = %d, want 30", s2.TotalPoints())
	}
}

func TestLeveledUp(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	// 10 correct: 250 XP. Not yet level 2.
	out, _ := s.RecordQuizCompletion(ctx, result("a", 10, 10), nil)
	if out.LeveledUp {
		t.Error("leveled up at 250 XP")
	}

	// Another 250 XP crosses the 500 threshold.
	out, _ = s.RecordQuizCompletion(ctx, result("b", 10, 10), nil)
	if !out.LeveledUp {
		t.Error("no level-up crossing 500 XP")
	}
	if out.Level.Number != 2 {
		t.Errorf("level = %d, want 2", out.Level.Number)
	}
}

func TestAchievementsUnlockOnce(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	tracking := make(map[string]tracker.Entry)
	for i := 0; i < 10; i++ {
		id := string(rune('a' + i))
		tracking[id] = tracker.Entry{
			QuestionID: id, Domain: catalog.DomainPrepareData, Level: catalog.LevelBeginner,
			TotalAttempts: 3, CorrectAttempts: 3, ConsecutiveCorrect: 3,
			Status: mastery.StatusMastered,
		}
	}

	out, _ := s.RecordQuizCompletion(ctx, result("a", 5, 5), tracking)
	got := make(map[string]bool)
	for _, a := range out.NewAchievements {
		got[a.ID] = true
	}
	for _, want := range []string{"first-quiz", "perfect-quiz", "mastered-10"} {
		if !got[want] {
			t.Errorf("achievement %s not unlocked; got %v", want, got)
		}
	}

	// Already-unlocked achievements never repeat.
	out, _ = s.RecordQuizCompletion(ctx, result("b", 5, 5), tracking)
	for _, a := range out.NewAchievements {
		if a.ID == "first-quiz" || a.ID == "perfect-quiz" || a.ID == "mastered-10" {
			t.Errorf("achievement %s unlocked twice", a.ID)
		}
	}

	if len(s.Unlocked()) < 3 {
		t.Errorf("unlocked = %v", s.Unlocked())
	}
}

func TestStreakAchievement(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	days := []string{"2026-03-01", "2026-03-02", "2026-03-03"}
	var last Outcome
	for i, d := range days {
		r := result(d, 4, 2)
		r.CompletedAt = day(d)
		var err error
		last, err = s.RecordQuizCompletion(ctx, r, nil)
		if err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	found := false
	for _, a := range last.NewAchievements {
		if a.ID == "streak-3" {
			found = true
		}
	}
	if !found {
		t.Errorf("streak-3 not unlocked after 3 days; streak = %+v", s.Streak())
	}
}

func TestPersistFailureStillApplies(t *testing.T) {
	kv := store.NewMemoryKV()
	s, err := NewService(context.Background(), kv, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	kv.FailSaves = true
	kv.FailErr = context.DeadlineExceeded

	out, err := s.RecordQuizCompletion(context.Background(), result("x", 5, 5), nil)
	if err == nil {
		t.Fatal("expected a persistence warning")
	}
	if out.PointsEarned != 50 {
		t.Errorf("points = %d, want 50", out.PointsEarned)
	}
	if s.TotalPoints() != 50 {
		t.Errorf("in-memory total = %d, want 50", s.TotalPoints())
	}
}

func TestEmptyQuizNoBonus(t *testing.T) {
	s, _ := newTestService(t)

	out, err := s.RecordQuizCompletion(context.Background(), result("empty", 0, 0), nil)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if out.PointsEarned != 0 || out.XPEarned != 0 {
		t.Errorf("empty quiz awarded %d/%d", out.PointsEarned, out.XPEarned)
	}
}

func TestHistoryCap(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < historyCap+10; i++ {
		r := result(fmt.Sprintf("quiz-%d", i), 1, 1)
		if _, err := s.RecordQuizCompletion(ctx, r, nil); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}
	if len(s.History()) != historyCap {
		t.Errorf("history length = %d, want %d", len(s.History()), historyCap)
	}
}
