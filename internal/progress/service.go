// Package progress folds tracking snapshots into display-ready statistics
// and owns the gamification state: points, XP, streaks, history and
// achievements.
package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/JeyrellT/pl300/internal/catalog"
	"github.com/JeyrellT/pl300/internal/store"
	"github.com/JeyrellT/pl300/internal/tracker"
)

// Award constants per completed quiz.
const (
	pointsPerCorrect = 10
	xpPerCorrect     = 20
	completionBonus  = 50
	bonusAccuracy    = 0.5
)

// historyCap bounds the stored quiz history. The event log keeps the full
// record.
const historyCap = 50

// QuizResult is the payload of one finished quiz. SessionID is the
// idempotency key: completions with an already-processed id are not applied
// again.
type QuizResult struct {
	SessionID      string
	Mode           string
	Domain         catalog.Domain
	Level          catalog.Level
	TotalQuestions int
	CorrectAnswers int
	CompletedAt    time.Time
}

// Accuracy returns the quiz's answer accuracy, or 0 for an empty quiz.
func (r QuizResult) Accuracy() float64 {
	if r.TotalQuestions == 0 {
		return 0
	}
	return float64(r.CorrectAnswers) / float64(r.TotalQuestions)
}

// QuizRecord is one history line.
type QuizRecord struct {
	SessionID      string         `json:"session_id"`
	Mode           string         `json:"mode"`
	Domain         catalog.Domain `json:"domain"`
	Level          catalog.Level  `json:"level"`
	TotalQuestions int            `json:"total_questions"`
	CorrectAnswers int            `json:"correct_answers"`
	PointsEarned   int            `json:"points_earned"`
	XPEarned       int            `json:"xp_earned"`
	CompletedAt    time.Time      `json:"completed_at"`
}

// Outcome reports what one completion call awarded.
type Outcome struct {
	PointsEarned    int
	XPEarned        int
	TotalPoints     int
	TotalXP         int
	Level           LevelProgress
	LeveledUp       bool
	NewAchievements []Achievement
	// Duplicate marks a replayed session id: nothing was applied and the
	// earned fields echo the original application.
	Duplicate bool
}

type applied struct {
	Points int `json:"points"`
	XP     int `json:"xp"`
}

type state struct {
	TotalPoints      int                `json:"total_points"`
	TotalXP          int                `json:"total_xp"`
	QuizzesCompleted int                `json:"quizzes_completed"`
	Streak           DailyStreak        `json:"streak"`
	History          []QuizRecord       `json:"history,omitempty"`
	Processed        map[string]applied `json:"processed"`
	Unlocked         map[string]bool    `json:"unlocked"`
}

// Service owns the aggregate progress state and writes it through to the
// store after every mutation.
type Service struct {
	kv     store.KV
	events *store.EventRepo
	state  state
	now    func() time.Time
}

// NewService builds a Service over the store, loading any persisted state.
// events may be nil to skip the quiz event log.
func NewService(ctx context.Context, kv store.KV, events *store.EventRepo) (*Service, error) {
	s := &Service{
		kv:     kv,
		events: events,
		state: state{
			Processed: make(map[string]applied),
			Unlocked:  make(map[string]bool),
		},
		now: time.Now,
	}

	raw, ok, err := kv.Load(ctx, store.KeyProgress)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if ok {
		if err := json.Unmarshal(raw, &s.state); err != nil {
			return nil, fmt.Errorf("decode progress: %w", err)
		}
		if s.state.Processed == nil {
			s.state.Processed = make(map[string]applied)
		}
		if s.state.Unlocked == nil {
			s.state.Unlocked = make(map[string]bool)
		}
	}
	return s, nil
}

// RecordQuizCompletion applies one finished quiz at most once per session id.
// A replayed id is a silent no-op that reports the original award. The
// tracking snapshot feeds achievement thresholds.
//
// A store failure does not roll back the applied state; the returned error
// is a warning, not a rejection.
func (s *Service) RecordQuizCompletion(ctx context.Context, result QuizResult, tracking map[string]tracker.Entry) (Outcome, error) {
	if prior, done := s.state.Processed[result.SessionID]; done {
		return Outcome{
			PointsEarned: prior.Points,
			XPEarned:     prior.XP,
			TotalPoints:  s.state.TotalPoints,
			TotalXP:      s.state.TotalXP,
			Level:        LevelForXP(s.state.TotalXP),
			Duplicate:    true,
		}, nil
	}

	points := result.CorrectAnswers * pointsPerCorrect
	xp := result.CorrectAnswers * xpPerCorrect
	if result.TotalQuestions > 0 && result.Accuracy() >= bonusAccuracy {
		xp += completionBonus
	}

	before := LevelForXP(s.state.TotalXP)

	completedAt := result.CompletedAt
	if completedAt.IsZero() {
		completedAt = s.now()
	}

	s.state.TotalPoints += points
	s.state.TotalXP += xp
	s.state.QuizzesCompleted++
	s.state.Streak.Touch(completedAt)
	s.state.Processed[result.SessionID] = applied{Points: points, XP: xp}

	s.state.History = append(s.state.History, QuizRecord{
		SessionID:      result.SessionID,
		Mode:           result.Mode,
		Domain:         result.Domain,
		Level:          result.Level,
		TotalQuestions: result.TotalQuestions,
		CorrectAnswers: result.CorrectAnswers,
		PointsEarned:   points,
		XPEarned:       xp,
		CompletedAt:    completedAt,
	})
	if len(s.state.History) > historyCap {
		s.state.History = s.state.History[len(s.state.History)-historyCap:]
	}

	after := LevelForXP(s.state.TotalXP)

	in := achievementInput{
		quizzesCompleted: s.state.QuizzesCompleted,
		perfectQuiz:      result.TotalQuestions > 0 && result.CorrectAnswers == result.TotalQuestions,
		masteredCount:    MasteredCount(tracking),
		streakDays:       s.state.Streak.Current,
		levelNumber:      after.Number,
	}
	newAchievements := evaluateAchievements(in, s.state.Unlocked)
	for _, a := range newAchievements {
		s.state.Unlocked[a.ID] = true
	}

	outcome := Outcome{
		PointsEarned:    points,
		XPEarned:        xp,
		TotalPoints:     s.state.TotalPoints,
		TotalXP:         s.state.TotalXP,
		Level:           after,
		LeveledUp:       after.Number > before.Number,
		NewAchievements: newAchievements,
	}

	var persistErr error
	if s.events != nil {
		err := s.events.AppendQuizCompletion(ctx, store.QuizEventData{
			SessionID:      result.SessionID,
			Mode:           result.Mode,
			Domain:         string(result.Domain),
			Level:          string(result.Level),
			TotalQuestions: result.TotalQuestions,
			CorrectAnswers: result.CorrectAnswers,
			PointsEarned:   points,
			XPEarned:       xp,
		})
		if err != nil {
			persistErr = fmt.Errorf("append quiz event: %w", err)
		}
	}
	if err := s.persist(ctx); err != nil {
		persistErr = err
	}

	return outcome, persistErr
}

// TotalPoints returns the lifetime point total.
func (s *Service) TotalPoints() int { return s.state.TotalPoints }

// TotalXP returns the lifetime XP total.
func (s *Service) TotalXP() int { return s.state.TotalXP }

// Level returns the current XP tier and progress toward the next.
func (s *Service) Level() LevelProgress { return LevelForXP(s.state.TotalXP) }

// Streak returns the daily usage streak.
func (s *Service) Streak() DailyStreak { return s.state.Streak }

// QuizzesCompleted returns how many distinct quizzes have been applied.
func (s *Service) QuizzesCompleted() int { return s.state.QuizzesCompleted }

// History returns the stored quiz history, oldest first.
func (s *Service) History() []QuizRecord {
	out := make([]QuizRecord, len(s.state.History))
	copy(out, s.state.History)
	return out
}

// Unlocked returns the achievements unlocked so far, in rule order.
func (s *Service) Unlocked() []Achievement {
	var out []Achievement
	for _, rule := range achievementRules {
		if s.state.Unlocked[rule.ID] {
			out = append(out, rule.Achievement)
		}
	}
	return out
}

func (s *Service) persist(ctx context.Context) error {
	raw, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := s.kv.Save(ctx, store.KeyProgress, raw); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}
