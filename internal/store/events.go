package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"
)

// sequenceCounter manages the global monotonic sequence number shared across
// all event types. Each event type lives in its own table, so per-table
// auto-increment IDs can't establish cross-type ordering. This shared counter
// assigns a single increasing sequence to every event regardless of type.
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// AttemptEventData is one recorded answer to a question.
type AttemptEventData struct {
	QuestionID  string
	Domain      string
	Level       string
	WasCorrect  bool
	TimeSpentMs int64
}

// QuizEventData is one completed quiz session.
type QuizEventData struct {
	SessionID      string
	Mode           string
	Domain         string
	Level          string
	TotalQuestions int
	CorrectAnswers int
	PointsEarned   int
	XPEarned       int
	CreatedAt      time.Time
}

// LLMRequestEventData is one call to an LLM provider.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// EventRepo appends and queries the append-only event tables.
type EventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *EventRepo) AppendAttempt(ctx context.Context, data AttemptEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO attempt_events
		 (sequence, question_id, domain, level, was_correct, time_spent_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		seqNum, data.QuestionID, data.Domain, data.Level,
		boolToInt(data.WasCorrect), data.TimeSpentMs, nowRFC3339(),
	)
	if err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

func (r *EventRepo) AppendQuizCompletion(ctx context.Context, data QuizEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO quiz_events
		 (sequence, session_id, mode, domain, level, total_questions, correct_answers,
		  points_earned, xp_earned, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, data.SessionID, data.Mode, data.Domain, data.Level,
		data.TotalQuestions, data.CorrectAnswers, data.PointsEarned, data.XPEarned,
		nowRFC3339(),
	)
	if err != nil {
		return fmt.Errorf("save quiz event: %w", err)
	}
	return nil
}

func (r *EventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO llm_events
		 (sequence, provider, model, purpose, input_tokens, output_tokens,
		  latency_ms, success, error_message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs,
		boolToInt(data.Success), data.ErrorMessage, nowRFC3339(),
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

// RecentQuizzes returns up to limit completed quizzes, newest first.
func (r *EventRepo) RecentQuizzes(ctx context.Context, limit int) ([]QuizEventData, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT session_id, mode, domain, level, total_questions, correct_answers,
		        points_earned, xp_earned, created_at
		 FROM quiz_events ORDER BY sequence DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query quiz events: %w", err)
	}
	defer rows.Close()

	var out []QuizEventData
	for rows.Next() {
		var q QuizEventData
		var createdAt string
		err := rows.Scan(&q.SessionID, &q.Mode, &q.Domain, &q.Level,
			&q.TotalQuestions, &q.CorrectAnswers, &q.PointsEarned, &q.XPEarned, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("scan quiz event: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			q.CreatedAt = t
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}
