package tracker

import (
	"time"

	"github.com/JeyrellT/pl300/internal/catalog"
	"github.com/JeyrellT/pl300/internal/mastery"
)

// historyCap bounds the per-question attempt history. Older events fall off
// the front; the counters keep the lifetime totals.
const historyCap = 20

// AttemptEvent is one recorded answer in an entry's history.
type AttemptEvent struct {
	Timestamp   time.Time `json:"timestamp"`
	WasCorrect  bool      `json:"was_correct"`
	TimeSpentMs int64     `json:"time_spent_ms"`
}

// Entry is the tracked state of one question. Entries are created lazily on
// first attempt and never deleted.
type Entry struct {
	QuestionID         string         `json:"question_id"`
	Domain             catalog.Domain `json:"domain"`
	Level              catalog.Level  `json:"level"`
	TotalAttempts      int            `json:"total_attempts"`
	CorrectAttempts    int            `json:"correct_attempts"`
	ConsecutiveCorrect int            `json:"consecutive_correct"`
	Status             mastery.Status `json:"status"`
	ConfidenceLevel    int            `json:"confidence_level"`
	WasMastered        bool           `json:"was_mastered"`
	Attempts           []AttemptEvent `json:"attempts,omitempty"`
	LastAttemptAt      time.Time      `json:"last_attempt_at"`
	AverageTimeMs      float64        `json:"average_time_ms"`
}

// Counters returns the slice of the entry the mastery rule evaluates.
func (e *Entry) Counters() mastery.Counters {
	return mastery.Counters{
		TotalAttempts:      e.TotalAttempts,
		CorrectAttempts:    e.CorrectAttempts,
		ConsecutiveCorrect: e.ConsecutiveCorrect,
		WasMastered:        e.WasMastered,
	}
}

// Accuracy returns the entry's lifetime accuracy, or 0 with no attempts.
func (e *Entry) Accuracy() float64 {
	return e.Counters().Accuracy()
}

func (e *Entry) clone() Entry {
	out := *e
	if e.Attempts != nil {
		out.Attempts = make([]AttemptEvent, len(e.Attempts))
		copy(out.Attempts, e.Attempts)
	}
	return out
}
