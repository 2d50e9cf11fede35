// Package mastery classifies questions into learning states from their
// attempt counters. Evaluate is a pure function so the tracker can recompute
// a status after every attempt without touching storage.
package mastery

// Status is the mastery state of a tracked question.
type Status string

const (
	StatusNotAttempted Status = "not_attempted"
	StatusLearning     Status = "learning"
	StatusReviewing    Status = "reviewing"
	StatusMastered     Status = "mastered"

	// StatusRetired is a manual archival state. Evaluate never returns it;
	// the tracker sets and clears it explicitly.
	StatusRetired Status = "retired"
)

// DisplayName returns a human-readable label for the status.
func (s Status) DisplayName() string {
	switch s {
	case StatusNotAttempted:
		return "Sin intentar"
	case StatusLearning:
		return "Aprendiendo"
	case StatusReviewing:
		return "Repasando"
	case StatusMastered:
		return "Dominada"
	case StatusRetired:
		return "Archivada"
	default:
		return string(s)
	}
}

// Config holds the thresholds for the mastery transition rule.
type Config struct {
	// RequiredStreak is the unbroken run of correct answers needed for mastery.
	RequiredStreak int
	// RequiredAccuracy is the minimum lifetime accuracy (correct/total) for mastery.
	RequiredAccuracy float64
}

// DefaultConfig returns the standard thresholds: a streak of 3 with at least
// 80% lifetime accuracy.
func DefaultConfig() Config {
	return Config{
		RequiredStreak:   3,
		RequiredAccuracy: 0.8,
	}
}
