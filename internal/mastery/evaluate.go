package mastery

// Counters is the slice of a tracking entry that the transition rule reads.
type Counters struct {
	TotalAttempts      int
	CorrectAttempts    int
	ConsecutiveCorrect int
	// WasMastered records that the question held StatusMastered at some
	// earlier point, so a later miss demotes it to reviewing rather than
	// all the way back to learning.
	WasMastered bool
}

// Accuracy returns the lifetime accuracy, or 0 with no attempts.
func (c Counters) Accuracy() float64 {
	if c.TotalAttempts == 0 {
		return 0
	}
	return float64(c.CorrectAttempts) / float64(c.TotalAttempts)
}

// Evaluate derives the status for a question from its counters.
//
// A question is mastered once its current streak reaches cfg.RequiredStreak
// and its lifetime accuracy is at least cfg.RequiredAccuracy. A question that
// falls short is reviewing when it has at least one correct answer and either
// was mastered before or is rebuilding a streak after a miss; otherwise it is
// still learning.
func Evaluate(c Counters, cfg Config) Status {
	if c.TotalAttempts == 0 {
		return StatusNotAttempted
	}

	if c.ConsecutiveCorrect >= cfg.RequiredStreak && c.Accuracy() >= cfg.RequiredAccuracy {
		return StatusMastered
	}

	if c.CorrectAttempts >= 1 {
		if c.WasMastered {
			return StatusReviewing
		}
		missedBefore := c.CorrectAttempts < c.TotalAttempts
		if missedBefore && c.ConsecutiveCorrect >= 1 {
			return StatusReviewing
		}
	}

	return StatusLearning
}

// Confidence maps a status and the current streak to a 0-5 signal for
// display. Within a status, a longer streak never lowers the value.
func Confidence(status Status, streak int) int {
	switch status {
	case StatusLearning:
		if streak >= 1 {
			return 2
		}
		return 1
	case StatusReviewing:
		if streak >= 1 {
			return 3
		}
		return 2
	case StatusMastered:
		if streak >= 5 {
			return 5
		}
		return 4
	default:
		return 0
	}
}
