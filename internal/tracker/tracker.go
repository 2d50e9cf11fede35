// Package tracker owns the per-question tracking map and is its only
// mutation path. Every other component reads snapshots.
package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/JeyrellT/pl300/internal/catalog"
	"github.com/JeyrellT/pl300/internal/mastery"
	"github.com/JeyrellT/pl300/internal/store"
)

// Tracker records attempts, derives mastery state, and writes the tracking
// map through to the store after every mutation.
type Tracker struct {
	catalog *catalog.Catalog
	kv      store.KV
	events  *store.EventRepo
	cfg     mastery.Config
	entries map[string]*Entry
	now     func() time.Time
}

// New builds a Tracker over the given catalog and store, loading any
// previously persisted tracking map. events may be nil to skip the
// append-only attempt log.
func New(ctx context.Context, cat *catalog.Catalog, kv store.KV, events *store.EventRepo, cfg mastery.Config) (*Tracker, error) {
	t := &Tracker{
		catalog: cat,
		kv:      kv,
		events:  events,
		cfg:     cfg,
		entries: make(map[string]*Entry),
		now:     time.Now,
	}

	raw, ok, err := kv.Load(ctx, store.KeyTracking)
	if err != nil {
		return nil, fmt.Errorf("load tracking map: %w", err)
	}
	if ok {
		if err := json.Unmarshal(raw, &t.entries); err != nil {
			return nil, fmt.Errorf("decode tracking map: %w", err)
		}
	}
	return t, nil
}

// RecordAttempt applies one answer to the question's entry, recomputes its
// mastery status, and persists the map. The entry is created on first
// attempt. Validation is strict: an id outside the catalog or a filter-only
// domain/level fails fast before any mutation.
//
// A store failure does not roll back the in-memory update; it is returned as
// a *PersistError alongside the updated entry so the caller can warn without
// losing the session.
func (t *Tracker) RecordAttempt(ctx context.Context, questionID string, domain catalog.Domain, level catalog.Level, wasCorrect bool, timeSpentMs int64) (Entry, error) {
	if !t.catalog.Contains(questionID) {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownQuestion, questionID)
	}
	if !domain.Valid() {
		return Entry{}, fmt.Errorf("%w: %q", ErrInvalidDomain, domain)
	}
	if !level.Valid() {
		return Entry{}, fmt.Errorf("%w: %q", ErrInvalidLevel, level)
	}
	if timeSpentMs < 0 {
		timeSpentMs = 0
	}

	e, ok := t.entries[questionID]
	if !ok {
		e = &Entry{
			QuestionID: questionID,
			Domain:     domain,
			Level:      level,
			Status:     mastery.StatusNotAttempted,
		}
		t.entries[questionID] = e
	}

	e.TotalAttempts++
	if wasCorrect {
		e.CorrectAttempts++
		e.ConsecutiveCorrect++
	} else {
		e.ConsecutiveCorrect = 0
	}
	e.AverageTimeMs += (float64(timeSpentMs) - e.AverageTimeMs) / float64(e.TotalAttempts)

	now := t.now()
	e.LastAttemptAt = now
	e.Attempts = append(e.Attempts, AttemptEvent{
		Timestamp:   now,
		WasCorrect:  wasCorrect,
		TimeSpentMs: timeSpentMs,
	})
	if len(e.Attempts) > historyCap {
		e.Attempts = e.Attempts[len(e.Attempts)-historyCap:]
	}

	// Answering a retired question brings it back into rotation.
	status := mastery.Evaluate(e.Counters(), t.cfg)
	e.Status = status
	if status == mastery.StatusMastered {
		e.WasMastered = true
	}
	e.ConfidenceLevel = mastery.Confidence(status, e.ConsecutiveCorrect)

	var persistErr error
	if t.events != nil {
		err := t.events.AppendAttempt(ctx, store.AttemptEventData{
			QuestionID:  questionID,
			Domain:      string(domain),
			Level:       string(level),
			WasCorrect:  wasCorrect,
			TimeSpentMs: timeSpentMs,
		})
		if err != nil {
			persistErr = &PersistError{Op: "attempt event", Err: err}
		}
	}
	if err := t.persist(ctx); err != nil {
		persistErr = err
	}

	return e.clone(), persistErr
}

// GetEntry returns a copy of the entry for the question, if one exists.
func (t *Tracker) GetEntry(questionID string) (Entry, bool) {
	e, ok := t.entries[questionID]
	if !ok {
		return Entry{}, false
	}
	return e.clone(), true
}

// Snapshot returns a read-only copy of the full tracking map.
func (t *Tracker) Snapshot() map[string]Entry {
	out := make(map[string]Entry, len(t.entries))
	for id, e := range t.entries {
		out[id] = e.clone()
	}
	return out
}

// AnsweredQuestionIDs returns the ids of every question with at least one
// attempt, sorted for deterministic iteration.
func (t *Tracker) AnsweredQuestionIDs() []string {
	ids := make([]string, 0, len(t.entries))
	for id, e := range t.entries {
		if e.TotalAttempts > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Retire archives a question so the selector skips it until unretired.
func (t *Tracker) Retire(ctx context.Context, questionID string) error {
	e, ok := t.entries[questionID]
	if !ok {
		if !t.catalog.Contains(questionID) {
			return fmt.Errorf("%w: %q", ErrUnknownQuestion, questionID)
		}
		return fmt.Errorf("%w: %q", ErrNotAttempted, questionID)
	}
	if e.Status == mastery.StatusRetired {
		return nil
	}
	e.Status = mastery.StatusRetired
	return t.persist(ctx)
}

// Unretire returns an archived question to rotation, re-deriving its status
// from its counters.
func (t *Tracker) Unretire(ctx context.Context, questionID string) error {
	e, ok := t.entries[questionID]
	if !ok {
		if !t.catalog.Contains(questionID) {
			return fmt.Errorf("%w: %q", ErrUnknownQuestion, questionID)
		}
		return fmt.Errorf("%w: %q", ErrNotAttempted, questionID)
	}
	if e.Status != mastery.StatusRetired {
		return nil
	}
	e.Status = mastery.Evaluate(e.Counters(), t.cfg)
	e.ConfidenceLevel = mastery.Confidence(e.Status, e.ConsecutiveCorrect)
	return t.persist(ctx)
}

func (t *Tracker) persist(ctx context.Context) error {
	raw, err := json.Marshal(t.entries)
	if err != nil {
		return &PersistError{Op: "tracking map", Err: err}
	}
	if err := t.kv.Save(ctx, store.KeyTracking, raw); err != nil {
		return &PersistError{Op: "tracking map", Err: err}
	}
	return nil
}
