// Package selector builds the ordered question list for a new quiz from the
// catalog and the current tracking snapshot.
package selector

import (
	"math/rand/v2"

	"github.com/JeyrellT/pl300/internal/catalog"
	"github.com/JeyrellT/pl300/internal/mastery"
	"github.com/JeyrellT/pl300/internal/tracker"
)

// Options control pool filtering and ordering.
type Options struct {
	// ExcludeMastered removes questions whose tracked status is mastered.
	ExcludeMastered bool
	// PrioritizeWeak orders the pool in priority tiers so struggling
	// questions come up before fresh ones, and fresh ones before
	// well-practiced ones.
	PrioritizeWeak bool
	// IncludeSpecific restricts the pool to exactly these question ids,
	// bypassing the domain/level filters and the mastery exclusion.
	// Retired questions stay out even here. Used by retry-incorrect mode.
	IncludeSpecific []string
}

// weakAccuracy marks a question as incorrect-heavy for tier placement.
const weakAccuracy = 0.5

// lowStreak is the ceiling for the low-streak learning tier.
const lowStreak = 1

// Select returns up to count questions honoring the filters and options.
// The returned order is the presentation order. When the eligible pool is
// smaller than count, the whole pool is returned; an empty pool yields an
// empty slice. Select never fails.
func Select(cat *catalog.Catalog, domain catalog.Domain, level catalog.Level, count int, tracking map[string]tracker.Entry, opts Options) []catalog.Question {
	if count <= 0 {
		return nil
	}

	var pool []catalog.Question
	if len(opts.IncludeSpecific) > 0 {
		for _, id := range opts.IncludeSpecific {
			if e, ok := tracking[id]; ok && e.Status == mastery.StatusRetired {
				continue
			}
			if q, ok := cat.Get(id); ok {
				pool = append(pool, q)
			}
		}
	} else {
		for _, q := range cat.Questions(domain, level) {
			if excluded(q.ID, tracking, opts.ExcludeMastered) {
				continue
			}
			pool = append(pool, q)
		}
	}

	if opts.PrioritizeWeak {
		pool = prioritize(pool, tracking)
	} else {
		shuffle(pool)
	}

	if len(pool) > count {
		pool = pool[:count]
	}
	return pool
}

// excluded reports whether a question must be skipped. Retired questions are
// always out of rotation; mastered ones only when the option asks for it.
func excluded(id string, tracking map[string]tracker.Entry, excludeMastered bool) bool {
	e, ok := tracking[id]
	if !ok {
		return false
	}
	switch e.Status {
	case mastery.StatusRetired:
		return true
	case mastery.StatusMastered:
		return excludeMastered
	}
	return false
}

// prioritize partitions the pool into tiers, shuffles each tier, and
// concatenates them highest priority first:
//
//  1. reviewing or incorrect-heavy
//  2. never attempted
//  3. learning with a low streak
//  4. everything else
func prioritize(pool []catalog.Question, tracking map[string]tracker.Entry) []catalog.Question {
	var tiers [4][]catalog.Question
	for _, q := range pool {
		tier := tierOf(q.ID, tracking)
		tiers[tier] = append(tiers[tier], q)
	}

	out := make([]catalog.Question, 0, len(pool))
	for _, tier := range tiers {
		shuffle(tier)
		out = append(out, tier...)
	}
	return out
}

func tierOf(id string, tracking map[string]tracker.Entry) int {
	e, ok := tracking[id]
	if !ok || e.TotalAttempts == 0 {
		return 1
	}
	if e.Status == mastery.StatusReviewing || e.Accuracy() < weakAccuracy {
		return 0
	}
	if e.Status == mastery.StatusLearning && e.ConsecutiveCorrect <= lowStreak {
		return 2
	}
	return 3
}

func shuffle(qs []catalog.Question) {
	rand.Shuffle(len(qs), func(i, j int) {
		qs[i], qs[j] = qs[j], qs[i]
	})
}
