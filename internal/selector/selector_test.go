package selector

import (
	"fmt"
	"strings"
	"testing"

	"github.com/JeyrellT/pl300/internal/catalog"
	"github.com/JeyrellT/pl300/internal/mastery"
	"github.com/JeyrellT/pl300/internal/tracker"
)

// testCatalog builds a catalog with n questions per domain/level pair.
func testCatalog(t *testing.T, perBucket int) *catalog.Catalog {
	t.Helper()
	var sb strings.Builder
	sb.WriteString(`{"questions":[`)
	first := true
	for _, d := range catalog.AllDomains() {
		for _, l := range catalog.AllLevels() {
			for i := 0; i < perBucket; i++ {
				if !first {
					sb.WriteString(",")
				}
				first = false
				fmt.Fprintf(&sb,
					`{"id":"%s-%s-%d","domain":"%s","level":"%s","prompt":"p","options":["a","b"],"correct_index":0}`,
					d, l, i, d, l)
			}
		}
	}
	sb.WriteString("]}")

	c, err := catalog.Parse([]byte(sb.String()))
	if err != nil {
		t.Fatalf("parse catalog: %v", err)
	}
	return c
}

func entry(id string, status mastery.Status, total, correct, streak int) tracker.Entry {
	return tracker.Entry{
		QuestionID:         id,
		TotalAttempts:      total,
		CorrectAttempts:    correct,
		ConsecutiveCorrect: streak,
		Status:             status,
	}
}

func TestSelectFreshPool(t *testing.T) {
	cat := testCatalog(t, 10)

	got := Select(cat, catalog.DomainPrepareData, catalog.LevelBeginner, 5, nil,
		Options{ExcludeMastered: true, PrioritizeWeak: true})

	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	seen := make(map[string]bool)
	for _, q := range got {
		if q.Domain != catalog.DomainPrepareData || q.Level != catalog.LevelBeginner {
			t.Errorf("question %s outside filter: %s/%s", q.ID, q.Domain, q.Level)
		}
		if seen[q.ID] {
			t.Errorf("duplicate question %s", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestSelectDegradation(t *testing.T) {
	cat := testCatalog(t, 3)

	got := Select(cat, catalog.DomainModelData, catalog.LevelAdvanced, 10, nil, Options{})

	if len(got) != 3 {
		t.Fatalf("len = %d, want the whole pool of 3", len(got))
	}
	seen := make(map[string]bool)
	for _, q := range got {
		if seen[q.ID] {
			t.Errorf("duplicate question %s", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestSelectEmptyPool(t *testing.T) {
	cat := testCatalog(t, 2)

	tracking := make(map[string]tracker.Entry)
	for _, q := range cat.Questions(catalog.DomainAdminister, catalog.LevelBeginner) {
		tracking[q.ID] = entry(q.ID, mastery.StatusMastered, 3, 3, 3)
	}

	got := Select(cat, catalog.DomainAdminister, catalog.LevelBeginner, 5, tracking,
		Options{ExcludeMastered: true})
	if len(got) != 0 {
		t.Fatalf("len = %d, want empty", len(got))
	}
}

func TestExclusion(t *testing.T) {
	cat := testCatalog(t, 4)

	tracking := map[string]tracker.Entry{
		"preparar-datos-principiante-0": entry("preparar-datos-principiante-0", mastery.StatusMastered, 3, 3, 3),
		"preparar-datos-principiante-1": entry("preparar-datos-principiante-1", mastery.StatusRetired, 5, 2, 0),
		"preparar-datos-principiante-2": entry("preparar-datos-principiante-2", mastery.StatusLearning, 1, 0, 0),
	}

	for trial := 0; trial < 50; trial++ {
		got := Select(cat, catalog.DomainPrepareData, catalog.LevelBeginner, 4, tracking,
			Options{ExcludeMastered: true})
		for _, q := range got {
			if e, ok := tracking[q.ID]; ok {
				if e.Status == mastery.StatusMastered || e.Status == mastery.StatusRetired {
					t.Fatalf("excluded question %s selected (status %s)", q.ID, e.Status)
				}
			}
		}
	}
}

func TestMasteredEligibleWithoutExclusion(t *testing.T) {
	cat := testCatalog(t, 1)

	tracking := map[string]tracker.Entry{
		"visualizar-analizar-avanzado-0": entry("visualizar-analizar-avanzado-0", mastery.StatusMastered, 3, 3, 3),
	}

	got := Select(cat, catalog.DomainVisualize, catalog.LevelAdvanced, 1, tracking, Options{})
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
}

func TestPriorityTiers(t *testing.T) {
	cat := testCatalog(t, 4)

	tracking := map[string]tracker.Entry{
		// Tier 0: reviewing.
		"modelar-datos-intermedio-0": entry("modelar-datos-intermedio-0", mastery.StatusReviewing, 4, 3, 1),
		// Tier 2: learning with a low streak.
		"modelar-datos-intermedio-1": entry("modelar-datos-intermedio-1", mastery.StatusLearning, 2, 2, 1),
		// Tier 3: learning with a solid streak.
		"modelar-datos-intermedio-2": entry("modelar-datos-intermedio-2", mastery.StatusLearning, 2, 2, 2),
		// modelar-datos-intermedio-3 is untracked: tier 1.
	}

	got := Select(cat, catalog.DomainModelData, catalog.LevelIntermediate, 4, tracking,
		Options{PrioritizeWeak: true})
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}

	want := []string{
		"modelar-datos-intermedio-0",
		"modelar-datos-intermedio-3",
		"modelar-datos-intermedio-1",
		"modelar-datos-intermedio-2",
	}
	for i, q := range got {
		if q.ID != want[i] {
			t.Errorf("position %d = %s, want %s", i, q.ID, want[i])
		}
	}
}

func TestIncorrectHeavyOutranksFresh(t *testing.T) {
	cat := testCatalog(t, 2)

	// Learning status but accuracy 1/4: incorrect-heavy, tier 0.
	tracking := map[string]tracker.Entry{
		"administrar-asegurar-intermedio-0": entry("administrar-asegurar-intermedio-0", mastery.StatusLearning, 4, 1, 0),
	}

	got := Select(cat, catalog.DomainAdminister, catalog.LevelIntermediate, 2, tracking,
		Options{PrioritizeWeak: true})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != "administrar-asegurar-intermedio-0" {
		t.Errorf("first = %s, want the incorrect-heavy question", got[0].ID)
	}
}

func TestIncludeSpecific(t *testing.T) {
	cat := testCatalog(t, 2)

	ids := []string{
		"preparar-datos-avanzado-0",
		"modelar-datos-principiante-1",
		"no-such-question",
	}

	// The explicit list bypasses filters and mastery exclusion.
	tracking := map[string]tracker.Entry{
		"preparar-datos-avanzado-0": entry("preparar-datos-avanzado-0", mastery.StatusMastered, 3, 3, 3),
	}

	got := Select(cat, catalog.DomainVisualize, catalog.LevelBeginner, 10, tracking,
		Options{ExcludeMastered: true, IncludeSpecific: ids})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (unknown id skipped)", len(got))
	}
	seen := make(map[string]bool)
	for _, q := range got {
		seen[q.ID] = true
	}
	if !seen["preparar-datos-avanzado-0"] || !seen["modelar-datos-principiante-1"] {
		t.Errorf("selected = %v", seen)
	}
}

// Archival wins over the explicit list: a retired id never comes back
// through IncludeSpecific.
func TestIncludeSpecificSkipsRetired(t *testing.T) {
	cat := testCatalog(t, 2)

	ids := []string{
		"preparar-datos-avanzado-0",
		"modelar-datos-principiante-1",
	}
	tracking := map[string]tracker.Entry{
		"preparar-datos-avanzado-0": entry("preparar-datos-avanzado-0", mastery.StatusRetired, 5, 2, 0),
	}

	got := Select(cat, catalog.DomainAny, catalog.LevelAny, 10, tracking,
		Options{IncludeSpecific: ids})
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].ID != "modelar-datos-principiante-1" {
		t.Errorf("selected = %s, want the non-retired question", got[0].ID)
	}
}

// Over repeated calls, every eligible question must show up: no tier or
// question is starved by the shuffle.
func TestSelectionCoverage(t *testing.T) {
	cat := testCatalog(t, 6)

	pool := cat.Questions(catalog.DomainPrepareData, catalog.LevelIntermediate)
	seen := make(map[string]int)
	for trial := 0; trial < 300; trial++ {
		got := Select(cat, catalog.DomainPrepareData, catalog.LevelIntermediate, 2, nil,
			Options{PrioritizeWeak: true})
		for _, q := range got {
			seen[q.ID]++
		}
	}

	for _, q := range pool {
		if seen[q.ID] == 0 {
			t.Errorf("question %s never selected over 300 trials", q.ID)
		}
	}
}

func TestNonPositiveCount(t *testing.T) {
	cat := testCatalog(t, 2)

	if got := Select(cat, catalog.DomainAny, catalog.LevelAny, 0, nil, Options{}); len(got) != 0 {
		t.Errorf("count 0 returned %d questions", len(got))
	}
	if got := Select(cat, catalog.DomainAny, catalog.LevelAny, -3, nil, Options{}); len(got) != 0 {
		t.Errorf("negative count returned %d questions", len(got))
	}
}

func TestAnyFilters(t *testing.T) {
	cat := testCatalog(t, 1)

	got := Select(cat, catalog.DomainAny, catalog.LevelAny, 100, nil, Options{})
	if len(got) != cat.Len() {
		t.Errorf("len = %d, want the full catalog of %d", len(got), cat.Len())
	}
}
