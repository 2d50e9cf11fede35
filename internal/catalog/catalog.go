package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Question is a single catalog record. The engine only inspects ID, Domain,
// Level and CorrectIndex; the display fields are carried through opaquely.
type Question struct {
	ID           string   `json:"id"`
	Domain       Domain   `json:"domain"`
	Level        Level    `json:"level"`
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation,omitempty"`
}

// Catalog is a read-only collection of questions indexed by ID.
type Catalog struct {
	questions []Question
	byID      map[string]*Question
}

type bankFile struct {
	Questions []Question `json:"questions"`
}

//go:embed bank.json
var embeddedBank []byte

var loadEmbedded = sync.OnceValues(func() (*Catalog, error) {
	return Parse(embeddedBank)
})

// Embedded returns the catalog built from the bank shipped in the binary.
func Embedded() (*Catalog, error) {
	return loadEmbedded()
}

// LoadFile reads and parses an external question bank file.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank file: %w", err)
	}
	return Parse(raw)
}

// Parse validates raw bank JSON and builds a Catalog from it.
func Parse(raw []byte) (*Catalog, error) {
	if err := validateBank(raw); err != nil {
		return nil, err
	}

	var bank bankFile
	if err := json.Unmarshal(raw, &bank); err != nil {
		return nil, fmt.Errorf("unmarshal bank: %w", err)
	}

	c := &Catalog{
		questions: bank.Questions,
		byID:      make(map[string]*Question, len(bank.Questions)),
	}
	for i := range c.questions {
		q := &c.questions[i]
		if _, dup := c.byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		if q.CorrectIndex >= len(q.Options) {
			return nil, fmt.Errorf("question %q: correct_index %d out of range (%d options)",
				q.ID, q.CorrectIndex, len(q.Options))
		}
		c.byID[q.ID] = q
	}
	return c, nil
}

// All returns every question in bank order.
func (c *Catalog) All() []Question {
	out := make([]Question, len(c.questions))
	copy(out, c.questions)
	return out
}

// Questions returns the questions matching the domain and level filters.
// DomainAny / LevelAny match everything in their position.
func (c *Catalog) Questions(domain Domain, level Level) []Question {
	var out []Question
	for _, q := range c.questions {
		if domain != DomainAny && q.Domain != domain {
			continue
		}
		if level != LevelAny && q.Level != level {
			continue
		}
		out = append(out, q)
	}
	return out
}

// Get returns the question with the given id.
func (c *Catalog) Get(id string) (Question, bool) {
	q, ok := c.byID[id]
	if !ok {
		return Question{}, false
	}
	return *q, true
}

// Contains reports whether the catalog has a question with the given id.
func (c *Catalog) Contains(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Len returns the number of questions in the catalog.
func (c *Catalog) Len() int {
	return len(c.questions)
}
