// Package coach asks the configured LLM provider for a deeper explanation
// of a catalog question than the bank's canned text.
package coach

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/JeyrellT/pl300/internal/catalog"
	"github.com/JeyrellT/pl300/internal/llm"
)

const systemPrompt = `Eres un tutor experto en Power BI que prepara estudiantes
para el examen de certificación PL-300. Explicas conceptos con precisión
técnica y en español claro. Respondes únicamente con el JSON pedido.`

// Explanation is the coach's structured answer.
type Explanation struct {
	Summary        string   `json:"summary"`
	WhyCorrect     string   `json:"why_correct"`
	WhyOthersWrong []string `json:"why_others_wrong"`
	KeyConcepts    []string `json:"key_concepts"`
	StudyTip       string   `json:"study_tip"`
}

// Config tunes the generation request.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard generation settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.3,
	}
}

// Coach produces explanations through an LLM provider.
type Coach struct {
	provider llm.Provider
	config   Config
}

// New creates a Coach with the given provider and config.
func New(provider llm.Provider, cfg Config) *Coach {
	return &Coach{provider: provider, config: cfg}
}

// Explain asks the provider for an in-depth explanation of the question.
// userAnswer is the option index the learner chose, or -1 when unknown.
func (c *Coach) Explain(ctx context.Context, q catalog.Question, userAnswer int) (*Explanation, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeExplanation)

	req := llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserTurn(buildUserMessage(q, userAnswer)),
		Schema:      ExplanationSchema,
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	}

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("explanation request failed: %w", err)
	}

	var out Explanation
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse explanation: %w", err)
	}
	return &out, nil
}

func buildUserMessage(q catalog.Question, userAnswer int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Dominio: %s\nNivel: %s\n\nPregunta:\n%s\n\nOpciones:\n",
		q.Domain.DisplayName(), q.Level.DisplayName(), q.Prompt)
	for i, opt := range q.Options {
		marker := " "
		if i == q.CorrectIndex {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %d. %s\n", marker, i+1, opt)
	}
	b.WriteString("\nLa opción marcada con * es la correcta.\n")

	if userAnswer >= 0 && userAnswer < len(q.Options) && userAnswer != q.CorrectIndex {
		fmt.Fprintf(&b, "El estudiante eligió la opción %d, que es incorrecta. Dirige la explicación a ese error.\n", userAnswer+1)
	}
	if q.Explanation != "" {
		fmt.Fprintf(&b, "\nExplicación base del banco (amplíala, no la repitas):\n%s\n", q.Explanation)
	}

	b.WriteString("\nResponde con el JSON del esquema pedido.")
	return b.String()
}
