package coach

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/JeyrellT/pl300/internal/catalog"
	"github.com/JeyrellT/pl300/internal/llm"
)

func testQuestion() catalog.Question {
	return catalog.Question{
		ID:     "md-001",
		Domain: catalog.DomainModelData,
		Level:  catalog.LevelIntermediate,
		Prompt: "¿Qué función DAX devuelve el contexto de filtro actual?",
		Options: []string{
			"CALCULATE",
			"FILTERS",
			"SUMX",
			"RELATED",
		},
		CorrectIndex: 1,
		Explanation:  "FILTERS devuelve una tabla con los valores filtrados.",
	}
}

func TestExplain(t *testing.T) {
	canned := `{
		"summary": "La pregunta evalúa el contexto de filtro en DAX.",
		"why_correct": "FILTERS devuelve los valores aplicados como filtro directo.",
		"why_others_wrong": ["CALCULATE modifica el contexto", "SUMX itera filas", "RELATED sigue relaciones"],
		"key_concepts": ["contexto de filtro", "DAX"],
		"study_tip": "Practica con CALCULATE y FILTERS en un modelo pequeño."
	}`
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(canned)},
	)
	c := New(mock, DefaultConfig())

	exp, err := c.Explain(context.Background(), testQuestion(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exp.Summary == "" || exp.WhyCorrect == "" || exp.StudyTip == "" {
		t.Fatalf("incomplete explanation: %+v", exp)
	}
	if len(exp.WhyOthersWrong) != 3 {
		t.Fatalf("expected 3 wrong-option entries, got %d", len(exp.WhyOthersWrong))
	}
	if len(exp.KeyConcepts) != 2 {
		t.Fatalf("expected 2 key concepts, got %d", len(exp.KeyConcepts))
	}
}

func TestExplain_RequestShape(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"summary":"s","why_correct":"w","why_others_wrong":[],"key_concepts":[],"study_tip":"t"}`)},
	)
	c := New(mock, DefaultConfig())

	if _, err := c.Explain(context.Background(), testQuestion(), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(mock.Calls))
	}
	req := mock.Calls[0]
	if req.Schema != ExplanationSchema {
		t.Fatal("expected explanation schema on request")
	}
	if req.System == "" {
		t.Fatal("expected a system prompt")
	}
	if len(req.Messages) != 1 || req.Messages[0].Role != llm.RoleUser {
		t.Fatalf("expected one user message, got %+v", req.Messages)
	}
	msg := req.Messages[0].Content
	if !strings.Contains(msg, "FILTERS") {
		t.Fatal("expected the options in the prompt")
	}
}

func TestExplain_WrongAnswerMentioned(t *testing.T) {
	msg := buildUserMessage(testQuestion(), 0)
	if !strings.Contains(msg, "eligió la opción 1") {
		t.Fatalf("expected the wrong answer to be mentioned, got:\n%s", msg)
	}
}

func TestExplain_CorrectAnswerNotCalledOut(t *testing.T) {
	msg := buildUserMessage(testQuestion(), 1)
	if strings.Contains(msg, "eligió la opción") {
		t.Fatalf("did not expect wrong-answer note, got:\n%s", msg)
	}
}

func TestExplain_UnknownAnswer(t *testing.T) {
	msg := buildUserMessage(testQuestion(), -1)
	if strings.Contains(msg, "eligió la opción") {
		t.Fatalf("did not expect wrong-answer note, got:\n%s", msg)
	}
}

func TestExplain_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
	)
	c := New(mock, DefaultConfig())

	if _, err := c.Explain(context.Background(), testQuestion(), -1); err == nil {
		t.Fatal("expected error when the provider fails")
	}
}

func TestExplain_MalformedResponse(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`not json`)},
	)
	c := New(mock, DefaultConfig())

	if _, err := c.Explain(context.Background(), testQuestion(), -1); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}
