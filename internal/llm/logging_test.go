package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/JeyrellT/pl300/internal/store"
)

type captureLogger struct {
	events []store.LLMRequestEventData
}

func (c *captureLogger) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	c.events = append(c.events, data)
	return nil
}

func TestLogging_RecordsProviderNameAndModel(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{
			Content: json.RawMessage(`{"summary":"usa FILTERS"}`),
			Usage:   Usage{InputTokens: 12, OutputTokens: 34},
		},
	)
	logger := &captureLogger{}
	p := WithLogging(mock, "openrouter", logger)

	ctx := WithPurpose(context.Background(), PurposeExplanation)
	if _, err := p.Generate(ctx, Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(logger.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(logger.events))
	}
	ev := logger.events[0]
	if ev.Provider != "openrouter" {
		t.Errorf("provider = %q, want the configured provider name", ev.Provider)
	}
	if ev.Model != "mock" {
		t.Errorf("model = %q, want the serving model id", ev.Model)
	}
	if ev.Purpose != PurposeExplanation {
		t.Errorf("purpose = %q, want %q", ev.Purpose, PurposeExplanation)
	}
	if !ev.Success || ev.InputTokens != 12 || ev.OutputTokens != 34 {
		t.Errorf("event = %+v", ev)
	}
}

func TestLogging_RecordsFailures(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	logger := &captureLogger{}
	p := WithLogging(mock, "gemini", logger)

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}

	if len(logger.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(logger.events))
	}
	ev := logger.events[0]
	if ev.Provider != "gemini" || ev.Success || ev.ErrorMessage == "" {
		t.Errorf("event = %+v", ev)
	}
}

func TestLogging_NilLoggerPassesThrough(t *testing.T) {
	mock := NewMockProvider()
	if p := WithLogging(mock, "mock", nil); p != Provider(mock) {
		t.Fatal("expected the provider back unwrapped")
	}
}
