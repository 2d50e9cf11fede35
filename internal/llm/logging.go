package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/JeyrellT/pl300/internal/store"
)

// RequestLogger records LLM request events. *store.EventRepo satisfies it.
type RequestLogger interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// LoggingProvider is a decorator that records every LLM request as an event.
type LoggingProvider struct {
	inner    Provider
	provider string
	logger   RequestLogger
}

// WithLogging wraps a Provider with event logging. provider is the configured
// provider name ("anthropic", "gemini", ...), recorded alongside the model on
// each event. A nil logger passes the provider through unwrapped.
func WithLogging(p Provider, provider string, logger RequestLogger) Provider {
	if logger == nil {
		return p
	}
	return &LoggingProvider{inner: p, provider: provider, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	latencyMs := time.Since(start).Milliseconds()

	data := store.LLMRequestEventData{
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		Purpose:   purpose,
		LatencyMs: latencyMs,
		Success:   err == nil,
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
	}

	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// Log the event but don't fail the request if logging fails.
	if logErr := l.logger.AppendLLMRequest(ctx, data); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log LLM request event: %v\n", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
