// Package ai generates the narrative compatibility summary through an
// external LLM provider. Providers are thin REST clients; the prompt and
// caching live with the caller.
package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// ErrUnavailable wraps provider failures (missing key, rate limits, 5xx,
// network) so handlers can map them to a single upstream-failure status.
var ErrUnavailable = errors.New("ai provider unavailable")

// Generation parameters shared by both providers. Narrative text wants a
// bit of temperature but not invention.
const (
	genTemperature     = 0.75
	genTopP            = 0.9
	genMaxOutputTokens = 4096

	requestTimeout = 60 * time.Second
	maxAttempts    = 3
)

// Provider produces free-form text for a prompt.
type Provider interface {
	// Generate returns the model's text for prompt, or an error wrapping
	// ErrUnavailable when the provider cannot serve the request.
	Generate(ctx context.Context, prompt string) (string, error)
	// Name identifies the provider in logs and responses.
	Name() string
}

// Config selects and configures a provider.
type Config struct {
	Provider    string
	GeminiKey   string
	GeminiModel string
	GroqKey     string
	GroqModel   string
}

// New builds the configured provider. An empty or unknown provider name,
// or a missing API key, yields the disabled provider rather than an error:
// the rest of the app works fine without summaries.
func New(cfg Config, logger *slog.Logger) Provider {
	httpc := &http.Client{Timeout: requestTimeout}
	switch cfg.Provider {
	case "gemini":
		if cfg.GeminiKey != "" {
			return NewGemini(cfg.GeminiKey, cfg.GeminiModel, httpc, logger)
		}
		logger.Warn("ai provider gemini selected but GEMINI_API_KEY is empty, summaries disabled")
	case "groq":
		if cfg.GroqKey != "" {
			return NewGroq(cfg.GroqKey, cfg.GroqModel, httpc, logger)
		}
		logger.Warn("ai provider groq selected but GROQ_API_KEY is empty, summaries disabled")
	case "", "none":
	default:
		logger.Warn("unknown ai provider, summaries disabled", slog.String("provider", cfg.Provider))
	}
	return Disabled{}
}

// Disabled is the no-provider fallback. Every call fails with
// ErrUnavailable.
type Disabled struct{}

func (Disabled) Generate(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: no provider configured", ErrUnavailable)
}

func (Disabled) Name() string { return "disabled" }

// retryable reports whether a generate attempt is worth repeating.
type retryableError struct{ err error }

func (e retryableError) Error() string { return e.err.Error() }
func (e retryableError) Unwrap() error { return e.err }

func backoff(attempt int) time.Duration {
	return time.Duration(attempt) * 500 * time.Millisecond
}
