package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	groqDefaultBaseURL = "https://api.groq.com/openai"
	groqDefaultModel   = "llama-3.3-70b-versatile"
)

// Groq calls the Groq OpenAI-compatible chat completions API.
type Groq struct {
	baseURL string
	apiKey  string
	model   string
	httpc   *http.Client
	logger  *slog.Logger
}

func NewGroq(apiKey, model string, httpc *http.Client, logger *slog.Logger) *Groq {
	if model == "" {
		model = groqDefaultModel
	}
	return &Groq{
		baseURL: groqDefaultBaseURL,
		apiKey:  apiKey,
		model:   model,
		httpc:   httpc,
		logger:  logger,
	}
}

func (g *Groq) Name() string { return "groq" }

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqRequest struct {
	Model       string        `json:"model"`
	Messages    []groqMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
	MaxTokens   int           `json:"max_tokens"`
}

type groqResponse struct {
	Choices []struct {
		Message groqMessage `json:"message"`
	} `json:"choices"`
}

func (g *Groq) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(groqRequest{
		Model:       g.model,
		Messages:    []groqMessage{{Role: "user", Content: prompt}},
		Temperature: genTemperature,
		TopP:        genTopP,
		MaxTokens:   genMaxOutputTokens,
	})
	if err != nil {
		return "", fmt.Errorf("encoding groq request: %w", err)
	}
	url := g.baseURL + "/v1/chat/completions"

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
			case <-time.After(backoff(attempt - 1)):
			}
		}
		text, err := g.generateOnce(ctx, url, body)
		if err == nil {
			return text, nil
		}
		lastErr = err
		var re retryableError
		if !errors.As(err, &re) {
			return "", err
		}
		g.logger.Warn("groq attempt failed",
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))
	}
	return "", fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

func (g *Groq) generateOnce(ctx context.Context, url string, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building groq request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	res, err := g.httpc.Do(req)
	if err != nil {
		return "", retryableError{fmt.Errorf("groq request: %w", err)}
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= 500 {
		io.Copy(io.Discard, res.Body)
		return "", retryableError{fmt.Errorf("groq HTTP %d", res.StatusCode)}
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: groq HTTP %d", ErrUnavailable, res.StatusCode)
	}

	var parsed groqResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: decoding groq response: %v", ErrUnavailable, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: groq returned no choices", ErrUnavailable)
	}
	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: groq returned empty text", ErrUnavailable)
	}
	return text, nil
}
