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
	geminiDefaultBaseURL = "https://generativelanguage.googleapis.com"
	geminiDefaultModel   = "gemini-2.0-flash"
)

// Gemini calls the Google generative language REST API.
type Gemini struct {
	baseURL string
	apiKey  string
	model   string
	httpc   *http.Client
	logger  *slog.Logger
}

func NewGemini(apiKey, model string, httpc *http.Client, logger *slog.Logger) *Gemini {
	if model == "" {
		model = geminiDefaultModel
	}
	return &Gemini{
		baseURL: geminiDefaultBaseURL,
		apiKey:  apiKey,
		model:   model,
		httpc:   httpc,
		logger:  logger,
	}
}

func (g *Gemini) Name() string { return "gemini" }

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     genTemperature,
			TopP:            genTopP,
			MaxOutputTokens: genMaxOutputTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("encoding gemini request: %w", err)
	}
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)

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
		g.logger.Warn("gemini attempt failed",
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))
	}
	return "", fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

func (g *Gemini) generateOnce(ctx context.Context, url string, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := g.httpc.Do(req)
	if err != nil {
		return "", retryableError{fmt.Errorf("gemini request: %w", err)}
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= 500 {
		io.Copy(io.Discard, res.Body)
		return "", retryableError{fmt.Errorf("gemini HTTP %d", res.StatusCode)}
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: gemini HTTP %d", ErrUnavailable, res.StatusCode)
	}

	var parsed geminiResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: decoding gemini response: %v", ErrUnavailable, err)
	}
	if len(parsed.Candidates) == 0 {
		return "", fmt.Errorf("%w: gemini returned no candidates", ErrUnavailable)
	}
	var sb strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("%w: gemini returned empty text", ErrUnavailable)
	}
	return text, nil
}
