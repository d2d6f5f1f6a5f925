package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultSystemPrompt = "You are a friendly assistant on a personal portfolio site. Answer briefly."

// UpstreamConfig configures an OpenAI-compatible chat completions endpoint.
type UpstreamConfig struct {
	BaseURL      string // e.g. https://api.deepseek.com/v1
	APIKey       string
	Model        string
	SystemPrompt string
}

// Upstream forwards messages to a chat completions API.
type Upstream struct {
	cfg        UpstreamConfig
	httpClient *http.Client
}

// NewUpstream creates an upstream responder.
func NewUpstream(cfg UpstreamConfig) (*Upstream, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("upstream base URL is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("upstream model is required")
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = defaultSystemPrompt
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Upstream{cfg: cfg, httpClient: &http.Client{}}, nil
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type completionResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

// Reply implements Responder.
func (u *Upstream) Reply(ctx context.Context, text string) (reply string, err error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyMessage
	}

	body, err := json.Marshal(completionRequest{
		Model: u.cfg.Model,
		Messages: []message{
			{Role: "system", Content: u.cfg.SystemPrompt},
			{Role: "user", Content: text},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if u.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+u.cfg.APIKey)
	}

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing body: %w", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var result completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("upstream returned no reply")
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}
