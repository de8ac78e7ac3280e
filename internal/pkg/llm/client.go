// internal/pkg/llm/client.go

// Package llm is a thin client for an OpenAI-compatible chat-completions
// endpoint. Callers must treat it as best-effort: configuration may be
// absent and calls may fail, and the draft generator degrades to local
// templates in both cases.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxResponseSize caps the response body read.
const maxResponseSize = 4 * 1024 * 1024

type Config struct {
	BaseURL string
	APIKey  string
	Model   string
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

// Enabled reports whether the remote path is configured at all.
func (c *Client) Enabled() bool {
	return c.cfg.APIKey != ""
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate sends one prompt and returns the generated text. An empty
// completion is an error so callers fall through to their fallback.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("llm client not configured")
	}

	requestID := uuid.New().String()

	body, err := json.Marshal(completionRequest{
		Model:    c.cfg.Model,
		Messages: []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal llm request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build llm request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("failed to read llm response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm endpoint returned status %d", resp.StatusCode)
	}

	var parsed completionResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode llm response: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("llm returned an empty completion")
	}

	c.logger.Debug("llm completion",
		zap.String("request_id", requestID),
		zap.String("model", c.cfg.Model),
		zap.Duration("latency", time.Since(start)),
	)

	return parsed.Choices[0].Message.Content, nil
}
