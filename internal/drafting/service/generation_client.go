package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/allisson/replydesk/internal/errors"
)

const defaultGenerationModel = "gpt-4.1-mini"

// GenerationConfig carries endpoint, credential and timeout settings for the
// generation collaborator client.
type GenerationConfig struct {
	URL     string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// chatRequest is the chat-completions request body. Every prompt is sent as
// a single user message.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// GenerationClient produces raw draft text for a prompt.
type GenerationClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// generationClient implements GenerationClient against a chat-completions
// style HTTP API.
type generationClient struct {
	config     GenerationConfig
	httpClient *http.Client
	logger     *slog.Logger
}

// Generate sends the prompt as a single user message and returns the first
// choice's content, trimmed.
func (g *generationClient) Generate(ctx context.Context, prompt string) (string, error) {
	if g.config.URL == "" {
		return "", apperrors.Wrap(apperrors.ErrConfiguration, "generation endpoint is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	payload, err := json.Marshal(&chatRequest{
		Model:    g.config.Model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", apperrors.Wrap(err, "failed to marshal generation payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.config.URL, bytes.NewReader(payload))
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrUpstream, "failed to create generation request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.config.APIKey)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrUpstream, "generation request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrUpstream, "failed to read generation response: %v", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", apperrors.Wrapf(
			apperrors.ErrUpstreamAuth,
			"generation returned status %d: %s",
			resp.StatusCode,
			string(body),
		)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", apperrors.Wrapf(
			apperrors.ErrUpstream,
			"generation returned status %d: %s",
			resp.StatusCode,
			string(body),
		)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", apperrors.Wrapf(apperrors.ErrUpstream, "failed to decode generation response: %v", err)
	}
	if len(parsed.Choices) == 0 {
		return "", apperrors.Wrap(apperrors.ErrUpstream, "generation response contained no choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	g.logger.Debug("draft generated",
		slog.Int("prompt_length", len(prompt)),
		slog.Int("draft_length", len(content)),
	)

	return content, nil
}

// NewGenerationClient creates a new generation collaborator client.
func NewGenerationClient(config GenerationConfig, logger *slog.Logger) GenerationClient {
	if config.Model == "" {
		config.Model = defaultGenerationModel
	}
	if config.Timeout <= 0 {
		config.Timeout = 60 * time.Second
	}

	return &generationClient{
		config:     config,
		httpClient: &http.Client{},
		logger:     logger,
	}
}
