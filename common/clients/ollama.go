package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Logger interface for client logging
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
}

// OllamaClient calls a local Ollama generation endpoint
type OllamaClient struct {
	client  *http.Client
	baseURL string
	model   string
	logger  Logger
}

// generateRequest is the Ollama /api/generate payload
type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

// generateResponse is the Ollama /api/generate reply
type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// NewOllamaClient creates a new Ollama client.
// The timeout is a hard cap on the whole generation call.
func NewOllamaClient(baseURL, model string, timeout time.Duration, logger Logger) *OllamaClient {
	return &OllamaClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
		logger:  logger,
	}
}

// Generate sends a prompt and returns the generated text.
// Options keep the context window and response length small so the model
// stays usable on low-memory machines.
func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	payload := generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Options: map[string]any{
			"num_ctx":     512, // Limit context window to save RAM
			"num_thread":  2,   // Limit threads to reduce RAM usage
			"num_predict": 100, // Limit response length
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("generation call failed", "error", err)
		return "", fmt.Errorf("generation call failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read generate response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("generation service returned error",
			"status_code", resp.StatusCode,
			"response", string(respBody))
		return "", fmt.Errorf("generation service returned status %d", resp.StatusCode)
	}

	var result generateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}

	c.logger.Debug("generation call completed", "model", result.Model)
	return strings.TrimSpace(result.Response), nil
}
