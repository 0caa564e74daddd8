// Package ollama is a minimal hand-rolled client for a local Ollama daemon:
// a chat call with forced JSON output and a cheap reachability probe.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultHost        = "http://localhost:11434"
	defaultModel       = "mistral-small3.2:latest"
	defaultTemperature = 0.7
	defaultTopP        = 0.9
	defaultTimeout     = 45 * time.Second
	pingTimeout        = 5 * time.Second
)

type Config struct {
	Host        string
	Model       string
	Temperature float64
	TopP        float64
	Timeout     time.Duration
}

// Message is one entry of the ordered role/content list sent to the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Client struct {
	host        string
	httpClient  *http.Client
	model       string
	temperature float64
	topP        float64
}

type chatRequest struct {
	Model    string      `json:"model"`
	Messages []Message   `json:"messages"`
	Stream   bool        `json:"stream"`
	Format   string      `json:"format"`
	Options  chatOptions `json:"options"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
}

type chatResponse struct {
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Error string `json:"error,omitempty"`
}

func NewClient(cfg Config) *Client {
	host := cfg.Host
	if host == "" {
		host = defaultHost
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}

	topP := cfg.TopP
	if topP == 0 {
		topP = defaultTopP
	}

	return &Client{
		host:        host,
		httpClient:  &http.Client{Timeout: timeout},
		model:       model,
		temperature: temperature,
		topP:        topP,
	}
}

func (c *Client) Model() string {
	return c.model
}

// Chat sends the messages to /api/chat with format "json" so the model is
// forced toward machine-parseable output, and returns the raw content of the
// reply. The call is bounded by the client timeout; a timeout surfaces as an
// ordinary request error.
func (c *Client) Chat(ctx context.Context, messages []Message) (string, error) {
	payload := chatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   false,
		Format:   "json",
		Options: chatOptions{
			Temperature: c.temperature,
			TopP:        c.topP,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("ollama error: status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if parsed.Error != "" {
		return "", fmt.Errorf("ollama error: %s", parsed.Error)
	}

	return parsed.Message.Content, nil
}

// Ping checks whether the daemon answers /api/tags within a short bound.
func (c *Client) Ping(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+"/api/tags", nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
