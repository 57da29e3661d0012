package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"docuchat/internal/llm"
)

// DefaultBaseURL is used when the configuration carries no base URL.
const DefaultBaseURL = "http://localhost:11434"

// Provider calls a self-hosted Ollama server
type Provider struct {
	Client *http.Client
}

var _ llm.Provider = &Provider{}

func NewProvider() *Provider {
	return &Provider{
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []llm.Message `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  *chatOptions  `json:"options,omitempty"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type chatResponse struct {
	Message   llm.Message `json:"message"`
	EvalCount int         `json:"eval_count"`
}

// Complete sends the message list verbatim, non-streaming. Token count is
// read from eval_count when the server reports it.
func (p *Provider) Complete(ctx context.Context, messages []llm.Message, cfg llm.Config) (*llm.CompletionResult, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	payload := chatRequest{
		Model:    cfg.Model,
		Messages: messages,
		Stream:   false,
		Options: &chatOptions{
			Temperature: llm.DefaultTemperature,
			NumPredict:  llm.DefaultMaxTokens,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", baseURL+"/api/chat", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama API error: %s", resp.Status)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return &llm.CompletionResult{
		Content:    parsed.Message.Content,
		TokensUsed: parsed.EvalCount,
	}, nil
}
