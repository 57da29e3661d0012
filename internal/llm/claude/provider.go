package claude

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

const (
	defaultAPIBase   = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
)

// Provider calls the Anthropic messages API
type Provider struct {
	APIBase string
	Client  *http.Client
}

var _ llm.Provider = &Provider{}

func NewProvider() *Provider {
	return &Provider{
		APIBase: defaultAPIBase,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type messagesRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	System    string        `json:"system,omitempty"`
	Messages  []llm.Message `json:"messages"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// Complete translates the message list into Anthropic's shape. The backend
// rejects a system role inside the turn list, so the system message is
// lifted into the top-level system field and every remaining non-assistant
// role is coerced to user.
func (p *Provider) Complete(ctx context.Context, messages []llm.Message, cfg llm.Config) (*llm.CompletionResult, error) {
	var system string
	turns := make([]llm.Message, 0, len(messages))
	for _, msg := range messages {
		if msg.Role == llm.RoleSystem {
			system = msg.Content
			continue
		}
		role := llm.RoleUser
		if msg.Role == llm.RoleAssistant {
			role = llm.RoleAssistant
		}
		turns = append(turns, llm.Message{Role: role, Content: msg.Content})
	}

	payload := messagesRequest{
		Model:     cfg.Model,
		MaxTokens: llm.DefaultMaxTokens,
		System:    system,
		Messages:  turns,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.APIBase+"/v1/messages", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", cfg.APIKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("claude error: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var parsed messagesResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, err
	}

	var content string
	if len(parsed.Content) > 0 && parsed.Content[0].Type == "text" {
		content = parsed.Content[0].Text
	}

	return &llm.CompletionResult{
		Content:    content,
		TokensUsed: parsed.Usage.InputTokens + parsed.Usage.OutputTokens,
	}, nil
}
