package google

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

const defaultAPIBase = "https://generativelanguage.googleapis.com/v1"

// Role names in the Gemini contents list.
const (
	roleUser  = "user"
	roleModel = "model"
)

// Provider calls the Google Gemini generateContent API
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

type contentPart struct {
	Text string `json:"text"`
}

type content struct {
	Parts []contentPart `json:"parts"`
	Role  string        `json:"role"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Complete translates the message list into Gemini's contents shape. The
// backend has no system-role concept in this chat form, so the system
// message is prepended to the final user message. Prior turns become
// history with assistant renamed to "model". Gemini does not report usable
// token counts in the same call, so TokensUsed is always zero.
func (p *Provider) Complete(ctx context.Context, messages []llm.Message, cfg llm.Config) (*llm.CompletionResult, error) {
	var system string
	turns := make([]llm.Message, 0, len(messages))
	for _, msg := range messages {
		if msg.Role == llm.RoleSystem {
			system = msg.Content
			continue
		}
		turns = append(turns, msg)
	}
	if len(turns) == 0 {
		return nil, fmt.Errorf("google error: no user message to send")
	}

	contents := make([]content, 0, len(turns))
	for _, msg := range turns[:len(turns)-1] {
		role := roleUser
		if msg.Role == llm.RoleAssistant {
			role = roleModel
		}
		contents = append(contents, content{
			Parts: []contentPart{{Text: msg.Content}},
			Role:  role,
		})
	}

	prompt := turns[len(turns)-1].Content
	if system != "" {
		prompt = system + "\n\n" + prompt
	}
	contents = append(contents, content{
		Parts: []contentPart{{Text: prompt}},
		Role:  roleUser,
	})

	payload := generateRequest{
		Contents: contents,
		GenerationConfig: &generationConfig{
			Temperature:     llm.DefaultTemperature,
			MaxOutputTokens: llm.DefaultMaxTokens,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", p.APIBase, cfg.Model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", cfg.APIKey)

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
		return nil, fmt.Errorf("google error: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("google error: response contained no candidates")
	}

	return &llm.CompletionResult{
		Content:    parsed.Candidates[0].Content.Parts[0].Text,
		TokensUsed: 0,
	}, nil
}
