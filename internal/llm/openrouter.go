// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/prospect-engine/pkg/types"
)

// openrouterAPIBase is the chat completions endpoint. Package-level var
// for test substitution.
var openrouterAPIBase = "https://openrouter.ai/api/v1/chat/completions"

const openrouterDefaultModel = "meta-llama/llama-3.3-8b-instruct:free"

// openRouter calls the OpenRouter chat completions API, which follows the
// OpenAI wire format.
type openRouter struct {
	apiKey string
	model  string
	client *http.Client
}

func newOpenRouter(cfg types.AIConfig) *openRouter {
	model := cfg.Model
	if model == "" {
		model = openrouterDefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &openRouter{
		apiKey: cfg.APIKey,
		model:  model,
		client: &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends the prompt pair as a chat completion and returns the
// first choice's content.
func (o *openRouter) Generate(ctx context.Context, system, user string) (string, error) {
	if o.apiKey == "" {
		return "", errors.New("openrouter: API key is missing")
	}

	var messages []chatMessage
	if system != "" {
		messages = append(messages, chatMessage{Role: "system", Content: system})
	}
	messages = append(messages, chatMessage{Role: "user", Content: user})

	body, err := json.Marshal(chatRequest{
		Model:       o.model,
		Messages:    messages,
		Temperature: defaultTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("encoding openrouter request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openrouterAPIBase, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building openrouter request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling openrouter: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("openrouter http %d: %s", resp.StatusCode, bytes.TrimSpace(data))
	}

	var payload chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decoding openrouter response: %w", err)
	}
	if payload.Error != nil {
		return "", fmt.Errorf("openrouter: %s", payload.Error.Message)
	}
	if len(payload.Choices) == 0 {
		return "", errors.New("openrouter returned no choices")
	}

	text := payload.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", errors.New("openrouter returned an empty completion")
	}
	return text, nil
}
