package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ai-visibility/backend/visibility"
)

// OpenAICompatible talks to any answer engine exposing the
// chat-completions wire format (hosted OpenAI, Perplexity-style engines,
// self-hosted gateways). Citations are taken from the response when the
// provider returns them; otherwise detectors fall back to the answer text.
type OpenAICompatible struct {
	id      string
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewOpenAICompatible creates an adapter for a chat-completions endpoint.
func NewOpenAICompatible(id, baseURL, apiKey, model string) (*OpenAICompatible, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s: API key is required", id)
	}
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &OpenAICompatible{
		id:      id,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}, nil
}

// ID implements visibility.Platform.
func (o *OpenAICompatible) ID() string { return o.id }

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
	Citations []string `json:"citations,omitempty"`
}

// Ask implements visibility.Platform.
func (o *OpenAICompatible) Ask(ctx context.Context, query string) (*visibility.Answer, error) {
	body, err := json.Marshal(chatRequest{
		Model:    o.model,
		Messages: []chatMessage{{Role: "user", Content: query}},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: encode request: %w", o.id, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", o.id, err)
	}
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", o.id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%s: unexpected status %d: %s", o.id, resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", o.id, err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("%s: empty response", o.id)
	}

	answer := &visibility.Answer{Text: parsed.Choices[0].Message.Content}
	for _, c := range parsed.Citations {
		if c != "" {
			answer.Citations = append(answer.Citations, visibility.Citation{URL: c})
		}
	}
	return answer, nil
}
