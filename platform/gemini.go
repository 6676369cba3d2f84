package platform

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/ai-visibility/backend/visibility"
)

// Gemini asks Google's answer engine and maps its citation metadata onto
// the engine's structured citation list.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini platform adapter.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create client: %w", err)
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &Gemini{client: client, model: model}, nil
}

// ID implements visibility.Platform.
func (g *Gemini) ID() string { return "gemini" }

// Ask implements visibility.Platform.
func (g *Gemini) Ask(ctx context.Context, query string) (*visibility.Answer, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(0.1)

	resp, err := model.GenerateContent(ctx, genai.Text(query))
	if err != nil {
		return nil, fmt.Errorf("gemini: generate failed: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("gemini: no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini: no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("gemini: no text parts in response")
	}

	answer := &visibility.Answer{Text: strings.Join(parts, "")}
	if candidate.CitationMetadata != nil {
		for _, src := range candidate.CitationMetadata.CitationSources {
			if src.URI != nil && *src.URI != "" {
				answer.Citations = append(answer.Citations, visibility.Citation{URL: *src.URI})
			}
		}
	}
	return answer, nil
}

// Close releases the underlying client.
func (g *Gemini) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
