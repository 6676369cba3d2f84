package platform

import (
	"context"
	"log"

	"github.com/ai-visibility/backend/config"
	"github.com/ai-visibility/backend/visibility"
)

// Build constructs adapters for every platform with credentials. A
// platform without a valid key is excluded from checking, not retried;
// with no credentials at all the returned slice is empty and callers fall
// back to estimation.
func Build(ctx context.Context, cfg config.PlatformsConfig) []visibility.Platform {
	var platforms []visibility.Platform

	if cfg.Gemini.APIKey != "" {
		g, err := NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Printf("excluding gemini platform: %v", err)
		} else {
			platforms = append(platforms, g)
		}
	}

	if cfg.OpenAI.APIKey != "" {
		o, err := NewOpenAICompatible("chatgpt", cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, cfg.OpenAI.Model)
		if err != nil {
			log.Printf("excluding chatgpt platform: %v", err)
		} else {
			platforms = append(platforms, o)
		}
	}

	if cfg.Perplexity.APIKey != "" {
		p, err := NewOpenAICompatible("perplexity", cfg.Perplexity.BaseURL, cfg.Perplexity.APIKey, cfg.Perplexity.Model)
		if err != nil {
			log.Printf("excluding perplexity platform: %v", err)
		} else {
			platforms = append(platforms, p)
		}
	}

	return platforms
}
