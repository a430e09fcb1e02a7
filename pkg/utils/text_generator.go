package utils

import (
	"context"
	"fmt"
	"strings"
)

// GenerateOptions tunes a single generation call.
type GenerateOptions struct {
	// JSON asks the provider for a JSON-only reply where it supports it.
	JSON        bool
	Temperature float32
	MaxTokens   int32
}

// TextGenerator is the generative-text provider contract: prompt in, free-form text out.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
	Name() string
}

// NewTextGenerator picks a generator implementation by provider name.
func NewTextGenerator(ctx context.Context, provider, apiKey, model string) (TextGenerator, error) {
	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAIGenerator(apiKey, model), nil
	case "gemini":
		return NewGeminiGenerator(ctx, apiKey, model)
	default:
		return nil, fmt.Errorf("unsupported generative provider: %s. Use 'openai' or 'gemini'", provider)
	}
}
