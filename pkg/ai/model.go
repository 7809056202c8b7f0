package ai

import (
	"context"
	"fmt"
	"strings"
)

type VisionRequest struct {
	System    string
	Prompt    string
	Image     []byte
	MimeType  string
	MaxTokens int
}

type TextRequest struct {
	System      string
	Prompt      string
	Temperature float32
	MaxTokens   int
	// JSONObject asks the provider for a single JSON object reply.
	JSONObject bool
}

// Model is a hosted LLM that returns raw text. Only this package reads that
// text.
type Model interface {
	DescribeImage(ctx context.Context, req VisionRequest) (string, error)
	Complete(ctx context.Context, req TextRequest) (string, error)
	Close() error
}

type ModelConfig struct {
	Provider     string
	OpenAIAPIKey string
	OpenAIModel  string
	GeminiAPIKey string
	GeminiModel  string
}

// NewModel picks the provider named in cfg.
func NewModel(ctx context.Context, cfg ModelConfig) (Model, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai", "":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is not set")
		}
		return NewOpenAIModel(cfg.OpenAIAPIKey, cfg.OpenAIModel), nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is not set")
		}
		return NewGeminiModel(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}
