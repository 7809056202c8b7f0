package ai_fx

import (
	"context"
	"log"

	"go.uber.org/fx"
	"tastepalette/internal/config"
	"tastepalette/pkg/ai"
)

var Module = fx.Provide(
	provideModel,
	provideAnalyzer)

func provideModel(lc fx.Lifecycle, cfg *config.Config) (ai.Model, error) {
	model, err := ai.NewModel(context.Background(), ai.ModelConfig{
		Provider:     cfg.AIProvider,
		OpenAIAPIKey: cfg.OpenAIAPIKey,
		OpenAIModel:  cfg.OpenAIModel,
		GeminiAPIKey: cfg.GeminiAPIKey,
		GeminiModel:  cfg.GeminiModel,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("Menu analysis using %s", cfg.AIProvider)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return model.Close()
		},
	})
	return model, nil
}

func provideAnalyzer(model ai.Model, cfg *config.Config) ai.AnalyzerInterface {
	return ai.NewAnalyzer(model, cfg.AITimeout)
}
