package ai

import (
	"context"
	"fmt"
	"log"
	"time"

	"tastepalette/internal/models/db_models"
	"tastepalette/pkg/utils"
)

const (
	scanMaxTokens      = 4096
	recommendMaxTokens = 2048
	adjustMaxTokens    = 500
)

// AnalyzerInterface is the menu pipeline's view of the models. Every method
// returns typed data or an error wrapping utils.ErrModelResponse.
type AnalyzerInterface interface {
	ScanMenu(ctx context.Context, image []byte, mimeType string) ([]db_models.MenuItem, error)
	Recommend(ctx context.Context, items []db_models.MenuItem, profile db_models.TasteProfileData, mood string) ([]db_models.Recommendation, error)
	AdjustProfile(ctx context.Context, dish string, rating int, profile db_models.TasteProfileData) (db_models.TasteProfileData, error)
}

type Analyzer struct {
	model   Model
	timeout time.Duration
}

func NewAnalyzer(model Model, timeout time.Duration) AnalyzerInterface {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Analyzer{
		model:   model,
		timeout: timeout,
	}
}

func (a *Analyzer) ScanMenu(ctx context.Context, image []byte, mimeType string) ([]db_models.MenuItem, error) {
	if err := ValidateImage(image, mimeType); err != nil {
		return nil, err
	}

	prepared, preparedType := PrepareImage(image, mimeType)

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	startTime := time.Now()
	raw, err := a.model.DescribeImage(ctx, VisionRequest{
		System:    menuScanSystemPrompt,
		Prompt:    menuScanUserPrompt,
		Image:     prepared,
		MimeType:  preparedType,
		MaxTokens: scanMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: menu scan call failed: %v", utils.ErrModelResponse, err)
	}
	log.Printf("Menu scan took %s", time.Since(startTime))

	return DecodeMenuItems(raw)
}

func (a *Analyzer) Recommend(ctx context.Context, items []db_models.MenuItem, profile db_models.TasteProfileData, mood string) ([]db_models.Recommendation, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	raw, err := a.model.Complete(ctx, TextRequest{
		System:      recommendationSystemPrompt,
		Prompt:      buildRecommendationPrompt(items, profile, mood),
		Temperature: 0.7,
		MaxTokens:   recommendMaxTokens,
		JSONObject:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: recommendation call failed: %v", utils.ErrModelResponse, err)
	}

	return DecodeRecommendations(raw)
}

// AdjustProfile asks the model which fields to change after a rating and
// returns the merged profile. The caller decides whether to store it.
func (a *Analyzer) AdjustProfile(ctx context.Context, dish string, rating int, profile db_models.TasteProfileData) (db_models.TasteProfileData, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	raw, err := a.model.Complete(ctx, TextRequest{
		System:      profileAdjustSystemPrompt,
		Prompt:      buildAdjustPrompt(dish, rating, profile),
		Temperature: 0.3,
		MaxTokens:   adjustMaxTokens,
		JSONObject:  true,
	})
	if err != nil {
		return profile, fmt.Errorf("%w: profile adjustment call failed: %v", utils.ErrModelResponse, err)
	}

	patch, err := DecodeProfilePatch(raw)
	if err != nil {
		return profile, err
	}
	return ApplyProfilePatch(profile, patch)
}
