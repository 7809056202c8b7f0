package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"tastepalette/internal/models/db_models"
	"tastepalette/internal/repositories"
	"tastepalette/pkg/ai"
	"tastepalette/pkg/utils"
)

var spiceLevels = map[string]bool{
	db_models.SpiceNone:    true,
	db_models.SpiceMild:    true,
	db_models.SpiceMedium:  true,
	db_models.SpiceHot:     true,
	db_models.SpiceVeryHot: true,
}

var tasteLevels = map[string]bool{
	db_models.TasteDislike: true,
	db_models.TasteNeutral: true,
	db_models.TasteLike:    true,
}

type TasteProfileServiceInterface interface {
	Get(ctx context.Context, userID uuid.UUID) (db_models.TasteProfileData, error)
	Save(ctx context.Context, userID uuid.UUID, data db_models.TasteProfileData) (db_models.TasteProfileData, error)
	AdjustFromRating(ctx context.Context, userID uuid.UUID, dish string, rating int) (db_models.TasteProfileData, error)
}

type TasteProfileService struct {
	profileRepo repositories.TasteProfileRepository
	analyzer    ai.AnalyzerInterface
}

func NewTasteProfileService(profileRepo repositories.TasteProfileRepository, analyzer ai.AnalyzerInterface) TasteProfileServiceInterface {
	return &TasteProfileService{
		profileRepo: profileRepo,
		analyzer:    analyzer,
	}
}

// Get returns the stored profile, or the default document when the user has
// not saved one yet.
func (t *TasteProfileService) Get(ctx context.Context, userID uuid.UUID) (db_models.TasteProfileData, error) {
	profile, err := t.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return db_models.TasteProfileData{}, utils.ErrDatabaseError
	}
	if profile == nil {
		return db_models.DefaultTasteProfile(), nil
	}
	return profile.Data(), nil
}

func (t *TasteProfileService) Save(ctx context.Context, userID uuid.UUID, data db_models.TasteProfileData) (db_models.TasteProfileData, error) {
	data = cleanProfile(data)
	if err := validateProfile(data); err != nil {
		return db_models.TasteProfileData{}, err
	}
	return t.store(ctx, userID, data)
}

// AdjustFromRating lets the model revise the profile after a rating. The
// stored profile only changes when the adjusted document is valid.
func (t *TasteProfileService) AdjustFromRating(ctx context.Context, userID uuid.UUID, dish string, rating int) (db_models.TasteProfileData, error) {
	dish = strings.TrimSpace(dish)
	if dish == "" {
		return db_models.TasteProfileData{}, fmt.Errorf("%w: dish is required", utils.ErrValidation)
	}
	if rating < 1 || rating > 5 {
		return db_models.TasteProfileData{}, fmt.Errorf("%w: rating must be between 1 and 5", utils.ErrValidation)
	}

	profile, err := t.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return db_models.TasteProfileData{}, utils.ErrDatabaseError
	}
	if profile == nil {
		return db_models.TasteProfileData{}, utils.ErrProfileNotFound
	}

	adjusted, err := t.analyzer.AdjustProfile(ctx, dish, rating, profile.Data())
	if err != nil {
		return db_models.TasteProfileData{}, err
	}

	adjusted = cleanProfile(adjusted)
	if err := validateProfile(adjusted); err != nil {
		log.Printf("Discarding profile adjustment for %s: %v", userID, err)
		return db_models.TasteProfileData{}, fmt.Errorf("%w: adjusted profile is invalid", utils.ErrModelResponse)
	}

	return t.store(ctx, userID, adjusted)
}

func (t *TasteProfileService) store(ctx context.Context, userID uuid.UUID, data db_models.TasteProfileData) (db_models.TasteProfileData, error) {
	profile := &db_models.TasteProfile{UserID: userID}
	profile.Apply(data)

	if err := t.profileRepo.Upsert(ctx, profile); err != nil {
		log.Printf("Error saving taste profile for %s: %v", userID, err)
		return db_models.TasteProfileData{}, utils.ErrDatabaseError
	}
	return profile.Data(), nil
}

func validateProfile(data db_models.TasteProfileData) error {
	if !spiceLevels[data.SpicePreference] {
		return fmt.Errorf("%w: spicePreference must be one of none, mild, medium, hot, very-hot", utils.ErrUnprocessable)
	}

	tastes := map[string]string{
		"sweet":  data.TastePreferences.Sweet,
		"sour":   data.TastePreferences.Sour,
		"bitter": data.TastePreferences.Bitter,
		"umami":  data.TastePreferences.Umami,
		"salty":  data.TastePreferences.Salty,
		"tangy":  data.TastePreferences.Tangy,
	}
	for name, level := range tastes {
		if !tasteLevels[level] {
			return fmt.Errorf("%w: tastePreferences.%s must be dislike, neutral or like", utils.ErrUnprocessable, name)
		}
	}
	return nil
}

// cleanProfile trims free text and drops blank list entries. Missing enum
// values fall back to the defaults.
func cleanProfile(data db_models.TasteProfileData) db_models.TasteProfileData {
	data.FavoriteDishes = compact(data.FavoriteDishes)
	data.DislikedIngredients = compact(data.DislikedIngredients)
	data.CuisinePreferences = compact(data.CuisinePreferences)
	data.Allergies = compact(data.Allergies)
	data.AdditionalNotes = strings.TrimSpace(data.AdditionalNotes)
	data.DietaryRestrictions.Other = strings.TrimSpace(data.DietaryRestrictions.Other)

	if data.SpicePreference == "" {
		data.SpicePreference = db_models.SpiceMedium
	}
	for _, level := range []*string{
		&data.TastePreferences.Sweet,
		&data.TastePreferences.Sour,
		&data.TastePreferences.Bitter,
		&data.TastePreferences.Umami,
		&data.TastePreferences.Salty,
		&data.TastePreferences.Tangy,
	} {
		if *level == "" {
			*level = db_models.TasteNeutral
		}
	}
	return data
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
