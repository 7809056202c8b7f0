package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"tastepalette/internal/models/db_models"
)

type TasteProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*db_models.TasteProfile, error)
	Upsert(ctx context.Context, profile *db_models.TasteProfile) error
}

type tasteProfileRepository struct {
	db *gorm.DB
}

func NewTasteProfileRepository(db *gorm.DB) TasteProfileRepository {
	return &tasteProfileRepository{db: db}
}

func (t *tasteProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*db_models.TasteProfile, error) {
	var profile db_models.TasteProfile
	err := t.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &profile, nil
}

// Upsert writes the whole document, keyed by user.
func (t *tasteProfileRepository) Upsert(ctx context.Context, profile *db_models.TasteProfile) error {
	return t.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"favorite_dishes",
			"disliked_ingredients",
			"dietary_restrictions",
			"spice_preference",
			"taste_preferences",
			"cuisine_preferences",
			"allergies",
			"additional_notes",
			"updated_at",
		}),
	}).Create(profile).Error
}
