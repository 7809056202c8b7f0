package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"tastepalette/internal/models/db_models"
)

type VisitRepository interface {
	Create(ctx context.Context, visit *db_models.RestaurantVisit) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.RestaurantVisit, error)
}

type visitRepository struct {
	db *gorm.DB
}

func NewVisitRepository(db *gorm.DB) VisitRepository {
	return &visitRepository{db: db}
}

func (v *visitRepository) Create(ctx context.Context, visit *db_models.RestaurantVisit) error {
	return v.db.WithContext(ctx).Create(visit).Error
}

func (v *visitRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.RestaurantVisit, error) {
	var visits []db_models.RestaurantVisit
	err := v.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("visit_date DESC").
		Find(&visits).Error
	return visits, err
}
