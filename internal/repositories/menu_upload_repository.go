package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"tastepalette/internal/models/db_models"
)

type MenuUploadRepository interface {
	Create(ctx context.Context, upload *db_models.MenuUpload) error
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*db_models.MenuUpload, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.MenuUpload, error)
	DeleteForUser(ctx context.Context, id, userID uuid.UUID) (bool, error)
	SaveRatings(ctx context.Context, upload *db_models.MenuUpload, ratings map[string]int, feedback string) error
}

type menuUploadRepository struct {
	db *gorm.DB
}

func NewMenuUploadRepository(db *gorm.DB) MenuUploadRepository {
	return &menuUploadRepository{db: db}
}

func (m *menuUploadRepository) Create(ctx context.Context, upload *db_models.MenuUpload) error {
	return m.db.WithContext(ctx).Create(upload).Error
}

func (m *menuUploadRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*db_models.MenuUpload, error) {
	var upload db_models.MenuUpload
	err := m.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&upload).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &upload, nil
}

func (m *menuUploadRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.MenuUpload, error) {
	var uploads []db_models.MenuUpload
	err := m.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&uploads).Error
	return uploads, err
}

func (m *menuUploadRepository) DeleteForUser(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	var deleted bool
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&db_models.MenuUpload{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		if !deleted {
			return nil
		}
		return tx.Where("menu_upload_id = ?", id).Delete(&db_models.Rating{}).Error
	})
	return deleted, err
}

// SaveRatings stores the ratings on the upload and replaces its Rating rows
// in the same transaction.
func (m *menuUploadRepository) SaveRatings(ctx context.Context, upload *db_models.MenuUpload, ratings map[string]int, feedback string) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&db_models.MenuUpload{}).
			Where("id = ?", upload.ID).
			Updates(map[string]interface{}{
				"ratings":    datatypes.NewJSONType(ratings),
				"feedback":   feedback,
				"updated_at": time.Now().Unix(),
			}).Error
		if err != nil {
			return err
		}

		if err := tx.Where("menu_upload_id = ?", upload.ID).Delete(&db_models.Rating{}).Error; err != nil {
			return err
		}

		rows := make([]db_models.Rating, 0, len(ratings))
		for dish, score := range ratings {
			rows = append(rows, db_models.Rating{
				UserID:       upload.UserID,
				MenuUploadID: &upload.ID,
				DishName:     dish,
				Score:        score,
			})
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}
