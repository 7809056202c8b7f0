package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"tastepalette/internal/models/db_models"
)

type SessionRepository interface {
	Create(ctx context.Context, session *db_models.Session) error
	FindByTokenID(ctx context.Context, tokenID string) (*db_models.Session, error)
	DeleteByTokenID(ctx context.Context, tokenID string) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (s *sessionRepository) Create(ctx context.Context, session *db_models.Session) error {
	return s.db.WithContext(ctx).Create(session).Error
}

func (s *sessionRepository) FindByTokenID(ctx context.Context, tokenID string) (*db_models.Session, error) {
	var session db_models.Session
	err := s.db.WithContext(ctx).First(&session, "token_id = ?", tokenID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &session, nil
}

func (s *sessionRepository) DeleteByTokenID(ctx context.Context, tokenID string) error {
	return s.db.WithContext(ctx).Where("token_id = ?", tokenID).Delete(&db_models.Session{}).Error
}

func (s *sessionRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&db_models.Session{}).Error
}
