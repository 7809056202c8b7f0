package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"tastepalette/internal/models/db_models"
)

type UserRepository interface {
	Create(ctx context.Context, user *db_models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.User, error)
	FindByEmail(ctx context.Context, email string) (*db_models.User, error)
	FindByVerificationToken(ctx context.Context, token string) (*db_models.User, error)
	FindByResetToken(ctx context.Context, token string) (*db_models.User, error)

	MarkVerified(ctx context.Context, id uuid.UUID, at time.Time) error
	SetVerificationToken(ctx context.Context, id uuid.UUID, token string) error
	SetResetToken(ctx context.Context, id uuid.UUID, token string, expiry time.Time) error
	ResetPassword(ctx context.Context, id uuid.UUID, token, passwordHash string) (bool, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name string, passwordHash *string) error

	CompleteOnboarding(ctx context.Context, id uuid.UUID, status db_models.OnboardingStatus, grant int) (bool, error)
	ConsumeFreeScan(ctx context.Context, id uuid.UUID) (bool, error)
	RefundFreeScan(ctx context.Context, id uuid.UUID) error
	ConsumeWeeklyUpload(ctx context.Context, id uuid.UUID, plan db_models.Plan, limit int) (bool, error)
	RefundWeeklyUpload(ctx context.Context, id uuid.UUID) error

	ListStaleUploadCounters(ctx context.Context, cutoff time.Time, limit int) ([]db_models.User, error)
	ResetUploadCounters(ctx context.Context, ids []uuid.UUID, cutoff, now time.Time) (int64, error)
	ListVerifiedAfter(ctx context.Context, after uuid.UUID, limit int) ([]db_models.User, error)

	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Create(ctx context.Context, user *db_models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *userRepository) FindByVerificationToken(ctx context.Context, token string) (*db_models.User, error) {
	return r.findOne(ctx, "verification_token = ?", token)
}

func (r *userRepository) FindByResetToken(ctx context.Context, token string) (*db_models.User, error) {
	return r.findOne(ctx, "reset_token = ?", token)
}

func (r *userRepository) findOne(ctx context.Context, query string, args ...interface{}) (*db_models.User, error) {
	var user db_models.User
	err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) MarkVerified(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&db_models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"email_verified":     at,
			"verification_token": nil,
			"updated_at":         time.Now().Unix(),
		}).Error
}

func (r *userRepository) SetVerificationToken(ctx context.Context, id uuid.UUID, token string) error {
	return r.db.WithContext(ctx).Model(&db_models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"verification_token": token,
			"updated_at":         time.Now().Unix(),
		}).Error
}

func (r *userRepository) SetResetToken(ctx context.Context, id uuid.UUID, token string, expiry time.Time) error {
	return r.db.WithContext(ctx).Model(&db_models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reset_token":        token,
			"reset_token_expiry": expiry,
			"updated_at":         time.Now().Unix(),
		}).Error
}

// ResetPassword stores the new hash, burns the reset token and signs the
// user out everywhere. It reports false when token is no longer the user's
// current reset token.
func (r *userRepository) ResetPassword(ctx context.Context, id uuid.UUID, token, passwordHash string) (bool, error) {
	applied := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&db_models.User{}).
			Where("id = ? AND reset_token = ?", id, token).
			Updates(map[string]interface{}{
				"password_hash":      passwordHash,
				"reset_token":        nil,
				"reset_token_expiry": nil,
				"updated_at":         time.Now().Unix(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		applied = true
		return tx.Where("user_id = ?", id).Delete(&db_models.Session{}).Error
	})
	return applied, err
}

func (r *userRepository) UpdateProfile(ctx context.Context, id uuid.UUID, name string, passwordHash *string) error {
	fields := map[string]interface{}{
		"name":       name,
		"updated_at": time.Now().Unix(),
	}
	if passwordHash != nil {
		fields["password_hash"] = *passwordHash
	}
	return r.db.WithContext(ctx).Model(&db_models.User{}).Where("id = ?", id).Updates(fields).Error
}

// CompleteOnboarding moves a user out of NOT_STARTED and grants scans in one
// statement. It reports false when the user had already left NOT_STARTED.
func (r *userRepository) CompleteOnboarding(ctx context.Context, id uuid.UUID, status db_models.OnboardingStatus, grant int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&db_models.User{}).
		Where("id = ? AND onboarding_status = ?", id, db_models.OnboardingNotStarted).
		UpdateColumns(map[string]interface{}{
			"onboarding_status": status,
			"free_scan_count":   gorm.Expr("free_scan_count + ?", grant),
			"updated_at":        time.Now().Unix(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *userRepository) ConsumeFreeScan(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&db_models.User{}).
		Where("id = ? AND plan = ? AND free_scan_count > 0", id, db_models.PlanFree).
		UpdateColumn("free_scan_count", gorm.Expr("free_scan_count - 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *userRepository) RefundFreeScan(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&db_models.User{}).
		Where("id = ?", id).
		UpdateColumn("free_scan_count", gorm.Expr("free_scan_count + 1")).Error
}

// ConsumeWeeklyUpload increments the weekly counter while it is below limit.
// A negative limit means the plan is unlimited.
func (r *userRepository) ConsumeWeeklyUpload(ctx context.Context, id uuid.UUID, plan db_models.Plan, limit int) (bool, error) {
	q := r.db.WithContext(ctx).Model(&db_models.User{}).Where("id = ? AND plan = ?", id, plan)
	if limit >= 0 {
		q = q.Where("uploads_this_week < ?", limit)
	}
	res := q.UpdateColumn("uploads_this_week", gorm.Expr("uploads_this_week + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *userRepository) RefundWeeklyUpload(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&db_models.User{}).
		Where("id = ? AND uploads_this_week > 0", id).
		UpdateColumn("uploads_this_week", gorm.Expr("uploads_this_week - 1")).Error
}

func (r *userRepository) ListStaleUploadCounters(ctx context.Context, cutoff time.Time, limit int) ([]db_models.User, error) {
	var users []db_models.User
	err := r.db.WithContext(ctx).
		Select("id", "email", "uploads_this_week", "last_upload_reset").
		Where("last_upload_reset < ? AND uploads_this_week > 0", cutoff).
		Order("id").
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *userRepository) ResetUploadCounters(ctx context.Context, ids []uuid.UUID, cutoff, now time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Model(&db_models.User{}).
		Where("id IN ? AND last_upload_reset < ?", ids, cutoff).
		UpdateColumns(map[string]interface{}{
			"uploads_this_week": 0,
			"last_upload_reset": now,
		})
	return res.RowsAffected, res.Error
}

// ListVerifiedAfter pages through verified users by id.
func (r *userRepository) ListVerifiedAfter(ctx context.Context, after uuid.UUID, limit int) ([]db_models.User, error) {
	var users []db_models.User
	q := r.db.WithContext(ctx).
		Select("id", "email", "name").
		Where("email_verified IS NOT NULL")
	if after != uuid.Nil {
		q = q.Where("id > ?", after)
	}
	err := q.Order("id").Limit(limit).Find(&users).Error
	return users, err
}

// DeleteCascade removes the user and everything the user owns, or nothing.
func (r *userRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := []interface{}{
			&db_models.TasteProfile{},
			&db_models.MenuUpload{},
			&db_models.Rating{},
			&db_models.RestaurantVisit{},
			&db_models.Session{},
			&db_models.Account{},
		}
		for _, model := range owned {
			if err := tx.Where("user_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}

		res := tx.Where("id = ?", id).Delete(&db_models.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
