package services

import (
	"context"
	"fmt"
	"log"

	"tastepalette/internal/models/db_models"
	"tastepalette/internal/repositories"
	"tastepalette/pkg/utils"
)

const unlimitedUploads = -1

// weeklyUploadLimits holds the per-week allowance of the paid plans.
var weeklyUploadLimits = map[db_models.Plan]int{
	db_models.PlanBasic:    1,
	db_models.PlanStandard: 7,
	db_models.PlanPremium:  unlimitedUploads,
}

// QuotaServiceInterface gates menu scans by plan. Reserve takes one unit or
// fails with utils.ErrQuotaExceeded; Release gives a reserved unit back.
type QuotaServiceInterface interface {
	Reserve(ctx context.Context, user *db_models.User) error
	Release(ctx context.Context, user *db_models.User)
}

type QuotaService struct {
	userRepo repositories.UserRepository
}

func NewQuotaService(userRepo repositories.UserRepository) QuotaServiceInterface {
	return &QuotaService{
		userRepo: userRepo,
	}
}

func WeeklyUploadLimit(plan db_models.Plan) (int, bool) {
	limit, ok := weeklyUploadLimits[plan]
	return limit, ok
}

func (q *QuotaService) Reserve(ctx context.Context, user *db_models.User) error {
	var (
		ok  bool
		err error
	)

	switch user.Plan {
	case db_models.PlanFree, "":
		ok, err = q.userRepo.ConsumeFreeScan(ctx, user.ID)
	default:
		limit, known := WeeklyUploadLimit(user.Plan)
		if !known {
			return fmt.Errorf("%w: unknown plan %s", utils.ErrQuotaExceeded, user.Plan)
		}
		ok, err = q.userRepo.ConsumeWeeklyUpload(ctx, user.ID, user.Plan, limit)
	}

	if err != nil {
		log.Printf("Error reserving quota for user %s: %v", user.ID, err)
		return utils.ErrDatabaseError
	}
	if !ok {
		return quotaError(user.Plan)
	}
	return nil
}

func (q *QuotaService) Release(ctx context.Context, user *db_models.User) {
	var err error
	if user.Plan == db_models.PlanFree || user.Plan == "" {
		err = q.userRepo.RefundFreeScan(ctx, user.ID)
	} else {
		err = q.userRepo.RefundWeeklyUpload(ctx, user.ID)
	}
	if err != nil {
		log.Printf("Error refunding quota for user %s: %v", user.ID, err)
	}
}

func quotaError(plan db_models.Plan) error {
	switch plan {
	case db_models.PlanFree, "":
		return fmt.Errorf("%w: you have used all of your free scans. Upgrade your plan to keep scanning", utils.ErrQuotaExceeded)
	case db_models.PlanBasic:
		return fmt.Errorf("%w: the Basic plan includes 1 scan per week", utils.ErrQuotaExceeded)
	case db_models.PlanStandard:
		return fmt.Errorf("%w: the Standard plan includes 7 scans per week", utils.ErrQuotaExceeded)
	}
	return utils.ErrQuotaExceeded
}
