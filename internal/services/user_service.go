package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"tastepalette/internal/models/db_models"
	"tastepalette/internal/models/request_models"
	"tastepalette/internal/models/response_models"
	"tastepalette/internal/repositories"
	"tastepalette/pkg/utils"
)

// Scans granted when a user leaves onboarding.
const (
	onboardingCompletedGrant = 2
	onboardingSkippedGrant   = 1
)

type UserServiceInterface interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response_models.UserResponse, error)
	OnboardingStatus(ctx context.Context, userID uuid.UUID) (*response_models.OnboardingStatusResponse, error)
	UpdateOnboarding(ctx context.Context, userID uuid.UUID, status db_models.OnboardingStatus) (*response_models.OnboardingStatusResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, request request_models.UpdateProfileRequest) (*response_models.UserResponse, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID, reason string) error
}

type UserService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserServiceInterface {
	return &UserService{
		userRepo: userRepo,
	}
}

func (u *UserService) load(ctx context.Context, userID uuid.UUID) (*db_models.User, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	return user, nil
}

func (u *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*response_models.UserResponse, error) {
	user, err := u.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := response_models.NewUserResponse(user)
	return &resp, nil
}

func (u *UserService) OnboardingStatus(ctx context.Context, userID uuid.UUID) (*response_models.OnboardingStatusResponse, error) {
	user, err := u.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return onboardingResponse(user), nil
}

// UpdateOnboarding grants free scans exactly once. Calls after the user has
// left NOT_STARTED return the current state unchanged.
func (u *UserService) UpdateOnboarding(ctx context.Context, userID uuid.UUID, status db_models.OnboardingStatus) (*response_models.OnboardingStatusResponse, error) {
	var grant int
	switch status {
	case db_models.OnboardingCompleted:
		grant = onboardingCompletedGrant
	case db_models.OnboardingSkipped:
		grant = onboardingSkippedGrant
	default:
		return nil, fmt.Errorf("%w: invalid onboarding status", utils.ErrValidation)
	}

	applied, err := u.userRepo.CompleteOnboarding(ctx, userID, status, grant)
	if err != nil {
		log.Printf("Error updating onboarding for %s: %v", userID, err)
		return nil, utils.ErrDatabaseError
	}
	if applied {
		log.Printf("User %s finished onboarding as %s, granted %d scans", userID, status, grant)
	}

	user, err := u.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return onboardingResponse(user), nil
}

func (u *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, request request_models.UpdateProfileRequest) (*response_models.UserResponse, error) {
	user, err := u.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(request.Name)
	if len(name) < 2 {
		return nil, fmt.Errorf("%w: name must be at least 2 characters", utils.ErrUnprocessable)
	}

	var newHash *string
	if request.NewPassword != "" {
		if request.CurrentPassword == "" {
			return nil, fmt.Errorf("%w: current password is required to set a new password", utils.ErrValidation)
		}
		if err := utils.ComparePasswords(user.PasswordHash, request.CurrentPassword); err != nil {
			return nil, fmt.Errorf("%w: current password is incorrect", utils.ErrValidation)
		}
		hashed, err := utils.HashPassword(request.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		newHash = &hashed
	}

	if err := u.userRepo.UpdateProfile(ctx, userID, name, newHash); err != nil {
		return nil, utils.ErrDatabaseError
	}

	user.Name = name
	resp := response_models.NewUserResponse(user)
	return &resp, nil
}

func (u *UserService) DeleteAccount(ctx context.Context, userID uuid.UUID, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fmt.Errorf("%w: a reason for deleting the account is required", utils.ErrValidation)
	}

	log.Printf("Deleting account %s, reason: %q", userID, reason)

	if err := u.userRepo.DeleteCascade(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrUserNotFound
		}
		log.Printf("Error deleting account %s: %v", userID, err)
		return utils.ErrDatabaseError
	}
	return nil
}

func onboardingResponse(user *db_models.User) *response_models.OnboardingStatusResponse {
	return &response_models.OnboardingStatusResponse{
		OnboardingStatus: string(user.OnboardingStatus),
		FreeScanCount:    user.FreeScanCount,
		EmailVerified:    user.IsVerified(),
	}
}
