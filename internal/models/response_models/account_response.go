package response_models

import (
	"tastepalette/internal/models/db_models"
	"tastepalette/pkg/utils"
)

type UserResponse struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	EmailVerified    bool   `json:"emailVerified"`
	Plan             string `json:"plan"`
	FreeScanCount    int    `json:"freeScanCount"`
	UploadsThisWeek  int    `json:"uploadsThisWeek"`
	OnboardingStatus string `json:"onboardingStatus"`
	CreatedAt        string `json:"createdAt"`
}

func NewUserResponse(u *db_models.User) UserResponse {
	return UserResponse{
		ID:               u.ID.String(),
		Email:            u.Email,
		Name:             u.Name,
		EmailVerified:    u.IsVerified(),
		Plan:             string(u.Plan),
		FreeScanCount:    u.FreeScanCount,
		UploadsThisWeek:  u.UploadsThisWeek,
		OnboardingStatus: string(u.OnboardingStatus),
		CreatedAt:        utils.FormatUnixRFC3339(u.CreatedAt),
	}
}

type AccountLoginResponse struct {
	Token            string       `json:"token"`
	ExpiresAt        string       `json:"expiresAt"`
	OnboardingStatus string       `json:"onboardingStatus"`
	User             UserResponse `json:"user"`
}

type OnboardingStatusResponse struct {
	OnboardingStatus string `json:"onboardingStatus"`
	FreeScanCount    int    `json:"freeScanCount"`
	EmailVerified    bool   `json:"emailVerified"`
}

type SessionCheckResponse struct {
	Valid            bool   `json:"valid"`
	OnboardingStatus string `json:"onboardingStatus"`
}
