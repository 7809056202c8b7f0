package request_models

type UpdateOnboardingRequest struct {
	Status string `json:"status" binding:"required,oneof=COMPLETED SKIPPED"`
}

type UpdateProfileRequest struct {
	Name            string `json:"name" binding:"required,min=2,max=100"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" binding:"omitempty,min=6"`
}

type DeleteAccountRequest struct {
	Reason string `json:"reason" binding:"required"`
}
