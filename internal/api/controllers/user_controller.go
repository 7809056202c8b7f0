package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tastepalette/internal/models/db_models"
	"tastepalette/internal/models/request_models"
	"tastepalette/internal/services"
	"tastepalette/pkg/middleware"
	"tastepalette/pkg/utils"
)

type UserController struct {
	userService services.UserServiceInterface
}

func NewUserController(userService services.UserServiceInterface) *UserController {
	return &UserController{
		userService: userService,
	}
}

func (u *UserController) Me(c *gin.Context) {
	resp, err := u.userService.GetProfile(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "")
}

func (u *UserController) OnboardingStatus(c *gin.Context) {
	resp, err := u.userService.OnboardingStatus(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "")
}

// UpdateOnboarding godoc
// @Summary Finish or skip onboarding
// @Description Grants 2 free scans for COMPLETED and 1 for SKIPPED, once
// @Tags User
// @Accept json
// @Produce json
// @Param request body request_models.UpdateOnboardingRequest true "Onboarding status"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /user/update-onboarding [post]
func (u *UserController) UpdateOnboarding(c *gin.Context) {
	var req request_models.UpdateOnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Status must be COMPLETED or SKIPPED")
		return
	}

	resp, err := u.userService.UpdateOnboarding(c.Request.Context(), middleware.CurrentUserID(c), db_models.OnboardingStatus(req.Status))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Onboarding updated")
}

// UpdateProfile godoc
// @Summary Update name and optionally password
// @Tags User
// @Accept json
// @Produce json
// @Param request body request_models.UpdateProfileRequest true "Profile payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /user/profile [put]
func (u *UserController) UpdateProfile(c *gin.Context) {
	var req request_models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusUnprocessableEntity, "Name must be at least 2 characters and a new password at least 6")
		return
	}

	resp, err := u.userService.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Profile updated")
}

func (u *UserController) DeleteAccount(c *gin.Context) {
	var req request_models.DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "A reason for deleting the account is required")
		return
	}

	if err := u.userService.DeleteAccount(c.Request.Context(), middleware.CurrentUserID(c), req.Reason); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Account deleted")
}
