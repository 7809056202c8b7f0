package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tastepalette/internal/models/request_models"
	"tastepalette/internal/models/response_models"
	"tastepalette/internal/services"
	"tastepalette/pkg/middleware"
	"tastepalette/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
}

func NewAccountController(accountService services.AccountServiceInterface) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

// Signup godoc
// @Summary Register a new account
// @Description Create a user and send a verification email
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.SignUpRequest true "Signup payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /auth/signup [post]
func (a *AccountController) Signup(c *gin.Context) {
	var req request_models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Name, valid email and a password of at least 6 characters are required")
		return
	}

	user, err := a.accountService.Signup(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.NewUserResponse(user), "Account created. Please check your email to verify your account")
}

// Login godoc
// @Summary Login to an account
// @Description Authenticate a verified user and return a session token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /auth/login [post]
func (a *AccountController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := a.accountService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Login successful")
}

// VerifyEmail godoc
// @Summary Verify an email address
// @Tags Auth
// @Produce json
// @Param token query string true "Verification token"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /auth/verify [get]
func (a *AccountController) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		utils.RespondError(c, http.StatusBadRequest, "Verification token is required")
		return
	}

	already, err := a.accountService.VerifyEmail(c.Request.Context(), token)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	if already {
		utils.RespondSuccess(c, nil, "Email is already verified")
		return
	}
	utils.RespondSuccess(c, nil, "Email verified successfully")
}

// ResendVerification godoc
// @Summary Resend the verification email
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.ResendVerificationRequest true "Email"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /auth/resend-verification [post]
func (a *AccountController) ResendVerification(c *gin.Context) {
	var req request_models.ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "A valid email is required")
		return
	}

	if err := a.accountService.ResendVerification(c.Request.Context(), req.Email); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Verification email sent")
}

// ForgotPassword godoc
// @Summary Request a password reset
// @Description Sends a password reset link to the provided email if it exists
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.RequestForgotPassword true "Forgot password payload"
// @Success 200 {object} utils.APIResponse
// @Router /auth/reset-password [post]
func (a *AccountController) ForgotPassword(c *gin.Context) {
	var req request_models.RequestForgotPassword
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "A valid email is required")
		return
	}

	if err := a.accountService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "If the email exists, a reset link has been sent")
}

// ResetPassword godoc
// @Summary Reset password with a reset token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.ResetPasswordConfirmRequest true "Password reset payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /auth/reset-password/confirm [post]
func (a *AccountController) ResetPassword(c *gin.Context) {
	var req request_models.ResetPasswordConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Token and a password of at least 6 characters are required")
		return
	}

	if err := a.accountService.ConfirmPasswordReset(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Password has been reset successfully")
}

func (a *AccountController) CheckSession(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	utils.RespondSuccess(c, response_models.SessionCheckResponse{
		Valid:            true,
		OnboardingStatus: string(user.OnboardingStatus),
	}, "Session is valid")
}

func (a *AccountController) Logout(c *gin.Context) {
	if err := a.accountService.Logout(c.Request.Context(), middleware.CurrentSessionID(c)); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Logged out")
}
