package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tastepalette/internal/models/request_models"
	"tastepalette/internal/services"
	"tastepalette/pkg/middleware"
	"tastepalette/pkg/utils"
)

type ProfileController struct {
	profileService services.TasteProfileServiceInterface
}

func NewProfileController(profileService services.TasteProfileServiceInterface) *ProfileController {
	return &ProfileController{
		profileService: profileService,
	}
}

func (p *ProfileController) GetTasteProfile(c *gin.Context) {
	profile, err := p.profileService.Get(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, profile, "")
}

// SaveTasteProfile godoc
// @Summary Create or replace the caller's taste profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param request body request_models.SaveTasteProfileRequest true "Taste profile"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /profile/taste [post]
func (p *ProfileController) SaveTasteProfile(c *gin.Context) {
	var req request_models.SaveTasteProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid taste profile")
		return
	}

	profile, err := p.profileService.Save(c.Request.Context(), middleware.CurrentUserID(c), req.TasteProfileData)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, profile, "Taste profile saved")
}

// UpdateFromRating godoc
// @Summary Adjust the taste profile after rating a dish
// @Tags Profile
// @Accept json
// @Produce json
// @Param request body request_models.UpdateFromRatingRequest true "Dish and rating"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /profile/update-from-rating [post]
func (p *ProfileController) UpdateFromRating(c *gin.Context) {
	var req request_models.UpdateFromRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Dish and a rating between 1 and 5 are required")
		return
	}

	profile, err := p.profileService.AdjustFromRating(c.Request.Context(), middleware.CurrentUserID(c), req.Dish, req.Rating)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, profile, "Taste profile updated")
}
