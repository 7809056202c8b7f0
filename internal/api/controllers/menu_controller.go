package controllers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"tastepalette/internal/models/request_models"
	"tastepalette/internal/services"
	"tastepalette/pkg/ai"
	"tastepalette/pkg/middleware"
	"tastepalette/pkg/utils"
)

type MenuController struct {
	menuService services.MenuServiceInterface
}

func NewMenuController(menuService services.MenuServiceInterface) *MenuController {
	return &MenuController{
		menuService: menuService,
	}
}

// Upload godoc
// @Summary Scan a menu photo
// @Description Extracts the dishes from a menu photo and ranks them against the caller's taste profile
// @Tags Menu
// @Accept multipart/form-data
// @Produce json
// @Param menu formData file true "Menu photo (field may also be named image)"
// @Param mood formData string false "Current mood"
// @Param restaurantName formData string false "Restaurant name"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /menu/upload [post]
func (m *MenuController) Upload(c *gin.Context) {
	header, err := c.FormFile("menu")
	if err != nil {
		header, err = c.FormFile("image")
	}
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "No file uploaded")
		return
	}

	data, mimeType, err := readUpload(header)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Could not read the uploaded file")
		return
	}

	resp, err := m.menuService.Upload(c.Request.Context(), middleware.CurrentUserID(c), request_models.MenuUploadInput{
		Image:          data,
		MimeType:       mimeType,
		Mood:           c.PostForm("mood"),
		RestaurantName: c.PostForm("restaurantName"),
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Menu processed successfully")
}

// readUpload reads at most one byte past the image limit so oversized files
// are still rejected by validation.
func readUpload(header *multipart.FileHeader) ([]byte, string, error) {
	file, err := header.Open()
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, ai.MaxImageBytes+1))
	if err != nil {
		return nil, "", err
	}

	mimeType := strings.TrimSpace(header.Header.Get("Content-Type"))
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	return data, mimeType, nil
}

func (m *MenuController) List(c *gin.Context) {
	uploads, err := m.menuService.List(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, uploads, "")
}

func (m *MenuController) Get(c *gin.Context) {
	upload, err := m.menuService.Get(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, upload, "")
}

func (m *MenuController) Delete(c *gin.Context) {
	if err := m.menuService.Delete(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Menu deleted")
}

// Rate godoc
// @Summary Rate the dishes of a scanned menu
// @Tags Menu
// @Accept json
// @Produce json
// @Param request body request_models.RateMenuRequest true "Ratings (1-5 per dish)"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /menu/rate [post]
func (m *MenuController) Rate(c *gin.Context) {
	var req request_models.RateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "menuId and ratings between 1 and 5 are required")
		return
	}

	resp, err := m.menuService.Rate(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Ratings saved")
}
