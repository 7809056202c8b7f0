package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tastepalette/internal/models/request_models"
	"tastepalette/internal/services"
	"tastepalette/pkg/middleware"
	"tastepalette/pkg/utils"
)

type DiaryController struct {
	diaryService services.DiaryServiceInterface
}

func NewDiaryController(diaryService services.DiaryServiceInterface) *DiaryController {
	return &DiaryController{
		diaryService: diaryService,
	}
}

func (d *DiaryController) ListVisits(c *gin.Context) {
	visits, err := d.diaryService.ListVisits(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, visits, "")
}

func (d *DiaryController) CreateVisit(c *gin.Context) {
	var req request_models.CreateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Restaurant name and ordered dish are required; rating must be between 1 and 5")
		return
	}

	visit, err := d.diaryService.CreateVisit(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, visit, "Visit saved")
}

// CreateVisitFromScan records a visit continued from a menu scan.
func (d *DiaryController) CreateVisitFromScan(c *gin.Context) {
	var req request_models.ScanVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Ordered dish is required; rating must be between 1 and 5")
		return
	}

	visit, err := d.diaryService.CreateVisitFromScan(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, visit, "Visit saved")
}
