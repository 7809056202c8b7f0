package request_models

import "tastepalette/internal/models/db_models"

type SaveTasteProfileRequest struct {
	db_models.TasteProfileData
}

type UpdateFromRatingRequest struct {
	Dish   string `json:"dish" binding:"required"`
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
}
