package request_models

type CreateVisitRequest struct {
	RestaurantName string  `json:"restaurantName" binding:"required"`
	OrderedDish    string  `json:"orderedDish" binding:"required"`
	Rating         *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Notes          string  `json:"notes"`
	Mood           string  `json:"mood"`
	MenuUploadID   *string `json:"menuUploadId" binding:"omitempty,uuid"`
}

// ScanVisitRequest records a visit continued from a scanned menu.
type ScanVisitRequest struct {
	MenuUploadID   *string `json:"menuUploadId" binding:"omitempty,uuid"`
	RestaurantName string  `json:"restaurantName"`
	OrderedDish    string  `json:"orderedDish" binding:"required"`
	Rating         *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Notes          string  `json:"notes"`
	Mood           string  `json:"mood"`
}
