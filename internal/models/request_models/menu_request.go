package request_models

// MenuUploadInput is assembled by the controller from the multipart form.
type MenuUploadInput struct {
	Image          []byte
	MimeType       string
	Mood           string
	RestaurantName string
}

type RateMenuRequest struct {
	MenuID   string         `json:"menuId" binding:"required"`
	Ratings  map[string]int `json:"ratings" binding:"required,min=1,dive,keys,required,endkeys,min=1,max=5"`
	Feedback string         `json:"feedback"`
}
