package response_models

import (
	"tastepalette/internal/models/db_models"
	"tastepalette/pkg/utils"
)

type MenuUploadResponse struct {
	ID              string                     `json:"id"`
	RestaurantName  string                     `json:"restaurantName"`
	ParsedText      []db_models.MenuItem       `json:"parsedText"`
	Recommendations []db_models.Recommendation `json:"recommendations"`
	Mood            string                     `json:"mood,omitempty"`
	Ratings         map[string]int             `json:"ratings,omitempty"`
	Feedback        string                     `json:"feedback,omitempty"`
	ImageURL        string                     `json:"imageUrl,omitempty"`
	CreatedAt       string                     `json:"createdAt"`
}

func NewMenuUploadResponse(m *db_models.MenuUpload) MenuUploadResponse {
	items := []db_models.MenuItem(m.MenuItems)
	if items == nil {
		items = []db_models.MenuItem{}
	}
	recs := []db_models.Recommendation(m.Recommendations)
	if recs == nil {
		recs = []db_models.Recommendation{}
	}

	return MenuUploadResponse{
		ID:              m.ID.String(),
		RestaurantName:  m.RestaurantName,
		ParsedText:      items,
		Recommendations: recs,
		Mood:            m.Mood,
		Ratings:         m.Ratings.Data(),
		Feedback:        m.Feedback,
		ImageURL:        m.ImageURL,
		CreatedAt:       utils.FormatUnixRFC3339(m.CreatedAt),
	}
}

type VisitResponse struct {
	ID             string  `json:"id"`
	MenuUploadID   *string `json:"menuUploadId,omitempty"`
	RestaurantName string  `json:"restaurantName"`
	OrderedDish    string  `json:"orderedDish"`
	Rating         *int    `json:"rating,omitempty"`
	Notes          string  `json:"notes,omitempty"`
	Mood           string  `json:"mood,omitempty"`
	VisitDate      string  `json:"visitDate"`
}

func NewVisitResponse(v *db_models.RestaurantVisit) VisitResponse {
	resp := VisitResponse{
		ID:             v.ID.String(),
		RestaurantName: v.RestaurantName,
		OrderedDish:    v.OrderedDish,
		Rating:         v.Rating,
		Notes:          v.Notes,
		Mood:           v.Mood,
		VisitDate:      utils.FormatRFC3339(v.VisitDate),
	}
	if v.MenuUploadID != nil {
		id := v.MenuUploadID.String()
		resp.MenuUploadID = &id
	}
	return resp
}
