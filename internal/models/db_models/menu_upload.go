package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type MenuItem struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price,omitempty"`
	Category    string `json:"category,omitempty"`
}

type Recommendation struct {
	DishName string `json:"dishName"`
	Score    int    `json:"score"`
	Reason   string `json:"reason"`
}

type MenuUpload struct {
	BaseModel
	UserID          uuid.UUID `gorm:"type:uuid;index;not null"`
	RestaurantName  string
	Mood            string
	MenuItems       datatypes.JSONSlice[MenuItem]       `gorm:"not null"`
	Recommendations datatypes.JSONSlice[Recommendation] `gorm:"not null"`
	Ratings         datatypes.JSONType[map[string]int]
	Feedback        string
	ImageURL        string
}

// Rating is one dish score submitted after a visit.
type Rating struct {
	BaseModel
	UserID       uuid.UUID  `gorm:"type:uuid;index;not null"`
	MenuUploadID *uuid.UUID `gorm:"type:uuid;index"`
	DishName     string     `gorm:"not null"`
	Score        int        `gorm:"type:int;not null;check:score >= 1 AND score <= 5"`
}
