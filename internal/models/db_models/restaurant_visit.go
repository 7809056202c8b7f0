package db_models

import (
	"time"

	"github.com/google/uuid"
)

type RestaurantVisit struct {
	BaseModel
	UserID         uuid.UUID  `gorm:"type:uuid;index;not null"`
	MenuUploadID   *uuid.UUID `gorm:"type:uuid;index"`
	RestaurantName string     `gorm:"not null"`
	OrderedDish    string     `gorm:"not null"`
	Rating         *int       `gorm:"type:int;check:rating IS NULL OR (rating >= 1 AND rating <= 5)"`
	Notes          string
	Mood           string
	VisitDate      time.Time `gorm:"index;not null"`
}
