package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	SpiceNone    = "none"
	SpiceMild    = "mild"
	SpiceMedium  = "medium"
	SpiceHot     = "hot"
	SpiceVeryHot = "very-hot"

	TasteDislike = "dislike"
	TasteNeutral = "neutral"
	TasteLike    = "like"
)

type DietaryRestrictions struct {
	Vegetarian bool   `json:"vegetarian"`
	Vegan      bool   `json:"vegan"`
	GlutenFree bool   `json:"glutenFree"`
	DairyFree  bool   `json:"dairyFree"`
	NutFree    bool   `json:"nutFree"`
	Halal      bool   `json:"halal"`
	Kosher     bool   `json:"kosher"`
	Other      string `json:"other"`
}

type TastePreferences struct {
	Sweet  string `json:"sweet"`
	Sour   string `json:"sour"`
	Bitter string `json:"bitter"`
	Umami  string `json:"umami"`
	Salty  string `json:"salty"`
	Tangy  string `json:"tangy"`
}

// TasteProfileData is the document shape shared by the API, the model
// prompts and storage.
type TasteProfileData struct {
	FavoriteDishes      []string            `json:"favoriteDishes"`
	DislikedIngredients []string            `json:"dislikedIngredients"`
	DietaryRestrictions DietaryRestrictions `json:"dietaryRestrictions"`
	SpicePreference     string              `json:"spicePreference"`
	TastePreferences    TastePreferences    `json:"tastePreferences"`
	CuisinePreferences  []string            `json:"cuisinePreferences"`
	Allergies           []string            `json:"allergies"`
	AdditionalNotes     string              `json:"additionalNotes"`
}

func DefaultTasteProfile() TasteProfileData {
	return TasteProfileData{
		FavoriteDishes:      []string{},
		DislikedIngredients: []string{},
		SpicePreference:     SpiceMedium,
		TastePreferences: TastePreferences{
			Sweet:  TasteNeutral,
			Sour:   TasteNeutral,
			Bitter: TasteNeutral,
			Umami:  TasteNeutral,
			Salty:  TasteNeutral,
			Tangy:  TasteNeutral,
		},
		CuisinePreferences: []string{},
		Allergies:          []string{},
	}
}

type TasteProfile struct {
	BaseModel
	UserID              uuid.UUID                               `gorm:"type:uuid;uniqueIndex;not null"`
	FavoriteDishes      datatypes.JSONSlice[string]             `gorm:"not null"`
	DislikedIngredients datatypes.JSONSlice[string]             `gorm:"not null"`
	DietaryRestrictions datatypes.JSONType[DietaryRestrictions] `gorm:"not null"`
	SpicePreference     string                                  `gorm:"type:varchar(16);not null;default:medium"`
	TastePreferences    datatypes.JSONType[TastePreferences]    `gorm:"not null"`
	CuisinePreferences  datatypes.JSONSlice[string]             `gorm:"not null"`
	Allergies           datatypes.JSONSlice[string]             `gorm:"not null"`
	AdditionalNotes     string
}

func (p *TasteProfile) Data() TasteProfileData {
	return TasteProfileData{
		FavoriteDishes:      nonNil(p.FavoriteDishes),
		DislikedIngredients: nonNil(p.DislikedIngredients),
		DietaryRestrictions: p.DietaryRestrictions.Data(),
		SpicePreference:     p.SpicePreference,
		TastePreferences:    p.TastePreferences.Data(),
		CuisinePreferences:  nonNil(p.CuisinePreferences),
		Allergies:           nonNil(p.Allergies),
		AdditionalNotes:     p.AdditionalNotes,
	}
}

func (p *TasteProfile) Apply(d TasteProfileData) {
	p.FavoriteDishes = nonNil(d.FavoriteDishes)
	p.DislikedIngredients = nonNil(d.DislikedIngredients)
	p.DietaryRestrictions = datatypes.NewJSONType(d.DietaryRestrictions)
	p.SpicePreference = d.SpicePreference
	p.TastePreferences = datatypes.NewJSONType(d.TastePreferences)
	p.CuisinePreferences = nonNil(d.CuisinePreferences)
	p.Allergies = nonNil(d.Allergies)
	p.AdditionalNotes = d.AdditionalNotes
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
