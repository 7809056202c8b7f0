package db_models

import "github.com/google/uuid"

// Account links a User to an external identity provider. Rows are only ever
// removed here, together with their user.
type Account struct {
	BaseModel
	UserID            uuid.UUID `gorm:"type:uuid;index;not null"`
	Provider          string    `gorm:"uniqueIndex:idx_provider_account;not null"`
	ProviderAccountID string    `gorm:"uniqueIndex:idx_provider_account;not null"`
	AccessToken       *string
	RefreshToken      *string
	ExpiresAt         *int64
}

type Session struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	TokenID   string    `gorm:"uniqueIndex;not null"`
	ExpiresAt int64     `gorm:"not null"`
}
