package db_models

import "time"

type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string

	EmailVerified     *time.Time
	VerificationToken *string `gorm:"uniqueIndex"`
	ResetToken        *string `gorm:"uniqueIndex"`
	ResetTokenExpiry  *time.Time

	Plan             Plan             `gorm:"type:varchar(16);not null;default:FREE"`
	FreeScanCount    int              `gorm:"not null;default:0"`
	UploadsThisWeek  int              `gorm:"not null;default:0"`
	LastUploadReset  time.Time        `gorm:"not null"`
	OnboardingStatus OnboardingStatus `gorm:"type:varchar(16);not null;default:NOT_STARTED"`
}

func (u *User) IsVerified() bool {
	return u.EmailVerified != nil
}
