package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultHashCost = 10
	ResetHashCost   = 12
)

// dummyHash is compared against when the account does not exist so that
// unknown emails cost the same as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("taste-palette-placeholder"), DefaultHashCost)

func HashPassword(password string) (string, error) {
	return HashPasswordWithCost(password, DefaultHashCost)
}

func HashPasswordWithCost(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

func ComparePasswords(hashedPassword string, plainPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
}

// BurnCompare performs a throwaway bcrypt comparison.
func BurnCompare(plainPassword string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(plainPassword))
}

func GenerateSecureToken(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid token length")
	}

	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	return hex.EncodeToString(bytes), nil
}
