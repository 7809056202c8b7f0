package utils

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrUnprocessable      = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrInvalidToken       = errors.New("invalid or expired token")

	ErrUserNotFound    = errors.New("user not found")
	ErrMenuNotFound    = errors.New("menu upload not found")
	ErrProfileNotFound = errors.New("taste profile not found")

	ErrQuotaExceeded = errors.New("upload limit reached")
	ErrModelResponse = errors.New("model response error")
	ErrDatabaseError = errors.New("database error")
	ErrMailDelivery  = errors.New("mail delivery failed")
)
