package utils

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Success: false,
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// HandleServiceError maps a service error onto its HTTP status. Server side
// failures are logged and reported to Sentry when a hub is attached.
func HandleServiceError(c *gin.Context, err error) {
	code, message := statusFor(err)

	if code >= http.StatusInternalServerError {
		log.Printf("[%s] %s %s: %v", c.GetString("trace_id"), c.Request.Method, c.FullPath(), err)
		if hub := sentry.GetHubFromContext(c.Request.Context()); hub != nil {
			hub.CaptureException(err)
		}
	}

	RespondError(c, code, message)
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest, detail(err, ErrValidation, "Invalid request")
	case errors.Is(err, ErrUnprocessable):
		return http.StatusUnprocessableEntity, detail(err, ErrUnprocessable, "Invalid input")
	case errors.Is(err, ErrEmailAlreadyExists):
		return http.StatusBadRequest, "User already exists"
	case errors.Is(err, ErrAlreadyVerified):
		return http.StatusBadRequest, "Email is already verified"
	case errors.Is(err, ErrInvalidToken):
		return http.StatusBadRequest, "Invalid or expired token"
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, ErrEmailNotVerified):
		return http.StatusForbidden, "Please verify your email before logging in"
	case errors.Is(err, ErrQuotaExceeded):
		return http.StatusForbidden, detail(err, ErrQuotaExceeded, "You have reached your upload limit. Upgrade your plan to scan more menus")
	case errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, ErrMenuNotFound):
		return http.StatusNotFound, "Menu not found"
	case errors.Is(err, ErrProfileNotFound):
		return http.StatusNotFound, "Taste profile not found"
	case errors.Is(err, ErrModelResponse):
		return http.StatusInternalServerError, "We could not process your menu right now. Please try again"
	case errors.Is(err, ErrMailDelivery):
		return http.StatusInternalServerError, "Failed to send email"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// detail returns the text a service appended after the sentinel, if any.
func detail(err, sentinel error, fallback string) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error())
	msg = strings.TrimSpace(strings.TrimPrefix(msg, ":"))
	if msg == "" {
		return fallback
	}
	return msg
}
