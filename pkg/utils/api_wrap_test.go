package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHandleServiceErrorStatusCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		code int
	}{
		{"validation", fmt.Errorf("%w: file too large", ErrValidation), http.StatusBadRequest},
		{"unprocessable", ErrUnprocessable, http.StatusUnprocessableEntity},
		{"duplicate email", ErrEmailAlreadyExists, http.StatusBadRequest},
		{"bad credentials", ErrInvalidCredentials, http.StatusUnauthorized},
		{"not verified", ErrEmailNotVerified, http.StatusForbidden},
		{"quota", ErrQuotaExceeded, http.StatusForbidden},
		{"user missing", ErrUserNotFound, http.StatusNotFound},
		{"menu missing", ErrMenuNotFound, http.StatusNotFound},
		{"profile missing", fmt.Errorf("load: %w", ErrProfileNotFound), http.StatusNotFound},
		{"model", fmt.Errorf("%w: empty", ErrModelResponse), http.StatusInternalServerError},
		{"database", ErrDatabaseError, http.StatusInternalServerError},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/x", func(c *gin.Context) {
				HandleServiceError(c, tc.err)
			})

			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/x", nil))

			if resp.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, resp.Code)
			}

			var body APIResponse
			if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Success {
				t.Fatalf("expected success=false")
			}
			if body.Code != tc.code {
				t.Fatalf("expected body code %d, got %d", tc.code, body.Code)
			}
		})
	}
}

func TestValidationMessageCarriesDetail(t *testing.T) {
	_, msg := statusFor(fmt.Errorf("%w: image must be 5MB or smaller", ErrValidation))
	if msg != "image must be 5MB or smaller" {
		t.Fatalf("unexpected message %q", msg)
	}

	_, msg = statusFor(ErrValidation)
	if msg != "Invalid request" {
		t.Fatalf("unexpected fallback message %q", msg)
	}
}

func TestModelErrorsHideDetail(t *testing.T) {
	_, msg := statusFor(fmt.Errorf("%w: raw text was not JSON", ErrModelResponse))
	if msg == "" || msg == "raw text was not JSON" {
		t.Fatalf("expected generic message, got %q", msg)
	}
}
