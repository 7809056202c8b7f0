package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"tastepalette/internal/models/db_models"
	"tastepalette/pkg/utils"
)

const (
	userKey    = "user"
	userIDKey  = "user_id"
	sessionKey = "session_id"
)

// Authenticator resolves a bearer token to the signed-in user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*db_models.User, *utils.SessionClaims, error)
}

func SessionAuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		user, claims, err := auth.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			if errors.Is(err, utils.ErrUnauthorized) {
				utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired session")
			} else {
				utils.HandleServiceError(c, err)
			}
			c.Abort()
			return
		}

		c.Set(userKey, user)
		c.Set(userIDKey, user.ID)
		c.Set(sessionKey, claims.ID)
		c.Next()
	}
}

func CurrentUser(c *gin.Context) *db_models.User {
	if v, ok := c.Get(userKey); ok {
		if user, ok := v.(*db_models.User); ok {
			return user
		}
	}
	return nil
}

func CurrentUserID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

func CurrentSessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
