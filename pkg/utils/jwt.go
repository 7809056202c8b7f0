package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type SessionClaims struct {
	UserID           string `json:"id"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	OnboardingStatus string `json:"onboardingStatus"`
	jwt.RegisteredClaims
}

type EmailClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type SessionSubject struct {
	UserID           uuid.UUID
	Email            string
	Name             string
	OnboardingStatus string
}

type JWTManager struct {
	secret     []byte
	sessionTTL time.Duration
}

func NewJWTManager(secret string, sessionTTL time.Duration) *JWTManager {
	return &JWTManager{
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
	}
}

func (m *JWTManager) SessionTTL() time.Duration {
	return m.sessionTTL
}

// CreateSessionToken signs a session token whose jti is tokenID.
func (m *JWTManager) CreateSessionToken(subject SessionSubject, tokenID string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(m.sessionTTL)
	claims := &SessionClaims{
		UserID:           subject.UserID.String(),
		Email:            subject.Email,
		Name:             subject.Name,
		OnboardingStatus: subject.OnboardingStatus,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   subject.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	return signed, expiresAt, err
}

func (m *JWTManager) ParseSessionToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := m.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.ID == "" {
		return nil, errors.New("token has no id")
	}
	return claims, nil
}

// CreateEmailToken signs a token that carries only an email address.
func (m *JWTManager) CreateEmailToken(email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &EmailClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *JWTManager) ParseEmailToken(tokenString string) (*EmailClaims, error) {
	claims := &EmailClaims{}
	if err := m.parse(tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (m *JWTManager) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return err
	}
	if !token.Valid {
		return errors.New("invalid token")
	}
	return nil
}
