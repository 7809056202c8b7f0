package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"tastepalette/internal/models/db_models"
	"tastepalette/internal/models/request_models"
	"tastepalette/internal/models/response_models"
	"tastepalette/internal/repositories"
	"tastepalette/pkg/utils"
)

const (
	verificationTokenTTL = 24 * time.Hour
	resetTokenTTL        = time.Hour
	resetTokenBytes      = 32
)

type AccountServiceInterface interface {
	Signup(ctx context.Context, request request_models.SignUpRequest) (*db_models.User, error)
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error)
	Logout(ctx context.Context, tokenID string) error
	Authenticate(ctx context.Context, token string) (*db_models.User, *utils.SessionClaims, error)

	VerifyEmail(ctx context.Context, token string) (alreadyVerified bool, err error)
	ResendVerification(ctx context.Context, email string) error

	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, request request_models.ResetPasswordConfirmRequest) error
}

type AccountService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	mailService IMailService
	jwt         *utils.JWTManager
	now         func() time.Time
}

func NewAccountService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	mailService IMailService,
	jwt *utils.JWTManager,
) AccountServiceInterface {
	return &AccountService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		mailService: mailService,
		jwt:         jwt,
		now:         time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *AccountService) Signup(ctx context.Context, request request_models.SignUpRequest) (*db_models.User, error) {
	email := normalizeEmail(request.Email)

	existing, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		log.Printf("Error checking email %s: %v", email, err)
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	token, err := a.jwt.CreateEmailToken(email, verificationTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("create verification token: %w", err)
	}

	user := &db_models.User{
		Email:             email,
		PasswordHash:      hashedPassword,
		Name:              strings.TrimSpace(request.Name),
		VerificationToken: &token,
		Plan:              db_models.PlanFree,
		LastUploadReset:   a.now(),
		OnboardingStatus:  db_models.OnboardingNotStarted,
	}

	if err := a.userRepo.Create(ctx, user); err != nil {
		log.Printf("Error creating user %s: %v", email, err)
		return nil, utils.ErrDatabaseError
	}

	if err := a.mailService.SendVerificationEmail(ctx, user.Email, user.Name, token); err != nil {
		log.Printf("Failed to send verification email to %s: %v", user.Email, err)
	}

	return user, nil
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error) {
	startTime := time.Now()

	user, err := a.userRepo.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	if user == nil {
		utils.BurnCompare(request.Password)
		return nil, utils.ErrInvalidCredentials
	}

	if !user.IsVerified() {
		return nil, utils.ErrEmailNotVerified
	}

	if err := utils.ComparePasswords(user.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	log.Printf("Password verification took %s", time.Since(startTime))

	now := a.now()
	tokenID := uuid.NewString()
	token, expiresAt, err := a.jwt.CreateSessionToken(utils.SessionSubject{
		UserID:           user.ID,
		Email:            user.Email,
		Name:             user.Name,
		OnboardingStatus: string(user.OnboardingStatus),
	}, tokenID, now)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	session := &db_models.Session{
		UserID:    user.ID,
		TokenID:   tokenID,
		ExpiresAt: expiresAt.Unix(),
	}
	if err := a.sessionRepo.Create(ctx, session); err != nil {
		log.Printf("Error storing session for %s: %v", user.ID, err)
		return nil, utils.ErrDatabaseError
	}

	return &response_models.AccountLoginResponse{
		Token:            token,
		ExpiresAt:        utils.FormatRFC3339(expiresAt),
		OnboardingStatus: string(user.OnboardingStatus),
		User:             response_models.NewUserResponse(user),
	}, nil
}

func (a *AccountService) Logout(ctx context.Context, tokenID string) error {
	if err := a.sessionRepo.DeleteByTokenID(ctx, tokenID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

// Authenticate resolves a bearer token to its live session and user.
func (a *AccountService) Authenticate(ctx context.Context, token string) (*db_models.User, *utils.SessionClaims, error) {
	claims, err := a.jwt.ParseSessionToken(token)
	if err != nil {
		return nil, nil, utils.ErrUnauthorized
	}

	session, err := a.sessionRepo.FindByTokenID(ctx, claims.ID)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}
	if session == nil || session.ExpiresAt <= a.now().Unix() {
		return nil, nil, utils.ErrUnauthorized
	}

	user, err := a.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, nil, utils.ErrUnauthorized
	}

	return user, claims, nil
}

// VerifyEmail marks the token's owner verified. A token whose owner is
// already verified succeeds without changes.
func (a *AccountService) VerifyEmail(ctx context.Context, token string) (bool, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return false, fmt.Errorf("%w: verification token is required", utils.ErrValidation)
	}

	user, err := a.userRepo.FindByVerificationToken(ctx, token)
	if err != nil {
		return false, utils.ErrDatabaseError
	}

	if user == nil {
		// Tokens are cleared on success, so a repeated click lands here.
		claims, parseErr := a.jwt.ParseEmailToken(token)
		if parseErr != nil {
			return false, utils.ErrInvalidToken
		}
		owner, err := a.userRepo.FindByEmail(ctx, claims.Email)
		if err != nil {
			return false, utils.ErrDatabaseError
		}
		if owner != nil && owner.IsVerified() {
			return true, nil
		}
		return false, utils.ErrInvalidToken
	}

	if user.IsVerified() {
		return true, nil
	}

	if _, err := a.jwt.ParseEmailToken(token); err != nil {
		return false, utils.ErrInvalidToken
	}

	if err := a.userRepo.MarkVerified(ctx, user.ID, a.now()); err != nil {
		return false, utils.ErrDatabaseError
	}
	return false, nil
}

func (a *AccountService) ResendVerification(ctx context.Context, email string) error {
	user, err := a.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.ErrUserNotFound
	}
	if user.IsVerified() {
		return utils.ErrAlreadyVerified
	}

	token, err := a.jwt.CreateEmailToken(user.Email, verificationTokenTTL)
	if err != nil {
		return fmt.Errorf("create verification token: %w", err)
	}
	if err := a.userRepo.SetVerificationToken(ctx, user.ID, token); err != nil {
		return utils.ErrDatabaseError
	}

	if err := a.mailService.SendVerificationEmail(ctx, user.Email, user.Name, token); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrMailDelivery, err)
	}
	return nil
}

// RequestPasswordReset never reveals whether the email is registered.
func (a *AccountService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := a.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		log.Printf("Error looking up %s for password reset: %v", email, err)
		return nil
	}
	if user == nil {
		return nil
	}

	token, err := utils.GenerateSecureToken(resetTokenBytes)
	if err != nil {
		log.Printf("Error generating reset token: %v", err)
		return nil
	}

	if err := a.userRepo.SetResetToken(ctx, user.ID, token, a.now().Add(resetTokenTTL)); err != nil {
		log.Printf("Error storing reset token for %s: %v", user.ID, err)
		return nil
	}

	if err := a.mailService.SendPasswordResetEmail(ctx, user.Email, token); err != nil {
		log.Printf("Failed to send password reset email to %s: %v", user.Email, err)
	}
	return nil
}

func (a *AccountService) ConfirmPasswordReset(ctx context.Context, request request_models.ResetPasswordConfirmRequest) error {
	token := strings.TrimSpace(request.Token)
	user, err := a.userRepo.FindByResetToken(ctx, token)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil || user.ResetTokenExpiry == nil || !a.now().Before(*user.ResetTokenExpiry) {
		return utils.ErrInvalidToken
	}

	hashedPassword, err := utils.HashPasswordWithCost(request.Password, utils.ResetHashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	applied, err := a.userRepo.ResetPassword(ctx, user.ID, token, hashedPassword)
	if err != nil {
		log.Printf("Error resetting password for %s: %v", user.ID, err)
		return utils.ErrDatabaseError
	}
	if !applied {
		return utils.ErrInvalidToken
	}
	return nil
}
