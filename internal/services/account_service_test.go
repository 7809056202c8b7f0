package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"tastepalette/internal/models/db_models"
	"tastepalette/internal/models/request_models"
	"tastepalette/pkg/utils"
)

func newAccountService(env *testEnv, mailer IMailService) *AccountService {
	jwt := utils.NewJWTManager("test-secret", time.Hour)
	return NewAccountService(env.users, env.sessions, mailer, jwt).(*AccountService)
}

func TestSignupVerifyLogin(t *testing.T) {
	env := newTestEnv(t)
	mailer := &fakeMailer{}
	svc := newAccountService(env, mailer)
	ctx := context.Background()

	user, err := svc.Signup(ctx, request_models.SignUpRequest{Name: "Ana", Email: " Ana@Example.com ", Password: "secret123"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user.Email != "ana@example.com" || user.FreeScanCount != 0 {
		t.Fatalf("unexpected new user %+v", user)
	}

	if _, err := svc.Login(ctx, request_models.LoginRequest{Email: "ana@example.com", Password: "secret123"}); !errors.Is(err, utils.ErrEmailNotVerified) {
		t.Fatalf("expected unverified login to fail, got %v", err)
	}

	mail := mailer.last(t)
	if mail.kind != "verify" || mail.to != "ana@example.com" {
		t.Fatalf("unexpected mail %+v", mail)
	}

	already, err := svc.VerifyEmail(ctx, mail.token)
	if err != nil || already {
		t.Fatalf("verify: already=%v err=%v", already, err)
	}

	already, err = svc.VerifyEmail(ctx, mail.token)
	if err != nil || !already {
		t.Fatalf("second verify should be a no-op, got already=%v err=%v", already, err)
	}

	resp, err := svc.Login(ctx, request_models.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.OnboardingStatus != "NOT_STARTED" || resp.Token == "" {
		t.Fatalf("unexpected login response %+v", resp)
	}

	authed, claims, err := svc.Authenticate(ctx, resp.Token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if authed.ID != user.ID || claims.UserID != user.ID.String() {
		t.Fatalf("session resolved to the wrong user")
	}

	if err := svc.Logout(ctx, claims.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, _, err := svc.Authenticate(ctx, resp.Token); !errors.Is(err, utils.ErrUnauthorized) {
		t.Fatalf("expected logged out token to be rejected, got %v", err)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	svc := newAccountService(env, &fakeMailer{})
	env.seedUser(t, "dup@example.com", nil)

	_, err := svc.Signup(context.Background(), request_models.SignUpRequest{Name: "Dup", Email: "DUP@example.com", Password: "secret123"})
	if !errors.Is(err, utils.ErrEmailAlreadyExists) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestSignupSurvivesMailFailure(t *testing.T) {
	env := newTestEnv(t)
	svc := newAccountService(env, &fakeMailer{err: errors.New("smtp down")})

	if _, err := svc.Signup(context.Background(), request_models.SignUpRequest{Name: "Bo", Email: "bo@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("signup should not fail on mail errors: %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	svc := newAccountService(env, &fakeMailer{})
	env.seedUser(t, "cy@example.com", nil)
	ctx := context.Background()

	if _, err := svc.Login(ctx, request_models.LoginRequest{Email: "nobody@example.com", Password: "secret123"}); !errors.Is(err, utils.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected invalid credentials, got %v", err)
	}
	if _, err := svc.Login(ctx, request_models.LoginRequest{Email: "cy@example.com", Password: "wrong"}); !errors.Is(err, utils.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected invalid credentials, got %v", err)
	}
}

func TestLoginChecksVerificationBeforePassword(t *testing.T) {
	env := newTestEnv(t)
	svc := newAccountService(env, &fakeMailer{})
	env.seedUser(t, "dee@example.com", func(u *db_models.User) { u.EmailVerified = nil })
	ctx := context.Background()

	for _, password := range []string{"secret123", "wrong"} {
		if _, err := svc.Login(ctx, request_models.LoginRequest{Email: "dee@example.com", Password: password}); !errors.Is(err, utils.ErrEmailNotVerified) {
			t.Fatalf("password %q: expected email not verified, got %v", password, err)
		}
	}
}

func TestVerifyEmailRejectsUnknownToken(t *testing.T) {
	env := newTestEnv(t)
	svc := newAccountService(env, &fakeMailer{})

	if _, err := svc.VerifyEmail(context.Background(), "not-a-token"); !errors.Is(err, utils.ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestResendVerification(t *testing.T) {
	env := newTestEnv(t)
	mailer := &fakeMailer{}
	svc := newAccountService(env, mailer)
	ctx := context.Background()

	env.seedUser(t, "done@example.com", nil)
	unverified := env.seedUser(t, "todo@example.com", func(u *db_models.User) { u.EmailVerified = nil })

	if err := svc.ResendVerification(ctx, "ghost@example.com"); !errors.Is(err, utils.ErrUserNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := svc.ResendVerification(ctx, "done@example.com"); !errors.Is(err, utils.ErrAlreadyVerified) {
		t.Fatalf("expected already verified, got %v", err)
	}
	if err := svc.ResendVerification(ctx, "todo@example.com"); err != nil {
		t.Fatalf("resend: %v", err)
	}

	stored := env.reload(t, unverified.ID)
	if stored.VerificationToken == nil || *stored.VerificationToken != mailer.last(t).token {
		t.Fatalf("stored token does not match mailed token")
	}

	mailer.err = errors.New("smtp down")
	if err := svc.ResendVerification(ctx, "todo@example.com"); !errors.Is(err, utils.ErrMailDelivery) {
		t.Fatalf("expected mail delivery error, got %v", err)
	}
}

func TestPasswordResetExpiresExactlyAtDeadline(t *testing.T) {
	env := newTestEnv(t)
	mailer := &fakeMailer{}
	svc := newAccountService(env, mailer)
	ctx := context.Background()
	env.seedUser(t, "dee@example.com", nil)

	issued := time.Now().UTC().Truncate(time.Second)
	svc.now = func() time.Time { return issued }

	if err := svc.RequestPasswordReset(ctx, "dee@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	token := mailer.last(t).token
	if len(token) != 64 {
		t.Fatalf("expected 32 random bytes hex encoded, got %d chars", len(token))
	}

	svc.now = func() time.Time { return issued.Add(resetTokenTTL) }
	err := svc.ConfirmPasswordReset(ctx, request_models.ResetPasswordConfirmRequest{Token: token, Password: "newsecret"})
	if !errors.Is(err, utils.ErrInvalidToken) {
		t.Fatalf("token at expiry must be rejected, got %v", err)
	}

	svc.now = func() time.Time { return issued.Add(resetTokenTTL - time.Second) }
	if err := svc.ConfirmPasswordReset(ctx, request_models.ResetPasswordConfirmRequest{Token: token, Password: "newsecret"}); err != nil {
		t.Fatalf("token before expiry should work: %v", err)
	}

	if err := svc.ConfirmPasswordReset(ctx, request_models.ResetPasswordConfirmRequest{Token: token, Password: "again123"}); !errors.Is(err, utils.ErrInvalidToken) {
		t.Fatalf("reset token must be single use, got %v", err)
	}

	svc.now = time.Now
	if _, err := svc.Login(ctx, request_models.LoginRequest{Email: "dee@example.com", Password: "newsecret"}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestPasswordResetRequestForUnknownEmailIsSilent(t *testing.T) {
	env := newTestEnv(t)
	mailer := &fakeMailer{}
	svc := newAccountService(env, mailer)

	if err := svc.RequestPasswordReset(context.Background(), "ghost@example.com"); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("no mail should be sent for unknown emails")
	}
}

func TestPasswordResetDropsSessions(t *testing.T) {
	env := newTestEnv(t)
	mailer := &fakeMailer{}
	svc := newAccountService(env, mailer)
	ctx := context.Background()
	env.seedUser(t, "eve@example.com", nil)

	login, err := svc.Login(ctx, request_models.LoginRequest{Email: "eve@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.RequestPasswordReset(ctx, "eve@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	if err := svc.ConfirmPasswordReset(ctx, request_models.ResetPasswordConfirmRequest{Token: mailer.last(t).token, Password: "brandnew"}); err != nil {
		t.Fatalf("confirm reset: %v", err)
	}

	if _, _, err := svc.Authenticate(ctx, login.Token); !errors.Is(err, utils.ErrUnauthorized) {
		t.Fatalf("old session should be gone, got %v", err)
	}
}

func TestAuthenticateRejectsDeletedUser(t *testing.T) {
	env := newTestEnv(t)
	svc := newAccountService(env, &fakeMailer{})
	ctx := context.Background()
	user := env.seedUser(t, "fay@example.com", nil)

	login, err := svc.Login(ctx, request_models.LoginRequest{Email: "fay@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := env.db.Exec("DELETE FROM users WHERE id = ?", user.ID).Error; err != nil {
		t.Fatalf("delete user: %v", err)
	}

	if _, _, err := svc.Authenticate(ctx, login.Token); !errors.Is(err, utils.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
