package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"tastepalette/internal/infra"
	"tastepalette/internal/models/db_models"
	"tastepalette/internal/repositories"
	"tastepalette/pkg/utils"
)

type testEnv struct {
	db       *gorm.DB
	users    repositories.UserRepository
	sessions repositories.SessionRepository
	profiles repositories.TasteProfileRepository
	menus    repositories.MenuUploadRepository
	visits   repositories.VisitRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := infra.OpenSQLite(":memory:", nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := infra.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { infra.CloseDatabase(db) })

	return &testEnv{
		db:       db,
		users:    repositories.NewUserRepository(db),
		sessions: repositories.NewSessionRepository(db),
		profiles: repositories.NewTasteProfileRepository(db),
		menus:    repositories.NewMenuUploadRepository(db),
		visits:   repositories.NewVisitRepository(db),
	}
}

func (e *testEnv) seedUser(t *testing.T, email string, mutate func(u *db_models.User)) *db_models.User {
	t.Helper()

	hash, err := utils.HashPasswordWithCost("secret123", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	verified := time.Now()
	user := &db_models.User{
		Email:            email,
		PasswordHash:     hash,
		Name:             "Test User",
		EmailVerified:    &verified,
		Plan:             db_models.PlanFree,
		LastUploadReset:  time.Now(),
		OnboardingStatus: db_models.OnboardingNotStarted,
	}
	if mutate != nil {
		mutate(user)
	}
	if err := e.users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (e *testEnv) reload(t *testing.T, id uuid.UUID) *db_models.User {
	t.Helper()
	user, err := e.users.FindByID(context.Background(), id)
	if err != nil || user == nil {
		t.Fatalf("reload user: %v", err)
	}
	return user
}

func (e *testEnv) seedProfile(t *testing.T, userID uuid.UUID) {
	t.Helper()
	profile := &db_models.TasteProfile{UserID: userID}
	profile.Apply(db_models.DefaultTasteProfile())
	if err := e.profiles.Upsert(context.Background(), profile); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
}

type fakeAnalyzer struct {
	items    []db_models.MenuItem
	recs     []db_models.Recommendation
	adjusted *db_models.TasteProfileData
	scanErr  error
	recErr   error
	adjErr   error

	scanCalls      int
	recommendCalls int
	adjustCalls    int
}

func (f *fakeAnalyzer) ScanMenu(ctx context.Context, image []byte, mimeType string) ([]db_models.MenuItem, error) {
	f.scanCalls++
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	return f.items, nil
}

func (f *fakeAnalyzer) Recommend(ctx context.Context, items []db_models.MenuItem, profile db_models.TasteProfileData, mood string) ([]db_models.Recommendation, error) {
	f.recommendCalls++
	if f.recErr != nil {
		return nil, f.recErr
	}
	return f.recs, nil
}

func (f *fakeAnalyzer) AdjustProfile(ctx context.Context, dish string, rating int, profile db_models.TasteProfileData) (db_models.TasteProfileData, error) {
	f.adjustCalls++
	if f.adjErr != nil {
		return profile, f.adjErr
	}
	if f.adjusted != nil {
		return *f.adjusted, nil
	}
	return profile, nil
}

type sentMail struct {
	kind  string
	to    string
	token string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeMailer) record(kind, to, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{kind: kind, to: to, token: token})
	return nil
}

func (f *fakeMailer) SendVerificationEmail(ctx context.Context, to, name, token string) error {
	return f.record("verify", to, token)
}

func (f *fakeMailer) SendPasswordResetEmail(ctx context.Context, to, token string) error {
	return f.record("reset", to, token)
}

func (f *fakeMailer) SendMarketingEmail(ctx context.Context, to, name string) error {
	return f.record("marketing", to, "")
}

func (f *fakeMailer) last(t *testing.T) sentMail {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		t.Fatalf("no mail sent")
	}
	return f.sent[len(f.sent)-1]
}

type fakeImageStore struct {
	url   string
	err   error
	calls int
}

func (f *fakeImageStore) Save(ctx context.Context, userID uuid.UUID, data []byte, mimeType string) (string, error) {
	f.calls++
	return f.url, f.err
}

var errProvider = errors.New("provider unavailable")
