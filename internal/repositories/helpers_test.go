package repositories

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"
	"tastepalette/internal/infra"
	"tastepalette/internal/models/db_models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := infra.OpenSQLite(":memory:", nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := infra.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { infra.CloseDatabase(db) })
	return db
}

func seedUser(t *testing.T, repo UserRepository, email string, mutate func(u *db_models.User)) *db_models.User {
	t.Helper()

	user := &db_models.User{
		Email:            email,
		PasswordHash:     "hash",
		Name:             "Test",
		Plan:             db_models.PlanFree,
		LastUploadReset:  time.Now(),
		OnboardingStatus: db_models.OnboardingNotStarted,
	}
	if mutate != nil {
		mutate(user)
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}
