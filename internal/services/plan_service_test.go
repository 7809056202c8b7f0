package services

import (
	"context"
	"errors"
	"testing"

	"tastepalette/internal/models/db_models"
	"tastepalette/pkg/utils"
)

func TestQuotaPolicyByPlan(t *testing.T) {
	cases := []struct {
		plan     db_models.Plan
		allowed  int
		attempts int
	}{
		{db_models.PlanBasic, 1, 3},
		{db_models.PlanStandard, 7, 9},
		{db_models.PlanPremium, 12, 12},
	}

	for _, tc := range cases {
		t.Run(string(tc.plan), func(t *testing.T) {
			env := newTestEnv(t)
			quota := NewQuotaService(env.users)
			user := env.seedUser(t, string(tc.plan)+"@example.com", func(u *db_models.User) { u.Plan = tc.plan })

			granted := 0
			for i := 0; i < tc.attempts; i++ {
				err := quota.Reserve(context.Background(), user)
				if err == nil {
					granted++
					continue
				}
				if !errors.Is(err, utils.ErrQuotaExceeded) {
					t.Fatalf("unexpected error: %v", err)
				}
			}
			if granted != tc.allowed {
				t.Fatalf("expected %d reservations, got %d", tc.allowed, granted)
			}
		})
	}
}

func TestQuotaFreePlanUsesScanCredits(t *testing.T) {
	env := newTestEnv(t)
	quota := NewQuotaService(env.users)
	user := env.seedUser(t, "free@example.com", nil)
	ctx := context.Background()

	err := quota.Reserve(ctx, user)
	if !errors.Is(err, utils.ErrQuotaExceeded) {
		t.Fatalf("new free users start with no scans, got %v", err)
	}

	quota.Release(ctx, user)
	if err := quota.Reserve(ctx, user); err != nil {
		t.Fatalf("released credit should be usable: %v", err)
	}
	if got := env.reload(t, user.ID); got.FreeScanCount != 0 || got.UploadsThisWeek != 0 {
		t.Fatalf("unexpected counters %+v", got)
	}
}

func TestQuotaErrorMentionsPlanLimit(t *testing.T) {
	err := quotaError(db_models.PlanStandard)
	if !errors.Is(err, utils.ErrQuotaExceeded) {
		t.Fatalf("expected quota sentinel")
	}
	if got := err.Error(); got == utils.ErrQuotaExceeded.Error() {
		t.Fatalf("expected plan specific message, got %q", got)
	}
}
