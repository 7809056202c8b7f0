package services

import (
	"context"
	"errors"
	"testing"

	"tastepalette/internal/models/db_models"
	"tastepalette/internal/models/request_models"
	"tastepalette/pkg/utils"
)

func newMenuService(env *testEnv, analyzer *fakeAnalyzer, images ImageStore) MenuServiceInterface {
	return NewMenuService(env.users, env.menus, env.profiles, NewQuotaService(env.users), analyzer, images)
}

func menuInput() request_models.MenuUploadInput {
	return request_models.MenuUploadInput{
		Image:          []byte{0xff, 0xd8, 0xff},
		MimeType:       "image/jpeg",
		Mood:           "cozy",
		RestaurantName: "Pho 24",
	}
}

func TestUploadConsumesLastFreeScanThenRejects(t *testing.T) {
	env := newTestEnv(t)
	analyzer := &fakeAnalyzer{items: []db_models.MenuItem{{Name: "Pho"}}}
	svc := newMenuService(env, analyzer, NewNoopImageStore())
	user := env.seedUser(t, "scan@example.com", func(u *db_models.User) { u.FreeScanCount = 1 })
	ctx := context.Background()

	resp, err := svc.Upload(ctx, user.ID, menuInput())
	if err != nil {
		t.Fatalf("first upload: %v", err)
	}
	if len(resp.ParsedText) != 1 || resp.RestaurantName != "Pho 24" {
		t.Fatalf("unexpected upload %+v", resp)
	}
	if len(resp.Recommendations) != 0 || analyzer.recommendCalls != 0 {
		t.Fatalf("users without a profile get no recommendations")
	}
	if got := env.reload(t, user.ID).FreeScanCount; got != 0 {
		t.Fatalf("expected free scans to drop to 0, got %d", got)
	}

	_, err = svc.Upload(ctx, user.ID, menuInput())
	if !errors.Is(err, utils.ErrQuotaExceeded) {
		t.Fatalf("expected quota error, got %v", err)
	}
	if analyzer.scanCalls != 1 {
		t.Fatalf("model must not be called once quota is exhausted, calls=%d", analyzer.scanCalls)
	}
}

func TestUploadRefundsQuotaWhenScanFails(t *testing.T) {
	env := newTestEnv(t)
	analyzer := &fakeAnalyzer{scanErr: utils.ErrModelResponse}
	svc := newMenuService(env, analyzer, NewNoopImageStore())
	user := env.seedUser(t, "refund@example.com", func(u *db_models.User) { u.FreeScanCount = 2 })

	if _, err := svc.Upload(context.Background(), user.ID, menuInput()); !errors.Is(err, utils.ErrModelResponse) {
		t.Fatalf("expected model error, got %v", err)
	}
	if got := env.reload(t, user.ID).FreeScanCount; got != 2 {
		t.Fatalf("expected refund back to 2, got %d", got)
	}
}

func TestUploadRefundsWeeklyQuotaWhenRecommendFails(t *testing.T) {
	env := newTestEnv(t)
	analyzer := &fakeAnalyzer{items: []db_models.MenuItem{{Name: "Pho"}}, recErr: utils.ErrModelResponse}
	svc := newMenuService(env, analyzer, NewNoopImageStore())
	user := env.seedUser(t, "basic@example.com", func(u *db_models.User) { u.Plan = db_models.PlanBasic })
	env.seedProfile(t, user.ID)

	if _, err := svc.Upload(context.Background(), user.ID, menuInput()); !errors.Is(err, utils.ErrModelResponse) {
		t.Fatalf("expected model error, got %v", err)
	}
	if got := env.reload(t, user.ID).UploadsThisWeek; got != 0 {
		t.Fatalf("expected weekly counter refunded, got %d", got)
	}
}

func TestUploadRejectsInvalidImageBeforeQuota(t *testing.T) {
	env := newTestEnv(t)
	analyzer := &fakeAnalyzer{}
	svc := newMenuService(env, analyzer, NewNoopImageStore())
	user := env.seedUser(t, "pdf@example.com", func(u *db_models.User) { u.FreeScanCount = 1 })

	input := menuInput()
	input.MimeType = "application/pdf"
	if _, err := svc.Upload(context.Background(), user.ID, input); !errors.Is(err, utils.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got := env.reload(t, user.ID).FreeScanCount; got != 1 {
		t.Fatalf("quota must not be touched, got %d", got)
	}
}

func TestUploadWithProfileRecommendsAndKeepsImage(t *testing.T) {
	env := newTestEnv(t)
	analyzer := &fakeAnalyzer{
		items: []db_models.MenuItem{{Name: "Pho"}, {Name: "Bun Cha"}},
		recs:  []db_models.Recommendation{{DishName: "Pho", Score: 91, Reason: "Warm and mild"}},
	}
	images := &fakeImageStore{url: "https://cdn.example.com/menu.jpg"}
	svc := newMenuService(env, analyzer, images)
	user := env.seedUser(t, "prem@example.com", func(u *db_models.User) { u.Plan = db_models.PlanPremium })
	env.seedProfile(t, user.ID)

	resp, err := svc.Upload(context.Background(), user.ID, menuInput())
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if len(resp.Recommendations) != 1 || resp.Recommendations[0].Score != 91 {
		t.Fatalf("unexpected recommendations %+v", resp.Recommendations)
	}
	if resp.ImageURL != images.url || resp.Mood != "cozy" {
		t.Fatalf("unexpected upload %+v", resp)
	}
	if got := env.reload(t, user.ID).UploadsThisWeek; got != 1 {
		t.Fatalf("premium uploads are still counted, got %d", got)
	}
}

func TestUploadContinuesWhenImageStoreFails(t *testing.T) {
	env := newTestEnv(t)
	analyzer := &fakeAnalyzer{items: []db_models.MenuItem{{Name: "Pho"}}}
	images := &fakeImageStore{err: errors.New("bucket missing")}
	svc := newMenuService(env, analyzer, images)
	user := env.seedUser(t, "store@example.com", func(u *db_models.User) { u.FreeScanCount = 1 })

	resp, err := svc.Upload(context.Background(), user.ID, menuInput())
	if err != nil {
		t.Fatalf("upload should not fail on storage errors: %v", err)
	}
	if resp.ImageURL != "" || images.calls != 1 {
		t.Fatalf("expected empty image url after store failure")
	}
}

func TestMenuOwnershipAndRating(t *testing.T) {
	env := newTestEnv(t)
	analyzer := &fakeAnalyzer{items: []db_models.MenuItem{{Name: "Pho"}}}
	svc := newMenuService(env, analyzer, NewNoopImageStore())
	owner := env.seedUser(t, "owner@example.com", func(u *db_models.User) { u.FreeScanCount = 1 })
	other := env.seedUser(t, "other@example.com", nil)
	ctx := context.Background()

	upload, err := svc.Upload(ctx, owner.ID, menuInput())
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if _, err := svc.Get(ctx, other.ID, upload.ID); !errors.Is(err, utils.ErrMenuNotFound) {
		t.Fatalf("other users must not see the upload, got %v", err)
	}
	if _, err := svc.Get(ctx, owner.ID, "not-a-uuid"); !errors.Is(err, utils.ErrMenuNotFound) {
		t.Fatalf("malformed ids are not found, got %v", err)
	}

	rate := request_models.RateMenuRequest{MenuID: upload.ID, Ratings: map[string]int{"Pho": 5}, Feedback: " great "}
	if _, err := svc.Rate(ctx, other.ID, rate); !errors.Is(err, utils.ErrMenuNotFound) {
		t.Fatalf("other users must not rate the upload, got %v", err)
	}

	rated, err := svc.Rate(ctx, owner.ID, rate)
	if err != nil {
		t.Fatalf("rate: %v", err)
	}
	if rated.Ratings["Pho"] != 5 || rated.Feedback != "great" {
		t.Fatalf("unexpected rated upload %+v", rated)
	}

	malformed := request_models.RateMenuRequest{MenuID: "not-a-uuid", Ratings: map[string]int{"Pho": 4}}
	if _, err := svc.Rate(ctx, owner.ID, malformed); !errors.Is(err, utils.ErrMenuNotFound) {
		t.Fatalf("malformed ids are not found when rating, got %v", err)
	}

	bad := request_models.RateMenuRequest{MenuID: upload.ID, Ratings: map[string]int{"Pho": 6}}
	if _, err := svc.Rate(ctx, owner.ID, bad); !errors.Is(err, utils.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	list, err := svc.List(ctx, owner.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v %v", list, err)
	}

	if err := svc.Delete(ctx, other.ID, upload.ID); !errors.Is(err, utils.ErrMenuNotFound) {
		t.Fatalf("other users must not delete the upload, got %v", err)
	}
	if err := svc.Delete(ctx, owner.ID, upload.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, owner.ID, upload.ID); !errors.Is(err, utils.ErrMenuNotFound) {
		t.Fatalf("deleted upload should be gone, got %v", err)
	}
}
