package repositories

import (
	"context"
	"testing"
	"time"

	"tastepalette/internal/models/db_models"
)

func TestUpsertKeepsOneProfilePerUser(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	profiles := NewTasteProfileRepository(db)
	user := seedUser(t, users, "a@example.com", nil)

	first := &db_models.TasteProfile{UserID: user.ID}
	data := db_models.DefaultTasteProfile()
	data.FavoriteDishes = []string{"Ramen"}
	first.Apply(data)
	if err := profiles.Upsert(ctx, first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second := &db_models.TasteProfile{UserID: user.ID}
	data.SpicePreference = db_models.SpiceHot
	data.DietaryRestrictions.Vegan = true
	second.Apply(data)
	if err := profiles.Upsert(ctx, second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var count int64
	db.Model(&db_models.TasteProfile{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected one profile, got %d", count)
	}

	stored, err := profiles.FindByUserID(ctx, user.ID)
	if err != nil || stored == nil {
		t.Fatalf("find: %v %v", stored, err)
	}
	got := stored.Data()
	if got.SpicePreference != db_models.SpiceHot || !got.DietaryRestrictions.Vegan || got.FavoriteDishes[0] != "Ramen" {
		t.Fatalf("unexpected stored profile %+v", got)
	}
}

func TestVisitsNewestFirst(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	visits := NewVisitRepository(db)
	user := seedUser(t, users, "a@example.com", nil)

	base := time.Now()
	for i, dish := range []string{"first", "third", "second"} {
		days := []int{-10, 0, -5}
		if err := visits.Create(ctx, &db_models.RestaurantVisit{
			UserID:         user.ID,
			RestaurantName: "R",
			OrderedDish:    dish,
			VisitDate:      base.AddDate(0, 0, days[i]),
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	list, err := visits.ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[0].OrderedDish != "third" || list[2].OrderedDish != "first" {
		t.Fatalf("unexpected order")
	}
}
