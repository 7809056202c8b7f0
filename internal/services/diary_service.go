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

const unknownRestaurant = "Unknown Restaurant"

type DiaryServiceInterface interface {
	ListVisits(ctx context.Context, userID uuid.UUID) ([]response_models.VisitResponse, error)
	CreateVisit(ctx context.Context, userID uuid.UUID, request request_models.CreateVisitRequest) (*response_models.VisitResponse, error)
	CreateVisitFromScan(ctx context.Context, userID uuid.UUID, request request_models.ScanVisitRequest) (*response_models.VisitResponse, error)
}

type DiaryService struct {
	visitRepo repositories.VisitRepository
	menuRepo  repositories.MenuUploadRepository
	profiles  TasteProfileServiceInterface
	now       func() time.Time
}

func NewDiaryService(
	visitRepo repositories.VisitRepository,
	menuRepo repositories.MenuUploadRepository,
	profiles TasteProfileServiceInterface,
) DiaryServiceInterface {
	return &DiaryService{
		visitRepo: visitRepo,
		menuRepo:  menuRepo,
		profiles:  profiles,
		now:       time.Now,
	}
}

func (d *DiaryService) ListVisits(ctx context.Context, userID uuid.UUID) ([]response_models.VisitResponse, error) {
	visits, err := d.visitRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.VisitResponse, 0, len(visits))
	for i := range visits {
		result = append(result, response_models.NewVisitResponse(&visits[i]))
	}
	return result, nil
}

func (d *DiaryService) CreateVisit(ctx context.Context, userID uuid.UUID, request request_models.CreateVisitRequest) (*response_models.VisitResponse, error) {
	restaurant := strings.TrimSpace(request.RestaurantName)
	dish := strings.TrimSpace(request.OrderedDish)
	if restaurant == "" || dish == "" {
		return nil, fmt.Errorf("%w: restaurant name and ordered dish are required", utils.ErrValidation)
	}
	if err := checkRating(request.Rating); err != nil {
		return nil, err
	}

	menuID, err := d.ownedMenuID(ctx, userID, request.MenuUploadID)
	if err != nil {
		return nil, err
	}

	return d.save(ctx, &db_models.RestaurantVisit{
		UserID:         userID,
		MenuUploadID:   menuID,
		RestaurantName: restaurant,
		OrderedDish:    dish,
		Rating:         request.Rating,
		Notes:          strings.TrimSpace(request.Notes),
		Mood:           strings.TrimSpace(request.Mood),
	})
}

// CreateVisitFromScan records what the user ordered after a scan. A rating
// also nudges the taste profile; that step never fails the request.
func (d *DiaryService) CreateVisitFromScan(ctx context.Context, userID uuid.UUID, request request_models.ScanVisitRequest) (*response_models.VisitResponse, error) {
	dish := strings.TrimSpace(request.OrderedDish)
	if dish == "" {
		return nil, fmt.Errorf("%w: ordered dish is required", utils.ErrValidation)
	}
	if err := checkRating(request.Rating); err != nil {
		return nil, err
	}

	restaurant := strings.TrimSpace(request.RestaurantName)
	var menuID *uuid.UUID
	if request.MenuUploadID != nil && *request.MenuUploadID != "" {
		upload, err := d.ownedMenu(ctx, userID, *request.MenuUploadID)
		if err != nil {
			return nil, err
		}
		menuID = &upload.ID
		if restaurant == "" {
			restaurant = strings.TrimSpace(upload.RestaurantName)
		}
	}
	if restaurant == "" {
		restaurant = unknownRestaurant
	}

	resp, err := d.save(ctx, &db_models.RestaurantVisit{
		UserID:         userID,
		MenuUploadID:   menuID,
		RestaurantName: restaurant,
		OrderedDish:    dish,
		Rating:         request.Rating,
		Notes:          strings.TrimSpace(request.Notes),
		Mood:           strings.TrimSpace(request.Mood),
	})
	if err != nil {
		return nil, err
	}

	if request.Rating != nil {
		if _, err := d.profiles.AdjustFromRating(ctx, userID, dish, *request.Rating); err != nil {
			log.Printf("Profile adjustment after visit %s skipped: %v", resp.ID, err)
		}
	}
	return resp, nil
}

func (d *DiaryService) save(ctx context.Context, visit *db_models.RestaurantVisit) (*response_models.VisitResponse, error) {
	visit.VisitDate = d.now().UTC()
	if err := d.visitRepo.Create(ctx, visit); err != nil {
		log.Printf("Error saving visit for %s: %v", visit.UserID, err)
		return nil, utils.ErrDatabaseError
	}
	resp := response_models.NewVisitResponse(visit)
	return &resp, nil
}

func (d *DiaryService) ownedMenuID(ctx context.Context, userID uuid.UUID, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	upload, err := d.ownedMenu(ctx, userID, *raw)
	if err != nil {
		return nil, err
	}
	return &upload.ID, nil
}

func (d *DiaryService) ownedMenu(ctx context.Context, userID uuid.UUID, raw string) (*db_models.MenuUpload, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: menuUploadId must be a valid id", utils.ErrValidation)
	}
	upload, err := d.menuRepo.FindByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if upload == nil {
		return nil, utils.ErrMenuNotFound
	}
	return upload, nil
}

func checkRating(rating *int) error {
	if rating != nil && (*rating < 1 || *rating > 5) {
		return fmt.Errorf("%w: rating must be between 1 and 5", utils.ErrValidation)
	}
	return nil
}
