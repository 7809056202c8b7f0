package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"tastepalette/internal/models/db_models"
	"tastepalette/internal/models/request_models"
	"tastepalette/internal/models/response_models"
	"tastepalette/internal/repositories"
	"tastepalette/pkg/ai"
	"tastepalette/pkg/utils"
)

type MenuServiceInterface interface {
	Upload(ctx context.Context, userID uuid.UUID, input request_models.MenuUploadInput) (*response_models.MenuUploadResponse, error)
	List(ctx context.Context, userID uuid.UUID) ([]response_models.MenuUploadResponse, error)
	Get(ctx context.Context, userID uuid.UUID, menuID string) (*response_models.MenuUploadResponse, error)
	Delete(ctx context.Context, userID uuid.UUID, menuID string) error
	Rate(ctx context.Context, userID uuid.UUID, request request_models.RateMenuRequest) (*response_models.MenuUploadResponse, error)
}

type MenuService struct {
	userRepo    repositories.UserRepository
	menuRepo    repositories.MenuUploadRepository
	profileRepo repositories.TasteProfileRepository
	quota       QuotaServiceInterface
	analyzer    ai.AnalyzerInterface
	images      ImageStore
}

func NewMenuService(
	userRepo repositories.UserRepository,
	menuRepo repositories.MenuUploadRepository,
	profileRepo repositories.TasteProfileRepository,
	quota QuotaServiceInterface,
	analyzer ai.AnalyzerInterface,
	images ImageStore,
) MenuServiceInterface {
	return &MenuService{
		userRepo:    userRepo,
		menuRepo:    menuRepo,
		profileRepo: profileRepo,
		quota:       quota,
		analyzer:    analyzer,
		images:      images,
	}
}

// Upload runs the full scan pipeline. The quota unit is taken before any
// model call and handed back if the scan or the save fails.
func (m *MenuService) Upload(ctx context.Context, userID uuid.UUID, input request_models.MenuUploadInput) (*response_models.MenuUploadResponse, error) {
	if err := ai.ValidateImage(input.Image, input.MimeType); err != nil {
		return nil, err
	}

	user, err := m.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}

	if err := m.quota.Reserve(ctx, user); err != nil {
		return nil, err
	}

	upload, err := m.scan(ctx, user, input)
	if err != nil {
		m.quota.Release(context.WithoutCancel(ctx), user)
		return nil, err
	}

	resp := response_models.NewMenuUploadResponse(upload)
	return &resp, nil
}

func (m *MenuService) scan(ctx context.Context, user *db_models.User, input request_models.MenuUploadInput) (*db_models.MenuUpload, error) {
	startTime := time.Now()

	items, err := m.analyzer.ScanMenu(ctx, input.Image, input.MimeType)
	if err != nil {
		log.Printf("Menu scan failed for %s: %v", user.ID, err)
		return nil, err
	}
	log.Printf("Extracted %d menu items for %s in %s", len(items), user.ID, time.Since(startTime))

	recommendations := []db_models.Recommendation{}
	profile, err := m.profileRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if profile != nil {
		recommendations, err = m.analyzer.Recommend(ctx, items, profile.Data(), strings.TrimSpace(input.Mood))
		if err != nil {
			log.Printf("Recommendation failed for %s: %v", user.ID, err)
			return nil, err
		}
	}

	imageURL, err := m.images.Save(ctx, user.ID, input.Image, input.MimeType)
	if err != nil {
		log.Printf("Storing menu image for %s failed, continuing without it: %v", user.ID, err)
		imageURL = ""
	}

	upload := &db_models.MenuUpload{
		UserID:          user.ID,
		RestaurantName:  strings.TrimSpace(input.RestaurantName),
		Mood:            strings.TrimSpace(input.Mood),
		MenuItems:       datatypes.JSONSlice[db_models.MenuItem](items),
		Recommendations: datatypes.JSONSlice[db_models.Recommendation](recommendations),
		ImageURL:        imageURL,
	}
	if err := m.menuRepo.Create(ctx, upload); err != nil {
		log.Printf("Error saving menu upload for %s: %v", user.ID, err)
		return nil, utils.ErrDatabaseError
	}

	return upload, nil
}

func (m *MenuService) List(ctx context.Context, userID uuid.UUID) ([]response_models.MenuUploadResponse, error) {
	uploads, err := m.menuRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.MenuUploadResponse, 0, len(uploads))
	for i := range uploads {
		result = append(result, response_models.NewMenuUploadResponse(&uploads[i]))
	}
	return result, nil
}

func (m *MenuService) Get(ctx context.Context, userID uuid.UUID, menuID string) (*response_models.MenuUploadResponse, error) {
	upload, err := m.find(ctx, userID, menuID)
	if err != nil {
		return nil, err
	}
	resp := response_models.NewMenuUploadResponse(upload)
	return &resp, nil
}

func (m *MenuService) Delete(ctx context.Context, userID uuid.UUID, menuID string) error {
	id, err := uuid.Parse(menuID)
	if err != nil {
		return utils.ErrMenuNotFound
	}

	deleted, err := m.menuRepo.DeleteForUser(ctx, id, userID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if !deleted {
		return utils.ErrMenuNotFound
	}
	return nil
}

func (m *MenuService) Rate(ctx context.Context, userID uuid.UUID, request request_models.RateMenuRequest) (*response_models.MenuUploadResponse, error) {
	if len(request.Ratings) == 0 {
		return nil, fmt.Errorf("%w: at least one rating is required", utils.ErrValidation)
	}
	ratings := make(map[string]int, len(request.Ratings))
	for dish, score := range request.Ratings {
		dish = strings.TrimSpace(dish)
		if dish == "" {
			return nil, fmt.Errorf("%w: dish name is required", utils.ErrValidation)
		}
		if score < 1 || score > 5 {
			return nil, fmt.Errorf("%w: rating for %s must be between 1 and 5", utils.ErrValidation, dish)
		}
		ratings[dish] = score
	}

	upload, err := m.find(ctx, userID, request.MenuID)
	if err != nil {
		return nil, err
	}

	feedback := strings.TrimSpace(request.Feedback)
	if err := m.menuRepo.SaveRatings(ctx, upload, ratings, feedback); err != nil {
		log.Printf("Error saving ratings for menu %s: %v", upload.ID, err)
		return nil, utils.ErrDatabaseError
	}

	upload.Ratings = datatypes.NewJSONType(ratings)
	upload.Feedback = feedback
	resp := response_models.NewMenuUploadResponse(upload)
	return &resp, nil
}

func (m *MenuService) find(ctx context.Context, userID uuid.UUID, menuID string) (*db_models.MenuUpload, error) {
	id, err := uuid.Parse(menuID)
	if err != nil {
		return nil, utils.ErrMenuNotFound
	}

	upload, err := m.menuRepo.FindByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if upload == nil {
		return nil, utils.ErrMenuNotFound
	}
	return upload, nil
}
