package profile_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"tastepalette/internal/repositories"
	"tastepalette/internal/services"
	"tastepalette/pkg/ai"
)

var Module = fx.Provide(
	provideProfileRepo, provideProfileService)

func provideProfileRepo(db *gorm.DB) repositories.TasteProfileRepository {
	return repositories.NewTasteProfileRepository(db)
}

func provideProfileService(repo repositories.TasteProfileRepository, analyzer ai.AnalyzerInterface) services.TasteProfileServiceInterface {
	return services.NewTasteProfileService(repo, analyzer)
}
