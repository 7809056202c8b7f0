package diary_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"tastepalette/internal/repositories"
	"tastepalette/internal/services"
)

var Module = fx.Provide(
	provideVisitRepo, services.NewDiaryService)

func provideVisitRepo(db *gorm.DB) repositories.VisitRepository {
	return repositories.NewVisitRepository(db)
}
