package menu_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"tastepalette/internal/repositories"
	"tastepalette/internal/services"
)

var Module = fx.Provide(
	provideMenuRepo, services.NewQuotaService, services.NewMenuService)

func provideMenuRepo(db *gorm.DB) repositories.MenuUploadRepository {
	return repositories.NewMenuUploadRepository(db)
}
