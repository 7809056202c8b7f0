package account_fx

import (
	"errors"

	"go.uber.org/fx"
	"gorm.io/gorm"
	"tastepalette/internal/config"
	"tastepalette/internal/repositories"
	"tastepalette/internal/services"
	"tastepalette/pkg/utils"
)

var Module = fx.Provide(
	provideUserRepo, provideSessionRepo, provideJWTManager,
	services.NewAccountService, services.NewUserService)

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideSessionRepo(db *gorm.DB) repositories.SessionRepository {
	return repositories.NewSessionRepository(db)
}

func provideJWTManager(cfg *config.Config) (*utils.JWTManager, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	return utils.NewJWTManager(cfg.JWTSecret, cfg.SessionTTL), nil
}
