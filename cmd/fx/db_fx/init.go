package db_fx

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"gorm.io/gorm"
	"tastepalette/internal/config"
	"tastepalette/internal/infra"
)

var Module = fx.Provide(
	provideDB)

func provideDB(lc fx.Lifecycle, cfg *config.Config) (*gorm.DB, error) {
	db, err := infra.OpenDatabase(cfg)
	if err != nil {
		return nil, err
	}
	if err := infra.Migrate(db); err != nil {
		infra.CloseDatabase(db)
		return nil, fmt.Errorf("migrate: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.CloseDatabase(db)
			return nil
		},
	})
	return db, nil
}
