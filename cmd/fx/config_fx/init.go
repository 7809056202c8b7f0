package config_fx

import (
	"context"
	"io"

	"go.uber.org/fx"
	"tastepalette/internal/config"
	"tastepalette/internal/infra"
)

var Module = fx.Options(
	fx.Provide(config.Load, provideLogWriter),
	fx.Invoke(registerSentry),
)

func provideLogWriter(cfg *config.Config) io.Writer {
	return infra.SetupLogging(cfg)
}

// The writer parameter makes logging set up before anything else logs.
func registerSentry(lc fx.Lifecycle, cfg *config.Config, _ io.Writer) {
	flush := infra.InitSentry(cfg)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			flush()
			return nil
		},
	})
}
