package jobs_fx

import (
	"go.uber.org/fx"
	"tastepalette/internal/jobs"
)

var Module = fx.Provide(jobs.NewMaintenance)
