package controllers_fx

import (
	"go.uber.org/fx"
	"tastepalette/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewUserController),
	fx.Provide(controllers.NewMenuController),
	fx.Provide(controllers.NewProfileController),
	fx.Provide(controllers.NewDiaryController))
