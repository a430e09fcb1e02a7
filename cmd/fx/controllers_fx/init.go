package controllers_fx

import (
	"go.uber.org/fx"
	"wayfarer/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAssistantController),
	fx.Provide(controllers.NewTripController),
	fx.Provide(controllers.NewExploreController))
