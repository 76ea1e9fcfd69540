package controllers_fx

import (
	"go.uber.org/fx"

	"easyshop/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAuthController),
	fx.Provide(controllers.NewBankAccountController),
	fx.Provide(controllers.NewProductController),
	fx.Provide(controllers.NewOrderController),
	fx.Provide(controllers.NewWebhookController))
