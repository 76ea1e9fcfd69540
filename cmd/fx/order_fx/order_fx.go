package order_fx

import (
	"os"
	"strconv"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"easyshop/internal/repositories"
	"easyshop/internal/services"
	"easyshop/pkg/onepipe"
)

var Module = fx.Provide(provideOrderService)

func provideOrderService(
	db *gorm.DB,
	provider onepipe.Client,
	customerRepo repositories.CustomerRepository,
	userRepo repositories.UserRepository,
	accountRepo repositories.CustomerAccountRepository,
) services.OrderService {
	maxInstallments, _ := strconv.Atoi(os.Getenv("MAX_INSTALLMENTS"))

	return services.NewOrderService(db, provider, customerRepo, userRepo, accountRepo, services.OrderServiceConfig{
		DegradedMode:    os.Getenv("ORDER_DEGRADED_MODE") == "true",
		MaxInstallments: maxInstallments,
	})
}
