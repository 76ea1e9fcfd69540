package webhook_fx

import (
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"easyshop/internal/services"
	mem "easyshop/pkg/memcache"
)

var Module = fx.Provide(
	provideWebhookService, provideCustomerLocks, provideNotifier)

func provideCustomerLocks() mem.CustomerLocks {
	return mem.NewCustomerLocks()
}

func provideNotifier() services.NotificationService {
	return services.NewLogNotificationService()
}

func provideWebhookService(
	db *gorm.DB,
	orderService services.OrderService,
	customerLocks mem.CustomerLocks,
	notifier services.NotificationService,
) services.WebhookService {
	cfg := services.WebhookConfig{
		Secret: os.Getenv("ONEPIPE_WEBHOOK_SECRET"),
	}
	return services.NewWebhookService(db, cfg, orderService, customerLocks, notifier)
}
