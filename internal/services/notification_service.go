package services

import (
	"log"

	"easyshop/internal/models/db_models"
	"easyshop/pkg/utils"
)

// NotificationService records the obligations the reconciler incurs towards
// customers and vendors. Delivery itself is out of scope; this implementation
// logs the obligation so nothing is silently dropped.
type NotificationService interface {
	PaymentReceived(order *db_models.Order, installment int, amountMinor int64)
	AccountSwitched(order *db_models.Order, backup *db_models.CustomerAccount)
	PaymentMethodExhausted(order *db_models.Order)
}

type logNotificationService struct{}

func NewLogNotificationService() NotificationService {
	return &logNotificationService{}
}

func (n *logNotificationService) PaymentReceived(order *db_models.Order, installment int, amountMinor int64) {
	log.Printf("notify: payment of %.2f received for order %s (installment %d), customer %s and vendor %s pending notification",
		utils.ToMajor(amountMinor), order.ID, installment, order.CustomerID, order.VendorID)
}

func (n *logNotificationService) AccountSwitched(order *db_models.Order, backup *db_models.CustomerAccount) {
	log.Printf("notify: order %s switched to backup account %s, customer %s pending notification",
		order.ID, backup.MaskedNumber(), order.CustomerID)
}

func (n *logNotificationService) PaymentMethodExhausted(order *db_models.Order) {
	log.Printf("notify: order %s failed with no backup accounts, customer %s must update payment method",
		order.ID, order.CustomerID)
}
