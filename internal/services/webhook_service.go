package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"easyshop/internal/models/db_models"
	"easyshop/internal/models/request_models"
	mem "easyshop/pkg/memcache"
	"easyshop/pkg/utils"
)

type WebhookConfig struct {
	// Secret signs inbound payment-result payloads (HMAC-SHA256 over the raw
	// body). Rejection happens before any parsing with side effects.
	Secret string
}

type WebhookService interface {
	HandleWebhook(c *gin.Context)
	// ProcessEvent applies one payment-result event exactly once. Redeliveries
	// with a known transaction_reference return ErrDuplicateEvent.
	ProcessEvent(ctx context.Context, event *request_models.WebhookEvent, raw []byte) error
	HealthSnapshot(ctx context.Context) (map[string]any, error)
}

type webhookService struct {
	db            *gorm.DB
	cfg           WebhookConfig
	orderService  OrderService
	customerLocks mem.CustomerLocks
	notifier      NotificationService
}

func NewWebhookService(
	db *gorm.DB,
	cfg WebhookConfig,
	orderService OrderService,
	customerLocks mem.CustomerLocks,
	notifier NotificationService,
) WebhookService {
	return &webhookService{
		db:            db,
		cfg:           cfg,
		orderService:  orderService,
		customerLocks: customerLocks,
		notifier:      notifier,
	}
}

func (w *webhookService) verifySignature(raw []byte, signature string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(w.cfg.Secret))
	mac.Write(raw)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (w *webhookService) HandleWebhook(c *gin.Context) {

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Printf("Error reading webhook body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	// Signature check first: no state change on mismatch.
	if !w.verifySignature(raw, c.GetHeader("X-Onepipe-Signature")) {
		log.Printf("Invalid webhook signature")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
		return
	}

	var event request_models.WebhookEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		log.Printf("Malformed webhook payload: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook payload"})
		return
	}

	err = w.ProcessEvent(c.Request.Context(), &event, raw)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"message":               "Webhook processed successfully",
			"transaction_reference": event.TransactionReference,
			"event_type":            event.EventType,
		})
	case errors.Is(err, utils.ErrDuplicateEvent):
		// Redelivery after a success is a success.
		c.JSON(http.StatusOK, gin.H{"message": "Already processed"})
	case errors.Is(err, utils.ErrMandateNotFound):
		// Retrying cannot help an unknown mandate; terminal response.
		log.Printf("Webhook for unknown mandate %s", event.MandateID)
		c.JSON(http.StatusNotFound, gin.H{"error": "Mandate not found"})
	default:
		log.Printf("Webhook processing error for %s: %v", event.TransactionReference, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func (w *webhookService) ProcessEvent(ctx context.Context, event *request_models.WebhookEvent, raw []byte) error {

	var mandate db_models.Mandate
	if err := w.db.WithContext(ctx).
		First(&mandate, "onepipe_mandate_id = ?", event.MandateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Webhooks never create mandates.
			return utils.ErrMandateNotFound
		}
		return err
	}

	// Cheap duplicate pre-check. The authoritative gate is the unique index on
	// transaction_reference: a concurrent duplicate that slips past this read
	// dies on the insert below.
	var existing int64
	if err := w.db.WithContext(ctx).
		Model(&db_models.PaymentAttempt{}).
		Where("transaction_reference = ?", event.TransactionReference).
		Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return utils.ErrDuplicateEvent
	}

	var account db_models.CustomerAccount
	if err := w.db.WithContext(ctx).
		First(&account, "id = ?", mandate.CustomerAccountID).Error; err != nil {
		return fmt.Errorf("customer account %s not found for mandate %s: %w",
			mandate.CustomerAccountID, mandate.ID, err)
	}

	// Failover selection and consumption must not race for the same customer:
	// two failed events could otherwise grab the same backup account.
	if !event.Succeeded() {
		customerID := account.CustomerID.String()
		w.customerLocks.Lock(customerID)
		defer w.customerLocks.Unlock(customerID)
	}

	// Attempt insert plus mandate/order updates commit together; a failure
	// anywhere rolls the attempt back too, so redelivery retries cleanly.
	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		attempt := &db_models.PaymentAttempt{
			MandateID:            mandate.ID,
			InstallmentNumber:    installmentNumber(event),
			AmountMinor:          event.AmountMinor(),
			Status:               attemptStatus(event),
			TransactionReference: event.TransactionReference,
			WebhookData:          raw,
			AttemptedAt:          attemptedAt(event),
		}
		if event.FailureReason != "" {
			attempt.FailureReason = &event.FailureReason
		}
		if err := tx.Create(attempt).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return utils.ErrDuplicateEvent
			}
			return err
		}

		// Late events for settled mandates are acknowledged without touching
		// counters or statuses: the attempt is kept for the audit trail, but a
		// completed or replaced mandate never pays or fails again.
		if mandate.Settled() {
			log.Printf("Ignoring %s for settled mandate %s (%s)", event.EventType, mandate.ID, mandate.Status)
			return nil
		}

		var order db_models.Order
		if err := tx.First(&order, "id = ?", mandate.OrderID).Error; err != nil {
			return fmt.Errorf("order not found for mandate %s: %w", mandate.ID, err)
		}

		if event.Succeeded() {
			return w.applySuccess(tx, &mandate, &order, event)
		}
		return w.applyFailure(ctx, tx, &mandate, &order, &account, event)
	})

	return err
}

func (w *webhookService) applySuccess(tx *gorm.DB, mandate *db_models.Mandate, order *db_models.Order, event *request_models.WebhookEvent) error {

	mandate.InstallmentsPaid++
	switch {
	case mandate.InstallmentsPaid >= mandate.TotalInstallments:
		if err := mandate.Transition(db_models.MandateCompleted); err != nil {
			return err
		}
	case mandate.Status == db_models.MandatePendingAuth:
		if err := mandate.Transition(db_models.MandateActive); err != nil {
			return err
		}
	}
	if err := tx.Save(mandate).Error; err != nil {
		return err
	}

	order.InstallmentsPaid++
	order.AmountPaid += event.AmountMinor()
	if order.AmountPaid > order.TotalAmount {
		// Never record more than the order is worth, whatever the sender says.
		order.AmountPaid = order.TotalAmount
	}

	switch {
	case order.InstallmentsPaid >= order.InstallmentCount():
		if err := order.Transition(db_models.OrderCompleted); err != nil {
			return err
		}
	case order.InstallmentsPaid == 1:
		if err := order.Transition(db_models.OrderActive); err != nil {
			return err
		}
	}
	if err := tx.Save(order).Error; err != nil {
		return err
	}

	log.Printf("Payment processed: order %s, installment %d", order.ID, event.InstallmentNumber)
	w.notifier.PaymentReceived(order, event.InstallmentNumber, event.AmountMinor())
	return nil
}

// applyFailure marks the mandate failed and attempts a failover to the next
// verified backup account. With a backup, a successor mandate is opened for
// the remaining installments and linked through replaced_by_mandate_id;
// without one, the order fails.
func (w *webhookService) applyFailure(ctx context.Context, tx *gorm.DB, mandate *db_models.Mandate, order *db_models.Order, failedAccount *db_models.CustomerAccount, event *request_models.WebhookEvent) error {

	log.Printf("Payment failed: mandate %s, installment %d: %s", mandate.ID, event.InstallmentNumber, event.FailureReason)

	if err := mandate.Transition(db_models.MandateFailed); err != nil {
		return err
	}
	if err := tx.Save(mandate).Error; err != nil {
		return err
	}

	var backup db_models.CustomerAccount
	err := tx.
		Where("customer_id = ? AND priority > ? AND verified = ?",
			failedAccount.CustomerID, failedAccount.Priority, true).
		Order("priority ASC").
		First(&backup).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		// No fallback left.
		if err := order.Transition(db_models.OrderFailed); err != nil {
			return err
		}
		if err := tx.Save(order).Error; err != nil {
			return err
		}
		log.Printf("No backup accounts available for order %s", order.ID)
		w.notifier.PaymentMethodExhausted(order)
		return nil
	}

	var customer db_models.Customer
	if err := tx.First(&customer, "id = ?", failedAccount.CustomerID).Error; err != nil {
		return err
	}
	var user db_models.User
	email := ""
	if err := tx.First(&user, "id = ?", customer.UserID).Error; err == nil {
		email = user.Email
	}

	remaining := mandate.TotalInstallments - mandate.InstallmentsPaid
	successor, err := w.orderService.OpenMandate(ctx, tx, order, &customer, email, &backup, remaining, mandate.AmountPerInstallment)
	if err != nil {
		// Rolls back the whole event, attempt included; the sender's
		// redelivery retries the failover.
		return err
	}

	mandate.ReplacedByMandateID = &successor.ID
	if err := mandate.Transition(db_models.MandateReplaced); err != nil {
		return err
	}
	if err := tx.Save(mandate).Error; err != nil {
		return err
	}

	order.CurrentMandateID = &successor.ID
	if err := tx.Save(order).Error; err != nil {
		return err
	}

	log.Printf("Failover: order %s switched to account %s (priority %d)", order.ID, backup.MaskedNumber(), backup.Priority)
	w.notifier.AccountSwitched(order, &backup)
	return nil
}

func (w *webhookService) HealthSnapshot(ctx context.Context) (map[string]any, error) {
	dayStart := time.Now().Truncate(24 * time.Hour).Unix()

	var today int64
	if err := w.db.WithContext(ctx).
		Model(&db_models.PaymentAttempt{}).
		Where("attempted_at >= ?", dayStart).
		Count(&today).Error; err != nil {
		return nil, err
	}

	var last db_models.PaymentAttempt
	var lastAt *int64
	if err := w.db.WithContext(ctx).
		Order("attempted_at DESC").
		First(&last).Error; err == nil {
		lastAt = &last.AttemptedAt
	}

	return map[string]any{
		"status":                   "healthy",
		"last_webhook_received":    lastAt,
		"webhooks_processed_today": today,
		"timestamp":                time.Now().Format(time.RFC3339),
	}, nil
}

func installmentNumber(event *request_models.WebhookEvent) int {
	if event.InstallmentNumber <= 0 {
		return 1
	}
	return event.InstallmentNumber
}

func attemptStatus(event *request_models.WebhookEvent) db_models.AttemptStatus {
	if event.Succeeded() {
		return db_models.AttemptSuccess
	}
	return db_models.AttemptFailed
}

func attemptedAt(event *request_models.WebhookEvent) int64 {
	if event.PaymentDate != "" {
		if t, err := time.Parse(time.RFC3339, event.PaymentDate); err == nil {
			return t.Unix()
		}
	}
	return time.Now().Unix()
}
