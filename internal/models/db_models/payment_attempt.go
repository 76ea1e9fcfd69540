package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AttemptStatus string

const (
	AttemptAttempted AttemptStatus = "attempted"
	AttemptSuccess   AttemptStatus = "success"
	AttemptFailed    AttemptStatus = "failed"
)

// PaymentAttempt is an append-only record of one debit result delivered by the
// provider. TransactionReference carries the unique index that makes webhook
// ingestion idempotent: a concurrent duplicate delivery dies on this constraint,
// not on an application-level existence check.
type PaymentAttempt struct {
	BaseModel
	MandateID         uuid.UUID `gorm:"index:idx_mandate_installment"`
	InstallmentNumber int       `gorm:"index:idx_mandate_installment"`
	// AmountMinor is in minor currency units (kobo).
	AmountMinor          int64
	Status               AttemptStatus `gorm:"size:20"`
	FailureReason        *string
	TransactionReference string         `gorm:"size:255;uniqueIndex"`
	// WebhookData keeps the raw provider payload verbatim for audit. The shape
	// is provider-controlled and may drift, so it stays an opaque blob.
	WebhookData datatypes.JSON `gorm:"type:jsonb"`
	AttemptedAt int64          // unix seconds

	Mandate Mandate `gorm:"foreignKey:MandateID"`
}
