package request_models

import "easyshop/pkg/utils"

// WebhookEvent is the payment-result payload OnePipe delivers. Only the
// fields the reconciler needs are typed; the raw body is kept verbatim on
// the PaymentAttempt for audit.
type WebhookEvent struct {
	EventType            string  `json:"event_type"`
	MandateID            string  `json:"mandate_id"` // provider-assigned external id
	TransactionReference string  `json:"transaction_reference"`
	Amount               float64 `json:"amount"` // major units, provider format
	InstallmentNumber    int     `json:"installment_number"`
	PaymentDate          string  `json:"payment_date"`
	Status               string  `json:"status"` // "success" | "failed"
	FailureReason        string  `json:"failure_reason"`
}

func (e *WebhookEvent) AmountMinor() int64 {
	return utils.ToMinor(e.Amount)
}

func (e *WebhookEvent) Succeeded() bool {
	return e.Status == "success"
}
