package db_models

import (
	"fmt"

	"github.com/google/uuid"
)

type MandateStatus string

const (
	MandatePendingAuth MandateStatus = "pending_auth"
	MandateActive      MandateStatus = "active"
	MandateCompleted   MandateStatus = "completed"
	MandateFailed      MandateStatus = "failed"
	MandateReplaced    MandateStatus = "replaced"
)

// mandateTransitions: pending_auth -> active -> completed; pending_auth|active -> failed;
// failed -> replaced once a successor mandate exists. completed and replaced are terminal.
var mandateTransitions = map[MandateStatus][]MandateStatus{
	MandatePendingAuth: {MandateActive, MandateCompleted, MandateFailed},
	MandateActive:      {MandateCompleted, MandateFailed},
	MandateFailed:      {MandateReplaced},
	MandateCompleted:   {},
	MandateReplaced:    {},
}

func (s MandateStatus) CanTransitionTo(next MandateStatus) bool {
	for _, allowed := range mandateTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Mandate is a provider-side recurring debit authorization. Rows are immutable
// history apart from status and the successor link; failover inserts a new row
// instead of rewriting the old one.
type Mandate struct {
	BaseModel
	OrderID           uuid.UUID `gorm:"index"`
	CustomerAccountID uuid.UUID `gorm:"index"`
	OnepipeMandateID  string    `gorm:"size:255;uniqueIndex"`
	VirtualAccount    *string   `gorm:"size:20"`
	// AmountPerInstallment is in minor currency units (kobo).
	AmountPerInstallment int64
	TotalInstallments    int
	InstallmentsPaid     int   `gorm:"default:0"`
	StartDate            int64 // unix seconds
	EndDate              int64 // unix seconds
	Status               MandateStatus `gorm:"size:20;index;default:pending_auth"`
	ReplacedByMandateID  *uuid.UUID

	Order           Order           `gorm:"foreignKey:OrderID"`
	CustomerAccount CustomerAccount `gorm:"foreignKey:CustomerAccountID"`
}

// Settled reports whether the mandate no longer accepts payment events.
// Counters are final once a mandate completes, fails, or is replaced.
func (m *Mandate) Settled() bool {
	switch m.Status {
	case MandateCompleted, MandateFailed, MandateReplaced:
		return true
	}
	return false
}

func (m *Mandate) Transition(next MandateStatus) error {
	if m.Status == next {
		return nil
	}
	if !m.Status.CanTransitionTo(next) {
		return fmt.Errorf("mandate %s: illegal transition %s -> %s", m.ID, m.Status, next)
	}
	m.Status = next
	return nil
}
