package db_models

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderAuthorized OrderStatus = "authorized"
	OrderActive     OrderStatus = "active"
	OrderShipped    OrderStatus = "shipped"
	OrderCompleted  OrderStatus = "completed"
	OrderFailed     OrderStatus = "failed"
)

// orderTransitions is the closed set of legal status moves. "pending" covers
// single-payment orders that never open a mandate.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderAuthorized, OrderActive, OrderCompleted, OrderFailed},
	OrderAuthorized: {OrderActive, OrderCompleted, OrderFailed},
	OrderActive:     {OrderShipped, OrderCompleted, OrderFailed},
	OrderShipped:    {OrderCompleted},
	OrderCompleted:  {},
	OrderFailed:     {},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderItem is the immutable per-line snapshot captured at order creation.
// Later product mutations never touch it.
type OrderItem struct {
	ProductID     uuid.UUID `json:"product_id"`
	Name          string    `json:"name"`
	PriceMinor    int64     `json:"price_minor"`
	Quantity      int       `json:"quantity"`
	SubtotalMinor int64     `json:"subtotal_minor"`
}

type Order struct {
	BaseModel
	CustomerID uuid.UUID `gorm:"index"`
	VendorID   uuid.UUID `gorm:"index"`
	// All amounts are minor currency units (kobo).
	TotalAmount          int64
	Installments         *int   // nil = single payment
	AmountPerInstallment *int64 // nil = single payment
	InstallmentsPaid     int    `gorm:"default:0"`
	AmountPaid           int64  `gorm:"default:0"`
	Status               OrderStatus    `gorm:"size:20;index;default:pending"`
	CurrentMandateID     *uuid.UUID
	OrderItems           datatypes.JSON `gorm:"type:jsonb"`
	ShippingAddress      string

	Customer Customer `gorm:"foreignKey:CustomerID"`
	Vendor   Vendor   `gorm:"foreignKey:VendorID"`
}

// Transition moves the order to next, refusing anything outside the state machine.
func (o *Order) Transition(next OrderStatus) error {
	if o.Status == next {
		return nil
	}
	if !o.Status.CanTransitionTo(next) {
		return fmt.Errorf("order %s: illegal transition %s -> %s", o.ID, o.Status, next)
	}
	o.Status = next
	return nil
}

// InstallmentCount returns the billing plan length, 1 for single-payment orders.
func (o *Order) InstallmentCount() int {
	if o.Installments == nil {
		return 1
	}
	return *o.Installments
}
