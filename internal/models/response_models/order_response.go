package response_models

import "github.com/google/uuid"

type OrderItemResponse struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	Subtotal  float64   `json:"subtotal"`
}

type OrderSummary struct {
	ID                   uuid.UUID           `json:"id"`
	TotalAmount          float64             `json:"totalAmount"`
	Installments         *int                `json:"installments,omitempty"`
	AmountPerInstallment *float64            `json:"amountPerInstallment,omitempty"`
	InstallmentsPaid     int                 `json:"installmentsPaid"`
	AmountPaid           float64             `json:"amountPaid"`
	Status               string              `json:"status"`
	ShippingAddress      string              `json:"shippingAddress,omitempty"`
	CreatedAt            int64               `json:"createdAt"`
	Items                []OrderItemResponse `json:"items"`
}

type MandateSummary struct {
	ID                   uuid.UUID `json:"id"`
	VirtualAccount       *string   `json:"virtualAccount,omitempty"`
	AmountPerInstallment float64   `json:"amountPerInstallment"`
	TotalInstallments    int       `json:"totalInstallments"`
	InstallmentsPaid     int       `json:"installmentsPaid"`
	Status               string    `json:"status"`
	StartDate            int64     `json:"startDate"`
	EndDate              int64     `json:"endDate"`
}

type PaymentInstructions struct {
	Message        string  `json:"message"`
	VirtualAccount *string `json:"virtualAccount,omitempty"`
	Amount         float64 `json:"amount"`
	BankName       string  `json:"bankName"`
}

type CreateOrderResponse struct {
	Order               OrderSummary         `json:"order"`
	Mandate             *MandateSummary      `json:"mandate,omitempty"`
	PaymentInstructions *PaymentInstructions `json:"paymentInstructions,omitempty"`
}

type OrderDetailResponse struct {
	Order   OrderSummary    `json:"order"`
	Mandate *MandateSummary `json:"mandate,omitempty"`
}
