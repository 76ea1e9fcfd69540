package request_models

type OrderLine struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	Items           []OrderLine `json:"items" binding:"required,min=1,dive"`
	Installments    int         `json:"installments"` // 0 or 1 = single payment
	AccountID       string      `json:"accountId"`    // required when Installments > 1
	ShippingAddress string      `json:"shippingAddress" binding:"required"`
}
