package request_models

type RegisterCustomerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Bvn       string `json:"bvn" binding:"required,len=11"`
}

type RegisterVendorRequest struct {
	Email                   string `json:"email" binding:"required,email"`
	Password                string `json:"password" binding:"required,min=8"`
	BusinessName            string `json:"businessName" binding:"required"`
	BusinessCategory        string `json:"businessCategory" binding:"required"`
	SettlementAccountNumber string `json:"settlementAccountNumber" binding:"required"`
	SettlementBankCode      string `json:"settlementBankCode" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
