package request_models

type AddBankAccountRequest struct {
	AccountNumber string `json:"accountNumber" binding:"required,len=10"`
	BankCode      string `json:"bankCode" binding:"required"`
	BankName      string `json:"bankName" binding:"required"`
	Bvn           string `json:"bvn" binding:"required,len=11"`
}

type UpdateAccountPriorityRequest struct {
	Priority int `json:"priority" binding:"required,min=1"`
}
