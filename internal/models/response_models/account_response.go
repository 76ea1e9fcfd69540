package response_models

import "github.com/google/uuid"

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

type BankAccountResponse struct {
	ID                  uuid.UUID `json:"id"`
	AccountNumberMasked string    `json:"accountNumberMasked"`
	BankCode            string    `json:"bankCode"`
	BankName            string    `json:"bankName"`
	AccountName         string    `json:"accountName"`
	Priority            int       `json:"priority"`
	Verified            bool      `json:"verified"`
	BvnVerifiedAt       *int64    `json:"bvnVerifiedAt"`
	CreatedAt           int64     `json:"createdAt"`
}
