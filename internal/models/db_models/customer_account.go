package db_models

import "github.com/google/uuid"

// CustomerAccount is a linked bank account usable for mandates. Priority 1 is
// the preferred account; failover walks upwards through verified accounts.
// (account_number, bank_code) is unique system-wide, not just per customer.
// The per-customer priority sequence (unique, consecutive from 1) is managed
// by the bank account service.
type CustomerAccount struct {
	BaseModel
	CustomerID    uuid.UUID `gorm:"index"`
	AccountNumber string    `gorm:"size:20;uniqueIndex:idx_account_bank"`
	BankCode      string    `gorm:"size:10;uniqueIndex:idx_account_bank"`
	BankName      string    `gorm:"size:100"`
	AccountName   string    `gorm:"size:200"`
	Priority      int       `gorm:"index"`
	Verified      bool      `gorm:"default:false"`
	BvnVerifiedAt *int64    // unix seconds

	Customer Customer `gorm:"foreignKey:CustomerID"`
}

func (a *CustomerAccount) MaskedNumber() string {
	if len(a.AccountNumber) <= 4 {
		return a.AccountNumber
	}
	return "****" + a.AccountNumber[len(a.AccountNumber)-4:]
}
