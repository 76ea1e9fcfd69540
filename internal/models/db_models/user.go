package db_models

import "github.com/google/uuid"

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleVendor   UserRole = "vendor"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	BaseModel
	Email        string   `gorm:"size:255;unique"`
	PasswordHash string
	Role         UserRole `gorm:"size:20;index"`
}

type Customer struct {
	BaseModel
	UserID    uuid.UUID `gorm:"index;unique"`
	FirstName string    `gorm:"size:100"`
	LastName  string    `gorm:"size:100"`
	Phone     string    `gorm:"size:20"`
	Bvn       string    `gorm:"size:11"`

	User User `gorm:"foreignKey:UserID"`
}

func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

type VendorApprovalStatus string

const (
	VendorPending  VendorApprovalStatus = "pending"
	VendorApproved VendorApprovalStatus = "approved"
	VendorRejected VendorApprovalStatus = "rejected"
)

type Vendor struct {
	BaseModel
	UserID                  uuid.UUID            `gorm:"index;unique"`
	BusinessName            string               `gorm:"size:200"`
	BusinessCategory        string               `gorm:"size:100"`
	SettlementAccountNumber string               `gorm:"size:20"`
	SettlementBankCode      string               `gorm:"size:10"`
	ApprovalStatus          VendorApprovalStatus `gorm:"size:20;default:pending"`

	User User `gorm:"foreignKey:UserID"`
}
