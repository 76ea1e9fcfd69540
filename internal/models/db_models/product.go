package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ProductStatus string

const (
	ProductActive     ProductStatus = "active"
	ProductOutOfStock ProductStatus = "out_of_stock"
	ProductArchived   ProductStatus = "archived"
)

type Product struct {
	BaseModel
	VendorID    uuid.UUID `gorm:"index"`
	Name        string    `gorm:"size:200"`
	Description string
	// PriceMinor is the unit price in minor currency units (kobo).
	PriceMinor    int64
	Category      string         `gorm:"size:100;index"`
	StockQuantity int            `gorm:"default:0"`
	Images        datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	Status        ProductStatus  `gorm:"size:20;index;default:active"`

	Vendor Vendor `gorm:"foreignKey:VendorID"`
}
