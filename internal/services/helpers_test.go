package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"easyshop/internal/models/db_models"
	"easyshop/internal/repositories"
	mem "easyshop/pkg/memcache"
	"easyshop/pkg/onepipe"
	"easyshop/pkg/utils"
)

// newTestDB opens a throwaway in-memory database with the same schema and
// error translation the production Postgres connection uses.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&db_models.User{},
		&db_models.Customer{},
		&db_models.Vendor{},
		&db_models.CustomerAccount{},
		&db_models.Product{},
		&db_models.Order{},
		&db_models.Mandate{},
		&db_models.PaymentAttempt{},
	))
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, email string) (*db_models.User, *db_models.Customer) {
	t.Helper()

	user := &db_models.User{Email: email, PasswordHash: "x", Role: db_models.RoleCustomer}
	require.NoError(t, db.Create(user).Error)

	customer := &db_models.Customer{
		UserID:    user.ID,
		FirstName: "Ada",
		LastName:  "Obi",
		Phone:     "08031234567",
		Bvn:       "12345678901",
	}
	require.NoError(t, db.Create(customer).Error)
	return user, customer
}

func seedVendor(t *testing.T, db *gorm.DB, email string) (*db_models.User, *db_models.Vendor) {
	t.Helper()

	user := &db_models.User{Email: email, PasswordHash: "x", Role: db_models.RoleVendor}
	require.NoError(t, db.Create(user).Error)

	vendor := &db_models.Vendor{
		UserID:         user.ID,
		BusinessName:   "Lagos Gadgets",
		ApprovalStatus: db_models.VendorApproved,
	}
	require.NoError(t, db.Create(vendor).Error)
	return user, vendor
}

func seedProduct(t *testing.T, db *gorm.DB, vendor *db_models.Vendor, name string, priceMajor float64, stock int) *db_models.Product {
	t.Helper()

	product := &db_models.Product{
		VendorID:      vendor.ID,
		Name:          name,
		Description:   name,
		PriceMinor:    utils.ToMinor(priceMajor),
		Category:      "electronics",
		StockQuantity: stock,
		Images:        datatypes.JSON("[]"),
		Status:        db_models.ProductActive,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedAccount(t *testing.T, db *gorm.DB, customer *db_models.Customer, number string, priority int, verified bool) *db_models.CustomerAccount {
	t.Helper()

	account := &db_models.CustomerAccount{
		CustomerID:    customer.ID,
		AccountNumber: number,
		BankCode:      "058",
		BankName:      "GTBank",
		AccountName:   "ADA OBI",
		Priority:      priority,
		Verified:      verified,
	}
	require.NoError(t, db.Create(account).Error)
	return account
}

func newOrderServiceForTest(db *gorm.DB, provider onepipe.Client, cfg OrderServiceConfig) OrderService {
	return NewOrderService(
		db,
		provider,
		repositories.NewCustomerRepository(db),
		repositories.NewUserRepository(db),
		repositories.NewCustomerAccountRepository(db),
		cfg,
	)
}

func newWebhookServiceForTest(db *gorm.DB, provider onepipe.Client, secret string) WebhookService {
	orderSvc := newOrderServiceForTest(db, provider, OrderServiceConfig{})
	return NewWebhookService(db, WebhookConfig{Secret: secret}, orderSvc,
		mem.NewCustomerLocks(), NewLogNotificationService())
}
