package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"easyshop/internal/models/db_models"
	"easyshop/internal/models/request_models"
	"easyshop/pkg/onepipe"
	"easyshop/pkg/utils"
)

func TestCreateOrderSinglePayment(t *testing.T) {
	db := newTestDB(t)
	mock := onepipe.NewMockClient()
	svc := newOrderServiceForTest(db, mock, OrderServiceConfig{})

	user, _ := seedCustomer(t, db, "ada@example.com")
	_, vendor := seedVendor(t, db, "vendor@example.com")
	phone := seedProduct(t, db, vendor, "Phone", 40000, 5)
	charger := seedProduct(t, db, vendor, "Charger", 5000, 10)

	resp, err := svc.CreateOrder(context.Background(), user.ID.String(), &request_models.CreateOrderRequest{
		Items: []request_models.OrderLine{
			{ProductID: phone.ID.String(), Quantity: 1},
			{ProductID: charger.ID.String(), Quantity: 2},
		},
		ShippingAddress: "12 Allen Avenue, Ikeja",
	})
	require.NoError(t, err)

	assert.Equal(t, 50000.0, resp.Order.TotalAmount)
	assert.Equal(t, "pending", resp.Order.Status)
	assert.Nil(t, resp.Mandate)
	assert.Nil(t, resp.PaymentInstructions)
	require.Len(t, resp.Order.Items, 2)

	// stock reserved
	var reloaded db_models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", phone.ID).Error)
	assert.Equal(t, 4, reloaded.StockQuantity)

	// single payments open an invoice, not a mandate
	require.Len(t, mock.OpenedMandates, 1)
	assert.True(t, mock.OpenedMandates[0].SinglePayment)

	var mandates int64
	require.NoError(t, db.Model(&db_models.Mandate{}).Count(&mandates).Error)
	assert.Zero(t, mandates)
}

func TestCreateOrderWithInstallments(t *testing.T) {
	db := newTestDB(t)
	mock := onepipe.NewMockClient()
	svc := newOrderServiceForTest(db, mock, OrderServiceConfig{})

	user, customer := seedCustomer(t, db, "ada@example.com")
	_, vendor := seedVendor(t, db, "vendor@example.com")
	tv := seedProduct(t, db, vendor, "TV", 40000, 3)
	account := seedAccount(t, db, customer, "0123456789", 1, true)

	resp, err := svc.CreateOrder(context.Background(), user.ID.String(), &request_models.CreateOrderRequest{
		Items:           []request_models.OrderLine{{ProductID: tv.ID.String(), Quantity: 1}},
		Installments:    4,
		AccountID:       account.ID.String(),
		ShippingAddress: "12 Allen Avenue, Ikeja",
	})
	require.NoError(t, err)

	assert.Equal(t, "authorized", resp.Order.Status)
	require.NotNil(t, resp.Order.AmountPerInstallment)
	assert.Equal(t, 10000.0, *resp.Order.AmountPerInstallment)

	require.NotNil(t, resp.Mandate)
	assert.Equal(t, "pending_auth", resp.Mandate.Status)
	assert.Equal(t, 4, resp.Mandate.TotalInstallments)
	require.NotNil(t, resp.PaymentInstructions)
	assert.Equal(t, 10000.0, resp.PaymentInstructions.Amount)

	require.Len(t, mock.OpenedMandates, 1)
	opened := mock.OpenedMandates[0]
	assert.False(t, opened.SinglePayment)
	assert.Equal(t, 4, opened.Installments)
	assert.Equal(t, int64(1000000), opened.PerInstallmentMinor)
	assert.Equal(t, "0123456789", opened.AccountNumber)

	var order db_models.Order
	require.NoError(t, db.First(&order, "id = ?", resp.Order.ID).Error)
	require.NotNil(t, order.CurrentMandateID)
	assert.Equal(t, resp.Mandate.ID, *order.CurrentMandateID)
}

func TestCreateOrderInstallmentAmountFloors(t *testing.T) {
	db := newTestDB(t)
	mock := onepipe.NewMockClient()
	svc := newOrderServiceForTest(db, mock, OrderServiceConfig{})

	user, customer := seedCustomer(t, db, "ada@example.com")
	_, vendor := seedVendor(t, db, "vendor@example.com")
	item := seedProduct(t, db, vendor, "Blender", 100.0, 1) // 10000 kobo
	account := seedAccount(t, db, customer, "0123456789", 1, true)

	_, err := svc.CreateOrder(context.Background(), user.ID.String(), &request_models.CreateOrderRequest{
		Items:           []request_models.OrderLine{{ProductID: item.ID.String(), Quantity: 1}},
		Installments:    3,
		AccountID:       account.ID.String(),
		ShippingAddress: "12 Allen Avenue, Ikeja",
	})
	require.NoError(t, err)

	// 10000 / 3 floors to 3333 kobo; the 1 kobo remainder is never billed.
	assert.Equal(t, int64(3333), mock.OpenedMandates[0].PerInstallmentMinor)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	db := newTestDB(t)
	mock := onepipe.NewMockClient()
	svc := newOrderServiceForTest(db, mock, OrderServiceConfig{})

	user, _ := seedCustomer(t, db, "ada@example.com")
	_, vendor := seedVendor(t, db, "vendor@example.com")
	phone := seedProduct(t, db, vendor, "Phone", 40000, 1)

	_, err := svc.CreateOrder(context.Background(), user.ID.String(), &request_models.CreateOrderRequest{
		Items:           []request_models.OrderLine{{ProductID: phone.ID.String(), Quantity: 2}},
		ShippingAddress: "12 Allen Avenue, Ikeja",
	})
	require.ErrorIs(t, err, utils.ErrInsufficientStock)

	// nothing committed
	var orders int64
	require.NoError(t, db.Model(&db_models.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)

	var reloaded db_models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", phone.ID).Error)
	assert.Equal(t, 1, reloaded.StockQuantity)
}

func TestCreateOrderLastUnitFlipsProductOutOfStock(t *testing.T) {
	db := newTestDB(t)
	mock := onepipe.NewMockClient()
	svc := newOrderServiceForTest(db, mock, OrderServiceConfig{})

	user, _ := seedCustomer(t, db, "ada@example.com")
	_, vendor := seedVendor(t, db, "vendor@example.com")
	phone := seedProduct(t, db, vendor, "Phone", 40000, 2)

	_, err := svc.CreateOrder(context.Background(), user.ID.String(), &request_models.CreateOrderRequest{
		Items:           []request_models.OrderLine{{ProductID: phone.ID.String(), Quantity: 2}},
		ShippingAddress: "12 Allen Avenue, Ikeja",
	})
	require.NoError(t, err)

	var reloaded db_models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", phone.ID).Error)
	assert.Equal(t, 0, reloaded.StockQuantity)
	assert.Equal(t, db_models.ProductOutOfStock, reloaded.Status)
}

func TestCreateOrderProviderFailureRollsBack(t *testing.T) {
	db := newTestDB(t)
	mock := onepipe.NewMockClient()
	mock.OpenErr = onepipe.ErrUnknownOutcome
	svc := newOrderServiceForTest(db, mock, OrderServiceConfig{})

	user, customer := seedCustomer(t, db, "ada@example.com")
	_, vendor := seedVendor(t, db, "vendor@example.com")
	tv := seedProduct(t, db, vendor, "TV", 40000, 3)
	account := seedAccount(t, db, customer, "0123456789", 1, true)

	_, err := svc.CreateOrder(context.Background(), user.ID.String(), &request_models.CreateOrderRequest{
		Items:           []request_models.OrderLine{{ProductID: tv.ID.String(), Quantity: 1}},
		Installments:    4,
		AccountID:       account.ID.String(),
		ShippingAddress: "12 Allen Avenue, Ikeja",
	})
	require.ErrorIs(t, err, utils.ErrProviderFailure)

	// order, mandate and stock decrement all rolled back together
	var orders, mandates int64
	require.NoError(t, db.Model(&db_models.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&db_models.Mandate{}).Count(&mandates).Error)
	assert.Zero(t, orders)
	assert.Zero(t, mandates)

	var reloaded db_models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", tv.ID).Error)
	assert.Equal(t, 3, reloaded.StockQuantity)
}

func TestCreateOrderDegradedModeCommitsLocalMandate(t *testing.T) {
	db := newTestDB(t)
	mock := onepipe.NewMockClient()
	mock.OpenErr = onepipe.ErrUnknownOutcome
	svc := newOrderServiceForTest(db, mock, OrderServiceConfig{DegradedMode: true})

	user, customer := seedCustomer(t, db, "ada@example.com")
	_, vendor := seedVendor(t, db, "vendor@example.com")
	tv := seedProduct(t, db, vendor, "TV", 40000, 3)
	account := seedAccount(t, db, customer, "0123456789", 1, true)

	resp, err := svc.CreateOrder(context.Background(), user.ID.String(), &request_models.CreateOrderRequest{
		Items:           []request_models.OrderLine{{ProductID: tv.ID.String(), Quantity: 1}},
		Installments:    4,
		AccountID:       account.ID.String(),
		ShippingAddress: "12 Allen Avenue, Ikeja",
	})
	require.NoError(t, err)

	assert.Equal(t, "authorized", resp.Order.Status)

	var mandate db_models.Mandate
	require.NoError(t, db.First(&mandate, "order_id = ?", resp.Order.ID).Error)
	assert.Equal(t, "LOCAL_"+resp.Order.ID.String(), mandate.OnepipeMandateID)
}

func TestCreateOrderInstallmentValidation(t *testing.T) {
	db := newTestDB(t)
	mock := onepipe.NewMockClient()
	svc := newOrderServiceForTest(db, mock, OrderServiceConfig{MaxInstallments: 12})

	user, customer := seedCustomer(t, db, "ada@example.com")
	_, vendor := seedVendor(t, db, "vendor@example.com")
	tv := seedProduct(t, db, vendor, "TV", 40000, 3)

	base := request_models.CreateOrderRequest{
		Items:           []request_models.OrderLine{{ProductID: tv.ID.String(), Quantity: 1}},
		ShippingAddress: "12 Allen Avenue, Ikeja",
	}

	req := base
	req.Installments = 13
	_, err := svc.CreateOrder(context.Background(), user.ID.String(), &req)
	assert.ErrorIs(t, err, utils.ErrInvalidInstallments)

	req = base
	req.Installments = 4
	_, err = svc.CreateOrder(context.Background(), user.ID.String(), &req)
	assert.ErrorIs(t, err, utils.ErrAccountRequired)

	unverified := seedAccount(t, db, customer, "0123456789", 1, false)
	req = base
	req.Installments = 4
	req.AccountID = unverified.ID.String()
	_, err = svc.CreateOrder(context.Background(), user.ID.String(), &req)
	assert.ErrorIs(t, err, utils.ErrAccountNotVerified)
}

func TestGetOrderEnforcesOwnership(t *testing.T) {
	db := newTestDB(t)
	mock := onepipe.NewMockClient()
	svc := newOrderServiceForTest(db, mock, OrderServiceConfig{})

	owner, _ := seedCustomer(t, db, "ada@example.com")
	other, _ := seedCustomer(t, db, "bola@example.com")
	_, vendor := seedVendor(t, db, "vendor@example.com")
	phone := seedProduct(t, db, vendor, "Phone", 40000, 5)

	resp, err := svc.CreateOrder(context.Background(), owner.ID.String(), &request_models.CreateOrderRequest{
		Items:           []request_models.OrderLine{{ProductID: phone.ID.String(), Quantity: 1}},
		ShippingAddress: "12 Allen Avenue, Ikeja",
	})
	require.NoError(t, err)
	orderID := resp.Order.ID.String()

	_, err = svc.GetOrder(context.Background(), owner.ID.String(), "customer", orderID)
	assert.NoError(t, err)

	_, err = svc.GetOrder(context.Background(), other.ID.String(), "customer", orderID)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	// vendors see orders placed against them, admins see everything
	vendorUser := vendor.UserID.String()
	_, err = svc.GetOrder(context.Background(), vendorUser, "vendor", orderID)
	assert.NoError(t, err)

	_, err = svc.GetOrder(context.Background(), other.ID.String(), "admin", orderID)
	assert.NoError(t, err)
}

func TestListOrdersReturnsOwnOrdersOnly(t *testing.T) {
	db := newTestDB(t)
	mock := onepipe.NewMockClient()
	svc := newOrderServiceForTest(db, mock, OrderServiceConfig{})

	ada, _ := seedCustomer(t, db, "ada@example.com")
	bola, _ := seedCustomer(t, db, "bola@example.com")
	_, vendor := seedVendor(t, db, "vendor@example.com")
	phone := seedProduct(t, db, vendor, "Phone", 40000, 5)

	for _, u := range []string{ada.ID.String(), ada.ID.String(), bola.ID.String()} {
		_, err := svc.CreateOrder(context.Background(), u, &request_models.CreateOrderRequest{
			Items:           []request_models.OrderLine{{ProductID: phone.ID.String(), Quantity: 1}},
			ShippingAddress: "12 Allen Avenue, Ikeja",
		})
		require.NoError(t, err)
	}

	orders, err := svc.ListOrders(context.Background(), ada.ID.String())
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}
