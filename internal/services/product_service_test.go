package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"easyshop/internal/models/request_models"
	"easyshop/internal/repositories"
	"easyshop/pkg/utils"
)

func newProductServiceForTest(db *gorm.DB) ProductServiceInterface {
	return NewProductService(
		repositories.NewProductRepository(db),
		repositories.NewCustomerRepository(db),
	)
}

func TestCreateAndGetProduct(t *testing.T) {
	db := newTestDB(t)
	svc := newProductServiceForTest(db)
	vendorUser, _ := seedVendor(t, db, "vendor@example.com")

	created, err := svc.CreateProduct(context.Background(), vendorUser.ID.String(), request_models.CreateProductRequest{
		Name:          "Standing Fan",
		Description:   "18 inch standing fan",
		Price:         24999.99,
		Category:      "appliances",
		StockQuantity: 10,
		Images:        []string{"https://cdn.example.com/fan.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, "active", created.Status)
	assert.Equal(t, 24999.99, created.Price)

	fetched, err := svc.GetProduct(context.Background(), created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Standing Fan", fetched.Name)
	assert.Equal(t, []string{"https://cdn.example.com/fan.jpg"}, fetched.Images)
}

func TestCreateProductWithZeroStockIsOutOfStock(t *testing.T) {
	db := newTestDB(t)
	svc := newProductServiceForTest(db)
	vendorUser, _ := seedVendor(t, db, "vendor@example.com")

	created, err := svc.CreateProduct(context.Background(), vendorUser.ID.String(), request_models.CreateProductRequest{
		Name:        "Standing Fan",
		Description: "18 inch standing fan",
		Price:       24999.99,
		Category:    "appliances",
	})
	require.NoError(t, err)
	assert.Equal(t, "out_of_stock", created.Status)
}

func TestUpdateProductRestockReactivates(t *testing.T) {
	db := newTestDB(t)
	svc := newProductServiceForTest(db)
	vendorUser, vendor := seedVendor(t, db, "vendor@example.com")
	product := seedProduct(t, db, vendor, "Phone", 40000, 0)
	require.NoError(t, db.Model(product).Update("status", "out_of_stock").Error)

	stock := 5
	updated, err := svc.UpdateProduct(context.Background(), vendorUser.ID.String(), product.ID.String(), request_models.UpdateProductRequest{
		StockQuantity: &stock,
	})
	require.NoError(t, err)
	assert.Equal(t, "active", updated.Status)
	assert.Equal(t, 5, updated.StockQuantity)
}

func TestUpdateProductOwnershipEnforced(t *testing.T) {
	db := newTestDB(t)
	svc := newProductServiceForTest(db)
	_, vendor := seedVendor(t, db, "vendor@example.com")
	otherUser, _ := seedVendor(t, db, "other@example.com")
	product := seedProduct(t, db, vendor, "Phone", 40000, 5)

	name := "Hijacked"
	_, err := svc.UpdateProduct(context.Background(), otherUser.ID.String(), product.ID.String(), request_models.UpdateProductRequest{
		Name: &name,
	})
	assert.ErrorIs(t, err, utils.ErrForbidden)
}

func TestArchivedProductHiddenFromReads(t *testing.T) {
	db := newTestDB(t)
	svc := newProductServiceForTest(db)
	vendorUser, vendor := seedVendor(t, db, "vendor@example.com")
	product := seedProduct(t, db, vendor, "Phone", 40000, 5)

	require.NoError(t, svc.ArchiveProduct(context.Background(), vendorUser.ID.String(), product.ID.String()))

	_, err := svc.GetProduct(context.Background(), product.ID.String())
	assert.ErrorIs(t, err, utils.ErrProductNotFound)

	listed, err := svc.ListProducts(context.Background(), request_models.ListProductsQuery{})
	require.NoError(t, err)
	assert.Empty(t, listed.Products)
}

func TestListProductsFilters(t *testing.T) {
	db := newTestDB(t)
	svc := newProductServiceForTest(db)
	_, vendor := seedVendor(t, db, "vendor@example.com")
	seedProduct(t, db, vendor, "Phone", 40000, 5)
	seedProduct(t, db, vendor, "Charger", 5000, 5)

	byPrice, err := svc.ListProducts(context.Background(), request_models.ListProductsQuery{MaxPrice: 10000})
	require.NoError(t, err)
	require.Len(t, byPrice.Products, 1)
	assert.Equal(t, "Charger", byPrice.Products[0].Name)

	bySearch, err := svc.ListProducts(context.Background(), request_models.ListProductsQuery{Search: "pho"})
	require.NoError(t, err)
	require.Len(t, bySearch.Products, 1)
	assert.Equal(t, "Phone", bySearch.Products[0].Name)

	all, err := svc.ListProducts(context.Background(), request_models.ListProductsQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Pagination.Total)
}
