package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/samber/lo"

	"easyshop/internal/models/db_models"
	"easyshop/internal/models/request_models"
	"easyshop/internal/models/response_models"
	"easyshop/internal/repositories"
	"easyshop/pkg/utils"
)

type ProductServiceInterface interface {
	CreateProduct(ctx context.Context, userID string, request request_models.CreateProductRequest) (*response_models.ProductResponse, error)
	UpdateProduct(ctx context.Context, userID string, productID string, request request_models.UpdateProductRequest) (*response_models.ProductResponse, error)
	ArchiveProduct(ctx context.Context, userID string, productID string) error
	GetProduct(ctx context.Context, productID string) (*response_models.ProductResponse, error)
	ListProducts(ctx context.Context, query request_models.ListProductsQuery) (*response_models.ProductListResponse, error)
}

type ProductService struct {
	productRepo  repositories.ProductRepository
	customerRepo repositories.CustomerRepository
}

func NewProductService(productRepo repositories.ProductRepository, customerRepo repositories.CustomerRepository) ProductServiceInterface {
	return &ProductService{
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

func (p *ProductService) CreateProduct(ctx context.Context, userID string, request request_models.CreateProductRequest) (*response_models.ProductResponse, error) {

	vendor, err := p.resolveVendor(ctx, userID)
	if err != nil {
		return nil, err
	}

	images, err := json.Marshal(request.Images)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	status := db_models.ProductActive
	if request.StockQuantity == 0 {
		status = db_models.ProductOutOfStock
	}

	product := &db_models.Product{
		VendorID:      vendor.ID,
		Name:          request.Name,
		Description:   request.Description,
		PriceMinor:    utils.ToMinor(request.Price),
		Category:      request.Category,
		StockQuantity: request.StockQuantity,
		Images:        images,
		Status:        status,
	}

	if err := p.productRepo.Insert(ctx, product); err != nil {
		log.Printf("Product create failed for vendor %s: %v", vendor.ID, err)
		return nil, utils.ErrDatabaseError
	}

	return productResponse(product), nil
}

func (p *ProductService) UpdateProduct(ctx context.Context, userID string, productID string, request request_models.UpdateProductRequest) (*response_models.ProductResponse, error) {

	vendor, product, err := p.resolveOwnedProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	if request.Name != nil {
		product.Name = *request.Name
	}
	if request.Description != nil {
		product.Description = *request.Description
	}
	if request.Price != nil {
		product.PriceMinor = utils.ToMinor(*request.Price)
	}
	if request.Category != nil {
		product.Category = *request.Category
	}
	if request.StockQuantity != nil {
		product.StockQuantity = *request.StockQuantity
	}
	if request.Images != nil {
		images, err := json.Marshal(request.Images)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		product.Images = images
	}

	// Stock edits move the product between active and out_of_stock, but an
	// archived product stays archived.
	if product.Status != db_models.ProductArchived {
		if product.StockQuantity > 0 {
			product.Status = db_models.ProductActive
		} else {
			product.Status = db_models.ProductOutOfStock
		}
	}

	if err := p.productRepo.Save(ctx, product); err != nil {
		log.Printf("Product update failed for vendor %s: %v", vendor.ID, err)
		return nil, utils.ErrDatabaseError
	}

	return productResponse(product), nil
}

func (p *ProductService) ArchiveProduct(ctx context.Context, userID string, productID string) error {

	_, product, err := p.resolveOwnedProduct(ctx, userID, productID)
	if err != nil {
		return err
	}

	product.Status = db_models.ProductArchived
	if err := p.productRepo.Save(ctx, product); err != nil {
		return utils.ErrDatabaseError
	}

	return nil
}

func (p *ProductService) GetProduct(ctx context.Context, productID string) (*response_models.ProductResponse, error) {
	product, err := p.productRepo.FindById(ctx, productID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if product == nil || product.Status == db_models.ProductArchived {
		return nil, utils.ErrProductNotFound
	}
	return productResponse(product), nil
}

func (p *ProductService) ListProducts(ctx context.Context, query request_models.ListProductsQuery) (*response_models.ProductListResponse, error) {

	products, total, err := p.productRepo.List(ctx, query)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	limit := query.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	return &response_models.ProductListResponse{
		Products: lo.Map(products, func(product db_models.Product, _ int) response_models.ProductResponse {
			return *productResponse(&product)
		}),
		Pagination: response_models.Pagination{
			Total:  total,
			Limit:  limit,
			Offset: query.Offset,
		},
	}, nil
}

func (p *ProductService) resolveVendor(ctx context.Context, userID string) (*db_models.Vendor, error) {
	vendor, err := p.customerRepo.FindVendorByUserId(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if vendor == nil {
		return nil, utils.ErrVendorNotFound
	}
	return vendor, nil
}

func (p *ProductService) resolveOwnedProduct(ctx context.Context, userID string, productID string) (*db_models.Vendor, *db_models.Product, error) {
	vendor, err := p.resolveVendor(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	product, err := p.productRepo.FindById(ctx, productID)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}
	if product == nil {
		return nil, nil, utils.ErrProductNotFound
	}
	if product.VendorID != vendor.ID {
		return nil, nil, utils.ErrForbidden
	}

	return vendor, product, nil
}

func productResponse(product *db_models.Product) *response_models.ProductResponse {
	var images []string
	if len(product.Images) > 0 {
		_ = json.Unmarshal(product.Images, &images)
	}
	if images == nil {
		images = []string{}
	}

	return &response_models.ProductResponse{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		Price:         utils.ToMajor(product.PriceMinor),
		Category:      product.Category,
		StockQuantity: product.StockQuantity,
		Images:        images,
		Status:        string(product.Status),
	}
}
