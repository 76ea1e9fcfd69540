package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"easyshop/internal/models/db_models"
	"easyshop/internal/models/request_models"
)

type ProductRepository interface {
	Insert(ctx context.Context, product *db_models.Product) error
	FindById(ctx context.Context, id string) (*db_models.Product, error)
	List(ctx context.Context, q request_models.ListProductsQuery) ([]db_models.Product, int64, error)
	Save(ctx context.Context, product *db_models.Product) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Insert(ctx context.Context, product *db_models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) FindById(ctx context.Context, id string) (*db_models.Product, error) {
	var product db_models.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &product, nil
}

func (r *productRepository) List(ctx context.Context, q request_models.ListProductsQuery) ([]db_models.Product, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&db_models.Product{}).
		Where("status = ?", db_models.ProductActive)

	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}
	if q.MinPrice > 0 {
		query = query.Where("price_minor >= ?", int64(q.MinPrice*100))
	}
	if q.MaxPrice > 0 {
		query = query.Where("price_minor <= ?", int64(q.MaxPrice*100))
	}
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var products []db_models.Product
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(q.Offset).
		Find(&products).Error

	return products, total, err
}

func (r *productRepository) Save(ctx context.Context, product *db_models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}
