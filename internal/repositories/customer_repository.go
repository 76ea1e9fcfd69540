package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"easyshop/internal/models/db_models"
)

type CustomerRepository interface {
	FindById(ctx context.Context, id string) (*db_models.Customer, error)
	FindByUserId(ctx context.Context, userId string) (*db_models.Customer, error)
	FindVendorByUserId(ctx context.Context, userId string) (*db_models.Vendor, error)
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) FindById(ctx context.Context, id string) (*db_models.Customer, error) {
	var customer db_models.Customer
	err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &customer, nil
}

func (r *customerRepository) FindByUserId(ctx context.Context, userId string) (*db_models.Customer, error) {
	var customer db_models.Customer
	err := r.db.WithContext(ctx).First(&customer, "user_id = ?", userId).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &customer, nil
}

func (r *customerRepository) FindVendorByUserId(ctx context.Context, userId string) (*db_models.Vendor, error) {
	var vendor db_models.Vendor
	err := r.db.WithContext(ctx).First(&vendor, "user_id = ?", userId).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &vendor, nil
}
