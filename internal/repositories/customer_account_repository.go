package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"easyshop/internal/models/db_models"
)

type CustomerAccountRepository interface {
	Insert(ctx context.Context, account *db_models.CustomerAccount) error
	FindByIdAndCustomer(ctx context.Context, id, customerId string) (*db_models.CustomerAccount, error)
	FindByNumberAndBank(ctx context.Context, accountNumber, bankCode string) (*db_models.CustomerAccount, error)
	ListByCustomer(ctx context.Context, customerId string) ([]db_models.CustomerAccount, error)
	CountByCustomer(ctx context.Context, customerId string) (int64, error)
}

type customerAccountRepository struct {
	db *gorm.DB
}

func NewCustomerAccountRepository(db *gorm.DB) CustomerAccountRepository {
	return &customerAccountRepository{db: db}
}

func (r *customerAccountRepository) Insert(ctx context.Context, account *db_models.CustomerAccount) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *customerAccountRepository) FindByIdAndCustomer(ctx context.Context, id, customerId string) (*db_models.CustomerAccount, error) {
	var account db_models.CustomerAccount
	err := r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", id, customerId).
		First(&account).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (r *customerAccountRepository) FindByNumberAndBank(ctx context.Context, accountNumber, bankCode string) (*db_models.CustomerAccount, error) {
	var account db_models.CustomerAccount
	err := r.db.WithContext(ctx).
		Where("account_number = ? AND bank_code = ?", accountNumber, bankCode).
		First(&account).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (r *customerAccountRepository) ListByCustomer(ctx context.Context, customerId string) ([]db_models.CustomerAccount, error) {
	var accounts []db_models.CustomerAccount
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerId).
		Order("priority ASC").
		Find(&accounts).Error
	return accounts, err
}

func (r *customerAccountRepository) CountByCustomer(ctx context.Context, customerId string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.CustomerAccount{}).
		Where("customer_id = ?", customerId).
		Count(&count).Error
	return count, err
}

