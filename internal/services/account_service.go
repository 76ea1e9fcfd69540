package services

import (
	"context"
	"log"

	"gorm.io/gorm"

	"easyshop/internal/models/db_models"
	"easyshop/internal/models/request_models"
	"easyshop/internal/models/response_models"
	"easyshop/internal/repositories"
	"easyshop/pkg/utils"
)

type AccountServiceInterface interface {
	RegisterCustomer(ctx context.Context, request request_models.RegisterCustomerRequest) (*response_models.UserResponse, error)
	RegisterVendor(ctx context.Context, request request_models.RegisterVendorRequest) (*response_models.UserResponse, error)
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error)
	GetMe(ctx context.Context, userID string) (*response_models.UserResponse, error)
}

type AccountService struct {
	db       *gorm.DB
	userRepo repositories.UserRepository
}

func NewAccountService(db *gorm.DB, userRepo repositories.UserRepository) AccountServiceInterface {
	return &AccountService{
		db:       db,
		userRepo: userRepo,
	}
}

func (a *AccountService) RegisterCustomer(ctx context.Context, request request_models.RegisterCustomerRequest) (*response_models.UserResponse, error) {

	existing, err := a.userRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	user := &db_models.User{
		Email:        request.Email,
		PasswordHash: hashedPassword,
		Role:         db_models.RoleCustomer,
	}

	// User and customer profile land together or not at all.
	err = a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(&db_models.Customer{
			UserID:    user.ID,
			FirstName: request.FirstName,
			LastName:  request.LastName,
			Phone:     request.Phone,
			Bvn:       request.Bvn,
		}).Error
	})
	if err != nil {
		log.Printf("Customer registration failed: %v", err)
		return nil, utils.ErrDatabaseError
	}

	return &response_models.UserResponse{ID: user.ID, Email: user.Email, Role: string(user.Role)}, nil
}

func (a *AccountService) RegisterVendor(ctx context.Context, request request_models.RegisterVendorRequest) (*response_models.UserResponse, error) {

	existing, err := a.userRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	user := &db_models.User{
		Email:        request.Email,
		PasswordHash: hashedPassword,
		Role:         db_models.RoleVendor,
	}

	err = a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(&db_models.Vendor{
			UserID:                  user.ID,
			BusinessName:            request.BusinessName,
			BusinessCategory:        request.BusinessCategory,
			SettlementAccountNumber: request.SettlementAccountNumber,
			SettlementBankCode:      request.SettlementBankCode,
			ApprovalStatus:          db_models.VendorPending,
		}).Error
	})
	if err != nil {
		log.Printf("Vendor registration failed: %v", err)
		return nil, utils.ErrDatabaseError
	}

	return &response_models.UserResponse{ID: user.ID, Email: user.Email, Role: string(user.Role)}, nil
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error) {

	user, err := a.userRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(user.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	return &response_models.LoginResponse{
		Token: token,
		User:  response_models.UserResponse{ID: user.ID, Email: user.Email, Role: string(user.Role)},
	}, nil
}

func (a *AccountService) GetMe(ctx context.Context, userID string) (*response_models.UserResponse, error) {
	user, err := a.userRepo.FindById(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrCustomerNotFound
	}
	return &response_models.UserResponse{ID: user.ID, Email: user.Email, Role: string(user.Role)}, nil
}
