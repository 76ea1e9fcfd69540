package services

import (
	"context"
	"log"
	"time"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"easyshop/internal/models/db_models"
	"easyshop/internal/models/request_models"
	"easyshop/internal/models/response_models"
	"easyshop/internal/repositories"
	"easyshop/pkg/onepipe"
	"easyshop/pkg/utils"
)

type BankAccountConfig struct {
	MaxAccounts int
}

type BankAccountService interface {
	ListAccounts(ctx context.Context, userID, role, customerID string) ([]response_models.BankAccountResponse, error)
	AddAccount(ctx context.Context, userID, role, customerID string, req request_models.AddBankAccountRequest) (*response_models.BankAccountResponse, error)
	UpdatePriority(ctx context.Context, userID, role, customerID, accountID string, priority int) error
	DeleteAccount(ctx context.Context, userID, role, customerID, accountID string) error
	ListBanks(ctx context.Context) ([]onepipe.Bank, error)
}

type bankAccountService struct {
	db           *gorm.DB
	provider     onepipe.Client
	customerRepo repositories.CustomerRepository
	accountRepo  repositories.CustomerAccountRepository
	cfg          BankAccountConfig
}

func NewBankAccountService(
	db *gorm.DB,
	provider onepipe.Client,
	customerRepo repositories.CustomerRepository,
	accountRepo repositories.CustomerAccountRepository,
	cfg BankAccountConfig,
) BankAccountService {
	if cfg.MaxAccounts == 0 {
		cfg.MaxAccounts = 3
	}
	return &bankAccountService{
		db:           db,
		provider:     provider,
		customerRepo: customerRepo,
		accountRepo:  accountRepo,
		cfg:          cfg,
	}
}

// resolveCustomer loads the customer and enforces ownership: customers only
// touch their own profile, admins touch any.
func (s *bankAccountService) resolveCustomer(ctx context.Context, userID, role, customerID string) (*db_models.Customer, error) {
	customer, err := s.customerRepo.FindById(ctx, customerID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if customer == nil {
		return nil, utils.ErrCustomerNotFound
	}
	if role != string(db_models.RoleAdmin) && customer.UserID.String() != userID {
		return nil, utils.ErrForbidden
	}
	return customer, nil
}

func (s *bankAccountService) ListAccounts(ctx context.Context, userID, role, customerID string) ([]response_models.BankAccountResponse, error) {
	customer, err := s.resolveCustomer(ctx, userID, role, customerID)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListByCustomer(ctx, customer.ID.String())
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return lo.Map(accounts, func(a db_models.CustomerAccount, _ int) response_models.BankAccountResponse {
		return bankAccountResponse(&a)
	}), nil
}

func (s *bankAccountService) AddAccount(ctx context.Context, userID, role, customerID string, req request_models.AddBankAccountRequest) (*response_models.BankAccountResponse, error) {
	customer, err := s.resolveCustomer(ctx, userID, role, customerID)
	if err != nil {
		return nil, err
	}

	// (account_number, bank_code) is unique across ALL customers.
	existing, err := s.accountRepo.FindByNumberAndBank(ctx, req.AccountNumber, req.BankCode)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		if existing.CustomerID == customer.ID {
			return nil, utils.ErrAccountAlreadyLinked
		}
		return nil, utils.ErrAccountLinkedElsewhere
	}

	count, err := s.accountRepo.CountByCustomer(ctx, customer.ID.String())
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if int(count) >= s.cfg.MaxAccounts {
		return nil, utils.ErrMaxAccountsReached
	}

	ownership, err := s.provider.VerifyAccountOwnership(ctx, onepipe.VerifyOwnershipParams{
		Bvn:           req.Bvn,
		AccountNumber: req.AccountNumber,
		BankCode:      req.BankCode,
	})
	if err != nil {
		log.Printf("BVN verification failed for customer %s: %v", customer.ID, err)
		return nil, utils.ErrProviderFailure
	}
	if !ownership.Linked {
		return nil, utils.ErrBvnMismatch
	}

	now := time.Now().Unix()
	account := &db_models.CustomerAccount{
		CustomerID:    customer.ID,
		AccountNumber: req.AccountNumber,
		BankCode:      req.BankCode,
		BankName:      req.BankName,
		AccountName:   ownership.AccountName,
		// First account gets priority 1, each later one the next integer.
		Priority:      int(count) + 1,
		Verified:      true,
		BvnVerifiedAt: &now,
	}

	if err := s.accountRepo.Insert(ctx, account); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := bankAccountResponse(account)
	return &resp, nil
}

// UpdatePriority swaps priorities with the account currently holding the
// requested slot, keeping the per-customer sequence unique and consecutive.
func (s *bankAccountService) UpdatePriority(ctx context.Context, userID, role, customerID, accountID string, priority int) error {
	customer, err := s.resolveCustomer(ctx, userID, role, customerID)
	if err != nil {
		return err
	}

	account, err := s.accountRepo.FindByIdAndCustomer(ctx, accountID, customer.ID.String())
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		return utils.ErrAccountNotFound
	}
	if account.Priority == priority {
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var other db_models.CustomerAccount
		err := tx.Where("customer_id = ? AND priority = ?", customer.ID, priority).
			First(&other).Error
		if err != nil {
			return utils.ErrAccountNotFound
		}

		if err := tx.Model(&other).Update("priority", account.Priority).Error; err != nil {
			return err
		}
		return tx.Model(account).Update("priority", priority).Error
	})
}

func (s *bankAccountService) DeleteAccount(ctx context.Context, userID, role, customerID, accountID string) error {
	customer, err := s.resolveCustomer(ctx, userID, role, customerID)
	if err != nil {
		return err
	}

	account, err := s.accountRepo.FindByIdAndCustomer(ctx, accountID, customer.ID.String())
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		return utils.ErrAccountNotFound
	}

	// An account backing a live mandate cannot disappear from under it.
	var live int64
	if err := s.db.WithContext(ctx).
		Model(&db_models.Mandate{}).
		Where("customer_account_id = ? AND status IN ?", account.ID,
			[]db_models.MandateStatus{db_models.MandatePendingAuth, db_models.MandateActive}).
		Count(&live).Error; err != nil {
		return utils.ErrDatabaseError
	}
	if live > 0 {
		return utils.ErrForbidden
	}

	// Delete and close the priority gap so the sequence stays consecutive.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(account).Error; err != nil {
			return err
		}
		return tx.Model(&db_models.CustomerAccount{}).
			Where("customer_id = ? AND priority > ?", customer.ID, account.Priority).
			Update("priority", gorm.Expr("priority - 1")).Error
	})
	if err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *bankAccountService) ListBanks(ctx context.Context) ([]onepipe.Bank, error) {
	banks, err := s.provider.ListBanks(ctx)
	if err != nil {
		return nil, utils.ErrProviderFailure
	}
	return banks, nil
}

func bankAccountResponse(a *db_models.CustomerAccount) response_models.BankAccountResponse {
	return response_models.BankAccountResponse{
		ID:                  a.ID,
		AccountNumberMasked: a.MaskedNumber(),
		BankCode:            a.BankCode,
		BankName:            a.BankName,
		AccountName:         a.AccountName,
		Priority:            a.Priority,
		Verified:            a.Verified,
		BvnVerifiedAt:       a.BvnVerifiedAt,
		CreatedAt:           a.CreatedAt,
	}
}
