package bank_account_fx

import (
	"os"
	"strconv"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"easyshop/internal/repositories"
	"easyshop/internal/services"
	"easyshop/pkg/onepipe"
)

var Module = fx.Provide(
	provideBankAccountService, provideAccountRepo)

func provideAccountRepo(db *gorm.DB) repositories.CustomerAccountRepository {
	return repositories.NewCustomerAccountRepository(db)
}

func provideBankAccountService(
	db *gorm.DB,
	provider onepipe.Client,
	customerRepo repositories.CustomerRepository,
	accountRepo repositories.CustomerAccountRepository,
) services.BankAccountService {
	maxAccounts, _ := strconv.Atoi(os.Getenv("MAX_LINKED_ACCOUNTS"))

	return services.NewBankAccountService(db, provider, customerRepo, accountRepo, services.BankAccountConfig{
		MaxAccounts: maxAccounts,
	})
}
