package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"easyshop/internal/repositories"
	"easyshop/internal/services"
)

var Module = fx.Provide(
	provideAccountService, provideUserRepo, provideCustomerRepo)

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideCustomerRepo(db *gorm.DB) repositories.CustomerRepository {
	return repositories.NewCustomerRepository(db)
}

func provideAccountService(db *gorm.DB, userRepo repositories.UserRepository) services.AccountServiceInterface {
	return services.NewAccountService(db, userRepo)
}
