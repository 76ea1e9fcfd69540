package product_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"easyshop/internal/repositories"
	"easyshop/internal/services"
)

var Module = fx.Provide(
	provideProductService, provideProductRepo)

func provideProductRepo(db *gorm.DB) repositories.ProductRepository {
	return repositories.NewProductRepository(db)
}

func provideProductService(productRepo repositories.ProductRepository, customerRepo repositories.CustomerRepository) services.ProductServiceInterface {
	return services.NewProductService(productRepo, customerRepo)
}
