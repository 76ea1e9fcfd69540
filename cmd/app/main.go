package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"easyshop/cmd/fx/account_fx"
	"easyshop/cmd/fx/bank_account_fx"
	"easyshop/cmd/fx/controllers_fx"
	"easyshop/cmd/fx/db_fx"
	"easyshop/cmd/fx/onepipe_fx"
	"easyshop/cmd/fx/order_fx"
	"easyshop/cmd/fx/product_fx"
	"easyshop/cmd/fx/webhook_fx"
	"easyshop/internal/api/controllers"
	"easyshop/pkg/middleware"
	"easyshop/pkg/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	app := fx.New(
		db_fx.Module,
		onepipe_fx.Module,
		account_fx.Module,
		bank_account_fx.Module,
		product_fx.Module,
		order_fx.Module,
		webhook_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	authController *controllers.AuthController,
	bankAccountController *controllers.BankAccountController,
	productController *controllers.ProductController,
	orderController *controllers.OrderController,
	webhookController *controllers.WebhookController) *gin.Engine {

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, authController, bankAccountController, productController, orderController, webhookController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	authController *controllers.AuthController,
	bankAccountController *controllers.BankAccountController,
	productController *controllers.ProductController,
	orderController *controllers.OrderController,
	webhookController *controllers.WebhookController) {

	r.GET("/health", func(c *gin.Context) {
		utils.RespondSuccess(c, gin.H{"status": "ok"}, "Service healthy")
	})

	webhooks := r.Group("/webhooks")
	webhooks.POST("/onepipe", webhookController.HandleOnepipe)
	webhooks.GET("/health", webhookController.Health)

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register/customer", authController.RegisterCustomer)
	auth.POST("/register/vendor", authController.RegisterVendor)
	auth.POST("/login", authController.Login)
	auth.POST("/logout", middleware.JWTAuthMiddleware(), authController.Logout)
	auth.GET("/me", middleware.JWTAuthMiddleware(), authController.Me)

	api.GET("/banks", middleware.JWTAuthMiddleware(), bankAccountController.ListBanks)

	accounts := api.Group("/customers/:customerId/accounts", middleware.JWTAuthMiddleware())
	accounts.GET("", bankAccountController.ListAccounts)
	accounts.POST("", bankAccountController.AddAccount)
	accounts.PUT("/:accountId", bankAccountController.UpdatePriority)
	accounts.DELETE("/:accountId", bankAccountController.DeleteAccount)

	products := api.Group("/products")
	products.GET("", productController.ListProducts)
	products.GET("/:id", productController.GetProduct)
	products.POST("", middleware.JWTAuthMiddleware(), middleware.RoleMiddleware("vendor", "admin"), productController.CreateProduct)
	products.PUT("/:id", middleware.JWTAuthMiddleware(), middleware.RoleMiddleware("vendor", "admin"), productController.UpdateProduct)
	products.DELETE("/:id", middleware.JWTAuthMiddleware(), middleware.RoleMiddleware("vendor", "admin"), productController.ArchiveProduct)

	orders := api.Group("/orders", middleware.JWTAuthMiddleware())
	orders.POST("", middleware.RoleMiddleware("customer"), orderController.CreateOrder)
	orders.GET("", orderController.ListOrders)
	orders.GET("/:id", orderController.GetOrder)
}
