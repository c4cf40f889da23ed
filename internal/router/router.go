package router

import (
	"billtrack/internal/config"
	"billtrack/internal/handler"
	"billtrack/internal/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers bundles everything the router wires up.
type Handlers struct {
	Health       *handler.HealthHandler
	Auth         *handler.AuthHandler
	Users        *handler.UsersHandler
	Products     *handler.ProductsHandler
	SoldProducts *handler.SoldProductsHandler
	Bills        *handler.BillsHandler
	Customers    *handler.CustomersHandler
	Staff        *handler.StaffHandler
	Reminders    *handler.RemindersHandler
	Inventory    *handler.InventoryHandler
}

// New assembles the gin engine with the full middleware chain and route table.
func New(cfg *config.Config, h Handlers) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler.RegisterValidators()

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(),
	)

	r.GET("/health", h.Health.Health)
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/v1")

	auth := v1.Group("/auth")
	auth.Use(middleware.LoginRateLimiter())
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}

	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(cfg.JWTSecret))
	{
		// User administration: admin only.
		users := protected.Group("/users", middleware.RequireRole("admin"))
		{
			users.POST("", h.Users.Create)
			users.GET("", h.Users.List)
			users.PUT("/:id", h.Users.Update)
			users.DELETE("/:id", h.Users.Deactivate)
			users.POST("/:id/reactivate", h.Users.Reactivate)
		}

		// Catalog: everyone reads, admin/manager writes.
		products := protected.Group("/products")
		{
			products.GET("", h.Products.List)
			products.GET("/:id", h.Products.Get)
			products.GET("/code/:code", h.Products.GetByCode)

			write := products.Group("", middleware.RequireRole("admin", "manager"))
			{
				write.POST("", h.Products.Create)
				write.PUT("/:id", h.Products.Update)
				write.DELETE("/:id", h.Products.Delete)
				write.POST("/:id/restock", h.Products.Restock)
			}
		}

		// Manual sale entries.
		sold := protected.Group("/sold-products")
		{
			sold.POST("", h.SoldProducts.Create)
			sold.GET("", h.SoldProducts.List)
			sold.DELETE("/:id", middleware.RequireRole("admin", "manager"), h.SoldProducts.Delete)
		}

		// Billing.
		cash := protected.Group("/bills/cash")
		{
			cash.POST("", h.Bills.CreateCash)
			cash.GET("", h.Bills.ListCash)
			cash.GET("/:id", h.Bills.GetCash)
			cash.GET("/:id/qr", h.Bills.CashQR)
			cash.DELETE("/:id", middleware.RequireRole("admin"), h.Bills.DeleteCash)
		}
		credit := protected.Group("/bills/credit")
		{
			credit.POST("", h.Bills.CreateCredit)
			credit.GET("", h.Bills.ListCredit)
			credit.GET("/:id", h.Bills.GetCredit)
			credit.GET("/:id/qr", h.Bills.CreditQR)
			credit.POST("/:id/pay", h.Bills.MarkPaid)
			credit.DELETE("/:id", middleware.RequireRole("admin"), h.Bills.DeleteCredit)
		}

		// Customers.
		customers := protected.Group("/customers")
		{
			customers.POST("", h.Customers.Create)
			customers.GET("", h.Customers.List)
			customers.GET("/:id", h.Customers.Get)
			customers.PUT("/:id", h.Customers.Update)
			customers.DELETE("/:id", middleware.RequireRole("admin", "manager"), h.Customers.Delete)
		}

		// Staff records: HR department or admin.
		staff := protected.Group("/staff", middleware.RequireDepartment("hr"))
		{
			staff.POST("", h.Staff.Create)
			staff.GET("", h.Staff.List)
			staff.GET("/:id", h.Staff.Get)
			staff.PUT("/:id", h.Staff.Update)
			staff.DELETE("/:id", h.Staff.Delete)
		}

		// Reminders.
		reminders := protected.Group("/reminders")
		{
			reminders.POST("", h.Reminders.Create)
			reminders.GET("", h.Reminders.List)
			reminders.DELETE("/:id", h.Reminders.Delete)
		}

		// Inventory reconciliation: any authenticated session may read.
		inventory := protected.Group("/inventory")
		{
			inventory.GET("/analysis", h.Inventory.Analysis)
			inventory.GET("/unified-analysis", h.Inventory.UnifiedAnalysis)
			inventory.GET("/unified-sales", h.Inventory.UnifiedSales)
		}
	}

	return r
}
