package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mataampos/mataam-api/internal/config"
	"github.com/mataampos/mataam-api/internal/domain/entity"
	domainRepo "github.com/mataampos/mataam-api/internal/domain/repository"
	"github.com/mataampos/mataam-api/internal/presentation/http/handler"
	"github.com/mataampos/mataam-api/internal/presentation/http/middleware"
	"github.com/mataampos/mataam-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Order       *handler.OrderHandler
	Settlement  *handler.SettlementHandler
	Transaction *handler.TransactionHandler
	Inventory   *handler.InventoryHandler
	Catalog     *handler.CatalogHandler
	Reference   *handler.ReferenceHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/profile", h.Auth.Profile)
	protected.POST("/auth/register", middleware.RequireRole(entity.RoleAdmin), h.Auth.Register)

	registerOrderRoutes(protected, h, deps)
	registerSettlementRoutes(protected, h)
	registerTransactionRoutes(protected, h)
	registerInventoryRoutes(protected, h)
	registerCatalogRoutes(protected, h)
	registerReferenceRoutes(protected, h)
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		// Order creation replays through the idempotency cache so a
		// resubmitted checkout cannot double-debit stock.
		orders.POST("", middleware.Idempotency(deps.IdempotencyRepo), h.Order.Create)
		orders.GET("/:id", h.Order.Get)
		orders.PUT("/:id/status", h.Order.UpdateStatus)
		orders.POST("/:id/refund", h.Order.Refund)
		orders.DELETE("/:id", middleware.RequireRole(entity.RoleAdmin), h.Order.Delete)
	}

	archived := protected.Group("/archived-orders")
	{
		archived.GET("", h.Settlement.ListArchivedOrders)
	}
}

func registerSettlementRoutes(protected *gin.RouterGroup, h *Handlers) {
	settlement := protected.Group("/settlement")
	{
		settlement.POST("/close-day", h.Settlement.CloseDay)
		settlement.GET("/summaries", h.Settlement.ListSummaries)
		settlement.GET("/summaries/:id", h.Settlement.GetSummary)
		settlement.DELETE("/summaries/:id", middleware.RequireRole(entity.RoleAdmin), h.Settlement.DeleteSummary)
		settlement.DELETE("/summaries", middleware.RequireRole(entity.RoleAdmin), h.Settlement.ClearSummaries)
	}
}

func registerTransactionRoutes(protected *gin.RouterGroup, h *Handlers) {
	transactions := protected.Group("/transactions")
	{
		transactions.GET("", h.Transaction.List)
		transactions.POST("", h.Transaction.Post)
		transactions.GET("/totals", h.Transaction.Aggregate)
		transactions.POST("/salary", h.Transaction.PaySalary)
		transactions.GET("/:id", h.Transaction.Get)
		transactions.DELETE("/:id", middleware.RequireRole(entity.RoleAdmin), h.Transaction.Delete)
		transactions.DELETE("", middleware.RequireRole(entity.RoleAdmin), h.Transaction.Clear)
	}
}

func registerInventoryRoutes(protected *gin.RouterGroup, h *Handlers) {
	inventory := protected.Group("/inventory")
	{
		inventory.GET("", h.Inventory.List)
		inventory.GET("/:product_id", h.Inventory.Get)
		inventory.PUT("/:product_id", middleware.RequireRole(entity.RoleAdmin), h.Inventory.Set)
	}
}

func registerCatalogRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Catalog.ListProducts)
		products.POST("", middleware.RequireRole(entity.RoleAdmin), h.Catalog.CreateProduct)
		products.GET("/:id", h.Catalog.GetProduct)
		products.PUT("/:id", middleware.RequireRole(entity.RoleAdmin), h.Catalog.UpdateProduct)
		products.DELETE("/:id", middleware.RequireRole(entity.RoleAdmin), h.Catalog.DeleteProduct)
	}

	categories := protected.Group("/categories")
	{
		categories.GET("", h.Catalog.ListCategories)
		categories.POST("", middleware.RequireRole(entity.RoleAdmin), h.Catalog.CreateCategory)
		categories.PUT("/:id", middleware.RequireRole(entity.RoleAdmin), h.Catalog.UpdateCategory)
		categories.DELETE("/:id", middleware.RequireRole(entity.RoleAdmin), h.Catalog.DeleteCategory)
	}
}

func registerReferenceRoutes(protected *gin.RouterGroup, h *Handlers) {
	banks := protected.Group("/banks")
	{
		banks.GET("", h.Reference.ListBanks)
		banks.POST("", middleware.RequireRole(entity.RoleAdmin), h.Reference.CreateBank)
		banks.DELETE("/:id", middleware.RequireRole(entity.RoleAdmin), h.Reference.DeleteBank)
	}

	currencies := protected.Group("/currencies")
	{
		currencies.GET("", h.Reference.ListCurrencies)
		currencies.POST("", middleware.RequireRole(entity.RoleAdmin), h.Reference.CreateCurrency)
		currencies.PUT("/:symbol", middleware.RequireRole(entity.RoleAdmin), h.Reference.UpdateCurrencyRate)
		currencies.DELETE("/:id", middleware.RequireRole(entity.RoleAdmin), h.Reference.DeleteCurrency)
	}

	branches := protected.Group("/branches")
	{
		branches.GET("", h.Reference.ListBranches)
		branches.POST("", middleware.RequireRole(entity.RoleAdmin), h.Reference.CreateBranch)
		branches.PUT("/:id", middleware.RequireRole(entity.RoleAdmin), h.Reference.UpdateBranch)
		branches.DELETE("/:id", middleware.RequireRole(entity.RoleAdmin), h.Reference.DeleteBranch)
	}

	employees := protected.Group("/employees")
	{
		employees.GET("", h.Reference.ListEmployees)
		employees.POST("", middleware.RequireRole(entity.RoleAdmin), h.Reference.CreateEmployee)
		employees.GET("/:id", h.Reference.GetEmployee)
		employees.PUT("/:id", middleware.RequireRole(entity.RoleAdmin), h.Reference.UpdateEmployee)
		employees.DELETE("/:id", middleware.RequireRole(entity.RoleAdmin), h.Reference.DeleteEmployee)
	}
}
