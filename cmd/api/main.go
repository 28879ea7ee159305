package main

import (
	"github.com/gin-gonic/gin"
	"github.com/mataampos/mataam-api/internal/application/service"
	"github.com/mataampos/mataam-api/internal/config"
	"github.com/mataampos/mataam-api/internal/infrastructure/database"
	"github.com/mataampos/mataam-api/internal/infrastructure/repository"
	"github.com/mataampos/mataam-api/internal/presentation/http/handler"
	"github.com/mataampos/mataam-api/internal/presentation/http/routes"
	"github.com/mataampos/mataam-api/pkg/lock"
	"github.com/mataampos/mataam-api/pkg/logger"
	"github.com/mataampos/mataam-api/pkg/utils"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	logger.Setup(cfg.App.Env, cfg.App.Debug)
	log := logger.Get()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := database.SeedDefaultData(db, cfg.Settlement.OperatingCurrency); err != nil {
		log.Warnf("Failed to seed default data: %v", err)
	}

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// The settlement lock is distributed when redis is configured; a single
	// node falls back to in-process locking.
	var locker lock.Locker
	if cfg.Redis.Address != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		locker = lock.NewRedisLocker(rdb)
		log.Info("settlement lock backed by redis")
	} else {
		locker = lock.NewLocalLocker()
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	bankRepo := repository.NewBankRepository(db)
	currencyRepo := repository.NewCurrencyRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	settlementRepo := repository.NewSettlementRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, jwtManager)
	orderService := service.NewOrderService(orderRepo, productRepo, inventoryRepo)
	settlementService := service.NewSettlementService(settlementRepo, locker, cfg.Settlement)
	transactionService := service.NewTransactionService(transactionRepo, currencyRepo, employeeRepo)
	inventoryService := service.NewInventoryService(inventoryRepo, productRepo)
	catalogService := service.NewCatalogService(productRepo, categoryRepo, inventoryRepo)
	referenceService := service.NewReferenceService(bankRepo, currencyRepo, branchRepo, employeeRepo)

	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Order:       handler.NewOrderHandler(orderService),
		Settlement:  handler.NewSettlementHandler(settlementService),
		Transaction: handler.NewTransactionHandler(transactionService),
		Inventory:   handler.NewInventoryHandler(inventoryService),
		Catalog:     handler.NewCatalogHandler(catalogService),
		Reference:   handler.NewReferenceHandler(referenceService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Infof("Starting %s server on port %s (%s)", cfg.App.Name, port, cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
