package database

import (
	"fmt"

	"github.com/mataampos/mataam-api/internal/config"
	"github.com/mataampos/mataam-api/internal/domain/entity"
	"github.com/mataampos/mataam-api/pkg/logger"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	logger.WithModule("database").Info("connected to PostgreSQL")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Accounts
		&entity.User{},

		// Reference data
		&entity.Category{},
		&entity.Product{},
		&entity.Bank{},
		&entity.Currency{},
		&entity.Branch{},
		&entity.Employee{},

		// Ledgers
		&entity.InventoryItem{},
		&entity.Order{},
		&entity.OrderItem{},
		&entity.ArchivedOrder{},
		&entity.Transaction{},
		&entity.DailySummary{},

		// System
		&entity.IdempotencyKey{},
	)
}

// SeedDefaultData seeds the operating currencies and, when configured, an
// admin account.
func SeedDefaultData(db *gorm.DB, operatingCurrency string) error {
	log := logger.WithModule("database")

	currencies := []entity.Currency{
		{Name: "Yemeni Rial", Symbol: "ر.ي"},
		{Name: "Saudi Riyal", Symbol: "ر.س"},
		{Name: "US Dollar", Symbol: "$"},
	}
	for i := range currencies {
		var existing entity.Currency
		if err := db.Where("symbol = ?", currencies[i].Symbol).First(&existing).Error; err != nil {
			if err := db.Create(&currencies[i]).Error; err != nil {
				log.Warnf("failed to seed currency %s: %v", currencies[i].Symbol, err)
			}
		}
	}

	var opCount int64
	db.Model(&entity.Currency{}).Where("symbol = ?", operatingCurrency).Count(&opCount)
	if opCount == 0 {
		if err := db.Create(&entity.Currency{Name: operatingCurrency, Symbol: operatingCurrency}).Error; err != nil {
			log.Warnf("failed to seed operating currency %s: %v", operatingCurrency, err)
		}
	}

	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")
	if adminEmail == "" || adminPassword == "" {
		return nil
	}

	var existing entity.User
	if err := db.Where("email = ?", adminEmail).First(&existing).Error; err == nil {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	if adminName == "" {
		adminName = "Administrator"
	}
	admin := entity.User{
		Name:     adminName,
		Email:    adminEmail,
		Password: string(hashed),
		Role:     entity.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	log.Infof("admin user created: %s", adminEmail)
	return nil
}
