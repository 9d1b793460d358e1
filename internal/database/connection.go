// internal/database/connection.go
package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cappeLindo/webcars-api/internal/config"
	"github.com/cappeLindo/webcars-api/internal/models"
)

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.Info("Database connection established successfully")
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("Error getting underlying sql.DB")
		return
	}

	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("Error closing database connection")
	} else {
		logrus.Info("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.Address{},
		&models.Brand{},
		&models.CarModel{},
		&models.Category{},
		&models.Color{},
		&models.WheelSize{},
		&models.FuelType{},
		&models.Transmission{},
		&models.Dealership{},
		&models.Client{},
		&models.Car{},
		&models.CarImage{},
		&models.Favorite{},
		&models.AlertFilter{},
		&models.Notification{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logrus.Info("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// Car search paths
		"CREATE INDEX IF NOT EXISTS idx_cars_brand_category ON cars(brand_id, category_id)",
		"CREATE INDEX IF NOT EXISTS idx_cars_price ON cars(price)",
		"CREATE INDEX IF NOT EXISTS idx_cars_year_condition ON cars(year, condition)",
		"CREATE INDEX IF NOT EXISTS idx_cars_created_at ON cars(created_at DESC)",

		// Alert filter evaluation pushes brand/category equality into SQL
		"CREATE INDEX IF NOT EXISTS idx_alert_filters_brand ON alert_filters(brand_id)",
		"CREATE INDEX IF NOT EXISTS idx_alert_filters_category ON alert_filters(category_id)",

		// Notifications listing
		"CREATE INDEX IF NOT EXISTS idx_notifications_client_read ON notifications(client_id, read_at)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			logrus.WithError(err).Warnf("Failed to create index: %s", index)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// SeedReferenceData populates the lookup tables an empty back office needs.
func SeedReferenceData(db *gorm.DB) error {
	logrus.Info("Seeding reference data...")

	seeds := map[string][]string{
		"categories":    {"Sedan", "Hatch", "SUV", "Pickup", "Coupe", "Convertible"},
		"colors":        {"Black", "White", "Silver", "Gray", "Red", "Blue"},
		"wheel_sizes":   {"14", "15", "16", "17", "18", "19", "20"},
		"fuel_types":    {"Gasoline", "Ethanol", "Flex", "Diesel", "Electric", "Hybrid"},
		"transmissions": {"Manual", "Automatic", "CVT", "Automated"},
	}

	for table, names := range seeds {
		for _, name := range names {
			var count int64
			db.Table(table).Where("name = ?", name).Count(&count)
			if count == 0 {
				if err := db.Table(table).Create(map[string]interface{}{
					"name":       name,
					"created_at": time.Now(),
					"updated_at": time.Now(),
				}).Error; err != nil {
					logrus.WithError(err).Warnf("Failed to seed %s %q", table, name)
				}
			}
		}
	}

	logrus.Info("Reference data seeding completed")
	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
