// internal/services/setup_test.go
package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cappeLindo/webcars-api/internal/config"
	"github.com/cappeLindo/webcars-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Brand{},
		&models.CarModel{},
		&models.Category{},
		&models.Color{},
		&models.WheelSize{},
		&models.FuelType{},
		&models.Transmission{},
		&models.Address{},
		&models.Dealership{},
		&models.Client{},
		&models.Car{},
		&models.CarImage{},
		&models.Favorite{},
		&models.AlertFilter{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		Environment: "test",
		Database: config.DatabaseConfig{
			QueryTimeout: 5,
		},
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
		Storage: config.StorageConfig{
			LocalPath:    t.TempDir(),
			MaxImageSize: 5 * 1024 * 1024,
			BaseURL:      "http://localhost:8080/uploads",
		},
	}
}

// seedReferences inserts one row into every lookup table a car needs
// and returns a dealership that can own listings.
type testRefs struct {
	Brand        models.Brand
	CarModel     models.CarModel
	Category     models.Category
	Color        models.Color
	WheelSize    models.WheelSize
	FuelType     models.FuelType
	Transmission models.Transmission
	Dealership   models.Dealership
}

func seedReferences(t *testing.T, db *gorm.DB) testRefs {
	t.Helper()

	refs := testRefs{
		Brand:        models.Brand{Name: "Chevrolet"},
		Category:     models.Category{Name: "Hatch"},
		Color:        models.Color{Name: "Preto"},
		WheelSize:    models.WheelSize{Name: "Aro 15"},
		FuelType:     models.FuelType{Name: "Flex"},
		Transmission: models.Transmission{Name: "Manual"},
	}

	for _, record := range []interface{}{
		&refs.Brand, &refs.Category, &refs.Color,
		&refs.WheelSize, &refs.FuelType, &refs.Transmission,
	} {
		if err := db.Create(record).Error; err != nil {
			t.Fatalf("Failed to seed reference: %v", err)
		}
	}

	refs.CarModel = models.CarModel{Name: "Onix", BrandID: refs.Brand.ID}
	if err := db.Create(&refs.CarModel).Error; err != nil {
		t.Fatalf("Failed to seed car model: %v", err)
	}

	refs.Dealership = models.Dealership{
		Name:  "AutoCenter",
		CNPJ:  "11222333000181",
		Email: "contato@autocenter.com.br",
	}
	if err := refs.Dealership.SetPassword("dealer-pass-123"); err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if err := db.Create(&refs.Dealership).Error; err != nil {
		t.Fatalf("Failed to seed dealership: %v", err)
	}

	return refs
}

func seedClient(t *testing.T, db *gorm.DB, email, cpf string) models.Client {
	t.Helper()

	client := models.Client{
		Name:  "Maria Silva",
		CPF:   cpf,
		Email: email,
	}
	if err := client.SetPassword("client-pass-123"); err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("Failed to seed client: %v", err)
	}
	return client
}

func seedCar(t *testing.T, db *gorm.DB, refs testRefs, name string, year int, price float64) models.Car {
	t.Helper()

	car := models.Car{
		Name:           name,
		Year:           year,
		Condition:      models.CarConditionUsed,
		Price:          price,
		Mileage:        45000,
		ColorID:        refs.Color.ID,
		WheelSizeID:    refs.WheelSize.ID,
		CategoryID:     refs.Category.ID,
		BrandID:        refs.Brand.ID,
		CarModelID:     refs.CarModel.ID,
		FuelTypeID:     refs.FuelType.ID,
		TransmissionID: refs.Transmission.ID,
		DealershipID:   refs.Dealership.ID,
	}
	if err := db.Create(&car).Error; err != nil {
		t.Fatalf("Failed to seed car: %v", err)
	}
	return car
}
