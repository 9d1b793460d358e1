// internal/services/reference_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"github.com/cappeLindo/webcars-api/internal/apperrors"
	"github.com/cappeLindo/webcars-api/internal/config"
	"github.com/cappeLindo/webcars-api/internal/models"
)

// ReferenceKind identifies one of the lookup tables a car points at.
type ReferenceKind string

const (
	ReferenceBrand        ReferenceKind = "brand"
	ReferenceCategory     ReferenceKind = "category"
	ReferenceColor        ReferenceKind = "color"
	ReferenceWheelSize    ReferenceKind = "wheel_size"
	ReferenceFuelType     ReferenceKind = "fuel_type"
	ReferenceTransmission ReferenceKind = "transmission"
	ReferenceCarModel     ReferenceKind = "car_model"
	ReferenceDealership   ReferenceKind = "dealership"
)

// crudTables are the flat id/name kinds managed generically. Car models
// and dealerships have richer shapes and their own methods/services, but
// participate in existence checks.
var crudTables = map[ReferenceKind]string{
	ReferenceBrand:        "brands",
	ReferenceCategory:     "categories",
	ReferenceColor:        "colors",
	ReferenceWheelSize:    "wheel_sizes",
	ReferenceFuelType:     "fuel_types",
	ReferenceTransmission: "transmissions",
}

var existsTables = map[ReferenceKind]string{
	ReferenceBrand:        "brands",
	ReferenceCategory:     "categories",
	ReferenceColor:        "colors",
	ReferenceWheelSize:    "wheel_sizes",
	ReferenceFuelType:     "fuel_types",
	ReferenceTransmission: "transmissions",
	ReferenceCarModel:     "car_models",
	ReferenceDealership:   "dealerships",
}

// ReferenceItem is the shared row shape of the flat lookup tables.
type ReferenceItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ReferenceService struct {
	db      *gorm.DB
	timeout time.Duration
	cache   *cache.Cache
}

func NewReferenceService(db *gorm.DB, cfg *config.Config) *ReferenceService {
	return &ReferenceService{
		db:      db,
		timeout: cfg.Database.OperationTimeout(),
		cache:   cache.New(time.Minute, 5*time.Minute),
	}
}

func (s *ReferenceService) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func (s *ReferenceService) tableFor(kind ReferenceKind) (string, error) {
	table, ok := crudTables[kind]
	if !ok {
		return "", apperrors.Validation("", fmt.Sprintf("unknown reference kind %q", kind), nil)
	}
	return table, nil
}

func (s *ReferenceService) List(ctx context.Context, kind ReferenceKind) ([]ReferenceItem, error) {
	table, err := s.tableFor(kind)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var items []ReferenceItem
	if err := s.db.WithContext(ctx).Table(table).Order("name").Find(&items).Error; err != nil {
		return nil, apperrors.FromDB(err, string(kind))
	}
	return items, nil
}

func (s *ReferenceService) Get(ctx context.Context, kind ReferenceKind, id uint) (*ReferenceItem, error) {
	table, err := s.tableFor(kind)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var item ReferenceItem
	if err := s.db.WithContext(ctx).Table(table).First(&item, id).Error; err != nil {
		return nil, apperrors.FromDB(err, string(kind))
	}
	return &item, nil
}

func (s *ReferenceService) Create(ctx context.Context, kind ReferenceKind, name string) (*ReferenceItem, error) {
	table, err := s.tableFor(kind)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, apperrors.Validation("", "name is required", nil)
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	item := ReferenceItem{Name: name, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	if err := s.db.WithContext(ctx).Table(table).Create(&item).Error; err != nil {
		return nil, apperrors.FromDB(err, string(kind))
	}
	return &item, nil
}

func (s *ReferenceService) Update(ctx context.Context, kind ReferenceKind, id uint, name string) (*ReferenceItem, error) {
	table, err := s.tableFor(kind)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, apperrors.Validation("", "name is required", nil)
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var item ReferenceItem
	if err := s.db.WithContext(ctx).Table(table).First(&item, id).Error; err != nil {
		return nil, apperrors.FromDB(err, string(kind))
	}

	item.Name = name
	item.UpdatedAt = time.Now()
	if err := s.db.WithContext(ctx).Table(table).Where("id = ?", id).
		Updates(map[string]interface{}{"name": item.Name, "updated_at": item.UpdatedAt}).Error; err != nil {
		return nil, apperrors.FromDB(err, string(kind))
	}
	return &item, nil
}

func (s *ReferenceService) Delete(ctx context.Context, kind ReferenceKind, id uint) error {
	table, err := s.tableFor(kind)
	if err != nil {
		return err
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	result := s.db.WithContext(ctx).Table(table).Where("id = ?", id).Delete(&ReferenceItem{})
	if result.Error != nil {
		return apperrors.FromDB(result.Error, string(kind))
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound(string(kind))
	}

	s.cache.Delete(existsCacheKey(kind, id))
	return nil
}

func existsCacheKey(kind ReferenceKind, id uint) string {
	return fmt.Sprintf("%s:%d", kind, id)
}

// Exists reports whether the given reference row is present. Positive
// results are cached briefly; deletions are rare and invalidate above.
func (s *ReferenceService) Exists(ctx context.Context, kind ReferenceKind, id uint) (bool, error) {
	table, ok := existsTables[kind]
	if !ok {
		return false, apperrors.Validation("", fmt.Sprintf("unknown reference kind %q", kind), nil)
	}

	key := existsCacheKey(kind, id)
	if _, found := s.cache.Get(key); found {
		return true, nil
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var count int64
	if err := s.db.WithContext(ctx).Table(table).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, apperrors.FromDB(err, string(kind))
	}

	if count > 0 {
		s.cache.SetDefault(key, true)
		return true, nil
	}
	return false, nil
}

// Car models carry a brand reference, so they get dedicated methods.

func (s *ReferenceService) ListCarModels(ctx context.Context, brandID *uint) ([]models.CarModel, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	query := s.db.WithContext(ctx).Preload("Brand").Order("name")
	if brandID != nil {
		query = query.Where("brand_id = ?", *brandID)
	}

	var carModels []models.CarModel
	if err := query.Find(&carModels).Error; err != nil {
		return nil, apperrors.FromDB(err, "car model")
	}
	return carModels, nil
}

func (s *ReferenceService) GetCarModel(ctx context.Context, id uint) (*models.CarModel, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var carModel models.CarModel
	if err := s.db.WithContext(ctx).Preload("Brand").First(&carModel, id).Error; err != nil {
		return nil, apperrors.FromDB(err, "car model")
	}
	return &carModel, nil
}

func (s *ReferenceService) CreateCarModel(ctx context.Context, name string, brandID uint) (*models.CarModel, error) {
	if name == "" {
		return nil, apperrors.Validation("", "name is required", nil)
	}

	exists, err := s.Exists(ctx, ReferenceBrand, brandID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.Validation(apperrors.CodeReferenceNotFound, "brand not found",
			map[string]interface{}{"field": "brand_id", "value": brandID})
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	carModel := models.CarModel{Name: name, BrandID: brandID}
	if err := s.db.WithContext(ctx).Create(&carModel).Error; err != nil {
		return nil, apperrors.FromDB(err, "car model")
	}
	return &carModel, nil
}

func (s *ReferenceService) UpdateCarModel(ctx context.Context, id uint, name string) (*models.CarModel, error) {
	if name == "" {
		return nil, apperrors.Validation("", "name is required", nil)
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var carModel models.CarModel
	if err := s.db.WithContext(ctx).First(&carModel, id).Error; err != nil {
		return nil, apperrors.FromDB(err, "car model")
	}

	carModel.Name = name
	if err := s.db.WithContext(ctx).Save(&carModel).Error; err != nil {
		return nil, apperrors.FromDB(err, "car model")
	}
	return &carModel, nil
}

func (s *ReferenceService) DeleteCarModel(ctx context.Context, id uint) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	result := s.db.WithContext(ctx).Delete(&models.CarModel{}, id)
	if result.Error != nil {
		return apperrors.FromDB(result.Error, "car model")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("car model")
	}

	s.cache.Delete(existsCacheKey(ReferenceCarModel, id))
	return nil
}
