// internal/services/favorite_service.go
package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/cappeLindo/webcars-api/internal/apperrors"
	"github.com/cappeLindo/webcars-api/internal/config"
	"github.com/cappeLindo/webcars-api/internal/models"
	"github.com/cappeLindo/webcars-api/internal/utils"
)

type FavoriteService struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewFavoriteService(db *gorm.DB, cfg *config.Config) *FavoriteService {
	return &FavoriteService{db: db, timeout: cfg.Database.OperationTimeout()}
}

func (s *FavoriteService) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// AddFavorite links a car to a client. A second add of the same pair is
// a conflict, not a silent no-op.
func (s *FavoriteService) AddFavorite(ctx context.Context, clientID, carID uint) (*models.Favorite, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var car models.Car
	if err := s.db.WithContext(ctx).Select("id").First(&car, carID).Error; err != nil {
		return nil, apperrors.FromDB(err, "car")
	}

	favorite := models.Favorite{ClientID: clientID, CarID: carID}
	if err := s.db.WithContext(ctx).Create(&favorite).Error; err != nil {
		return nil, apperrors.FromDB(err, "favorite")
	}

	return &favorite, nil
}

func (s *FavoriteService) RemoveFavorite(ctx context.Context, clientID, carID uint) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	result := s.db.WithContext(ctx).
		Where("client_id = ? AND car_id = ?", clientID, carID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return apperrors.FromDB(result.Error, "favorite")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("favorite")
	}
	return nil
}

func (s *FavoriteService) ListFavorites(ctx context.Context, clientID uint, params utils.PaginationParams) ([]models.Favorite, int64, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	query := s.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("client_id = ?", clientID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.FromDB(err, "favorite")
	}

	var favorites []models.Favorite
	if err := query.
		Preload("Car").Preload("Car.Brand").Preload("Car.CarModel").
		Preload("Car.Images", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Order("created_at DESC").
		Scopes(func(db *gorm.DB) *gorm.DB { return utils.ApplyPagination(db, params) }).
		Find(&favorites).Error; err != nil {
		return nil, 0, apperrors.FromDB(err, "favorite")
	}

	return favorites, total, nil
}

// IsFavorite reports whether the client already favorited the car.
func (s *FavoriteService) IsFavorite(ctx context.Context, clientID, carID uint) (bool, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var count int64
	err := s.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("client_id = ? AND car_id = ?", clientID, carID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.FromDB(err, "favorite")
	}
	return count > 0, nil
}
