// internal/services/alert_filter_service.go
package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/cappeLindo/webcars-api/internal/apperrors"
	"github.com/cappeLindo/webcars-api/internal/config"
	"github.com/cappeLindo/webcars-api/internal/models"
)

// AlertFilterService owns saved alert filters and the matching engine
// that decides which filters a car satisfies.
type AlertFilterService struct {
	db      *gorm.DB
	timeout time.Duration
}

type AlertFilterRequest struct {
	Name           string               `json:"name" validate:"required,min=1,max=100"`
	Year           *int                 `json:"year,omitempty" validate:"omitempty,car_year"`
	Condition      *models.CarCondition `json:"condition,omitempty"`
	IpvaPaid       *bool                `json:"ipva_paid,omitempty"`
	Armored        *bool                `json:"armored,omitempty"`
	IpvaDate       *time.Time           `json:"ipva_date,omitempty"`
	PurchaseDate   *time.Time           `json:"purchase_date,omitempty"`
	PriceMin       *float64             `json:"price_min,omitempty" validate:"omitempty,min=0"`
	PriceMax       *float64             `json:"price_max,omitempty" validate:"omitempty,min=0"`
	BrandID        *uint                `json:"brand_id,omitempty"`
	CategoryID     *uint                `json:"category_id,omitempty"`
	TransmissionID *uint                `json:"transmission_id,omitempty"`
	WheelSizeID    *uint                `json:"wheel_size_id,omitempty"`
	CarModelID     *uint                `json:"car_model_id,omitempty"`
	FuelTypeID     *uint                `json:"fuel_type_id,omitempty"`
	ColorID        *uint                `json:"color_id,omitempty"`
}

func NewAlertFilterService(db *gorm.DB, cfg *config.Config) *AlertFilterService {
	return &AlertFilterService{
		db:      db,
		timeout: cfg.Database.OperationTimeout(),
	}
}

func (s *AlertFilterService) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// FilterMatchesCar reports whether a car satisfies every constrained
// dimension of a filter. Discrete ids match by equality, price by
// inclusive range, dates by calendar day. A nil car field never
// satisfies a constrained dimension. A filter with no constraints
// matches everything; creation rejects such filters upstream.
func FilterMatchesCar(car *models.Car, filter *models.AlertFilter) bool {
	if filter.Year != nil && car.Year != *filter.Year {
		return false
	}
	if filter.Condition != nil && car.Condition != *filter.Condition {
		return false
	}
	if filter.IpvaPaid != nil && car.IpvaPaid != *filter.IpvaPaid {
		return false
	}
	if filter.Armored != nil && car.Armored != *filter.Armored {
		return false
	}
	if filter.IpvaDate != nil {
		if car.IpvaDate == nil || !sameDay(*car.IpvaDate, *filter.IpvaDate) {
			return false
		}
	}
	if filter.PurchaseDate != nil {
		if car.PurchaseDate == nil || !sameDay(*car.PurchaseDate, *filter.PurchaseDate) {
			return false
		}
	}
	if filter.PriceMin != nil && car.Price < *filter.PriceMin {
		return false
	}
	if filter.PriceMax != nil && car.Price > *filter.PriceMax {
		return false
	}
	if filter.BrandID != nil && car.BrandID != *filter.BrandID {
		return false
	}
	if filter.CategoryID != nil && car.CategoryID != *filter.CategoryID {
		return false
	}
	if filter.TransmissionID != nil && car.TransmissionID != *filter.TransmissionID {
		return false
	}
	if filter.WheelSizeID != nil && car.WheelSizeID != *filter.WheelSizeID {
		return false
	}
	if filter.CarModelID != nil && car.CarModelID != *filter.CarModelID {
		return false
	}
	if filter.FuelTypeID != nil && car.FuelTypeID != *filter.FuelTypeID {
		return false
	}
	if filter.ColorID != nil && car.ColorID != *filter.ColorID {
		return false
	}
	return true
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// MatchFilters evaluates a slice of filters against one car, preserving
// input order. It never fails on a non-matching filter.
func MatchFilters(car *models.Car, filters []models.AlertFilter) []models.AlertFilter {
	matched := make([]models.AlertFilter, 0)
	for i := range filters {
		if FilterMatchesCar(car, &filters[i]) {
			matched = append(matched, filters[i])
		}
	}
	return matched
}

// CompareCarAgainstFilters loads the car and returns the stored filters
// it matches, in filter id order. Brand and category equality are pushed
// into the query; the remaining dimensions are evaluated in memory.
// clientID, when non-nil, scopes the evaluation to one client's filters.
func (s *AlertFilterService) CompareCarAgainstFilters(ctx context.Context, carID uint, clientID *uint) ([]models.AlertFilter, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var car models.Car
	if err := s.db.WithContext(ctx).First(&car, carID).Error; err != nil {
		return nil, apperrors.FromDB(err, "car")
	}

	query := s.db.WithContext(ctx).
		Where("brand_id IS NULL OR brand_id = ?", car.BrandID).
		Where("category_id IS NULL OR category_id = ?", car.CategoryID).
		Order("id")
	if clientID != nil {
		query = query.Where("client_id = ?", *clientID)
	}

	var filters []models.AlertFilter
	if err := query.Find(&filters).Error; err != nil {
		return nil, apperrors.FromDB(err, "alert filter")
	}

	return MatchFilters(&car, filters), nil
}

func (s *AlertFilterService) validate(req *AlertFilterRequest) error {
	if err := ValidateRequest(req); err != nil {
		return err
	}

	if req.Condition != nil && !req.Condition.Valid() {
		return apperrors.Validation("", "invalid condition",
			map[string]interface{}{"field": "condition", "value": *req.Condition})
	}

	if req.PriceMin != nil && req.PriceMax != nil && *req.PriceMin > *req.PriceMax {
		return apperrors.Validation(apperrors.CodePriceRange, "price_min must not exceed price_max", nil)
	}

	return nil
}

func (s *AlertFilterService) applyRequest(filter *models.AlertFilter, req *AlertFilterRequest) {
	filter.Name = req.Name
	filter.Year = req.Year
	filter.Condition = req.Condition
	filter.IpvaPaid = req.IpvaPaid
	filter.Armored = req.Armored
	filter.IpvaDate = req.IpvaDate
	filter.PurchaseDate = req.PurchaseDate
	filter.PriceMin = req.PriceMin
	filter.PriceMax = req.PriceMax
	filter.BrandID = req.BrandID
	filter.CategoryID = req.CategoryID
	filter.TransmissionID = req.TransmissionID
	filter.WheelSizeID = req.WheelSizeID
	filter.CarModelID = req.CarModelID
	filter.FuelTypeID = req.FuelTypeID
	filter.ColorID = req.ColorID
}

func (s *AlertFilterService) CreateFilter(ctx context.Context, clientID uint, req *AlertFilterRequest) (*models.AlertFilter, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	filter := models.AlertFilter{ClientID: clientID}
	s.applyRequest(&filter, req)

	// A filter with no constrained dimension would alert on every car.
	if !filter.HasCriteria() {
		return nil, apperrors.Validation(apperrors.CodeFilterNoCriteria,
			"alert filter must constrain at least one attribute", nil)
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if err := s.db.WithContext(ctx).Create(&filter).Error; err != nil {
		return nil, apperrors.FromDB(err, "alert filter")
	}
	return &filter, nil
}

func (s *AlertFilterService) GetFilter(ctx context.Context, clientID, id uint) (*models.AlertFilter, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var filter models.AlertFilter
	if err := s.db.WithContext(ctx).
		Where("id = ? AND client_id = ?", id, clientID).
		First(&filter).Error; err != nil {
		return nil, apperrors.FromDB(err, "alert filter")
	}
	return &filter, nil
}

func (s *AlertFilterService) ListFilters(ctx context.Context, clientID uint) ([]models.AlertFilter, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var filters []models.AlertFilter
	if err := s.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("id").
		Find(&filters).Error; err != nil {
		return nil, apperrors.FromDB(err, "alert filter")
	}
	return filters, nil
}

// UpdateFilter is a full replace of the filter's criteria.
func (s *AlertFilterService) UpdateFilter(ctx context.Context, clientID, id uint, req *AlertFilterRequest) (*models.AlertFilter, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	filter, err := s.GetFilter(ctx, clientID, id)
	if err != nil {
		return nil, err
	}

	s.applyRequest(filter, req)
	if !filter.HasCriteria() {
		return nil, apperrors.Validation(apperrors.CodeFilterNoCriteria,
			"alert filter must constrain at least one attribute", nil)
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	// Save with a full-column update so cleared dimensions persist as NULL.
	if err := s.db.WithContext(ctx).Model(filter).Select("*").
		Omit("id", "client_id", "created_at").Updates(filter).Error; err != nil {
		return nil, apperrors.FromDB(err, "alert filter")
	}
	return filter, nil
}

func (s *AlertFilterService) DeleteFilter(ctx context.Context, clientID, id uint) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	result := s.db.WithContext(ctx).
		Where("id = ? AND client_id = ?", id, clientID).
		Delete(&models.AlertFilter{})
	if result.Error != nil {
		return apperrors.FromDB(result.Error, "alert filter")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("alert filter")
	}
	return nil
}
