// internal/services/car_service.go
package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/cappeLindo/webcars-api/internal/apperrors"
	"github.com/cappeLindo/webcars-api/internal/config"
	"github.com/cappeLindo/webcars-api/internal/metrics"
	"github.com/cappeLindo/webcars-api/internal/models"
	"github.com/cappeLindo/webcars-api/internal/utils"
)

// A listing carries between 1 and 7 images; the bounds are business
// rules checked before any write.
const (
	MinCarImages = 1
	MaxCarImages = 7
)

// CarService manages the lifecycle of a car listing together with its
// attached images as one logical unit. Row mutations for a listing-level
// operation run in a single transaction; object-store writes happen
// before commit and are compensated on rollback.
type CarService struct {
	db            *gorm.DB
	refs          *ReferenceService
	storage       *StorageService
	filters       *AlertFilterService
	notifications *NotificationService
	metrics       *metrics.Registry
	timeout       time.Duration
}

type ImageUpload struct {
	Name        string
	ContentType string
	Data        []byte
}

type CreateCarRequest struct {
	Name           string              `json:"name" validate:"required,min=2,max=255"`
	Year           int                 `json:"year" validate:"required,car_year"`
	Condition      models.CarCondition `json:"condition" validate:"required"`
	Price          float64             `json:"price" validate:"required,min=0"`
	IpvaPaid       bool                `json:"ipva_paid"`
	IpvaDate       *time.Time          `json:"ipva_date,omitempty"`
	PurchaseDate   *time.Time          `json:"purchase_date,omitempty"`
	Details        string              `json:"details,omitempty"`
	Armored        bool                `json:"armored"`
	Mileage        int64               `json:"mileage" validate:"min=0"`
	Features       []string            `json:"features,omitempty"`
	ColorID        uint                `json:"color_id" validate:"required"`
	WheelSizeID    uint                `json:"wheel_size_id" validate:"required"`
	CategoryID     uint                `json:"category_id" validate:"required"`
	BrandID        uint                `json:"brand_id" validate:"required"`
	CarModelID     uint                `json:"car_model_id" validate:"required"`
	FuelTypeID     uint                `json:"fuel_type_id" validate:"required"`
	TransmissionID uint                `json:"transmission_id" validate:"required"`
}

// PatchCarRequest carries only the fields the caller supplied. Pointer
// fields make presence explicit, so false and 0 are honored as updates.
type PatchCarRequest struct {
	Name           *string              `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Year           *int                 `json:"year,omitempty" validate:"omitempty,car_year"`
	Condition      *models.CarCondition `json:"condition,omitempty"`
	Price          *float64             `json:"price,omitempty" validate:"omitempty,min=0"`
	IpvaPaid       *bool                `json:"ipva_paid,omitempty"`
	IpvaDate       *time.Time           `json:"ipva_date,omitempty"`
	PurchaseDate   *time.Time           `json:"purchase_date,omitempty"`
	Details        *string              `json:"details,omitempty"`
	Armored        *bool                `json:"armored,omitempty"`
	Mileage        *int64               `json:"mileage,omitempty" validate:"omitempty,min=0"`
	Features       *[]string            `json:"features,omitempty"`
	ColorID        *uint                `json:"color_id,omitempty"`
	WheelSizeID    *uint                `json:"wheel_size_id,omitempty"`
	CategoryID     *uint                `json:"category_id,omitempty"`
	BrandID        *uint                `json:"brand_id,omitempty"`
	CarModelID     *uint                `json:"car_model_id,omitempty"`
	FuelTypeID     *uint                `json:"fuel_type_id,omitempty"`
	TransmissionID *uint                `json:"transmission_id,omitempty"`
}

type CarSearchParams struct {
	utils.PaginationParams
	BrandID      *uint
	CategoryID   *uint
	CarModelID   *uint
	DealershipID *uint
	Condition    *models.CarCondition
	PriceMin     *float64
	PriceMax     *float64
	Year         *int
	Armored      *bool
}

func NewCarService(
	db *gorm.DB,
	cfg *config.Config,
	refs *ReferenceService,
	storage *StorageService,
	filters *AlertFilterService,
	notifications *NotificationService,
	reg *metrics.Registry,
) *CarService {
	return &CarService{
		db:            db,
		refs:          refs,
		storage:       storage,
		filters:       filters,
		notifications: notifications,
		metrics:       reg,
		timeout:       cfg.Database.OperationTimeout(),
	}
}

func (s *CarService) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// referenceCheck pairs a reference kind with the id a request supplied.
type referenceCheck struct {
	kind  ReferenceKind
	field string
	id    uint
}

// validateReferences verifies every supplied foreign key resolves to an
// existing reference row before anything is written.
func (s *CarService) validateReferences(ctx context.Context, checks []referenceCheck) error {
	for _, check := range checks {
		exists, err := s.refs.Exists(ctx, check.kind, check.id)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.Validation(apperrors.CodeReferenceNotFound,
				fmt.Sprintf("%s not found", check.kind),
				map[string]interface{}{"field": check.field, "value": check.id})
		}
	}
	return nil
}

func createChecks(req *CreateCarRequest, dealershipID uint) []referenceCheck {
	return []referenceCheck{
		{ReferenceBrand, "brand_id", req.BrandID},
		{ReferenceCarModel, "car_model_id", req.CarModelID},
		{ReferenceCategory, "category_id", req.CategoryID},
		{ReferenceColor, "color_id", req.ColorID},
		{ReferenceWheelSize, "wheel_size_id", req.WheelSizeID},
		{ReferenceFuelType, "fuel_type_id", req.FuelTypeID},
		{ReferenceTransmission, "transmission_id", req.TransmissionID},
		{ReferenceDealership, "dealership_id", dealershipID},
	}
}

func validateImageCount(count int) error {
	if count < MinCarImages {
		return apperrors.Validation(apperrors.CodeMinImages,
			fmt.Sprintf("a listing requires at least %d image", MinCarImages), nil)
	}
	if count > MaxCarImages {
		return apperrors.Validation(apperrors.CodeMaxImages,
			fmt.Sprintf("a listing allows at most %d images", MaxCarImages), nil)
	}
	return nil
}

func (s *CarService) validateCreate(ctx context.Context, dealershipID uint, req *CreateCarRequest, images []ImageUpload) error {
	if err := ValidateRequest(req); err != nil {
		return err
	}
	if !req.Condition.Valid() {
		return apperrors.Validation("", "invalid condition",
			map[string]interface{}{"field": "condition", "value": req.Condition})
	}
	if err := validateImageCount(len(images)); err != nil {
		return err
	}
	for _, img := range images {
		if err := s.storage.ValidateImage(img.Data); err != nil {
			return apperrors.Validation("", fmt.Sprintf("invalid image %q", img.Name), nil)
		}
	}
	return s.validateReferences(ctx, createChecks(req, dealershipID))
}

// uploadImages stores each payload and returns the row set to insert.
// Keys embed the upload timestamp and array index so names never collide.
func (s *CarService) uploadImages(images []ImageUpload, startPosition int) ([]models.CarImage, error) {
	now := time.Now()
	rows := make([]models.CarImage, 0, len(images))

	for i, img := range images {
		key := s.storage.ObjectKey(now, startPosition+i, img.Name)
		stored, err := s.storage.SaveImage(img.Data, key, img.ContentType)
		if err != nil {
			// Compensate uploads that already happened
			for _, row := range rows {
				if delErr := s.storage.Delete(row.ObjectKey); delErr != nil {
					logrus.WithError(delErr).WithField("key", row.ObjectKey).
						Warn("Failed to clean up image after aborted upload")
				}
			}
			return nil, apperrors.Execution("failed to store image", err)
		}
		rows = append(rows, models.CarImage{
			Name:        img.Name,
			ObjectKey:   stored.Key,
			ContentType: stored.ContentType,
			Size:        stored.Size,
			Position:    startPosition + i,
		})
	}

	return rows, nil
}

func (s *CarService) CreateCar(ctx context.Context, dealershipID uint, req *CreateCarRequest, images []ImageUpload) (*models.Car, error) {
	if err := s.validateCreate(ctx, dealershipID, req, images); err != nil {
		return nil, err
	}

	imageRows, err := s.uploadImages(images, 0)
	if err != nil {
		return nil, err
	}

	car := models.Car{
		Name:           req.Name,
		Year:           req.Year,
		Condition:      req.Condition,
		Price:          req.Price,
		IpvaPaid:       req.IpvaPaid,
		IpvaDate:       req.IpvaDate,
		PurchaseDate:   req.PurchaseDate,
		Details:        req.Details,
		Armored:        req.Armored,
		Mileage:        req.Mileage,
		Features:       pq.StringArray(req.Features),
		ColorID:        req.ColorID,
		WheelSizeID:    req.WheelSizeID,
		CategoryID:     req.CategoryID,
		BrandID:        req.BrandID,
		CarModelID:     req.CarModelID,
		FuelTypeID:     req.FuelTypeID,
		TransmissionID: req.TransmissionID,
		DealershipID:   dealershipID,
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&car).Error; err != nil {
			return err
		}
		for i := range imageRows {
			imageRows[i].CarID = car.ID
		}
		return tx.Create(&imageRows).Error
	})
	if err != nil {
		s.storage.DeleteAll(imageKeys(imageRows))
		return nil, apperrors.FromDB(err, "car")
	}

	car.Images = imageRows
	if s.metrics != nil {
		s.metrics.ListingsCreatedTotal.Inc()
		s.metrics.ImagesUploadedTotal.Add(float64(len(imageRows)))
	}

	// Alert evaluation happens off the request path; a failure there
	// never fails the create.
	go s.notifyMatchingFilters(car.ID)

	return &car, nil
}

func imageKeys(rows []models.CarImage) []string {
	keys := make([]string, 0, len(rows))
	for _, row := range rows {
		keys = append(keys, row.ObjectKey)
	}
	return keys
}

func (s *CarService) notifyMatchingFilters(carID uint) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	matched, err := s.filters.CompareCarAgainstFilters(ctx, carID, nil)
	if err != nil {
		logrus.WithError(err).WithField("car_id", carID).Warn("Alert filter evaluation failed")
		return
	}
	if len(matched) == 0 {
		return
	}

	if s.metrics != nil {
		s.metrics.AlertMatchesTotal.Add(float64(len(matched)))
	}

	if s.notifications != nil {
		s.notifications.NotifyAlertMatches(ctx, carID, matched)
	}
}

func (s *CarService) GetCar(ctx context.Context, id uint) (*models.Car, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var car models.Car
	if err := s.db.WithContext(ctx).
		Preload("Brand").Preload("CarModel").Preload("Category").
		Preload("Color").Preload("WheelSize").Preload("FuelType").
		Preload("Transmission").Preload("Dealership").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&car, id).Error; err != nil {
		return nil, apperrors.FromDB(err, "car")
	}
	return &car, nil
}

// getOwnedCar loads a car scoped to its owning dealership.
func (s *CarService) getOwnedCar(ctx context.Context, dealershipID, carID uint) (*models.Car, error) {
	var car models.Car
	if err := s.db.WithContext(ctx).
		Where("id = ? AND dealership_id = ?", carID, dealershipID).
		First(&car).Error; err != nil {
		return nil, apperrors.FromDB(err, "car")
	}
	return &car, nil
}

func (s *CarService) SearchCars(ctx context.Context, params CarSearchParams) ([]models.Car, int64, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	query := s.db.WithContext(ctx).Model(&models.Car{}).
		Preload("Brand").Preload("CarModel").Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position") })

	if params.BrandID != nil {
		query = query.Where("brand_id = ?", *params.BrandID)
	}
	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}
	if params.CarModelID != nil {
		query = query.Where("car_model_id = ?", *params.CarModelID)
	}
	if params.DealershipID != nil {
		query = query.Where("dealership_id = ?", *params.DealershipID)
	}
	if params.Condition != nil {
		query = query.Where("condition = ?", *params.Condition)
	}
	if params.PriceMin != nil {
		query = query.Where("price >= ?", *params.PriceMin)
	}
	if params.PriceMax != nil {
		query = query.Where("price <= ?", *params.PriceMax)
	}
	if params.Year != nil {
		query = query.Where("year = ?", *params.Year)
	}
	if params.Armored != nil {
		query = query.Where("armored = ?", *params.Armored)
	}
	if params.Search != "" {
		query = query.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.FromDB(err, "car")
	}

	allowedSortFields := []string{"created_at", "updated_at", "name", "price", "year", "mileage"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var cars []models.Car
	if err := query.Find(&cars).Error; err != nil {
		return nil, 0, apperrors.FromDB(err, "car")
	}

	return cars, total, nil
}

// ReplaceCar implements full-replace semantics: all scalar columns are
// rewritten and the image set is replaced wholesale, so the 1..7 image
// rule applies to the new set exactly as on create.
func (s *CarService) ReplaceCar(ctx context.Context, dealershipID, carID uint, req *CreateCarRequest, images []ImageUpload) (*models.Car, error) {
	opCtx, cancel := s.opCtx(ctx)
	defer cancel()

	car, err := s.getOwnedCar(opCtx, dealershipID, carID)
	if err != nil {
		return nil, err
	}

	if err := s.validateCreate(ctx, dealershipID, req, images); err != nil {
		return nil, err
	}

	var oldImages []models.CarImage
	if err := s.db.WithContext(opCtx).Where("car_id = ?", car.ID).Find(&oldImages).Error; err != nil {
		return nil, apperrors.FromDB(err, "car image")
	}

	newRows, err := s.uploadImages(images, 0)
	if err != nil {
		return nil, err
	}

	car.Name = req.Name
	car.Year = req.Year
	car.Condition = req.Condition
	car.Price = req.Price
	car.IpvaPaid = req.IpvaPaid
	car.IpvaDate = req.IpvaDate
	car.PurchaseDate = req.PurchaseDate
	car.Details = req.Details
	car.Armored = req.Armored
	car.Mileage = req.Mileage
	car.Features = pq.StringArray(req.Features)
	car.ColorID = req.ColorID
	car.WheelSizeID = req.WheelSizeID
	car.CategoryID = req.CategoryID
	car.BrandID = req.BrandID
	car.CarModelID = req.CarModelID
	car.FuelTypeID = req.FuelTypeID
	car.TransmissionID = req.TransmissionID

	err = s.db.WithContext(opCtx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(car).Select("*").Omit("id", "dealership_id", "created_at").
			Updates(car).Error; err != nil {
			return err
		}
		if err := tx.Where("car_id = ?", car.ID).Delete(&models.CarImage{}).Error; err != nil {
			return err
		}
		for i := range newRows {
			newRows[i].CarID = car.ID
		}
		return tx.Create(&newRows).Error
	})
	if err != nil {
		s.storage.DeleteAll(imageKeys(newRows))
		return nil, apperrors.FromDB(err, "car")
	}

	// Old objects go only after the new state is committed.
	s.storage.DeleteAll(imageKeys(oldImages))

	car.Images = newRows
	if s.metrics != nil {
		s.metrics.ImagesUploadedTotal.Add(float64(len(newRows)))
	}
	return car, nil
}

// parseImageIDs converts the caller-supplied delete list; any id that is
// not a positive integer rejects the whole request.
func parseImageIDs(raw []string) ([]uint, error) {
	ids := make([]uint, 0, len(raw))
	for _, value := range raw {
		id, err := strconv.ParseUint(value, 10, 32)
		if err != nil || id == 0 {
			return nil, apperrors.Validation(apperrors.CodeInvalidImageID,
				fmt.Sprintf("invalid image id %q", value), nil)
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// PatchCar applies a partial update: only supplied fields change, image
// deletions are processed before appends, and the resulting image count
// must stay within 1..7.
func (s *CarService) PatchCar(ctx context.Context, dealershipID, carID uint, req *PatchCarRequest, newImages []ImageUpload, deleteImageIDs []string) (*models.Car, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}
	if req.Condition != nil && !req.Condition.Valid() {
		return nil, apperrors.Validation("", "invalid condition",
			map[string]interface{}{"field": "condition", "value": *req.Condition})
	}

	deleteIDs, err := parseImageIDs(deleteImageIDs)
	if err != nil {
		return nil, err
	}

	updates, refChecks := s.patchUpdates(req)
	if len(updates) == 0 && len(newImages) == 0 && len(deleteIDs) == 0 {
		return nil, apperrors.Validation(apperrors.CodeNoUpdateData,
			"nothing to update: no fields, no new images, no image deletions", nil)
	}

	for _, img := range newImages {
		if err := s.storage.ValidateImage(img.Data); err != nil {
			return nil, apperrors.Validation("", fmt.Sprintf("invalid image %q", img.Name), nil)
		}
	}

	if err := s.validateReferences(ctx, refChecks); err != nil {
		return nil, err
	}

	opCtx, cancel := s.opCtx(ctx)
	defer cancel()

	car, err := s.getOwnedCar(opCtx, dealershipID, carID)
	if err != nil {
		return nil, err
	}

	var currentImages []models.CarImage
	if err := s.db.WithContext(opCtx).Where("car_id = ?", car.ID).
		Order("position").Find(&currentImages).Error; err != nil {
		return nil, apperrors.FromDB(err, "car image")
	}

	toDelete := make([]models.CarImage, 0, len(deleteIDs))
	for _, id := range deleteIDs {
		found := false
		for _, img := range currentImages {
			if img.ID == id {
				toDelete = append(toDelete, img)
				found = true
				break
			}
		}
		if !found {
			return nil, apperrors.NotFound("car image")
		}
	}

	resulting := len(currentImages) - len(toDelete) + len(newImages)
	if err := validateImageCount(resulting); err != nil {
		return nil, err
	}

	nextPosition := 0
	for _, img := range currentImages {
		if img.Position >= nextPosition {
			nextPosition = img.Position + 1
		}
	}

	var newRows []models.CarImage
	if len(newImages) > 0 {
		newRows, err = s.uploadImages(newImages, nextPosition)
		if err != nil {
			return nil, err
		}
	}

	err = s.db.WithContext(opCtx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(car).Updates(updates).Error; err != nil {
				return err
			}
		}
		if len(toDelete) > 0 {
			if err := tx.Where("car_id = ? AND id IN ?", car.ID, deleteIDs).
				Delete(&models.CarImage{}).Error; err != nil {
				return err
			}
		}
		if len(newRows) > 0 {
			for i := range newRows {
				newRows[i].CarID = car.ID
			}
			if err := tx.Create(&newRows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.storage.DeleteAll(imageKeys(newRows))
		return nil, apperrors.FromDB(err, "car")
	}

	s.storage.DeleteAll(imageKeys(toDelete))

	if s.metrics != nil && len(newRows) > 0 {
		s.metrics.ImagesUploadedTotal.Add(float64(len(newRows)))
	}

	return s.GetCar(ctx, car.ID)
}

// patchUpdates turns supplied pointer fields into a column update map
// plus the reference checks the changed foreign keys require.
func (s *CarService) patchUpdates(req *PatchCarRequest) (map[string]interface{}, []referenceCheck) {
	updates := make(map[string]interface{})
	var checks []referenceCheck

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Year != nil {
		updates["year"] = *req.Year
	}
	if req.Condition != nil {
		updates["condition"] = *req.Condition
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.IpvaPaid != nil {
		updates["ipva_paid"] = *req.IpvaPaid
	}
	if req.IpvaDate != nil {
		updates["ipva_date"] = *req.IpvaDate
	}
	if req.PurchaseDate != nil {
		updates["purchase_date"] = *req.PurchaseDate
	}
	if req.Details != nil {
		updates["details"] = *req.Details
	}
	if req.Armored != nil {
		updates["armored"] = *req.Armored
	}
	if req.Mileage != nil {
		updates["mileage"] = *req.Mileage
	}
	if req.Features != nil {
		updates["features"] = pq.StringArray(*req.Features)
	}
	if req.ColorID != nil {
		updates["color_id"] = *req.ColorID
		checks = append(checks, referenceCheck{ReferenceColor, "color_id", *req.ColorID})
	}
	if req.WheelSizeID != nil {
		updates["wheel_size_id"] = *req.WheelSizeID
		checks = append(checks, referenceCheck{ReferenceWheelSize, "wheel_size_id", *req.WheelSizeID})
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
		checks = append(checks, referenceCheck{ReferenceCategory, "category_id", *req.CategoryID})
	}
	if req.BrandID != nil {
		updates["brand_id"] = *req.BrandID
		checks = append(checks, referenceCheck{ReferenceBrand, "brand_id", *req.BrandID})
	}
	if req.CarModelID != nil {
		updates["car_model_id"] = *req.CarModelID
		checks = append(checks, referenceCheck{ReferenceCarModel, "car_model_id", *req.CarModelID})
	}
	if req.FuelTypeID != nil {
		updates["fuel_type_id"] = *req.FuelTypeID
		checks = append(checks, referenceCheck{ReferenceFuelType, "fuel_type_id", *req.FuelTypeID})
	}
	if req.TransmissionID != nil {
		updates["transmission_id"] = *req.TransmissionID
		checks = append(checks, referenceCheck{ReferenceTransmission, "transmission_id", *req.TransmissionID})
	}

	return updates, checks
}

// DeleteCar removes the listing and everything hanging off it: image
// rows and stored objects, favorites, and match notifications.
func (s *CarService) DeleteCar(ctx context.Context, dealershipID, carID uint) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	car, err := s.getOwnedCar(ctx, dealershipID, carID)
	if err != nil {
		return err
	}

	var images []models.CarImage
	if err := s.db.WithContext(ctx).Where("car_id = ?", car.ID).Find(&images).Error; err != nil {
		return apperrors.FromDB(err, "car image")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("car_id = ?", car.ID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("car_id = ?", car.ID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("car_id = ?", car.ID).Delete(&models.CarImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Car{}, car.ID).Error
	})
	if err != nil {
		return apperrors.FromDB(err, "car")
	}

	s.storage.DeleteAll(imageKeys(images))
	return nil
}

func (s *CarService) ListCarImages(ctx context.Context, carID uint) ([]models.CarImage, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var car models.Car
	if err := s.db.WithContext(ctx).Select("id").First(&car, carID).Error; err != nil {
		return nil, apperrors.FromDB(err, "car")
	}

	var images []models.CarImage
	if err := s.db.WithContext(ctx).Where("car_id = ?", carID).
		Order("position").Find(&images).Error; err != nil {
		return nil, apperrors.FromDB(err, "car image")
	}
	return images, nil
}

// DeleteCarImage removes a single image, refusing to strip the listing
// of its last one.
func (s *CarService) DeleteCarImage(ctx context.Context, dealershipID, imageID uint) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var image models.CarImage
	if err := s.db.WithContext(ctx).First(&image, imageID).Error; err != nil {
		return apperrors.FromDB(err, "car image")
	}

	if _, err := s.getOwnedCar(ctx, dealershipID, image.CarID); err != nil {
		return err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.CarImage{}).
		Where("car_id = ?", image.CarID).Count(&count).Error; err != nil {
		return apperrors.FromDB(err, "car image")
	}
	if count <= MinCarImages {
		return apperrors.Validation(apperrors.CodeMinImages,
			"a listing must keep at least one image", nil)
	}

	if err := s.db.WithContext(ctx).Delete(&models.CarImage{}, imageID).Error; err != nil {
		return apperrors.FromDB(err, "car image")
	}

	if err := s.storage.Delete(image.ObjectKey); err != nil {
		logrus.WithError(err).WithField("key", image.ObjectKey).
			Warn("Failed to delete stored image")
	}
	return nil
}
