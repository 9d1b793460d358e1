// internal/services/car_service_test.go
package services

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cappeLindo/webcars-api/internal/apperrors"
	"github.com/cappeLindo/webcars-api/internal/metrics"
	"github.com/cappeLindo/webcars-api/internal/models"
)

// Minimal valid PNG header followed by filler; enough for the magic
// number check.
func pngPayload() []byte {
	return append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, []byte("test-image-data")...)
}

func testImages(n int) []ImageUpload {
	images := make([]ImageUpload, 0, n)
	for i := 0; i < n; i++ {
		images = append(images, ImageUpload{
			Name:        "photo.png",
			ContentType: "image/png",
			Data:        pngPayload(),
		})
	}
	return images
}

func newCarService(t *testing.T) (*CarService, testRefs) {
	t.Helper()

	db := setupTestDB(t)
	cfg := testConfig(t)
	refs := seedReferences(t, db)

	storage, err := NewStorageService(cfg)
	require.NoError(t, err)

	referenceService := NewReferenceService(db, cfg)
	filterService := NewAlertFilterService(db, cfg)
	notificationService := NewNotificationService(db, cfg)
	svc := NewCarService(db, cfg, referenceService, storage, filterService, notificationService, metrics.NewRegistry())
	return svc, refs
}

func validCreateRequest(refs testRefs) *CreateCarRequest {
	return &CreateCarRequest{
		Name:           "Onix LT 1.0",
		Year:           2022,
		Condition:      models.CarConditionUsed,
		Price:          75000,
		Mileage:        45000,
		ColorID:        refs.Color.ID,
		WheelSizeID:    refs.WheelSize.ID,
		CategoryID:     refs.Category.ID,
		BrandID:        refs.Brand.ID,
		CarModelID:     refs.CarModel.ID,
		FuelTypeID:     refs.FuelType.ID,
		TransmissionID: refs.Transmission.ID,
	}
}

func TestCreateCar(t *testing.T) {
	svc, refs := newCarService(t)

	car, err := svc.CreateCar(context.Background(), refs.Dealership.ID, validCreateRequest(refs), testImages(3))
	require.NoError(t, err)
	assert.NotZero(t, car.ID)
	assert.Equal(t, refs.Dealership.ID, car.DealershipID)
	require.Len(t, car.Images, 3)
	for i, img := range car.Images {
		assert.Equal(t, i, img.Position)
		assert.Equal(t, car.ID, img.CarID)
		assert.NotEmpty(t, img.ObjectKey)
	}
}

func TestCreateCarImageCountBounds(t *testing.T) {
	svc, refs := newCarService(t)

	_, err := svc.CreateCar(context.Background(), refs.Dealership.ID, validCreateRequest(refs), nil)
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeMinImages, appErr.Code)

	_, err = svc.CreateCar(context.Background(), refs.Dealership.ID, validCreateRequest(refs), testImages(8))
	require.Error(t, err)
	appErr, ok = apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeMaxImages, appErr.Code)
}

func TestCreateCarUnknownReference(t *testing.T) {
	svc, refs := newCarService(t)

	req := validCreateRequest(refs)
	req.BrandID = 999

	_, err := svc.CreateCar(context.Background(), refs.Dealership.ID, req, testImages(1))
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeReferenceNotFound, appErr.Code)
}

func TestCreateCarInvalidImagePayload(t *testing.T) {
	svc, refs := newCarService(t)

	images := []ImageUpload{{Name: "notes.txt", ContentType: "text/plain", Data: []byte("plain text")}}
	_, err := svc.CreateCar(context.Background(), refs.Dealership.ID, validCreateRequest(refs), images)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestReplaceCarSwapsImageSet(t *testing.T) {
	svc, refs := newCarService(t)

	car, err := svc.CreateCar(context.Background(), refs.Dealership.ID, validCreateRequest(refs), testImages(3))
	require.NoError(t, err)
	oldKeys := make(map[string]bool)
	for _, img := range car.Images {
		oldKeys[img.ObjectKey] = true
	}

	req := validCreateRequest(refs)
	req.Name = "Onix LTZ 1.4"
	req.Price = 82000

	updated, err := svc.ReplaceCar(context.Background(), refs.Dealership.ID, car.ID, req, testImages(2))
	require.NoError(t, err)
	assert.Equal(t, "Onix LTZ 1.4", updated.Name)
	assert.Equal(t, 82000.0, updated.Price)
	require.Len(t, updated.Images, 2)
	for _, img := range updated.Images {
		assert.False(t, oldKeys[img.ObjectKey], "replacement must not reuse old object keys")
	}
}

func TestReplaceCarUnknownIDLeavesNothingBehind(t *testing.T) {
	svc, refs := newCarService(t)

	_, err := svc.ReplaceCar(context.Background(), refs.Dealership.ID, 999, validCreateRequest(refs), testImages(2))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestReplaceCarOwnedByAnotherDealership(t *testing.T) {
	svc, refs := newCarService(t)

	car, err := svc.CreateCar(context.Background(), refs.Dealership.ID, validCreateRequest(refs), testImages(1))
	require.NoError(t, err)

	_, err = svc.ReplaceCar(context.Background(), refs.Dealership.ID+1, car.ID, validCreateRequest(refs), testImages(1))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestPatchCarPartialUpdate(t *testing.T) {
	svc, refs := newCarService(t)

	car, err := svc.CreateCar(context.Background(), refs.Dealership.ID, validCreateRequest(refs), testImages(2))
	require.NoError(t, err)

	newPrice := 69900.0
	armored := true
	updated, err := svc.PatchCar(context.Background(), refs.Dealership.ID, car.ID, &PatchCarRequest{
		Price:   &newPrice,
		Armored: &armored,
	}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 69900.0, updated.Price)
	assert.True(t, updated.Armored)
	assert.Equal(t, car.Name, updated.Name)
	assert.Len(t, updated.Images, 2)
}

func TestPatchCarNoUpdateData(t *testing.T) {
	svc, refs := newCarService(t)

	car, err := svc.CreateCar(context.Background(), refs.Dealership.ID, validCreateRequest(refs), testImages(1))
	require.NoError(t, err)

	_, err = svc.PatchCar(context.Background(), refs.Dealership.ID, car.ID, &PatchCarRequest{}, nil, nil)
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNoUpdateData, appErr.Code)
}

func TestPatchCarRejectsNonNumericImageID(t *testing.T) {
	svc, refs := newCarService(t)

	car, err := svc.CreateCar(context.Background(), refs.Dealership.ID, validCreateRequest(refs), testImages(2))
	require.NoError(t, err)

	_, err = svc.PatchCar(context.Background(), refs.Dealership.ID, car.ID, &PatchCarRequest{}, nil, []string{"abc"})
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidImageID, appErr.Code)
}

func TestPatchCarImageSetMutation(t *testing.T) {
	svc, refs := newCarService(t)

	car, err := svc.CreateCar(context.Background(), refs.Dealership.ID, validCreateRequest(refs), testImages(3))
	require.NoError(t, err)

	deleteID := car.Images[0].ID
	updated, err := svc.PatchCar(context.Background(), refs.Dealership.ID, car.ID, &PatchCarRequest{},
		testImages(1), []string{strconv.FormatUint(uint64(deleteID), 10)})
	require.NoError(t, err)
	assert.Len(t, updated.Images, 3)

	for _, img := range updated.Images {
		assert.NotEqual(t, deleteID, img.ID)
	}
}

func TestPatchCarRefusesEmptyingImageSet(t *testing.T) {
	svc, refs := newCarService(t)

	car, err := svc.CreateCar(context.Background(), refs.Dealership.ID, validCreateRequest(refs), testImages(1))
	require.NoError(t, err)

	_, err = svc.PatchCar(context.Background(), refs.Dealership.ID, car.ID, &PatchCarRequest{},
		nil, []string{strconv.FormatUint(uint64(car.Images[0].ID), 10)})
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeMinImages, appErr.Code)
}

func TestDeleteCarCascades(t *testing.T) {
	svc, refs := newCarService(t)
	db := svc.db

	car, err := svc.CreateCar(context.Background(), refs.Dealership.ID, validCreateRequest(refs), testImages(2))
	require.NoError(t, err)

	client := seedClient(t, db, "fan@example.com", "52998224725")
	require.NoError(t, db.Create(&models.Favorite{ClientID: client.ID, CarID: car.ID}).Error)

	require.NoError(t, svc.DeleteCar(context.Background(), refs.Dealership.ID, car.ID))

	var carCount, imageCount, favoriteCount int64
	db.Model(&models.Car{}).Where("id = ?", car.ID).Count(&carCount)
	db.Model(&models.CarImage{}).Where("car_id = ?", car.ID).Count(&imageCount)
	db.Model(&models.Favorite{}).Where("car_id = ?", car.ID).Count(&favoriteCount)
	assert.Zero(t, carCount)
	assert.Zero(t, imageCount)
	assert.Zero(t, favoriteCount)
}

func TestSearchCarsFilters(t *testing.T) {
	svc, refs := newCarService(t)
	db := svc.db

	seedCar(t, db, refs, "Onix LT", 2022, 75000)
	seedCar(t, db, refs, "Onix LTZ", 2023, 92000)
	seedCar(t, db, refs, "Onix Joy", 2019, 48000)

	priceMin := 50000.0
	priceMax := 95000.0
	cars, total, err := svc.SearchCars(context.Background(), CarSearchParams{
		PriceMin: &priceMin,
		PriceMax: &priceMax,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, cars, 2)

	year := 2019
	cars, total, err = svc.SearchCars(context.Background(), CarSearchParams{Year: &year})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, cars, 1)
	assert.Equal(t, "Onix Joy", cars[0].Name)
}

func TestValidateImageCount(t *testing.T) {
	assert.Error(t, validateImageCount(0))
	assert.NoError(t, validateImageCount(1))
	assert.NoError(t, validateImageCount(7))
	assert.Error(t, validateImageCount(8))
}

func TestParseImageIDs(t *testing.T) {
	ids, err := parseImageIDs([]string{"1", "42"})
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 42}, ids)

	_, err = parseImageIDs([]string{"1", "x"})
	require.Error(t, err)

	_, err = parseImageIDs([]string{"0"})
	require.Error(t, err)

	_, err = parseImageIDs([]string{"-3"})
	require.Error(t, err)
}
