// internal/services/reference_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cappeLindo/webcars-api/internal/apperrors"
)

func TestReferenceCRUD(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReferenceService(db, testConfig(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, ReferenceBrand, "Fiat")
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.Equal(t, "Fiat", created.Name)

	fetched, err := svc.Get(ctx, ReferenceBrand, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)

	updated, err := svc.Update(ctx, ReferenceBrand, created.ID, "Fiat Automóveis")
	require.NoError(t, err)
	assert.Equal(t, "Fiat Automóveis", updated.Name)

	items, err := svc.List(ctx, ReferenceBrand)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Fiat Automóveis", items[0].Name)

	require.NoError(t, svc.Delete(ctx, ReferenceBrand, created.ID))

	_, err = svc.Get(ctx, ReferenceBrand, created.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestReferenceListIsSortedByName(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReferenceService(db, testConfig(t))
	ctx := context.Background()

	for _, name := range []string{"Manual", "Automático", "CVT"} {
		_, err := svc.Create(ctx, ReferenceTransmission, name)
		require.NoError(t, err)
	}

	items, err := svc.List(ctx, ReferenceTransmission)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Automático", items[0].Name)
	assert.Equal(t, "CVT", items[1].Name)
	assert.Equal(t, "Manual", items[2].Name)
}

func TestReferenceUnknownKind(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReferenceService(db, testConfig(t))

	_, err := svc.List(context.Background(), ReferenceKind("engine"))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestReferenceDeleteUnknownID(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReferenceService(db, testConfig(t))

	err := svc.Delete(context.Background(), ReferenceColor, 42)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestReferenceExistsCachesPositives(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReferenceService(db, testConfig(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, ReferenceCategory, "SUV")
	require.NoError(t, err)

	exists, err := svc.Exists(ctx, ReferenceCategory, created.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	// Removing the row behind the cache keeps the positive entry alive
	// until Delete invalidates it.
	require.NoError(t, db.Exec("DELETE FROM categories WHERE id = ?", created.ID).Error)

	exists, err = svc.Exists(ctx, ReferenceCategory, created.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestReferenceDeleteInvalidatesExistsCache(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReferenceService(db, testConfig(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, ReferenceFuelType, "Diesel")
	require.NoError(t, err)

	exists, err := svc.Exists(ctx, ReferenceFuelType, created.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, svc.Delete(ctx, ReferenceFuelType, created.ID))

	exists, err = svc.Exists(ctx, ReferenceFuelType, created.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCarModelCRUD(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReferenceService(db, testConfig(t))
	ctx := context.Background()

	brand, err := svc.Create(ctx, ReferenceBrand, "Chevrolet")
	require.NoError(t, err)
	otherBrand, err := svc.Create(ctx, ReferenceBrand, "Volkswagen")
	require.NoError(t, err)

	onix, err := svc.CreateCarModel(ctx, "Onix", brand.ID)
	require.NoError(t, err)
	assert.Equal(t, brand.ID, onix.BrandID)
	_, err = svc.CreateCarModel(ctx, "Polo", otherBrand.ID)
	require.NoError(t, err)

	all, err := svc.ListCarModels(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := svc.ListCarModels(ctx, &brand.ID)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "Onix", scoped[0].Name)

	updated, err := svc.UpdateCarModel(ctx, onix.ID, "Onix Plus")
	require.NoError(t, err)
	assert.Equal(t, "Onix Plus", updated.Name)

	require.NoError(t, svc.DeleteCarModel(ctx, onix.ID))

	_, err = svc.GetCarModel(ctx, onix.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestCreateCarModelUnknownBrand(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReferenceService(db, testConfig(t))

	_, err := svc.CreateCarModel(context.Background(), "Onix", 99)
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeReferenceNotFound, appErr.Code)
}
