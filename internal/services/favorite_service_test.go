// internal/services/favorite_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cappeLindo/webcars-api/internal/apperrors"
	"github.com/cappeLindo/webcars-api/internal/utils"
)

func TestAddFavorite(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFavoriteService(db, testConfig(t))
	refs := seedReferences(t, db)
	client := seedClient(t, db, "maria@example.com", "52998224725")
	car := seedCar(t, db, refs, "Onix LT", 2022, 75000)

	favorite, err := svc.AddFavorite(context.Background(), client.ID, car.ID)
	require.NoError(t, err)
	assert.Equal(t, client.ID, favorite.ClientID)
	assert.Equal(t, car.ID, favorite.CarID)
}

func TestAddFavoriteDuplicateIsConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFavoriteService(db, testConfig(t))
	refs := seedReferences(t, db)
	client := seedClient(t, db, "maria@example.com", "52998224725")
	car := seedCar(t, db, refs, "Onix LT", 2022, 75000)

	_, err := svc.AddFavorite(context.Background(), client.ID, car.ID)
	require.NoError(t, err)

	_, err = svc.AddFavorite(context.Background(), client.ID, car.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestAddFavoriteUnknownCar(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFavoriteService(db, testConfig(t))
	client := seedClient(t, db, "maria@example.com", "52998224725")

	_, err := svc.AddFavorite(context.Background(), client.ID, 999)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestRemoveFavorite(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFavoriteService(db, testConfig(t))
	refs := seedReferences(t, db)
	client := seedClient(t, db, "maria@example.com", "52998224725")
	car := seedCar(t, db, refs, "Onix LT", 2022, 75000)

	_, err := svc.AddFavorite(context.Background(), client.ID, car.ID)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveFavorite(context.Background(), client.ID, car.ID))

	err = svc.RemoveFavorite(context.Background(), client.ID, car.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestListFavoritesScopedToClient(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFavoriteService(db, testConfig(t))
	refs := seedReferences(t, db)
	clientA := seedClient(t, db, "a@example.com", "52998224725")
	clientB := seedClient(t, db, "b@example.com", "15350946056")
	car1 := seedCar(t, db, refs, "Onix LT", 2022, 75000)
	car2 := seedCar(t, db, refs, "Onix LTZ", 2023, 92000)

	_, err := svc.AddFavorite(context.Background(), clientA.ID, car1.ID)
	require.NoError(t, err)
	_, err = svc.AddFavorite(context.Background(), clientA.ID, car2.ID)
	require.NoError(t, err)
	_, err = svc.AddFavorite(context.Background(), clientB.ID, car1.ID)
	require.NoError(t, err)

	favorites, total, err := svc.ListFavorites(context.Background(), clientA.ID, utils.PaginationParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, favorites, 2)

	isFav, err := svc.IsFavorite(context.Background(), clientB.ID, car2.ID)
	require.NoError(t, err)
	assert.False(t, isFav)

	isFav, err = svc.IsFavorite(context.Background(), clientB.ID, car1.ID)
	require.NoError(t, err)
	assert.True(t, isFav)
}
