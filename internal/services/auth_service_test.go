// internal/services/auth_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cappeLindo/webcars-api/internal/apperrors"
	"github.com/cappeLindo/webcars-api/internal/models"
	"github.com/cappeLindo/webcars-api/internal/utils"
)

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	cfg := testConfig(t)
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	return NewAuthService(db, cfg), db
}

func TestLoginClient(t *testing.T) {
	svc, db := newAuthService(t)
	client := seedClient(t, db, "maria@example.com", "52998224725")

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:       "maria@example.com",
		Password:    "client-pass-123",
		AccountType: "client",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "client", resp.AccountType)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	claims, err := utils.ValidateJWT(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, client.ID, claims.AccountID)
	assert.Equal(t, "client", claims.AccountType)
}

func TestLoginDealership(t *testing.T) {
	svc, db := newAuthService(t)
	refs := seedReferences(t, db)

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:       "contato@autocenter.com.br",
		Password:    "dealer-pass-123",
		AccountType: "dealership",
	})
	require.NoError(t, err)
	assert.Equal(t, "dealership", resp.AccountType)

	claims, err := utils.ValidateJWT(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, refs.Dealership.ID, claims.AccountID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, db := newAuthService(t)
	seedClient(t, db, "maria@example.com", "52998224725")

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:       "maria@example.com",
		Password:    "not-the-password",
		AccountType: "client",
	})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_CREDENTIALS", appErr.Code)
}

func TestLoginUnknownEmailLooksLikeWrongPassword(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:       "nobody@example.com",
		Password:    "whatever-123",
		AccountType: "client",
	})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_CREDENTIALS", appErr.Code)
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
}

func TestLoginWrongAccountTypeTable(t *testing.T) {
	svc, db := newAuthService(t)
	seedClient(t, db, "maria@example.com", "52998224725")

	// A client's credentials must not open a dealership session.
	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:       "maria@example.com",
		Password:    "client-pass-123",
		AccountType: "dealership",
	})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_CREDENTIALS", appErr.Code)
}

func TestRefreshRoundTrip(t *testing.T) {
	svc, db := newAuthService(t)
	client := seedClient(t, db, "maria@example.com", "52998224725")

	login, err := svc.Login(context.Background(), &LoginRequest{
		Email:       "maria@example.com",
		Password:    "client-pass-123",
		AccountType: "client",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), &RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.Equal(t, "client", refreshed.AccountType)
	assert.NotEmpty(t, refreshed.AccessToken)

	claims, err := utils.ValidateJWT(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, client.ID, claims.AccountID)
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Refresh(context.Background(), &RefreshRequest{RefreshToken: "not.a.token"})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_TOKEN", appErr.Code)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, db := newAuthService(t)
	seedClient(t, db, "maria@example.com", "52998224725")

	login, err := svc.Login(context.Background(), &LoginRequest{
		Email:       "maria@example.com",
		Password:    "client-pass-123",
		AccountType: "client",
	})
	require.NoError(t, err)

	// Access token subjects carry a bare id, not type:id.
	_, err = svc.Refresh(context.Background(), &RefreshRequest{RefreshToken: login.AccessToken})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_TOKEN", appErr.Code)
}

func TestCurrentAccount(t *testing.T) {
	svc, db := newAuthService(t)
	client := seedClient(t, db, "maria@example.com", "52998224725")

	account, err := svc.CurrentAccount(context.Background(), client.ID, string(models.AccountTypeClient))
	require.NoError(t, err)

	loaded, ok := account.(*models.Client)
	require.True(t, ok)
	assert.Equal(t, client.Email, loaded.Email)

	_, err = svc.CurrentAccount(context.Background(), 999, string(models.AccountTypeClient))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
