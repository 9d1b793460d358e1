// internal/services/auth_service.go
package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/cappeLindo/webcars-api/internal/apperrors"
	"github.com/cappeLindo/webcars-api/internal/config"
	"github.com/cappeLindo/webcars-api/internal/models"
	"github.com/cappeLindo/webcars-api/internal/utils"
)

// AuthService authenticates both account types against their own
// tables. The account type travels inside the token so middleware can
// gate dealership-only and client-only routes.
type AuthService struct {
	db      *gorm.DB
	config  *config.Config
	timeout time.Duration
}

type LoginRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	AccountType string `json:"account_type" validate:"required,oneof=client dealership"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	TokenType    string      `json:"token_type"`
	ExpiresIn    int         `json:"expires_in"`
	AccountType  string      `json:"account_type"`
	Account      interface{} `json:"account"`
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, config: cfg, timeout: cfg.Database.OperationTimeout()}
}

func (s *AuthService) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	switch req.AccountType {
	case string(models.AccountTypeClient):
		var client models.Client
		if err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&client).Error; err != nil {
			return nil, invalidCredentials(err)
		}
		if err := client.CheckPassword(req.Password); err != nil {
			return nil, invalidCredentials(err)
		}
		return s.issueTokens(client.ID, client.Name, string(models.AccountTypeClient), &client)

	case string(models.AccountTypeDealership):
		var dealership models.Dealership
		if err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&dealership).Error; err != nil {
			return nil, invalidCredentials(err)
		}
		if err := dealership.CheckPassword(req.Password); err != nil {
			return nil, invalidCredentials(err)
		}
		return s.issueTokens(dealership.ID, dealership.Name, string(models.AccountTypeDealership), &dealership)
	}

	return nil, apperrors.Validation("", "unknown account type", nil)
}

// invalidCredentials hides whether the email or the password was wrong.
func invalidCredentials(err error) error {
	if appErr, ok := apperrors.As(apperrors.FromDB(err, "account")); ok && appErr.Kind == apperrors.KindTimedOut {
		return appErr
	}
	return apperrors.Validation("INVALID_CREDENTIALS", "invalid email or password", nil)
}

func (s *AuthService) issueTokens(accountID uint, accountName, accountType string, account interface{}) (*AuthResponse, error) {
	accessToken, err := utils.GenerateJWT(accountID, accountName, accountType, s.config.JWT.AccessTokenTTL)
	if err != nil {
		return nil, apperrors.Execution("failed to generate access token", err)
	}

	refreshToken, err := utils.GenerateRefreshToken(accountID, accountType, s.config.JWT.RefreshTokenTTL)
	if err != nil {
		return nil, apperrors.Execution("failed to generate refresh token", err)
	}

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    s.config.JWT.AccessTokenTTL * 3600,
		AccountType:  accountType,
		Account:      account,
	}, nil
}

// Refresh exchanges a valid refresh token for a fresh token pair.
func (s *AuthService) Refresh(ctx context.Context, req *RefreshRequest) (*AuthResponse, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	subject, err := utils.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, apperrors.Validation("INVALID_TOKEN", "invalid or expired refresh token", nil)
	}

	accountType, idPart, found := strings.Cut(subject, ":")
	if !found {
		return nil, apperrors.Validation("INVALID_TOKEN", "malformed refresh token subject", nil)
	}
	accountID, err := strconv.ParseUint(idPart, 10, 32)
	if err != nil {
		return nil, apperrors.Validation("INVALID_TOKEN", "malformed refresh token subject", nil)
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	switch accountType {
	case string(models.AccountTypeClient):
		var client models.Client
		if err := s.db.WithContext(ctx).First(&client, uint(accountID)).Error; err != nil {
			return nil, apperrors.FromDB(err, "client")
		}
		return s.issueTokens(client.ID, client.Name, accountType, &client)

	case string(models.AccountTypeDealership):
		var dealership models.Dealership
		if err := s.db.WithContext(ctx).First(&dealership, uint(accountID)).Error; err != nil {
			return nil, apperrors.FromDB(err, "dealership")
		}
		return s.issueTokens(dealership.ID, dealership.Name, accountType, &dealership)
	}

	return nil, apperrors.Validation("INVALID_TOKEN", "unknown account type in refresh token", nil)
}

// CurrentAccount resolves the authenticated principal to its full record.
func (s *AuthService) CurrentAccount(ctx context.Context, accountID uint, accountType string) (interface{}, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	switch accountType {
	case string(models.AccountTypeClient):
		var client models.Client
		if err := s.db.WithContext(ctx).Preload("Address").First(&client, accountID).Error; err != nil {
			return nil, apperrors.FromDB(err, "client")
		}
		return &client, nil

	case string(models.AccountTypeDealership):
		var dealership models.Dealership
		if err := s.db.WithContext(ctx).Preload("Address").First(&dealership, accountID).Error; err != nil {
			return nil, apperrors.FromDB(err, "dealership")
		}
		return &dealership, nil
	}

	return nil, apperrors.NotFound("account")
}
