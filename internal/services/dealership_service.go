// internal/services/dealership_service.go
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

type DealershipService struct {
	db      *gorm.DB
	timeout time.Duration
}

type RegisterDealershipRequest struct {
	Name     string          `json:"name" validate:"required,min=2,max=255"`
	CNPJ     string          `json:"cnpj" validate:"required,cnpj"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=8"`
	Phone    string          `json:"phone" validate:"omitempty,max=20"`
	Address  *AddressRequest `json:"address,omitempty"`
}

type UpdateDealershipRequest struct {
	Name    *string         `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Email   *string         `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string         `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address *AddressRequest `json:"address,omitempty"`
}

func NewDealershipService(db *gorm.DB, cfg *config.Config) *DealershipService {
	return &DealershipService{db: db, timeout: cfg.Database.OperationTimeout()}
}

func (s *DealershipService) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func (s *DealershipService) Register(ctx context.Context, req *RegisterDealershipRequest) (*models.Dealership, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}
	if req.Address != nil {
		if err := ValidateRequest(req.Address); err != nil {
			return nil, err
		}
	}

	dealership := models.Dealership{
		Name:  req.Name,
		CNPJ:  req.CNPJ,
		Email: req.Email,
		Phone: req.Phone,
	}
	if err := dealership.SetPassword(req.Password); err != nil {
		return nil, apperrors.Execution("failed to hash password", err)
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.Address != nil {
			address := addressFromRequest(req.Address)
			if err := tx.Create(&address).Error; err != nil {
				return err
			}
			dealership.AddressID = &address.ID
			dealership.Address = &address
		}
		return tx.Create(&dealership).Error
	})
	if err != nil {
		return nil, apperrors.FromDB(err, "dealership")
	}

	return &dealership, nil
}

func (s *DealershipService) GetDealership(ctx context.Context, id uint) (*models.Dealership, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var dealership models.Dealership
	if err := s.db.WithContext(ctx).Preload("Address").First(&dealership, id).Error; err != nil {
		return nil, apperrors.FromDB(err, "dealership")
	}
	return &dealership, nil
}

func (s *DealershipService) ListDealerships(ctx context.Context, params utils.PaginationParams) ([]models.Dealership, int64, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	query := s.db.WithContext(ctx).Model(&models.Dealership{})
	if params.Search != "" {
		query = query.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.FromDB(err, "dealership")
	}

	allowedSortFields := []string{"name", "created_at"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var dealerships []models.Dealership
	if err := query.Preload("Address").Find(&dealerships).Error; err != nil {
		return nil, 0, apperrors.FromDB(err, "dealership")
	}

	return dealerships, total, nil
}

func (s *DealershipService) UpdateDealership(ctx context.Context, id uint, req *UpdateDealershipRequest) (*models.Dealership, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}
	if req.Address != nil {
		if err := ValidateRequest(req.Address); err != nil {
			return nil, err
		}
	}
	if req.Name == nil && req.Email == nil && req.Phone == nil && req.Address == nil {
		return nil, apperrors.Validation(apperrors.CodeNoUpdateData, "nothing to update", nil)
	}

	opCtx, cancel := s.opCtx(ctx)
	defer cancel()

	var dealership models.Dealership
	if err := s.db.WithContext(opCtx).First(&dealership, id).Error; err != nil {
		return nil, apperrors.FromDB(err, "dealership")
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}

	err := s.db.WithContext(opCtx).Transaction(func(tx *gorm.DB) error {
		if req.Address != nil {
			address := addressFromRequest(req.Address)
			if dealership.AddressID != nil {
				address.ID = *dealership.AddressID
				if err := tx.Model(&models.Address{}).Where("id = ?", address.ID).
					Select("*").Omit("id", "created_at").Updates(&address).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Create(&address).Error; err != nil {
					return err
				}
				updates["address_id"] = address.ID
			}
		}
		if len(updates) > 0 {
			return tx.Model(&dealership).Updates(updates).Error
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.FromDB(err, "dealership")
	}

	return s.GetDealership(ctx, id)
}

func (s *DealershipService) ChangePassword(ctx context.Context, id uint, req *ChangePasswordRequest) error {
	if err := ValidateRequest(req); err != nil {
		return err
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var dealership models.Dealership
	if err := s.db.WithContext(ctx).First(&dealership, id).Error; err != nil {
		return apperrors.FromDB(err, "dealership")
	}

	if err := dealership.CheckPassword(req.CurrentPassword); err != nil {
		return apperrors.Validation("", "current password is incorrect", nil)
	}
	if err := dealership.SetPassword(req.NewPassword); err != nil {
		return apperrors.Execution("failed to hash password", err)
	}

	if err := s.db.WithContext(ctx).Model(&dealership).
		Update("password_hash", dealership.PasswordHash).Error; err != nil {
		return apperrors.FromDB(err, "dealership")
	}
	return nil
}

// DeleteDealership refuses to remove an account that still owns
// listings; those must be deleted first since each carries stored
// image objects.
func (s *DealershipService) DeleteDealership(ctx context.Context, id uint) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var dealership models.Dealership
	if err := s.db.WithContext(ctx).First(&dealership, id).Error; err != nil {
		return apperrors.FromDB(err, "dealership")
	}

	var carCount int64
	if err := s.db.WithContext(ctx).Model(&models.Car{}).
		Where("dealership_id = ?", id).Count(&carCount).Error; err != nil {
		return apperrors.FromDB(err, "dealership")
	}
	if carCount > 0 {
		return apperrors.Conflict(apperrors.CodeReferenceInUse,
			"dealership still has active listings")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Dealership{}, id).Error; err != nil {
			return err
		}
		if dealership.AddressID != nil {
			return tx.Delete(&models.Address{}, *dealership.AddressID).Error
		}
		return nil
	})
	if err != nil {
		return apperrors.FromDB(err, "dealership")
	}
	return nil
}
