// internal/services/client_service.go
package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/cappeLindo/webcars-api/internal/apperrors"
	"github.com/cappeLindo/webcars-api/internal/config"
	"github.com/cappeLindo/webcars-api/internal/models"
)

type ClientService struct {
	db      *gorm.DB
	timeout time.Duration
}

// AddressRequest is the nested address payload shared by client and
// dealership registration and updates.
type AddressRequest struct {
	CEP          string `json:"cep" validate:"required,cep"`
	State        string `json:"state" validate:"required,len=2"`
	City         string `json:"city" validate:"required,max=100"`
	Neighborhood string `json:"neighborhood" validate:"max=100"`
	Street       string `json:"street" validate:"max=255"`
	Number       string `json:"number" validate:"max=20"`
}

type RegisterClientRequest struct {
	Name     string          `json:"name" validate:"required,min=2,max=255"`
	CPF      string          `json:"cpf" validate:"required,cpf"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=8"`
	Phone    string          `json:"phone" validate:"omitempty,max=20"`
	Address  *AddressRequest `json:"address,omitempty"`
}

type UpdateClientRequest struct {
	Name    *string         `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Email   *string         `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string         `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address *AddressRequest `json:"address,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

func NewClientService(db *gorm.DB, cfg *config.Config) *ClientService {
	return &ClientService{db: db, timeout: cfg.Database.OperationTimeout()}
}

func (s *ClientService) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func addressFromRequest(req *AddressRequest) models.Address {
	return models.Address{
		CEP:          req.CEP,
		State:        req.State,
		City:         req.City,
		Neighborhood: req.Neighborhood,
		Street:       req.Street,
		Number:       req.Number,
	}
}

func (s *ClientService) Register(ctx context.Context, req *RegisterClientRequest) (*models.Client, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}
	if req.Address != nil {
		if err := ValidateRequest(req.Address); err != nil {
			return nil, err
		}
	}

	client := models.Client{
		Name:  req.Name,
		CPF:   req.CPF,
		Email: req.Email,
		Phone: req.Phone,
	}
	if err := client.SetPassword(req.Password); err != nil {
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
			client.AddressID = &address.ID
			client.Address = &address
		}
		return tx.Create(&client).Error
	})
	if err != nil {
		return nil, apperrors.FromDB(err, "client")
	}

	return &client, nil
}

func (s *ClientService) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var client models.Client
	if err := s.db.WithContext(ctx).Preload("Address").First(&client, id).Error; err != nil {
		return nil, apperrors.FromDB(err, "client")
	}
	return &client, nil
}

func (s *ClientService) UpdateClient(ctx context.Context, id uint, req *UpdateClientRequest) (*models.Client, error) {
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

	var client models.Client
	if err := s.db.WithContext(opCtx).First(&client, id).Error; err != nil {
		return nil, apperrors.FromDB(err, "client")
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
			if client.AddressID != nil {
				address.ID = *client.AddressID
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
			return tx.Model(&client).Updates(updates).Error
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.FromDB(err, "client")
	}

	return s.GetClient(ctx, id)
}

func (s *ClientService) ChangePassword(ctx context.Context, id uint, req *ChangePasswordRequest) error {
	if err := ValidateRequest(req); err != nil {
		return err
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var client models.Client
	if err := s.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return apperrors.FromDB(err, "client")
	}

	if err := client.CheckPassword(req.CurrentPassword); err != nil {
		return apperrors.Validation("", "current password is incorrect", nil)
	}
	if err := client.SetPassword(req.NewPassword); err != nil {
		return apperrors.Execution("failed to hash password", err)
	}

	if err := s.db.WithContext(ctx).Model(&client).
		Update("password_hash", client.PasswordHash).Error; err != nil {
		return apperrors.FromDB(err, "client")
	}
	return nil
}

// DeleteClient removes the account together with its favorites, alert
// filters, notifications and address.
func (s *ClientService) DeleteClient(ctx context.Context, id uint) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var client models.Client
	if err := s.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return apperrors.FromDB(err, "client")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", id).Delete(&models.AlertFilter{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Client{}, id).Error; err != nil {
			return err
		}
		if client.AddressID != nil {
			return tx.Delete(&models.Address{}, *client.AddressID).Error
		}
		return nil
	})
	if err != nil {
		return apperrors.FromDB(err, "client")
	}
	return nil
}
