// internal/services/validation.go
package services

import (
	"github.com/cappeLindo/webcars-api/internal/apperrors"
	"github.com/cappeLindo/webcars-api/internal/utils"
)

// ValidateRequest runs struct-tag validation and tags failures as
// validation errors carrying the per-field detail list.
func ValidateRequest(req interface{}) error {
	if err := utils.ValidateStruct(req); err != nil {
		return apperrors.Validation("", "invalid input", utils.GetValidationErrors(err))
	}
	return nil
}
