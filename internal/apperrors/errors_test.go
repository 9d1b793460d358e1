// internal/apperrors/errors_test.go
package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFromDBMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind Kind
		wantCode string
	}{
		{
			name:     "record not found",
			err:      gorm.ErrRecordNotFound,
			wantKind: KindNotFound,
			wantCode: "NOT_FOUND",
		},
		{
			name:     "deadline exceeded",
			err:      context.DeadlineExceeded,
			wantKind: KindTimedOut,
			wantCode: "TIMED_OUT",
		},
		{
			name:     "postgres unique violation",
			err:      errors.New(`ERROR: duplicate key value violates unique constraint "idx_clients_cpf" (SQLSTATE 23505)`),
			wantKind: KindConflict,
			wantCode: CodeAlreadyExists,
		},
		{
			name:     "sqlite unique violation",
			err:      errors.New("UNIQUE constraint failed: clients.cpf"),
			wantKind: KindConflict,
			wantCode: CodeAlreadyExists,
		},
		{
			name:     "postgres foreign key violation",
			err:      errors.New(`ERROR: update or delete on table "brands" violates foreign key constraint (SQLSTATE 23503)`),
			wantKind: KindConflict,
			wantCode: CodeReferenceInUse,
		},
		{
			name:     "sqlite foreign key violation",
			err:      errors.New("FOREIGN KEY constraint failed"),
			wantKind: KindConflict,
			wantCode: CodeReferenceInUse,
		},
		{
			name:     "anything else",
			err:      errors.New("connection refused"),
			wantKind: KindExecution,
			wantCode: "EXECUTION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := FromDB(tt.err, "client")

			var appErr *Error
			require.ErrorAs(t, mapped, &appErr)
			assert.Equal(t, tt.wantKind, appErr.Kind)
			assert.Equal(t, tt.wantCode, appErr.Code)
		})
	}
}

func TestFromDBNilPassesThrough(t *testing.T) {
	assert.NoError(t, FromDB(nil, "client"))
}

func TestFromDBKeepsTaggedErrors(t *testing.T) {
	original := NotFound("car")
	mapped := FromDB(fmt.Errorf("loading listing: %w", original), "client")

	var appErr *Error
	require.ErrorAs(t, mapped, &appErr)
	assert.Equal(t, KindNotFound, appErr.Kind)
	assert.Equal(t, "car not found", appErr.Message)
}

func TestValidationDefaultsCode(t *testing.T) {
	err := Validation("", "name is required", nil)
	assert.Equal(t, CodeValidation, err.Code)
	assert.Equal(t, KindValidation, err.Kind)

	err = Validation(CodePriceRange, "price_min above price_max", nil)
	assert.Equal(t, CodePriceRange, err.Code)
}

func TestKindOfDefaultsToExecution(t *testing.T) {
	assert.Equal(t, KindExecution, KindOf(errors.New("plain error")))
	assert.Equal(t, KindConflict, KindOf(fmt.Errorf("wrap: %w", Conflict("", "busy"))))
}

func TestErrorStringIncludesWrappedCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Execution("failed to write image", cause)

	assert.Contains(t, err.Error(), "EXECUTION_ERROR")
	assert.Contains(t, err.Error(), "disk full")
	assert.ErrorIs(t, err, cause)
}
