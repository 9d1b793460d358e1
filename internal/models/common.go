// internal/models/common.go
package models

import (
	"time"
)

// Base model with common fields. Rows are hard-deleted; dependent rows
// (car images, favorites) are cleaned up explicitly by the owning service.
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Enums
type CarCondition string

const (
	CarConditionNew     CarCondition = "new"
	CarConditionUsed    CarCondition = "used"
	CarConditionSemiNew CarCondition = "semi_new"
)

func (c CarCondition) Valid() bool {
	switch c {
	case CarConditionNew, CarConditionUsed, CarConditionSemiNew:
		return true
	}
	return false
}

type AccountType string

const (
	AccountTypeClient     AccountType = "client"
	AccountTypeDealership AccountType = "dealership"
)

type NotificationType string

const (
	NotificationTypeAlertMatch NotificationType = "alert_match"
)
