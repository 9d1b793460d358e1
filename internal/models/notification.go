// internal/models/notification.go
package models

import (
	"time"
)

// Notification is an in-app message for a client, created when a new
// listing matches one of their alert filters.
type Notification struct {
	BaseModel
	ClientID      uint             `json:"client_id" gorm:"not null;index"`
	Type          NotificationType `json:"type" gorm:"type:varchar(30);not null"`
	Title         string           `json:"title" gorm:"size:255;not null"`
	Message       string           `json:"message" gorm:"type:text"`
	CarID         *uint            `json:"car_id"`
	AlertFilterID *uint            `json:"alert_filter_id"`
	ReadAt        *time.Time       `json:"read_at"`
}
