// internal/models/favorite.go
package models

// Favorite is a pure join between a client and a car; the pair is unique.
type Favorite struct {
	BaseModel
	ClientID uint `json:"client_id" gorm:"not null;uniqueIndex:idx_favorites_client_car"`
	CarID    uint `json:"car_id" gorm:"not null;uniqueIndex:idx_favorites_client_car;index"`

	Car Car `json:"car,omitempty" gorm:"foreignKey:CarID"`
}
