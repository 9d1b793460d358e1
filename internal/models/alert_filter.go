// internal/models/alert_filter.go
package models

import (
	"time"
)

// AlertFilter is a saved search a client wants to be alerted about.
// Every dimension is a pointer: nil means the dimension is unconstrained.
type AlertFilter struct {
	BaseModel
	Name     string `json:"name" gorm:"size:100;not null;uniqueIndex:idx_alert_filters_client_name"`
	ClientID uint   `json:"client_id" gorm:"not null;uniqueIndex:idx_alert_filters_client_name;index"`

	Year           *int          `json:"year"`
	Condition      *CarCondition `json:"condition" gorm:"type:varchar(20)"`
	IpvaPaid       *bool         `json:"ipva_paid"`
	Armored        *bool         `json:"armored"`
	IpvaDate       *time.Time    `json:"ipva_date"`
	PurchaseDate   *time.Time    `json:"purchase_date"`
	PriceMin       *float64      `json:"price_min" gorm:"type:decimal(12,2)"`
	PriceMax       *float64      `json:"price_max" gorm:"type:decimal(12,2)"`
	BrandID        *uint         `json:"brand_id" gorm:"index"`
	CategoryID     *uint         `json:"category_id" gorm:"index"`
	TransmissionID *uint         `json:"transmission_id"`
	WheelSizeID    *uint         `json:"wheel_size_id"`
	CarModelID     *uint         `json:"car_model_id"`
	FuelTypeID     *uint         `json:"fuel_type_id"`
	ColorID        *uint         `json:"color_id"`

	Client Client `json:"client,omitempty" gorm:"foreignKey:ClientID"`
}

// HasCriteria reports whether at least one dimension is constrained.
// Filters without criteria would match every car, so creation rejects them.
func (f *AlertFilter) HasCriteria() bool {
	return f.Year != nil ||
		f.Condition != nil ||
		f.IpvaPaid != nil ||
		f.Armored != nil ||
		f.IpvaDate != nil ||
		f.PurchaseDate != nil ||
		f.PriceMin != nil ||
		f.PriceMax != nil ||
		f.BrandID != nil ||
		f.CategoryID != nil ||
		f.TransmissionID != nil ||
		f.WheelSizeID != nil ||
		f.CarModelID != nil ||
		f.FuelTypeID != nil ||
		f.ColorID != nil
}
