// internal/models/car.go
package models

import (
	"time"

	"github.com/lib/pq"
)

type Car struct {
	BaseModel
	Name           string         `json:"name" gorm:"size:255;not null"`
	Year           int            `json:"year" gorm:"not null;index"`
	Condition      CarCondition   `json:"condition" gorm:"type:varchar(20);not null;index"`
	Price          float64        `json:"price" gorm:"type:decimal(12,2);not null;index"`
	IpvaPaid       bool           `json:"ipva_paid" gorm:"not null;default:false"`
	IpvaDate       *time.Time     `json:"ipva_date"`
	PurchaseDate   *time.Time     `json:"purchase_date"`
	Details        string         `json:"details" gorm:"type:text"`
	Armored        bool           `json:"armored" gorm:"not null;default:false"`
	Mileage        int64          `json:"mileage" gorm:"not null;default:0"`
	Features       pq.StringArray `json:"features,omitempty" gorm:"type:text[]"`
	ColorID        uint           `json:"color_id" gorm:"not null"`
	WheelSizeID    uint           `json:"wheel_size_id" gorm:"not null"`
	CategoryID     uint           `json:"category_id" gorm:"not null;index"`
	BrandID        uint           `json:"brand_id" gorm:"not null;index"`
	CarModelID     uint           `json:"car_model_id" gorm:"not null"`
	FuelTypeID     uint           `json:"fuel_type_id" gorm:"not null"`
	TransmissionID uint           `json:"transmission_id" gorm:"not null"`
	DealershipID   uint           `json:"dealership_id" gorm:"not null;index"`

	// Relationships
	Color        Color        `json:"color,omitempty" gorm:"foreignKey:ColorID"`
	WheelSize    WheelSize    `json:"wheel_size,omitempty" gorm:"foreignKey:WheelSizeID"`
	Category     Category     `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Brand        Brand        `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
	CarModel     CarModel     `json:"car_model,omitempty" gorm:"foreignKey:CarModelID"`
	FuelType     FuelType     `json:"fuel_type,omitempty" gorm:"foreignKey:FuelTypeID"`
	Transmission Transmission `json:"transmission,omitempty" gorm:"foreignKey:TransmissionID"`
	Dealership   Dealership   `json:"dealership,omitempty" gorm:"foreignKey:DealershipID"`
	Images       []CarImage   `json:"images,omitempty" gorm:"foreignKey:CarID"`
}
