// internal/models/reference.go
package models

// Reference tables the car schema points at. Each one is a flat
// id/name lookup except CarModel, which belongs to a brand.

type Brand struct {
	BaseModel
	Name string `json:"name" gorm:"size:100;uniqueIndex;not null"`

	Models []CarModel `json:"models,omitempty" gorm:"foreignKey:BrandID"`
}

type CarModel struct {
	BaseModel
	Name    string `json:"name" gorm:"size:100;not null;uniqueIndex:idx_car_models_brand_name"`
	BrandID uint   `json:"brand_id" gorm:"not null;index;uniqueIndex:idx_car_models_brand_name"`

	Brand Brand `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
}

type Category struct {
	BaseModel
	Name string `json:"name" gorm:"size:100;uniqueIndex;not null"`
}

type Color struct {
	BaseModel
	Name string `json:"name" gorm:"size:100;uniqueIndex;not null"`
}

type WheelSize struct {
	BaseModel
	Name string `json:"name" gorm:"size:100;uniqueIndex;not null"`
}

type FuelType struct {
	BaseModel
	Name string `json:"name" gorm:"size:100;uniqueIndex;not null"`
}

type Transmission struct {
	BaseModel
	Name string `json:"name" gorm:"size:100;uniqueIndex;not null"`
}
