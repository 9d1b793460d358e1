// internal/models/car_image.go
package models

// CarImage is one stored photo attached to a car listing. ObjectKey is
// the key in the image store; Position preserves the upload order.
type CarImage struct {
	BaseModel
	Name        string `json:"name" gorm:"size:255;not null"`
	ObjectKey   string `json:"object_key" gorm:"size:512;not null"`
	ContentType string `json:"content_type" gorm:"size:100"`
	Size        int64  `json:"size"`
	Position    int    `json:"position" gorm:"not null;default:0;index"`
	CarID       uint   `json:"car_id" gorm:"not null;index"`
}

func (CarImage) TableName() string {
	return "car_images"
}
