// internal/models/address.go
package models

type Address struct {
	BaseModel
	CEP          string `json:"cep" gorm:"size:8;not null"`
	State        string `json:"state" gorm:"size:2;not null"`
	City         string `json:"city" gorm:"size:100;not null"`
	Neighborhood string `json:"neighborhood" gorm:"size:100"`
	Street       string `json:"street" gorm:"size:255"`
	Number       string `json:"number" gorm:"size:20"`
}
