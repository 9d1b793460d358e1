// internal/models/dealership.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

type Dealership struct {
	BaseModel
	Name         string `json:"name" gorm:"size:255;not null"`
	CNPJ         string `json:"cnpj" gorm:"size:14;uniqueIndex;not null"`
	Email        string `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"size:255;not null"`
	Phone        string `json:"phone" gorm:"size:20"`
	AddressID    *uint  `json:"address_id"`

	// Relationships
	Address *Address `json:"address,omitempty" gorm:"foreignKey:AddressID"`
	Cars    []Car    `json:"cars,omitempty" gorm:"foreignKey:DealershipID"`
}

func (d *Dealership) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	d.PasswordHash = string(hashedPassword)
	return nil
}

func (d *Dealership) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(d.PasswordHash), []byte(password))
}
