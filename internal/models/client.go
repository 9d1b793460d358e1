// internal/models/client.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

type Client struct {
	BaseModel
	Name         string `json:"name" gorm:"size:255;not null"`
	CPF          string `json:"cpf" gorm:"size:11;uniqueIndex;not null"`
	Email        string `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"size:255;not null"`
	Phone        string `json:"phone" gorm:"size:20"`
	AddressID    *uint  `json:"address_id"`

	// Relationships
	Address      *Address      `json:"address,omitempty" gorm:"foreignKey:AddressID"`
	Favorites    []Favorite    `json:"favorites,omitempty" gorm:"foreignKey:ClientID"`
	AlertFilters []AlertFilter `json:"alert_filters,omitempty" gorm:"foreignKey:ClientID"`
}

func (c *Client) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	c.PasswordHash = string(hashedPassword)
	return nil
}

func (c *Client) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password))
}
