package models

import "time"

// SiteConfig is the single-row business configuration.
type SiteConfig struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BusinessName string `gorm:"size:200;default:'Shampooches'" json:"business_name"`
	Address      string `gorm:"size:255" json:"address"`
	Phone        string `gorm:"size:20" json:"phone"`
	Email        string `gorm:"size:100" json:"email"`

	// Maximum bookings one customer may hold on a single day.
	MaxDogsPerDay int `gorm:"default:3" json:"max_dogs_per_day"`

	IsActive bool `gorm:"default:true;index" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const DefaultMaxDogsPerDay = 3
