package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BreedServiceMapping holds a breed-specific price override for a standalone
// service, and whether the service is offered for that breed at all.
type BreedServiceMapping struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BreedID uint  `gorm:"uniqueIndex:idx_breed_service;not null" json:"breed_id"`
	Breed   Breed `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ServiceID uint    `gorm:"uniqueIndex:idx_breed_service;not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	IsAvailable bool            `gorm:"default:true" json:"is_available"`
	BasePrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"base_price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
