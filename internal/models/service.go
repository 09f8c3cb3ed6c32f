package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PricingTypeBaseRequired = "base_required"
	PricingTypeStandalone   = "standalone"
)

type Service struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"size:2000" json:"description"`

	// For standalone services the full price; for base_required services the
	// add-on amount applied on top of the breed base price.
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`

	PricingType string `gorm:"size:20;default:'base_required'" json:"pricing_type"`

	DurationMinutes int `gorm:"not null" json:"duration_minutes"`

	ExemptFromSurcharge bool `gorm:"default:false" json:"exempt_from_surcharge"`
	IsActive            bool `gorm:"default:true;index" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
