package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Dog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OwnerID uint `gorm:"index;not null" json:"owner_id"`
	Owner   User `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	BreedID *uint  `gorm:"index" json:"breed_id"`
	Breed   *Breed `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"breed,omitempty"`

	Name   string           `gorm:"size:100;not null" json:"name"`
	Weight *decimal.Decimal `gorm:"type:decimal(6,2)" json:"weight"`
	Age    string           `gorm:"size:100" json:"age"`
	Notes  string           `gorm:"size:1000" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
