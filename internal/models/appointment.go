package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Public booking reference handed to the customer.
	Reference string `gorm:"size:36;uniqueIndex;not null" json:"reference"`

	CustomerID uint     `gorm:"index;not null" json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"customer"`

	// Account that made the booking, null for guests.
	UserID *uint `gorm:"index" json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	// Deleting a service that has appointments is blocked.
	ServiceID uint    `gorm:"index;not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service"`

	// Assigned groomer; the appointment survives groomer removal.
	GroomerID *uint    `gorm:"index" json:"groomer_id"`
	Groomer   *Groomer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"groomer,omitempty"`

	// Customer's requested groomer for "any groomer" bookings.
	PreferredGroomerID *uint    `json:"preferred_groomer_id"`
	PreferredGroomer   *Groomer `gorm:"foreignKey:PreferredGroomerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	// Dog details snapshotted at booking time.
	DogName    string           `gorm:"size:100;not null" json:"dog_name"`
	DogBreedID *uint            `json:"dog_breed_id"`
	DogBreed   *Breed           `gorm:"foreignKey:DogBreedID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	DogWeight  *decimal.Decimal `gorm:"type:decimal(6,2)" json:"dog_weight"`
	DogAge     string           `gorm:"size:100" json:"dog_age"`

	Date      time.Time `gorm:"type:date;index;not null" json:"date"`
	StartTime string    `gorm:"size:5;index;not null" json:"start_time"`
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`

	Status string `gorm:"size:20;default:'pending';index" json:"status"`
	Notes  string `gorm:"size:1000" json:"notes"`

	// Price frozen at booking time; later price-list edits never change it.
	PriceAtBooking decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_at_booking"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
