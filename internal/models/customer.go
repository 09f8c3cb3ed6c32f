package models

import "time"

// Customer is the business entity behind a booking. It may be linked to a
// User account or stand alone for guest bookings; removing the account
// nullifies the link rather than deleting the customer.
type Customer struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID *uint `gorm:"uniqueIndex" json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Email   string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
