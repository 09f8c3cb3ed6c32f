package models

import "time"

const (
	RoleAdmin    = "admin"
	RoleGroomer  = "groomer"
	RoleCustomer = "customer"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'customer'" json:"role"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasStaffAccess reports whether the role may use the admin surface.
func HasStaffAccess(role string) bool {
	return role == RoleAdmin || role == RoleGroomer
}
