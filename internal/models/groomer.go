package models

import "time"

type Groomer struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`

	Bio         string `gorm:"size:2000" json:"bio"`
	Specialties string `gorm:"size:200" json:"specialties"`

	// Object-storage key of the groomer's photo, empty when none uploaded.
	ImageKey string `gorm:"size:255" json:"image_key"`

	IsActive     bool `gorm:"default:true;index" json:"is_active"`
	DisplayOrder int  `gorm:"default:0" json:"display_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
