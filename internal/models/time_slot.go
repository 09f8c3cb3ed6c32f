package models

import "time"

// TimeSlot is a bounded availability window for a groomer on a date.
// Times are zero-padded "HH:MM" strings so they compare lexicographically.
type TimeSlot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	GroomerID uint    `gorm:"uniqueIndex:idx_groomer_date_start;index;not null" json:"groomer_id"`
	Groomer   Groomer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Date      time.Time `gorm:"type:date;uniqueIndex:idx_groomer_date_start;index;not null" json:"date"`
	StartTime string    `gorm:"size:5;uniqueIndex:idx_groomer_date_start;not null" json:"start_time"`
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`

	IsActive bool `gorm:"default:true;index" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
