package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID *uint `gorm:"index" json:"user_id"`

	Action   string `gorm:"size:50;index;not null" json:"action"`
	Entity   string `gorm:"size:50;not null" json:"entity"`
	EntityID *uint  `json:"entity_id"`
	Metadata string `gorm:"size:2000" json:"metadata"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
