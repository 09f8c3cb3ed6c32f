package models

import "time"

// MessageThread is a conversation between one customer account and staff.
type MessageThread struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint `gorm:"index;not null" json:"customer_id"`
	Customer   User `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Subject  string `gorm:"size:200;not null" json:"subject"`
	IsActive bool   `gorm:"default:true;index" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Message struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ThreadID uint          `gorm:"index;not null" json:"thread_id"`
	Thread   MessageThread `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	SenderID uint `gorm:"index;not null" json:"sender_id"`
	Sender   User `gorm:"foreignKey:SenderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Content string `gorm:"size:2000;not null" json:"content"`
	IsRead  bool   `gorm:"default:false;index" json:"is_read"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
