package models

import "time"

const (
	DeletionRequestPending  = "pending"
	DeletionRequestApproved = "approved"
	DeletionRequestRejected = "rejected"
)

// DogDeletionRequest is a moderation-queue entry: customers request removal
// of a dog profile, admins approve (deleting the dog) or reject it.
type DogDeletionRequest struct {
	ID uint `gorm:"primaryKey" json:"id"`

	DogID uint `gorm:"index;not null" json:"dog_id"`
	Dog   Dog  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"dog"`

	RequestedByID uint `gorm:"index;not null" json:"requested_by_id"`
	RequestedBy   User `gorm:"foreignKey:RequestedByID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Reason     string `gorm:"size:1000;not null" json:"reason"`
	Status     string `gorm:"size:20;default:'pending';index" json:"status"`
	AdminNotes string `gorm:"size:1000" json:"admin_notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
