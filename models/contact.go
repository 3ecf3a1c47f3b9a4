package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListingContact is a one-shot message from a buyer to a listing owner.
// Unlike conversations there is no thread: each contact stands alone
// and is read-marked explicitly by the owner.
type ListingContact struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ListingID uuid.UUID `gorm:"type:uuid;not null;index" json:"listing_id"`
	Listing   Listing   `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE" json:"-"`
	SenderID  uuid.UUID `gorm:"type:uuid;not null" json:"sender_id"`
	Sender    User      `gorm:"foreignKey:SenderID" json:"-"`
	Message   string    `gorm:"size:2000;not null" json:"message"`
	Phone     string    `gorm:"size:20" json:"phone,omitempty"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func (lc *ListingContact) BeforeCreate(tx *gorm.DB) error {
	if lc.ID == uuid.Nil {
		lc.ID = uuid.New()
	}
	return nil
}

type ContactRequest struct {
	Message string `json:"message" binding:"required,min=1,max=2000" conform:"trim"`
	Phone   string `json:"phone" binding:"omitempty,max=20" conform:"trim"`
}

type ContactResponse struct {
	ID           uuid.UUID `json:"id"`
	ListingTitle string    `json:"listing_title"`
	SenderName   string    `json:"sender_name"`
	Message      string    `json:"message"`
	Phone        string    `json:"phone,omitempty"`
	IsRead       bool      `json:"is_read"`
	CreatedAt    time.Time `json:"created_at"`
}
