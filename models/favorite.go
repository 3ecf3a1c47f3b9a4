package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Favorite links a user to a listing. The composite unique index is the
// authority on the at-most-one-per-pair invariant; toggling relies on
// the database rejecting a duplicate insert, not on locking.
type Favorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_listing" json:"user_id"`
	ListingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_listing" json:"listing_id"`
	Listing   Listing   `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

type FavoriteResponse struct {
	ID        uuid.UUID      `json:"id"`
	Listing   ListingPreview `json:"listing"`
	CreatedAt time.Time      `json:"created_at"`
}

type ToggleFavoriteRequest struct {
	ListingID uuid.UUID `json:"listing_id" binding:"required"`
}

type ToggleFavoriteResponse struct {
	IsFavorited bool `json:"is_favorited"`
}
