package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ListingStatusDraft   = "draft"
	ListingStatusPending = "pending"
	ListingStatusActive  = "active"
	ListingStatusSold    = "sold"
	ListingStatusExpired = "expired"
)

// Listing is the catalog row this service reads; listing CRUD, search
// and moderation belong to the catalog side of the platform.
type Listing struct {
	Model
	Title        string         `json:"title" gorm:"not null"`
	Slug         string         `json:"slug" gorm:"uniqueIndex;not null"`
	Description  string         `json:"description"`
	Price        float64        `json:"price"`
	IsNegotiable bool           `json:"is_negotiable" gorm:"default:true"`
	UserID       uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	User         User           `json:"-" gorm:"foreignKey:UserID"`
	Region       string         `json:"region"`
	Department   string         `json:"department"`
	Neighborhood string         `json:"neighborhood"`
	Status       string         `json:"status" gorm:"default:pending;index:idx_listings_status_active"`
	IsActive     bool           `json:"is_active" gorm:"default:true;index:idx_listings_status_active"`
	ViewsCount   uint           `json:"views_count" gorm:"default:0"`
	Images       []ListingImage `json:"images" gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE"`
}

// ListingImage stores the blob key of an uploaded photo; the blob store
// resolves keys to URLs at render time.
type ListingImage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ListingID uuid.UUID `gorm:"type:uuid;not null;index" json:"listing_id"`
	ImageKey  string    `gorm:"not null" json:"image_key"`
	IsPrimary bool      `gorm:"default:false" json:"is_primary"`
	Order     int       `gorm:"default:0" json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

func (i *ListingImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// PrimaryImageKey returns the blob key of the primary image, falling
// back to the first image.
func (l *Listing) PrimaryImageKey() string {
	for _, img := range l.Images {
		if img.IsPrimary {
			return img.ImageKey
		}
	}
	if len(l.Images) > 0 {
		return l.Images[0].ImageKey
	}
	return ""
}

// ListingPreview is the minimal projection embedded in favorites and
// conversation views.
type ListingPreview struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Slug           string    `json:"slug"`
	Price          float64   `json:"price"`
	IsNegotiable   bool      `json:"is_negotiable"`
	Region         string    `json:"region"`
	Department     string    `json:"department"`
	PrimaryImage   string    `json:"primary_image,omitempty"`
	ViewsCount     uint      `json:"views_count"`
	FavoritesCount int64     `json:"favorites_count"`
	IsFavorited    bool      `json:"is_favorited"`
	CreatedAt      time.Time `json:"created_at"`
}
