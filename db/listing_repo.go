package db

import (
	"github.com/google/uuid"
	"github.com/terangamart/terangamart/models"
	"gorm.io/gorm"
)

// ListingRepository is the narrow catalog lookup surface this service
// consumes; listing CRUD and search live elsewhere.
type ListingRepository interface {
	FindByID(id uuid.UUID) (*models.Listing, error)
	FindActiveByID(id uuid.UUID) (*models.Listing, error)
	FindBySlug(slug string) (*models.Listing, error)
}

type listingRepo struct {
	DB *gorm.DB
}

func NewListingRepo(db *GormDB) ListingRepository {
	return &listingRepo{db.DB}
}

func (r *listingRepo) FindByID(id uuid.UUID) (*models.Listing, error) {
	var listing models.Listing
	if err := r.DB.Preload("Images").Where("id = ?", id).First(&listing).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepo) FindActiveByID(id uuid.UUID) (*models.Listing, error) {
	var listing models.Listing
	if err := r.DB.Preload("Images").Where("id = ? AND is_active = ?", id, true).First(&listing).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepo) FindBySlug(slug string) (*models.Listing, error) {
	var listing models.Listing
	if err := r.DB.Preload("Images").Preload("User").Where("slug = ?", slug).First(&listing).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}
