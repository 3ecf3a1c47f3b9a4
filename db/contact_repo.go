package db

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/terangamart/terangamart/models"
	"gorm.io/gorm"
)

// ContactRepository stores one-shot contact messages, scoped to the
// owner of the referenced listing.
type ContactRepository interface {
	Create(contact *models.ListingContact) error
	ListForOwner(ownerID uuid.UUID) ([]models.ListingContact, error)
	FindByID(id uuid.UUID) (*models.ListingContact, error)
	MarkRead(id uuid.UUID) error
}

type contactRepo struct {
	DB *gorm.DB
}

func NewContactRepo(db *GormDB) ContactRepository {
	return &contactRepo{db.DB}
}

func (r *contactRepo) Create(contact *models.ListingContact) error {
	return r.DB.Create(contact).Error
}

func (r *contactRepo) ListForOwner(ownerID uuid.UUID) ([]models.ListingContact, error) {
	var contacts []models.ListingContact
	err := r.DB.Preload("Listing").Preload("Sender").
		Joins("JOIN listings ON listings.id = listing_contacts.listing_id").
		Where("listings.user_id = ?", ownerID).
		Order("listing_contacts.created_at DESC").
		Find(&contacts).Error
	if err != nil {
		return nil, errors.Wrap(err, "list contacts")
	}
	return contacts, nil
}

func (r *contactRepo) FindByID(id uuid.UUID) (*models.ListingContact, error) {
	var contact models.ListingContact
	if err := r.DB.Preload("Listing").Where("id = ?", id).First(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepo) MarkRead(id uuid.UUID) error {
	return r.DB.Model(&models.ListingContact{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}
