package services

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/terangamart/terangamart/config"
	"github.com/terangamart/terangamart/db"
	errs "github.com/terangamart/terangamart/errors"
	"github.com/terangamart/terangamart/models"
	"gorm.io/gorm"
)

// ContactMailer notifies a listing owner about a new contact message.
type ContactMailer interface {
	SendContactAlert(to, listingTitle, senderName, message string) error
}

// ContactService handles one-shot contact messages to listing owners.
type ContactService interface {
	Contact(caller *models.User, listingSlug string, req *models.ContactRequest) (*models.ListingContact, error)
	ListForOwner(ownerID uuid.UUID) ([]models.ContactResponse, error)
	MarkRead(ownerID, contactID uuid.UUID) error
}

type contactService struct {
	Config      *config.Config
	contactRepo db.ContactRepository
	listingRepo db.ListingRepository
	mailer      ContactMailer
}

func NewContactService(contactRepo db.ContactRepository, listingRepo db.ListingRepository, mailer ContactMailer, conf *config.Config) ContactService {
	return &contactService{
		Config:      conf,
		contactRepo: contactRepo,
		listingRepo: listingRepo,
		mailer:      mailer,
	}
}

func (s *contactService) Contact(caller *models.User, listingSlug string, req *models.ContactRequest) (*models.ListingContact, error) {
	listing, err := s.listingRepo.FindBySlug(listingSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.New("listing not found", http.StatusNotFound)
		}
		return nil, err
	}
	if listing.UserID == caller.ID {
		return nil, errs.New("you cannot contact yourself", http.StatusBadRequest)
	}

	contact := &models.ListingContact{
		ListingID: listing.ID,
		SenderID:  caller.ID,
		Message:   req.Message,
		Phone:     req.Phone,
	}
	if err := s.contactRepo.Create(contact); err != nil {
		return nil, err
	}

	// Best-effort owner notification; a mail failure never fails the contact.
	if s.mailer != nil && listing.User.Email != "" {
		if err := s.mailer.SendContactAlert(listing.User.Email, listing.Title, caller.Fullname, req.Message); err != nil {
			log.Printf("contact alert to %s not sent: %v", listing.User.Email, err)
		}
	}
	return contact, nil
}

func (s *contactService) ListForOwner(ownerID uuid.UUID) ([]models.ContactResponse, error) {
	contacts, err := s.contactRepo.ListForOwner(ownerID)
	if err != nil {
		return nil, err
	}

	items := make([]models.ContactResponse, 0, len(contacts))
	for _, contact := range contacts {
		items = append(items, models.ContactResponse{
			ID:           contact.ID,
			ListingTitle: contact.Listing.Title,
			SenderName:   contact.Sender.Fullname,
			Message:      contact.Message,
			Phone:        contact.Phone,
			IsRead:       contact.IsRead,
			CreatedAt:    contact.CreatedAt,
		})
	}
	return items, nil
}

func (s *contactService) MarkRead(ownerID, contactID uuid.UUID) error {
	contact, err := s.contactRepo.FindByID(contactID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.New("contact message not found", http.StatusNotFound)
		}
		return err
	}
	if contact.Listing.UserID != ownerID {
		return errs.New("you do not own this listing", http.StatusForbidden)
	}
	return s.contactRepo.MarkRead(contactID)
}
