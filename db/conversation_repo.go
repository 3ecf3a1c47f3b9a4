package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/terangamart/terangamart/models"
	"gorm.io/gorm"
)

// ConversationRepository owns the thread directory. Start is the
// get-or-create entry point: the whole read-create-append sequence runs
// in one transaction, and a duplicate-key violation on the
// (listing, initiator) index is resolved by re-fetching the row the
// concurrent caller created.
type ConversationRepository interface {
	Start(listing *models.Listing, initiatorID uuid.UUID, content string) (*models.Conversation, *models.Message, bool, error)
	ListForUser(userID uuid.UUID) ([]models.Conversation, error)
	FindForUser(id, userID uuid.UUID) (*models.Conversation, error)
	AppendMessage(conversationID, senderID uuid.UUID, content string) (*models.Message, error)
}

type conversationRepo struct {
	DB *gorm.DB
}

func NewConversationRepo(db *GormDB) ConversationRepository {
	return &conversationRepo{db.DB}
}

func (r *conversationRepo) Start(listing *models.Listing, initiatorID uuid.UUID, content string) (*models.Conversation, *models.Message, bool, error) {
	var (
		conversation models.Conversation
		message      models.Message
		created      bool
	)

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("listing_id = ? AND initiator_id = ?", listing.ID, initiatorID).
			First(&conversation).Error
		switch {
		case err == nil:
		case errors.Is(err, gorm.ErrRecordNotFound):
			conversation = models.Conversation{
				ListingID:   listing.ID,
				InitiatorID: initiatorID,
				RecipientID: listing.UserID,
			}
			// The insert runs under a savepoint: on Postgres a failed
			// create would otherwise abort the surrounding transaction
			// and poison the refetch below.
			createErr := tx.Transaction(func(tx *gorm.DB) error {
				return tx.Create(&conversation).Error
			})
			switch {
			case createErr == nil:
				created = true
			case errors.Is(createErr, gorm.ErrDuplicatedKey):
				// Lost the race; the other caller's row wins.
				if err := tx.Where("listing_id = ? AND initiator_id = ?", listing.ID, initiatorID).
					First(&conversation).Error; err != nil {
					return errors.Wrap(err, "refetch conversation after conflict")
				}
			default:
				return errors.Wrap(createErr, "create conversation")
			}
		default:
			return errors.Wrap(err, "find conversation")
		}

		message = models.Message{
			ConversationID: conversation.ID,
			SenderID:       initiatorID,
			Content:        content,
		}
		if err := tx.Create(&message).Error; err != nil {
			return errors.Wrap(err, "create message")
		}

		return touch(tx, conversation.ID)
	})
	if err != nil {
		return nil, nil, false, err
	}
	return &conversation, &message, created, nil
}

func (r *conversationRepo) ListForUser(userID uuid.UUID) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := r.DB.Preload("Listing").Preload("Listing.Images").
		Preload("Initiator").Preload("Recipient").
		Where("initiator_id = ? OR recipient_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, errors.Wrap(err, "list conversations")
	}
	return conversations, nil
}

// FindForUser loads a conversation only if userID participates in it.
// A miss and a foreign thread are both gorm.ErrRecordNotFound so the
// caller cannot learn whether the id exists.
func (r *conversationRepo) FindForUser(id, userID uuid.UUID) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.DB.Preload("Listing").Preload("Listing.Images").
		Preload("Initiator").Preload("Recipient").
		Where("id = ? AND (initiator_id = ? OR recipient_id = ?)", id, userID, userID).
		First(&conversation).Error
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *conversationRepo) AppendMessage(conversationID, senderID uuid.UUID, content string) (*models.Message, error) {
	message := models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
	}
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return errors.Wrap(err, "create message")
		}
		return touch(tx, conversationID)
	})
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func touch(tx *gorm.DB, conversationID uuid.UUID) error {
	return tx.Model(&models.Conversation{}).
		Where("id = ?", conversationID).
		UpdateColumn("updated_at", time.Now()).Error
}
