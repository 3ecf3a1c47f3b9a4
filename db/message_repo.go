package db

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/terangamart/terangamart/models"
	"gorm.io/gorm"
)

// MessageRepository is the ledger behind conversations: append-only
// rows, both orderings, and set-based read-marking. The bulk update is
// one conditional UPDATE so overlapping reads of the same thread cannot
// interleave a partial state.
type MessageRepository interface {
	ListChronological(conversationID uuid.UUID) ([]models.Message, error)
	Latest(conversationID uuid.UUID) (*models.Message, error)
	FetchAndMarkRead(conversationID, readerID uuid.UUID) ([]models.Message, error)
	UnreadInConversation(conversationID, userID uuid.UUID) (int64, error)
	UnreadForUser(userID uuid.UUID) (int64, error)
}

type messageRepo struct {
	DB *gorm.DB
}

func NewMessageRepo(db *GormDB) MessageRepository {
	return &messageRepo{db.DB}
}

func (r *messageRepo) ListChronological(conversationID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := r.DB.Preload("Sender").
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, errors.Wrap(err, "list messages")
	}
	return messages, nil
}

func (r *messageRepo) Latest(conversationID uuid.UUID) (*models.Message, error) {
	var message models.Message
	err := r.DB.Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

// FetchAndMarkRead flips every unread message not authored by readerID
// to read and returns the full history oldest-first. Both run in the
// same transaction so a client never observes a half-marked thread; the
// update is idempotent under repetition.
func (r *messageRepo) FetchAndMarkRead(conversationID, readerID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Message{}).
			Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, readerID, false).
			Update("is_read", true).Error
		if err != nil {
			return errors.Wrap(err, "mark messages read")
		}
		return tx.Preload("Sender").
			Where("conversation_id = ?", conversationID).
			Order("created_at ASC").
			Find(&messages).Error
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepo) UnreadInConversation(conversationID, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, userID, false).
		Count(&count).Error
	return count, err
}

// UnreadForUser derives the total unread count across every thread the
// user participates in. Computed fresh each call; there is no cached
// counter to drift.
func (r *messageRepo) UnreadForUser(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB.Model(&models.Message{}).
		Joins("JOIN conversations ON conversations.id = messages.conversation_id").
		Where("(conversations.initiator_id = ? OR conversations.recipient_id = ?)", userID, userID).
		Where("messages.sender_id <> ? AND messages.is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}
