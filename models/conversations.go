package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is a thread about one listing between the user who
// opened it and the listing's owner. The composite unique index keeps a
// single thread per (listing, initiator); repeated start calls must
// land on the existing row. UpdatedAt doubles as the last-activity
// stamp and is bumped on every message.
type Conversation struct {
	Model
	ListingID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_conversations_listing_initiator" json:"listing_id"`
	InitiatorID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_conversations_listing_initiator" json:"initiator_id"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipient_id"`
	Listing     Listing   `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE" json:"-"`
	Initiator   User      `gorm:"foreignKey:InitiatorID" json:"-"`
	Recipient   User      `gorm:"foreignKey:RecipientID" json:"-"`
	Messages    []Message `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE" json:"-"`
}

// Counterpart returns the other participant relative to userID.
func (c *Conversation) Counterpart(userID uuid.UUID) *User {
	if c.InitiatorID == userID {
		return &c.Recipient
	}
	return &c.Initiator
}

// IsParticipant reports whether userID is either side of the thread.
func (c *Conversation) IsParticipant(userID uuid.UUID) bool {
	return c.InitiatorID == userID || c.RecipientID == userID
}

type StartConversationRequest struct {
	ListingID uuid.UUID `json:"listing_id" binding:"required"`
	Message   string    `json:"message" binding:"required,min=1,max=2000" conform:"trim"`
}

type StartConversationResponse struct {
	ConversationID uuid.UUID       `json:"conversation_id"`
	Message        MessageResponse `json:"message"`
	Created        bool            `json:"created"`
}

// ConversationListItem is the recency-ordered inbox row.
type ConversationListItem struct {
	ID           uuid.UUID       `json:"id"`
	ListingTitle string          `json:"listing_title"`
	ListingSlug  string          `json:"listing_slug"`
	ListingImage string          `json:"listing_image,omitempty"`
	OtherUser    PublicUser      `json:"other_user"`
	LastMessage  *MessagePreview `json:"last_message"`
	UnreadCount  int64           `json:"unread_count"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ConversationDetail carries the full history, oldest first.
type ConversationDetail struct {
	ID           uuid.UUID         `json:"id"`
	ListingTitle string            `json:"listing_title"`
	ListingSlug  string            `json:"listing_slug"`
	ListingImage string            `json:"listing_image,omitempty"`
	ListingPrice float64           `json:"listing_price"`
	OtherUser    PublicUser        `json:"other_user"`
	Messages     []MessageResponse `json:"messages"`
	CreatedAt    time.Time         `json:"created_at"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
