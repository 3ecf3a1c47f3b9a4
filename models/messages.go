package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessagePreviewLen bounds the content excerpt shown in inbox rows.
const MessagePreviewLen = 100

// Message is one entry in a conversation's append-only log. IsRead only
// ever moves unread -> read, flipped in bulk when the counterpart opens
// the thread.
type Message struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ConversationID uuid.UUID `gorm:"type:uuid;not null;index" json:"conversation_id"`
	SenderID       uuid.UUID `gorm:"type:uuid;not null" json:"sender_id"`
	Sender         User      `gorm:"foreignKey:SenderID" json:"-"`
	Content        string    `gorm:"size:2000;not null" json:"content"`
	IsRead         bool      `gorm:"default:false" json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000" conform:"trim"`
}

type MessageResponse struct {
	ID        uuid.UUID  `json:"id"`
	Sender    PublicUser `json:"sender"`
	Content   string     `json:"content"`
	IsRead    bool       `json:"is_read"`
	IsMine    bool       `json:"is_mine"`
	CreatedAt time.Time  `json:"created_at"`
}

// MessagePreview is the truncated excerpt used by conversation lists.
type MessagePreview struct {
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	IsMine    bool      `json:"is_mine"`
}

// Preview truncates content for list views. The bound counts runes, not
// bytes, so accented content is never cut mid-character.
func (m *Message) Preview(viewerID uuid.UUID) *MessagePreview {
	content := m.Content
	if runes := []rune(content); len(runes) > MessagePreviewLen {
		content = string(runes[:MessagePreviewLen])
	}
	return &MessagePreview{
		Content:   content,
		CreatedAt: m.CreatedAt,
		IsMine:    m.SenderID == viewerID,
	}
}

// Response builds the full projection for detail views.
func (m *Message) Response(viewerID uuid.UUID) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Sender:    m.Sender.Public(),
		Content:   m.Content,
		IsRead:    m.IsRead,
		IsMine:    m.SenderID == viewerID,
		CreatedAt: m.CreatedAt,
	}
}
