package services

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/terangamart/terangamart/config"
	"github.com/terangamart/terangamart/db"
	errs "github.com/terangamart/terangamart/errors"
	"github.com/terangamart/terangamart/models"
	"gorm.io/gorm"
)

// ConversationService is the negotiation-thread surface: start a thread
// about a listing, browse the inbox, read (which marks the counterpart's
// messages read), reply, and derive the total unread count.
type ConversationService interface {
	Start(caller *models.User, listingID uuid.UUID, content string) (*models.StartConversationResponse, error)
	List(caller *models.User) ([]models.ConversationListItem, error)
	Retrieve(caller *models.User, conversationID uuid.UUID) (*models.ConversationDetail, error)
	Send(caller *models.User, conversationID uuid.UUID, content string) (*models.MessageResponse, error)
	UnreadCount(userID uuid.UUID) (int64, error)
}

type conversationService struct {
	Config           *config.Config
	conversationRepo db.ConversationRepository
	messageRepo      db.MessageRepository
	listingRepo      db.ListingRepository
	media            MediaService
}

func NewConversationService(conversationRepo db.ConversationRepository, messageRepo db.MessageRepository, listingRepo db.ListingRepository, media MediaService, conf *config.Config) ConversationService {
	return &conversationService{
		Config:           conf,
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		listingRepo:      listingRepo,
		media:            media,
	}
}

func (s *conversationService) Start(caller *models.User, listingID uuid.UUID, content string) (*models.StartConversationResponse, error) {
	listing, err := s.listingRepo.FindByID(listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.New("listing not found", http.StatusNotFound)
		}
		return nil, err
	}
	if listing.UserID == caller.ID {
		return nil, errs.New("you cannot message yourself", http.StatusBadRequest)
	}

	conversation, message, created, err := s.conversationRepo.Start(listing, caller.ID, content)
	if err != nil {
		return nil, err
	}

	message.Sender = *caller
	return &models.StartConversationResponse{
		ConversationID: conversation.ID,
		Message:        message.Response(caller.ID),
		Created:        created,
	}, nil
}

func (s *conversationService) List(caller *models.User) ([]models.ConversationListItem, error) {
	conversations, err := s.conversationRepo.ListForUser(caller.ID)
	if err != nil {
		return nil, err
	}

	items := make([]models.ConversationListItem, 0, len(conversations))
	for _, conversation := range conversations {
		latest, err := s.messageRepo.Latest(conversation.ID)
		if err != nil {
			return nil, err
		}
		unread, err := s.messageRepo.UnreadInConversation(conversation.ID, caller.ID)
		if err != nil {
			return nil, err
		}

		item := models.ConversationListItem{
			ID:           conversation.ID,
			ListingTitle: conversation.Listing.Title,
			ListingSlug:  conversation.Listing.Slug,
			ListingImage: s.media.ResolveURL(conversation.Listing.PrimaryImageKey()),
			OtherUser:    conversation.Counterpart(caller.ID).Public(),
			UnreadCount:  unread,
			CreatedAt:    conversation.CreatedAt,
			UpdatedAt:    conversation.UpdatedAt,
		}
		if latest != nil {
			item.LastMessage = latest.Preview(caller.ID)
		}
		items = append(items, item)
	}
	return items, nil
}

// Retrieve returns the full thread oldest-first. Opening the thread is
// the read receipt: every unread counterpart message is flipped to read
// in the same transaction as the fetch.
func (s *conversationService) Retrieve(caller *models.User, conversationID uuid.UUID) (*models.ConversationDetail, error) {
	conversation, err := s.findForCaller(conversationID, caller.ID)
	if err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.FetchAndMarkRead(conversation.ID, caller.ID)
	if err != nil {
		return nil, err
	}

	history := make([]models.MessageResponse, 0, len(messages))
	for _, message := range messages {
		history = append(history, message.Response(caller.ID))
	}

	return &models.ConversationDetail{
		ID:           conversation.ID,
		ListingTitle: conversation.Listing.Title,
		ListingSlug:  conversation.Listing.Slug,
		ListingImage: s.media.ResolveURL(conversation.Listing.PrimaryImageKey()),
		ListingPrice: conversation.Listing.Price,
		OtherUser:    conversation.Counterpart(caller.ID).Public(),
		Messages:     history,
		CreatedAt:    conversation.CreatedAt,
	}, nil
}

func (s *conversationService) Send(caller *models.User, conversationID uuid.UUID, content string) (*models.MessageResponse, error) {
	conversation, err := s.findForCaller(conversationID, caller.ID)
	if err != nil {
		return nil, err
	}

	message, err := s.conversationRepo.AppendMessage(conversation.ID, caller.ID, content)
	if err != nil {
		return nil, err
	}

	message.Sender = *caller
	resp := message.Response(caller.ID)
	return &resp, nil
}

func (s *conversationService) UnreadCount(userID uuid.UUID) (int64, error) {
	return s.messageRepo.UnreadForUser(userID)
}

// findForCaller hides foreign threads behind the same not-found error
// as missing ones.
func (s *conversationService) findForCaller(conversationID, userID uuid.UUID) (*models.Conversation, error) {
	conversation, err := s.conversationRepo.FindForUser(conversationID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.New("conversation not found", http.StatusNotFound)
		}
		return nil, err
	}
	return conversation, nil
}
