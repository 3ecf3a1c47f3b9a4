package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	errs "github.com/terangamart/terangamart/errors"
	"github.com/terangamart/terangamart/models"
	"github.com/terangamart/terangamart/server/response"
)

func (s *Server) handleStartConversation() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "", http.StatusInternalServerError, nil, errors.New("unable to resolve user"))
			return
		}

		var req models.StartConversationRequest
		if err := decode(c, &req); err != nil {
			serviceError(c, err)
			return
		}
		if err := notBlank("message", req.Message); err != nil {
			serviceError(c, err)
			return
		}

		result, err := s.ConversationService.Start(user, req.ListingID, req.Message)
		if err != nil {
			serviceError(c, err)
			return
		}
		response.JSON(c, "Message sent successfully", http.StatusCreated, result, nil)
	}
}

func (s *Server) handleListConversations() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "", http.StatusInternalServerError, nil, errors.New("unable to resolve user"))
			return
		}

		conversations, err := s.ConversationService.List(user)
		if err != nil {
			serviceError(c, err)
			return
		}
		response.JSON(c, "Conversations retrieved successfully", http.StatusOK, conversations, nil)
	}
}

func (s *Server) handleGetConversation() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "", http.StatusInternalServerError, nil, errors.New("unable to resolve user"))
			return
		}

		conversationID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid conversation id", http.StatusBadRequest))
			return
		}

		detail, err := s.ConversationService.Retrieve(user, conversationID)
		if err != nil {
			serviceError(c, err)
			return
		}
		response.JSON(c, "Conversation retrieved successfully", http.StatusOK, detail, nil)
	}
}

func (s *Server) handleSendMessage() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "", http.StatusInternalServerError, nil, errors.New("unable to resolve user"))
			return
		}

		conversationID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid conversation id", http.StatusBadRequest))
			return
		}

		var req models.SendMessageRequest
		if err := decode(c, &req); err != nil {
			serviceError(c, err)
			return
		}
		if err := notBlank("content", req.Content); err != nil {
			serviceError(c, err)
			return
		}

		message, err := s.ConversationService.Send(user, conversationID, req.Content)
		if err != nil {
			serviceError(c, err)
			return
		}
		response.JSON(c, "Message sent successfully", http.StatusCreated, message, nil)
	}
}

func (s *Server) handleUnreadCount() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "", http.StatusInternalServerError, nil, errors.New("unable to resolve user"))
			return
		}

		count, err := s.ConversationService.UnreadCount(user.ID)
		if err != nil {
			serviceError(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, models.UnreadCountResponse{Count: count}, nil)
	}
}
