package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	errs "github.com/terangamart/terangamart/errors"
	"github.com/terangamart/terangamart/models"
	"github.com/terangamart/terangamart/server/response"
)

func (s *Server) handleContactListing() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "", http.StatusInternalServerError, nil, errors.New("unable to resolve user"))
			return
		}

		slug := strings.TrimSpace(c.Param("slug"))
		if slug == "" {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("missing listing slug", http.StatusBadRequest))
			return
		}

		var req models.ContactRequest
		if err := decode(c, &req); err != nil {
			serviceError(c, err)
			return
		}
		if err := notBlank("message", req.Message); err != nil {
			serviceError(c, err)
			return
		}

		if _, err := s.ContactService.Contact(user, slug, &req); err != nil {
			serviceError(c, err)
			return
		}
		response.JSON(c, "Message sent successfully", http.StatusCreated, nil, nil)
	}
}

func (s *Server) handleListContacts() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "", http.StatusInternalServerError, nil, errors.New("unable to resolve user"))
			return
		}

		contacts, err := s.ContactService.ListForOwner(user.ID)
		if err != nil {
			serviceError(c, err)
			return
		}
		response.JSON(c, "Contact messages retrieved successfully", http.StatusOK, contacts, nil)
	}
}

func (s *Server) handleMarkContactRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "", http.StatusInternalServerError, nil, errors.New("unable to resolve user"))
			return
		}

		contactID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid contact id", http.StatusBadRequest))
			return
		}

		if err := s.ContactService.MarkRead(user.ID, contactID); err != nil {
			serviceError(c, err)
			return
		}
		response.JSON(c, "Marked as read", http.StatusOK, nil, nil)
	}
}
