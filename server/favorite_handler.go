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

func (s *Server) handleToggleFavorite() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "", http.StatusInternalServerError, nil, errors.New("unable to resolve user"))
			return
		}

		var req models.ToggleFavoriteRequest
		if err := decode(c, &req); err != nil {
			serviceError(c, err)
			return
		}

		favorited, err := s.FavoriteService.Toggle(user.ID, req.ListingID)
		if err != nil {
			serviceError(c, err)
			return
		}

		data := models.ToggleFavoriteResponse{IsFavorited: favorited}
		if favorited {
			response.JSON(c, "Added to favorites", http.StatusCreated, data, nil)
			return
		}
		response.JSON(c, "Removed from favorites", http.StatusOK, data, nil)
	}
}

func (s *Server) handleListFavorites() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "", http.StatusInternalServerError, nil, errors.New("unable to resolve user"))
			return
		}

		favorites, err := s.FavoriteService.List(user.ID)
		if err != nil {
			serviceError(c, err)
			return
		}
		response.JSON(c, "Favorites retrieved successfully", http.StatusOK, favorites, nil)
	}
}

func (s *Server) handleFavoriteCount() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "", http.StatusInternalServerError, nil, errors.New("unable to resolve user"))
			return
		}

		count, err := s.FavoriteService.Count(user.ID)
		if err != nil {
			serviceError(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, gin.H{"count": count}, nil)
	}
}

func (s *Server) handleRemoveFavorite() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "", http.StatusInternalServerError, nil, errors.New("unable to resolve user"))
			return
		}

		favoriteID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid favorite id", http.StatusBadRequest))
			return
		}

		if err := s.FavoriteService.Remove(user.ID, favoriteID); err != nil {
			serviceError(c, err)
			return
		}
		response.JSON(c, "Removed from favorites", http.StatusOK, nil, nil)
	}
}
