package server

import (
	"fmt"
	"net/http"
	"os"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 10,
	})

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apirouter := router.Group("/api/v1")
	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())

	authorized.POST("/favorites/toggle", s.handleToggleFavorite())
	authorized.GET("/favorites", s.handleListFavorites())
	authorized.GET("/favorites/count", s.handleFavoriteCount())
	authorized.DELETE("/favorites/:id", s.handleRemoveFavorite())

	authorized.GET("/conversations", s.handleListConversations())
	authorized.POST("/conversations/start", s.handleStartConversation())
	authorized.GET("/conversations/unread-count", s.handleUnreadCount())
	authorized.GET("/conversations/:id", s.handleGetConversation())
	authorized.POST("/conversations/:id/send", s.handleSendMessage())

	authorized.POST("/listings/:slug/contact", limitRateForContact(store), s.handleContactListing())
	authorized.GET("/contacts", s.handleListContacts())
	authorized.POST("/contacts/:id/mark-read", s.handleMarkContactRead())
}
