package main

import (
	"log"

	"github.com/terangamart/terangamart/config"
	"github.com/terangamart/terangamart/db"
	"github.com/terangamart/terangamart/mailingservices"
	"github.com/terangamart/terangamart/server"
	"github.com/terangamart/terangamart/services"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	mailgunClient := &mailingservices.Mailgun{}
	mailgunClient.Init(conf)

	gormDB := db.GetDB(conf)
	authRepo := db.NewAuthRepo(gormDB)
	listingRepo := db.NewListingRepo(gormDB)
	favoriteRepo := db.NewFavoriteRepo(gormDB)
	conversationRepo := db.NewConversationRepo(gormDB)
	messageRepo := db.NewMessageRepo(gormDB)
	contactRepo := db.NewContactRepo(gormDB)

	mediaService := services.NewMediaService(conf)
	favoriteService := services.NewFavoriteService(favoriteRepo, listingRepo, mediaService, conf)
	conversationService := services.NewConversationService(conversationRepo, messageRepo, listingRepo, mediaService, conf)
	contactService := services.NewContactService(contactRepo, listingRepo, mailgunClient, conf)

	s := &server.Server{
		Mail:                mailgunClient,
		Config:              conf,
		AuthRepository:      authRepo,
		FavoriteService:     favoriteService,
		ConversationService: conversationService,
		ContactService:      contactService,
		DB:                  db.GormDB{DB: gormDB.DB},
	}

	s.Start()
}
