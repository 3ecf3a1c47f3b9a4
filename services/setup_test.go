package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/terangamart/terangamart/config"
	"github.com/terangamart/terangamart/db"
	"github.com/terangamart/terangamart/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	gdb          *db.GormDB
	conf         *config.Config
	favorites    FavoriteService
	conversation ConversationService
	contacts     ContactService
	mailer       *fakeMailer
}

type fakeMailer struct {
	sent []sentAlert
	err  error
}

type sentAlert struct {
	To           string
	ListingTitle string
	SenderName   string
	Message      string
}

func (f *fakeMailer) SendContactAlert(to, listingTitle, senderName, message string) error {
	f.sent = append(f.sent, sentAlert{To: to, ListingTitle: listingTitle, SenderName: senderName, Message: message})
	return f.err
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	gdb := &db.GormDB{DB: gormDB}
	conf := &config.Config{}
	media := NewMediaService(conf)
	mailer := &fakeMailer{}

	listingRepo := db.NewListingRepo(gdb)
	favoriteRepo := db.NewFavoriteRepo(gdb)
	conversationRepo := db.NewConversationRepo(gdb)
	messageRepo := db.NewMessageRepo(gdb)
	contactRepo := db.NewContactRepo(gdb)

	return &testEnv{
		gdb:          gdb,
		conf:         conf,
		favorites:    NewFavoriteService(favoriteRepo, listingRepo, media, conf),
		conversation: NewConversationService(conversationRepo, messageRepo, listingRepo, media, conf),
		contacts:     NewContactService(contactRepo, listingRepo, mailer, conf),
		mailer:       mailer,
	}
}

func (e *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		Fullname: username + " Test",
		Username: username,
		Email:    username + "@example.com",
		IsActive: true,
	}
	if err := e.gdb.DB.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (e *testEnv) createListing(t *testing.T, owner *models.User, title string) *models.Listing {
	t.Helper()
	listing := &models.Listing{
		Title:       title,
		Slug:        fmt.Sprintf("%s-%s", title, uuid.NewString()[:8]),
		Description: "test listing",
		Price:       25000,
		UserID:      owner.ID,
		Region:      "Dakar",
		Department:  "Dakar",
		Status:      models.ListingStatusActive,
		IsActive:    true,
	}
	if err := e.gdb.DB.Create(listing).Error; err != nil {
		t.Fatalf("create listing: %v", err)
	}
	return listing
}
