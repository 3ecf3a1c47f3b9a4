package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	gojwt "github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/terangamart/terangamart/config"
	"github.com/terangamart/terangamart/db"
	"github.com/terangamart/terangamart/models"
	"github.com/terangamart/terangamart/services"
	"github.com/terangamart/terangamart/services/jwt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret"

type testServer struct {
	router *gin.Engine
	gdb    *db.GormDB
	conf   *config.Config
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

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
	conf := &config.Config{JWTSecret: testJWTSecret}
	media := services.NewMediaService(conf)

	listingRepo := db.NewListingRepo(gdb)
	favoriteRepo := db.NewFavoriteRepo(gdb)
	conversationRepo := db.NewConversationRepo(gdb)
	messageRepo := db.NewMessageRepo(gdb)
	contactRepo := db.NewContactRepo(gdb)

	s := &Server{
		Config:              conf,
		AuthRepository:      db.NewAuthRepo(gdb),
		FavoriteService:     services.NewFavoriteService(favoriteRepo, listingRepo, media, conf),
		ConversationService: services.NewConversationService(conversationRepo, messageRepo, listingRepo, media, conf),
		ContactService:      services.NewContactService(contactRepo, listingRepo, nil, conf),
		DB:                  db.GormDB{DB: gormDB},
	}

	router := gin.New()
	s.defineRoutes(router)

	return &testServer{router: router, gdb: gdb, conf: conf}
}

func (ts *testServer) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		Fullname: username + " Test",
		Username: username,
		Email:    username + "@example.com",
		IsActive: true,
	}
	if err := ts.gdb.DB.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (ts *testServer) createListing(t *testing.T, owner *models.User, title string) *models.Listing {
	t.Helper()
	listing := &models.Listing{
		Title:       title,
		Slug:        fmt.Sprintf("%s-%s", title, uuid.NewString()[:8]),
		Description: "test listing",
		Price:       30000,
		UserID:      owner.ID,
		Region:      "Dakar",
		Department:  "Dakar",
		Status:      models.ListingStatusActive,
		IsActive:    true,
	}
	if err := ts.gdb.DB.Create(listing).Error; err != nil {
		t.Fatalf("create listing: %v", err)
	}
	return listing
}

func (ts *testServer) tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := jwt.GenerateToken(gojwt.MapClaims{"id": user.ID.String()}, testJWTSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return body
}
