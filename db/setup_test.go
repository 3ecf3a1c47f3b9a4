package db

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/terangamart/terangamart/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory SQLite DB for one test.
func newTestDB(t *testing.T) *GormDB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := Migrate(gdb); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return &GormDB{DB: gdb}
}

func createTestUser(t *testing.T, gdb *GormDB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Fullname: username + " Test",
		Username: username,
		Email:    username + "@example.com",
		IsActive: true,
	}
	if err := gdb.DB.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createTestListing(t *testing.T, gdb *GormDB, owner *models.User, title string) *models.Listing {
	t.Helper()
	listing := &models.Listing{
		Title:        title,
		Slug:         fmt.Sprintf("%s-%s", title, uuid.NewString()[:8]),
		Description:  "test listing",
		Price:        15000,
		IsNegotiable: true,
		UserID:       owner.ID,
		Region:       "Dakar",
		Department:   "Dakar",
		Status:       models.ListingStatusActive,
		IsActive:     true,
	}
	if err := gdb.DB.Create(listing).Error; err != nil {
		t.Fatalf("create listing: %v", err)
	}
	return listing
}
