package db

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terangamart/terangamart/models"
)

type conversationFixture struct {
	seller *models.User
	buyer  *models.User
	conv   *models.Conversation
}

// Seller's listing, buyer opens the thread, seller replies twice.
func seedConversation(t *testing.T, gdb *GormDB) conversationFixture {
	t.Helper()
	convRepo := NewConversationRepo(gdb)
	seller := createTestUser(t, gdb, "seller")
	buyer := createTestUser(t, gdb, "buyer")
	listing := createTestListing(t, gdb, seller, "oven")

	conv, first, _, err := convRepo.Start(listing, buyer.ID, "Is it still available?")
	require.NoError(t, err)
	require.NoError(t, gdb.DB.Model(first).
		UpdateColumn("created_at", time.Now().Add(-3*time.Minute)).Error)

	second, err := convRepo.AppendMessage(conv.ID, seller.ID, "Yes, come see it.")
	require.NoError(t, err)
	require.NoError(t, gdb.DB.Model(second).
		UpdateColumn("created_at", time.Now().Add(-2*time.Minute)).Error)

	third, err := convRepo.AppendMessage(conv.ID, seller.ID, "I am free this weekend.")
	require.NoError(t, err)
	require.NoError(t, gdb.DB.Model(third).
		UpdateColumn("created_at", time.Now().Add(-time.Minute)).Error)

	return conversationFixture{seller: seller, buyer: buyer, conv: conv}
}

func TestListChronological(t *testing.T) {
	gdb := newTestDB(t)
	fix := seedConversation(t, gdb)
	repo := NewMessageRepo(gdb)

	messages, err := repo.ListChronological(fix.conv.ID)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, fix.buyer.ID, messages[0].SenderID)
	assert.Equal(t, fix.seller.ID, messages[1].SenderID)
	assert.True(t, messages[0].CreatedAt.Before(messages[2].CreatedAt))
	assert.Equal(t, fix.buyer.Username, messages[0].Sender.Username)
}

func TestLatest(t *testing.T) {
	gdb := newTestDB(t)
	fix := seedConversation(t, gdb)
	repo := NewMessageRepo(gdb)

	latest, err := repo.Latest(fix.conv.ID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "I am free this weekend.", latest.Content)
}

func TestLatestEmptyConversation(t *testing.T) {
	gdb := newTestDB(t)
	seller := createTestUser(t, gdb, "seller")
	buyer := createTestUser(t, gdb, "buyer")
	listing := createTestListing(t, gdb, seller, "mirror")
	conv := &models.Conversation{ListingID: listing.ID, InitiatorID: buyer.ID, RecipientID: seller.ID}
	require.NoError(t, gdb.DB.Create(conv).Error)

	latest, err := NewMessageRepo(gdb).Latest(conv.ID)
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestFetchAndMarkRead(t *testing.T) {
	gdb := newTestDB(t)
	fix := seedConversation(t, gdb)
	repo := NewMessageRepo(gdb)

	// Buyer opens the thread: the seller's two replies flip to read,
	// the buyer's own message is untouched.
	messages, err := repo.FetchAndMarkRead(fix.conv.ID, fix.buyer.ID)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.False(t, messages[0].IsRead)
	assert.True(t, messages[1].IsRead)
	assert.True(t, messages[2].IsRead)

	unread, err := repo.UnreadInConversation(fix.conv.ID, fix.buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)

	// The buyer's message is still unread from the seller's side.
	unread, err = repo.UnreadInConversation(fix.conv.ID, fix.seller.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)
}

func TestFetchAndMarkReadIdempotent(t *testing.T) {
	gdb := newTestDB(t)
	fix := seedConversation(t, gdb)
	repo := NewMessageRepo(gdb)

	_, err := repo.FetchAndMarkRead(fix.conv.ID, fix.buyer.ID)
	require.NoError(t, err)
	messages, err := repo.FetchAndMarkRead(fix.conv.ID, fix.buyer.ID)
	require.NoError(t, err)
	require.Len(t, messages, 3)

	unread, err := repo.UnreadInConversation(fix.conv.ID, fix.buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)
}

func TestUnreadForUserAggregates(t *testing.T) {
	gdb := newTestDB(t)
	fix := seedConversation(t, gdb)
	repo := NewMessageRepo(gdb)
	convRepo := NewConversationRepo(gdb)

	// Second thread with one more unread reply for the buyer.
	other := createTestListing(t, gdb, fix.seller, "heater")
	conv2, _, _, err := convRepo.Start(other, fix.buyer.ID, "price?")
	require.NoError(t, err)
	_, err = convRepo.AppendMessage(conv2.ID, fix.seller.ID, "20000 CFA")
	require.NoError(t, err)

	count, err := repo.UnreadForUser(fix.buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = repo.UnreadForUser(fix.seller.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, err = repo.FetchAndMarkRead(fix.conv.ID, fix.buyer.ID)
	require.NoError(t, err)
	count, err = repo.UnreadForUser(fix.buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMessagePreviewTruncation(t *testing.T) {
	long := models.Message{Content: strings.Repeat("a", 150)}
	preview := long.Preview(long.SenderID)
	assert.Len(t, preview.Content, models.MessagePreviewLen)

	short := models.Message{Content: "hello"}
	assert.Equal(t, "hello", short.Preview(short.SenderID).Content)

	// The cut counts characters, never splitting a multi-byte rune.
	accented := models.Message{Content: strings.Repeat("é", 99) + "… et la suite"}
	preview = accented.Preview(accented.SenderID)
	assert.True(t, utf8.ValidString(preview.Content))
	assert.Equal(t, models.MessagePreviewLen, utf8.RuneCountInString(preview.Content))
	assert.Equal(t, strings.Repeat("é", 99)+"…", preview.Content)
}
