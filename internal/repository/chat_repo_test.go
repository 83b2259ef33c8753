package repository

import (
	"context"
	"testing"

	"servicehub/internal/database"
	"servicehub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func seedMessage(t *testing.T, repo *ChatRepository, conversationID string, senderID int64, content string) domain.Message {
	msg := domain.Message{ConversationID: conversationID, SenderID: senderID, Content: content}
	require.NoError(t, repo.CreateMessage(context.Background(), &msg))
	return msg
}

func TestMarkRead_OnlyCounterpartMessages(t *testing.T) {
	repo := NewChatRepository(newTestDB(t))
	ctx := context.Background()

	conv := domain.Conversation{BookingID: 1, UserID: 1, ProviderID: 20}
	require.NoError(t, repo.CreateConversation(ctx, &conv))

	seedMessage(t, repo, conv.ID, 20, "on my way")
	seedMessage(t, repo, conv.ID, 20, "be there in ten")
	seedMessage(t, repo, conv.ID, 1, "door code is 4242")

	// customer opens the thread
	require.NoError(t, repo.MarkRead(ctx, conv.ID, 1))

	msgs, err := repo.ListMessages(ctx, conv.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	for _, m := range msgs {
		if m.SenderID == 20 {
			assert.True(t, m.IsRead, "counterpart message %q should be read", m.Content)
		} else {
			assert.False(t, m.IsRead, "own message %q must stay unread", m.Content)
		}
	}

	// reopening changes nothing
	require.NoError(t, repo.MarkRead(ctx, conv.ID, 1))

	again, err := repo.ListMessages(ctx, conv.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, msgs, again)

	// the provider's unread count still reflects the customer's message
	n, err := repo.UnreadCount(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.UnreadCount(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreateConversation_DuplicateBookingReturnsExisting(t *testing.T) {
	repo := NewChatRepository(newTestDB(t))
	ctx := context.Background()

	first := domain.Conversation{BookingID: 7, UserID: 1, ProviderID: 20}
	require.NoError(t, repo.CreateConversation(ctx, &first))

	second := domain.Conversation{BookingID: 7, UserID: 1, ProviderID: 20}
	require.NoError(t, repo.CreateConversation(ctx, &second))

	assert.Equal(t, first.ID, second.ID)
}
