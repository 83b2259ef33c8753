package chat

import (
	"context"

	"servicehub/internal/domain"
)

type ChatRepository interface {
	GetConversation(ctx context.Context, id string) (*domain.Conversation, error)
	GetConversationByBooking(ctx context.Context, bookingID int64) (*domain.Conversation, error)
	ListConversations(ctx context.Context, userID int64) ([]domain.Conversation, error)
	CreateMessage(ctx context.Context, msg *domain.Message) error
	ListMessages(ctx context.Context, conversationID string) ([]domain.Message, error)
	MarkRead(ctx context.Context, conversationID string, readerID int64) error
	UnreadCount(ctx context.Context, userID int64) (int64, error)
}

type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
}

type Notifier interface {
	Notify(ctx context.Context, userID int64, ntype domain.NotificationType, title, message string, referenceID *int64)
}
