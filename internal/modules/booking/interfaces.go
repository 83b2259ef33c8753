package booking

import (
	"context"

	"servicehub/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.BookingDetail, error)
	ListByProvider(ctx context.Context, providerID int64) ([]domain.BookingDetail, error)
	CreateEarning(ctx context.Context, e *domain.Earning) error
	ListEarnings(ctx context.Context, providerID int64) ([]domain.Earning, error)
	TotalEarnings(ctx context.Context, providerID int64) (float64, error)
}

type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Provider, error)
	GetService(ctx context.Context, serviceID int64) (*domain.ProviderService, error)
}

type ConversationCreator interface {
	CreateConversation(ctx context.Context, c *domain.Conversation) error
}

// Notifier fans out lifecycle notifications. Implementations must not
// fail the calling operation.
type Notifier interface {
	Notify(ctx context.Context, userID int64, ntype domain.NotificationType, title, message string, referenceID *int64)
}
