package admin

import (
	"context"

	"servicehub/internal/domain"
)

type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
	ListPending(ctx context.Context, limit, offset int) ([]domain.Provider, int64, error)
	UpdateVerification(ctx context.Context, providerID int64, status domain.VerificationStatus) error
	Count(ctx context.Context) (int64, error)
}

type UserRepository interface {
	List(ctx context.Context, limit, offset int) ([]domain.User, int64, error)
	GetRoles(ctx context.Context, userID int64) ([]domain.Role, error)
	Count(ctx context.Context) (int64, error)
}

type BookingRepository interface {
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error)
}

type Notifier interface {
	Notify(ctx context.Context, userID int64, ntype domain.NotificationType, title, message string, referenceID *int64)
}

type CacheInvalidator interface {
	InvalidateProviders(ctx context.Context) error
}
