package review

import (
	"context"

	"servicehub/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	GetByBooking(ctx context.Context, bookingID int64) (*domain.Review, error)
	ListByProvider(ctx context.Context, providerID int64) ([]domain.Review, error)
	Aggregates(ctx context.Context, providerID int64) (average float64, total int, err error)
}

type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type ProviderRepository interface {
	UpdateRatingAggregates(ctx context.Context, providerID int64, average float64, total int) error
}

// CacheInvalidator drops cached directory listings after a rating write.
type CacheInvalidator interface {
	InvalidateProviders(ctx context.Context) error
}
