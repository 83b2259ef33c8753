package review

import (
	"context"
	"testing"

	"servicehub/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	args := m.Called(ctx, rv)
	if rv != nil && args.Error(0) == nil {
		rv.ID = 1
	}
	return args.Error(0)
}

func (m *MockReviewRepository) GetByBooking(ctx context.Context, bookingID int64) (*domain.Review, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByProvider(ctx context.Context, providerID int64) ([]domain.Review, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewRepository) Aggregates(ctx context.Context, providerID int64) (float64, int, error) {
	args := m.Called(ctx, providerID)
	return args.Get(0).(float64), args.Int(1), args.Error(2)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockProviderRepository struct {
	mock.Mock
}

func (m *MockProviderRepository) UpdateRatingAggregates(ctx context.Context, providerID int64, average float64, total int) error {
	args := m.Called(ctx, providerID, average, total)
	return args.Error(0)
}

type MockCacheInvalidator struct {
	mock.Mock
}

func (m *MockCacheInvalidator) InvalidateProviders(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func newTestService(reviews *MockReviewRepository, bookings *MockBookingRepository, providers *MockProviderRepository, cache *MockCacheInvalidator) *Service {
	return NewService(reviews, bookings, providers, cache, zerolog.Nop())
}

func completedBooking() *domain.Booking {
	return &domain.Booking{ID: 100, UserID: 1, ProviderID: 10, Status: domain.BookingCompleted}
}

func TestCreate_UpdatesAggregatesAndInvalidatesCache(t *testing.T) {
	reviews := new(MockReviewRepository)
	bookings := new(MockBookingRepository)
	providers := new(MockProviderRepository)
	cache := new(MockCacheInvalidator)
	svc := newTestService(reviews, bookings, providers, cache)

	bookings.On("GetByID", mock.Anything, int64(100)).Return(completedBooking(), nil)
	reviews.On("Create", mock.Anything, mock.MatchedBy(func(rv *domain.Review) bool {
		return rv.BookingID == 100 && rv.ProviderID == 10 && rv.Rating == 5
	})).Return(nil)
	reviews.On("Aggregates", mock.Anything, int64(10)).Return(4.5, 2, nil)
	providers.On("UpdateRatingAggregates", mock.Anything, int64(10), 4.5, 2).Return(nil)
	cache.On("InvalidateProviders", mock.Anything).Return(nil)

	rv, err := svc.Create(context.Background(), 1, CreateReviewRequest{BookingID: 100, Rating: 5, Comment: "great"})

	require.NoError(t, err)
	assert.Equal(t, 5, rv.Rating)
	providers.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestCreate_DuplicateSurfacesAlreadyReviewed(t *testing.T) {
	reviews := new(MockReviewRepository)
	bookings := new(MockBookingRepository)
	svc := newTestService(reviews, bookings, new(MockProviderRepository), new(MockCacheInvalidator))

	bookings.On("GetByID", mock.Anything, int64(100)).Return(completedBooking(), nil)
	reviews.On("Create", mock.Anything, mock.AnythingOfType("*domain.Review")).
		Return(&pgconn.PgError{Code: "23505", ConstraintName: "idx_reviews_booking_id"})

	_, err := svc.Create(context.Background(), 1, CreateReviewRequest{BookingID: 100, Rating: 4})

	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestCreate_RatingBounds(t *testing.T) {
	svc := newTestService(new(MockReviewRepository), new(MockBookingRepository), new(MockProviderRepository), new(MockCacheInvalidator))

	for _, rating := range []int{0, -1, 6, 100} {
		_, err := svc.Create(context.Background(), 1, CreateReviewRequest{BookingID: 100, Rating: rating})
		assert.ErrorIs(t, err, ErrValidation, "rating %d", rating)
	}
}

func TestCreate_NotCompletedRejected(t *testing.T) {
	for _, status := range []domain.BookingStatus{
		domain.BookingPending, domain.BookingAccepted, domain.BookingInProgress, domain.BookingCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			reviews := new(MockReviewRepository)
			bookings := new(MockBookingRepository)
			svc := newTestService(reviews, bookings, new(MockProviderRepository), new(MockCacheInvalidator))

			b := completedBooking()
			b.Status = status
			bookings.On("GetByID", mock.Anything, int64(100)).Return(b, nil)

			_, err := svc.Create(context.Background(), 1, CreateReviewRequest{BookingID: 100, Rating: 5})

			assert.ErrorIs(t, err, ErrNotCompleted)
			reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreate_OnlyCustomerMayReview(t *testing.T) {
	bookings := new(MockBookingRepository)
	svc := newTestService(new(MockReviewRepository), bookings, new(MockProviderRepository), new(MockCacheInvalidator))

	bookings.On("GetByID", mock.Anything, int64(100)).Return(completedBooking(), nil)

	_, err := svc.Create(context.Background(), 999, CreateReviewRequest{BookingID: 100, Rating: 5})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGetByBooking_NoReviewIsNil(t *testing.T) {
	reviews := new(MockReviewRepository)
	bookings := new(MockBookingRepository)
	svc := newTestService(reviews, bookings, new(MockProviderRepository), new(MockCacheInvalidator))

	bookings.On("GetByID", mock.Anything, int64(100)).Return(completedBooking(), nil)
	reviews.On("GetByBooking", mock.Anything, int64(100)).Return(nil, gorm.ErrRecordNotFound)

	rv, err := svc.GetByBooking(context.Background(), 100, 1)

	require.NoError(t, err)
	assert.Nil(t, rv)
}
