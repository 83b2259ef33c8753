package admin

import (
	"context"
	"strings"
	"testing"

	"servicehub/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProviderRepository struct {
	mock.Mock
}

func (m *MockProviderRepository) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Provider), args.Error(1)
}

func (m *MockProviderRepository) ListPending(ctx context.Context, limit, offset int) ([]domain.Provider, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Provider), args.Get(1).(int64), args.Error(2)
}

func (m *MockProviderRepository) UpdateVerification(ctx context.Context, providerID int64, status domain.VerificationStatus) error {
	args := m.Called(ctx, providerID, status)
	return args.Error(0)
}

func (m *MockProviderRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]domain.User, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) GetRoles(ctx context.Context, userID int64) ([]domain.Role, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Role), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, userID int64, ntype domain.NotificationType, title, message string, referenceID *int64) {
	m.Called(ctx, userID, ntype, title, message, referenceID)
}

type MockCacheInvalidator struct {
	mock.Mock
}

func (m *MockCacheInvalidator) InvalidateProviders(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func newTestService(providers *MockProviderRepository, notifier *MockNotifier, cache *MockCacheInvalidator) *Service {
	return NewService(providers, new(MockUserRepository), new(MockBookingRepository), notifier, cache, zerolog.Nop())
}

func pendingProvider() *domain.Provider {
	return &domain.Provider{ID: 10, UserID: 20, BusinessName: "New Biz", VerificationStatus: domain.VerificationPending}
}

func TestVerify_NotifiesAndInvalidatesCache(t *testing.T) {
	providers := new(MockProviderRepository)
	notifier := new(MockNotifier)
	cache := new(MockCacheInvalidator)
	svc := newTestService(providers, notifier, cache)

	providers.On("GetByID", mock.Anything, int64(10)).Return(pendingProvider(), nil)
	providers.On("UpdateVerification", mock.Anything, int64(10), domain.VerificationVerified).Return(nil)
	notifier.On("Notify", mock.Anything, int64(20), domain.NotifyProviderVerified,
		mock.Anything, mock.Anything, mock.Anything).Return()
	cache.On("InvalidateProviders", mock.Anything).Return(nil)

	p, err := svc.Verify(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, domain.VerificationVerified, p.VerificationStatus)
	notifier.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestReject_RequiresReason(t *testing.T) {
	svc := newTestService(new(MockProviderRepository), new(MockNotifier), new(MockCacheInvalidator))

	_, err := svc.Reject(context.Background(), 10, "   ")

	assert.ErrorIs(t, err, ErrValidation)
}

func TestReject_DeliversReason(t *testing.T) {
	providers := new(MockProviderRepository)
	notifier := new(MockNotifier)
	cache := new(MockCacheInvalidator)
	svc := newTestService(providers, notifier, cache)

	providers.On("GetByID", mock.Anything, int64(10)).Return(pendingProvider(), nil)
	providers.On("UpdateVerification", mock.Anything, int64(10), domain.VerificationRejected).Return(nil)
	notifier.On("Notify", mock.Anything, int64(20), domain.NotifyProviderRejected,
		mock.Anything, mock.MatchedBy(func(msg string) bool {
			return strings.Contains(msg, "incomplete documents")
		}), mock.Anything).Return()
	cache.On("InvalidateProviders", mock.Anything).Return(nil)

	p, err := svc.Reject(context.Background(), 10, "incomplete documents")

	require.NoError(t, err)
	assert.Equal(t, domain.VerificationRejected, p.VerificationStatus)
}

func TestDecide_AlreadyDecided(t *testing.T) {
	providers := new(MockProviderRepository)
	svc := newTestService(providers, new(MockNotifier), new(MockCacheInvalidator))

	p := pendingProvider()
	p.VerificationStatus = domain.VerificationVerified
	providers.On("GetByID", mock.Anything, int64(10)).Return(p, nil)

	_, err := svc.Verify(context.Background(), 10)

	assert.ErrorIs(t, err, ErrAlreadyDecided)
	providers.AssertNotCalled(t, "UpdateVerification", mock.Anything, mock.Anything, mock.Anything)
}

func TestStats_AggregatesCounts(t *testing.T) {
	providers := new(MockProviderRepository)
	users := new(MockUserRepository)
	bookings := new(MockBookingRepository)
	svc := NewService(providers, users, bookings, new(MockNotifier), new(MockCacheInvalidator), zerolog.Nop())

	users.On("Count", mock.Anything).Return(int64(50), nil)
	providers.On("Count", mock.Anything).Return(int64(12), nil)
	bookings.On("Count", mock.Anything).Return(int64(200), nil)
	bookings.On("CountByStatus", mock.Anything, domain.BookingPending).Return(int64(8), nil)
	bookings.On("CountByStatus", mock.Anything, domain.BookingCompleted).Return(int64(150), nil)

	stats, err := svc.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(50), stats.Users)
	assert.Equal(t, int64(12), stats.Providers)
	assert.Equal(t, int64(8), stats.PendingBookings)
	assert.Equal(t, int64(150), stats.CompletedBookings)
}
