package booking

import (
	"context"
	"testing"
	"time"

	"servicehub/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil && args.Error(0) == nil {
		b.ID = 100
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.BookingDetail, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingDetail), args.Error(1)
}

func (m *MockBookingRepository) ListByProvider(ctx context.Context, providerID int64) ([]domain.BookingDetail, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingDetail), args.Error(1)
}

func (m *MockBookingRepository) CreateEarning(ctx context.Context, e *domain.Earning) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockBookingRepository) ListEarnings(ctx context.Context, providerID int64) ([]domain.Earning, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Earning), args.Error(1)
}

func (m *MockBookingRepository) TotalEarnings(ctx context.Context, providerID int64) (float64, error) {
	args := m.Called(ctx, providerID)
	return args.Get(0).(float64), args.Error(1)
}

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

func (m *MockProviderRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Provider, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Provider), args.Error(1)
}

func (m *MockProviderRepository) GetService(ctx context.Context, serviceID int64) (*domain.ProviderService, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProviderService), args.Error(1)
}

type MockConversationCreator struct {
	mock.Mock
}

func (m *MockConversationCreator) CreateConversation(ctx context.Context, c *domain.Conversation) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, userID int64, ntype domain.NotificationType, title, message string, referenceID *int64) {
	m.Called(ctx, userID, ntype, title, message, referenceID)
}

func newTestService(bookings *MockBookingRepository, providers *MockProviderRepository, convs *MockConversationCreator, notifier *MockNotifier) *Service {
	return NewService(bookings, providers, convs, notifier, zerolog.Nop())
}

// allDays keeps availability checks out of tests that target other rules.
var allDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func verifiedProvider() *domain.Provider {
	return &domain.Provider{
		ID:                 10,
		UserID:             20,
		BusinessName:       "Acme Repairs",
		VerificationStatus: domain.VerificationVerified,
		AvailableDays:      allDays,
		AvailableStartTime: "09:00",
		AvailableEndTime:   "17:00",
	}
}

func futureDate(daysAhead int) string {
	return time.Now().UTC().AddDate(0, 0, daysAhead).Format("2006-01-02")
}

func TestCreate_PendingWithServicePrice(t *testing.T) {
	bookings := new(MockBookingRepository)
	providers := new(MockProviderRepository)
	notifier := new(MockNotifier)
	svc := newTestService(bookings, providers, new(MockConversationCreator), notifier)

	price := 120.0
	providers.On("GetByID", mock.Anything, int64(10)).Return(verifiedProvider(), nil)
	providers.On("GetService", mock.Anything, int64(5)).
		Return(&domain.ProviderService{ID: 5, ProviderID: 10, Price: &price}, nil)
	bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Status == domain.BookingPending && b.TotalAmount != nil && *b.TotalAmount == 120.0
	})).Return(nil)
	notifier.On("Notify", mock.Anything, int64(20), domain.NotifyBookingRequest,
		mock.Anything, mock.Anything, mock.Anything).Return()

	b, err := svc.Create(context.Background(), 1, CreateBookingRequest{
		ProviderID:    10,
		ServiceID:     5,
		ScheduledDate: futureDate(3),
		ScheduledTime: "10:00",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, b.Status)
	notifier.AssertExpectations(t)
}

func TestCreate_PastDateRejected(t *testing.T) {
	svc := newTestService(new(MockBookingRepository), new(MockProviderRepository), new(MockConversationCreator), new(MockNotifier))

	_, err := svc.Create(context.Background(), 1, CreateBookingRequest{
		ProviderID:    10,
		ServiceID:     5,
		ScheduledDate: "2020-01-01",
		ScheduledTime: "10:00",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreate_UnverifiedProviderRejected(t *testing.T) {
	providers := new(MockProviderRepository)
	svc := newTestService(new(MockBookingRepository), providers, new(MockConversationCreator), new(MockNotifier))

	p := verifiedProvider()
	p.VerificationStatus = domain.VerificationPending
	providers.On("GetByID", mock.Anything, int64(10)).Return(p, nil)

	_, err := svc.Create(context.Background(), 1, CreateBookingRequest{
		ProviderID:    10,
		ServiceID:     5,
		ScheduledDate: futureDate(3),
		ScheduledTime: "10:00",
	})

	assert.ErrorIs(t, err, ErrProviderNotVerified)
}

func TestCreate_OutsideWindowRejected(t *testing.T) {
	providers := new(MockProviderRepository)
	svc := newTestService(new(MockBookingRepository), providers, new(MockConversationCreator), new(MockNotifier))

	providers.On("GetByID", mock.Anything, int64(10)).Return(verifiedProvider(), nil)

	_, err := svc.Create(context.Background(), 1, CreateBookingRequest{
		ProviderID:    10,
		ServiceID:     5,
		ScheduledDate: futureDate(3),
		ScheduledTime: "20:00",
	})

	assert.ErrorIs(t, err, ErrNotAvailable)
}

func TestCreate_EmergencyBypassesWindow(t *testing.T) {
	bookings := new(MockBookingRepository)
	providers := new(MockProviderRepository)
	notifier := new(MockNotifier)
	svc := newTestService(bookings, providers, new(MockConversationCreator), notifier)

	p := verifiedProvider()
	p.AvailableDays = nil
	providers.On("GetByID", mock.Anything, int64(10)).Return(p, nil)
	providers.On("GetService", mock.Anything, int64(5)).
		Return(&domain.ProviderService{ID: 5, ProviderID: 10}, nil)
	bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.IsEmergency
	})).Return(nil)
	notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()

	b, err := svc.Create(context.Background(), 1, CreateBookingRequest{
		ProviderID:    10,
		ServiceID:     5,
		ScheduledDate: futureDate(1),
		ScheduledTime: "23:00",
		IsEmergency:   true,
	})

	require.NoError(t, err)
	assert.True(t, b.IsEmergency)
}

func TestCreate_OwnProviderRejected(t *testing.T) {
	providers := new(MockProviderRepository)
	svc := newTestService(new(MockBookingRepository), providers, new(MockConversationCreator), new(MockNotifier))

	providers.On("GetByID", mock.Anything, int64(10)).Return(verifiedProvider(), nil)

	_, err := svc.Create(context.Background(), 20, CreateBookingRequest{
		ProviderID:    10,
		ServiceID:     5,
		ScheduledDate: futureDate(3),
		ScheduledTime: "10:00",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateStatus_ProviderAcceptsCreatesConversation(t *testing.T) {
	bookings := new(MockBookingRepository)
	providers := new(MockProviderRepository)
	convs := new(MockConversationCreator)
	notifier := new(MockNotifier)
	svc := newTestService(bookings, providers, convs, notifier)

	b := &domain.Booking{ID: 100, UserID: 1, ProviderID: 10, Status: domain.BookingPending}
	bookings.On("GetByID", mock.Anything, int64(100)).Return(b, nil)
	providers.On("GetByID", mock.Anything, int64(10)).Return(verifiedProvider(), nil)
	bookings.On("UpdateStatus", mock.Anything, int64(100), domain.BookingPending, domain.BookingAccepted).Return(true, nil)
	convs.On("CreateConversation", mock.Anything, mock.MatchedBy(func(c *domain.Conversation) bool {
		return c.BookingID == 100 && c.UserID == 1 && c.ProviderID == 20
	})).Return(nil)
	notifier.On("Notify", mock.Anything, int64(1), domain.NotifyBookingAccepted,
		mock.Anything, mock.Anything, mock.Anything).Return()

	updated, err := svc.UpdateStatus(context.Background(), 100, 20, domain.BookingAccepted)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingAccepted, updated.Status)
	convs.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestUpdateStatus_CustomerCannotAccept(t *testing.T) {
	bookings := new(MockBookingRepository)
	providers := new(MockProviderRepository)
	svc := newTestService(bookings, providers, new(MockConversationCreator), new(MockNotifier))

	b := &domain.Booking{ID: 100, UserID: 1, ProviderID: 10, Status: domain.BookingPending}
	bookings.On("GetByID", mock.Anything, int64(100)).Return(b, nil)
	providers.On("GetByID", mock.Anything, int64(10)).Return(verifiedProvider(), nil)

	_, err := svc.UpdateStatus(context.Background(), 100, 1, domain.BookingAccepted)

	assert.ErrorIs(t, err, ErrForbidden)
	bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_StrangerForbidden(t *testing.T) {
	bookings := new(MockBookingRepository)
	providers := new(MockProviderRepository)
	svc := newTestService(bookings, providers, new(MockConversationCreator), new(MockNotifier))

	b := &domain.Booking{ID: 100, UserID: 1, ProviderID: 10, Status: domain.BookingPending}
	bookings.On("GetByID", mock.Anything, int64(100)).Return(b, nil)
	providers.On("GetByID", mock.Anything, int64(10)).Return(verifiedProvider(), nil)

	_, err := svc.UpdateStatus(context.Background(), 100, 777, domain.BookingCancelled)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateStatus_IllegalEdgeRejected(t *testing.T) {
	cases := []struct {
		name string
		from domain.BookingStatus
		to   domain.BookingStatus
	}{
		{"pending to completed", domain.BookingPending, domain.BookingCompleted},
		{"pending to in_progress", domain.BookingPending, domain.BookingInProgress},
		{"accepted to completed", domain.BookingAccepted, domain.BookingCompleted},
		{"accepted to cancelled", domain.BookingAccepted, domain.BookingCancelled},
		{"in_progress to cancelled", domain.BookingInProgress, domain.BookingCancelled},
		{"completed to pending", domain.BookingCompleted, domain.BookingPending},
		{"cancelled to accepted", domain.BookingCancelled, domain.BookingAccepted},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bookings := new(MockBookingRepository)
			providers := new(MockProviderRepository)
			svc := newTestService(bookings, providers, new(MockConversationCreator), new(MockNotifier))

			b := &domain.Booking{ID: 100, UserID: 1, ProviderID: 10, Status: tc.from}
			bookings.On("GetByID", mock.Anything, int64(100)).Return(b, nil)
			providers.On("GetByID", mock.Anything, int64(10)).Return(verifiedProvider(), nil)

			_, err := svc.UpdateStatus(context.Background(), 100, 20, tc.to)

			assert.ErrorIs(t, err, ErrInvalidTransition)
			bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateStatus_CustomerCancelsPending(t *testing.T) {
	bookings := new(MockBookingRepository)
	providers := new(MockProviderRepository)
	notifier := new(MockNotifier)
	svc := newTestService(bookings, providers, new(MockConversationCreator), notifier)

	b := &domain.Booking{ID: 100, UserID: 1, ProviderID: 10, Status: domain.BookingPending}
	bookings.On("GetByID", mock.Anything, int64(100)).Return(b, nil)
	providers.On("GetByID", mock.Anything, int64(10)).Return(verifiedProvider(), nil)
	bookings.On("UpdateStatus", mock.Anything, int64(100), domain.BookingPending, domain.BookingCancelled).Return(true, nil)
	notifier.On("Notify", mock.Anything, int64(20), domain.NotifyBookingRejected,
		mock.Anything, mock.Anything, mock.Anything).Return()

	updated, err := svc.UpdateStatus(context.Background(), 100, 1, domain.BookingCancelled)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, updated.Status)
	notifier.AssertExpectations(t)
}

func TestUpdateStatus_CompletedRecordsEarning(t *testing.T) {
	bookings := new(MockBookingRepository)
	providers := new(MockProviderRepository)
	notifier := new(MockNotifier)
	svc := newTestService(bookings, providers, new(MockConversationCreator), notifier)

	amount := 85.0
	b := &domain.Booking{ID: 100, UserID: 1, ProviderID: 10, Status: domain.BookingInProgress, TotalAmount: &amount}
	bookings.On("GetByID", mock.Anything, int64(100)).Return(b, nil)
	providers.On("GetByID", mock.Anything, int64(10)).Return(verifiedProvider(), nil)
	bookings.On("UpdateStatus", mock.Anything, int64(100), domain.BookingInProgress, domain.BookingCompleted).Return(true, nil)
	bookings.On("CreateEarning", mock.Anything, mock.MatchedBy(func(e *domain.Earning) bool {
		return e.BookingID == 100 && e.ProviderID == 10 && e.Amount == 85.0
	})).Return(nil)
	notifier.On("Notify", mock.Anything, int64(1), domain.NotifyJobCompleted,
		mock.Anything, mock.Anything, mock.Anything).Return()

	_, err := svc.UpdateStatus(context.Background(), 100, 20, domain.BookingCompleted)

	require.NoError(t, err)
	bookings.AssertExpectations(t)
}

func TestUpdateStatus_LostRaceRejected(t *testing.T) {
	bookings := new(MockBookingRepository)
	providers := new(MockProviderRepository)
	svc := newTestService(bookings, providers, new(MockConversationCreator), new(MockNotifier))

	b := &domain.Booking{ID: 100, UserID: 1, ProviderID: 10, Status: domain.BookingPending}
	bookings.On("GetByID", mock.Anything, int64(100)).Return(b, nil)
	providers.On("GetByID", mock.Anything, int64(10)).Return(verifiedProvider(), nil)
	bookings.On("UpdateStatus", mock.Anything, int64(100), domain.BookingPending, domain.BookingAccepted).Return(false, nil)

	_, err := svc.UpdateStatus(context.Background(), 100, 20, domain.BookingAccepted)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	bookings := new(MockBookingRepository)
	svc := newTestService(bookings, new(MockProviderRepository), new(MockConversationCreator), new(MockNotifier))

	bookings.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.UpdateStatus(context.Background(), 404, 1, domain.BookingCancelled)

	assert.ErrorIs(t, err, ErrNotFound)
}
