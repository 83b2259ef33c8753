package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"servicehub/internal/domain"
	"servicehub/internal/metrics"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type Service struct {
	bookings      BookingRepository
	providers     ProviderRepository
	conversations ConversationCreator
	notifier      Notifier
	log           zerolog.Logger
}

func NewService(
	bookings BookingRepository,
	providers ProviderRepository,
	conversations ConversationCreator,
	notifier Notifier,
	log zerolog.Logger,
) *Service {
	return &Service{
		bookings:      bookings,
		providers:     providers,
		conversations: conversations,
		notifier:      notifier,
		log:           log,
	}
}

// Create places a pending booking with a verified provider. Emergency
// bookings skip the advertised availability window; regular bookings
// must fall on an available weekday inside it.
func (s *Service) Create(ctx context.Context, userID int64, req CreateBookingRequest) (*domain.Booking, error) {
	date, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		return nil, ErrValidation
	}
	if _, err := time.Parse("15:04", req.ScheduledTime); err != nil {
		return nil, ErrValidation
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if date.Before(today) {
		return nil, ErrValidation
	}

	provider, err := s.providers.GetByID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if provider.VerificationStatus != domain.VerificationVerified {
		return nil, ErrProviderNotVerified
	}
	if provider.UserID == userID {
		return nil, ErrValidation
	}

	if !req.IsEmergency {
		if !provider.AvailableOn(date) || !provider.WindowContains(req.ScheduledTime) {
			return nil, ErrNotAvailable
		}
	}

	svc, err := s.providers.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrValidation
		}
		return nil, err
	}
	if svc.ProviderID != provider.ID {
		return nil, ErrValidation
	}

	b := &domain.Booking{
		UserID:        userID,
		ProviderID:    provider.ID,
		ServiceID:     svc.ID,
		ScheduledDate: req.ScheduledDate,
		ScheduledTime: req.ScheduledTime,
		Status:        domain.BookingPending,
		Notes:         req.Notes,
		TotalAmount:   svc.Price,
		IsEmergency:   req.IsEmergency,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, provider.UserID, domain.NotifyBookingRequest,
		"New booking request",
		fmt.Sprintf("You have a new booking request for %s at %s", b.ScheduledDate, b.ScheduledTime),
		&b.ID)

	s.log.Info().
		Int64("booking_id", b.ID).
		Int64("user_id", userID).
		Int64("provider_id", provider.ID).
		Bool("emergency", b.IsEmergency).
		Msg("booking created")

	return b, nil
}

// customer edges, then provider edges. A legal edge attempted by the
// wrong party is forbidden, not invalid.
var actorEdges = map[domain.Role]map[domain.BookingStatus][]domain.BookingStatus{
	domain.RoleUser: {
		domain.BookingPending: {domain.BookingCancelled},
	},
	domain.RoleServiceProvider: {
		domain.BookingPending:    {domain.BookingAccepted, domain.BookingCancelled},
		domain.BookingAccepted:   {domain.BookingInProgress},
		domain.BookingInProgress: {domain.BookingCompleted},
	},
}

func actorMay(actor domain.Role, from, to domain.BookingStatus) bool {
	for _, next := range actorEdges[actor][from] {
		if next == to {
			return true
		}
	}
	return false
}

// UpdateStatus drives the booking state machine. The status write is
// compare-and-swap on the current status; a lost race is re-read and
// rejected rather than applied over the newer state.
func (s *Service) UpdateStatus(ctx context.Context, bookingID, actorUserID int64, newStatus domain.BookingStatus) (*domain.Booking, error) {
	if !newStatus.Valid() {
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	provider, err := s.providers.GetByID(ctx, b.ProviderID)
	if err != nil {
		return nil, err
	}

	var actor domain.Role
	switch {
	case b.UserID == actorUserID:
		actor = domain.RoleUser
	case provider.UserID == actorUserID:
		actor = domain.RoleServiceProvider
	default:
		metrics.IncTransition(string(b.Status), string(newStatus), "forbidden")
		return nil, ErrForbidden
	}

	if !domain.CanTransition(b.Status, newStatus) {
		metrics.IncTransition(string(b.Status), string(newStatus), "invalid")
		return nil, ErrInvalidTransition
	}
	if !actorMay(actor, b.Status, newStatus) {
		metrics.IncTransition(string(b.Status), string(newStatus), "forbidden")
		return nil, ErrForbidden
	}

	applied, err := s.bookings.UpdateStatus(ctx, bookingID, b.Status, newStatus)
	if err != nil {
		return nil, err
	}
	if !applied {
		metrics.IncTransition(string(b.Status), string(newStatus), "invalid")
		return nil, ErrInvalidTransition
	}
	metrics.IncTransition(string(b.Status), string(newStatus), "ok")

	from := b.Status
	b.Status = newStatus
	s.applySideEffects(ctx, b, provider, from, actor)

	return b, nil
}

func (s *Service) applySideEffects(ctx context.Context, b *domain.Booking, provider *domain.Provider, from domain.BookingStatus, actor domain.Role) {
	switch b.Status {
	case domain.BookingAccepted:
		conv := &domain.Conversation{
			BookingID:  b.ID,
			UserID:     b.UserID,
			ProviderID: provider.UserID,
		}
		if err := s.conversations.CreateConversation(ctx, conv); err != nil {
			s.log.Error().Err(err).Int64("booking_id", b.ID).Msg("failed to create conversation")
		}
		s.notifier.Notify(ctx, b.UserID, domain.NotifyBookingAccepted,
			"Booking accepted",
			fmt.Sprintf("Your booking for %s at %s was accepted", b.ScheduledDate, b.ScheduledTime),
			&b.ID)

	case domain.BookingCancelled:
		if actor == domain.RoleServiceProvider {
			s.notifier.Notify(ctx, b.UserID, domain.NotifyBookingRejected,
				"Booking declined",
				fmt.Sprintf("Your booking for %s at %s was declined", b.ScheduledDate, b.ScheduledTime),
				&b.ID)
		} else {
			s.notifier.Notify(ctx, provider.UserID, domain.NotifyBookingRejected,
				"Booking cancelled",
				fmt.Sprintf("The booking for %s at %s was cancelled by the customer", b.ScheduledDate, b.ScheduledTime),
				&b.ID)
		}

	case domain.BookingCompleted:
		amount := 0.0
		if b.TotalAmount != nil {
			amount = *b.TotalAmount
		}
		if err := s.bookings.CreateEarning(ctx, &domain.Earning{
			BookingID:  b.ID,
			ProviderID: provider.ID,
			Amount:     amount,
		}); err != nil {
			s.log.Error().Err(err).Int64("booking_id", b.ID).Msg("failed to record earning")
		}
		s.notifier.Notify(ctx, b.UserID, domain.NotifyJobCompleted,
			"Job completed",
			"Your booking was marked completed. You can now leave a review.",
			&b.ID)
	}

	s.log.Info().
		Int64("booking_id", b.ID).
		Str("from", string(from)).
		Str("to", string(b.Status)).
		Str("actor", string(actor)).
		Msg("booking status changed")
}

func (s *Service) GetByID(ctx context.Context, bookingID, viewerID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if b.UserID != viewerID {
		provider, err := s.providers.GetByID(ctx, b.ProviderID)
		if err != nil {
			return nil, err
		}
		if provider.UserID != viewerID {
			return nil, ErrForbidden
		}
	}
	return b, nil
}

// ListForCustomer returns the viewer's own bookings, newest first.
func (s *Service) ListForCustomer(ctx context.Context, userID int64) ([]domain.BookingDetail, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// ListForProvider returns bookings addressed to the viewer's provider
// profile, newest first.
func (s *Service) ListForProvider(ctx context.Context, actorUserID int64) ([]domain.BookingDetail, error) {
	provider, err := s.providers.GetByUserID(ctx, actorUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	return s.bookings.ListByProvider(ctx, provider.ID)
}

func (s *Service) Earnings(ctx context.Context, actorUserID int64) (*EarningsSummary, error) {
	provider, err := s.providers.GetByUserID(ctx, actorUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}

	earnings, err := s.bookings.ListEarnings(ctx, provider.ID)
	if err != nil {
		return nil, err
	}
	total, err := s.bookings.TotalEarnings(ctx, provider.ID)
	if err != nil {
		return nil, err
	}
	return &EarningsSummary{Total: total, Earnings: earnings}, nil
}
