package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"servicehub/internal/domain"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type DashboardStats struct {
	Users             int64 `json:"users"`
	Providers         int64 `json:"providers"`
	Bookings          int64 `json:"bookings"`
	PendingBookings   int64 `json:"pending_bookings"`
	CompletedBookings int64 `json:"completed_bookings"`
}

type UserListItem struct {
	domain.User
	Roles []domain.Role `json:"roles"`
}

type Service struct {
	providers ProviderRepository
	users     UserRepository
	bookings  BookingRepository
	notifier  Notifier
	cache     CacheInvalidator
	log       zerolog.Logger
}

func NewService(
	providers ProviderRepository,
	users UserRepository,
	bookings BookingRepository,
	notifier Notifier,
	cache CacheInvalidator,
	log zerolog.Logger,
) *Service {
	return &Service{
		providers: providers,
		users:     users,
		bookings:  bookings,
		notifier:  notifier,
		cache:     cache,
		log:       log,
	}
}

func (s *Service) PendingProviders(ctx context.Context, limit, offset int) ([]domain.Provider, int64, error) {
	return s.providers.ListPending(ctx, limit, offset)
}

// Verify approves a pending provider, making it visible in the
// directory.
func (s *Service) Verify(ctx context.Context, providerID int64) (*domain.Provider, error) {
	return s.decide(ctx, providerID, domain.VerificationVerified, "")
}

// Reject declines a pending provider. A reason is required; it is
// delivered to the provider in the rejection notice.
func (s *Service) Reject(ctx context.Context, providerID int64, reason string) (*domain.Provider, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrValidation
	}
	return s.decide(ctx, providerID, domain.VerificationRejected, reason)
}

func (s *Service) decide(ctx context.Context, providerID int64, status domain.VerificationStatus, reason string) (*domain.Provider, error) {
	p, err := s.providers.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.VerificationStatus != domain.VerificationPending {
		return nil, ErrAlreadyDecided
	}

	if err := s.providers.UpdateVerification(ctx, providerID, status); err != nil {
		return nil, err
	}
	p.VerificationStatus = status

	if status == domain.VerificationVerified {
		s.notifier.Notify(ctx, p.UserID, domain.NotifyProviderVerified,
			"Profile verified",
			"Your provider profile was verified. You are now listed in the directory.",
			&p.ID)
	} else {
		s.notifier.Notify(ctx, p.UserID, domain.NotifyProviderRejected,
			"Profile rejected",
			fmt.Sprintf("Your provider profile was rejected: %s", reason),
			&p.ID)
	}

	if err := s.cache.InvalidateProviders(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to invalidate provider cache")
	}

	s.log.Info().
		Int64("provider_id", providerID).
		Str("decision", string(status)).
		Msg("provider verification decided")

	return p, nil
}

func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]UserListItem, int64, error) {
	users, total, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	out := make([]UserListItem, 0, len(users))
	for _, u := range users {
		roles, err := s.users.GetRoles(ctx, u.ID)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, UserListItem{User: u, Roles: roles})
	}
	return out, total, nil
}

func (s *Service) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.Users, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Providers, err = s.providers.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Bookings, err = s.bookings.Count(ctx); err != nil {
		return nil, err
	}
	if stats.PendingBookings, err = s.bookings.CountByStatus(ctx, domain.BookingPending); err != nil {
		return nil, err
	}
	if stats.CompletedBookings, err = s.bookings.CountByStatus(ctx, domain.BookingCompleted); err != nil {
		return nil, err
	}
	return stats, nil
}
