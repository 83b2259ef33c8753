package review

import (
	"context"
	"errors"
	"strings"

	"servicehub/internal/domain"
	"servicehub/internal/repository"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type CreateReviewRequest struct {
	BookingID int64  `json:"booking_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment"`
}

type Service struct {
	reviews   ReviewRepository
	bookings  BookingRepository
	providers ProviderRepository
	cache     CacheInvalidator
	log       zerolog.Logger
}

func NewService(reviews ReviewRepository, bookings BookingRepository, providers ProviderRepository, cache CacheInvalidator, log zerolog.Logger) *Service {
	return &Service{reviews: reviews, bookings: bookings, providers: providers, cache: cache, log: log}
}

// Create stores the one review a completed booking's customer may
// leave. The uniqueness is enforced by the database; the duplicate is
// detected from the constraint violation, not a prior read.
func (s *Service) Create(ctx context.Context, userID int64, req CreateReviewRequest) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrForbidden
	}
	if b.Status != domain.BookingCompleted {
		return nil, ErrNotCompleted
	}

	rv := &domain.Review{
		BookingID:  b.ID,
		UserID:     userID,
		ProviderID: b.ProviderID,
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	s.refreshAggregates(ctx, b.ProviderID)

	s.log.Info().
		Int64("booking_id", b.ID).
		Int64("provider_id", b.ProviderID).
		Int("rating", req.Rating).
		Msg("review created")

	return rv, nil
}

func (s *Service) GetByBooking(ctx context.Context, bookingID, viewerID int64) (*domain.Review, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.UserID != viewerID {
		return nil, ErrForbidden
	}

	rv, err := s.reviews.GetByBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rv, nil
}

func (s *Service) ListByProvider(ctx context.Context, providerID int64) ([]domain.Review, error) {
	return s.reviews.ListByProvider(ctx, providerID)
}

func (s *Service) refreshAggregates(ctx context.Context, providerID int64) {
	average, total, err := s.reviews.Aggregates(ctx, providerID)
	if err != nil {
		s.log.Error().Err(err).Int64("provider_id", providerID).Msg("failed to compute rating aggregates")
		return
	}
	if err := s.providers.UpdateRatingAggregates(ctx, providerID, average, total); err != nil {
		s.log.Error().Err(err).Int64("provider_id", providerID).Msg("failed to store rating aggregates")
		return
	}
	if err := s.cache.InvalidateProviders(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to invalidate provider cache")
	}
}
