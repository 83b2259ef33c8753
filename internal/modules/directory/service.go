package directory

import (
	"context"
	"errors"

	"servicehub/internal/domain"
	"servicehub/internal/repository"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type Service struct {
	providers ProviderRepository
	reviews   ReviewRepository
	cache     Cache
	log       zerolog.Logger
}

func NewService(providers ProviderRepository, reviews ReviewRepository, cache Cache, log zerolog.Logger) *Service {
	return &Service{providers: providers, reviews: reviews, cache: cache, log: log}
}

// ListProviders serves the public directory. Only verified providers
// appear, highest-rated first. Cache errors degrade to a DB read.
func (s *Service) ListProviders(ctx context.Context, f repository.ListFilter) ([]domain.Provider, error) {
	key := f.Key()

	cached, err := s.cache.GetProviders(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Msg("provider cache read failed")
	}
	if cached != nil {
		return cached, nil
	}

	providers, err := s.providers.ListVerified(ctx, f)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetProviders(ctx, key, providers); err != nil {
		s.log.Warn().Err(err).Msg("provider cache write failed")
	}
	return providers, nil
}

// GetProvider returns a verified provider's public detail with reviews.
func (s *Service) GetProvider(ctx context.Context, id int64) (*domain.Provider, []domain.Review, error) {
	p, err := s.providers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	if p.VerificationStatus != domain.VerificationVerified {
		return nil, nil, ErrNotVerified
	}

	reviews, err := s.reviews.ListByProvider(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return p, reviews, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.ServiceCategory, error) {
	cached, err := s.cache.GetCategories(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("category cache read failed")
	}
	if cached != nil {
		return cached, nil
	}

	categories, err := s.providers.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetCategories(ctx, categories); err != nil {
		s.log.Warn().Err(err).Msg("category cache write failed")
	}
	return categories, nil
}
