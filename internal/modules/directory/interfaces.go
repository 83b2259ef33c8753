package directory

import (
	"context"

	"servicehub/internal/domain"
	"servicehub/internal/repository"
)

type ProviderRepository interface {
	ListVerified(ctx context.Context, f repository.ListFilter) ([]domain.Provider, error)
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
	ListCategories(ctx context.Context) ([]domain.ServiceCategory, error)
}

type ReviewRepository interface {
	ListByProvider(ctx context.Context, providerID int64) ([]domain.Review, error)
}

// Cache fronts the provider directory. All methods tolerate an absent
// backend by returning zero values.
type Cache interface {
	GetProviders(ctx context.Context, filterKey string) ([]domain.Provider, error)
	SetProviders(ctx context.Context, filterKey string, providers []domain.Provider) error
	GetCategories(ctx context.Context) ([]domain.ServiceCategory, error)
	SetCategories(ctx context.Context, categories []domain.ServiceCategory) error
}
