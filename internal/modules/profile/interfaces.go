package profile

import (
	"context"

	"servicehub/internal/domain"
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
	Update(ctx context.Context, p *domain.Profile) error
}

type UserRepository interface {
	GetRoles(ctx context.Context, userID int64) ([]domain.Role, error)
}

type ProviderRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Provider, error)
	SetOnline(ctx context.Context, providerID int64, online bool) error
}

type CacheInvalidator interface {
	InvalidateProviders(ctx context.Context) error
}
