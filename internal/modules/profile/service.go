package profile

import (
	"context"
	"errors"
	"strings"

	"servicehub/internal/domain"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("profile not found")
	ErrValidation = errors.New("validation error")
	ErrForbidden  = errors.New("no provider profile")
)

type UpdateProfileRequest struct {
	FullName  string `json:"full_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	AvatarURL string `json:"avatar_url"`
}

type RolesResponse struct {
	Roles     []domain.Role `json:"roles"`
	Primary   domain.Role   `json:"primary_role"`
	Dashboard string        `json:"dashboard"`
}

type Service struct {
	profiles  ProfileRepository
	users     UserRepository
	providers ProviderRepository
	cache     CacheInvalidator
	log       zerolog.Logger
}

func NewService(profiles ProfileRepository, users UserRepository, providers ProviderRepository, cache CacheInvalidator, log zerolog.Logger) *Service {
	return &Service{profiles: profiles, users: users, providers: providers, cache: cache, log: log}
}

func (s *Service) Get(ctx context.Context, userID int64) (*domain.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Update rewrites the mutable profile fields. Email stays as issued at
// registration.
func (s *Service) Update(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.Profile, error) {
	if strings.TrimSpace(req.FullName) == "" {
		return nil, ErrValidation
	}

	p := &domain.Profile{
		UserID:    userID,
		FullName:  strings.TrimSpace(req.FullName),
		Phone:     strings.TrimSpace(req.Phone),
		Address:   strings.TrimSpace(req.Address),
		AvatarURL: strings.TrimSpace(req.AvatarURL),
	}
	if err := s.profiles.Update(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Get(ctx, userID)
}

// Roles resolves the user's role set and the dashboard their primary
// role selects. Dashboard choice never grants access by itself.
func (s *Service) Roles(ctx context.Context, userID int64) (*RolesResponse, error) {
	roles, err := s.users.GetRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	primary := domain.PrimaryRole(roles)
	return &RolesResponse{
		Roles:     roles,
		Primary:   primary,
		Dashboard: domain.DashboardPath(primary),
	}, nil
}

// SetOnline toggles the provider's live availability flag and drops the
// cached directory so the change shows immediately.
func (s *Service) SetOnline(ctx context.Context, userID int64, online bool) error {
	provider, err := s.providers.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrForbidden
		}
		return err
	}
	if err := s.providers.SetOnline(ctx, provider.ID, online); err != nil {
		return err
	}
	if err := s.cache.InvalidateProviders(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to invalidate provider cache")
	}
	return nil
}
