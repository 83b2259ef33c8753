package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"servicehub/internal/domain"
	"servicehub/internal/pkg/jwt"
	"servicehub/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	users      UserRepository
	profiles   ProfileRepository
	providers  ProviderRepository
	tokens     RefreshTokenRepository
	jwt        *jwt.Service
	refreshTTL time.Duration
	log        zerolog.Logger
}

func NewService(
	users UserRepository,
	profiles ProfileRepository,
	providers ProviderRepository,
	tokens RefreshTokenRepository,
	jwtService *jwt.Service,
	refreshTTL time.Duration,
	log zerolog.Logger,
) *Service {
	return &Service{
		users:      users,
		profiles:   profiles,
		providers:  providers,
		tokens:     tokens,
		jwt:        jwtService,
		refreshTTL: refreshTTL,
		log:        log,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || len(req.Password) < 8 || strings.TrimSpace(req.FullName) == "" {
		return nil, ErrValidation
	}
	if req.AsProvider && strings.TrimSpace(req.BusinessName) == "" {
		return nil, ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{Email: email, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, u); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if err := s.profiles.Create(ctx, &domain.Profile{
		UserID:   u.ID,
		Email:    email,
		FullName: strings.TrimSpace(req.FullName),
		Phone:    strings.TrimSpace(req.Phone),
	}); err != nil {
		return nil, err
	}

	if err := s.users.AddRole(ctx, u.ID, domain.RoleUser); err != nil {
		return nil, err
	}

	roles := []domain.Role{domain.RoleUser}
	if req.AsProvider {
		if err := s.users.AddRole(ctx, u.ID, domain.RoleServiceProvider); err != nil {
			return nil, err
		}
		if err := s.providers.Create(ctx, &domain.Provider{
			UserID:             u.ID,
			BusinessName:       strings.TrimSpace(req.BusinessName),
			Location:           strings.TrimSpace(req.Location),
			VerificationStatus: domain.VerificationPending,
		}); err != nil {
			return nil, err
		}
		roles = append(roles, domain.RoleServiceProvider)
	}

	pair, err := s.issueTokens(ctx, u.ID, uuid.NewString())
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", u.ID).Bool("as_provider", req.AsProvider).Msg("user registered")

	return &AuthResponse{
		Tokens:    *pair,
		User:      u,
		Roles:     roles,
		Dashboard: domain.DashboardPath(domain.PrimaryRole(roles)),
	}, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	roles, err := s.users.GetRoles(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	pair, err := s.issueTokens(ctx, u.ID, uuid.NewString())
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Tokens:    *pair,
		User:      u,
		Roles:     roles,
		Dashboard: domain.DashboardPath(domain.PrimaryRole(roles)),
	}, nil
}

// Refresh rotates the refresh token. Presenting an already-rotated
// token is treated as theft and revokes the whole family.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	stored, err := s.tokens.GetByHash(ctx, repository.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}

	if stored.Revoked {
		_ = s.tokens.RevokeFamily(ctx, stored.Family)
		s.log.Warn().Int64("user_id", stored.UserID).Msg("revoked refresh token replayed, family revoked")
		return nil, ErrInvalidRefresh
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, ErrInvalidRefresh
	}

	if err := s.tokens.Revoke(ctx, stored.ID); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, stored.UserID, stored.Family)
}

func (s *Service) Me(ctx context.Context, userID int64) (*MeResponse, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	roles, err := s.users.GetRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	primary := domain.PrimaryRole(roles)
	return &MeResponse{
		User:      u,
		Profile:   profile,
		Roles:     roles,
		Primary:   primary,
		Dashboard: domain.DashboardPath(primary),
	}, nil
}

func (s *Service) issueTokens(ctx context.Context, userID int64, family string) (*TokenPair, error) {
	access, err := s.jwt.GenerateToken(userID)
	if err != nil {
		return nil, err
	}

	refresh := uuid.NewString()
	if err := s.tokens.Create(ctx, &domain.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		TokenHash: repository.HashToken(refresh),
		Family:    family,
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
