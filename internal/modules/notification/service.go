package notification

import (
	"context"

	"servicehub/internal/domain"

	"github.com/rs/zerolog"
)

type Service struct {
	repo NotificationRepository
	log  zerolog.Logger
}

func NewService(repo NotificationRepository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Notify records a notification for the user. Failures are logged but
// never propagated; a lost notification must not fail the operation
// that triggered it.
func (s *Service) Notify(ctx context.Context, userID int64, ntype domain.NotificationType, title, message string, referenceID *int64) {
	n := &domain.Notification{
		UserID:      userID,
		Type:        ntype,
		Title:       title,
		Message:     message,
		ReferenceID: referenceID,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		s.log.Error().Err(err).
			Int64("user_id", userID).
			Str("type", string(ntype)).
			Msg("failed to create notification")
	}
}

func (s *Service) List(ctx context.Context, userID int64, limit int) ([]domain.Notification, error) {
	return s.repo.ListByUser(ctx, userID, limit)
}

func (s *Service) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.repo.UnreadCount(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, id, userID int64) error {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *Service) MarkAllRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllRead(ctx, userID)
}
