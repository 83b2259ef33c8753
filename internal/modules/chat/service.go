package chat

import (
	"context"
	"errors"
	"strings"

	"servicehub/internal/domain"
	"servicehub/internal/metrics"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const maxMessageLength = 4000

type Service struct {
	chats     ChatRepository
	bookings  BookingRepository
	providers ProviderRepository
	notifier  Notifier
	hub       *Hub
	log       zerolog.Logger
}

func NewService(chats ChatRepository, bookings BookingRepository, providers ProviderRepository, notifier Notifier, hub *Hub, log zerolog.Logger) *Service {
	return &Service{chats: chats, bookings: bookings, providers: providers, notifier: notifier, hub: hub, log: log}
}

// ConversationForBooking returns the booking's conversation for one of
// its participants. nil means the booking legitimately has none yet.
func (s *Service) ConversationForBooking(ctx context.Context, bookingID, viewerID int64) (*domain.Conversation, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	conv, err := s.chats.GetConversationByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		// Participant check falls back to the booking itself. Both the
		// customer and the provider get the valid "not yet chatting"
		// outcome, strangers get a denial.
		if b.UserID == viewerID {
			return nil, nil
		}
		p, err := s.providers.GetByID(ctx, b.ProviderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrForbidden
			}
			return nil, err
		}
		if p.UserID != viewerID {
			return nil, ErrForbidden
		}
		return nil, nil
	}
	if !conv.Participant(viewerID) {
		return nil, ErrForbidden
	}
	return conv, nil
}

func (s *Service) ListConversations(ctx context.Context, userID int64) ([]ConversationView, error) {
	convs, err := s.chats.ListConversations(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]ConversationView, 0, len(convs))
	for _, c := range convs {
		out = append(out, ConversationView{
			Conversation:  c,
			CounterpartID: c.CounterpartID(userID),
		})
	}
	return out, nil
}

// Messages returns the history and marks the counterpart's messages
// read, mirroring a client opening the thread.
func (s *Service) Messages(ctx context.Context, conversationID string, viewerID int64) ([]domain.Message, error) {
	conv, err := s.conversation(ctx, conversationID, viewerID)
	if err != nil {
		return nil, err
	}

	msgs, err := s.chats.ListMessages(ctx, conv.ID)
	if err != nil {
		return nil, err
	}
	if err := s.chats.MarkRead(ctx, conv.ID, viewerID); err != nil {
		s.log.Warn().Err(err).Str("conversation_id", conv.ID).Msg("mark read failed")
	}
	return msgs, nil
}

// SendMessage stores and fans out a message. Messaging is open only
// while the booking is accepted or in progress.
func (s *Service) SendMessage(ctx context.Context, conversationID string, senderID int64, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" || len(content) > maxMessageLength {
		return nil, ErrValidation
	}

	conv, err := s.conversation(ctx, conversationID, senderID)
	if err != nil {
		return nil, err
	}

	b, err := s.bookings.GetByID(ctx, conv.BookingID)
	if err != nil {
		return nil, err
	}
	if !b.Status.ChatEnabled() {
		return nil, ErrChatDisabled
	}

	msg := &domain.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Content:        content,
	}
	if err := s.chats.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	metrics.IncMessageSent()

	event := WSEvent{Type: "message", ConversationID: conv.ID, Message: msg}
	s.hub.BroadcastToConversation(conv.ID, event)

	counterpart := conv.CounterpartID(senderID)
	if !s.hub.IsOnline(counterpart) {
		s.notifier.Notify(ctx, counterpart, domain.NotifyNewMessage,
			"New message", "You have a new message", &conv.BookingID)
	}

	return msg, nil
}

// MarkRead is idempotent; only the counterpart's messages flip.
func (s *Service) MarkRead(ctx context.Context, conversationID string, readerID int64) error {
	conv, err := s.conversation(ctx, conversationID, readerID)
	if err != nil {
		return err
	}
	if err := s.chats.MarkRead(ctx, conv.ID, readerID); err != nil {
		return err
	}
	s.hub.BroadcastToConversation(conv.ID, WSEvent{
		Type:           "read",
		ConversationID: conv.ID,
		ReaderID:       readerID,
	})
	return nil
}

func (s *Service) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.chats.UnreadCount(ctx, userID)
}

// Subscribe attaches a connected user to a conversation stream after a
// participant check.
func (s *Service) Subscribe(ctx context.Context, conversationID string, userID int64) error {
	if _, err := s.conversation(ctx, conversationID, userID); err != nil {
		return err
	}
	s.hub.Subscribe(userID, conversationID)
	return nil
}

func (s *Service) Unsubscribe(userID int64, conversationID string) {
	s.hub.Unsubscribe(userID, conversationID)
}

func (s *Service) conversation(ctx context.Context, conversationID string, userID int64) (*domain.Conversation, error) {
	conv, err := s.chats.GetConversation(ctx, conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !conv.Participant(userID) {
		return nil, ErrForbidden
	}
	return conv, nil
}
