package repository

import (
	"context"
	"errors"
	"time"

	"servicehub/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

type conversationModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	BookingID  int64     `gorm:"column:booking_id;uniqueIndex"`
	UserID     int64     `gorm:"column:user_id;index"`
	ProviderID int64     `gorm:"column:provider_id;index"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (conversationModel) TableName() string { return "conversations" }

type messageModel struct {
	ID             string    `gorm:"column:id;primaryKey"`
	ConversationID string    `gorm:"column:conversation_id;index"`
	SenderID       int64     `gorm:"column:sender_id"`
	Content        string    `gorm:"column:content"`
	IsRead         bool      `gorm:"column:is_read"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (messageModel) TableName() string { return "messages" }

func toDomainConversation(m conversationModel) *domain.Conversation {
	return &domain.Conversation{
		ID:         m.ID,
		BookingID:  m.BookingID,
		UserID:     m.UserID,
		ProviderID: m.ProviderID,
		CreatedAt:  m.CreatedAt,
	}
}

func toDomainMessage(m messageModel) domain.Message {
	return domain.Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt,
	}
}

// CreateConversation inserts the conversation for a booking. The unique
// index on booking_id makes the operation idempotent: on a duplicate the
// existing row is returned instead of an error.
func (r *ChatRepository) CreateConversation(ctx context.Context, c *domain.Conversation) error {
	m := conversationModel{
		ID:         uuid.NewString(),
		BookingID:  c.BookingID,
		UserID:     c.UserID,
		ProviderID: c.ProviderID,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if IsUniqueViolation(err) {
			existing, gerr := r.GetConversationByBooking(ctx, c.BookingID)
			if gerr != nil {
				return gerr
			}
			if existing != nil {
				*c = *existing
				return nil
			}
		}
		return err
	}
	*c = *toDomainConversation(m)
	return nil
}

// GetConversationByBooking returns nil, nil when no conversation exists
// yet. A pending booking legitimately has none.
func (r *ChatRepository) GetConversationByBooking(ctx context.Context, bookingID int64) (*domain.Conversation, error) {
	var m conversationModel
	tx := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return toDomainConversation(m), nil
}

func (r *ChatRepository) GetConversation(ctx context.Context, id string) (*domain.Conversation, error) {
	var m conversationModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainConversation(m), nil
}

// ListConversations returns every conversation the user participates in,
// most recently created first.
func (r *ChatRepository) ListConversations(ctx context.Context, userID int64) ([]domain.Conversation, error) {
	var rows []conversationModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? OR provider_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Conversation, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainConversation(m))
	}
	return out, nil
}

func (r *ChatRepository) CreateMessage(ctx context.Context, msg *domain.Message) error {
	m := messageModel{
		ID:             uuid.NewString(),
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		Content:        msg.Content,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*msg = toDomainMessage(m)
	return nil
}

// ListMessages returns the conversation's messages oldest first.
func (r *ChatRepository) ListMessages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	var rows []messageModel
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Message, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainMessage(m))
	}
	return out, nil
}

// MarkRead flags the counterpart's messages as read. The reader's own
// messages are never touched, so repeated calls are harmless.
func (r *ChatRepository) MarkRead(ctx context.Context, conversationID string, readerID int64) error {
	return r.db.WithContext(ctx).
		Model(&messageModel{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, readerID, false).
		Update("is_read", true).Error
}

// UnreadCount counts messages addressed to the user across all of their
// conversations.
func (r *ChatRepository) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&messageModel{}).
		Joins("JOIN conversations ON conversations.id = messages.conversation_id").
		Where("(conversations.user_id = ? OR conversations.provider_id = ?)", userID, userID).
		Where("messages.sender_id <> ? AND messages.is_read = ?", userID, false).
		Count(&n).Error
	return n, err
}
