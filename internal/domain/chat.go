package domain

import "time"

// Conversation is the single messaging thread scoped to one booking.
// It comes into existence when the booking is accepted.
type Conversation struct {
	ID         string    `json:"id"`
	BookingID  int64     `json:"booking_id"`
	UserID     int64     `json:"user_id"`
	ProviderID int64     `json:"provider_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Participant reports whether userID is one of the two parties.
func (c *Conversation) Participant(userID int64) bool {
	return c.UserID == userID || c.ProviderID == userID
}

// CounterpartID returns the other party's user id.
func (c *Conversation) CounterpartID(userID int64) int64 {
	if userID == c.UserID {
		return c.ProviderID
	}
	return c.UserID
}

// Message is append-only; the only mutation is the read flag,
// flipped by the reader for messages they did not author.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       int64     `json:"sender_id"`
	Content        string    `json:"content"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}
