package chat

import "servicehub/internal/domain"

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// WSEvent is the frame pushed to websocket subscribers.
type WSEvent struct {
	Type           string          `json:"type"` // "message" | "read"
	ConversationID string          `json:"conversation_id"`
	Message        *domain.Message `json:"message,omitempty"`
	ReaderID       int64           `json:"reader_id,omitempty"`
}

// WSCommand is the frame received from websocket clients.
type WSCommand struct {
	Action         string `json:"action"` // "subscribe" | "unsubscribe" | "send"
	ConversationID string `json:"conversation_id"`
	Content        string `json:"content,omitempty"`
}

type ConversationView struct {
	domain.Conversation
	CounterpartID int64 `json:"counterpart_id"`
}
