package chat

import "errors"

var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("conversation not found")
	ErrForbidden    = errors.New("not a conversation participant")
	ErrChatDisabled = errors.New("chat disabled for booking status")
)
