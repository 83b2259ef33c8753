package admin

import "errors"

var (
	ErrValidation     = errors.New("validation error")
	ErrNotFound       = errors.New("provider not found")
	ErrAlreadyDecided = errors.New("provider verification already decided")
)
