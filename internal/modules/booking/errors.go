package booking

import "errors"

var (
	ErrValidation          = errors.New("validation error")
	ErrNotFound            = errors.New("booking not found")
	ErrForbidden           = errors.New("actor may not perform this transition")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrProviderNotVerified = errors.New("provider not verified")
	ErrNotAvailable        = errors.New("provider not available at requested time")
)
