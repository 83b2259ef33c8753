package directory

import "errors"

var (
	ErrNotFound    = errors.New("provider not found")
	ErrNotVerified = errors.New("provider not verified")
)
