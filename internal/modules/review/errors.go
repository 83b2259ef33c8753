package review

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("booking not found")
	ErrForbidden       = errors.New("only the customer of a completed booking may review")
	ErrNotCompleted    = errors.New("booking not completed")
	ErrAlreadyReviewed = errors.New("booking already reviewed")
)
