package apperrors

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrInvalidQuality    = errors.New("quality must be between 0 and 5")
	ErrNoNightInProgress = errors.New("no night in progress")
	ErrNightInProgress   = errors.New("night is still in progress")
)
