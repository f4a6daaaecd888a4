package service

import "errors"

// Sentinel kinds returned by the Service.
var (
	// ErrInvalidMatch means the requested match number is not positive.
	ErrInvalidMatch = errors.New("invalid match number")
	// ErrNotStarted means Start has not completed.
	ErrNotStarted = errors.New("service not started")
)
