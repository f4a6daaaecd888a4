package tba

import "errors"

// Sentinel kinds for The Blue Alliance lookups.
var (
	// ErrNotConfigured means no API key was supplied.
	ErrNotConfigured = errors.New("tba client not configured")
	// ErrNotScheduled means the match is not in the published schedule.
	ErrNotScheduled = errors.New("match not scheduled")
	// ErrRemote covers transport failures and unexpected responses.
	ErrRemote = errors.New("tba request failed")
)
