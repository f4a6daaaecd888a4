package repository

import "errors"

// Sentinel kinds for scouting log errors. Both are fatal for a run.
var (
	// ErrDataUnavailable means the log is missing or is not readable as CSV.
	ErrDataUnavailable = errors.New("scouting data unavailable")
	// ErrSchema means the log lacks the match_number sequencing column.
	ErrSchema = errors.New("scouting data schema error")
)
