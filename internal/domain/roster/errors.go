package roster

import "errors"

// Sentinel kinds for roster resolution.
var (
	// ErrRosterUnavailable means no strategy in the chain identified the teams.
	ErrRosterUnavailable = errors.New("roster unavailable")
	// ErrNoLocalRows means the scouting log has no rows for the match.
	ErrNoLocalRows = errors.New("no scouting rows for match")
)
