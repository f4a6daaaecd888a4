package roster

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/scoutbrief/internal/domain/model"
)

// LocalName is the Source recorded for rosters inferred from the scouting log.
const LocalName = "local"

// MatchRows is the slice of the scouting log the local strategy reads.
type MatchRows interface {
	Rows() []model.MatchObservation
}

// RowsAtFunc returns the scouting rows recorded for a match.
type RowsAtFunc func(match int) MatchRows

// Local infers a roster from the driver_station column of already-scouted rows.
type Local struct {
	rowsAt RowsAtFunc
}

// NewLocal creates a Local strategy reading rows through rowsAt.
func NewLocal(rowsAt RowsAtFunc) *Local {
	return &Local{rowsAt: rowsAt}
}

// Name implements Strategy.
func (l *Local) Name() string { return LocalName }

// Resolve buckets each row's team by the "red" or "blue" keyword in its driver
// station. Rows naming neither are ignored; repeated teams appear once.
func (l *Local) Resolve(_ context.Context, _ string, match int) (model.MatchRoster, error) {
	rows := l.rowsAt(match).Rows()
	if len(rows) == 0 {
		return model.MatchRoster{}, fmt.Errorf("%w: %d", ErrNoLocalRows, match)
	}

	r := model.MatchRoster{MatchNumber: match, Source: LocalName}
	seen := make(map[string]struct{}, len(rows))
	for _, o := range rows {
		if o.TeamID == "" {
			continue
		}
		if _, dup := seen[o.TeamID]; dup {
			continue
		}
		ds := strings.ToLower(o.DriverStation)
		switch {
		case strings.Contains(ds, string(model.Red)):
			r.Red = append(r.Red, o.TeamID)
		case strings.Contains(ds, string(model.Blue)):
			r.Blue = append(r.Blue, o.TeamID)
		default:
			continue
		}
		seen[o.TeamID] = struct{}{}
	}
	return r, nil
}
