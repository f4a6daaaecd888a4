package repository

import (
	"sort"

	"github.com/okian/scoutbrief/internal/domain/model"
)

// Table is an immutable, match-ordered slice of observations.
type Table struct {
	rows    []model.MatchObservation
	skipped int
}

// NewTable builds a Table from rows, sorting them by match number. Rows that
// share a match number keep their input order.
func NewTable(rows []model.MatchObservation) *Table {
	cp := make([]model.MatchObservation, len(rows))
	copy(cp, rows)
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].MatchNumber < cp[j].MatchNumber })
	return &Table{rows: cp}
}

// Len returns the number of observations.
func (t *Table) Len() int { return len(t.rows) }

// Skipped returns the number of source rows dropped at load time.
func (t *Table) Skipped() int { return t.skipped }

// Rows returns a copy of the observations in match order.
func (t *Table) Rows() []model.MatchObservation {
	cp := make([]model.MatchObservation, len(t.rows))
	copy(cp, t.rows)
	return cp
}

// EventKey returns the event key of the first observation. Tables are assumed
// to cover a single event.
func (t *Table) EventKey() string {
	if len(t.rows) == 0 {
		return ""
	}
	return t.rows[0].EventKey
}

// MaxMatch returns the highest match number present, or 0 for an empty table.
func (t *Table) MaxMatch() int {
	if len(t.rows) == 0 {
		return 0
	}
	return t.rows[len(t.rows)-1].MatchNumber
}

// RowsBefore returns the observations with match number < n.
func (t *Table) RowsBefore(n int) *Table {
	return t.slice(0, t.lowerBound(n))
}

// RowsAt returns the observations with match number == n.
func (t *Table) RowsAt(n int) *Table {
	hi := sort.Search(len(t.rows), func(i int) bool { return t.rows[i].MatchNumber > n })
	return t.slice(t.lowerBound(n), hi)
}

// Teams returns the distinct team ids in first-seen order.
func (t *Table) Teams() []string {
	seen := make(map[string]struct{}, len(t.rows))
	var out []string
	for _, r := range t.rows {
		if _, ok := seen[r.TeamID]; ok || r.TeamID == "" {
			continue
		}
		seen[r.TeamID] = struct{}{}
		out = append(out, r.TeamID)
	}
	return out
}

// lowerBound is the index of the first row with match number >= n.
func (t *Table) lowerBound(n int) int {
	return sort.Search(len(t.rows), func(i int) bool { return t.rows[i].MatchNumber >= n })
}

func (t *Table) slice(from, to int) *Table {
	if from >= to {
		return &Table{}
	}
	cp := make([]model.MatchObservation, to-from)
	copy(cp, t.rows[from:to])
	return &Table{rows: cp}
}
