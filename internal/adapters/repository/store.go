// Package repository loads the scouting log and serves point-in-time views of it.
package repository

// Store is the read surface of the loaded scouting table. Implementations are
// immutable after construction, so callers may share them without locking.
type Store interface {
	// RowsBefore returns every observation with a match number strictly below n.
	RowsBefore(n int) *Table
	// RowsAt returns every observation recorded for match n.
	RowsAt(n int) *Table
	// EventKey returns the event key of the first observation.
	EventKey() string
	// Len returns the number of observations.
	Len() int
}

var _ Store = (*Table)(nil)
