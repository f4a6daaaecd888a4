package repository

import (
	"math"
	"strconv"
	"strings"
)

// Column names in the scouting export.
const (
	colMatchNumber   = "match_number"
	colEventKey      = "event_key"
	colDriverStation = "driver_station"
	colClimb         = "tele_climb_speed"
	colAutoMoved     = "auto_moved"
	colAutoAlgae     = "auto_algae_processor"
	colTeleAlgae     = "tele_algae_processor"
	colDefender      = "defender_rating"
)

var (
	teamColumns  = []string{"frc_team", "team", "team_number", "team_id"}
	climbColumns = []string{colClimb, "climb"}

	autoCoralColumns = [...]string{"auto_coral_l1", "auto_coral_l2", "auto_coral_l3", "auto_coral_l4"}
	teleCoralColumns = [...]string{"tele_coral_l1", "tele_coral_l2", "tele_coral_l3", "tele_coral_l4"}
)

// Climb descriptions that mean the robot did not climb. Compared after
// trimming and lower-casing.
var noClimb = map[string]struct{}{
	"":           {},
	"no":         {},
	"no attempt": {},
	"0":          {},
	"nan":        {},
	"none":       {},
	"null":       {},
}

// ParseClimb reports whether a climb description counts as a climb. Any text
// other than an explicit "did not climb" token counts, whatever the speed tier.
func ParseClimb(raw string) bool {
	_, failed := noClimb[normalizeText(raw)]
	return !failed
}

// ParseAutoMoved reports whether the auto-move cell is exactly "yes".
func ParseAutoMoved(raw string) bool {
	return normalizeText(raw) == "yes"
}

// ParseMetric coerces a metric cell to a non-negative number. Unparseable,
// blank, non-finite and negative values read as zero.
func ParseMetric(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// parseMatchNumber accepts "12" and spreadsheet-style "12.0"; ok is false for
// anything that is not a positive whole number.
func parseMatchNumber(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(s); err == nil {
		return n, n > 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || f < 1 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func normalizeText(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func normalizeHeader(raw string) string {
	return normalizeText(strings.TrimPrefix(raw, "\ufeff"))
}
