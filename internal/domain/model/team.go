package model

import "strings"

// NormalizeTeamID reduces a team reference such as "frc254", "FRC254",
// " 254 " or "254.0" to its numeric part ("254"). Identifiers stay strings so
// comparisons never depend on numeric parsing. Input without digits yields "".
func NormalizeTeamID(raw string) string {
	s := strings.TrimSpace(raw)
	start := strings.IndexFunc(s, isDigit)
	if start < 0 {
		return ""
	}
	s = s[start:]
	end := strings.IndexFunc(s, func(r rune) bool { return !isDigit(r) })
	if end >= 0 {
		s = s[:end]
	}
	return s
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
