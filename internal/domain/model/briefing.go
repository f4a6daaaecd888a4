package model

import "strings"

// Alliance identifies one side of a match.
type Alliance string

// Alliances.
const (
	Red  Alliance = "red"
	Blue Alliance = "blue"
)

// ParseAlliance normalises loose user input. "red" and "r" select red;
// everything else, including empty input, selects blue.
func ParseAlliance(s string) Alliance {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red", "r":
		return Red
	default:
		return Blue
	}
}

// Opponent returns the other alliance.
func (a Alliance) Opponent() Alliance {
	if a == Red {
		return Blue
	}
	return Red
}

// Upper returns the alliance name in capitals, as used in briefings.
func (a Alliance) Upper() string { return strings.ToUpper(string(a)) }

// TeamProfile is a team's aggregate performance before a cutoff match.
type TeamProfile struct {
	TeamID            string  `json:"team"`
	Matches           int     `json:"matches"`
	AvgAutoCoral      float64 `json:"avg_auto_coral"`
	AvgTeleCoral      float64 `json:"avg_tele_coral"`
	AvgCoralL1        float64 `json:"avg_coral_l1"`
	AvgCoralL4        float64 `json:"avg_coral_l4"`
	AvgAlgaeProcessed float64 `json:"avg_algae_processed"`
	AvgDefenderRating float64 `json:"avg_defender_rating"`
	ClimbRate         string  `json:"climb_rate"`
	AutoMovedRate     string  `json:"auto_moved_rate"`
}

// MatchRoster lists the teams on each alliance for one match.
type MatchRoster struct {
	MatchNumber int      `json:"match"`
	Red         []string `json:"red"`
	Blue        []string `json:"blue"`
	Source      string   `json:"source"`
}

// Teams returns the roster for one alliance.
func (r MatchRoster) Teams(a Alliance) []string {
	if a == Red {
		return r.Red
	}
	return r.Blue
}

// Empty reports whether neither alliance has any team.
func (r MatchRoster) Empty() bool { return len(r.Red) == 0 && len(r.Blue) == 0 }

// OutcomeSnapshot is what a team actually did in the target match.
type OutcomeSnapshot struct {
	TeamID         string  `json:"team"`
	CoralL4        float64 `json:"coral_l4"`
	AlgaeProcessed float64 `json:"algae_processed"`
}

// Briefing is the assembled pre-match report.
type Briefing struct {
	ID             string            `json:"id"`
	MatchNumber    int               `json:"match"`
	EventKey       string            `json:"event_key"`
	Alliance       Alliance          `json:"alliance"`
	Opponent       Alliance          `json:"opponent"`
	Roster         MatchRoster       `json:"roster"`
	FallbackUsed   bool              `json:"fallback_used"`
	HistoricCutoff int               `json:"historic_cutoff"`
	RedProfiles    []TeamProfile     `json:"red_profiles"`
	BlueProfiles   []TeamProfile     `json:"blue_profiles"`
	Prompt         string            `json:"-"`
	Recommendation string            `json:"recommendation"`
	NarrativeError bool              `json:"narrative_error"`
	Actual         []OutcomeSnapshot `json:"actual,omitempty"`
}
