// Package prompt renders the briefing request sent to the narrative generator.
package prompt

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/okian/scoutbrief/internal/domain/model"
)

// DefaultRules is the Reefscape scoring and rules summary appended to every prompt.
//
//go:embed rules.txt
var DefaultRules string

// LoadRules returns the rules block stored at path, or DefaultRules when
// path is empty.
func LoadRules(path string) (string, error) {
	if path == "" {
		return DefaultRules, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read rules %q: %w", path, err)
	}
	rules := strings.TrimSpace(string(b))
	if rules == "" {
		return "", fmt.Errorf("rules file %q is empty", path)
	}
	return rules, nil
}

// Input is everything a briefing prompt is built from.
type Input struct {
	Match    int
	Alliance model.Alliance
	Roster   model.MatchRoster
	Red      []model.TeamProfile
	Blue     []model.TeamProfile
	// Rules replaces DefaultRules when non-empty.
	Rules string
}

// Build renders the prompt. The output depends only on in.
func Build(in Input) string {
	rules := in.Rules
	if rules == "" {
		rules = DefaultRules
	}
	us := in.Alliance.Upper()

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze Match %d for the 2025 FRC Game Reefscape.\n", in.Match)
	fmt.Fprintf(&b, "Red Alliance: %s\n", teamList(in.Roster.Red))
	fmt.Fprintf(&b, "Blue Alliance: %s\n\n", teamList(in.Roster.Blue))

	b.WriteString("Team Historical Stats (Prior to this match):\n")
	b.WriteString("--- RED ALLIANCE ---\n")
	writeProfiles(&b, in.Red)
	b.WriteString("\n--- BLUE ALLIANCE ---\n")
	writeProfiles(&b, in.Blue)

	b.WriteString("\nIMPORTANT GAME RULES & CONSTRAINTS:\n")
	b.WriteString(strings.TrimSpace(rules))
	b.WriteString("\n")

	fmt.Fprintf(&b, "\nCore Task: Recommend a winning strategy for the **%s ALLIANCE**.\n", us)
	fmt.Fprintf(&b, "1. Should %s prioritize securing Ranking Points (likely via 4+ Co-opertition/Coral thresholds or Climbing) or just maximizing total points for the Win? "+
		"Explain the trade-off based on their stats vs the opponents. If clear underdogs, prioritize RPs.\n", us)
	b.WriteString("2. **Defense Strategy**: Who on the opposing alliance is the biggest threat? Assign ONE robot to defend them if necessary, " +
		"considering the 1-defender rule. Who is the best defender on our alliance?\n")
	b.WriteString("3. **Scoring Focus**: precise balance of L1-L4 Coral cycling vs Algae Processing (removing Algae to enable scoring).\n")
	b.WriteString("Provide a concise, tactical response addressed to the Drive Coach.\n")
	fmt.Fprintf(&b, "Only focus on %s alliance for scoring strategy. Do not consider the opposing alliance unless we are talking about defence or who is going to win.\n", us)
	b.WriteString("Algae clearing is only needed for L2 and L3.\n")
	return b.String()
}

func teamList(teams []string) string {
	if len(teams) == 0 {
		return "(unknown)"
	}
	return strings.Join(teams, ", ")
}

func writeProfiles(b *strings.Builder, ps []model.TeamProfile) {
	for _, p := range ps {
		fmt.Fprintf(b, "Team %s: %s\n", p.TeamID, FormatProfile(p))
	}
}

// FormatProfile renders a profile as a single line of labelled values.
func FormatProfile(p model.TeamProfile) string {
	return fmt.Sprintf(
		"matches=%d, avg_auto_coral=%g, avg_tele_coral=%g, avg_coral_l1=%g, avg_coral_l4=%g, "+
			"avg_algae_processed=%g, avg_defender_rating=%g, climb_rate=%s, auto_moved_rate=%s",
		p.Matches, p.AvgAutoCoral, p.AvgTeleCoral, p.AvgCoralL1, p.AvgCoralL4,
		p.AvgAlgaeProcessed, p.AvgDefenderRating, p.ClimbRate, p.AutoMovedRate,
	)
}
