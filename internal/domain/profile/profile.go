// Package profile computes point-in-time team performance summaries.
//
// Every function here is pure: callers pass the historic table they want a
// profile for, and nothing outside that table can influence the result.
package profile

import (
	"fmt"
	"math"

	"github.com/okian/scoutbrief/internal/domain/model"
)

// Source is the read surface profile computations need.
type Source interface {
	Rows() []model.MatchObservation
}

// zeroRate is the rate shown when a team has no history.
const zeroRate = "0%"

// Zero returns the profile of a team with no qualifying observations.
func Zero(teamID string) model.TeamProfile {
	return model.TeamProfile{
		TeamID:        teamID,
		ClimbRate:     zeroRate,
		AutoMovedRate: zeroRate,
	}
}

// Compute aggregates teamID's observations in historic. The team id is
// normalised the same way the scouting log is, so "frc254" and "254" match.
func Compute(teamID string, historic Source) model.TeamProfile {
	id := model.NormalizeTeamID(teamID)
	if id == "" {
		return Zero(teamID)
	}

	var (
		n                                        int
		autoCoral, teleCoral, l1, l4, algae, def float64
		climbs, moves                            int
	)
	for _, o := range historic.Rows() {
		if o.TeamID != id {
			continue
		}
		n++
		autoCoral += o.AutoCoralTotal()
		teleCoral += o.TeleCoralTotal()
		l1 += o.CoralAt(1)
		l4 += o.CoralAt(4)
		algae += o.AlgaeProcessed()
		def += o.DefenderRating
		if o.ClimbSuccess {
			climbs++
		}
		if o.AutoMoved {
			moves++
		}
	}
	if n == 0 {
		return Zero(id)
	}

	count := float64(n)
	return model.TeamProfile{
		TeamID:            id,
		Matches:           n,
		AvgAutoCoral:      round(autoCoral/count, 2),
		AvgTeleCoral:      round(teleCoral/count, 2),
		AvgCoralL1:        round(l1/count, 2),
		AvgCoralL4:        round(l4/count, 2),
		AvgAlgaeProcessed: round(algae/count, 2),
		AvgDefenderRating: round(def/count, 2),
		ClimbRate:         rate(climbs, n),
		AutoMovedRate:     rate(moves, n),
	}
}

// ComputeAll profiles every team against the same historic table, keeping
// the input order.
func ComputeAll(teamIDs []string, historic Source) []model.TeamProfile {
	out := make([]model.TeamProfile, 0, len(teamIDs))
	for _, id := range teamIDs {
		out = append(out, Compute(id, historic))
	}
	return out
}

// Outcome summarises what each observed team actually scored. It is used for
// post-match comparison only.
func Outcome(actual Source) []model.OutcomeSnapshot {
	rows := actual.Rows()
	if len(rows) == 0 {
		return nil
	}
	out := make([]model.OutcomeSnapshot, 0, len(rows))
	for _, o := range rows {
		out = append(out, model.OutcomeSnapshot{
			TeamID:         o.TeamID,
			CoralL4:        o.CoralAt(4),
			AlgaeProcessed: o.AlgaeProcessed(),
		})
	}
	return out
}

// rate formats hits/total as a percentage with one decimal place.
func rate(hits, total int) string {
	return fmt.Sprintf("%.1f%%", round(float64(hits)/float64(total)*100, 1))
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
