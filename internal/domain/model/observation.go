// Package model contains domain models passed between layers.
package model

// Scoring levels on the reef, L1 (trough) through L4.
const ReefLevels = 4

// MatchObservation is one scouted (team, match) row after normalisation.
type MatchObservation struct {
	MatchNumber   int    // sequencing key
	TeamID        string // digits only, e.g. "254"
	EventKey      string // competition instance, e.g. "2025txwac"
	DriverStation string // raw text such as "Red 1"

	AutoCoral          [ReefLevels]float64 // auto coral per level, index 0 = L1
	TeleCoral          [ReefLevels]float64 // teleop coral per level
	AutoAlgaeProcessor float64
	TeleAlgaeProcessor float64
	DefenderRating     float64

	ClimbSuccess bool
	AutoMoved    bool
}

// AutoCoralTotal sums autonomous coral across all levels.
func (o MatchObservation) AutoCoralTotal() float64 {
	var sum float64
	for _, v := range o.AutoCoral {
		sum += v
	}
	return sum
}

// TeleCoralTotal sums teleop coral across all levels.
func (o MatchObservation) TeleCoralTotal() float64 {
	var sum float64
	for _, v := range o.TeleCoral {
		sum += v
	}
	return sum
}

// CoralAt returns auto+teleop coral at level (1-based).
func (o MatchObservation) CoralAt(level int) float64 {
	if level < 1 || level > ReefLevels {
		return 0
	}
	return o.AutoCoral[level-1] + o.TeleCoral[level-1]
}

// AlgaeProcessed returns auto+teleop algae scored in the processor.
func (o MatchObservation) AlgaeProcessed() float64 {
	return o.AutoAlgaeProcessor + o.TeleAlgaeProcessor
}
