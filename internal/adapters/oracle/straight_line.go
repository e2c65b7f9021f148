// Package oracle provides the default reachability and defense predictor.
// Battle resolution itself lives outside the engine; this adapter only
// answers the two questions the planners ask.
package oracle

import (
	"context"
	"fmt"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/fleet"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/galaxy"
)

// GarrisonPerMillion is the defense power a colony's population contributes
// per million inhabitants, on top of stationed fleets.
const GarrisonPerMillion = 5.0

// StraightLineOracle implements fleet.Oracle with euclidean distances and a
// population-derived garrison term.
type StraightLineOracle struct {
	planetRepo galaxy.Repository
}

// NewStraightLineOracle creates the default oracle
func NewStraightLineOracle(planetRepo galaxy.Repository) *StraightLineOracle {
	return &StraightLineOracle{planetRepo: planetRepo}
}

// CanReach reports whether the fleet can reach the planet from its current
// station without tanker support.
func (o *StraightLineOracle) CanReach(f *fleet.Fleet, target *galaxy.Planet) (bool, string) {
	if !f.IsAvailable() {
		return false, "fleet is in transit"
	}
	if f.Speed <= 0 {
		return false, "fleet cannot move"
	}

	origin, err := o.planetRepo.FindByID(context.Background(), f.CurrentPlanetID)
	if err != nil {
		return false, fmt.Sprintf("unknown origin planet %d", f.CurrentPlanetID)
	}
	distance := origin.Position.DistanceTo(target.Position)
	if distance > f.Range {
		return false, fmt.Sprintf("target at %.1f exceeds range %.1f", distance, f.Range)
	}
	return true, ""
}

// PredictDefensePower estimates the force defending a planet: stationed
// fleet power plus the population garrison.
func (o *StraightLineOracle) PredictDefensePower(planet *galaxy.Planet, stationed []*fleet.Fleet) float64 {
	power := 0.0
	for _, f := range stationed {
		power += float64(f.Power())
	}
	if planet.IsColony() {
		power += float64(planet.Population) / 1_000_000 * GarrisonPerMillion
	}
	return power
}
