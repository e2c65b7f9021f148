package expansion

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/analysis"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/fleet"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/galaxy"
)

// DefaultMaxTargets bounds FindColonizationTargets when the caller passes 0.
const DefaultMaxTargets = 5

// ColonizationOrder pairs one colony-capable fleet with one target planet.
type ColonizationOrder struct {
	FleetID  int     `json:"fleet_id"`
	PlanetID int     `json:"planet_id"`
	Score    float64 `json:"score"`
	Distance float64 `json:"distance"`
}

// Planner scores colonization targets and matches colony-capable fleets to
// them.
type Planner struct {
	planetRepo galaxy.Repository
	fleetRepo  fleet.Repository
	oracle     fleet.Oracle
}

// NewPlanner creates an expansion planner.
func NewPlanner(planetRepo galaxy.Repository, fleetRepo fleet.Repository, oracle fleet.Oracle) *Planner {
	return &Planner{planetRepo: planetRepo, fleetRepo: fleetRepo, oracle: oracle}
}

// FindColonizationTargets scans the galaxy for settleable planets, ranked by
// score over distance. Targets beyond twice the player's maximum fleet range
// are discarded outright.
func (pl *Planner) FindColonizationTargets(ctx context.Context, gameID, playerID, max int) ([]analysis.ColonizationTarget, error) {
	if max <= 0 {
		max = DefaultMaxTargets
	}

	planets, err := pl.planetRepo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	fleets, err := pl.fleetRepo.ListByOwner(ctx, playerID)
	if err != nil {
		return nil, err
	}

	maxRange := 0.0
	for _, f := range fleets {
		if f.Range > maxRange {
			maxRange = f.Range
		}
	}

	var colonies []*galaxy.Planet
	for _, p := range planets {
		if p.IsOwnedBy(playerID) && p.IsColony() {
			colonies = append(colonies, p)
		}
	}

	var targets []analysis.ColonizationTarget
	for _, p := range planets {
		if p.IsColony() || p.Status == galaxy.PlanetHostile || p.OwnerID != nil {
			continue
		}
		distance := nearestColonyDistance(colonies, p)
		if distance > 2*maxRange {
			continue
		}
		targets = append(targets, analysis.ColonizationTarget{
			PlanetID:    p.ID,
			Name:        p.Name,
			Position:    p.Position,
			Score:       analysis.ScorePlanet(p),
			Distance:    distance,
			Reachable:   distance <= maxRange,
			NeedsTanker: distance > maxRange && distance <= 1.5*maxRange,
		})
	}

	sort.Slice(targets, func(i, j int) bool {
		return scoreOverDistance(targets[i]) > scoreOverDistance(targets[j])
	})
	if len(targets) > max {
		targets = targets[:max]
	}
	return targets, nil
}

// PlanColonization greedily pairs each available colony-capable fleet with
// the best reachable remaining target. Matched targets are removed so no
// target is assigned twice.
func (pl *Planner) PlanColonization(ctx context.Context, gameID, playerID int, targets []analysis.ColonizationTarget) ([]ColonizationOrder, error) {
	fleets, err := pl.fleetRepo.ListByOwner(ctx, playerID)
	if err != nil {
		return nil, err
	}

	var colonizers []*fleet.Fleet
	for _, f := range fleets {
		if f.CanColonize && f.IsAvailable() {
			colonizers = append(colonizers, f)
		}
	}

	remaining := make([]analysis.ColonizationTarget, len(targets))
	copy(remaining, targets)

	var orders []ColonizationOrder
	for _, f := range colonizers {
		matched := -1
		for i, target := range remaining {
			planet, err := pl.planetRepo.FindByID(ctx, target.PlanetID)
			if err != nil {
				continue
			}
			if ok, _ := pl.oracle.CanReach(f, planet); !ok {
				continue
			}
			matched = i
			orders = append(orders, ColonizationOrder{
				FleetID:  f.ID,
				PlanetID: target.PlanetID,
				Score:    target.Score,
				Distance: target.Distance,
			})
			break
		}
		if matched >= 0 {
			remaining = append(remaining[:matched], remaining[matched+1:]...)
		}
	}
	return orders, nil
}

func nearestColonyDistance(colonies []*galaxy.Planet, target *galaxy.Planet) float64 {
	if len(colonies) == 0 {
		return math.MaxFloat64
	}
	minDist := math.MaxFloat64
	for _, c := range colonies {
		if d := c.Position.DistanceTo(target.Position); d < minDist {
			minDist = d
		}
	}
	return minDist
}

func scoreOverDistance(t analysis.ColonizationTarget) float64 {
	d := t.Distance
	if d < 1 {
		d = 1
	}
	return t.Score / d
}

// String implements fmt.Stringer for order logging.
func (o ColonizationOrder) String() string {
	return fmt.Sprintf("fleet %d -> planet %d (score %.1f)", o.FleetID, o.PlanetID, o.Score)
}
