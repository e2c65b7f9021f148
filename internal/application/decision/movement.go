package decision

import (
	"context"
	"sort"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/analysis"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/expansion"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/ai"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/fleet"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/galaxy"
)

// Planning bounds per turn.
const (
	maxThreatsHandled = 3
	maxAttacksPlanned = 3
)

// MovementPlanner decides fleet reassignments for one computer player's
// turn. It only plans; execution is a separate explicit command. Each fleet
// is consumed from the available pool at most once per turn.
type MovementPlanner struct {
	planetRepo galaxy.Repository
	planner    *expansion.Planner
}

// NewMovementPlanner creates the fleet-movement planning stage.
func NewMovementPlanner(planetRepo galaxy.Repository, planner *expansion.Planner) *MovementPlanner {
	return &MovementPlanner{planetRepo: planetRepo, planner: planner}
}

// Plan builds the turn's movement decisions: defense first, then
// colonization, then attack.
func (mp *MovementPlanner) Plan(
	ctx context.Context,
	gameID, playerID, turn int,
	a *analysis.GameAnalysis,
	ownFleets []*fleet.Fleet,
	mods ai.Modifiers,
) ([]FleetMovement, []expansion.ColonizationOrder, error) {
	available := make(map[int]*fleet.Fleet)
	for _, f := range ownFleets {
		if f.IsAvailable() {
			available[f.ID] = f
		}
	}

	var movements []FleetMovement

	defense, err := mp.planDefense(ctx, turn, a, available)
	if err != nil {
		return nil, nil, err
	}
	movements = append(movements, defense...)

	var colonizations []expansion.ColonizationOrder
	if mods.ExplorationPriority > 0.5 {
		colonizations, err = mp.planner.PlanColonization(ctx, gameID, playerID, reachableTargets(a.ColonizationTargets))
		if err != nil {
			return nil, nil, err
		}
		// Colonizing fleets leave the pool.
		for _, order := range colonizations {
			if f, ok := available[order.FleetID]; ok {
				movements = append(movements, FleetMovement{
					FleetID:             order.FleetID,
					DestinationPlanetID: order.PlanetID,
					Purpose:             MovementColonize,
					ArrivalTurn:         turn + f.TravelTurns(order.Distance),
				})
				delete(available, order.FleetID)
			}
		}
	}

	attacks, err := mp.planAttacks(ctx, turn, a, available, mods)
	if err != nil {
		return nil, nil, err
	}
	movements = append(movements, attacks...)

	return movements, colonizations, nil
}

// planDefense reassigns fleets to the most urgent threatened planets when
// they can arrive before the attacker does.
func (mp *MovementPlanner) planDefense(
	ctx context.Context,
	turn int,
	a *analysis.GameAnalysis,
	available map[int]*fleet.Fleet,
) ([]FleetMovement, error) {
	var movements []FleetMovement

	threats := a.Threats
	if len(threats) > maxThreatsHandled {
		threats = threats[:maxThreatsHandled]
	}

	for _, threat := range threats {
		target, err := mp.planetRepo.FindByID(ctx, threat.TargetPlanetID)
		if err != nil {
			continue
		}
		for _, id := range sortedFleetIDs(available) {
			f := available[id]
			origin, err := mp.planetRepo.FindByID(ctx, f.CurrentPlanetID)
			if err != nil {
				continue
			}
			travel := f.TravelTurns(origin.Position.DistanceTo(target.Position))
			if travel < 0 || turn+travel > threat.ArrivalTurn {
				continue
			}
			movements = append(movements, FleetMovement{
				FleetID:             id,
				DestinationPlanetID: target.ID,
				Purpose:             MovementDefense,
				ArrivalTurn:         turn + travel,
			})
			delete(available, id)
			break
		}
	}
	return movements, nil
}

// planAttacks sends force at the best opportunities when the assembled
// power clears the difficulty's attack threshold.
func (mp *MovementPlanner) planAttacks(
	ctx context.Context,
	turn int,
	a *analysis.GameAnalysis,
	available map[int]*fleet.Fleet,
	mods ai.Modifiers,
) ([]FleetMovement, error) {
	var movements []FleetMovement

	opportunities := a.Opportunities
	if len(opportunities) > maxAttacksPlanned {
		opportunities = opportunities[:maxAttacksPlanned]
	}

	for _, opp := range opportunities {
		required := opp.DefensePower * mods.AttackThreshold

		// Strongest first so single-fleet strikes use the heaviest hitter.
		candidates := make([]*fleet.Fleet, 0, len(available))
		for _, f := range available {
			candidates = append(candidates, f)
		}
		sort.Slice(candidates, func(i, j int) bool {
			if candidates[i].Power() != candidates[j].Power() {
				return candidates[i].Power() > candidates[j].Power()
			}
			return candidates[i].ID < candidates[j].ID
		})

		var strike []*fleet.Fleet
		power := 0.0
		for _, f := range candidates {
			strike = append(strike, f)
			power += float64(f.Power())
			if power >= required {
				break
			}
			if !mods.CanCoordinateAttacks {
				// Single-fleet doctrine: the heaviest fleet must qualify alone.
				break
			}
		}
		if power < required || len(strike) == 0 {
			continue
		}

		target, err := mp.planetRepo.FindByID(ctx, opp.PlanetID)
		if err != nil {
			continue
		}
		for _, f := range strike {
			origin, err := mp.planetRepo.FindByID(ctx, f.CurrentPlanetID)
			if err != nil {
				continue
			}
			travel := f.TravelTurns(origin.Position.DistanceTo(target.Position))
			if travel < 0 {
				continue
			}
			movements = append(movements, FleetMovement{
				FleetID:             f.ID,
				DestinationPlanetID: target.ID,
				Purpose:             MovementAttack,
				ArrivalTurn:         turn + travel,
			})
			delete(available, f.ID)
		}
	}
	return movements, nil
}

func sortedFleetIDs(available map[int]*fleet.Fleet) []int {
	ids := make([]int, 0, len(available))
	for id := range available {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func reachableTargets(targets []analysis.ColonizationTarget) []analysis.ColonizationTarget {
	var reachable []analysis.ColonizationTarget
	for _, t := range targets {
		if t.Reachable {
			reachable = append(reachable, t)
		}
	}
	return reachable
}
