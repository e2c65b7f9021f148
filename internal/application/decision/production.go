package decision

import (
	"context"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/analysis"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/common"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/fleet"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/galaxy"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/game"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/player"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/production"
)

// Best-capacity planet thresholds.
const (
	shipyardMinShipsBudget = 20
	shipyardMinPopulation  = 5_000
)

// ProductionPlanner queues at most one build per player per turn, in fixed
// priority order, after verifying full affordability.
type ProductionPlanner struct {
	designRepo production.DesignRepository
	queueRepo  production.QueueRepository
}

// NewProductionPlanner creates the production planning stage.
func NewProductionPlanner(designRepo production.DesignRepository, queueRepo production.QueueRepository) *ProductionPlanner {
	return &ProductionPlanner{designRepo: designRepo, queueRepo: queueRepo}
}

// Plan ensures default designs exist, picks the single most pressing
// production need, checks affordability and queue capacity, and queues the
// build. Returns nil when nothing is queued this turn.
func (pp *ProductionPlanner) Plan(
	ctx context.Context,
	p *player.Player,
	a *analysis.GameAnalysis,
	ownFleets []*fleet.Fleet,
	turn int,
) (*ProductionDecision, error) {
	designs, err := pp.ensureDesigns(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	unfinished, err := pp.queueRepo.ListUnfinishedByPlayer(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	queueDepth := make(map[int]int)
	queuedCategories := make(map[production.Category]bool)
	designByID := make(map[int]*production.Design, len(designs))
	for _, d := range designs {
		designByID[d.ID] = d
	}
	for _, item := range unfinished {
		queueDepth[item.PlanetID]++
		if d, ok := designByID[item.DesignID]; ok {
			queuedCategories[d.Category] = true
		}
	}

	need := pp.pickNeed(a, ownFleets, queuedCategories)
	if need == "" {
		return nil, nil
	}

	var design *production.Design
	for _, d := range designs {
		if d.Category == need {
			design = d
			break
		}
	}
	if design == nil {
		return nil, nil
	}

	money, metal := design.NextCost()
	if res := p.Spend(money, metal); !res.OK {
		common.LoggerFromContext(ctx).Log("debug", "build unaffordable", map[string]interface{}{
			"player_id": p.ID,
			"category":  string(need),
			"reason":    res.Message,
		})
		return nil, nil
	}

	planet := bestCapacityPlanet(a.OwnedPlanets)
	if planet == nil || queueDepth[planet.ID] >= production.MaxQueueDepthPerPlanet {
		// No yard available: refund and skip the turn's build.
		p.Money += money
		p.Metal += metal
		return nil, nil
	}

	item := production.NewQueueItem(p.ID, planet.ID, design.ID, turn)
	if err := pp.queueRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	design.PrototypeBuilt = true
	if err := pp.designRepo.Save(ctx, design); err != nil {
		return nil, err
	}

	return &ProductionDecision{
		Category: need,
		DesignID: design.ID,
		PlanetID: planet.ID,
		Money:    money,
		Metal:    metal,
	}, nil
}

// ensureDesigns guarantees the player owns at least one design per category.
func (pp *ProductionPlanner) ensureDesigns(ctx context.Context, playerID int) ([]*production.Design, error) {
	designs, err := pp.designRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	have := make(map[production.Category]bool)
	for _, d := range designs {
		have[d.Category] = true
	}
	for _, category := range production.Categories {
		if have[category] {
			continue
		}
		d := production.DefaultDesign(playerID, category)
		if err := pp.designRepo.Save(ctx, d); err != nil {
			return nil, err
		}
		designs = append(designs, d)
	}
	return designs, nil
}

// pickNeed selects at most one production need per turn, in fixed priority
// order: colonization, combat, scouting, defense.
func (pp *ProductionPlanner) pickNeed(
	a *analysis.GameAnalysis,
	ownFleets []*fleet.Fleet,
	queued map[production.Category]bool,
) production.Category {
	hasColonizer := false
	for _, f := range ownFleets {
		if f.CanColonize {
			hasColonizer = true
			break
		}
	}
	if a.NeedsExpansion && !hasColonizer && !queued[production.CategoryColony] {
		return production.CategoryColony
	}
	if a.UnderThreat() || len(a.Opportunities) > 0 {
		return production.CategoryCombat
	}
	if a.Phase == game.PhaseEarly && len(a.ColonizationTargets) > 0 {
		return production.CategoryScout
	}
	if len(VulnerablePlanets(a)) > 0 {
		return production.CategorySatellite
	}
	return ""
}

// VulnerablePlanets lists owned colonies that are young or under incoming
// attack and therefore worth defending.
func VulnerablePlanets(a *analysis.GameAnalysis) []*galaxy.Planet {
	threatened := make(map[int]bool, len(a.Threats))
	for _, t := range a.Threats {
		threatened[t.TargetPlanetID] = true
	}
	var vulnerable []*galaxy.Planet
	for _, p := range a.OwnedPlanets {
		if !p.IsColony() {
			continue
		}
		if threatened[p.ID] || p.Population < shipyardMinPopulation {
			vulnerable = append(vulnerable, p)
		}
	}
	return vulnerable
}

// bestCapacityPlanet prefers a planet with a serious ships budget and an
// established workforce, falling back to the first owned planet.
func bestCapacityPlanet(owned []*galaxy.Planet) *galaxy.Planet {
	if len(owned) == 0 {
		return nil
	}
	for _, p := range owned {
		if p.ShipsBudget > shipyardMinShipsBudget && p.Population > shipyardMinPopulation {
			return p
		}
	}
	return owned[0]
}
