package queries

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/analysis"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/common"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/economy"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/fleet"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/galaxy"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/game"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/player"
)

// Result-set truncation bounds.
const (
	maxColonizationTargets = 10
	maxOpportunities       = 15
)

// AnalyzeGameStateQuery requests a fresh situation snapshot for one player.
type AnalyzeGameStateQuery struct {
	GameID   int
	PlayerID int
}

// AnalyzeGameStateHandler computes a GameAnalysis. Pure read: no entity is
// mutated, and the query is safe to run any number of times per turn.
type AnalyzeGameStateHandler struct {
	gameRepo   game.Repository
	playerRepo player.Repository
	planetRepo galaxy.Repository
	fleetRepo  fleet.Repository
	techRepo   player.TechnologyRepository
	oracle     fleet.Oracle
}

// NewAnalyzeGameStateHandler creates the analyzer query handler.
func NewAnalyzeGameStateHandler(
	gameRepo game.Repository,
	playerRepo player.Repository,
	planetRepo galaxy.Repository,
	fleetRepo fleet.Repository,
	techRepo player.TechnologyRepository,
	oracle fleet.Oracle,
) *AnalyzeGameStateHandler {
	return &AnalyzeGameStateHandler{
		gameRepo:   gameRepo,
		playerRepo: playerRepo,
		planetRepo: planetRepo,
		fleetRepo:  fleetRepo,
		techRepo:   techRepo,
		oracle:     oracle,
	}
}

// Handle executes the analysis query.
func (h *AnalyzeGameStateHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*AnalyzeGameStateQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}
	return h.Analyze(ctx, query.GameID, query.PlayerID)
}

// Analyze builds the full situation snapshot for one player.
func (h *AnalyzeGameStateHandler) Analyze(ctx context.Context, gameID, playerID int) (*analysis.GameAnalysis, error) {
	g, err := h.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("game not found: %w", err)
	}
	self, err := h.playerRepo.FindByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("player not found: %w", err)
	}

	allPlayers, err := h.playerRepo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	allPlanets, err := h.planetRepo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	allFleets, err := h.fleetRepo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	a := &analysis.GameAnalysis{
		GameID:       gameID,
		PlayerID:     playerID,
		Turn:         g.Turn,
		Phase:        game.PhaseForTurn(g.Turn),
		TechStanding: make(map[int]analysis.TechStanding),
	}

	owned, foreign := splitPlanets(allPlanets, playerID)
	a.OwnedPlanets = owned

	ownFleets, opponentFleets := splitFleets(allFleets, playerID)

	a.Economy = h.economySnapshot(self, owned)
	a.Military = militarySnapshot(ownFleets, opponentFleets)
	if err := h.compareTechnology(ctx, a, self, allPlayers, g.Turn); err != nil {
		return nil, err
	}

	maxRange := maxFleetRange(ownFleets)
	a.ColonizationTargets = colonizationTargets(owned, foreign, maxRange)
	a.Threats = detectThreats(opponentFleets, owned)
	a.Opportunities = h.rankOpportunities(foreign, owned, allFleets, playerID)

	a.MetalScarcity = metalScarcity(owned)
	a.NeedsExpansion = len(owned) < 3 ||
		(len(owned) < 5 && len(a.ColonizationTargets) > 0) ||
		a.MetalScarcity > 0.7

	return a, nil
}

func splitPlanets(planets []*galaxy.Planet, playerID int) (owned, foreign []*galaxy.Planet) {
	for _, p := range planets {
		if p.IsOwnedBy(playerID) {
			owned = append(owned, p)
		} else {
			foreign = append(foreign, p)
		}
	}
	return owned, foreign
}

func splitFleets(fleets []*fleet.Fleet, playerID int) (own, opponents []*fleet.Fleet) {
	for _, f := range fleets {
		if f.OwnerID == playerID {
			own = append(own, f)
		} else {
			opponents = append(opponents, f)
		}
	}
	return own, opponents
}

func (h *AnalyzeGameStateHandler) economySnapshot(self *player.Player, owned []*galaxy.Planet) analysis.EconomySnapshot {
	income := EstimateIncome(owned)
	mining := 0
	for _, p := range owned {
		if !p.IsColony() {
			continue
		}
		rate := int(economy.DiminishingReturns(economy.BudgetFraction(p.MiningBudget), economy.MiningRatePerTurn))
		if rate > p.MetalRemaining {
			rate = p.MetalRemaining
		}
		mining += rate
	}

	ratio := 0.0
	if income > 0 {
		ratio = float64(self.Debt) / float64(income)
	}
	return analysis.EconomySnapshot{
		Money:             self.Money,
		Metal:             self.Metal,
		Debt:              self.Debt,
		EstimatedIncome:   income,
		EstimatedMining:   mining,
		DebtToIncomeRatio: ratio,
	}
}

// EstimateIncome computes the per-turn income of a set of owned planets:
// a flat per-colony component plus a population-scaled component.
func EstimateIncome(owned []*galaxy.Planet) int {
	income := 0
	for _, p := range owned {
		if !p.IsColony() {
			continue
		}
		income += economy.IncomePerPlanet
		income += economy.IncomePerMillionPop * (p.Population / 1_000_000)
	}
	return income
}

func militarySnapshot(own, opponents []*fleet.Fleet) analysis.MilitarySnapshot {
	snap := analysis.MilitarySnapshot{
		OpponentPower: make(map[int]int),
		OwnFleetCount: len(own),
	}
	for _, f := range own {
		snap.OwnPower += f.Power()
	}
	for _, f := range opponents {
		snap.OpponentPower[f.OwnerID] += f.Power()
	}

	totalOpp := 0
	for _, p := range snap.OpponentPower {
		totalOpp += p
	}
	switch {
	case totalOpp == 0 && snap.OwnPower > 0:
		snap.PowerRatio = math.Inf(1)
	case totalOpp == 0:
		snap.PowerRatio = 1.0
	default:
		avg := float64(totalOpp) / float64(len(snap.OpponentPower))
		snap.PowerRatio = float64(snap.OwnPower) / avg
	}
	return snap
}

func (h *AnalyzeGameStateHandler) compareTechnology(ctx context.Context, a *analysis.GameAnalysis, self *player.Player, allPlayers []*player.Player, turn int) error {
	ownTech, err := h.techRepo.FindByPlayer(ctx, self.ID)
	if err != nil {
		return fmt.Errorf("technology not found for player %d: %w", self.ID, err)
	}
	a.OwnTechTotal = ownTech.TotalLevels(turn)

	for _, opponent := range allPlayers {
		if opponent.ID == self.ID || !opponent.IsActive() {
			continue
		}
		oppTech, err := h.techRepo.FindByPlayer(ctx, opponent.ID)
		if err != nil {
			continue
		}
		diff := a.OwnTechTotal - oppTech.TotalLevels(turn)
		switch {
		case diff > analysis.TechLevelTolerance:
			a.TechStanding[opponent.ID] = analysis.TechAhead
		case diff < -analysis.TechLevelTolerance:
			a.TechStanding[opponent.ID] = analysis.TechBehind
		default:
			a.TechStanding[opponent.ID] = analysis.TechEqual
		}
	}
	return nil
}

func maxFleetRange(fleets []*fleet.Fleet) float64 {
	maxRange := 0.0
	for _, f := range fleets {
		if f.Range > maxRange {
			maxRange = f.Range
		}
	}
	return maxRange
}

// colonizationTargets buckets every unowned planet that is not already a
// colony (and not hostile) into a scored target, ranked score-over-distance.
func colonizationTargets(owned, foreign []*galaxy.Planet, maxRange float64) []analysis.ColonizationTarget {
	colonies := ownColonies(owned)

	var targets []analysis.ColonizationTarget
	for _, p := range foreign {
		if p.OwnerID != nil || p.IsColony() || p.Status == galaxy.PlanetHostile {
			continue
		}
		distance := distanceFromNearest(colonies, p)
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
		return rankKey(targets[i].Score, targets[i].Distance) > rankKey(targets[j].Score, targets[j].Distance)
	})
	if len(targets) > maxColonizationTargets {
		targets = targets[:maxColonizationTargets]
	}
	return targets
}

func ownColonies(owned []*galaxy.Planet) []*galaxy.Planet {
	var colonies []*galaxy.Planet
	for _, p := range owned {
		if p.IsColony() {
			colonies = append(colonies, p)
		}
	}
	return colonies
}

func distanceFromNearest(colonies []*galaxy.Planet, target *galaxy.Planet) float64 {
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

func rankKey(score, distance float64) float64 {
	if distance < 1 {
		distance = 1
	}
	return score / distance
}

// detectThreats lists every opponent fleet in transit toward an owned
// planet, sorted by soonest arrival.
func detectThreats(opponentFleets []*fleet.Fleet, owned []*galaxy.Planet) []analysis.ThreatInfo {
	ownedIDs := make(map[int]bool, len(owned))
	for _, p := range owned {
		ownedIDs[p.ID] = true
	}

	var threats []analysis.ThreatInfo
	for _, f := range opponentFleets {
		if f.Status != fleet.StatusInTransit || f.DestinationPlanetID == nil {
			continue
		}
		if !ownedIDs[*f.DestinationPlanetID] {
			continue
		}
		arrival := 0
		if f.ArrivalTurn != nil {
			arrival = *f.ArrivalTurn
		}
		threats = append(threats, analysis.ThreatInfo{
			FleetID:        f.ID,
			AttackerID:     f.OwnerID,
			TargetPlanetID: *f.DestinationPlanetID,
			ArrivalTurn:    arrival,
			EstimatedPower: float64(f.Power()),
		})
	}

	sort.Slice(threats, func(i, j int) bool {
		return threats[i].ArrivalTurn < threats[j].ArrivalTurn
	})
	return threats
}

// rankOpportunities scores every non-owned, previously explored planet by
// value over defense-plus-distance, capture targets weighted up.
func (h *AnalyzeGameStateHandler) rankOpportunities(foreign, owned []*galaxy.Planet, allFleets []*fleet.Fleet, playerID int) []analysis.OpportunityInfo {
	colonies := ownColonies(owned)

	stationedByPlanet := make(map[int][]*fleet.Fleet)
	for _, f := range allFleets {
		if f.OwnerID != playerID && f.Status == fleet.StatusStationed {
			stationedByPlanet[f.CurrentPlanetID] = append(stationedByPlanet[f.CurrentPlanetID], f)
		}
	}

	var opportunities []analysis.OpportunityInfo
	for _, p := range foreign {
		if p.Status == galaxy.PlanetUnexplored {
			continue
		}
		value := analysis.ScorePlanet(p)
		if p.OwnerID != nil {
			// Capturing enemy territory is worth more than settling empty land.
			value *= analysis.CaptureValueMultiplier
		}
		opportunities = append(opportunities, analysis.OpportunityInfo{
			PlanetID:     p.ID,
			OwnerID:      p.OwnerID,
			Value:        value,
			DefensePower: h.oracle.PredictDefensePower(p, stationedByPlanet[p.ID]),
			Distance:     distanceFromNearest(colonies, p),
		})
	}

	sort.Slice(opportunities, func(i, j int) bool {
		return opportunityRank(opportunities[i]) > opportunityRank(opportunities[j])
	})
	if len(opportunities) > maxOpportunities {
		opportunities = opportunities[:maxOpportunities]
	}
	return opportunities
}

func opportunityRank(o analysis.OpportunityInfo) float64 {
	denom := o.DefensePower + o.Distance
	if denom < 1 {
		denom = 1
	}
	return o.Value / denom
}

// metalScarcity is the depletion fraction of the player's reserves: 0 when
// untouched, approaching 1 as owned planets run dry.
func metalScarcity(owned []*galaxy.Planet) float64 {
	remaining, initial := 0, 0
	for _, p := range owned {
		remaining += p.MetalRemaining
		initial += p.MetalReserves
	}
	if initial == 0 {
		return 0
	}
	return 1 - float64(remaining)/float64(initial)
}
