package commands

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	analysisQuery "github.com/franztrierweiler/colonie-ia-sub000/internal/application/analysis/queries"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/common"
	expansionCmd "github.com/franztrierweiler/colonie-ia-sub000/internal/application/expansion/commands"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/turn"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/fleet"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/galaxy"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/game"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/player"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/production"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
)

// ProcessTurnCommand advances a whole game by one turn.
type ProcessTurnCommand struct {
	GameID int
}

// ProcessTurnHandler runs the turn resolution engine: per-player income,
// interest, mining, terraformation and population growth, build delivery,
// elimination checks, fleet arrivals (colony units settle on landing), then
// the turn/year counters and submission-flag reset. The whole batch commits
// as one atomic unit.
//
// The handler assumes, rather than enforces, that all active human players
// have submitted; that gate lives at the orchestration layer.
type ProcessTurnHandler struct {
	gameRepo         game.Repository
	playerRepo       player.Repository
	planetRepo       galaxy.Repository
	fleetRepo        fleet.Repository
	techRepo         player.TechnologyRepository
	breakthroughRepo player.BreakthroughRepository
	designRepo       production.DesignRepository
	queueRepo        production.QueueRepository
	colonize         *expansionCmd.ExecuteColonizationHandler
	tx               common.TxManager
	clock            shared.Clock
}

// NewProcessTurnHandler wires the turn resolution engine.
func NewProcessTurnHandler(
	gameRepo game.Repository,
	playerRepo player.Repository,
	planetRepo galaxy.Repository,
	fleetRepo fleet.Repository,
	techRepo player.TechnologyRepository,
	breakthroughRepo player.BreakthroughRepository,
	designRepo production.DesignRepository,
	queueRepo production.QueueRepository,
	colonize *expansionCmd.ExecuteColonizationHandler,
	tx common.TxManager,
	clock shared.Clock,
) *ProcessTurnHandler {
	return &ProcessTurnHandler{
		gameRepo:         gameRepo,
		playerRepo:       playerRepo,
		planetRepo:       planetRepo,
		fleetRepo:        fleetRepo,
		techRepo:         techRepo,
		breakthroughRepo: breakthroughRepo,
		designRepo:       designRepo,
		queueRepo:        queueRepo,
		colonize:         colonize,
		tx:               tx,
		clock:            clock,
	}
}

// Handle executes the command.
func (h *ProcessTurnHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*ProcessTurnCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}
	return h.Process(ctx, cmd.GameID)
}

// Process resolves one game turn.
func (h *ProcessTurnHandler) Process(ctx context.Context, gameID int) (*turn.TurnReport, error) {
	g, err := h.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("game not found: %w", err)
	}
	if !g.IsRunning() {
		return nil, shared.NewPreconditionError("game %d is not running", gameID)
	}

	report := &turn.TurnReport{
		ID:      uuid.NewString(),
		GameID:  gameID,
		Players: make(map[int]*turn.PlayerTurnReport),
	}

	err = h.tx.WithinTx(ctx, func(txCtx context.Context) error {
		return h.resolve(txCtx, gameID, report)
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (h *ProcessTurnHandler) resolve(ctx context.Context, gameID int, report *turn.TurnReport) error {
	g, err := h.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return err
	}

	players, err := h.playerRepo.ListByGame(ctx, gameID)
	if err != nil {
		return err
	}

	for _, p := range players {
		if p.Eliminated {
			continue
		}
		pr, err := h.resolvePlayer(ctx, g, p)
		if err != nil {
			return fmt.Errorf("resolving player %d: %w", p.ID, err)
		}
		report.Players[p.ID] = pr
	}

	// Station fleets whose journey completes this turn.
	if err := h.arriveFleets(ctx, g); err != nil {
		return err
	}

	g.AdvanceTurn()
	for _, p := range players {
		p.ResetTurnSubmission()
		if err := h.playerRepo.Save(ctx, p); err != nil {
			return err
		}
	}
	if err := h.gameRepo.Save(ctx, g); err != nil {
		return err
	}

	report.Turn = g.Turn
	report.Year = g.Year
	return nil
}

func (h *ProcessTurnHandler) resolvePlayer(ctx context.Context, g *game.Game, p *player.Player) (*turn.PlayerTurnReport, error) {
	pr := &turn.PlayerTurnReport{PlayerID: p.ID}

	colonies, err := h.planetRepo.ListColoniesByOwner(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	pr.Income = p.CreditIncome(analysisQuery.EstimateIncome(colonies))
	pr.Interest = p.PayInterest()

	for _, planet := range colonies {
		extracted := planet.Mine()
		p.CreditMetal(extracted)
		pr.MetalMined += extracted

		pr.TerraformDelta += planet.Terraform()
		pr.PopulationGrowth += planet.GrowPopulation()

		if err := h.planetRepo.Save(ctx, planet); err != nil {
			return nil, err
		}
	}

	if err := h.advanceResearch(ctx, g, p, pr); err != nil {
		return nil, err
	}
	if err := h.completeBuilds(ctx, g, p, pr); err != nil {
		return nil, err
	}

	p.PlanetCount = len(colonies)
	pr.PlanetCount = p.PlanetCount

	h.checkElimination(ctx, p, colonies, pr)

	if err := h.playerRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	if pr.Eliminated {
		if err := h.releasePlanets(ctx, p.ID); err != nil {
			return nil, err
		}
	}
	return pr, nil
}

// advanceResearch accrues research progress. A completed radical level
// spawns a pending breakthrough instead of directly granting anything.
func (h *ProcessTurnHandler) advanceResearch(ctx context.Context, g *game.Game, p *player.Player, pr *turn.PlayerTurnReport) error {
	tech, err := h.techRepo.FindByPlayer(ctx, p.ID)
	if err != nil {
		return err
	}
	completed := tech.Advance()
	for _, domain := range completed {
		if domain != player.TechRadical {
			pr.ResearchCompleted = append(pr.ResearchCompleted, domain)
			continue
		}
		rng := rand.New(rand.NewSource(int64(g.ID)<<40 ^ int64(g.Turn)<<16 ^ int64(p.ID)))
		b := player.NewBreakthrough(p.ID, g.Turn, player.RollOptions(rng))
		if err := h.breakthroughRepo.Save(ctx, b); err != nil {
			return err
		}
		pr.BreakthroughID = &b.ID
	}
	return h.techRepo.Save(ctx, tech)
}

func (h *ProcessTurnHandler) checkElimination(ctx context.Context, p *player.Player, colonies []*galaxy.Planet, pr *turn.PlayerTurnReport) {
	switch {
	case p.IsBankrupt():
		pr.Eliminated = true
		pr.EliminationReason = "bankruptcy"
	case len(colonies) == 0:
		pr.Eliminated = true
		pr.EliminationReason = "no remaining colonies"
	default:
		return
	}
	p.Eliminate(h.clock.Now())
	common.LoggerFromContext(ctx).Log("info", "player eliminated", map[string]interface{}{
		"player_id": p.ID,
		"reason":    pr.EliminationReason,
	})
}

// releasePlanets clears every planet owned by an eliminated player: owner
// removed, state abandoned, population zeroed.
func (h *ProcessTurnHandler) releasePlanets(ctx context.Context, playerID int) error {
	owned, err := h.planetRepo.ListByOwner(ctx, playerID)
	if err != nil {
		return err
	}
	for _, planet := range owned {
		planet.Release()
		if err := h.planetRepo.Save(ctx, planet); err != nil {
			return err
		}
	}
	return nil
}

func (h *ProcessTurnHandler) arriveFleets(ctx context.Context, g *game.Game) error {
	fleets, err := h.fleetRepo.ListByGame(ctx, g.ID)
	if err != nil {
		return err
	}
	for _, f := range fleets {
		if f.Status != fleet.StatusInTransit || f.ArrivalTurn == nil || *f.ArrivalTurn > g.Turn {
			continue
		}
		destID := 0
		if f.DestinationPlanetID != nil {
			destID = *f.DestinationPlanetID
		}
		f.Arrive()
		if err := h.fleetRepo.Save(ctx, f); err != nil {
			return err
		}
		if destID == 0 {
			continue
		}
		if dest, err := h.planetRepo.FindByID(ctx, destID); err == nil {
			dest.MarkExplored()
			if err := h.planetRepo.Save(ctx, dest); err != nil {
				return err
			}
			if f.CanColonize && !dest.IsColony() {
				if err := h.settleColony(ctx, f, dest); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// settleColony lands an arriving colony unit through the colonization
// command. Refusals (the planet was taken while in transit) are logged, not
// fatal.
func (h *ProcessTurnHandler) settleColony(ctx context.Context, f *fleet.Fleet, dest *galaxy.Planet) error {
	resp, err := h.colonize.Handle(ctx, &expansionCmd.ExecuteColonizationCommand{
		FleetID:  f.ID,
		PlanetID: dest.ID,
	})
	if err != nil {
		return err
	}
	if result := resp.(*expansionCmd.ExecuteColonizationResponse); !result.Result.OK {
		common.LoggerFromContext(ctx).Log("info", "colonization refused on arrival", map[string]interface{}{
			"fleet_id":  f.ID,
			"planet_id": dest.ID,
			"reason":    result.Result.Message,
		})
	}
	return nil
}

// completeBuilds delivers every queued build whose construction time has
// elapsed. New units join the yard planet as stationed fleets.
func (h *ProcessTurnHandler) completeBuilds(ctx context.Context, g *game.Game, p *player.Player, pr *turn.PlayerTurnReport) error {
	items, err := h.queueRepo.ListUnfinishedByPlayer(ctx, p.ID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	designs, err := h.designRepo.ListByPlayer(ctx, p.ID)
	if err != nil {
		return err
	}
	designByID := make(map[int]*production.Design, len(designs))
	for _, d := range designs {
		designByID[d.ID] = d
	}
	for _, item := range items {
		d, ok := designByID[item.DesignID]
		if !ok || g.Turn < item.QueuedTurn+d.BuildTurns() {
			continue
		}
		if err := h.deliverUnit(ctx, g, p, item, d); err != nil {
			return err
		}
		item.Finish()
		if err := h.queueRepo.Save(ctx, item); err != nil {
			return err
		}
		pr.BuildsCompleted = append(pr.BuildsCompleted, d.Category)
	}
	return nil
}

// deliverUnit turns a finished build into combat capability at the yard. A
// colony unit prefers re-equipping a fleet already stationed there; every
// other category ships as a fresh stationed fleet.
func (h *ProcessTurnHandler) deliverUnit(ctx context.Context, g *game.Game, p *player.Player, item *production.QueueItem, d *production.Design) error {
	stationed, err := h.fleetRepo.ListStationedAt(ctx, item.PlanetID)
	if err != nil {
		return err
	}
	if d.Category == production.CategoryColony {
		for _, f := range stationed {
			if f.OwnerID != p.ID {
				continue
			}
			if res := f.LoadColonyUnit(); res.OK {
				return h.fleetRepo.Save(ctx, f)
			}
		}
	}
	stats := d.Category.Stats()
	return h.fleetRepo.Save(ctx, &fleet.Fleet{
		GameID:          g.ID,
		OwnerID:         p.ID,
		Name:            d.Name,
		TotalWeapons:    stats.Weapons,
		TotalShields:    stats.Shields,
		Speed:           stats.Speed,
		Range:           stats.Range,
		CurrentPlanetID: item.PlanetID,
		Status:          fleet.StatusStationed,
		CanColonize:     d.Category == production.CategoryColony,
	})
}
