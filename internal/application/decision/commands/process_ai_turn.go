package commands

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	analysisQuery "github.com/franztrierweiler/colonie-ia-sub000/internal/application/analysis/queries"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/common"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/decision"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/ai"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/fleet"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/galaxy"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/game"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/player"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
)

// ProcessAITurnCommand runs the full decision pipeline for one computer
// player. Precondition: the player must be computer-controlled.
type ProcessAITurnCommand struct {
	GameID   int
	PlayerID int
}

// ProcessAITurnHandler orchestrates one computer player's turn: breakthrough
// resolution, research allocation, per-planet budgets, production planning
// and fleet-movement planning, all inside one per-player transaction.
//
// An unexpected failure in any stage rolls back that player's pending
// mutations and is recorded in the report; it never propagates to other
// players or the shared turn commit.
type ProcessAITurnHandler struct {
	gameRepo         game.Repository
	playerRepo       player.Repository
	planetRepo       galaxy.Repository
	fleetRepo        fleet.Repository
	techRepo         player.TechnologyRepository
	breakthroughRepo player.BreakthroughRepository
	analyzer         *analysisQuery.AnalyzeGameStateHandler
	production       *decision.ProductionPlanner
	movement         *decision.MovementPlanner
	tx               common.TxManager

	// randFor derives the turn's RNG; replaceable in tests.
	randFor func(gameID, turn, playerID int) *rand.Rand
}

// NewProcessAITurnHandler wires the decision pipeline.
func NewProcessAITurnHandler(
	gameRepo game.Repository,
	playerRepo player.Repository,
	planetRepo galaxy.Repository,
	fleetRepo fleet.Repository,
	techRepo player.TechnologyRepository,
	breakthroughRepo player.BreakthroughRepository,
	analyzer *analysisQuery.AnalyzeGameStateHandler,
	production *decision.ProductionPlanner,
	movement *decision.MovementPlanner,
	tx common.TxManager,
) *ProcessAITurnHandler {
	return &ProcessAITurnHandler{
		gameRepo:         gameRepo,
		playerRepo:       playerRepo,
		planetRepo:       planetRepo,
		fleetRepo:        fleetRepo,
		techRepo:         techRepo,
		breakthroughRepo: breakthroughRepo,
		analyzer:         analyzer,
		production:       production,
		movement:         movement,
		tx:               tx,
		randFor:          DeterministicRand,
	}
}

// SetRandSource overrides RNG derivation (tests).
func (h *ProcessAITurnHandler) SetRandSource(fn func(gameID, turn, playerID int) *rand.Rand) {
	h.randFor = fn
}

// DeterministicRand seeds the per-player, per-turn RNG so replays of the
// same turn make the same choices.
func DeterministicRand(gameID, turn, playerID int) *rand.Rand {
	seed := int64(gameID)<<40 ^ int64(turn)<<16 ^ int64(playerID)
	return rand.New(rand.NewSource(seed))
}

// Handle executes the command.
func (h *ProcessAITurnHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*ProcessAITurnCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}
	return h.Process(ctx, cmd.GameID, cmd.PlayerID)
}

// Process runs the pipeline and always returns a report; genuine failures
// are recorded in the report's Error field after rollback.
func (h *ProcessAITurnHandler) Process(ctx context.Context, gameID, playerID int) (*decision.DecisionReport, error) {
	p, err := h.playerRepo.FindByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("player not found: %w", err)
	}
	if !p.IsComputer {
		return nil, shared.NewPreconditionError("player %d is not computer-controlled", playerID)
	}
	if p.Eliminated {
		return nil, shared.NewPreconditionError("player %d is eliminated", playerID)
	}
	g, err := h.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("game not found: %w", err)
	}

	report := &decision.DecisionReport{
		ID:       uuid.NewString(),
		GameID:   gameID,
		PlayerID: playerID,
		Turn:     g.Turn,
	}
	mods := p.Profile()
	rng := h.randFor(gameID, g.Turn, playerID)

	// Imperfect play: with probability DecisionErrorRate the player simply
	// does nothing this turn. This is behavior, not an error.
	if rng.Float64() < mods.DecisionErrorRate {
		report.Skipped = true
		common.LoggerFromContext(ctx).Log("info", "decision skipped", map[string]interface{}{
			"player_id": playerID,
			"turn":      g.Turn,
		})
		return report, nil
	}

	txErr := h.tx.WithinTx(ctx, func(txCtx context.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("decision pipeline panic: %v", r)
			}
		}()
		return h.decide(txCtx, g, playerID, mods, rng, report)
	})
	if txErr != nil {
		report.Error = txErr.Error()
		common.LoggerFromContext(ctx).Log("error", "decision pipeline failed", map[string]interface{}{
			"player_id": playerID,
			"turn":      g.Turn,
			"error":     txErr.Error(),
		})
	}
	return report, nil
}

func (h *ProcessAITurnHandler) decide(
	ctx context.Context,
	g *game.Game,
	playerID int,
	mods ai.Modifiers,
	rng *rand.Rand,
	report *decision.DecisionReport,
) error {
	// Reload inside the transaction so all mutations are part of it.
	p, err := h.playerRepo.FindByID(ctx, playerID)
	if err != nil {
		return err
	}

	a, err := h.analyzer.Analyze(ctx, g.ID, playerID)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	tech, err := h.techRepo.FindByPlayer(ctx, playerID)
	if err != nil {
		return fmt.Errorf("technology not found: %w", err)
	}

	// Breakthrough resolution.
	pending, err := h.breakthroughRepo.ListPendingByPlayer(ctx, playerID)
	if err != nil {
		return err
	}
	for _, b := range pending {
		eliminated := decision.ChooseElimination(b, a, mods, rng)
		if res := b.Eliminate(eliminated); !res.OK {
			continue
		}
		opt, err := b.Resolve(rng)
		if err != nil {
			return err
		}
		if res := tech.GrantBonus(opt.Domain, opt.Bonus, g.Turn+opt.Duration); !res.OK {
			return shared.NewDomainError(res.Message)
		}
		if err := h.breakthroughRepo.Save(ctx, b); err != nil {
			return err
		}
		report.Breakthroughs = append(report.Breakthroughs, decision.BreakthroughDecision{
			BreakthroughID: b.ID,
			Eliminated:     b.Eliminated,
			Unlocked:       b.Unlocked,
			Domain:         opt.Domain,
			Bonus:          opt.Bonus,
		})
	}

	// Research allocation.
	research := decision.AllocateResearch(a, mods, rng)
	if res := tech.SetBudgets(research); !res.OK {
		return shared.NewDomainError(res.Message)
	}
	if err := h.techRepo.Save(ctx, tech); err != nil {
		return err
	}
	report.Research = research

	// Per-planet budget allocation.
	vulnerable := make(map[int]bool)
	for _, vp := range decision.VulnerablePlanets(a) {
		vulnerable[vp.ID] = true
	}
	report.PlanetBudgets = make(map[int][3]int)
	for _, planet := range a.OwnedPlanets {
		if !planet.IsColony() {
			continue
		}
		b := decision.AllocatePlanetBudget(planet, a.Phase, vulnerable[planet.ID], mods)
		if res := planet.SetBudgets(b.Terraform, b.Mining, b.Ships); !res.OK {
			return shared.NewDomainError(res.Message)
		}
		if err := h.planetRepo.Save(ctx, planet); err != nil {
			return err
		}
		report.PlanetBudgets[planet.ID] = [3]int{b.Terraform, b.Mining, b.Ships}
	}

	ownFleets, err := h.fleetRepo.ListByOwner(ctx, playerID)
	if err != nil {
		return err
	}

	// Production planning: at most one build per turn.
	build, err := h.production.Plan(ctx, p, a, ownFleets, g.Turn)
	if err != nil {
		return err
	}
	if build != nil {
		report.Production = build
		if err := h.playerRepo.Save(ctx, p); err != nil {
			return err
		}
	}

	// Fleet-movement planning (decision only).
	movements, colonizations, err := h.movement.Plan(ctx, g.ID, playerID, g.Turn, a, ownFleets, mods)
	if err != nil {
		return err
	}
	report.Movements = movements
	report.Colonizations = colonizations

	return nil
}
