package orchestration

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/common"
	decisionCmd "github.com/franztrierweiler/colonie-ia-sub000/internal/application/decision/commands"
	turnCmd "github.com/franztrierweiler/colonie-ia-sub000/internal/application/turn/commands"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/game"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/player"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
)

// Metrics receives orchestration measurements; the prometheus adapter
// implements it, tests use a no-op.
type Metrics interface {
	ObserveAIDecision(gameID int, skipped, failed bool)
	ObserveTurnResolved(gameID, turn int, eliminated int)
}

// NoopMetrics discards all measurements.
type NoopMetrics struct{}

func (NoopMetrics) ObserveAIDecision(gameID int, skipped, failed bool)   {}
func (NoopMetrics) ObserveTurnResolved(gameID, turn int, eliminated int) {}

// Orchestrator drives one game forward: computer players decide, and when
// every active human has submitted the turn resolves and victory is
// evaluated. AI processing is paced by a shared rate limiter so a daemon
// hosting many games degrades gracefully.
type Orchestrator struct {
	gameRepo     game.Repository
	playerRepo   player.Repository
	processAI    *decisionCmd.ProcessAITurnHandler
	execMoves    *decisionCmd.ExecuteFleetMovementsHandler
	processTurn  *turnCmd.ProcessTurnHandler
	checkVictory *turnCmd.CheckVictoryHandler
	notifier     common.NotificationSink
	limiter      *rate.Limiter
	metrics      Metrics
}

// NewOrchestrator wires the turn orchestration layer.
func NewOrchestrator(
	gameRepo game.Repository,
	playerRepo player.Repository,
	processAI *decisionCmd.ProcessAITurnHandler,
	execMoves *decisionCmd.ExecuteFleetMovementsHandler,
	processTurn *turnCmd.ProcessTurnHandler,
	checkVictory *turnCmd.CheckVictoryHandler,
	notifier common.NotificationSink,
	limiter *rate.Limiter,
	metrics Metrics,
) *Orchestrator {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return &Orchestrator{
		gameRepo:     gameRepo,
		playerRepo:   playerRepo,
		processAI:    processAI,
		execMoves:    execMoves,
		processTurn:  processTurn,
		checkVictory: checkVictory,
		notifier:     notifier,
		limiter:      limiter,
		metrics:      metrics,
	}
}

// RunOnce advances one game by at most one turn. Returns true when a turn
// was resolved.
func (o *Orchestrator) RunOnce(ctx context.Context, gameID int) (bool, error) {
	g, err := o.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return false, err
	}
	if !g.IsRunning() {
		return false, nil
	}

	players, err := o.playerRepo.ListActiveByGame(ctx, gameID)
	if err != nil {
		return false, err
	}

	// Every computer player decides. One player's failure is recorded and
	// never blocks the others.
	for _, p := range players {
		if !p.IsComputer {
			continue
		}
		if err := o.limiter.Wait(ctx); err != nil {
			return false, err
		}
		report, err := o.processAI.Process(ctx, gameID, p.ID)
		if err != nil {
			if shared.IsPrecondition(err) {
				continue
			}
			return false, err
		}
		o.metrics.ObserveAIDecision(gameID, report.Skipped, report.Error != "")
		if report.Error != "" || report.Skipped {
			continue
		}
		if len(report.Movements) > 0 {
			if _, err := o.execMoves.Handle(ctx, &decisionCmd.ExecuteFleetMovementsCommand{
				PlayerID:  p.ID,
				Movements: report.Movements,
			}); err != nil {
				common.LoggerFromContext(ctx).Log("error", "movement execution failed", map[string]interface{}{
					"player_id": p.ID,
					"error":     err.Error(),
				})
			}
		}
	}

	// The turn resolves only once every active human has submitted;
	// computer players are always considered submitted.
	ready, err := turnCmd.AllPlayersSubmitted(ctx, o.playerRepo, gameID)
	if err != nil {
		return false, err
	}
	if !ready {
		return false, nil
	}

	report, err := o.processTurn.Process(ctx, gameID)
	if err != nil {
		return false, err
	}

	eliminated := 0
	for _, pr := range report.Players {
		if pr.Eliminated {
			eliminated++
		}
	}
	o.metrics.ObserveTurnResolved(gameID, report.Turn, eliminated)

	if _, err := o.checkVictory.Check(ctx, gameID); err != nil {
		return true, err
	}

	if err := o.notifier.Notify(ctx, common.EventTurnEnded, map[string]interface{}{
		"game_id": gameID,
		"turn":    report.Turn,
		"year":    report.Year,
	}); err != nil {
		common.LoggerFromContext(ctx).Log("warn", "notification failed", map[string]interface{}{
			"event": common.EventTurnEnded,
			"error": err.Error(),
		})
	}
	return true, nil
}

// RunAll advances every running game once.
func (o *Orchestrator) RunAll(ctx context.Context) error {
	games, err := o.gameRepo.ListByStatus(ctx, game.StatusRunning)
	if err != nil {
		return err
	}
	for _, g := range games {
		if _, err := o.RunOnce(ctx, g.ID); err != nil {
			return fmt.Errorf("game %d: %w", g.ID, err)
		}
	}
	return nil
}
