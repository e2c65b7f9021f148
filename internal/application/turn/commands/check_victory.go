package commands

import (
	"context"
	"fmt"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/common"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/turn"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/game"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/player"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
)

// CheckVictoryCommand evaluates termination after a turn resolution.
type CheckVictoryCommand struct {
	GameID int
}

// CheckVictoryHandler finishes the game when exactly one active player
// remains (victory) or none do (draw); otherwise it is a no-op.
type CheckVictoryHandler struct {
	gameRepo   game.Repository
	playerRepo player.Repository
	clock      shared.Clock
}

// NewCheckVictoryHandler creates the victory checker.
func NewCheckVictoryHandler(gameRepo game.Repository, playerRepo player.Repository, clock shared.Clock) *CheckVictoryHandler {
	return &CheckVictoryHandler{gameRepo: gameRepo, playerRepo: playerRepo, clock: clock}
}

// Handle executes the command.
func (h *CheckVictoryHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*CheckVictoryCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}
	return h.Check(ctx, cmd.GameID)
}

// Check evaluates the termination conditions.
func (h *CheckVictoryHandler) Check(ctx context.Context, gameID int) (*turn.VictoryReport, error) {
	g, err := h.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("game not found: %w", err)
	}
	report := &turn.VictoryReport{GameID: gameID}
	if !g.IsRunning() {
		return report, nil
	}

	active, err := h.playerRepo.ListActiveByGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	switch len(active) {
	case 1:
		winner := active[0]
		if err := g.FinishWithWinner(winner.ID, h.clock.Now()); err != nil {
			return nil, err
		}
		report.Finished = true
		report.WinnerID = &winner.ID
	case 0:
		if err := g.FinishAsDraw(h.clock.Now()); err != nil {
			return nil, err
		}
		report.Finished = true
		report.Draw = true
	default:
		return report, nil
	}

	return report, h.gameRepo.Save(ctx, g)
}
