package commands

import (
	"context"
	"fmt"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/common"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/game"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/player"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
)

// SubmitTurnCommand records one human player's turn submission.
type SubmitTurnCommand struct {
	GameID   int
	PlayerID int
}

// SubmitTurnResponse reports whether every player is now ready.
type SubmitTurnResponse struct {
	AllSubmitted bool `json:"all_submitted"`
}

// SubmitTurnHandler flags a player as ready and reports whether the game
// can resolve. Computer players are always considered submitted.
type SubmitTurnHandler struct {
	gameRepo   game.Repository
	playerRepo player.Repository
}

// NewSubmitTurnHandler creates the handler.
func NewSubmitTurnHandler(gameRepo game.Repository, playerRepo player.Repository) *SubmitTurnHandler {
	return &SubmitTurnHandler{gameRepo: gameRepo, playerRepo: playerRepo}
}

// Handle executes the command.
func (h *SubmitTurnHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*SubmitTurnCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	g, err := h.gameRepo.FindByID(ctx, cmd.GameID)
	if err != nil {
		return nil, fmt.Errorf("game not found: %w", err)
	}
	if !g.IsRunning() {
		return nil, shared.NewPreconditionError("game %d is not running", cmd.GameID)
	}

	p, err := h.playerRepo.FindByID(ctx, cmd.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("player not found: %w", err)
	}
	if p.GameID != cmd.GameID {
		return nil, shared.NewPreconditionError("player %d does not belong to game %d", cmd.PlayerID, cmd.GameID)
	}
	if p.Eliminated {
		return nil, shared.NewPreconditionError("player %d is eliminated", cmd.PlayerID)
	}

	p.SubmitTurn()
	if err := h.playerRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	all, err := AllPlayersSubmitted(ctx, h.playerRepo, cmd.GameID)
	if err != nil {
		return nil, err
	}
	return &SubmitTurnResponse{AllSubmitted: all}, nil
}

// AllPlayersSubmitted reports whether every active human player has
// submitted; computer players are always considered submitted.
func AllPlayersSubmitted(ctx context.Context, playerRepo player.Repository, gameID int) (bool, error) {
	players, err := playerRepo.ListActiveByGame(ctx, gameID)
	if err != nil {
		return false, err
	}
	for _, p := range players {
		if !p.IsComputer && !p.TurnSubmitted {
			return false, nil
		}
	}
	return true, nil
}
