package commands

import (
	"context"
	"fmt"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/common"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/game"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
)

// DefaultStartYear is the in-game calendar origin.
const DefaultStartYear = 2300

// CreateGameCommand opens a new game lobby.
type CreateGameCommand struct {
	Name      string
	StartYear int
}

// CreateGameResponse returns the created game.
type CreateGameResponse struct {
	Game *game.Game
}

// CreateGameHandler creates games.
type CreateGameHandler struct {
	gameRepo game.Repository
	clock    shared.Clock
}

// NewCreateGameHandler creates the handler.
func NewCreateGameHandler(gameRepo game.Repository, clock shared.Clock) *CreateGameHandler {
	return &CreateGameHandler{gameRepo: gameRepo, clock: clock}
}

// Handle executes the command.
func (h *CreateGameHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*CreateGameCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}
	if cmd.Name == "" {
		return nil, shared.NewValidationError("name", "cannot be empty")
	}
	startYear := cmd.StartYear
	if startYear == 0 {
		startYear = DefaultStartYear
	}

	g := game.NewGame(cmd.Name, startYear, h.clock.Now())
	if err := h.gameRepo.Save(ctx, g); err != nil {
		return nil, err
	}
	return &CreateGameResponse{Game: g}, nil
}
