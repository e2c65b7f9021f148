package commands

import (
	"context"
	"fmt"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/common"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/ai"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/game"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/player"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
)

// JoinGameCommand adds a participant to a lobby. Difficulty is only
// meaningful when IsComputer is set.
type JoinGameCommand struct {
	GameID     int
	Name       string
	Color      string
	IsComputer bool
	Difficulty ai.Tier
}

// JoinGameResponse returns the created player.
type JoinGameResponse struct {
	Player *player.Player
}

// JoinGameHandler creates players and their technology sheets.
type JoinGameHandler struct {
	gameRepo   game.Repository
	playerRepo player.Repository
	techRepo   player.TechnologyRepository
	notifier   common.NotificationSink
}

// NewJoinGameHandler creates the handler.
func NewJoinGameHandler(
	gameRepo game.Repository,
	playerRepo player.Repository,
	techRepo player.TechnologyRepository,
	notifier common.NotificationSink,
) *JoinGameHandler {
	return &JoinGameHandler{gameRepo: gameRepo, playerRepo: playerRepo, techRepo: techRepo, notifier: notifier}
}

// Handle executes the command.
func (h *JoinGameHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*JoinGameCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	g, err := h.gameRepo.FindByID(ctx, cmd.GameID)
	if err != nil {
		return nil, fmt.Errorf("game not found: %w", err)
	}
	if g.Status != game.StatusLobby {
		return nil, shared.NewPreconditionError("game %d is not accepting players: status is %s", g.ID, g.Status)
	}
	if cmd.Name == "" {
		return nil, shared.NewValidationError("name", "cannot be empty")
	}

	var p *player.Player
	if cmd.IsComputer {
		tier := cmd.Difficulty
		if !tier.IsValid() {
			tier = ai.TierCommander
		}
		p = player.NewComputerPlayer(g.ID, cmd.Name, cmd.Color, tier)
	} else {
		p = player.NewHumanPlayer(g.ID, cmd.Name, cmd.Color)
	}

	if err := h.playerRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	if err := h.techRepo.Save(ctx, player.NewTechnology(p.ID)); err != nil {
		return nil, err
	}

	// Best effort: a dead sink must not fail the join.
	if err := h.notifier.Notify(ctx, common.EventPlayerJoined, map[string]interface{}{
		"game_id":   g.ID,
		"player_id": p.ID,
		"name":      p.Name,
	}); err != nil {
		common.LoggerFromContext(ctx).Log("warn", "notification failed", map[string]interface{}{
			"event": common.EventPlayerJoined,
			"error": err.Error(),
		})
	}

	return &JoinGameResponse{Player: p}, nil
}
