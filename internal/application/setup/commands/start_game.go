package commands

import (
	"context"
	"fmt"
	"sort"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/analysis"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/common"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/fleet"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/galaxy"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/game"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/player"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
)

// Galaxy sizing defaults.
const (
	planetsPerPlayer = 8
	minPlanets       = 24
	defaultRadius    = 500.0
)

// Starting fleet loadout.
const (
	startingWeapons = 10
	startingShields = 10
	startingSpeed   = 5.0
	startingRange   = 60.0
)

// StartGameCommand launches a lobby: the galaxy is generated, each player
// gets a homeworld and a starting fleet, and turns begin.
type StartGameCommand struct {
	GameID int
	Seed   int64
}

// StartGameResponse returns the started game.
type StartGameResponse struct {
	Game        *game.Game
	PlanetCount int
}

// StartGameHandler consumes the external galaxy generator's output and
// prepares the initial entity graph.
type StartGameHandler struct {
	gameRepo   game.Repository
	playerRepo player.Repository
	planetRepo galaxy.Repository
	fleetRepo  fleet.Repository
	generator  galaxy.Generator
	notifier   common.NotificationSink
	tx         common.TxManager
	clock      shared.Clock
}

// NewStartGameHandler creates the handler.
func NewStartGameHandler(
	gameRepo game.Repository,
	playerRepo player.Repository,
	planetRepo galaxy.Repository,
	fleetRepo fleet.Repository,
	generator galaxy.Generator,
	notifier common.NotificationSink,
	tx common.TxManager,
	clock shared.Clock,
) *StartGameHandler {
	return &StartGameHandler{
		gameRepo:   gameRepo,
		playerRepo: playerRepo,
		planetRepo: planetRepo,
		fleetRepo:  fleetRepo,
		generator:  generator,
		notifier:   notifier,
		tx:         tx,
		clock:      clock,
	}
}

// Handle executes the command.
func (h *StartGameHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*StartGameCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	g, err := h.gameRepo.FindByID(ctx, cmd.GameID)
	if err != nil {
		return nil, fmt.Errorf("game not found: %w", err)
	}
	players, err := h.playerRepo.ListByGame(ctx, cmd.GameID)
	if err != nil {
		return nil, err
	}
	if len(players) < 2 {
		return nil, shared.NewPreconditionError("game %d needs at least 2 players to start", g.ID)
	}

	if err := g.Start(h.clock.Now()); err != nil {
		return nil, err
	}

	count := planetsPerPlayer * len(players)
	if count < minPlanets {
		count = minPlanets
	}
	planets := h.generator.Generate(galaxy.GeneratorSpec{
		GameID:      g.ID,
		PlanetCount: count,
		Radius:      defaultRadius,
		Seed:        cmd.Seed,
	})

	err = h.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if err := h.planetRepo.SaveAll(txCtx, planets); err != nil {
			return err
		}
		if err := h.assignHomeworlds(txCtx, players, planets); err != nil {
			return err
		}
		return h.gameRepo.Save(txCtx, g)
	})
	if err != nil {
		return nil, err
	}

	if err := h.notifier.Notify(ctx, common.EventGameStarted, map[string]interface{}{
		"game_id": g.ID,
		"planets": len(planets),
		"players": len(players),
	}); err != nil {
		common.LoggerFromContext(ctx).Log("warn", "notification failed", map[string]interface{}{
			"event": common.EventGameStarted,
			"error": err.Error(),
		})
	}

	return &StartGameResponse{Game: g, PlanetCount: len(planets)}, nil
}

// assignHomeworlds gives every player the most habitable remaining planet,
// prepared as a developed colony, plus a colony-capable starting fleet.
func (h *StartGameHandler) assignHomeworlds(ctx context.Context, players []*player.Player, planets []*galaxy.Planet) error {
	ranked := make([]*galaxy.Planet, len(planets))
	copy(ranked, planets)
	sort.Slice(ranked, func(i, j int) bool {
		return analysis.ScorePlanet(ranked[i]) > analysis.ScorePlanet(ranked[j])
	})

	if len(ranked) < len(players) {
		return shared.NewGameError("not enough planets for homeworlds")
	}

	for i, p := range players {
		home := ranked[i]
		home.PrepareAsHomeworld(p.ID)
		p.PlanetCount = 1
		if err := h.planetRepo.Save(ctx, home); err != nil {
			return err
		}
		if err := h.playerRepo.Save(ctx, p); err != nil {
			return err
		}

		f := &fleet.Fleet{
			GameID:          home.GameID,
			OwnerID:         p.ID,
			Name:            fmt.Sprintf("%s Expedition", p.Name),
			TotalWeapons:    startingWeapons,
			TotalShields:    startingShields,
			Speed:           startingSpeed,
			Range:           startingRange,
			CurrentPlanetID: home.ID,
			Status:          fleet.StatusStationed,
			CanColonize:     true,
		}
		if err := h.fleetRepo.Save(ctx, f); err != nil {
			return err
		}
	}
	return nil
}
