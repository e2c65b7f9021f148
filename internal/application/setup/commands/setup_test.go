package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/common"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/setup/commands"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/ai"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/fleet"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/galaxy"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/game"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/player"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
	"github.com/franztrierweiler/colonie-ia-sub000/test/helpers"
)

// gridGenerator produces a deterministic line of habitable planets.
type gridGenerator struct{}

func (gridGenerator) Generate(spec galaxy.GeneratorSpec) []*galaxy.Planet {
	planets := make([]*galaxy.Planet, 0, spec.PlanetCount)
	for i := 0; i < spec.PlanetCount; i++ {
		p := galaxy.NewPlanet(spec.GameID, "grid", shared.NewPosition(float64(i*20), 0), 22.0, 1.0, 1000+i)
		planets = append(planets, p)
	}
	return planets
}

func TestCreateGame_OpensLobby(t *testing.T) {
	gameRepo := helpers.NewMockGameRepository()
	clock := shared.NewMockClock(helpers.StartedAt)
	handler := commands.NewCreateGameHandler(gameRepo, clock)

	resp, err := handler.Handle(context.Background(), &commands.CreateGameCommand{Name: "Alpha Sector"})
	require.NoError(t, err)

	g := resp.(*commands.CreateGameResponse).Game
	assert.Equal(t, game.StatusLobby, g.Status)
	assert.Equal(t, commands.DefaultStartYear, g.Year)
	assert.Equal(t, helpers.StartedAt, g.CreatedAt)
	assert.NotZero(t, g.ID)
}

func TestCreateGame_RejectsEmptyName(t *testing.T) {
	handler := commands.NewCreateGameHandler(helpers.NewMockGameRepository(), shared.NewMockClock(helpers.StartedAt))

	_, err := handler.Handle(context.Background(), &commands.CreateGameCommand{})

	require.Error(t, err)
	var validationErr *shared.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestJoinGame_CreatesPlayerWithTechnologySheet(t *testing.T) {
	gameRepo := helpers.NewMockGameRepository()
	playerRepo := helpers.NewMockPlayerRepository()
	techRepo := helpers.NewMockTechnologyRepository()
	sink := &helpers.RecordingNotificationSink{}
	ctx := context.Background()

	g := game.NewGame("Alpha Sector", 2300, helpers.StartedAt)
	require.NoError(t, gameRepo.Save(ctx, g))

	handler := commands.NewJoinGameHandler(gameRepo, playerRepo, techRepo, sink)

	resp, err := handler.Handle(ctx, &commands.JoinGameCommand{
		GameID: g.ID, Name: "Hegemony", Color: "red",
		IsComputer: true, Difficulty: ai.TierAdmiral,
	})
	require.NoError(t, err)

	p := resp.(*commands.JoinGameResponse).Player
	assert.True(t, p.IsComputer)
	require.NotNil(t, p.Difficulty)
	assert.Equal(t, ai.TierAdmiral, *p.Difficulty)
	assert.Equal(t, player.StartingMoney, p.Money)
	assert.Equal(t, player.StartingMetal, p.Metal)

	tech, err := techRepo.FindByPlayer(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, tech.Domains, len(player.TechDomains))

	require.Len(t, sink.Events, 1)
	assert.Equal(t, common.EventPlayerJoined, sink.Events[0].Event)
}

func TestJoinGame_InvalidDifficultyFallsBack(t *testing.T) {
	gameRepo := helpers.NewMockGameRepository()
	ctx := context.Background()
	g := game.NewGame("Alpha Sector", 2300, helpers.StartedAt)
	require.NoError(t, gameRepo.Save(ctx, g))

	handler := commands.NewJoinGameHandler(gameRepo, helpers.NewMockPlayerRepository(), helpers.NewMockTechnologyRepository(), &helpers.RecordingNotificationSink{})

	resp, err := handler.Handle(ctx, &commands.JoinGameCommand{
		GameID: g.ID, Name: "Hegemony", Color: "red",
		IsComputer: true, Difficulty: ai.Tier("IMPOSSIBLE"),
	})
	require.NoError(t, err)

	p := resp.(*commands.JoinGameResponse).Player
	assert.Equal(t, ai.TierCommander, *p.Difficulty)
}

func TestJoinGame_RejectsStartedGame(t *testing.T) {
	gameRepo := helpers.NewMockGameRepository()
	g := helpers.RunningGame(t, gameRepo)

	handler := commands.NewJoinGameHandler(gameRepo, helpers.NewMockPlayerRepository(), helpers.NewMockTechnologyRepository(), &helpers.RecordingNotificationSink{})

	_, err := handler.Handle(context.Background(), &commands.JoinGameCommand{GameID: g.ID, Name: "Late", Color: "gray"})

	require.Error(t, err)
	assert.True(t, shared.IsPrecondition(err))
}

func TestJoinGame_NotificationFailureDoesNotBlock(t *testing.T) {
	gameRepo := helpers.NewMockGameRepository()
	ctx := context.Background()
	g := game.NewGame("Alpha Sector", 2300, helpers.StartedAt)
	require.NoError(t, gameRepo.Save(ctx, g))
	sink := &helpers.RecordingNotificationSink{Err: errors.New("sink down")}

	handler := commands.NewJoinGameHandler(gameRepo, helpers.NewMockPlayerRepository(), helpers.NewMockTechnologyRepository(), sink)

	_, err := handler.Handle(ctx, &commands.JoinGameCommand{GameID: g.ID, Name: "Ada", Color: "green"})

	assert.NoError(t, err)
}

type startWorld struct {
	handler    *commands.StartGameHandler
	gameRepo   *helpers.MockGameRepository
	playerRepo *helpers.MockPlayerRepository
	planetRepo *helpers.MockPlanetRepository
	fleetRepo  *helpers.MockFleetRepository
	sink       *helpers.RecordingNotificationSink
	game       *game.Game
}

func newStartWorld(t *testing.T, players int) *startWorld {
	t.Helper()
	w := &startWorld{
		gameRepo:   helpers.NewMockGameRepository(),
		playerRepo: helpers.NewMockPlayerRepository(),
		planetRepo: helpers.NewMockPlanetRepository(),
		fleetRepo:  helpers.NewMockFleetRepository(),
		sink:       &helpers.RecordingNotificationSink{},
	}
	ctx := context.Background()
	w.game = game.NewGame("Alpha Sector", 2300, helpers.StartedAt)
	require.NoError(t, w.gameRepo.Save(ctx, w.game))
	for i := 0; i < players; i++ {
		p := player.NewComputerPlayer(w.game.ID, "Hegemony", "red", ai.TierCommander)
		require.NoError(t, w.playerRepo.Save(ctx, p))
	}
	w.handler = commands.NewStartGameHandler(
		w.gameRepo, w.playerRepo, w.planetRepo, w.fleetRepo,
		gridGenerator{}, w.sink, helpers.PassthroughTxManager{},
		shared.NewMockClock(helpers.StartedAt),
	)
	return w
}

func TestStartGame_PreparesGalaxyHomeworldsAndFleets(t *testing.T) {
	w := newStartWorld(t, 2)
	ctx := context.Background()

	resp, err := w.handler.Handle(ctx, &commands.StartGameCommand{GameID: w.game.ID, Seed: 7})
	require.NoError(t, err)

	started := resp.(*commands.StartGameResponse)
	assert.True(t, started.Game.IsRunning())
	// 2 players x 8 planets is below the floor
	assert.Equal(t, 24, started.PlanetCount)

	players, err := w.playerRepo.ListByGame(ctx, w.game.ID)
	require.NoError(t, err)
	for _, p := range players {
		homes, err := w.planetRepo.ListColoniesByOwner(ctx, p.ID)
		require.NoError(t, err)
		require.Len(t, homes, 1)
		assert.Equal(t, galaxy.PlanetDeveloped, homes[0].Status)
		assert.Positive(t, homes[0].Population)

		fleets, err := w.fleetRepo.ListByOwner(ctx, p.ID)
		require.NoError(t, err)
		require.Len(t, fleets, 1)
		assert.True(t, fleets[0].CanColonize)
		assert.Equal(t, homes[0].ID, fleets[0].CurrentPlanetID)
		assert.Equal(t, fleet.StatusStationed, fleets[0].Status)
	}

	require.Len(t, w.sink.Events, 1)
	assert.Equal(t, common.EventGameStarted, w.sink.Events[0].Event)
}

func TestStartGame_RequiresTwoPlayers(t *testing.T) {
	w := newStartWorld(t, 1)

	_, err := w.handler.Handle(context.Background(), &commands.StartGameCommand{GameID: w.game.ID})

	require.Error(t, err)
	assert.True(t, shared.IsPrecondition(err))
}

func TestStartGame_CannotStartTwice(t *testing.T) {
	w := newStartWorld(t, 2)
	ctx := context.Background()

	_, err := w.handler.Handle(ctx, &commands.StartGameCommand{GameID: w.game.ID})
	require.NoError(t, err)

	_, err = w.handler.Handle(ctx, &commands.StartGameCommand{GameID: w.game.ID})
	require.Error(t, err)
	assert.True(t, shared.IsPrecondition(err))
}
