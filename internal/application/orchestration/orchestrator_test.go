package orchestration_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	analysisQuery "github.com/franztrierweiler/colonie-ia-sub000/internal/application/analysis/queries"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/common"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/decision"
	decisionCmd "github.com/franztrierweiler/colonie-ia-sub000/internal/application/decision/commands"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/expansion"
	expansionCmd "github.com/franztrierweiler/colonie-ia-sub000/internal/application/expansion/commands"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/orchestration"
	turnCmd "github.com/franztrierweiler/colonie-ia-sub000/internal/application/turn/commands"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/ai"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/game"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/player"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
	"github.com/franztrierweiler/colonie-ia-sub000/test/helpers"
)

type aiObservation struct {
	gameID  int
	skipped bool
	failed  bool
}

type turnObservation struct {
	gameID     int
	turn       int
	eliminated int
}

// recordingMetrics captures observations for assertions.
type recordingMetrics struct {
	mu    sync.Mutex
	ai    []aiObservation
	turns []turnObservation
}

func (m *recordingMetrics) ObserveAIDecision(gameID int, skipped, failed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ai = append(m.ai, aiObservation{gameID: gameID, skipped: skipped, failed: failed})
}

func (m *recordingMetrics) ObserveTurnResolved(gameID, turn, eliminated int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = append(m.turns, turnObservation{gameID: gameID, turn: turn, eliminated: eliminated})
}

type orchestratorWorld struct {
	orchestrator *orchestration.Orchestrator

	gameRepo   *helpers.MockGameRepository
	playerRepo *helpers.MockPlayerRepository
	planetRepo *helpers.MockPlanetRepository
	fleetRepo  *helpers.MockFleetRepository
	techRepo   *helpers.MockTechnologyRepository

	notifier *helpers.RecordingNotificationSink
	metrics  *recordingMetrics

	game *game.Game
}

func newOrchestratorWorld(t *testing.T) *orchestratorWorld {
	t.Helper()
	w := &orchestratorWorld{
		gameRepo:   helpers.NewMockGameRepository(),
		playerRepo: helpers.NewMockPlayerRepository(),
		planetRepo: helpers.NewMockPlanetRepository(),
		fleetRepo:  helpers.NewMockFleetRepository(),
		notifier:   &helpers.RecordingNotificationSink{},
		metrics:    &recordingMetrics{},
	}
	w.techRepo = helpers.NewMockTechnologyRepository()
	breakthroughRepo := helpers.NewMockBreakthroughRepository()
	designRepo := helpers.NewMockDesignRepository()
	queueRepo := helpers.NewMockQueueRepository()

	w.game = helpers.RunningGame(t, w.gameRepo)

	oracle := helpers.NewStubOracle(w.planetRepo)
	analyzer := analysisQuery.NewAnalyzeGameStateHandler(
		w.gameRepo, w.playerRepo, w.planetRepo, w.fleetRepo, w.techRepo, oracle,
	)
	processAI := decisionCmd.NewProcessAITurnHandler(
		w.gameRepo, w.playerRepo, w.planetRepo, w.fleetRepo, w.techRepo, breakthroughRepo,
		analyzer,
		decision.NewProductionPlanner(designRepo, queueRepo),
		decision.NewMovementPlanner(w.planetRepo, expansion.NewPlanner(w.planetRepo, w.fleetRepo, oracle)),
		helpers.PassthroughTxManager{},
	)
	clock := shared.NewMockClock(helpers.StartedAt)
	colonize := expansionCmd.NewExecuteColonizationHandler(w.fleetRepo, w.planetRepo, w.playerRepo)
	processTurn := turnCmd.NewProcessTurnHandler(
		w.gameRepo, w.playerRepo, w.planetRepo, w.fleetRepo, w.techRepo, breakthroughRepo,
		designRepo, queueRepo, colonize,
		helpers.PassthroughTxManager{}, clock,
	)
	w.orchestrator = orchestration.NewOrchestrator(
		w.gameRepo, w.playerRepo,
		processAI,
		decisionCmd.NewExecuteFleetMovementsHandler(w.fleetRepo),
		processTurn,
		turnCmd.NewCheckVictoryHandler(w.gameRepo, w.playerRepo, clock),
		w.notifier,
		rate.NewLimiter(rate.Inf, 1),
		w.metrics,
	)
	return w
}

// addComputerPlayer seeds a computer player with a tech sheet and one colony.
// Overmind never trips the decision error gate, which keeps runs predictable.
func (w *orchestratorWorld) addComputerPlayer(t *testing.T, gameID int) *player.Player {
	t.Helper()
	ctx := context.Background()
	p := player.NewComputerPlayer(gameID, "Hegemony", "red", ai.TierOvermind)
	require.NoError(t, w.playerRepo.Save(ctx, p))
	require.NoError(t, w.techRepo.Save(ctx, player.NewTechnology(p.ID)))
	require.NoError(t, w.planetRepo.Save(ctx, helpers.ColonyPlanet(gameID, p.ID, shared.NewPosition(0, 0), 1_000_000)))
	return p
}

func TestRunOnce_SkipsGamesNotRunning(t *testing.T) {
	w := newOrchestratorWorld(t)
	lobby := game.NewGame("waiting-room", 2300, helpers.StartedAt)
	require.NoError(t, w.gameRepo.Save(context.Background(), lobby))

	resolved, err := w.orchestrator.RunOnce(context.Background(), lobby.ID)

	require.NoError(t, err)
	assert.False(t, resolved)
	assert.Empty(t, w.notifier.Events)
	assert.Empty(t, w.metrics.turns)
}

func TestRunOnce_WaitsForHumanSubmission(t *testing.T) {
	w := newOrchestratorWorld(t)
	w.addComputerPlayer(t, w.game.ID)
	human := player.NewHumanPlayer(w.game.ID, "Ada", "green")
	require.NoError(t, w.playerRepo.Save(context.Background(), human))

	resolved, err := w.orchestrator.RunOnce(context.Background(), w.game.ID)

	require.NoError(t, err)
	assert.False(t, resolved)

	// the computer player still decided while the human holds the turn
	require.Len(t, w.metrics.ai, 1)
	assert.False(t, w.metrics.ai[0].failed)
	assert.Empty(t, w.metrics.turns)

	saved, err := w.gameRepo.FindByID(context.Background(), w.game.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, saved.Turn)
}

func TestRunOnce_ResolvesWhenAllSubmitted(t *testing.T) {
	w := newOrchestratorWorld(t)
	w.addComputerPlayer(t, w.game.ID)
	w.addComputerPlayer(t, w.game.ID)
	ctx := context.Background()

	resolved, err := w.orchestrator.RunOnce(ctx, w.game.ID)

	require.NoError(t, err)
	assert.True(t, resolved)

	saved, err := w.gameRepo.FindByID(ctx, w.game.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, saved.Turn)
	assert.Equal(t, 2301, saved.Year)

	require.Len(t, w.metrics.ai, 2)
	require.Len(t, w.metrics.turns, 1)
	assert.Equal(t, 1, w.metrics.turns[0].turn)
	assert.Equal(t, 0, w.metrics.turns[0].eliminated)

	require.Len(t, w.notifier.Events, 1)
	assert.Equal(t, common.EventTurnEnded, w.notifier.Events[0].Event)
	assert.Equal(t, w.game.ID, w.notifier.Events[0].Payload["game_id"])
	assert.Equal(t, 1, w.notifier.Events[0].Payload["turn"])
}

func TestRunOnce_LastSurvivorEndsTheGame(t *testing.T) {
	w := newOrchestratorWorld(t)
	survivor := w.addComputerPlayer(t, w.game.ID)
	fallen := player.NewComputerPlayer(w.game.ID, "fallen", "gray", ai.TierOvermind)
	fallen.Eliminate(helpers.StartedAt)
	require.NoError(t, w.playerRepo.Save(context.Background(), fallen))
	ctx := context.Background()

	resolved, err := w.orchestrator.RunOnce(ctx, w.game.ID)

	require.NoError(t, err)
	assert.True(t, resolved)

	saved, err := w.gameRepo.FindByID(ctx, w.game.ID)
	require.NoError(t, err)
	assert.Equal(t, game.StatusFinished, saved.Status)
	require.NotNil(t, saved.WinnerID)
	assert.Equal(t, survivor.ID, *saved.WinnerID)

	// a finished game is a no-op on the next pass
	resolved, err = w.orchestrator.RunOnce(ctx, w.game.ID)
	require.NoError(t, err)
	assert.False(t, resolved)
}

func TestRunOnce_NotifierFailureIsBestEffort(t *testing.T) {
	w := newOrchestratorWorld(t)
	w.addComputerPlayer(t, w.game.ID)
	w.addComputerPlayer(t, w.game.ID)
	w.notifier.Err = errors.New("webhook down")

	resolved, err := w.orchestrator.RunOnce(context.Background(), w.game.ID)

	require.NoError(t, err)
	assert.True(t, resolved)
}

func TestRunOnce_UnknownGameFails(t *testing.T) {
	w := newOrchestratorWorld(t)

	_, err := w.orchestrator.RunOnce(context.Background(), 404)

	assert.Error(t, err)
}

func TestRunOnce_SettlesPlannedColonizationTarget(t *testing.T) {
	w := newOrchestratorWorld(t)
	ctx := context.Background()

	settler := w.addComputerPlayer(t, w.game.ID)
	colonies, err := w.planetRepo.ListColoniesByOwner(ctx, settler.ID)
	require.NoError(t, err)
	home := colonies[0]

	// a human far away keeps the game alive without competing for the target
	human := player.NewHumanPlayer(w.game.ID, "Ada", "green")
	require.NoError(t, w.playerRepo.Save(ctx, human))
	require.NoError(t, w.techRepo.Save(ctx, player.NewTechnology(human.ID)))
	require.NoError(t, w.planetRepo.Save(ctx,
		helpers.ColonyPlanet(w.game.ID, human.ID, shared.NewPosition(300, 0), 1_000_000)))

	ark := helpers.StationedFleet(w.game.ID, settler.ID, home.ID)
	ark.CanColonize = true
	require.NoError(t, w.fleetRepo.Save(ctx, ark))

	target := helpers.ExploredPlanet(w.game.ID, shared.NewPosition(20, 0), 22.0, 1.0, 3000)
	require.NoError(t, w.planetRepo.Save(ctx, target))

	// run full turns until the ark has crossed the 20 units at fleet speed
	for i := 0; i < 8; i++ {
		h2, err := w.playerRepo.FindByID(ctx, human.ID)
		require.NoError(t, err)
		h2.SubmitTurn()
		require.NoError(t, w.playerRepo.Save(ctx, h2))

		resolved, err := w.orchestrator.RunOnce(ctx, w.game.ID)
		require.NoError(t, err)
		require.True(t, resolved)

		settled, err := w.planetRepo.FindByID(ctx, target.ID)
		require.NoError(t, err)
		if settled.IsColony() {
			break
		}
	}

	settled, err := w.planetRepo.FindByID(ctx, target.ID)
	require.NoError(t, err)
	assert.True(t, settled.IsColony())
	require.NotNil(t, settled.OwnerID)
	assert.Equal(t, settler.ID, *settled.OwnerID)

	landed, err := w.fleetRepo.FindByID(ctx, ark.ID)
	require.NoError(t, err)
	assert.Equal(t, target.ID, landed.CurrentPlanetID)
	assert.False(t, landed.CanColonize)
}

func TestRunAll_AdvancesEveryRunningGame(t *testing.T) {
	w := newOrchestratorWorld(t)
	w.addComputerPlayer(t, w.game.ID)
	w.addComputerPlayer(t, w.game.ID)

	second := helpers.RunningGame(t, w.gameRepo)
	w.addComputerPlayer(t, second.ID)
	w.addComputerPlayer(t, second.ID)

	lobby := game.NewGame("waiting-room", 2300, helpers.StartedAt)
	require.NoError(t, w.gameRepo.Save(context.Background(), lobby))

	require.NoError(t, w.orchestrator.RunAll(context.Background()))

	for _, id := range []int{w.game.ID, second.ID} {
		saved, err := w.gameRepo.FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, 1, saved.Turn, "game %d", id)
	}
	saved, err := w.gameRepo.FindByID(context.Background(), lobby.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, saved.Turn)
	assert.Len(t, w.metrics.turns, 2)
}
