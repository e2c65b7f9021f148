package queries_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/analysis"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/analysis/queries"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/ai"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/galaxy"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/game"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/player"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
	"github.com/franztrierweiler/colonie-ia-sub000/test/helpers"
)

type analyzerWorld struct {
	handler    *queries.AnalyzeGameStateHandler
	gameRepo   *helpers.MockGameRepository
	playerRepo *helpers.MockPlayerRepository
	planetRepo *helpers.MockPlanetRepository
	fleetRepo  *helpers.MockFleetRepository
	techRepo   *helpers.MockTechnologyRepository

	game     *game.Game
	self     *player.Player
	opponent *player.Player
}

func newAnalyzerWorld(t *testing.T) *analyzerWorld {
	t.Helper()
	w := &analyzerWorld{
		gameRepo:   helpers.NewMockGameRepository(),
		playerRepo: helpers.NewMockPlayerRepository(),
		planetRepo: helpers.NewMockPlanetRepository(),
		fleetRepo:  helpers.NewMockFleetRepository(),
		techRepo:   helpers.NewMockTechnologyRepository(),
	}
	w.game = helpers.RunningGame(t, w.gameRepo)

	ctx := context.Background()
	w.self = player.NewComputerPlayer(w.game.ID, "Hegemony", "red", ai.TierCommander)
	require.NoError(t, w.playerRepo.Save(ctx, w.self))
	w.opponent = player.NewComputerPlayer(w.game.ID, "Dominion", "blue", ai.TierCommander)
	require.NoError(t, w.playerRepo.Save(ctx, w.opponent))

	require.NoError(t, w.techRepo.Save(ctx, player.NewTechnology(w.self.ID)))
	require.NoError(t, w.techRepo.Save(ctx, player.NewTechnology(w.opponent.ID)))

	w.handler = queries.NewAnalyzeGameStateHandler(
		w.gameRepo, w.playerRepo, w.planetRepo, w.fleetRepo, w.techRepo,
		helpers.NewStubOracle(w.planetRepo),
	)
	return w
}

func (w *analyzerWorld) analyze(t *testing.T) *analysis.GameAnalysis {
	t.Helper()
	a, err := w.handler.Analyze(context.Background(), w.game.ID, w.self.ID)
	require.NoError(t, err)
	return a
}

func TestAnalyze_EconomySnapshot(t *testing.T) {
	w := newAnalyzerWorld(t)
	ctx := context.Background()

	colony := helpers.ColonyPlanet(w.game.ID, w.self.ID, shared.NewPosition(0, 0), 2_000_000)
	require.True(t, colony.SetBudgets(0, 100, 0).OK)
	require.NoError(t, w.planetRepo.Save(ctx, colony))

	a := w.analyze(t)

	// 100 flat + 9 per million inhabitants
	assert.Equal(t, 118, a.Economy.EstimatedIncome)
	// full mining budget, reserves not limiting
	assert.Equal(t, 200, a.Economy.EstimatedMining)
	assert.Equal(t, player.StartingMoney, a.Economy.Money)
	assert.Equal(t, player.StartingMetal, a.Economy.Metal)
	assert.Zero(t, a.Economy.DebtToIncomeRatio)
}

func TestAnalyze_ColonizationTargetsRankedAndClassified(t *testing.T) {
	w := newAnalyzerWorld(t)
	ctx := context.Background()

	colony := helpers.ColonyPlanet(w.game.ID, w.self.ID, shared.NewPosition(0, 0), 1_000_000)
	require.NoError(t, w.planetRepo.Save(ctx, colony))

	near := helpers.ExploredPlanet(w.game.ID, shared.NewPosition(30, 0), 22.0, 1.0, 2000)
	tankerOnly := helpers.ExploredPlanet(w.game.ID, shared.NewPosition(80, 0), 22.0, 1.0, 2000)
	far := helpers.ExploredPlanet(w.game.ID, shared.NewPosition(200, 0), 22.0, 1.0, 2000)
	for _, p := range []*galaxy.Planet{near, tankerOnly, far} {
		require.NoError(t, w.planetRepo.Save(ctx, p))
	}

	require.NoError(t, w.fleetRepo.Save(ctx, helpers.StationedFleet(w.game.ID, w.self.ID, colony.ID)))

	a := w.analyze(t)

	require.Len(t, a.ColonizationTargets, 3)
	// score over distance puts the closest equivalent planet first
	assert.Equal(t, near.ID, a.ColonizationTargets[0].PlanetID)
	assert.True(t, a.ColonizationTargets[0].Reachable)
	assert.False(t, a.ColonizationTargets[0].NeedsTanker)

	assert.Equal(t, tankerOnly.ID, a.ColonizationTargets[1].PlanetID)
	assert.False(t, a.ColonizationTargets[1].Reachable)
	assert.True(t, a.ColonizationTargets[1].NeedsTanker)

	assert.Equal(t, far.ID, a.ColonizationTargets[2].PlanetID)
	assert.False(t, a.ColonizationTargets[2].Reachable)
	assert.False(t, a.ColonizationTargets[2].NeedsTanker)
}

func TestAnalyze_ExcludesOwnedAndHostilePlanetsFromTargets(t *testing.T) {
	w := newAnalyzerWorld(t)
	ctx := context.Background()

	colony := helpers.ColonyPlanet(w.game.ID, w.self.ID, shared.NewPosition(0, 0), 1_000_000)
	enemy := helpers.ColonyPlanet(w.game.ID, w.opponent.ID, shared.NewPosition(40, 0), 1_000_000)
	hostile := helpers.ExploredPlanet(w.game.ID, shared.NewPosition(20, 0), 22.0, 1.0, 1000)
	hostile.Status = galaxy.PlanetHostile
	for _, p := range []*galaxy.Planet{colony, enemy, hostile} {
		require.NoError(t, w.planetRepo.Save(ctx, p))
	}

	a := w.analyze(t)

	assert.Empty(t, a.ColonizationTargets)
}

func TestAnalyze_ThreatsListInboundOpponentFleets(t *testing.T) {
	w := newAnalyzerWorld(t)
	ctx := context.Background()

	colony := helpers.ColonyPlanet(w.game.ID, w.self.ID, shared.NewPosition(0, 0), 1_000_000)
	require.NoError(t, w.planetRepo.Save(ctx, colony))

	raider := helpers.StationedFleet(w.game.ID, w.opponent.ID, 99)
	require.True(t, raider.Dispatch(colony.ID, 5).OK)
	require.NoError(t, w.fleetRepo.Save(ctx, raider))

	// a stationed opponent fleet elsewhere is not a threat
	require.NoError(t, w.fleetRepo.Save(ctx, helpers.StationedFleet(w.game.ID, w.opponent.ID, 99)))

	a := w.analyze(t)

	require.Len(t, a.Threats, 1)
	assert.True(t, a.UnderThreat())
	assert.Equal(t, w.opponent.ID, a.Threats[0].AttackerID)
	assert.Equal(t, colony.ID, a.Threats[0].TargetPlanetID)
	assert.Equal(t, 5, a.Threats[0].ArrivalTurn)
	assert.InDelta(t, 20.0, a.Threats[0].EstimatedPower, 1e-9)
}

func TestAnalyze_MilitaryPowerRatio(t *testing.T) {
	w := newAnalyzerWorld(t)
	ctx := context.Background()

	colony := helpers.ColonyPlanet(w.game.ID, w.self.ID, shared.NewPosition(0, 0), 1_000_000)
	require.NoError(t, w.planetRepo.Save(ctx, colony))

	own := helpers.StationedFleet(w.game.ID, w.self.ID, colony.ID)
	own.TotalWeapons, own.TotalShields = 30, 10
	require.NoError(t, w.fleetRepo.Save(ctx, own))

	opp := helpers.StationedFleet(w.game.ID, w.opponent.ID, 99)
	require.NoError(t, w.fleetRepo.Save(ctx, opp))

	a := w.analyze(t)

	assert.Equal(t, 40, a.Military.OwnPower)
	assert.Equal(t, 1, a.Military.OwnFleetCount)
	assert.Equal(t, 20, a.Military.OpponentPower[w.opponent.ID])
	assert.InDelta(t, 2.0, a.MilitaryAdvantage(), 1e-9)
}

func TestAnalyze_TechStanding(t *testing.T) {
	w := newAnalyzerWorld(t)
	ctx := context.Background()

	ahead := player.NewTechnology(w.opponent.ID)
	ahead.Domains[player.TechWeapons].Level = 5
	require.NoError(t, w.techRepo.Save(ctx, ahead))

	a := w.analyze(t)

	assert.Equal(t, analysis.TechBehind, a.TechStanding[w.opponent.ID])
	assert.Zero(t, a.OwnTechTotal)
}

func TestAnalyze_OpportunitiesWeightCaptureTargets(t *testing.T) {
	w := newAnalyzerWorld(t)
	ctx := context.Background()

	colony := helpers.ColonyPlanet(w.game.ID, w.self.ID, shared.NewPosition(0, 0), 1_000_000)
	enemy := helpers.ColonyPlanet(w.game.ID, w.opponent.ID, shared.NewPosition(50, 0), 1_000_000)
	empty := helpers.ExploredPlanet(w.game.ID, shared.NewPosition(30, 0), 22.0, 1.0, 2000)
	for _, p := range []*galaxy.Planet{colony, enemy, empty} {
		require.NoError(t, w.planetRepo.Save(ctx, p))
	}

	a := w.analyze(t)

	require.Len(t, a.Opportunities, 2)
	// undefended enemy colony outranks the empty planet despite the distance
	assert.Equal(t, enemy.ID, a.Opportunities[0].PlanetID)
	require.NotNil(t, a.Opportunities[0].OwnerID)
	assert.Equal(t, w.opponent.ID, *a.Opportunities[0].OwnerID)
	assert.Nil(t, a.Opportunities[1].OwnerID)
}

func TestAnalyze_ExpansionPressure(t *testing.T) {
	w := newAnalyzerWorld(t)
	ctx := context.Background()

	colony := helpers.ColonyPlanet(w.game.ID, w.self.ID, shared.NewPosition(0, 0), 1_000_000)
	require.NoError(t, w.planetRepo.Save(ctx, colony))

	a := w.analyze(t)

	assert.True(t, a.NeedsExpansion)
	assert.Zero(t, a.MetalScarcity)
}

func TestAnalyze_MetalScarcityTracksDepletion(t *testing.T) {
	w := newAnalyzerWorld(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		colony := helpers.ColonyPlanet(w.game.ID, w.self.ID, shared.NewPosition(float64(i*10), 0), 1_000_000)
		colony.MetalRemaining = 200 // 2000 in reserves
		require.NoError(t, w.planetRepo.Save(ctx, colony))
	}

	a := w.analyze(t)

	assert.InDelta(t, 0.9, a.MetalScarcity, 1e-9)
	// five colonies but reserves nearly dry
	assert.True(t, a.NeedsExpansion)
}

func TestAnalyze_UnknownGameFails(t *testing.T) {
	w := newAnalyzerWorld(t)

	_, err := w.handler.Analyze(context.Background(), 999, w.self.ID)
	assert.Error(t, err)
}
