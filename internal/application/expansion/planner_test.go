package expansion_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/expansion"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/fleet"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/galaxy"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
	"github.com/franztrierweiler/colonie-ia-sub000/test/helpers"
)

type plannerWorld struct {
	planner    *expansion.Planner
	planetRepo *helpers.MockPlanetRepository
	fleetRepo  *helpers.MockFleetRepository
	oracle     *helpers.StubOracle
}

func newPlannerWorld() *plannerWorld {
	w := &plannerWorld{
		planetRepo: helpers.NewMockPlanetRepository(),
		fleetRepo:  helpers.NewMockFleetRepository(),
	}
	w.oracle = helpers.NewStubOracle(w.planetRepo)
	w.planner = expansion.NewPlanner(w.planetRepo, w.fleetRepo, w.oracle)
	return w
}

func (w *plannerWorld) savePlanet(t *testing.T, p *galaxy.Planet) *galaxy.Planet {
	t.Helper()
	require.NoError(t, w.planetRepo.Save(context.Background(), p))
	return p
}

func (w *plannerWorld) saveFleet(t *testing.T, f *fleet.Fleet) *fleet.Fleet {
	t.Helper()
	require.NoError(t, w.fleetRepo.Save(context.Background(), f))
	return f
}

func TestFindColonizationTargets_DiscardsBeyondDoubleRange(t *testing.T) {
	w := newPlannerWorld()
	colony := w.savePlanet(t, helpers.ColonyPlanet(1, 1, shared.NewPosition(0, 0), 1_000_000))
	near := w.savePlanet(t, helpers.ExploredPlanet(1, shared.NewPosition(40, 0), 22.0, 1.0, 2000))
	w.savePlanet(t, helpers.ExploredPlanet(1, shared.NewPosition(150, 0), 22.0, 1.0, 2000))
	w.saveFleet(t, helpers.StationedFleet(1, 1, colony.ID)) // range 60

	targets, err := w.planner.FindColonizationTargets(context.Background(), 1, 1, 0)

	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, near.ID, targets[0].PlanetID)
	assert.True(t, targets[0].Reachable)
}

func TestFindColonizationTargets_RangeTiers(t *testing.T) {
	w := newPlannerWorld()
	colony := w.savePlanet(t, helpers.ColonyPlanet(1, 1, shared.NewPosition(0, 0), 1_000_000))
	w.savePlanet(t, helpers.ExploredPlanet(1, shared.NewPosition(50, 0), 22.0, 1.0, 2000))
	w.savePlanet(t, helpers.ExploredPlanet(1, shared.NewPosition(80, 0), 22.0, 1.0, 2000))
	w.savePlanet(t, helpers.ExploredPlanet(1, shared.NewPosition(110, 0), 22.0, 1.0, 2000))
	w.saveFleet(t, helpers.StationedFleet(1, 1, colony.ID))

	targets, err := w.planner.FindColonizationTargets(context.Background(), 1, 1, 0)

	require.NoError(t, err)
	require.Len(t, targets, 3)
	assert.True(t, targets[0].Reachable)
	assert.True(t, targets[1].NeedsTanker)
	assert.False(t, targets[2].Reachable)
	assert.False(t, targets[2].NeedsTanker)
}

func TestFindColonizationTargets_SkipsColoniesAndHostiles(t *testing.T) {
	w := newPlannerWorld()
	colony := w.savePlanet(t, helpers.ColonyPlanet(1, 1, shared.NewPosition(0, 0), 1_000_000))
	w.savePlanet(t, helpers.ColonyPlanet(1, 2, shared.NewPosition(10, 0), 1_000_000))
	hostile := helpers.ExploredPlanet(1, shared.NewPosition(20, 0), 22.0, 1.0, 2000)
	hostile.Status = galaxy.PlanetHostile
	w.savePlanet(t, hostile)
	w.saveFleet(t, helpers.StationedFleet(1, 1, colony.ID))

	targets, err := w.planner.FindColonizationTargets(context.Background(), 1, 1, 0)

	require.NoError(t, err)
	assert.Empty(t, targets)
}

func TestFindColonizationTargets_HonorsMax(t *testing.T) {
	w := newPlannerWorld()
	colony := w.savePlanet(t, helpers.ColonyPlanet(1, 1, shared.NewPosition(0, 0), 1_000_000))
	for i := 0; i < 4; i++ {
		w.savePlanet(t, helpers.ExploredPlanet(1, shared.NewPosition(float64(10+i*10), 0), 22.0, 1.0, 2000))
	}
	w.saveFleet(t, helpers.StationedFleet(1, 1, colony.ID))

	targets, err := w.planner.FindColonizationTargets(context.Background(), 1, 1, 2)

	require.NoError(t, err)
	assert.Len(t, targets, 2)
}

func TestPlanColonization_NoTargetAssignedTwice(t *testing.T) {
	w := newPlannerWorld()
	colony := w.savePlanet(t, helpers.ColonyPlanet(1, 1, shared.NewPosition(0, 0), 1_000_000))
	w.savePlanet(t, helpers.ExploredPlanet(1, shared.NewPosition(30, 0), 22.0, 1.0, 2000))
	w.savePlanet(t, helpers.ExploredPlanet(1, shared.NewPosition(40, 0), 22.0, 1.0, 2000))

	first := helpers.StationedFleet(1, 1, colony.ID)
	first.CanColonize = true
	second := helpers.StationedFleet(1, 1, colony.ID)
	second.CanColonize = true
	w.saveFleet(t, first)
	w.saveFleet(t, second)

	targets, err := w.planner.FindColonizationTargets(context.Background(), 1, 1, 0)
	require.NoError(t, err)
	require.Len(t, targets, 2)

	orders, err := w.planner.PlanColonization(context.Background(), 1, 1, targets)

	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.NotEqual(t, orders[0].PlanetID, orders[1].PlanetID)
	assert.NotEqual(t, orders[0].FleetID, orders[1].FleetID)
}

func TestPlanColonization_SkipsUnavailableAndNonColonyFleets(t *testing.T) {
	w := newPlannerWorld()
	colony := w.savePlanet(t, helpers.ColonyPlanet(1, 1, shared.NewPosition(0, 0), 1_000_000))
	w.savePlanet(t, helpers.ExploredPlanet(1, shared.NewPosition(30, 0), 22.0, 1.0, 2000))

	combat := helpers.StationedFleet(1, 1, colony.ID) // no colony unit
	inTransit := helpers.StationedFleet(1, 1, colony.ID)
	inTransit.CanColonize = true
	require.True(t, inTransit.Dispatch(5, 3).OK)
	w.saveFleet(t, combat)
	w.saveFleet(t, inTransit)

	targets, err := w.planner.FindColonizationTargets(context.Background(), 1, 1, 0)
	require.NoError(t, err)

	orders, err := w.planner.PlanColonization(context.Background(), 1, 1, targets)

	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestPlanColonization_HonorsOracleRefusal(t *testing.T) {
	w := newPlannerWorld()
	colony := w.savePlanet(t, helpers.ColonyPlanet(1, 1, shared.NewPosition(0, 0), 1_000_000))
	w.savePlanet(t, helpers.ExploredPlanet(1, shared.NewPosition(30, 0), 22.0, 1.0, 2000))

	ark := helpers.StationedFleet(1, 1, colony.ID)
	ark.CanColonize = true
	w.saveFleet(t, ark)
	w.oracle.RefuseAll = true

	targets, err := w.planner.FindColonizationTargets(context.Background(), 1, 1, 0)
	require.NoError(t, err)

	orders, err := w.planner.PlanColonization(context.Background(), 1, 1, targets)

	require.NoError(t, err)
	assert.Empty(t, orders)
}
