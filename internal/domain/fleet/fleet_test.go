package fleet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/fleet"
)

func stationedFleet() *fleet.Fleet {
	return &fleet.Fleet{
		ID:              1,
		GameID:          1,
		OwnerID:         1,
		Name:            "First Expedition",
		TotalWeapons:    12,
		TotalShields:    8,
		Speed:           5.0,
		Range:           60.0,
		CurrentPlanetID: 10,
		Status:          fleet.StatusStationed,
		CanColonize:     true,
	}
}

func TestPower_SumsWeaponsAndShields(t *testing.T) {
	f := stationedFleet()

	assert.Equal(t, 20, f.Power())
}

func TestTravelTurns_RoundsUp(t *testing.T) {
	f := stationedFleet()

	assert.Equal(t, 2, f.TravelTurns(10.0))
	assert.Equal(t, 3, f.TravelTurns(10.1))
	assert.Equal(t, 1, f.TravelTurns(0.5))
}

func TestTravelTurns_ImmobileFleet(t *testing.T) {
	f := stationedFleet()
	f.Speed = 0

	assert.Equal(t, -1, f.TravelTurns(10.0))
}

func TestDispatch_MarksTransit(t *testing.T) {
	f := stationedFleet()

	require.True(t, f.Dispatch(42, 7).OK)

	assert.Equal(t, fleet.StatusInTransit, f.Status)
	assert.False(t, f.IsAvailable())
	require.NotNil(t, f.DestinationPlanetID)
	assert.Equal(t, 42, *f.DestinationPlanetID)
	require.NotNil(t, f.ArrivalTurn)
	assert.Equal(t, 7, *f.ArrivalTurn)
}

func TestDispatch_RejectsFleetInTransit(t *testing.T) {
	f := stationedFleet()
	require.True(t, f.Dispatch(42, 7).OK)

	assert.False(t, f.Dispatch(43, 9).OK)
	assert.Equal(t, 42, *f.DestinationPlanetID)
}

func TestArrive_StationsAtDestination(t *testing.T) {
	f := stationedFleet()
	require.True(t, f.Dispatch(42, 7).OK)

	f.Arrive()

	assert.Equal(t, fleet.StatusStationed, f.Status)
	assert.Equal(t, 42, f.CurrentPlanetID)
	assert.Nil(t, f.DestinationPlanetID)
	assert.Nil(t, f.ArrivalTurn)
	assert.True(t, f.IsAvailable())
}

func TestConsumeColonyUnit_OneShot(t *testing.T) {
	f := stationedFleet()

	require.True(t, f.ConsumeColonyUnit().OK)
	assert.False(t, f.CanColonize)
	assert.False(t, f.ConsumeColonyUnit().OK)
}
