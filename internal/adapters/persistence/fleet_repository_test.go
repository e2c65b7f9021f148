package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/adapters/persistence"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/fleet"
	"github.com/franztrierweiler/colonie-ia-sub000/test/helpers"
)

func TestFleetRepository_SaveAndFind(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormFleetRepository(db)

	f := helpers.StationedFleet(1, 7, 3)
	f.CanColonize = true

	// Act - Save
	err := repo.Save(context.Background(), f)

	// Assert
	require.NoError(t, err)
	require.NotZero(t, f.ID)

	// Act - FindByID
	found, err := repo.FindByID(context.Background(), f.ID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 7, found.OwnerID)
	assert.Equal(t, 10, found.TotalWeapons)
	assert.Equal(t, 10, found.TotalShields)
	assert.Equal(t, 5.0, found.Speed)
	assert.Equal(t, 60.0, found.Range)
	assert.Equal(t, 3, found.CurrentPlanetID)
	assert.Equal(t, fleet.StatusStationed, found.Status)
	assert.True(t, found.CanColonize)
	assert.Nil(t, found.DestinationPlanetID)
	assert.Nil(t, found.ArrivalTurn)
}

func TestFleetRepository_TransitPointersSurviveRoundTrip(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormFleetRepository(db)
	ctx := context.Background()

	f := helpers.StationedFleet(1, 7, 3)
	require.NoError(t, repo.Save(ctx, f))

	// Act - dispatch and save the in-transit state
	require.True(t, f.Dispatch(9, 5).OK)
	require.NoError(t, repo.Save(ctx, f))

	// Assert
	found, err := repo.FindByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, fleet.StatusInTransit, found.Status)
	require.NotNil(t, found.DestinationPlanetID)
	assert.Equal(t, 9, *found.DestinationPlanetID)
	require.NotNil(t, found.ArrivalTurn)
	assert.Equal(t, 5, *found.ArrivalTurn)
}

func TestFleetRepository_ListStationedAtExcludesTransit(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormFleetRepository(db)
	ctx := context.Background()

	garrison := helpers.StationedFleet(1, 7, 3)
	require.NoError(t, repo.Save(ctx, garrison))

	away := helpers.StationedFleet(1, 7, 3)
	require.True(t, away.Dispatch(9, 5).OK)
	require.NoError(t, repo.Save(ctx, away))

	elsewhere := helpers.StationedFleet(1, 7, 4)
	require.NoError(t, repo.Save(ctx, elsewhere))

	// Act
	stationed, err := repo.ListStationedAt(ctx, 3)

	// Assert
	require.NoError(t, err)
	require.Len(t, stationed, 1)
	assert.Equal(t, garrison.ID, stationed[0].ID)
}

func TestFleetRepository_ListByOwner(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormFleetRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, helpers.StationedFleet(1, 7, 3)))
	require.NoError(t, repo.Save(ctx, helpers.StationedFleet(1, 7, 4)))
	require.NoError(t, repo.Save(ctx, helpers.StationedFleet(1, 9, 3)))

	// Act
	fleets, err := repo.ListByOwner(ctx, 7)

	// Assert
	require.NoError(t, err)
	assert.Len(t, fleets, 2)
}
