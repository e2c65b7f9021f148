package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/adapters/persistence"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/galaxy"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
	"github.com/franztrierweiler/colonie-ia-sub000/test/helpers"
)

func TestPlanetRepository_SaveAndFind(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlanetRepository(db)

	p := galaxy.NewPlanet(1, "Altair-001", shared.NewPosition(12.5, -30.0), 18.0, 1.1, 2500)
	p.MarkExplored()
	require.True(t, p.Colonize(7).OK)
	p.Population = 1_500_000
	p.MetalRemaining = 2100

	// Act - Save
	err := repo.Save(context.Background(), p)

	// Assert
	require.NoError(t, err)
	require.NotZero(t, p.ID)

	// Act - FindByID
	found, err := repo.FindByID(context.Background(), p.ID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Altair-001", found.Name)
	assert.Equal(t, shared.NewPosition(12.5, -30.0), found.Position)
	assert.Equal(t, 18.0, found.Temperature)
	assert.Equal(t, 2500, found.MetalReserves)
	assert.Equal(t, 2100, found.MetalRemaining)
	assert.Equal(t, 1_500_000, found.Population)
	assert.Equal(t, galaxy.PlanetColonized, found.Status)
	require.NotNil(t, found.OwnerID)
	assert.Equal(t, 7, *found.OwnerID)
	assert.Equal(t, galaxy.DefaultBudgetSplit[0], found.TerraformBudget)
	assert.Equal(t, galaxy.DefaultBudgetSplit[1], found.MiningBudget)
	assert.Equal(t, galaxy.DefaultBudgetSplit[2], found.ShipsBudget)
}

func TestPlanetRepository_ListColoniesByOwnerFilters(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlanetRepository(db)
	ctx := context.Background()

	colony := helpers.ColonyPlanet(1, 7, shared.NewPosition(0, 0), 500_000)
	require.NoError(t, repo.Save(ctx, colony))

	explored := helpers.ExploredPlanet(1, shared.NewPosition(10, 0), 20, 1.0, 1000)
	require.NoError(t, repo.Save(ctx, explored))

	foreign := helpers.ColonyPlanet(1, 9, shared.NewPosition(20, 0), 500_000)
	require.NoError(t, repo.Save(ctx, foreign))

	// Act
	colonies, err := repo.ListColoniesByOwner(ctx, 7)
	all, err2 := repo.ListByGame(ctx, 1)

	// Assert
	require.NoError(t, err)
	require.Len(t, colonies, 1)
	assert.Equal(t, colony.ID, colonies[0].ID)

	require.NoError(t, err2)
	assert.Len(t, all, 3)
}

func TestPlanetRepository_SaveAllAssignsIDs(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlanetRepository(db)

	batch := []*galaxy.Planet{
		galaxy.NewPlanet(1, "Vega-001", shared.NewPosition(0, 0), 20, 1.0, 1000),
		galaxy.NewPlanet(1, "Vega-002", shared.NewPosition(50, 0), -10, 1.8, 3000),
	}

	// Act
	err := repo.SaveAll(context.Background(), batch)

	// Assert
	require.NoError(t, err)
	assert.NotZero(t, batch[0].ID)
	assert.NotZero(t, batch[1].ID)
	assert.NotEqual(t, batch[0].ID, batch[1].ID)
}

func TestPlanetRepository_UpdatePersistsMutableTraits(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlanetRepository(db)
	ctx := context.Background()

	p := helpers.ColonyPlanet(1, 7, shared.NewPosition(0, 0), 500_000)
	require.NoError(t, repo.Save(ctx, p))

	// Act - mutate and save again
	p.CurrentTemperature = 19.5
	p.MetalRemaining = 800
	require.NoError(t, repo.Save(ctx, p))

	// Assert
	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 19.5, found.CurrentTemperature)
	assert.Equal(t, 800, found.MetalRemaining)
}

func TestPlanetRepository_NotFound(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlanetRepository(db)

	// Act
	_, err := repo.FindByID(context.Background(), 999)

	// Assert
	assert.Error(t, err)
}
