package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/fleet"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/galaxy"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/game"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
)

// StartedAt is the fixed wall clock all fixtures use.
var StartedAt = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

// RunningGame creates and saves a game already in the running state.
func RunningGame(t *testing.T, repo *MockGameRepository) *game.Game {
	t.Helper()
	g := game.NewGame("fixture", 2300, StartedAt)
	if err := g.Start(StartedAt); err != nil {
		t.Fatalf("failed to start fixture game: %v", err)
	}
	if err := repo.Save(context.Background(), g); err != nil {
		t.Fatalf("failed to save fixture game: %v", err)
	}
	return g
}

// ColonyPlanet creates an owned, colonized planet with sane defaults.
func ColonyPlanet(gameID, ownerID int, pos shared.Position, population int) *galaxy.Planet {
	p := galaxy.NewPlanet(gameID, "fixture-colony", pos, 22.0, 1.0, 2000)
	p.MarkExplored()
	p.Colonize(ownerID)
	p.Population = population
	return p
}

// ExploredPlanet creates an unowned explored planet.
func ExploredPlanet(gameID int, pos shared.Position, temperature, gravity float64, metal int) *galaxy.Planet {
	p := galaxy.NewPlanet(gameID, "fixture-planet", pos, temperature, gravity, metal)
	p.MarkExplored()
	return p
}

// StationedFleet creates a combat-capable fleet stationed at a planet.
func StationedFleet(gameID, ownerID, planetID int) *fleet.Fleet {
	return &fleet.Fleet{
		GameID:          gameID,
		OwnerID:         ownerID,
		Name:            "fixture-fleet",
		TotalWeapons:    10,
		TotalShields:    10,
		Speed:           5.0,
		Range:           60.0,
		CurrentPlanetID: planetID,
		Status:          fleet.StatusStationed,
	}
}
