package fleet

import (
	"context"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/galaxy"
)

// Repository defines fleet persistence operations
type Repository interface {
	FindByID(ctx context.Context, fleetID int) (*Fleet, error)
	ListByGame(ctx context.Context, gameID int) ([]*Fleet, error)
	ListByOwner(ctx context.Context, ownerID int) ([]*Fleet, error)
	ListStationedAt(ctx context.Context, planetID int) ([]*Fleet, error)
	Save(ctx context.Context, fleet *Fleet) error
}

// Oracle is the external combat/reachability collaborator. The battle
// resolution algorithm stays outside this core; the engine only consumes
// a reachability verdict and a predicted defense power.
type Oracle interface {
	// CanReach reports whether the fleet can reach the planet, with a
	// human-readable reason on refusal.
	CanReach(fleet *Fleet, planet *galaxy.Planet) (bool, string)

	// PredictDefensePower estimates the force defending a planet:
	// stationed hostile fleets plus a population-derived garrison term.
	PredictDefensePower(planet *galaxy.Planet, stationed []*Fleet) float64
}
