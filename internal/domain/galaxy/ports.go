package galaxy

import "context"

// Repository defines planet persistence operations. Relationship traversal
// ("a player's planets") goes through explicit query methods returning
// materialized collections, never lazy navigation.
type Repository interface {
	FindByID(ctx context.Context, planetID int) (*Planet, error)
	ListByGame(ctx context.Context, gameID int) ([]*Planet, error)
	ListByOwner(ctx context.Context, ownerID int) ([]*Planet, error)
	ListColoniesByOwner(ctx context.Context, ownerID int) ([]*Planet, error)
	Save(ctx context.Context, planet *Planet) error
	SaveAll(ctx context.Context, planets []*Planet) error
}

// GeneratorSpec describes the galaxy the generator should produce.
type GeneratorSpec struct {
	GameID      int
	PlanetCount int
	Radius      float64
	Seed        int64
}

// Generator is the external procedural galaxy generator. Its algorithm is
// out of scope; this core only consumes its output contract: planets with
// position, physical traits and unexplored status.
type Generator interface {
	Generate(spec GeneratorSpec) []*Planet
}
