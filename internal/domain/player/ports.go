package player

import "context"

// Repository defines player persistence operations
type Repository interface {
	FindByID(ctx context.Context, playerID int) (*Player, error)
	ListByGame(ctx context.Context, gameID int) ([]*Player, error)
	ListActiveByGame(ctx context.Context, gameID int) ([]*Player, error)
	Save(ctx context.Context, player *Player) error
}

// TechnologyRepository persists per-player research state
type TechnologyRepository interface {
	FindByPlayer(ctx context.Context, playerID int) (*Technology, error)
	Save(ctx context.Context, tech *Technology) error
}

// BreakthroughRepository persists radical breakthroughs
type BreakthroughRepository interface {
	ListPendingByPlayer(ctx context.Context, playerID int) ([]*Breakthrough, error)
	Save(ctx context.Context, breakthrough *Breakthrough) error
}
