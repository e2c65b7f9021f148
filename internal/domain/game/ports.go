package game

import "context"

// Repository defines game persistence operations
type Repository interface {
	FindByID(ctx context.Context, gameID int) (*Game, error)
	ListByStatus(ctx context.Context, status Status) ([]*Game, error)
	Save(ctx context.Context, game *Game) error
}
