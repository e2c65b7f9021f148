package production

import "context"

// DesignRepository persists unit blueprints
type DesignRepository interface {
	ListByPlayer(ctx context.Context, playerID int) ([]*Design, error)
	Save(ctx context.Context, design *Design) error
}

// QueueRepository persists build queue items
type QueueRepository interface {
	ListUnfinishedByPlayer(ctx context.Context, playerID int) ([]*QueueItem, error)
	CountUnfinishedByPlanet(ctx context.Context, planetID int) (int, error)
	Save(ctx context.Context, item *QueueItem) error
}
