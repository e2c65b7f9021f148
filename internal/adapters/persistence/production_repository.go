package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/production"
)

// GormDesignRepository implements production.DesignRepository using GORM
type GormDesignRepository struct {
	db *gorm.DB
}

// NewGormDesignRepository creates a new GORM design repository
func NewGormDesignRepository(db *gorm.DB) *GormDesignRepository {
	return &GormDesignRepository{db: db}
}

// ListByPlayer retrieves all blueprints owned by a player
func (r *GormDesignRepository) ListByPlayer(ctx context.Context, playerID int) ([]*production.Design, error) {
	var models []DesignModel
	result := dbFor(ctx, r.db).Where("player_id = ?", playerID).Order("id").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list designs: %w", result.Error)
	}

	designs := make([]*production.Design, 0, len(models))
	for i := range models {
		designs = append(designs, modelToDesign(&models[i]))
	}
	return designs, nil
}

// Save persists a design (create or update)
func (r *GormDesignRepository) Save(ctx context.Context, d *production.Design) error {
	model := designToModel(d)
	result := dbFor(ctx, r.db).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save design: %w", result.Error)
	}
	d.ID = model.ID
	return nil
}

func modelToDesign(model *DesignModel) *production.Design {
	return &production.Design{
		ID:              model.ID,
		PlayerID:        model.PlayerID,
		Name:            model.Name,
		Category:        production.Category(model.Category),
		PrototypeMoney:  model.PrototypeMoney,
		PrototypeMetal:  model.PrototypeMetal,
		ProductionMoney: model.ProductionMoney,
		ProductionMetal: model.ProductionMetal,
		PrototypeBuilt:  model.PrototypeBuilt != 0,
	}
}

func designToModel(d *production.Design) *DesignModel {
	return &DesignModel{
		ID:              d.ID,
		PlayerID:        d.PlayerID,
		Name:            d.Name,
		Category:        string(d.Category),
		PrototypeMoney:  d.PrototypeMoney,
		PrototypeMetal:  d.PrototypeMetal,
		ProductionMoney: d.ProductionMoney,
		ProductionMetal: d.ProductionMetal,
		PrototypeBuilt:  boolToInt(d.PrototypeBuilt),
	}
}

// GormQueueRepository implements production.QueueRepository using GORM
type GormQueueRepository struct {
	db *gorm.DB
}

// NewGormQueueRepository creates a new GORM build queue repository
func NewGormQueueRepository(db *gorm.DB) *GormQueueRepository {
	return &GormQueueRepository{db: db}
}

// ListUnfinishedByPlayer retrieves a player's pending build orders
func (r *GormQueueRepository) ListUnfinishedByPlayer(ctx context.Context, playerID int) ([]*production.QueueItem, error) {
	var models []QueueItemModel
	result := dbFor(ctx, r.db).Where("player_id = ? AND finished = ?", playerID, 0).Order("id").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list queue items: %w", result.Error)
	}

	items := make([]*production.QueueItem, 0, len(models))
	for i := range models {
		items = append(items, modelToQueueItem(&models[i]))
	}
	return items, nil
}

// CountUnfinishedByPlanet counts pending build orders at a planet
func (r *GormQueueRepository) CountUnfinishedByPlanet(ctx context.Context, planetID int) (int, error) {
	var count int64
	result := dbFor(ctx, r.db).
		Model(&QueueItemModel{}).
		Where("planet_id = ? AND finished = ?", planetID, 0).
		Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count queue items: %w", result.Error)
	}
	return int(count), nil
}

// Save persists a queue item (create or update)
func (r *GormQueueRepository) Save(ctx context.Context, item *production.QueueItem) error {
	model := queueItemToModel(item)
	result := dbFor(ctx, r.db).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save queue item: %w", result.Error)
	}
	item.ID = model.ID
	return nil
}

func modelToQueueItem(model *QueueItemModel) *production.QueueItem {
	return &production.QueueItem{
		ID:         model.ID,
		PlanetID:   model.PlanetID,
		DesignID:   model.DesignID,
		PlayerID:   model.PlayerID,
		QueuedTurn: model.QueuedTurn,
		Finished:   model.Finished != 0,
	}
}

func queueItemToModel(item *production.QueueItem) *QueueItemModel {
	return &QueueItemModel{
		ID:         item.ID,
		PlanetID:   item.PlanetID,
		DesignID:   item.DesignID,
		PlayerID:   item.PlayerID,
		QueuedTurn: item.QueuedTurn,
		Finished:   boolToInt(item.Finished),
	}
}
