package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/player"
)

// GormBreakthroughRepository implements player.BreakthroughRepository using
// GORM. The four candidate options are stored as a JSON array.
type GormBreakthroughRepository struct {
	db *gorm.DB
}

// NewGormBreakthroughRepository creates a new GORM breakthrough repository
func NewGormBreakthroughRepository(db *gorm.DB) *GormBreakthroughRepository {
	return &GormBreakthroughRepository{db: db}
}

type breakthroughOptionJSON struct {
	Domain   string `json:"domain"`
	Bonus    int    `json:"bonus"`
	Duration int    `json:"duration"`
}

// ListPendingByPlayer retrieves a player's unresolved breakthroughs
func (r *GormBreakthroughRepository) ListPendingByPlayer(ctx context.Context, playerID int) ([]*player.Breakthrough, error) {
	var models []BreakthroughModel
	result := dbFor(ctx, r.db).
		Where("player_id = ? AND status = ?", playerID, string(player.BreakthroughPending)).
		Order("id").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list breakthroughs: %w", result.Error)
	}

	breakthroughs := make([]*player.Breakthrough, 0, len(models))
	for i := range models {
		b, err := modelToBreakthrough(&models[i])
		if err != nil {
			return nil, err
		}
		breakthroughs = append(breakthroughs, b)
	}
	return breakthroughs, nil
}

// Save persists a breakthrough (create or update)
func (r *GormBreakthroughRepository) Save(ctx context.Context, b *player.Breakthrough) error {
	model, err := breakthroughToModel(b)
	if err != nil {
		return err
	}
	result := dbFor(ctx, r.db).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save breakthrough: %w", result.Error)
	}
	b.ID = model.ID
	return nil
}

func modelToBreakthrough(model *BreakthroughModel) (*player.Breakthrough, error) {
	var raw []breakthroughOptionJSON
	if err := json.Unmarshal([]byte(model.Options), &raw); err != nil {
		return nil, fmt.Errorf("invalid breakthrough options in database: %w", err)
	}
	if len(raw) != player.OptionCount {
		return nil, fmt.Errorf("breakthrough %d has %d options, want %d", model.ID, len(raw), player.OptionCount)
	}

	var options [player.OptionCount]player.BreakthroughOption
	for i, o := range raw {
		options[i] = player.BreakthroughOption{
			Domain:   player.TechDomain(o.Domain),
			Bonus:    o.Bonus,
			Duration: o.Duration,
		}
	}

	return &player.Breakthrough{
		ID:          model.ID,
		PlayerID:    model.PlayerID,
		CreatedTurn: model.CreatedTurn,
		Status:      player.BreakthroughStatus(model.Status),
		Options:     options,
		Eliminated:  model.Eliminated,
		Unlocked:    model.Unlocked,
	}, nil
}

func breakthroughToModel(b *player.Breakthrough) (*BreakthroughModel, error) {
	raw := make([]breakthroughOptionJSON, 0, player.OptionCount)
	for _, o := range b.Options {
		raw = append(raw, breakthroughOptionJSON{
			Domain:   string(o.Domain),
			Bonus:    o.Bonus,
			Duration: o.Duration,
		})
	}
	bytes, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal breakthrough options: %w", err)
	}

	return &BreakthroughModel{
		ID:          b.ID,
		PlayerID:    b.PlayerID,
		CreatedTurn: b.CreatedTurn,
		Status:      string(b.Status),
		Options:     string(bytes),
		Eliminated:  b.Eliminated,
		Unlocked:    b.Unlocked,
	}, nil
}
