package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/player"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
)

// GormTechnologyRepository implements player.TechnologyRepository using GORM.
// The research sheet is stored as one row per (player, domain) pair.
type GormTechnologyRepository struct {
	db *gorm.DB
}

// NewGormTechnologyRepository creates a new GORM technology repository
func NewGormTechnologyRepository(db *gorm.DB) *GormTechnologyRepository {
	return &GormTechnologyRepository{db: db}
}

// FindByPlayer retrieves a player's full research sheet
func (r *GormTechnologyRepository) FindByPlayer(ctx context.Context, playerID int) (*player.Technology, error) {
	var models []TechnologyModel
	result := dbFor(ctx, r.db).Where("player_id = ?", playerID).Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find technology: %w", result.Error)
	}
	if len(models) == 0 {
		return nil, shared.NewPlayerError(fmt.Sprintf("no technology sheet for player %d", playerID))
	}

	tech := &player.Technology{
		PlayerID: playerID,
		Domains:  make(map[player.TechDomain]*player.DomainState, len(models)),
	}
	for i := range models {
		m := &models[i]
		tech.Domains[player.TechDomain(m.Domain)] = &player.DomainState{
			Level:        m.Level,
			Progress:     m.Progress,
			Budget:       m.Budget,
			TempBonus:    m.TempBonus,
			BonusExpires: m.BonusExpires,
		}
	}
	return tech, nil
}

// Save persists the full research sheet, one upsert per domain
func (r *GormTechnologyRepository) Save(ctx context.Context, tech *player.Technology) error {
	db := dbFor(ctx, r.db)
	for _, domain := range player.TechDomains {
		state, ok := tech.Domains[domain]
		if !ok {
			continue
		}
		model := &TechnologyModel{
			PlayerID:     tech.PlayerID,
			Domain:       string(domain),
			Level:        state.Level,
			Progress:     state.Progress,
			Budget:       state.Budget,
			TempBonus:    state.TempBonus,
			BonusExpires: state.BonusExpires,
		}
		if result := db.Save(model); result.Error != nil {
			return fmt.Errorf("failed to save technology domain %s: %w", domain, result.Error)
		}
	}
	return nil
}
