package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/ai"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/player"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
)

// GormPlayerRepository implements player.Repository using GORM
type GormPlayerRepository struct {
	db *gorm.DB
}

// NewGormPlayerRepository creates a new GORM player repository
func NewGormPlayerRepository(db *gorm.DB) *GormPlayerRepository {
	return &GormPlayerRepository{db: db}
}

// FindByID retrieves a player by ID
func (r *GormPlayerRepository) FindByID(ctx context.Context, playerID int) (*player.Player, error) {
	var model PlayerModel
	result := dbFor(ctx, r.db).Where("id = ?", playerID).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewPlayerError(fmt.Sprintf("player %d not found", playerID))
		}
		return nil, fmt.Errorf("failed to find player: %w", result.Error)
	}
	return modelToPlayer(&model), nil
}

// ListByGame retrieves all players of a game, eliminated ones included
func (r *GormPlayerRepository) ListByGame(ctx context.Context, gameID int) ([]*player.Player, error) {
	var models []PlayerModel
	result := dbFor(ctx, r.db).Where("game_id = ?", gameID).Order("id").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list players: %w", result.Error)
	}
	return modelsToPlayers(models), nil
}

// ListActiveByGame retrieves the players of a game still in play
func (r *GormPlayerRepository) ListActiveByGame(ctx context.Context, gameID int) ([]*player.Player, error) {
	var models []PlayerModel
	result := dbFor(ctx, r.db).Where("game_id = ? AND eliminated = ?", gameID, 0).Order("id").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list active players: %w", result.Error)
	}
	return modelsToPlayers(models), nil
}

// Save persists a player (create or update)
func (r *GormPlayerRepository) Save(ctx context.Context, p *player.Player) error {
	model := playerToModel(p)
	result := dbFor(ctx, r.db).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save player: %w", result.Error)
	}
	p.ID = model.ID
	return nil
}

func modelsToPlayers(models []PlayerModel) []*player.Player {
	players := make([]*player.Player, 0, len(models))
	for i := range models {
		players = append(players, modelToPlayer(&models[i]))
	}
	return players
}

func modelToPlayer(model *PlayerModel) *player.Player {
	p := &player.Player{
		ID:            model.ID,
		GameID:        model.GameID,
		Name:          model.Name,
		Color:         model.Color,
		IsComputer:    model.IsComputer != 0,
		Money:         model.Money,
		Metal:         model.Metal,
		Debt:          model.Debt,
		PlanetCount:   model.PlanetCount,
		Eliminated:    model.Eliminated != 0,
		EliminatedAt:  model.EliminatedAt,
		TurnSubmitted: model.TurnSubmitted != 0,
	}
	if model.Difficulty != nil {
		tier := ai.Tier(*model.Difficulty)
		p.Difficulty = &tier
	}
	return p
}

func playerToModel(p *player.Player) *PlayerModel {
	model := &PlayerModel{
		ID:            p.ID,
		GameID:        p.GameID,
		Name:          p.Name,
		Color:         p.Color,
		IsComputer:    boolToInt(p.IsComputer),
		Money:         p.Money,
		Metal:         p.Metal,
		Debt:          p.Debt,
		PlanetCount:   p.PlanetCount,
		Eliminated:    boolToInt(p.Eliminated),
		EliminatedAt:  p.EliminatedAt,
		TurnSubmitted: boolToInt(p.TurnSubmitted),
	}
	if p.Difficulty != nil {
		tier := string(*p.Difficulty)
		model.Difficulty = &tier
	}
	return model
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
