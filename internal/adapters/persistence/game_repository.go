package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/game"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
)

// GormGameRepository implements game.Repository using GORM
type GormGameRepository struct {
	db *gorm.DB
}

// NewGormGameRepository creates a new GORM game repository
func NewGormGameRepository(db *gorm.DB) *GormGameRepository {
	return &GormGameRepository{db: db}
}

// FindByID retrieves a game by ID
func (r *GormGameRepository) FindByID(ctx context.Context, gameID int) (*game.Game, error) {
	var model GameModel
	result := dbFor(ctx, r.db).Where("id = ?", gameID).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewGameError(fmt.Sprintf("game %d not found", gameID))
		}
		return nil, fmt.Errorf("failed to find game: %w", result.Error)
	}
	return modelToGame(&model), nil
}

// ListByStatus retrieves all games in the given lifecycle state
func (r *GormGameRepository) ListByStatus(ctx context.Context, status game.Status) ([]*game.Game, error) {
	var models []GameModel
	result := dbFor(ctx, r.db).Where("status = ?", string(status)).Order("id").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list games: %w", result.Error)
	}

	games := make([]*game.Game, 0, len(models))
	for i := range models {
		games = append(games, modelToGame(&models[i]))
	}
	return games, nil
}

// Save persists a game (create or update)
func (r *GormGameRepository) Save(ctx context.Context, g *game.Game) error {
	model := gameToModel(g)
	result := dbFor(ctx, r.db).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save game: %w", result.Error)
	}
	g.ID = model.ID
	return nil
}

func modelToGame(model *GameModel) *game.Game {
	g := &game.Game{
		ID:        model.ID,
		Name:      model.Name,
		Status:    game.Status(model.Status),
		Turn:      model.Turn,
		Year:      model.Year,
		StartYear: model.StartYear,
		WinnerID:  model.WinnerID,
		CreatedAt: model.CreatedAt,
		StartedAt: model.StartedAt,
		EndedAt:   model.EndedAt,
	}
	if model.Outcome != nil {
		outcome := game.Outcome(*model.Outcome)
		g.Outcome = &outcome
	}
	return g
}

func gameToModel(g *game.Game) *GameModel {
	model := &GameModel{
		ID:        g.ID,
		Name:      g.Name,
		Status:    string(g.Status),
		Turn:      g.Turn,
		Year:      g.Year,
		StartYear: g.StartYear,
		WinnerID:  g.WinnerID,
		CreatedAt: g.CreatedAt,
		StartedAt: g.StartedAt,
		EndedAt:   g.EndedAt,
	}
	if g.Outcome != nil {
		outcome := string(*g.Outcome)
		model.Outcome = &outcome
	}
	return model
}
