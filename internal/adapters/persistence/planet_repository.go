package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/galaxy"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
)

// GormPlanetRepository implements galaxy.Repository using GORM
type GormPlanetRepository struct {
	db *gorm.DB
}

// NewGormPlanetRepository creates a new GORM planet repository
func NewGormPlanetRepository(db *gorm.DB) *GormPlanetRepository {
	return &GormPlanetRepository{db: db}
}

// FindByID retrieves a planet by ID
func (r *GormPlanetRepository) FindByID(ctx context.Context, planetID int) (*galaxy.Planet, error) {
	var model PlanetModel
	result := dbFor(ctx, r.db).Where("id = ?", planetID).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewPlanetError(fmt.Sprintf("planet %d not found", planetID))
		}
		return nil, fmt.Errorf("failed to find planet: %w", result.Error)
	}
	return modelToPlanet(&model), nil
}

// ListByGame retrieves every planet of a game
func (r *GormPlanetRepository) ListByGame(ctx context.Context, gameID int) ([]*galaxy.Planet, error) {
	var models []PlanetModel
	result := dbFor(ctx, r.db).Where("game_id = ?", gameID).Order("id").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list planets: %w", result.Error)
	}
	return modelsToPlanets(models), nil
}

// ListByOwner retrieves all planets held by a player
func (r *GormPlanetRepository) ListByOwner(ctx context.Context, ownerID int) ([]*galaxy.Planet, error) {
	var models []PlanetModel
	result := dbFor(ctx, r.db).Where("owner_id = ?", ownerID).Order("id").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list planets by owner: %w", result.Error)
	}
	return modelsToPlanets(models), nil
}

// ListColoniesByOwner retrieves a player's colonized and developed planets
func (r *GormPlanetRepository) ListColoniesByOwner(ctx context.Context, ownerID int) ([]*galaxy.Planet, error) {
	var models []PlanetModel
	result := dbFor(ctx, r.db).
		Where("owner_id = ? AND status IN ?", ownerID, []string{
			string(galaxy.PlanetColonized),
			string(galaxy.PlanetDeveloped),
		}).
		Order("id").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list colonies: %w", result.Error)
	}
	return modelsToPlanets(models), nil
}

// Save persists a planet (create or update)
func (r *GormPlanetRepository) Save(ctx context.Context, p *galaxy.Planet) error {
	model := planetToModel(p)
	result := dbFor(ctx, r.db).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save planet: %w", result.Error)
	}
	p.ID = model.ID
	return nil
}

// SaveAll persists a batch of planets
func (r *GormPlanetRepository) SaveAll(ctx context.Context, planets []*galaxy.Planet) error {
	db := dbFor(ctx, r.db)
	for _, p := range planets {
		model := planetToModel(p)
		if result := db.Save(model); result.Error != nil {
			return fmt.Errorf("failed to save planet %s: %w", p.Name, result.Error)
		}
		p.ID = model.ID
	}
	return nil
}

func modelsToPlanets(models []PlanetModel) []*galaxy.Planet {
	planets := make([]*galaxy.Planet, 0, len(models))
	for i := range models {
		planets = append(planets, modelToPlanet(&models[i]))
	}
	return planets
}

func modelToPlanet(model *PlanetModel) *galaxy.Planet {
	return &galaxy.Planet{
		ID:                 model.ID,
		GameID:             model.GameID,
		Name:               model.Name,
		Position:           shared.Position{X: model.X, Y: model.Y},
		Temperature:        model.Temperature,
		Gravity:            model.Gravity,
		MetalReserves:      model.MetalReserves,
		CurrentTemperature: model.CurrentTemperature,
		MetalRemaining:     model.MetalRemaining,
		Population:         model.Population,
		MaxPopulation:      model.MaxPopulation,
		OwnerID:            model.OwnerID,
		Status:             galaxy.PlanetStatus(model.Status),
		TerraformBudget:    model.TerraformBudget,
		MiningBudget:       model.MiningBudget,
		ShipsBudget:        model.ShipsBudget,
	}
}

func planetToModel(p *galaxy.Planet) *PlanetModel {
	return &PlanetModel{
		ID:                 p.ID,
		GameID:             p.GameID,
		Name:               p.Name,
		X:                  p.Position.X,
		Y:                  p.Position.Y,
		Temperature:        p.Temperature,
		Gravity:            p.Gravity,
		MetalReserves:      p.MetalReserves,
		CurrentTemperature: p.CurrentTemperature,
		MetalRemaining:     p.MetalRemaining,
		Population:         p.Population,
		MaxPopulation:      p.MaxPopulation,
		OwnerID:            p.OwnerID,
		Status:             string(p.Status),
		TerraformBudget:    p.TerraformBudget,
		MiningBudget:       p.MiningBudget,
		ShipsBudget:        p.ShipsBudget,
	}
}
