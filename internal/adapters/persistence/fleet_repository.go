package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/fleet"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
)

// GormFleetRepository implements fleet.Repository using GORM
type GormFleetRepository struct {
	db *gorm.DB
}

// NewGormFleetRepository creates a new GORM fleet repository
func NewGormFleetRepository(db *gorm.DB) *GormFleetRepository {
	return &GormFleetRepository{db: db}
}

// FindByID retrieves a fleet by ID
func (r *GormFleetRepository) FindByID(ctx context.Context, fleetID int) (*fleet.Fleet, error) {
	var model FleetModel
	result := dbFor(ctx, r.db).Where("id = ?", fleetID).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewFleetError(fmt.Sprintf("fleet %d not found", fleetID))
		}
		return nil, fmt.Errorf("failed to find fleet: %w", result.Error)
	}
	return modelToFleet(&model), nil
}

// ListByGame retrieves every fleet of a game
func (r *GormFleetRepository) ListByGame(ctx context.Context, gameID int) ([]*fleet.Fleet, error) {
	var models []FleetModel
	result := dbFor(ctx, r.db).Where("game_id = ?", gameID).Order("id").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list fleets: %w", result.Error)
	}
	return modelsToFleets(models), nil
}

// ListByOwner retrieves all fleets of a player
func (r *GormFleetRepository) ListByOwner(ctx context.Context, ownerID int) ([]*fleet.Fleet, error) {
	var models []FleetModel
	result := dbFor(ctx, r.db).Where("owner_id = ?", ownerID).Order("id").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list fleets by owner: %w", result.Error)
	}
	return modelsToFleets(models), nil
}

// ListStationedAt retrieves the fleets currently stationed at a planet
func (r *GormFleetRepository) ListStationedAt(ctx context.Context, planetID int) ([]*fleet.Fleet, error) {
	var models []FleetModel
	result := dbFor(ctx, r.db).
		Where("current_planet_id = ? AND status = ?", planetID, string(fleet.StatusStationed)).
		Order("id").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list stationed fleets: %w", result.Error)
	}
	return modelsToFleets(models), nil
}

// Save persists a fleet (create or update)
func (r *GormFleetRepository) Save(ctx context.Context, f *fleet.Fleet) error {
	model := fleetToModel(f)
	result := dbFor(ctx, r.db).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save fleet: %w", result.Error)
	}
	f.ID = model.ID
	return nil
}

func modelsToFleets(models []FleetModel) []*fleet.Fleet {
	fleets := make([]*fleet.Fleet, 0, len(models))
	for i := range models {
		fleets = append(fleets, modelToFleet(&models[i]))
	}
	return fleets
}

func modelToFleet(model *FleetModel) *fleet.Fleet {
	return &fleet.Fleet{
		ID:                  model.ID,
		GameID:              model.GameID,
		OwnerID:             model.OwnerID,
		Name:                model.Name,
		TotalWeapons:        model.TotalWeapons,
		TotalShields:        model.TotalShields,
		Speed:               model.Speed,
		Range:               model.Range,
		CurrentPlanetID:     model.CurrentPlanetID,
		DestinationPlanetID: model.DestinationPlanetID,
		Status:              fleet.Status(model.Status),
		ArrivalTurn:         model.ArrivalTurn,
		CanColonize:         model.CanColonize != 0,
	}
}

func fleetToModel(f *fleet.Fleet) *FleetModel {
	return &FleetModel{
		ID:                  f.ID,
		GameID:              f.GameID,
		OwnerID:             f.OwnerID,
		Name:                f.Name,
		TotalWeapons:        f.TotalWeapons,
		TotalShields:        f.TotalShields,
		Speed:               f.Speed,
		Range:               f.Range,
		CurrentPlanetID:     f.CurrentPlanetID,
		DestinationPlanetID: f.DestinationPlanetID,
		Status:              string(f.Status),
		ArrivalTurn:         f.ArrivalTurn,
		CanColonize:         boolToInt(f.CanColonize),
	}
}
