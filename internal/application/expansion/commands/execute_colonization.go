package commands

import (
	"context"
	"fmt"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/common"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/fleet"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/galaxy"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/player"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
)

// ExecuteColonizationCommand settles a planet with a colony-capable fleet.
// This is the single transition that turns an unowned planet into an owned
// one outside of game-start preparation.
type ExecuteColonizationCommand struct {
	FleetID  int
	PlanetID int
}

// ExecuteColonizationResponse reports the outcome as a checked result, not
// an error: refusals (no colony unit, planet taken) are normal play.
type ExecuteColonizationResponse struct {
	Result   shared.Result
	PlanetID int
	OwnerID  int
}

// ExecuteColonizationHandler applies the colonization state transition.
type ExecuteColonizationHandler struct {
	fleetRepo  fleet.Repository
	planetRepo galaxy.Repository
	playerRepo player.Repository
}

// NewExecuteColonizationHandler creates the handler.
func NewExecuteColonizationHandler(
	fleetRepo fleet.Repository,
	planetRepo galaxy.Repository,
	playerRepo player.Repository,
) *ExecuteColonizationHandler {
	return &ExecuteColonizationHandler{
		fleetRepo:  fleetRepo,
		planetRepo: planetRepo,
		playerRepo: playerRepo,
	}
}

// Handle executes the colonization command.
func (h *ExecuteColonizationHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*ExecuteColonizationCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	f, err := h.fleetRepo.FindByID(ctx, cmd.FleetID)
	if err != nil {
		return nil, fmt.Errorf("fleet not found: %w", err)
	}
	p, err := h.planetRepo.FindByID(ctx, cmd.PlanetID)
	if err != nil {
		return nil, fmt.Errorf("planet not found: %w", err)
	}

	if !f.CanColonize {
		return &ExecuteColonizationResponse{
			Result: shared.Failure(fmt.Sprintf("fleet %s carries no colony unit", f.Name)),
		}, nil
	}
	if p.IsColony() {
		return &ExecuteColonizationResponse{
			Result: shared.Failure(fmt.Sprintf("planet %s is already colonized", p.Name)),
		}, nil
	}

	owner, err := h.playerRepo.FindByID(ctx, f.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("fleet owner not found: %w", err)
	}

	if res := p.Colonize(owner.ID); !res.OK {
		return &ExecuteColonizationResponse{Result: res}, nil
	}
	// The colony unit is consumed by the landing.
	if res := f.ConsumeColonyUnit(); !res.OK {
		return &ExecuteColonizationResponse{Result: res}, nil
	}
	owner.PlanetCount++

	if err := h.planetRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	if err := h.fleetRepo.Save(ctx, f); err != nil {
		return nil, err
	}
	if err := h.playerRepo.Save(ctx, owner); err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Log("info", "planet colonized", map[string]interface{}{
		"planet_id": p.ID,
		"owner_id":  owner.ID,
		"fleet_id":  f.ID,
	})

	return &ExecuteColonizationResponse{
		Result:   shared.Success(),
		PlanetID: p.ID,
		OwnerID:  owner.ID,
	}, nil
}
