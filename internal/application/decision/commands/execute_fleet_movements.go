package commands

import (
	"context"
	"fmt"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/common"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/decision"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/fleet"
)

// ExecuteFleetMovementsCommand applies previously planned movements.
type ExecuteFleetMovementsCommand struct {
	PlayerID  int
	Movements []decision.FleetMovement
}

// ExecutionReport summarizes which movements were applied.
type ExecutionReport struct {
	PlayerID int      `json:"player_id"`
	Executed int      `json:"executed"`
	Failures []string `json:"failures,omitempty"`
}

// ExecuteFleetMovementsHandler dispatches fleets toward their planned
// destinations. Refusals (fleet already in transit, wrong owner) are
// recorded as failures, not errors.
type ExecuteFleetMovementsHandler struct {
	fleetRepo fleet.Repository
}

// NewExecuteFleetMovementsHandler creates the handler.
func NewExecuteFleetMovementsHandler(fleetRepo fleet.Repository) *ExecuteFleetMovementsHandler {
	return &ExecuteFleetMovementsHandler{fleetRepo: fleetRepo}
}

// Handle executes the command.
func (h *ExecuteFleetMovementsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*ExecuteFleetMovementsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	report := &ExecutionReport{PlayerID: cmd.PlayerID}
	for _, movement := range cmd.Movements {
		f, err := h.fleetRepo.FindByID(ctx, movement.FleetID)
		if err != nil {
			report.Failures = append(report.Failures, fmt.Sprintf("fleet %d: not found", movement.FleetID))
			continue
		}
		if f.OwnerID != cmd.PlayerID {
			report.Failures = append(report.Failures, fmt.Sprintf("fleet %d: not owned by player %d", f.ID, cmd.PlayerID))
			continue
		}
		if res := f.Dispatch(movement.DestinationPlanetID, movement.ArrivalTurn); !res.OK {
			report.Failures = append(report.Failures, fmt.Sprintf("fleet %d: %s", f.ID, res.Message))
			continue
		}
		if err := h.fleetRepo.Save(ctx, f); err != nil {
			return nil, err
		}
		report.Executed++
	}
	return report, nil
}
