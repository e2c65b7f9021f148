package fleet

import (
	"fmt"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
)

// Status is the movement state of a fleet.
type Status string

const (
	StatusStationed Status = "STATIONED"
	StatusInTransit Status = "IN_TRANSIT"
)

// Fleet is an aggregate of ships owned by one player. Combat power is
// carried as pre-aggregated totals; battle resolution itself is external.
type Fleet struct {
	ID      int
	GameID  int
	OwnerID int
	Name    string

	TotalWeapons int
	TotalShields int
	Speed        float64 // distance units per turn
	Range        float64 // maximum reachable distance without tankers

	CurrentPlanetID     int
	DestinationPlanetID *int
	Status              Status
	ArrivalTurn         *int

	CanColonize bool
}

// Power is the fleet's aggregate combat strength.
func (f *Fleet) Power() int {
	return f.TotalWeapons + f.TotalShields
}

// IsAvailable reports whether the fleet is stationed and can take orders.
func (f *Fleet) IsAvailable() bool {
	return f.Status == StatusStationed
}

// TravelTurns estimates turns needed to cover a distance at fleet speed,
// rounded up. Returns -1 when the fleet cannot move.
func (f *Fleet) TravelTurns(distance float64) int {
	if f.Speed <= 0 {
		return -1
	}
	turns := int(distance / f.Speed)
	if float64(turns)*f.Speed < distance {
		turns++
	}
	return turns
}

// Dispatch sends the fleet toward a destination planet, recording the
// estimated arrival turn.
func (f *Fleet) Dispatch(destinationPlanetID, arrivalTurn int) shared.Result {
	if f.Status == StatusInTransit {
		return shared.Failure(fmt.Sprintf("fleet %s is already in transit", f.Name))
	}
	f.DestinationPlanetID = &destinationPlanetID
	f.Status = StatusInTransit
	f.ArrivalTurn = &arrivalTurn
	return shared.Success()
}

// Arrive stations the fleet at its destination.
func (f *Fleet) Arrive() {
	if f.DestinationPlanetID != nil {
		f.CurrentPlanetID = *f.DestinationPlanetID
	}
	f.DestinationPlanetID = nil
	f.ArrivalTurn = nil
	f.Status = StatusStationed
}

// ConsumeColonyUnit removes the colony capability after a colonization.
func (f *Fleet) ConsumeColonyUnit() shared.Result {
	if !f.CanColonize {
		return shared.Failure(fmt.Sprintf("fleet %s carries no colony unit", f.Name))
	}
	f.CanColonize = false
	return shared.Success()
}

// LoadColonyUnit equips the fleet with a freshly built colony unit. A fleet
// carries at most one.
func (f *Fleet) LoadColonyUnit() shared.Result {
	if f.CanColonize {
		return shared.Failure(fmt.Sprintf("fleet %s already carries a colony unit", f.Name))
	}
	f.CanColonize = true
	return shared.Success()
}
