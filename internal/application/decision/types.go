package decision

import (
	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/expansion"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/player"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/production"
)

// MovementPurpose explains why a fleet is being redirected.
type MovementPurpose string

const (
	MovementDefense  MovementPurpose = "DEFENSE"
	MovementColonize MovementPurpose = "COLONIZE"
	MovementAttack   MovementPurpose = "ATTACK"
)

// FleetMovement is a planned reassignment. Planning and execution are
// separate calls: the pipeline only decides.
type FleetMovement struct {
	FleetID             int             `json:"fleet_id"`
	DestinationPlanetID int             `json:"destination_planet_id"`
	Purpose             MovementPurpose `json:"purpose"`
	ArrivalTurn         int             `json:"arrival_turn"`
}

// BreakthroughDecision records how one radical breakthrough was resolved.
type BreakthroughDecision struct {
	BreakthroughID int               `json:"breakthrough_id"`
	Eliminated     int               `json:"eliminated"`
	Unlocked       int               `json:"unlocked"`
	Domain         player.TechDomain `json:"domain"`
	Bonus          int               `json:"bonus"`
}

// ProductionDecision records the single build queued this turn, if any.
type ProductionDecision struct {
	Category production.Category `json:"category"`
	DesignID int                 `json:"design_id"`
	PlanetID int                 `json:"planet_id"`
	Money    int                 `json:"money"`
	Metal    int                 `json:"metal"`
}

// DecisionReport is the JSON-shaped outcome of one computer player's turn.
//
// Skipped marks the probabilistic decision error: an intentional behavioral
// degradation, not a failure. Error carries genuine unexpected failures; the
// two must never be conflated.
type DecisionReport struct {
	ID       string `json:"id"`
	GameID   int    `json:"game_id"`
	PlayerID int    `json:"player_id"`
	Turn     int    `json:"turn"`

	Skipped bool `json:"skipped"`

	Breakthroughs []BreakthroughDecision        `json:"breakthroughs,omitempty"`
	Research      map[player.TechDomain]int     `json:"research,omitempty"`
	PlanetBudgets map[int][3]int                `json:"planet_budgets,omitempty"`
	Production    *ProductionDecision           `json:"production,omitempty"`
	Movements     []FleetMovement               `json:"movements,omitempty"`
	Colonizations []expansion.ColonizationOrder `json:"colonizations,omitempty"`

	Error string `json:"error,omitempty"`
}
