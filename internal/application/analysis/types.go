package analysis

import (
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/galaxy"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/game"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
)

// TechStanding buckets a tech comparison against one opponent.
type TechStanding string

const (
	TechAhead  TechStanding = "AHEAD"
	TechBehind TechStanding = "BEHIND"
	TechEqual  TechStanding = "EQUAL"
)

// TechLevelTolerance is the ± band treated as equal.
const TechLevelTolerance = 2

// EconomySnapshot is the read-only economic situation of one player.
type EconomySnapshot struct {
	Money             int     `json:"money"`
	Metal             int     `json:"metal"`
	Debt              int     `json:"debt"`
	EstimatedIncome   int     `json:"estimated_income"`
	EstimatedMining   int     `json:"estimated_mining"`
	DebtToIncomeRatio float64 `json:"debt_to_income_ratio"`
}

// MilitarySnapshot compares own fleet power against every opponent.
// PowerRatio is +Inf when no opponent has any power and the player has some.
type MilitarySnapshot struct {
	OwnPower      int         `json:"own_power"`
	OwnFleetCount int         `json:"own_fleet_count"`
	OpponentPower map[int]int `json:"opponent_power"`
	PowerRatio    float64     `json:"power_ratio"`
}

// ThreatInfo describes one opponent fleet in transit toward an owned planet.
type ThreatInfo struct {
	FleetID        int     `json:"fleet_id"`
	AttackerID     int     `json:"attacker_id"`
	TargetPlanetID int     `json:"target_planet_id"`
	ArrivalTurn    int     `json:"arrival_turn"`
	EstimatedPower float64 `json:"estimated_power"`
}

// OpportunityInfo describes an attackable or colonizable foreign planet.
type OpportunityInfo struct {
	PlanetID     int     `json:"planet_id"`
	OwnerID      *int    `json:"owner_id,omitempty"`
	Value        float64 `json:"value"`
	DefensePower float64 `json:"defense_power"`
	Distance     float64 `json:"distance"`
}

// ColonizationTarget is an unowned planet scored for settlement.
type ColonizationTarget struct {
	PlanetID    int             `json:"planet_id"`
	Name        string          `json:"name"`
	Position    shared.Position `json:"position"`
	Score       float64         `json:"score"`
	Distance    float64         `json:"distance"`
	Reachable   bool            `json:"reachable"`
	NeedsTanker bool            `json:"needs_tanker"`
}

// GameAnalysis is the ephemeral contract between the analyzer and its
// consumers. It is recomputed on every invocation and never persisted.
type GameAnalysis struct {
	GameID   int        `json:"game_id"`
	PlayerID int        `json:"player_id"`
	Turn     int        `json:"turn"`
	Phase    game.Phase `json:"phase"`

	Economy  EconomySnapshot  `json:"economy"`
	Military MilitarySnapshot `json:"military"`

	OwnTechTotal int                  `json:"own_tech_total"`
	TechStanding map[int]TechStanding `json:"tech_standing"`

	OwnedPlanets        []*galaxy.Planet     `json:"-"`
	ColonizationTargets []ColonizationTarget `json:"colonization_targets"`
	Threats             []ThreatInfo         `json:"threats"`
	Opportunities       []OpportunityInfo    `json:"opportunities"`

	MetalScarcity  float64 `json:"metal_scarcity"`
	NeedsExpansion bool    `json:"needs_expansion"`
}

// UnderThreat reports whether any hostile fleet is inbound.
func (a *GameAnalysis) UnderThreat() bool {
	return len(a.Threats) > 0
}

// MilitaryAdvantage is the own/opponent power ratio convenience accessor.
func (a *GameAnalysis) MilitaryAdvantage() float64 {
	return a.Military.PowerRatio
}
