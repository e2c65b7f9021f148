package turn

import (
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/player"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/production"
)

// PlayerTurnReport is the JSON-shaped economic outcome of one player's turn
// resolution.
type PlayerTurnReport struct {
	PlayerID          int                   `json:"player_id"`
	Income            int                   `json:"income"`
	Interest          int                   `json:"interest"`
	MetalMined        int                   `json:"metal_mined"`
	TerraformDelta    float64               `json:"terraform_delta"`
	PopulationGrowth  int                   `json:"population_growth"`
	PlanetCount       int                   `json:"planet_count"`
	ResearchCompleted []player.TechDomain   `json:"research_completed,omitempty"`
	BreakthroughID    *int                  `json:"breakthrough_id,omitempty"`
	BuildsCompleted   []production.Category `json:"builds_completed,omitempty"`
	Eliminated        bool                  `json:"eliminated"`
	EliminationReason string                `json:"elimination_reason,omitempty"`
}

// TurnReport is the outcome of one whole-game turn resolution. Player
// results are keyed by player id; their processing order carries no meaning.
type TurnReport struct {
	ID      string                    `json:"id"`
	GameID  int                       `json:"game_id"`
	Turn    int                       `json:"turn"`
	Year    int                       `json:"year"`
	Players map[int]*PlayerTurnReport `json:"players"`
}

// VictoryReport is the outcome of a victory check.
type VictoryReport struct {
	GameID   int  `json:"game_id"`
	Finished bool `json:"finished"`
	WinnerID *int `json:"winner_id,omitempty"`
	Draw     bool `json:"draw"`
}
