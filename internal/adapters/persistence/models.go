package persistence

import (
	"time"
)

// GameModel represents the games table
type GameModel struct {
	ID        int        `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string     `gorm:"column:name;not null"`
	Status    string     `gorm:"column:status;not null;default:'LOBBY'"`
	Turn      int        `gorm:"column:turn;not null;default:0"`
	Year      int        `gorm:"column:year;not null"`
	StartYear int        `gorm:"column:start_year;not null"`
	WinnerID  *int       `gorm:"column:winner_id"`
	Outcome   *string    `gorm:"column:outcome"`
	CreatedAt time.Time  `gorm:"column:created_at;not null"`
	StartedAt *time.Time `gorm:"column:started_at"`
	EndedAt   *time.Time `gorm:"column:ended_at"`
}

func (GameModel) TableName() string {
	return "games"
}

// PlayerModel represents the players table
type PlayerModel struct {
	ID            int        `gorm:"column:id;primaryKey;autoIncrement"`
	GameID        int        `gorm:"column:game_id;not null;index"`
	Game          *GameModel `gorm:"foreignKey:GameID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Name          string     `gorm:"column:name;not null"`
	Color         string     `gorm:"column:color"`
	IsComputer    int        `gorm:"column:is_computer;not null;default:0"` // 0 or 1 (SQLite compatible)
	Difficulty    *string    `gorm:"column:difficulty"`
	Money         int        `gorm:"column:money;not null;default:0"`
	Metal         int        `gorm:"column:metal;not null;default:0"`
	Debt          int        `gorm:"column:debt;not null;default:0"`
	PlanetCount   int        `gorm:"column:planet_count;not null;default:0"`
	Eliminated    int        `gorm:"column:eliminated;not null;default:0"`
	EliminatedAt  *time.Time `gorm:"column:eliminated_at"`
	TurnSubmitted int        `gorm:"column:turn_submitted;not null;default:0"`
}

func (PlayerModel) TableName() string {
	return "players"
}

// TechnologyModel represents the technologies table
// One row per (player, domain) pair; the repository reassembles the sheet.
type TechnologyModel struct {
	PlayerID     int          `gorm:"column:player_id;primaryKey;not null"`
	Player       *PlayerModel `gorm:"foreignKey:PlayerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Domain       string       `gorm:"column:domain;primaryKey;not null"`
	Level        int          `gorm:"column:level;not null;default:0"`
	Progress     float64      `gorm:"column:progress;not null;default:0"`
	Budget       int          `gorm:"column:budget;not null;default:0"`
	TempBonus    int          `gorm:"column:temp_bonus;not null;default:0"`
	BonusExpires int          `gorm:"column:bonus_expires;not null;default:0"`
}

func (TechnologyModel) TableName() string {
	return "technologies"
}

// BreakthroughModel represents the breakthroughs table
type BreakthroughModel struct {
	ID          int          `gorm:"column:id;primaryKey;autoIncrement"`
	PlayerID    int          `gorm:"column:player_id;not null;index"`
	Player      *PlayerModel `gorm:"foreignKey:PlayerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedTurn int          `gorm:"column:created_turn;not null"`
	Status      string       `gorm:"column:status;not null;default:'PENDING'"`
	Options     string       `gorm:"column:options;type:text;not null"` // JSON array as text
	Eliminated  int          `gorm:"column:eliminated;not null;default:-1"`
	Unlocked    int          `gorm:"column:unlocked;not null;default:-1"`
}

func (BreakthroughModel) TableName() string {
	return "breakthroughs"
}

// PlanetModel represents the planets table
type PlanetModel struct {
	ID                 int        `gorm:"column:id;primaryKey;autoIncrement"`
	GameID             int        `gorm:"column:game_id;not null;index"`
	Game               *GameModel `gorm:"foreignKey:GameID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Name               string     `gorm:"column:name;not null"`
	X                  float64    `gorm:"column:x;not null"`
	Y                  float64    `gorm:"column:y;not null"`
	Temperature        float64    `gorm:"column:temperature;not null"`
	Gravity            float64    `gorm:"column:gravity;not null"`
	MetalReserves      int        `gorm:"column:metal_reserves;not null"`
	CurrentTemperature float64    `gorm:"column:current_temperature;not null"`
	MetalRemaining     int        `gorm:"column:metal_remaining;not null"`
	Population         int        `gorm:"column:population;not null;default:0"`
	MaxPopulation      int        `gorm:"column:max_population;not null;default:0"`
	OwnerID            *int       `gorm:"column:owner_id;index"`
	Status             string     `gorm:"column:status;not null;default:'UNEXPLORED'"`
	TerraformBudget    int        `gorm:"column:terraform_budget;not null;default:0"`
	MiningBudget       int        `gorm:"column:mining_budget;not null;default:0"`
	ShipsBudget        int        `gorm:"column:ships_budget;not null;default:0"`
}

func (PlanetModel) TableName() string {
	return "planets"
}

// FleetModel represents the fleets table
type FleetModel struct {
	ID                  int        `gorm:"column:id;primaryKey;autoIncrement"`
	GameID              int        `gorm:"column:game_id;not null;index"`
	Game                *GameModel `gorm:"foreignKey:GameID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	OwnerID             int        `gorm:"column:owner_id;not null;index"`
	Name                string     `gorm:"column:name;not null"`
	TotalWeapons        int        `gorm:"column:total_weapons;not null;default:0"`
	TotalShields        int        `gorm:"column:total_shields;not null;default:0"`
	Speed               float64    `gorm:"column:speed;not null"`
	Range               float64    `gorm:"column:range;not null"`
	CurrentPlanetID     int        `gorm:"column:current_planet_id;not null"`
	DestinationPlanetID *int       `gorm:"column:destination_planet_id"`
	Status              string     `gorm:"column:status;not null;default:'STATIONED'"`
	ArrivalTurn         *int       `gorm:"column:arrival_turn"`
	CanColonize         int        `gorm:"column:can_colonize;not null;default:0"`
}

func (FleetModel) TableName() string {
	return "fleets"
}

// DesignModel represents the designs table
type DesignModel struct {
	ID              int          `gorm:"column:id;primaryKey;autoIncrement"`
	PlayerID        int          `gorm:"column:player_id;not null;index"`
	Player          *PlayerModel `gorm:"foreignKey:PlayerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Name            string       `gorm:"column:name;not null"`
	Category        string       `gorm:"column:category;not null"`
	PrototypeMoney  int          `gorm:"column:prototype_money;not null"`
	PrototypeMetal  int          `gorm:"column:prototype_metal;not null"`
	ProductionMoney int          `gorm:"column:production_money;not null"`
	ProductionMetal int          `gorm:"column:production_metal;not null"`
	PrototypeBuilt  int          `gorm:"column:prototype_built;not null;default:0"`
}

func (DesignModel) TableName() string {
	return "designs"
}

// QueueItemModel represents the build_queue table
type QueueItemModel struct {
	ID         int          `gorm:"column:id;primaryKey;autoIncrement"`
	PlanetID   int          `gorm:"column:planet_id;not null;index"`
	Planet     *PlanetModel `gorm:"foreignKey:PlanetID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	DesignID   int          `gorm:"column:design_id;not null"`
	Design     *DesignModel `gorm:"foreignKey:DesignID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	PlayerID   int          `gorm:"column:player_id;not null;index"`
	QueuedTurn int          `gorm:"column:queued_turn;not null"`
	Finished   int          `gorm:"column:finished;not null;default:0"`
}

func (QueueItemModel) TableName() string {
	return "build_queue"
}
