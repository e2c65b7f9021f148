package config

import "time"

// SimulationConfig holds turn engine and AI pipeline configuration
type SimulationConfig struct {
	// TickInterval is how often the daemon polls running games for
	// resolvable turns
	TickInterval time.Duration `mapstructure:"tick_interval" validate:"required"`

	// AIRateLimit paces computer player decision processing across all
	// hosted games
	AIRateLimit RateLimitConfig `mapstructure:"ai_rate_limit"`

	// MaxGames caps how many running games one daemon hosts
	MaxGames int `mapstructure:"max_games" validate:"min=1"`
}

// RateLimitConfig holds token bucket rate limit configuration
type RateLimitConfig struct {
	// Decisions per second
	Rate float64 `mapstructure:"rate" validate:"min=0"`

	// Burst capacity
	Burst int `mapstructure:"burst" validate:"min=1"`
}
