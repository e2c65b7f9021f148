package config

import "time"

// DaemonConfig holds daemon service configuration
type DaemonConfig struct {
	// PID file location
	PIDFile string `mapstructure:"pid_file"`

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`
}
