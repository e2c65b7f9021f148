package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// Namespace for all metrics
	namespace = "colonie"
	// Subsystem for daemon metrics
	subsystem = "daemon"
)

// Registry is the global Prometheus registry for all metrics
var Registry *prometheus.Registry

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// Handler returns the HTTP handler exposing the registry, or nil when
// metrics are not enabled
func Handler() http.Handler {
	if Registry == nil {
		return nil
	}
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ListenAddress formats the bind address for the metrics HTTP server
func ListenAddress(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
