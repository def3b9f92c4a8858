package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
)

const (
	// Namespace for all metrics
	namespace = "voyageplanner"
	// Subsystem for planner metrics
	subsystem = "planner"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalPlanningCollector is set by SetGlobalPlanningCollector when
	// metrics are enabled; recording is a no-op otherwise
	globalPlanningCollector PlanningMetricsRecorder
)

// PlanningMetricsRecorder defines the interface for recording scheduling passes
type PlanningMetricsRecorder interface {
	RecordSchedulePlan(mode string, plan *voyage.Plan)
}

// InitRegistry initializes the Prometheus registry with the Go runtime and
// process collectors. Call once at startup when metrics are enabled.
func InitRegistry() {
	Registry = prometheus.NewRegistry()
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// Reset drops the registry and every global collector
func Reset() {
	Registry = nil
	globalPlanningCollector = nil
}

// SetGlobalPlanningCollector sets the global planning metrics collector
func SetGlobalPlanningCollector(collector PlanningMetricsRecorder) {
	globalPlanningCollector = collector
}

// RecordSchedulePlan records a completed scheduling pass globally
func RecordSchedulePlan(mode string, plan *voyage.Plan) {
	if globalPlanningCollector != nil && plan != nil {
		globalPlanningCollector.RecordSchedulePlan(mode, plan)
	}
}
