package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
)

// PlanningMetricsCollector handles scheduling pass and leg metrics
type PlanningMetricsCollector struct {
	// Pass metrics
	scheduleRunsTotal *prometheus.CounterVec
	voyageDistance    *prometheus.HistogramVec
	voyageDuration    *prometheus.HistogramVec
	waypointsChanged  *prometheus.CounterVec

	// Leg metrics
	legsTotal       *prometheus.CounterVec
	degenerateLegs  prometheus.Counter
	warningsTotal   *prometheus.CounterVec
	legFuelConsumed prometheus.Counter
}

// NewPlanningMetricsCollector creates a new planning metrics collector
func NewPlanningMetricsCollector() *PlanningMetricsCollector {
	return &PlanningMetricsCollector{
		scheduleRunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "schedule_runs_total",
				Help:      "Total number of scheduling passes by mode and whether estimates were used",
			},
			[]string{"mode", "approximate"},
		),

		voyageDistance: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "voyage_distance_nautical_miles",
				Help:      "Total planned voyage distance distribution",
				Buckets:   []float64{10, 50, 100, 250, 500, 1000, 2500, 5000},
			},
			[]string{"mode"},
		),

		voyageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "voyage_transit_hours",
				Help:      "Total planned transit time distribution, dwell excluded",
				Buckets:   []float64{1, 6, 12, 24, 48, 96, 168, 336},
			},
			[]string{"mode"},
		),

		waypointsChanged: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "waypoints_changed_total",
				Help:      "Total number of waypoints whose stored fields a pass changed",
			},
			[]string{"mode"},
		),

		legsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "legs_total",
				Help:      "Total number of legs computed by speed and fuel source",
			},
			[]string{"speed_source", "fuel_source"},
		),

		degenerateLegs: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "degenerate_legs_total",
				Help:      "Total number of legs whose resolved speed was not positive",
			},
		),

		warningsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "warnings_total",
				Help:      "Total number of scheduling warnings by kind",
			},
			[]string{"kind"},
		),

		legFuelConsumed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "planned_fuel_total",
				Help:      "Total fuel planned across all computed legs",
			},
		),
	}
}

// Register registers all planning metrics with the Prometheus registry
func (c *PlanningMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.scheduleRunsTotal,
		c.voyageDistance,
		c.voyageDuration,
		c.waypointsChanged,
		c.legsTotal,
		c.degenerateLegs,
		c.warningsTotal,
		c.legFuelConsumed,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordSchedulePlan records one scheduling pass
func (c *PlanningMetricsCollector) RecordSchedulePlan(mode string, plan *voyage.Plan) {
	c.scheduleRunsTotal.WithLabelValues(mode, strconv.FormatBool(plan.Approximate)).Inc()
	c.waypointsChanged.WithLabelValues(mode).Add(float64(plan.ChangedWaypoints()))

	// Empty routes carry no distance information
	if len(plan.Legs) > 0 {
		c.voyageDistance.WithLabelValues(mode).Observe(plan.TotalDistance)
		c.voyageDuration.WithLabelValues(mode).Observe(plan.TotalDurationHours)
	}

	for _, leg := range plan.Legs {
		c.legsTotal.WithLabelValues(string(leg.SpeedSource), string(leg.FuelSource)).Inc()
		if leg.Degenerate {
			c.degenerateLegs.Inc()
		}
		c.legFuelConsumed.Add(leg.FuelConsumed)
	}

	for _, w := range plan.Warnings {
		c.warningsTotal.WithLabelValues(string(w.Kind)).Inc()
	}
}
