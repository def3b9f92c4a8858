package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/voyageplanner-go/internal/domain/shared"
)

// Outcome labels attached to every mediator dispatch
const (
	outcomeOK       = "ok"
	outcomeNotFound = "not_found"
	outcomeInvalid  = "invalid"
	outcomeError    = "error"
)

// CommandMetricsCollector tracks mediator dispatches by request type and
// outcome, plus the number of requests currently in a handler.
type CommandMetricsCollector struct {
	dispatchDuration *prometheus.HistogramVec
	dispatchesTotal  *prometheus.CounterVec
	inFlight         *prometheus.GaugeVec
}

func NewCommandMetricsCollector() *CommandMetricsCollector {
	return &CommandMetricsCollector{
		// Planning a voyage is a handful of queries, so the buckets stay
		// well under a second and only the tail reaches into seconds.
		dispatchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "request_duration_seconds",
				Help:      "Time spent handling a mediator request",
				Buckets:   []float64{0.0005, 0.002, 0.01, 0.05, 0.25, 1, 4},
			},
			[]string{"request", "outcome"},
		),
		dispatchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "commands_total",
				Help:      "Mediator requests handled, by request type and outcome",
			},
			[]string{"request", "outcome"},
		),
		inFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_in_flight",
				Help:      "Mediator requests currently being handled",
			},
			[]string{"request"},
		),
	}
}

// Register adds the collectors to Registry. It is a no-op while metrics are
// disabled.
func (c *CommandMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}

	for _, collector := range []prometheus.Collector{c.dispatchDuration, c.dispatchesTotal, c.inFlight} {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// Begin marks a request as in flight and returns the function that must be
// called once the handler returns.
func (c *CommandMetricsCollector) Begin(request string) func(seconds float64, err error) {
	gauge := c.inFlight.WithLabelValues(request)
	gauge.Inc()

	return func(seconds float64, err error) {
		gauge.Dec()
		outcome := classifyOutcome(err)
		c.dispatchDuration.WithLabelValues(request, outcome).Observe(seconds)
		c.dispatchesTotal.WithLabelValues(request, outcome).Inc()
	}
}

func classifyOutcome(err error) string {
	if err == nil {
		return outcomeOK
	}

	var notFound *shared.NotFoundError
	if errors.As(err, &notFound) {
		return outcomeNotFound
	}

	var invalid *shared.ValidationError
	if errors.As(err, &invalid) {
		return outcomeInvalid
	}

	return outcomeError
}
