package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/voyageplanner-go/internal/application/mediator"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/shared"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
)

func TestPlanningMetricsCollector_RecordSchedulePlan(t *testing.T) {
	// Arrange
	InitRegistry()
	defer Reset()

	collector := NewPlanningMetricsCollector()
	require.NoError(t, collector.Register())
	SetGlobalPlanningCollector(collector)

	plan := &voyage.Plan{
		TotalDistance:      48,
		TotalDurationHours: 4,
		Approximate:        true,
		Legs: []voyage.Leg{
			{LegResult: voyage.LegResult{SpeedSource: voyage.SourceCalibration, FuelSource: voyage.SourceCalibration, FuelConsumed: 100}},
			{LegResult: voyage.LegResult{SpeedSource: voyage.SourcePlanned, FuelSource: voyage.SourceEstimate, FuelConsumed: 0, Degenerate: true}},
		},
		Warnings: []voyage.Warning{{Kind: voyage.WarningDegenerateLeg}},
		Changes:  map[int64]voyage.WaypointChanges{1: {voyage.FieldEstimatedDeparture: nil}},
	}

	// Act
	RecordSchedulePlan("full", plan)

	// Assert
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.scheduleRunsTotal.WithLabelValues("full", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.legsTotal.WithLabelValues("calibration", "calibration")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.legsTotal.WithLabelValues("planned", "estimate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.degenerateLegs))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.warningsTotal.WithLabelValues("degenerate_leg")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.waypointsChanged.WithLabelValues("full")))
	assert.Equal(t, 100.0, testutil.ToFloat64(collector.legFuelConsumed))
}

func TestRecordSchedulePlan_NoCollectorIsNoOp(t *testing.T) {
	Reset()

	assert.NotPanics(t, func() { RecordSchedulePlan("full", &voyage.Plan{}) })
}

func TestPrometheusMiddleware_RecordsOutcome(t *testing.T) {
	// Arrange
	InitRegistry()
	defer Reset()

	collector := NewCommandMetricsCollector()
	require.NoError(t, collector.Register())
	mw := PrometheusMiddleware(collector)

	type ScheduleVoyageCommand struct{}
	ok := func(ctx context.Context, request mediator.Request) (mediator.Response, error) { return "done", nil }
	fail := func(ctx context.Context, request mediator.Request) (mediator.Response, error) { return nil, errors.New("boom") }
	missing := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return nil, fmt.Errorf("load voyage: %w", voyage.NewVoyageNotFoundError(9))
	}

	// Act
	_, err1 := mw(context.Background(), &ScheduleVoyageCommand{}, ok)
	_, err2 := mw(context.Background(), &ScheduleVoyageCommand{}, fail)
	_, err3 := mw(context.Background(), &ScheduleVoyageCommand{}, missing)

	// Assert
	assert.NoError(t, err1)
	assert.Error(t, err2)
	assert.Error(t, err3)
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.dispatchesTotal.WithLabelValues("ScheduleVoyageCommand", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.dispatchesTotal.WithLabelValues("ScheduleVoyageCommand", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.dispatchesTotal.WithLabelValues("ScheduleVoyageCommand", "not_found")))
	assert.Equal(t, 0.0, testutil.ToFloat64(collector.inFlight.WithLabelValues("ScheduleVoyageCommand")))
}

func TestClassifyOutcome(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "ok"},
		{"voyage not found", voyage.NewVoyageNotFoundError(1), "not_found"},
		{"validation", shared.NewValidationError("kind", "bad"), "invalid"},
		{"other", errors.New("disk full"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyOutcome(tt.err))
		})
	}
}
