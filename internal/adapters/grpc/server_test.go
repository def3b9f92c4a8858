package grpc_test

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"

	planninggrpc "github.com/andrescamacho/voyageplanner-go/internal/adapters/grpc"
	"github.com/andrescamacho/voyageplanner-go/internal/application/setup"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/calibration"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/shared"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
	"github.com/andrescamacho/voyageplanner-go/internal/infrastructure/config"
	"github.com/andrescamacho/voyageplanner-go/test/helpers"
)

type harness struct {
	repos  helpers.Repositories
	client *planninggrpc.PlanningClient
	conn   *grpc.ClientConn
}

func startServer(t *testing.T, cfg config.DaemonConfig) *harness {
	t.Helper()

	repos := helpers.NewMemoryRepositories(t)
	registry := setup.NewHandlerRegistry(
		repos.Vessels, repos.Voyages, repos.Waypoints, repos.Calibration, repos.Runs,
		nil, shared.NewMockClock(helpers.VoyageStart),
	)
	med, err := registry.CreateConfiguredMediator()
	require.NoError(t, err)

	listener := bufconn.Listen(1 << 20)
	server := planninggrpc.NewPlanningServer(med, &cfg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = server.Serve(ctx, listener)
		close(done)
	}()

	conn, err := grpc.NewClient(
		"passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		conn.Close()
		cancel()
		<-done
	})

	return &harness{repos: repos, client: planninggrpc.NewPlanningClientFromConn(conn), conn: conn}
}

func defaultDaemonConfig() config.DaemonConfig {
	return config.DaemonConfig{
		RequestTimeout:  5 * time.Second,
		RateLimit:       1000,
		RateBurst:       1000,
		ShutdownTimeout: time.Second,
	}
}

func seedScenarioA(t *testing.T, repos helpers.Repositories) *voyage.Voyage {
	vessel := helpers.CreateVessel(t, repos, "Aurora")
	helpers.AddCalibration(t, repos, vessel.ID, calibration.KindSpeed, map[int]float64{1600: 12})
	helpers.AddCalibration(t, repos, vessel.ID, calibration.KindFuelRate, map[int]float64{1600: 50})

	start := helpers.VoyageStart
	v, _ := helpers.CreateVoyage(t, repos, vessel.ID, &start,
		helpers.Stop{Name: "Origin", Latitude: 0, Longitude: 0},
		helpers.Stop{Name: "Mid", Latitude: 0, Longitude: 0.4, Distance: helpers.Float(24), EngineRPM: helpers.Int(1600)},
		helpers.Stop{Name: "End", Latitude: 0, Longitude: 0.6, Distance: helpers.Float(12), EngineRPM: helpers.Int(1600)},
	)
	return v
}

func TestPlanningService_ScheduleVoyage(t *testing.T) {
	// Arrange
	h := startServer(t, defaultDaemonConfig())
	v := seedScenarioA(t, h.repos)

	// Act
	view, err := h.client.ScheduleVoyage(context.Background(), v.ID, false)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, v.ID, view.VoyageID)
	assert.Equal(t, "full", view.Mode)
	assert.NotEmpty(t, view.RunID)
	assert.True(t, view.TotalsPersisted)
	assert.InDelta(t, 36.0, view.TotalDistance, 1e-9)
	assert.InDelta(t, 150.0, view.TotalFuelConsumption, 1e-9)
	require.Len(t, view.Waypoints, 3)
	require.Len(t, view.Legs, 2)
	assert.InDelta(t, 2.0, view.Legs[0].DurationHours, 1e-9)
	assert.Equal(t, "calibration", view.Legs[0].SpeedSource)

	arrival := view.Waypoints[1].EstimatedArrival
	require.NotNil(t, arrival)
	assert.True(t, time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC).Equal(*arrival))
	assert.Nil(t, view.Waypoints[0].EstimatedArrival)
	assert.Nil(t, view.Waypoints[2].EstimatedDeparture)
	assert.Contains(t, view.Waypoints[1].Derived, "planned_speed")
}

func TestPlanningService_GetVoyagePlanAfterTimes(t *testing.T) {
	// Arrange
	h := startServer(t, defaultDaemonConfig())
	v := seedScenarioA(t, h.repos)
	ctx := context.Background()

	_, err := h.client.RecalculateTimes(ctx, v.ID)
	require.NoError(t, err)

	// Act
	view, err := h.client.GetVoyagePlan(ctx, v.ID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "times", view.Mode)
	assert.Zero(t, view.TotalDistance)
	require.Len(t, view.Waypoints, 3)
	assert.NotNil(t, view.Waypoints[2].EstimatedArrival)
	assert.Nil(t, view.Waypoints[1].PlannedSpeed)
}

func TestPlanningService_UnknownVoyageMapsToNotFound(t *testing.T) {
	h := startServer(t, defaultDaemonConfig())

	_, err := h.client.ScheduleVoyage(context.Background(), 99, false)

	var notFound *voyage.VoyageNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, int64(99), notFound.ID)
}

func TestPlanningService_RejectsNonPositiveID(t *testing.T) {
	h := startServer(t, defaultDaemonConfig())

	_, err := h.client.GetVoyagePlan(context.Background(), 0)

	var validation *shared.ValidationError
	assert.True(t, errors.As(err, &validation))
}

func TestPlanningService_RateLimited(t *testing.T) {
	// Arrange
	cfg := defaultDaemonConfig()
	cfg.RateLimit = 0.001
	cfg.RateBurst = 1
	h := startServer(t, cfg)
	v := seedScenarioA(t, h.repos)
	ctx := context.Background()

	// Act
	_, first := h.client.GetVoyagePlan(ctx, v.ID)
	_, second := h.client.GetVoyagePlan(ctx, v.ID)

	// Assert
	require.NoError(t, first)
	require.Error(t, second)
	assert.Contains(t, second.Error(), "ResourceExhausted")
}

func TestPlanningService_Health(t *testing.T) {
	h := startServer(t, defaultDaemonConfig())

	resp, err := healthpb.NewHealthClient(h.conn).Check(context.Background(), &healthpb.HealthCheckRequest{
		Service: "voyageplanner.v1.PlanningService",
	})

	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
}

func TestPlanningClient_Health(t *testing.T) {
	h := startServer(t, defaultDaemonConfig())

	status, err := h.client.Health(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "SERVING", status)
}
