package grpc

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/andrescamacho/voyageplanner-go/internal/application/logging"
	"github.com/andrescamacho/voyageplanner-go/internal/application/mediator"
	"github.com/andrescamacho/voyageplanner-go/internal/application/planning/commands"
	"github.com/andrescamacho/voyageplanner-go/internal/application/planning/queries"
	"github.com/andrescamacho/voyageplanner-go/internal/infrastructure/config"
)

// PlanningServer exposes the planning commands over gRPC.
// Every call is dispatched through the mediator.
type PlanningServer struct {
	mediator        mediator.Mediator
	logger          logging.Logger
	server          *grpc.Server
	health          *health.Server
	shutdownTimeout time.Duration
}

// NewPlanningServer creates a server with rate limiting, a per-call timeout
// and the standard health service
func NewPlanningServer(med mediator.Mediator, cfg *config.DaemonConfig, logger logging.Logger) *PlanningServer {
	if logger == nil {
		logger = logging.LoggerFromContext(context.Background())
	}

	burst := cfg.RateBurst
	if burst < 1 {
		burst = 1
	}
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	server := grpc.NewServer(grpc.ChainUnaryInterceptor(
		rateLimitInterceptor(rate.NewLimiter(limit, burst)),
		timeoutInterceptor(cfg.RequestTimeout),
		errorInterceptor(),
	))

	s := &PlanningServer{
		mediator:        med,
		logger:          logger,
		server:          server,
		health:          health.NewServer(),
		shutdownTimeout: cfg.ShutdownTimeout,
	}

	RegisterPlanningServiceServer(server, s)
	healthpb.RegisterHealthServer(server, s.health)
	s.health.SetServingStatus(planningServiceName, healthpb.HealthCheckResponse_SERVING)

	return s
}

// Listen opens the daemon's unix socket, replacing a stale one, with
// owner-only permissions
func Listen(socketPath string) (net.Listener, error) {
	if err := os.MkdirAll(filepath.Dir(socketPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create socket directory: %w", err)
	}
	if err := os.RemoveAll(socketPath); err != nil {
		return nil, fmt.Errorf("failed to remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create unix socket listener: %w", err)
	}
	if err := os.Chmod(socketPath, 0600); err != nil {
		listener.Close()
		return nil, fmt.Errorf("failed to set socket permissions: %w", err)
	}
	return listener, nil
}

// Serve blocks until ctx is cancelled or the listener fails. On cancel the
// server drains in-flight calls, then stops hard after the shutdown timeout.
func (s *PlanningServer) Serve(ctx context.Context, listener net.Listener) error {
	errChan := make(chan error, 1)
	go func() {
		errChan <- s.server.Serve(listener)
	}()

	s.logger.Log("INFO", "Planning service listening", map[string]interface{}{
		"address": listener.Addr().String(),
	})

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("gRPC server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Log("INFO", "Shutting down planning service", nil)
	s.health.Shutdown()

	stopped := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(stopped)
	}()

	timeout := s.shutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	select {
	case <-stopped:
	case <-time.After(timeout):
		s.logger.Log("WARN", "Graceful shutdown timed out, forcing stop", map[string]interface{}{
			"timeout": timeout.String(),
		})
		s.server.Stop()
	}
	return nil
}

func (s *PlanningServer) ScheduleVoyage(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := decodeRequest(in)
	if err != nil {
		return nil, err
	}

	resp, err := s.mediator.Send(ctx, &commands.ScheduleVoyageCommand{VoyageID: req.VoyageID, Force: req.Force})
	if err != nil {
		return nil, err
	}
	return toStruct(ViewFromSchedule(resp.(*commands.ScheduleVoyageResponse)))
}

func (s *PlanningServer) RecalculateTimes(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := decodeRequest(in)
	if err != nil {
		return nil, err
	}

	resp, err := s.mediator.Send(ctx, &commands.RecalculateTimesCommand{VoyageID: req.VoyageID})
	if err != nil {
		return nil, err
	}
	return toStruct(ViewFromTimes(resp.(*commands.RecalculateTimesResponse)))
}

func (s *PlanningServer) GetVoyagePlan(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := decodeRequest(in)
	if err != nil {
		return nil, err
	}

	resp, err := s.mediator.Send(ctx, &queries.GetVoyagePlanQuery{VoyageID: req.VoyageID})
	if err != nil {
		return nil, err
	}
	return toStruct(ViewFromStored(resp.(*queries.GetVoyagePlanResponse)))
}

func decodeRequest(in *structpb.Struct) (*ScheduleRequest, error) {
	var req ScheduleRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if req.VoyageID <= 0 {
		return nil, status.Error(codes.InvalidArgument, "voyage_id must be positive")
	}
	return &req, nil
}
