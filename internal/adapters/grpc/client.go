package grpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/andrescamacho/voyageplanner-go/internal/domain/shared"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
)

// PlanningClient calls a running daemon over its unix socket
type PlanningClient struct {
	conn *grpc.ClientConn
}

// NewPlanningClient creates a client for the daemon listening on socketPath
func NewPlanningClient(socketPath string) (*PlanningClient, error) {
	conn, err := grpc.NewClient(
		"unix:"+socketPath,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon socket: %w", err)
	}
	return &PlanningClient{conn: conn}, nil
}

// NewPlanningClientFromConn wraps an existing connection
func NewPlanningClientFromConn(conn *grpc.ClientConn) *PlanningClient {
	return &PlanningClient{conn: conn}
}

// Close closes the gRPC connection
func (c *PlanningClient) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func (c *PlanningClient) ScheduleVoyage(ctx context.Context, voyageID int64, force bool) (*PlanView, error) {
	return c.call(ctx, methodScheduleVoyage, &ScheduleRequest{VoyageID: voyageID, Force: force})
}

func (c *PlanningClient) RecalculateTimes(ctx context.Context, voyageID int64) (*PlanView, error) {
	return c.call(ctx, methodRecalculateTimes, &ScheduleRequest{VoyageID: voyageID})
}

func (c *PlanningClient) GetVoyagePlan(ctx context.Context, voyageID int64) (*PlanView, error) {
	return c.call(ctx, methodGetVoyagePlan, &ScheduleRequest{VoyageID: voyageID})
}

// Health reports the serving status of the planning service
func (c *PlanningClient) Health(ctx context.Context) (string, error) {
	resp, err := healthpb.NewHealthClient(c.conn).Check(ctx, &healthpb.HealthCheckRequest{
		Service: planningServiceName,
	})
	if err != nil {
		return "", fmt.Errorf("health check failed: %w", err)
	}
	return resp.GetStatus().String(), nil
}

func (c *PlanningClient) call(ctx context.Context, method string, req *ScheduleRequest) (*PlanView, error) {
	in, err := toStruct(req)
	if err != nil {
		return nil, err
	}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, method, in, out); err != nil {
		return nil, fromStatus(err, req.VoyageID)
	}

	var view PlanView
	if err := fromStruct(out, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// fromStatus turns status codes back into the domain errors callers test for
func fromStatus(err error, voyageID int64) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.NotFound:
		return voyage.NewVoyageNotFoundError(voyageID)
	case codes.InvalidArgument:
		return shared.NewValidationError("request", st.Message())
	default:
		return fmt.Errorf("daemon call failed: %s: %s", st.Code(), st.Message())
	}
}
