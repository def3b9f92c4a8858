package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	planninggrpc "github.com/andrescamacho/voyageplanner-go/internal/adapters/grpc"
	"github.com/andrescamacho/voyageplanner-go/internal/application/logging"
	"github.com/andrescamacho/voyageplanner-go/internal/application/mediator"
	"github.com/andrescamacho/voyageplanner-go/internal/application/planning/commands"
	"github.com/andrescamacho/voyageplanner-go/internal/application/planning/queries"
	"github.com/andrescamacho/voyageplanner-go/internal/application/setup"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/shared"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
	"github.com/andrescamacho/voyageplanner-go/internal/infrastructure/config"
	infralogging "github.com/andrescamacho/voyageplanner-go/internal/infrastructure/logging"
	"github.com/andrescamacho/voyageplanner-go/internal/infrastructure/storage"
)

// app is the local composition used by one CLI invocation
type app struct {
	cfg      *config.Config
	backend  *storage.Backend
	logger   *infralogging.SlogLogger
	mediator mediator.Mediator
}

// openApp loads configuration, opens the storage backend and wires the mediator.
// CLI logs go to stderr so they never mix with command output.
func openApp() (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logCfg := cfg.Logging
	logCfg.Output = "stderr"
	logCfg.Format = "text"
	if !verbose {
		logCfg.Level = "warn"
	}
	logger, err := infralogging.New(&logCfg)
	if err != nil {
		return nil, err
	}

	backend, err := storage.Open(&cfg.Database)
	if err != nil {
		return nil, err
	}

	clock := shared.NewRealClock()
	registry := setup.NewHandlerRegistry(
		backend.Vessels,
		backend.Voyages,
		backend.Waypoints,
		backend.Calibration,
		backend.Runs,
		voyage.NewScheduler(cfg.Planning.Policy(), clock),
		clock,
	)
	med, err := registry.CreateConfiguredMediator(logging.Middleware(logger))
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("failed to configure mediator: %w", err)
	}

	return &app{cfg: cfg, backend: backend, logger: logger, mediator: med}, nil
}

func (a *app) Close() error {
	return a.backend.Close()
}

// withApp runs fn against a freshly opened app and closes it afterwards
func withApp(fn func(ctx context.Context, a *app) error) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := logging.WithLogger(context.Background(), a.logger)
	return fn(ctx, a)
}

// planner is implemented by the local mediator and by the daemon client
type planner interface {
	ScheduleVoyage(ctx context.Context, voyageID int64, force bool) (*planninggrpc.PlanView, error)
	RecalculateTimes(ctx context.Context, voyageID int64) (*planninggrpc.PlanView, error)
	GetVoyagePlan(ctx context.Context, voyageID int64) (*planninggrpc.PlanView, error)
}

type localPlanner struct {
	mediator mediator.Mediator
}

func (p *localPlanner) ScheduleVoyage(ctx context.Context, voyageID int64, force bool) (*planninggrpc.PlanView, error) {
	resp, err := p.mediator.Send(ctx, &commands.ScheduleVoyageCommand{VoyageID: voyageID, Force: force})
	if err != nil {
		return nil, err
	}
	return planninggrpc.ViewFromSchedule(resp.(*commands.ScheduleVoyageResponse)), nil
}

func (p *localPlanner) RecalculateTimes(ctx context.Context, voyageID int64) (*planninggrpc.PlanView, error) {
	resp, err := p.mediator.Send(ctx, &commands.RecalculateTimesCommand{VoyageID: voyageID})
	if err != nil {
		return nil, err
	}
	return planninggrpc.ViewFromTimes(resp.(*commands.RecalculateTimesResponse)), nil
}

func (p *localPlanner) GetVoyagePlan(ctx context.Context, voyageID int64) (*planninggrpc.PlanView, error) {
	resp, err := p.mediator.Send(ctx, &queries.GetVoyagePlanQuery{VoyageID: voyageID})
	if err != nil {
		return nil, err
	}
	return planninggrpc.ViewFromStored(resp.(*queries.GetVoyagePlanResponse)), nil
}

// withPlanner runs fn against the daemon when --remote is set, otherwise locally
func withPlanner(fn func(ctx context.Context, p planner) error) error {
	if !remote {
		return withApp(func(ctx context.Context, a *app) error {
			return fn(ctx, &localPlanner{mediator: a.mediator})
		})
	}

	client, err := planninggrpc.NewPlanningClient(resolveSocketPath())
	if err != nil {
		return err
	}
	defer client.Close()

	return fn(context.Background(), client)
}

// resolveSocketPath prefers --socket, then the configured daemon socket
func resolveSocketPath() string {
	if socketPath != "" {
		return socketPath
	}
	return config.LoadConfigOrDefault(configPath).Daemon.SocketPath
}

// resolveVesselID resolves the vessel from the flag or the user's default.
// Priority: --vessel flag > user config default.
func resolveVesselID(flagValue int64) (int64, error) {
	if flagValue > 0 {
		return flagValue, nil
	}

	userConfigHandler, err := config.NewUserConfigHandler()
	if err != nil {
		return 0, fmt.Errorf("no vessel specified and failed to load user config: %w", err)
	}
	userCfg, err := userConfigHandler.Load()
	if err != nil {
		return 0, fmt.Errorf("no vessel specified and failed to load user config: %w", err)
	}
	if userCfg.DefaultVesselID != nil {
		return *userCfg.DefaultVesselID, nil
	}

	return 0, fmt.Errorf("no vessel specified: use --vessel, or set a default with 'voyage vessel use <id>'")
}

// parseID parses a positional numeric ID argument
func parseID(name, value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", name, value)
	}
	return id, nil
}

func exactArgsID(name string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("expected exactly one %s argument", name)
		}
		_, err := parseID(name, args[0])
		return err
	}
}
