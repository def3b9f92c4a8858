package setup

import (
	"reflect"

	"github.com/andrescamacho/voyageplanner-go/internal/application/mediator"
	"github.com/andrescamacho/voyageplanner-go/internal/application/planning/commands"
	"github.com/andrescamacho/voyageplanner-go/internal/application/planning/queries"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/calibration"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/shared"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	vesselRepo      voyage.VesselRepository
	voyageRepo      voyage.VoyageRepository
	waypointRepo    voyage.WaypointRepository
	calibrationRepo calibration.Repository
	runRepo         voyage.ScheduleRunRepository
	scheduler       *voyage.Scheduler
	clock           shared.Clock
}

// NewHandlerRegistry creates a new handler registry with required dependencies.
// A nil scheduler uses the default planning policy.
func NewHandlerRegistry(
	vesselRepo voyage.VesselRepository,
	voyageRepo voyage.VoyageRepository,
	waypointRepo voyage.WaypointRepository,
	calibrationRepo calibration.Repository,
	runRepo voyage.ScheduleRunRepository,
	scheduler *voyage.Scheduler,
	clock shared.Clock,
) *HandlerRegistry {
	clock = shared.ClockOrReal(clock)
	if scheduler == nil {
		scheduler = voyage.NewScheduler(voyage.DefaultPolicy(), clock)
	}

	return &HandlerRegistry{
		vesselRepo:      vesselRepo,
		voyageRepo:      voyageRepo,
		waypointRepo:    waypointRepo,
		calibrationRepo: calibrationRepo,
		runRepo:         runRepo,
		scheduler:       scheduler,
		clock:           clock,
	}
}

// RegisterPlanningHandlers registers the scheduling commands and the plan query:
//   - ScheduleVoyageCommand → ScheduleVoyageHandler (full pass, totals, run history)
//   - RecalculateTimesCommand → RecalculateTimesHandler (timestamps only)
//   - GetVoyagePlanQuery → GetVoyagePlanHandler
func (r *HandlerRegistry) RegisterPlanningHandlers(m mediator.Mediator) error {
	scheduleHandler := commands.NewScheduleVoyageHandler(
		r.voyageRepo,
		r.waypointRepo,
		r.calibrationRepo,
		r.runRepo,
		r.scheduler,
		r.clock,
	)
	if err := m.Register(
		reflect.TypeOf(&commands.ScheduleVoyageCommand{}),
		scheduleHandler,
	); err != nil {
		return err
	}

	timesHandler := commands.NewRecalculateTimesHandler(
		r.voyageRepo,
		r.waypointRepo,
		r.calibrationRepo,
		r.runRepo,
		r.scheduler,
		r.clock,
	)
	if err := m.Register(
		reflect.TypeOf(&commands.RecalculateTimesCommand{}),
		timesHandler,
	); err != nil {
		return err
	}

	planHandler := queries.NewGetVoyagePlanHandler(r.voyageRepo, r.waypointRepo, r.runRepo)
	if err := m.Register(
		reflect.TypeOf(&queries.GetVoyagePlanQuery{}),
		planHandler,
	); err != nil {
		return err
	}

	return nil
}

// RegisterSetupHandlers registers the commands and queries that build up
// vessels, calibration curves, voyages and waypoints
func (r *HandlerRegistry) RegisterSetupHandlers(m mediator.Mediator) error {
	handlers := []struct {
		request interface{}
		handler mediator.RequestHandler
	}{
		{&commands.CreateVesselCommand{}, commands.NewCreateVesselHandler(r.vesselRepo)},
		{&commands.AddCalibrationSampleCommand{}, commands.NewAddCalibrationSampleHandler(r.vesselRepo, r.calibrationRepo)},
		{&commands.CreateVoyageCommand{}, commands.NewCreateVoyageHandler(r.vesselRepo, r.voyageRepo)},
		{&commands.AddWaypointCommand{}, commands.NewAddWaypointHandler(r.voyageRepo, r.waypointRepo)},
		{&queries.ListVesselsQuery{}, queries.NewListVesselsHandler(r.vesselRepo)},
		{&queries.ListVoyagesQuery{}, queries.NewListVoyagesHandler(r.voyageRepo)},
	}

	for _, h := range handlers {
		if err := m.Register(reflect.TypeOf(h.request), h.handler); err != nil {
			return err
		}
	}

	return nil
}

// CreateConfiguredMediator creates a mediator with every handler registered
// and the given middlewares installed, outermost first
func (r *HandlerRegistry) CreateConfiguredMediator(middlewares ...mediator.Middleware) (mediator.Mediator, error) {
	m := mediator.NewMediator()

	for _, mw := range middlewares {
		m.Use(mw)
	}

	if err := r.RegisterPlanningHandlers(m); err != nil {
		return nil, err
	}

	if err := r.RegisterSetupHandlers(m); err != nil {
		return nil, err
	}

	return m, nil
}
