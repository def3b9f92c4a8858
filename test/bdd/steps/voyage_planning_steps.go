package steps

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"

	"github.com/andrescamacho/voyageplanner-go/internal/application/mediator"
	"github.com/andrescamacho/voyageplanner-go/internal/application/planning/commands"
	"github.com/andrescamacho/voyageplanner-go/internal/application/setup"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/shared"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
	"github.com/andrescamacho/voyageplanner-go/test/helpers"
)

// Clock reading used when a voyage has no start date
var scenarioNow = time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC)

const floatTolerance = 1e-6

// voyagePlanningContext holds state for voyage planning scenarios
type voyagePlanningContext struct {
	repos    helpers.Repositories
	mediator mediator.Mediator

	vessel *voyage.Vessel
	voyage *voyage.Voyage

	plan             *voyage.Plan
	updatedWaypoints int
	err              error
}

func (ctx *voyagePlanningContext) reset() {
	if err := helpers.TruncateAllTables(); err != nil {
		panic(fmt.Sprintf("failed to truncate tables: %v", err))
	}

	ctx.repos = helpers.NewGormRepositories(helpers.SharedTestDB)
	registry := setup.NewHandlerRegistry(
		ctx.repos.Vessels,
		ctx.repos.Voyages,
		ctx.repos.Waypoints,
		ctx.repos.Calibration,
		ctx.repos.Runs,
		nil,
		shared.NewMockClock(scenarioNow),
	)
	med, err := registry.CreateConfiguredMediator()
	if err != nil {
		panic(fmt.Sprintf("failed to configure mediator: %v", err))
	}
	ctx.mediator = med

	ctx.vessel = nil
	ctx.voyage = nil
	ctx.plan = nil
	ctx.updatedWaypoints = 0
	ctx.err = nil
}

// InitializeVoyagePlanningScenario registers step definitions
func InitializeVoyagePlanningScenario(sc *godog.ScenarioContext) {
	sCtx := &voyagePlanningContext{}

	// Given steps
	sc.Step(`^a vessel named "([^"]*)"$`, sCtx.aVesselNamed)
	sc.Step(`^the vessel has a (speed|fuel_rate) sample of ([\d.]+) at (\d+) rpm$`, sCtx.theVesselHasASample)
	sc.Step(`^a voyage departing at "([^"]*)"$`, sCtx.aVoyageDepartingAt)
	sc.Step(`^a voyage with no departure time$`, sCtx.aVoyageWithNoDepartureTime)
	sc.Step(`^the voyage has waypoints:$`, sCtx.theVoyageHasWaypoints)

	// When steps
	sc.Step(`^I schedule the voyage$`, sCtx.iScheduleTheVoyage)
	sc.Step(`^I schedule the voyage with force$`, sCtx.iScheduleTheVoyageWithForce)
	sc.Step(`^I schedule the voyage again$`, sCtx.iScheduleTheVoyage)
	sc.Step(`^I recalculate the voyage times$`, sCtx.iRecalculateTheVoyageTimes)
	sc.Step(`^I schedule voyage (\d+)$`, sCtx.iScheduleVoyage)

	// Then steps
	sc.Step(`^the scheduling should succeed$`, sCtx.theSchedulingShouldSucceed)
	sc.Step(`^the scheduling should fail with "([^"]*)"$`, sCtx.theSchedulingShouldFailWith)
	sc.Step(`^the total distance should be ([\d.]+) nm$`, sCtx.theTotalDistanceShouldBe)
	sc.Step(`^the total fuel consumption should be ([\d.]+)$`, sCtx.theTotalFuelConsumptionShouldBe)
	sc.Step(`^the total duration should be ([\d.]+) hours$`, sCtx.theTotalDurationShouldBe)
	sc.Step(`^the stored voyage totals should be ([\d.]+) nm and ([\d.]+) fuel$`, sCtx.theStoredVoyageTotalsShouldBe)
	sc.Step(`^the plan should contain (\d+) waypoints?$`, sCtx.thePlanShouldContainWaypoints)
	sc.Step(`^waypoint (\d+) should arrive at "([^"]*)"$`, sCtx.waypointShouldArriveAt)
	sc.Step(`^waypoint (\d+) should depart at "([^"]*)"$`, sCtx.waypointShouldDepartAt)
	sc.Step(`^waypoint (\d+) should have no arrival time$`, sCtx.waypointShouldHaveNoArrivalTime)
	sc.Step(`^waypoint (\d+) should have no departure time$`, sCtx.waypointShouldHaveNoDepartureTime)
	sc.Step(`^waypoint (\d+) should have (distance|planned speed|fuel consumption) ([\d.]+)$`, sCtx.waypointShouldHaveValue)
	sc.Step(`^waypoint (\d+) should have engine rpm (\d+)$`, sCtx.waypointShouldHaveEngineRPM)
	sc.Step(`^waypoint (\d+) should have no (distance|planned speed|fuel consumption)$`, sCtx.waypointShouldHaveNoValue)
	sc.Step(`^waypoint (\d+) distance should match the great-circle distance from waypoint (\d+)$`, sCtx.waypointDistanceShouldMatchGreatCircle)
	sc.Step(`^every intermediate waypoint should depart after it arrives$`, sCtx.everyIntermediateWaypointShouldDepartAfterItArrives)
	sc.Step(`^no waypoint should arrive before the previous one departs$`, sCtx.noWaypointShouldArriveBeforeThePreviousOneDeparts)
	sc.Step(`^(\d+) waypoints? should have been updated$`, sCtx.waypointsShouldHaveBeenUpdated)
	sc.Step(`^the plan should be approximate$`, sCtx.thePlanShouldBeApproximate)
	sc.Step(`^the plan should not be approximate$`, sCtx.thePlanShouldNotBeApproximate)
	sc.Step(`^the plan should have a "([^"]*)" warning$`, sCtx.thePlanShouldHaveAWarning)
	sc.Step(`^the plan should have no warnings$`, sCtx.thePlanShouldHaveNoWarnings)
	sc.Step(`^the stored waypoints should match the plan$`, sCtx.theStoredWaypointsShouldMatchThePlan)

	// Hooks
	sc.Before(func(gCtx context.Context, sc *godog.Scenario) (context.Context, error) {
		sCtx.reset()
		return gCtx, nil
	})
}

// ============================================================================
// Given Steps
// ============================================================================

func (ctx *voyagePlanningContext) aVesselNamed(name string) error {
	resp, err := ctx.mediator.Send(context.Background(), &commands.CreateVesselCommand{Name: name})
	if err != nil {
		return err
	}
	ctx.vessel = resp.(*commands.CreateVesselResponse).Vessel
	return nil
}

func (ctx *voyagePlanningContext) theVesselHasASample(kind string, value float64, rpm int) error {
	if ctx.vessel == nil {
		return fmt.Errorf("no vessel defined")
	}
	_, err := ctx.mediator.Send(context.Background(), &commands.AddCalibrationSampleCommand{
		VesselID:  ctx.vessel.ID,
		Kind:      kind,
		EngineRPM: rpm,
		Value:     value,
	})
	return err
}

func (ctx *voyagePlanningContext) aVoyageDepartingAt(start string) error {
	startDate, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return fmt.Errorf("invalid start date %q: %w", start, err)
	}
	return ctx.createVoyage(&startDate)
}

func (ctx *voyagePlanningContext) aVoyageWithNoDepartureTime() error {
	return ctx.createVoyage(nil)
}

func (ctx *voyagePlanningContext) createVoyage(startDate *time.Time) error {
	if ctx.vessel == nil {
		if err := ctx.aVesselNamed("Test Vessel"); err != nil {
			return err
		}
	}
	resp, err := ctx.mediator.Send(context.Background(), &commands.CreateVoyageCommand{
		VesselID:  ctx.vessel.ID,
		Name:      "Scenario voyage",
		StartDate: startDate,
	})
	if err != nil {
		return err
	}
	ctx.voyage = resp.(*commands.CreateVoyageResponse).Voyage
	return nil
}

// theVoyageHasWaypoints reads a table with an order, lat and lon column plus
// optional name, distance, rpm, speed and fuel columns. Empty cells are unset.
func (ctx *voyagePlanningContext) theVoyageHasWaypoints(table *messages.PickleTable) error {
	if ctx.voyage == nil {
		return fmt.Errorf("no voyage defined")
	}
	if len(table.Rows) < 2 {
		return fmt.Errorf("waypoint table needs a header and at least one row")
	}

	columns := make(map[string]int)
	for i, cell := range table.Rows[0].Cells {
		columns[strings.TrimSpace(cell.Value)] = i
	}
	for _, required := range []string{"order", "lat", "lon"} {
		if _, ok := columns[required]; !ok {
			return fmt.Errorf("waypoint table is missing the %q column", required)
		}
	}

	for _, row := range table.Rows[1:] {
		cell := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(row.Cells) {
				return ""
			}
			return strings.TrimSpace(row.Cells[idx].Value)
		}

		order, err := strconv.Atoi(cell("order"))
		if err != nil {
			return fmt.Errorf("invalid order %q: %w", cell("order"), err)
		}
		lat, err := strconv.ParseFloat(cell("lat"), 64)
		if err != nil {
			return fmt.Errorf("invalid lat %q: %w", cell("lat"), err)
		}
		lon, err := strconv.ParseFloat(cell("lon"), 64)
		if err != nil {
			return fmt.Errorf("invalid lon %q: %w", cell("lon"), err)
		}

		command := &commands.AddWaypointCommand{
			VoyageID:   ctx.voyage.ID,
			OrderIndex: order,
			Name:       cell("name"),
			Latitude:   lat,
			Longitude:  lon,
		}
		if command.Distance, err = optionalFloat(cell("distance")); err != nil {
			return err
		}
		if command.PlannedSpeed, err = optionalFloat(cell("speed")); err != nil {
			return err
		}
		if command.FuelConsumption, err = optionalFloat(cell("fuel")); err != nil {
			return err
		}
		if raw := cell("rpm"); raw != "" {
			rpm, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("invalid rpm %q: %w", raw, err)
			}
			command.EngineRPM = &rpm
		}

		if _, err := ctx.mediator.Send(context.Background(), command); err != nil {
			return fmt.Errorf("failed to add waypoint %d: %w", order, err)
		}
	}
	return nil
}

func optionalFloat(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", raw, err)
	}
	return &v, nil
}

// ============================================================================
// When Steps
// ============================================================================

func (ctx *voyagePlanningContext) iScheduleTheVoyage() error {
	return ctx.schedule(ctx.voyage.ID, false)
}

func (ctx *voyagePlanningContext) iScheduleTheVoyageWithForce() error {
	return ctx.schedule(ctx.voyage.ID, true)
}

func (ctx *voyagePlanningContext) iScheduleVoyage(voyageID int) error {
	return ctx.schedule(int64(voyageID), false)
}

func (ctx *voyagePlanningContext) schedule(voyageID int64, force bool) error {
	ctx.plan = nil
	ctx.updatedWaypoints = 0

	resp, err := ctx.mediator.Send(context.Background(), &commands.ScheduleVoyageCommand{
		VoyageID: voyageID,
		Force:    force,
	})
	ctx.err = err
	if err != nil {
		return nil
	}

	result := resp.(*commands.ScheduleVoyageResponse)
	ctx.plan = result.Plan
	ctx.updatedWaypoints = result.UpdatedWaypoints
	return nil
}

func (ctx *voyagePlanningContext) iRecalculateTheVoyageTimes() error {
	ctx.plan = nil
	ctx.updatedWaypoints = 0

	resp, err := ctx.mediator.Send(context.Background(), &commands.RecalculateTimesCommand{
		VoyageID: ctx.voyage.ID,
	})
	ctx.err = err
	if err != nil {
		return nil
	}

	result := resp.(*commands.RecalculateTimesResponse)
	ctx.plan = result.Plan
	ctx.updatedWaypoints = result.UpdatedWaypoints
	return nil
}

// ============================================================================
// Then Steps
// ============================================================================

func (ctx *voyagePlanningContext) theSchedulingShouldSucceed() error {
	if ctx.err != nil {
		return fmt.Errorf("expected success, got error: %v", ctx.err)
	}
	if ctx.plan == nil {
		return fmt.Errorf("expected a plan, got none")
	}
	return nil
}

func (ctx *voyagePlanningContext) theSchedulingShouldFailWith(message string) error {
	if ctx.err == nil {
		return fmt.Errorf("expected error containing %q, got success", message)
	}
	if !strings.Contains(ctx.err.Error(), message) {
		return fmt.Errorf("expected error containing %q, got %q", message, ctx.err.Error())
	}

	var notFound *voyage.VoyageNotFoundError
	if strings.Contains(message, "not found") && !errors.As(ctx.err, &notFound) {
		return fmt.Errorf("expected a voyage not found error, got %T", ctx.err)
	}
	return nil
}

func (ctx *voyagePlanningContext) theTotalDistanceShouldBe(expected float64) error {
	if err := ctx.requirePlan(); err != nil {
		return err
	}
	return approxEqual("total distance", expected, ctx.plan.TotalDistance, floatTolerance)
}

func (ctx *voyagePlanningContext) theTotalFuelConsumptionShouldBe(expected float64) error {
	if err := ctx.requirePlan(); err != nil {
		return err
	}
	return approxEqual("total fuel consumption", expected, ctx.plan.TotalFuelConsumption, floatTolerance)
}

func (ctx *voyagePlanningContext) theTotalDurationShouldBe(expected float64) error {
	if err := ctx.requirePlan(); err != nil {
		return err
	}
	return approxEqual("total duration", expected, ctx.plan.TotalDurationHours, floatTolerance)
}

func (ctx *voyagePlanningContext) theStoredVoyageTotalsShouldBe(distance, fuel float64) error {
	stored, err := ctx.repos.Voyages.FindByID(context.Background(), ctx.voyage.ID)
	if err != nil {
		return err
	}
	if err := approxEqual("stored distance", distance, stored.Distance, floatTolerance); err != nil {
		return err
	}
	return approxEqual("stored fuel consumption", fuel, stored.FuelConsumption, floatTolerance)
}

func (ctx *voyagePlanningContext) thePlanShouldContainWaypoints(count int) error {
	if err := ctx.requirePlan(); err != nil {
		return err
	}
	if len(ctx.plan.Waypoints) != count {
		return fmt.Errorf("expected %d waypoints in plan, got %d", count, len(ctx.plan.Waypoints))
	}
	return nil
}

func (ctx *voyagePlanningContext) waypointShouldArriveAt(order int, expected string) error {
	wp, err := ctx.waypoint(order)
	if err != nil {
		return err
	}
	return timeEqual(fmt.Sprintf("waypoint %d arrival", order), expected, wp.EstimatedArrival)
}

func (ctx *voyagePlanningContext) waypointShouldDepartAt(order int, expected string) error {
	wp, err := ctx.waypoint(order)
	if err != nil {
		return err
	}
	return timeEqual(fmt.Sprintf("waypoint %d departure", order), expected, wp.EstimatedDeparture)
}

func (ctx *voyagePlanningContext) waypointShouldHaveNoArrivalTime(order int) error {
	wp, err := ctx.waypoint(order)
	if err != nil {
		return err
	}
	if wp.EstimatedArrival != nil {
		return fmt.Errorf("expected waypoint %d to have no arrival, got %s", order, wp.EstimatedArrival.Format(time.RFC3339))
	}
	return nil
}

func (ctx *voyagePlanningContext) waypointShouldHaveNoDepartureTime(order int) error {
	wp, err := ctx.waypoint(order)
	if err != nil {
		return err
	}
	if wp.EstimatedDeparture != nil {
		return fmt.Errorf("expected waypoint %d to have no departure, got %s", order, wp.EstimatedDeparture.Format(time.RFC3339))
	}
	return nil
}

func (ctx *voyagePlanningContext) waypointShouldHaveValue(order int, field string, expected float64) error {
	wp, err := ctx.waypoint(order)
	if err != nil {
		return err
	}
	actual := waypointField(wp, field)
	if actual == nil {
		return fmt.Errorf("expected waypoint %d %s %v, got none", order, field, expected)
	}
	return approxEqual(fmt.Sprintf("waypoint %d %s", order, field), expected, *actual, floatTolerance)
}

func (ctx *voyagePlanningContext) waypointShouldHaveNoValue(order int, field string) error {
	wp, err := ctx.waypoint(order)
	if err != nil {
		return err
	}
	if actual := waypointField(wp, field); actual != nil {
		return fmt.Errorf("expected waypoint %d to have no %s, got %v", order, field, *actual)
	}
	return nil
}

func (ctx *voyagePlanningContext) waypointShouldHaveEngineRPM(order, expected int) error {
	wp, err := ctx.waypoint(order)
	if err != nil {
		return err
	}
	if wp.EngineRPM == nil || *wp.EngineRPM != expected {
		return fmt.Errorf("expected waypoint %d engine rpm %d, got %v", order, expected, wp.EngineRPM)
	}
	return nil
}

func waypointField(wp *voyage.Waypoint, field string) *float64 {
	switch field {
	case "distance":
		return wp.Distance
	case "planned speed":
		return wp.PlannedSpeed
	case "fuel consumption":
		return wp.FuelConsumption
	}
	return nil
}

// waypointDistanceShouldMatchGreatCircle compares against an independent
// haversine on a 6371 km sphere converted to nautical miles
func (ctx *voyagePlanningContext) waypointDistanceShouldMatchGreatCircle(order, fromOrder int) error {
	to, err := ctx.waypoint(order)
	if err != nil {
		return err
	}
	from, err := ctx.waypoint(fromOrder)
	if err != nil {
		return err
	}
	if to.Distance == nil {
		return fmt.Errorf("waypoint %d has no distance", order)
	}

	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := toRad(to.Latitude - from.Latitude)
	dLon := toRad(to.Longitude - from.Longitude)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(from.Latitude))*math.Cos(toRad(to.Latitude))*math.Sin(dLon/2)*math.Sin(dLon/2)
	km := 6371 * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	expected := km * 0.539957

	return approxEqual(fmt.Sprintf("waypoint %d distance", order), expected, *to.Distance, 1e-3)
}

func (ctx *voyagePlanningContext) everyIntermediateWaypointShouldDepartAfterItArrives() error {
	if err := ctx.requirePlan(); err != nil {
		return err
	}
	wps := ctx.plan.Waypoints
	for i := 1; i < len(wps)-1; i++ {
		wp := wps[i]
		if wp.EstimatedArrival == nil || wp.EstimatedDeparture == nil {
			return fmt.Errorf("intermediate waypoint %d is missing a timestamp", wp.OrderIndex)
		}
		if !wp.EstimatedDeparture.After(*wp.EstimatedArrival) {
			return fmt.Errorf("waypoint %d departs at %s, not after its arrival at %s",
				wp.OrderIndex, wp.EstimatedDeparture.Format(time.RFC3339), wp.EstimatedArrival.Format(time.RFC3339))
		}
	}
	return nil
}

func (ctx *voyagePlanningContext) noWaypointShouldArriveBeforeThePreviousOneDeparts() error {
	if err := ctx.requirePlan(); err != nil {
		return err
	}
	wps := ctx.plan.Waypoints
	for i := 1; i < len(wps); i++ {
		prev, wp := wps[i-1], wps[i]
		prevTime := prev.EstimatedDeparture
		if prevTime == nil {
			prevTime = prev.EstimatedArrival
		}
		if prevTime == nil || wp.EstimatedArrival == nil {
			return fmt.Errorf("waypoints %d and %d are missing timestamps", prev.OrderIndex, wp.OrderIndex)
		}
		if wp.EstimatedArrival.Before(*prevTime) {
			return fmt.Errorf("waypoint %d arrives at %s before waypoint %d departs at %s",
				wp.OrderIndex, wp.EstimatedArrival.Format(time.RFC3339), prev.OrderIndex, prevTime.Format(time.RFC3339))
		}
	}
	return nil
}

func (ctx *voyagePlanningContext) waypointsShouldHaveBeenUpdated(count int) error {
	if ctx.err != nil {
		return fmt.Errorf("expected success, got error: %v", ctx.err)
	}
	if ctx.updatedWaypoints != count {
		return fmt.Errorf("expected %d updated waypoints, got %d", count, ctx.updatedWaypoints)
	}
	return nil
}

func (ctx *voyagePlanningContext) thePlanShouldBeApproximate() error {
	if err := ctx.requirePlan(); err != nil {
		return err
	}
	if !ctx.plan.Approximate {
		return fmt.Errorf("expected plan to be approximate")
	}
	return nil
}

func (ctx *voyagePlanningContext) thePlanShouldNotBeApproximate() error {
	if err := ctx.requirePlan(); err != nil {
		return err
	}
	if ctx.plan.Approximate {
		return fmt.Errorf("expected plan not to be approximate, warnings: %v", ctx.plan.Warnings)
	}
	return nil
}

func (ctx *voyagePlanningContext) thePlanShouldHaveAWarning(kind string) error {
	if err := ctx.requirePlan(); err != nil {
		return err
	}
	if !ctx.plan.HasWarning(voyage.WarningKind(kind)) {
		return fmt.Errorf("expected a %q warning, got %v", kind, ctx.plan.Warnings)
	}
	return nil
}

func (ctx *voyagePlanningContext) thePlanShouldHaveNoWarnings() error {
	if err := ctx.requirePlan(); err != nil {
		return err
	}
	if len(ctx.plan.Warnings) > 0 {
		return fmt.Errorf("expected no warnings, got %v", ctx.plan.Warnings)
	}
	return nil
}

func (ctx *voyagePlanningContext) theStoredWaypointsShouldMatchThePlan() error {
	if err := ctx.requirePlan(); err != nil {
		return err
	}
	stored, err := ctx.repos.Waypoints.ListByVoyage(context.Background(), ctx.voyage.ID)
	if err != nil {
		return err
	}
	byID := make(map[int64]*voyage.Waypoint, len(stored))
	for _, wp := range stored {
		byID[wp.ID] = wp
	}

	for _, planned := range ctx.plan.Waypoints {
		wp, ok := byID[planned.ID]
		if !ok {
			return fmt.Errorf("waypoint %d missing from storage", planned.ID)
		}
		if !sameTime(planned.EstimatedArrival, wp.EstimatedArrival) || !sameTime(planned.EstimatedDeparture, wp.EstimatedDeparture) {
			return fmt.Errorf("stored timestamps of waypoint %d differ from plan", planned.OrderIndex)
		}
		for _, field := range []string{"distance", "planned speed", "fuel consumption"} {
			if !sameFloat(waypointField(planned, field), waypointField(wp, field)) {
				return fmt.Errorf("stored %s of waypoint %d differs from plan", field, planned.OrderIndex)
			}
		}
	}
	return nil
}

// ============================================================================
// Helpers
// ============================================================================

func (ctx *voyagePlanningContext) requirePlan() error {
	if ctx.err != nil {
		return fmt.Errorf("expected a plan, got error: %v", ctx.err)
	}
	if ctx.plan == nil {
		return fmt.Errorf("no plan computed")
	}
	return nil
}

func (ctx *voyagePlanningContext) waypoint(order int) (*voyage.Waypoint, error) {
	if err := ctx.requirePlan(); err != nil {
		return nil, err
	}
	for _, wp := range ctx.plan.Waypoints {
		if wp.OrderIndex == order {
			return wp, nil
		}
	}
	return nil, fmt.Errorf("no waypoint with order index %d in plan", order)
}

func approxEqual(what string, expected, actual, tolerance float64) error {
	if math.Abs(expected-actual) > tolerance {
		return fmt.Errorf("expected %s %v, got %v", what, expected, actual)
	}
	return nil
}

func timeEqual(what, expected string, actual *time.Time) error {
	want, err := time.Parse(time.RFC3339, expected)
	if err != nil {
		return fmt.Errorf("invalid expected time %q: %w", expected, err)
	}
	if actual == nil {
		return fmt.Errorf("expected %s %s, got none", what, expected)
	}
	if !actual.Equal(want) {
		return fmt.Errorf("expected %s %s, got %s", what, expected, actual.UTC().Format(time.RFC3339))
	}
	return nil
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func sameFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return math.Abs(*a-*b) <= floatTolerance
}
