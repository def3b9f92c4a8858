package grpc

import (
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/andrescamacho/voyageplanner-go/internal/application/planning/commands"
	"github.com/andrescamacho/voyageplanner-go/internal/application/planning/queries"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
)

// PlanView is the wire and display form of a voyage plan. The same view is
// produced for a fresh scheduling pass and for a stored plan.
type PlanView struct {
	VoyageID             int64            `json:"voyage_id"`
	VesselID             int64            `json:"vessel_id"`
	Name                 string           `json:"name,omitempty"`
	StartTime            *time.Time       `json:"start_time,omitempty"`
	TotalDistance        float64          `json:"total_distance"`
	TotalFuelConsumption float64          `json:"total_fuel_consumption"`
	TotalDurationHours   float64          `json:"total_duration_hours"`
	Approximate          bool             `json:"approximate"`
	Mode                 string           `json:"mode,omitempty"`
	RunID                string           `json:"run_id,omitempty"`
	UpdatedWaypoints     int              `json:"updated_waypoints"`
	TotalsPersisted      bool             `json:"totals_persisted"`
	Waypoints            []WaypointView   `json:"waypoints"`
	Legs                 []LegView        `json:"legs,omitempty"`
	Warnings             []voyage.Warning `json:"warnings,omitempty"`
}

// WaypointView is one stop of a PlanView
type WaypointView struct {
	ID                 int64      `json:"id"`
	OrderIndex         int        `json:"order_index"`
	Name               string     `json:"name,omitempty"`
	Latitude           float64    `json:"latitude"`
	Longitude          float64    `json:"longitude"`
	Distance           *float64   `json:"distance,omitempty"`
	EngineRPM          *int       `json:"engine_rpm,omitempty"`
	PlannedSpeed       *float64   `json:"planned_speed,omitempty"`
	FuelConsumption    *float64   `json:"fuel_consumption,omitempty"`
	EstimatedArrival   *time.Time `json:"estimated_arrival,omitempty"`
	EstimatedDeparture *time.Time `json:"estimated_departure,omitempty"`
	Derived            []string   `json:"derived,omitempty"`
}

// LegView is one computed leg, keyed by its arrival waypoint
type LegView struct {
	ToWaypointID   int64   `json:"to_waypoint_id"`
	ToOrderIndex   int     `json:"to_order_index"`
	DistanceNM     float64 `json:"distance_nm"`
	EngineRPM      int     `json:"engine_rpm"`
	SpeedKnots     float64 `json:"speed_knots"`
	DurationHours  float64 `json:"duration_hours"`
	FuelConsumed   float64 `json:"fuel_consumed"`
	DistanceSource string  `json:"distance_source"`
	SpeedSource    string  `json:"speed_source"`
	FuelSource     string  `json:"fuel_source"`
}

// ViewFromSchedule converts the full scheduling response
func ViewFromSchedule(resp *commands.ScheduleVoyageResponse) *PlanView {
	view := planView(resp.Voyage, resp.Plan, resp.Run)
	view.UpdatedWaypoints = resp.UpdatedWaypoints
	view.TotalsPersisted = resp.TotalsPersisted
	return view
}

// ViewFromTimes converts the timestamp-only response
func ViewFromTimes(resp *commands.RecalculateTimesResponse) *PlanView {
	view := planView(resp.Voyage, resp.Plan, resp.Run)
	view.UpdatedWaypoints = resp.UpdatedWaypoints
	return view
}

// ViewFromStored converts a stored plan. Totals come from the voyage;
// duration, warnings and mode from the latest run, if any.
func ViewFromStored(resp *queries.GetVoyagePlanResponse) *PlanView {
	v := resp.Voyage
	view := &PlanView{
		VoyageID:             v.ID,
		VesselID:             v.VesselID,
		Name:                 v.Name,
		StartTime:            v.StartDate,
		TotalDistance:        v.Distance,
		TotalFuelConsumption: v.FuelConsumption,
		TotalsPersisted:      true,
		Waypoints:            waypointViews(resp.Waypoints),
	}

	if run := resp.LatestRun; run != nil {
		start := run.StartTime
		if view.StartTime == nil {
			view.StartTime = &start
		}
		view.TotalDurationHours = run.TotalDurationHours
		view.Approximate = run.Approximate
		view.Mode = string(run.Mode)
		view.RunID = run.ID
		view.Warnings = run.Warnings
	}
	return view
}

func planView(v *voyage.Voyage, plan *voyage.Plan, run *voyage.ScheduleRun) *PlanView {
	start := plan.StartTime
	view := &PlanView{
		VoyageID:             v.ID,
		VesselID:             v.VesselID,
		Name:                 v.Name,
		StartTime:            &start,
		TotalDistance:        plan.TotalDistance,
		TotalFuelConsumption: plan.TotalFuelConsumption,
		TotalDurationHours:   plan.TotalDurationHours,
		Approximate:          plan.Approximate,
		Waypoints:            waypointViews(plan.Waypoints),
		Warnings:             plan.Warnings,
	}
	if run != nil {
		view.Mode = string(run.Mode)
		view.RunID = run.ID
	}

	for _, leg := range plan.Legs {
		view.Legs = append(view.Legs, LegView{
			ToWaypointID:   leg.ToWaypointID,
			ToOrderIndex:   leg.ToOrderIndex,
			DistanceNM:     leg.DistanceNM,
			EngineRPM:      leg.EngineRPM,
			SpeedKnots:     leg.SpeedKnots,
			DurationHours:  leg.DurationHours,
			FuelConsumed:   leg.FuelConsumed,
			DistanceSource: string(leg.DistanceSource),
			SpeedSource:    string(leg.SpeedSource),
			FuelSource:     string(leg.FuelSource),
		})
	}
	return view
}

func waypointViews(waypoints []*voyage.Waypoint) []WaypointView {
	views := make([]WaypointView, 0, len(waypoints))
	for _, wp := range waypoints {
		var derived []string
		for _, f := range wp.Derived.Fields() {
			derived = append(derived, string(f))
		}
		views = append(views, WaypointView{
			ID:                 wp.ID,
			OrderIndex:         wp.OrderIndex,
			Name:               wp.Name,
			Latitude:           wp.Latitude,
			Longitude:          wp.Longitude,
			Distance:           wp.Distance,
			EngineRPM:          wp.EngineRPM,
			PlannedSpeed:       wp.PlannedSpeed,
			FuelConsumption:    wp.FuelConsumption,
			EstimatedArrival:   wp.EstimatedArrival,
			EstimatedDeparture: wp.EstimatedDeparture,
			Derived:            derived,
		})
	}
	return views
}

// toStruct encodes v through its JSON form so field names follow the json tags
func toStruct(v interface{}) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode message: %w", err)
	}
	fields := map[string]interface{}{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to encode message: %w", err)
	}
	return structpb.NewStruct(fields)
}

// fromStruct decodes s into v, the inverse of toStruct
func fromStruct(s *structpb.Struct, v interface{}) error {
	raw, err := json.Marshal(s.AsMap())
	if err != nil {
		return fmt.Errorf("failed to decode message: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode message: %w", err)
	}
	return nil
}
