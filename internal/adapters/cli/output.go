package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	planninggrpc "github.com/andrescamacho/voyageplanner-go/internal/adapters/grpc"
)

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// num renders a quantity with a fixed number of places, trimming trailing zeros
func num(v float64, places int32) string {
	return decimal.NewFromFloat(v).Round(places).String()
}

func optNum(v *float64, places int32) string {
	if v == nil {
		return "-"
	}
	return num(*v, places)
}

func optInt(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

func optTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04")
}

// printPlan renders a plan as a summary followed by a waypoint table
func printPlan(w io.Writer, plan *planninggrpc.PlanView) error {
	if jsonOutput {
		return printJSON(w, plan)
	}

	title := fmt.Sprintf("Voyage %d", plan.VoyageID)
	if plan.Name != "" {
		title += " (" + plan.Name + ")"
	}
	fmt.Fprintln(w, title)
	fmt.Fprintf(w, "  Vessel:       %d\n", plan.VesselID)
	fmt.Fprintf(w, "  Departure:    %s\n", optTime(plan.StartTime))
	fmt.Fprintf(w, "  Distance:     %s nm\n", num(plan.TotalDistance, 2))
	fmt.Fprintf(w, "  Fuel:         %s\n", num(plan.TotalFuelConsumption, 2))
	fmt.Fprintf(w, "  Duration:     %s h\n", num(plan.TotalDurationHours, 2))
	if plan.Mode != "" {
		fmt.Fprintf(w, "  Last run:     %s\n", plan.Mode)
	}
	if plan.UpdatedWaypoints > 0 {
		fmt.Fprintf(w, "  Updated:      %d waypoint(s)\n", plan.UpdatedWaypoints)
	}
	if plan.Approximate {
		fmt.Fprintln(w, "  Note:         approximate, vessel has no calibration data")
	}
	fmt.Fprintln(w)

	tw := newTable(w)
	fmt.Fprintln(tw, "#\tNAME\tLAT\tLON\tDIST\tRPM\tKN\tFUEL\tETA\tETD")
	for _, wp := range plan.Waypoints {
		name := wp.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			wp.OrderIndex,
			name,
			num(wp.Latitude, 4),
			num(wp.Longitude, 4),
			optNum(wp.Distance, 2),
			optInt(wp.EngineRPM),
			optNum(wp.PlannedSpeed, 2),
			optNum(wp.FuelConsumption, 2),
			optTime(wp.EstimatedArrival),
			optTime(wp.EstimatedDeparture),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(plan.Warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Warnings:")
		for _, warning := range plan.Warnings {
			fmt.Fprintf(w, "  - %s\n", warning.String())
		}
	}
	return nil
}
