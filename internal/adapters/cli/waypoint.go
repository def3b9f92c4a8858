package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/voyageplanner-go/internal/application/planning/commands"
)

// NewWaypointCommand creates the waypoint command
func NewWaypointCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "waypoint",
		Short: "Manage voyage waypoints",
		Long: `Add stops to a voyage. Order indexes must be unique within a voyage.

Distance, RPM, speed and fuel set here are operator values and are kept by
scheduling unless it runs with --force.

Examples:
  voyage waypoint add --voyage 1 --order 0 --lat 51.12 --lon 1.31 --name Dover
  voyage waypoint add --voyage 1 --order 1 --lat 50.96 --lon 1.85 --name Calais --rpm 1600`,
	}

	cmd.AddCommand(newWaypointAddCommand())

	return cmd
}

func newWaypointAddCommand() *cobra.Command {
	var (
		voyageID int64
		order    int
		name     string
		lat      float64
		lon      float64
		distance float64
		rpm      int
		speed    float64
		fuel     float64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a waypoint to a voyage",
		RunE: func(cmd *cobra.Command, args []string) error {
			command := &commands.AddWaypointCommand{
				VoyageID:   voyageID,
				OrderIndex: order,
				Name:       name,
				Latitude:   lat,
				Longitude:  lon,
			}
			// Only flags the operator actually passed become stored values
			flags := cmd.Flags()
			if flags.Changed("distance") {
				command.Distance = &distance
			}
			if flags.Changed("rpm") {
				command.EngineRPM = &rpm
			}
			if flags.Changed("speed") {
				command.PlannedSpeed = &speed
			}
			if flags.Changed("fuel") {
				command.FuelConsumption = &fuel
			}

			return withApp(func(ctx context.Context, a *app) error {
				resp, err := a.mediator.Send(ctx, command)
				if err != nil {
					return err
				}
				wp := resp.(*commands.AddWaypointResponse).Waypoint

				if jsonOutput {
					return printJSON(cmd.OutOrStdout(), wp)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Waypoint %d added to voyage %d at order %d (%s, %s)\n",
					wp.ID, wp.VoyageID, wp.OrderIndex, num(wp.Latitude, 4), num(wp.Longitude, 4))
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&voyageID, "voyage", 0, "Voyage ID (required)")
	cmd.Flags().IntVar(&order, "order", 0, "Position of the waypoint in the voyage (required)")
	cmd.Flags().StringVar(&name, "name", "", "Waypoint name")
	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude in decimal degrees (required)")
	cmd.Flags().Float64Var(&lon, "lon", 0, "Longitude in decimal degrees (required)")
	cmd.Flags().Float64Var(&distance, "distance", 0, "Leg distance from the previous waypoint, nautical miles")
	cmd.Flags().IntVar(&rpm, "rpm", 0, "Engine RPM for the leg into this waypoint")
	cmd.Flags().Float64Var(&speed, "speed", 0, "Planned speed for the leg, knots")
	cmd.Flags().Float64Var(&fuel, "fuel", 0, "Fuel consumption for the leg")
	cmd.MarkFlagRequired("voyage")
	cmd.MarkFlagRequired("order")
	cmd.MarkFlagRequired("lat")
	cmd.MarkFlagRequired("lon")

	return cmd
}
