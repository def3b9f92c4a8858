package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/voyageplanner-go/internal/application/planning/commands"
	"github.com/andrescamacho/voyageplanner-go/internal/application/planning/queries"
)

// NewVoyageCommand creates the voyage command with subcommands
func NewVoyageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "voyage",
		Short: "Plan and schedule voyages",
		Long: `Create voyages and compute their schedules.

schedule fills missing leg data from the vessel's calibration curves and
recomputes arrival and departure times. Values entered by an operator are
kept unless --force is given. times only recomputes timestamps.

Examples:
  voyage voyage create --vessel 1 --name "Channel run" --start 2024-01-01T00:00:00Z
  voyage voyage list --vessel 1
  voyage voyage schedule 1
  voyage voyage schedule 1 --force
  voyage voyage times 1
  voyage voyage show 1`,
	}

	cmd.AddCommand(newVoyageCreateCommand())
	cmd.AddCommand(newVoyageListCommand())
	cmd.AddCommand(newVoyageScheduleCommand())
	cmd.AddCommand(newVoyageTimesCommand())
	cmd.AddCommand(newVoyageShowCommand())

	return cmd
}

func newVoyageCreateCommand() *cobra.Command {
	var (
		vesselID int64
		name     string
		start    string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a voyage",
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := resolveVesselID(vesselID)
			if err != nil {
				return err
			}

			var startDate *time.Time
			if start != "" {
				parsed, err := time.Parse(time.RFC3339, start)
				if err != nil {
					return fmt.Errorf("invalid --start %q: expected RFC 3339, e.g. 2024-01-01T08:00:00Z", start)
				}
				startDate = &parsed
			}

			return withApp(func(ctx context.Context, a *app) error {
				resp, err := a.mediator.Send(ctx, &commands.CreateVoyageCommand{
					VesselID:  resolved,
					Name:      name,
					StartDate: startDate,
				})
				if err != nil {
					return err
				}
				v := resp.(*commands.CreateVoyageResponse).Voyage

				if jsonOutput {
					return printJSON(cmd.OutOrStdout(), v)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Voyage created: %d for vessel %d (departure %s)\n",
					v.ID, v.VesselID, optTime(v.StartDate))
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&vesselID, "vessel", 0, "Vessel ID (default: configured default vessel)")
	cmd.Flags().StringVar(&name, "name", "", "Voyage name")
	cmd.Flags().StringVar(&start, "start", "", "Departure time, RFC 3339 (default: time of scheduling)")

	return cmd
}

func newVoyageListCommand() *cobra.Command {
	var vesselID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List voyages",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				resp, err := a.mediator.Send(ctx, &queries.ListVoyagesQuery{VesselID: vesselID})
				if err != nil {
					return err
				}
				voyages := resp.(*queries.ListVoyagesResponse).Voyages

				if jsonOutput {
					return printJSON(cmd.OutOrStdout(), voyages)
				}
				if len(voyages) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No voyages found")
					return nil
				}

				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "ID\tVESSEL\tNAME\tDEPARTURE\tDISTANCE\tFUEL")
				for _, v := range voyages {
					name := v.Name
					if name == "" {
						name = "-"
					}
					fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\n",
						v.ID, v.VesselID, name, optTime(v.StartDate),
						num(v.Distance, 2), num(v.FuelConsumption, 2))
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().Int64Var(&vesselID, "vessel", 0, "Only list voyages of this vessel")

	return cmd
}

func newVoyageScheduleCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "schedule <voyage-id>",
		Short: "Compute the full schedule of a voyage",
		Args:  exactArgsID("voyage ID"),
		RunE: func(cmd *cobra.Command, args []string) error {
			voyageID, _ := parseID("voyage ID", args[0])

			return withPlanner(func(ctx context.Context, p planner) error {
				plan, err := p.ScheduleVoyage(ctx, voyageID, force)
				if err != nil {
					return err
				}
				return printPlan(cmd.OutOrStdout(), plan)
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Recompute every leg, discarding stored distances, speeds and fuel figures")

	return cmd
}

func newVoyageTimesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "times <voyage-id>",
		Short: "Recompute arrival and departure times only",
		Args:  exactArgsID("voyage ID"),
		RunE: func(cmd *cobra.Command, args []string) error {
			voyageID, _ := parseID("voyage ID", args[0])

			return withPlanner(func(ctx context.Context, p planner) error {
				plan, err := p.RecalculateTimes(ctx, voyageID)
				if err != nil {
					return err
				}
				return printPlan(cmd.OutOrStdout(), plan)
			})
		},
	}
}

func newVoyageShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <voyage-id>",
		Short: "Show the stored plan of a voyage",
		Args:  exactArgsID("voyage ID"),
		RunE: func(cmd *cobra.Command, args []string) error {
			voyageID, _ := parseID("voyage ID", args[0])

			return withPlanner(func(ctx context.Context, p planner) error {
				plan, err := p.GetVoyagePlan(ctx, voyageID)
				if err != nil {
					return err
				}
				return printPlan(cmd.OutOrStdout(), plan)
			})
		},
	}
}
