package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/voyageplanner-go/internal/application/planning/commands"
	"github.com/andrescamacho/voyageplanner-go/internal/application/planning/queries"
	"github.com/andrescamacho/voyageplanner-go/internal/infrastructure/config"
)

// NewVesselCommand creates the vessel command with subcommands
func NewVesselCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vessel",
		Short: "Manage vessels",
		Long: `Register vessels and choose the default vessel for other commands.

Examples:
  voyage vessel create "MV Aurora"
  voyage vessel list
  voyage vessel use 1`,
	}

	cmd.AddCommand(newVesselCreateCommand())
	cmd.AddCommand(newVesselListCommand())
	cmd.AddCommand(newVesselUseCommand())

	return cmd
}

func newVesselCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Register a vessel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				resp, err := a.mediator.Send(ctx, &commands.CreateVesselCommand{Name: args[0]})
				if err != nil {
					return err
				}
				vessel := resp.(*commands.CreateVesselResponse).Vessel

				if jsonOutput {
					return printJSON(cmd.OutOrStdout(), vessel)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Vessel created: %d %s\n", vessel.ID, vessel.Name)
				return nil
			})
		},
	}
}

func newVesselListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List vessels",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				resp, err := a.mediator.Send(ctx, &queries.ListVesselsQuery{})
				if err != nil {
					return err
				}
				vessels := resp.(*queries.ListVesselsResponse).Vessels

				if jsonOutput {
					return printJSON(cmd.OutOrStdout(), vessels)
				}
				if len(vessels) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No vessels registered")
					return nil
				}

				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "ID\tNAME")
				for _, v := range vessels {
					fmt.Fprintf(tw, "%d\t%s\n", v.ID, v.Name)
				}
				return tw.Flush()
			})
		},
	}
}

func newVesselUseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "use <vessel-id>",
		Short: "Set the default vessel",
		Long: `Store a default vessel in ~/.voyageplanner/config.json.

Commands that accept --vessel fall back to this vessel when the flag is omitted.`,
		Args: exactArgsID("vessel ID"),
		RunE: func(cmd *cobra.Command, args []string) error {
			vesselID, _ := parseID("vessel ID", args[0])

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := userConfigHandler.SetDefaultVessel(vesselID); err != nil {
				return fmt.Errorf("failed to set default vessel: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Default vessel set to %d\n", vesselID)
			return nil
		},
	}
}
