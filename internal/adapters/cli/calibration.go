package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/voyageplanner-go/internal/application/planning/commands"
)

// NewCalibrationCommand creates the calibration command
func NewCalibrationCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calibration",
		Short: "Manage vessel calibration curves",
		Long: `Record measured engine behaviour for a vessel.

A speed sample maps an engine RPM to knots. A fuel_rate sample maps an engine
RPM to fuel burned per hour. Scheduling uses the sample with the nearest RPM.

Examples:
  voyage calibration add --vessel 1 --kind speed --rpm 1600 --value 12
  voyage calibration add --vessel 1 --kind fuel_rate --rpm 1600 --value 50`,
	}

	cmd.AddCommand(newCalibrationAddCommand())

	return cmd
}

func newCalibrationAddCommand() *cobra.Command {
	var (
		vesselID int64
		kind     string
		rpm      int
		value    float64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a calibration sample",
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := resolveVesselID(vesselID)
			if err != nil {
				return err
			}

			return withApp(func(ctx context.Context, a *app) error {
				resp, err := a.mediator.Send(ctx, &commands.AddCalibrationSampleCommand{
					VesselID:  resolved,
					Kind:      kind,
					EngineRPM: rpm,
					Value:     value,
				})
				if err != nil {
					return err
				}
				sample := resp.(*commands.AddCalibrationSampleResponse).Sample

				if jsonOutput {
					return printJSON(cmd.OutOrStdout(), sample)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Calibration sample %d added: vessel %d %s @ %d rpm = %s\n",
					sample.ID, sample.VesselID, sample.Kind, sample.EngineRPM, num(sample.Value, 3))
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&vesselID, "vessel", 0, "Vessel ID (default: configured default vessel)")
	cmd.Flags().StringVar(&kind, "kind", "", "Sample kind: speed or fuel_rate")
	cmd.Flags().IntVar(&rpm, "rpm", 0, "Engine RPM")
	cmd.Flags().Float64Var(&value, "value", 0, "Knots for speed, fuel per hour for fuel_rate")
	cmd.MarkFlagRequired("kind")
	cmd.MarkFlagRequired("rpm")
	cmd.MarkFlagRequired("value")

	return cmd
}
