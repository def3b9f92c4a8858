package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	planninggrpc "github.com/andrescamacho/voyageplanner-go/internal/adapters/grpc"
	"github.com/andrescamacho/voyageplanner-go/internal/infrastructure/config"
	"github.com/andrescamacho/voyageplanner-go/internal/infrastructure/pidfile"
)

// NewHealthCommand creates the health command
func NewHealthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check daemon health status",
		Long:  `Verify that the daemon is running and responsive.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cfg := config.LoadConfigOrDefault(configPath)

			client, err := planninggrpc.NewPlanningClient(resolveSocketPath())
			if err != nil {
				return fmt.Errorf("failed to connect to daemon: %w", err)
			}
			defer client.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			status, err := client.Health(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, "✓ Daemon is healthy")
			fmt.Fprintf(out, "  Status:            %s\n", status)
			fmt.Fprintf(out, "  Socket:            %s\n", resolveSocketPath())
			if pid, err := pidfile.Read(cfg.Daemon.PIDFile); err == nil {
				fmt.Fprintf(out, "  PID:               %d\n", pid)
			}

			return nil
		},
	}

	return cmd
}
