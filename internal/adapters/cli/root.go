package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	socketPath string
	remote     bool
	jsonOutput bool
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "voyage",
		Short: "Voyage planner - schedule vessel voyages from calibration data",
		Long: `Voyage planner computes leg durations, fuel use and estimated arrival and
departure times for vessel voyages.

Commands run against the configured database directly. With --remote, the
scheduling commands are sent to a running voyage-daemon over its Unix socket.

Examples:
  voyage vessel create "MV Aurora"
  voyage calibration add --vessel 1 --kind speed --rpm 1600 --value 12
  voyage voyage create --vessel 1 --name "Channel run" --start 2024-01-01T00:00:00Z
  voyage waypoint add --voyage 1 --order 0 --lat 51.12 --lon 1.31
  voyage voyage schedule 1
  voyage voyage schedule 1 --force --remote
  voyage voyage show 1 --json`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml, ./configs/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", "",
		"Path to daemon Unix socket (default: daemon.socket_path from config)")
	rootCmd.PersistentFlags().BoolVar(&remote, "remote", false,
		"Send scheduling commands to the daemon instead of running them locally")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Print results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	// Add command groups
	rootCmd.AddCommand(NewVesselCommand())
	rootCmd.AddCommand(NewCalibrationCommand())
	rootCmd.AddCommand(NewVoyageCommand())
	rootCmd.AddCommand(NewWaypointCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewHealthCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
