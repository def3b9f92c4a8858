package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/voyageplanner-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage voyage planner configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (VP_* prefix)
2. Config file (config.yaml)
3. Default values

User preferences (default vessel) are stored in ~/.voyageplanner/config.json

Examples:
  voyage config show
  voyage config clear-vessel`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigClearVesselCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.LoadConfigOrDefault("")
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			if jsonOutput {
				cfg.Database.Password = ""
				cfg.Database.URL = maskPassword(cfg.Database.URL)
				return printJSON(out, map[string]interface{}{
					"config":      cfg,
					"user_config": userCfg,
				})
			}

			fmt.Fprintln(out, "Voyage Planner Configuration")
			fmt.Fprintln(out, "============================")

			fmt.Fprintln(out, "User Preferences:")
			fmt.Fprintf(out, "  Config file:      %s\n", userConfigHandler.GetConfigPath())
			if userCfg.DefaultVesselID != nil {
				fmt.Fprintf(out, "  Default Vessel:   ID=%d\n", *userCfg.DefaultVesselID)
			} else {
				fmt.Fprintf(out, "  Default Vessel:   (not set)\n")
			}

			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.Type == "sqlite":
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
			case cfg.Database.URL != "":
				fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "postgres":
				fmt.Fprintf(out, "  Host:             %s\n", cfg.Database.Host)
				fmt.Fprintf(out, "  Port:             %d\n", cfg.Database.Port)
				fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
				fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
			}
			if cfg.Database.Type != "memory" {
				fmt.Fprintf(out, "  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)
			}

			fmt.Fprintln(out, "\nPlanning:")
			fmt.Fprintf(out, "  Dwell Time:       %s\n", cfg.Planning.DwellTime)
			fmt.Fprintf(out, "  Default RPM:      %d\n", cfg.Planning.DefaultRPM)
			fmt.Fprintf(out, "  Fallback Speed:   %s kn\n", num(cfg.Planning.FallbackSpeedKnots, 2))
			fmt.Fprintf(out, "  RPM per Knot:     %s\n", num(cfg.Planning.RPMPerKnot, 2))
			fmt.Fprintf(out, "  Fuel per RPM·h:   %s\n", num(cfg.Planning.FuelPerRPMHour, 4))

			fmt.Fprintln(out, "\nDaemon:")
			fmt.Fprintf(out, "  Socket Path:      %s\n", cfg.Daemon.SocketPath)
			fmt.Fprintf(out, "  PID File:         %s\n", cfg.Daemon.PIDFile)
			fmt.Fprintf(out, "  Request Timeout:  %s\n", cfg.Daemon.RequestTimeout)
			fmt.Fprintf(out, "  Rate Limit:       %s req/s (burst: %d)\n",
				num(cfg.Daemon.RateLimit, 2), cfg.Daemon.RateBurst)

			fmt.Fprintln(out, "\nMetrics:")
			fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Metrics.Enabled)
			if cfg.Metrics.Enabled {
				fmt.Fprintf(out, "  Endpoint:         %s\n", cfg.Metrics.Endpoint())
			}

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

			return nil
		},
	}
}

func newConfigClearVesselCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-vessel",
		Short: "Clear default vessel setting",
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := userConfigHandler.ClearDefaultVessel(); err != nil {
				return fmt.Errorf("failed to clear default vessel: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✓ Default vessel cleared")
			fmt.Fprintln(cmd.OutOrStdout(), "\nYou must now pass --vessel to commands that need one.")
			return nil
		},
	}
}

// maskPassword hides the password of a connection URL
func maskPassword(raw string) string {
	if raw == "" {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "****")
	}
	return u.String()
}
