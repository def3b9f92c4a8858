package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "voyageplanner.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "voyageplanner"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "voyageplanner"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.ConnectAttempts == 0 {
		cfg.Database.ConnectAttempts = 3
	}
	if cfg.Database.ConnectDelay == 0 {
		cfg.Database.ConnectDelay = 2 * time.Second
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Planning defaults
	if cfg.Planning.DwellTime == 0 {
		cfg.Planning.DwellTime = 30 * time.Minute
	}
	if cfg.Planning.DefaultRPM == 0 {
		cfg.Planning.DefaultRPM = 1600
	}
	if cfg.Planning.FallbackSpeedKnots == 0 {
		cfg.Planning.FallbackSpeedKnots = 10
	}
	if cfg.Planning.RPMPerKnot == 0 {
		cfg.Planning.RPMPerKnot = 100
	}
	if cfg.Planning.FuelPerRPMHour == 0 {
		cfg.Planning.FuelPerRPMHour = 0.08
	}

	// Daemon defaults
	if cfg.Daemon.SocketPath == "" {
		cfg.Daemon.SocketPath = "/tmp/voyageplanner-daemon.sock"
	}
	if cfg.Daemon.PIDFile == "" {
		cfg.Daemon.PIDFile = "/tmp/voyageplanner-daemon.pid"
	}
	if cfg.Daemon.RequestTimeout == 0 {
		cfg.Daemon.RequestTimeout = 10 * time.Second
	}
	if cfg.Daemon.RateLimit == 0 {
		cfg.Daemon.RateLimit = 50
	}
	if cfg.Daemon.RateBurst == 0 {
		cfg.Daemon.RateBurst = 100
	}
	if cfg.Daemon.ShutdownTimeout == 0 {
		cfg.Daemon.ShutdownTimeout = 30 * time.Second
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}
