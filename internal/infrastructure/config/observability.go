package config

import "fmt"

// LoggingConfig controls where the slog handler writes and how verbose it is.
// The CLI overrides Output to stderr so that --json stays machine readable.
type LoggingConfig struct {
	Level         string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format        string `mapstructure:"format" validate:"required,oneof=json text"`
	Output        string `mapstructure:"output" validate:"required,oneof=stdout stderr file"`
	FilePath      string `mapstructure:"file_path" validate:"required_if=Output file"`
	IncludeCaller bool   `mapstructure:"include_caller"`
}

// MetricsConfig describes the Prometheus endpoint served by the daemon.
// Nothing is exposed unless Enabled is set.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`
	Path    string `mapstructure:"path"`
}

// Endpoint is the scrape URL advertised in logs and `config show`
func (m MetricsConfig) Endpoint() string {
	return fmt.Sprintf("http://%s:%d%s", m.Host, m.Port, m.Path)
}
