package config

import (
	"time"

	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
)

// PlanningConfig holds the constants of the scheduling pass
type PlanningConfig struct {
	// Pause between arrival and departure at intermediate waypoints
	DwellTime time.Duration `mapstructure:"dwell_time" validate:"gt=0"`

	// RPM used when a waypoint has none and the vessel has no fuel curve
	DefaultRPM int `mapstructure:"default_rpm" validate:"gt=0"`

	// Speed used when no RPM is known at all
	FallbackSpeedKnots float64 `mapstructure:"fallback_speed_knots" validate:"gt=0"`

	// Divisor of the uncalibrated speed estimate: knots = rpm / RPMPerKnot
	RPMPerKnot float64 `mapstructure:"rpm_per_knot" validate:"gt=0"`

	// Factor of the uncalibrated fuel estimate: fuel = factor * rpm * hours
	FuelPerRPMHour float64 `mapstructure:"fuel_per_rpm_hour" validate:"gt=0"`
}

// Policy converts the configuration to the scheduler's policy
func (c PlanningConfig) Policy() voyage.Policy {
	return voyage.Policy{
		DwellTime:          c.DwellTime,
		DefaultRPM:         c.DefaultRPM,
		FallbackSpeedKnots: c.FallbackSpeedKnots,
		RPMPerKnot:         c.RPMPerKnot,
		FuelPerRPMHour:     c.FuelPerRPMHour,
	}
}
