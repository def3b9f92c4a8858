package voyage

import "time"

// Policy holds the fixed constants of the scheduling pass
type Policy struct {
	// DwellTime is the pause between arrival and departure at intermediate stops
	DwellTime time.Duration

	// DefaultRPM is used when a waypoint has no RPM and the vessel has no fuel curve
	DefaultRPM int

	// FallbackSpeedKnots is the last-resort speed when no RPM is known at all
	FallbackSpeedKnots float64

	// RPMPerKnot divides RPM into the crude speed estimate (speed = rpm / RPMPerKnot)
	RPMPerKnot float64

	// FuelPerRPMHour is the crude burn estimate factor (fuel = factor * rpm * hours)
	FuelPerRPMHour float64
}

// DefaultPolicy returns the standard scheduling constants
func DefaultPolicy() Policy {
	return Policy{
		DwellTime:          30 * time.Minute,
		DefaultRPM:         1600,
		FallbackSpeedKnots: 10,
		RPMPerKnot:         100,
		FuelPerRPMHour:     0.08,
	}
}

// withDefaults fills zero-valued fields from DefaultPolicy
func (p Policy) withDefaults() Policy {
	d := DefaultPolicy()
	if p.DwellTime <= 0 {
		p.DwellTime = d.DwellTime
	}
	if p.DefaultRPM <= 0 {
		p.DefaultRPM = d.DefaultRPM
	}
	if p.FallbackSpeedKnots <= 0 {
		p.FallbackSpeedKnots = d.FallbackSpeedKnots
	}
	if p.RPMPerKnot <= 0 {
		p.RPMPerKnot = d.RPMPerKnot
	}
	if p.FuelPerRPMHour <= 0 {
		p.FuelPerRPMHour = d.FuelPerRPMHour
	}
	return p
}
