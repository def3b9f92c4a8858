package voyage

import (
	"fmt"
	"math"
	"time"

	"github.com/andrescamacho/voyageplanner-go/internal/domain/calibration"
)

// Source records which resolution stage produced a leg quantity
type Source string

const (
	SourceRecorded    Source = "recorded"    // value already present on the waypoint
	SourceComputed    Source = "computed"    // haversine distance from coordinates
	SourceCalibration Source = "calibration" // nearest calibration sample
	SourcePlanned     Source = "planned"     // waypoint planned speed
	SourceDefault     Source = "default"     // vessel-wide or hard default
	SourceEstimate    Source = "estimate"    // linear fallback formula
)

// LegResult is the outcome of one leg computation. All numbers are finite.
type LegResult struct {
	DistanceNM    float64
	EngineRPM     int
	SpeedKnots    float64
	DurationHours float64
	FuelConsumed  float64

	DistanceSource Source
	RPMSource      Source
	SpeedSource    Source
	FuelSource     Source

	// Degenerate is set when the resolved speed was not positive and the
	// duration was forced to zero
	Degenerate bool
}

// Duration converts DurationHours to a time.Duration, saturating at the
// largest representable duration for extremely slow legs
func (r LegResult) Duration() time.Duration {
	if r.DurationHours <= 0 {
		return 0
	}
	nanos := r.DurationHours * float64(time.Hour)
	if nanos >= float64(math.MaxInt64) {
		return maxLegDuration
	}
	return time.Duration(nanos).Truncate(timeResolution)
}

// Approximate reports whether speed or fuel came from a fallback formula
// instead of calibration data or recorded values
func (r LegResult) Approximate() bool {
	return r.SpeedSource == SourceEstimate || r.SpeedSource == SourceDefault ||
		r.FuelSource == SourceEstimate
}

func (r LegResult) String() string {
	return fmt.Sprintf("%.2fnm @ %.2fkn (%drpm) = %.2fh, %.2f fuel", r.DistanceNM, r.SpeedKnots, r.EngineRPM, r.DurationHours, r.FuelConsumed)
}

// LegCalculator computes transit duration and fuel for a single leg.
//
// Each quantity is resolved by an ordered pipeline of stages; the first stage
// that yields a value wins:
//
//	distance: recorded (valid, non-negative) → haversine from coordinates
//	rpm:      recorded (> 0) → default rpm
//	speed:    speed curve at rpm → planned speed → rpm / RPMPerKnot → fallback speed
//	duration: distance / speed, or 0 when speed <= 0
//	fuel:     fuel curve rate * duration → recorded → FuelPerRPMHour * rpm * duration
//
// Values that were missing on the waypoint are written back to it and marked
// in Waypoint.Derived. Fields that are already set are never overwritten, so a
// second pass over the same waypoint reproduces the first result.
type LegCalculator struct {
	policy Policy
}

// NewLegCalculator creates a calculator; zero policy fields take their defaults
func NewLegCalculator(policy Policy) *LegCalculator {
	return &LegCalculator{policy: policy.withDefaults()}
}

// Compute resolves the leg from prev to wp and back-fills missing fields on wp.
// defaultRPM is the vessel-wide fallback (see DefaultRPM).
func (c *LegCalculator) Compute(prev, wp *Waypoint, curves calibration.Curves, defaultRPM int) LegResult {
	var r LegResult

	r.DistanceNM, r.DistanceSource = c.resolveDistance(prev, wp)
	r.EngineRPM, r.RPMSource = c.resolveRPM(wp, defaultRPM)
	r.SpeedKnots, r.SpeedSource = c.resolveSpeed(wp, curves.Speed, r.EngineRPM)
	r.DurationHours, r.Degenerate = c.resolveDuration(r.DistanceNM, r.SpeedKnots)
	r.FuelConsumed, r.FuelSource = c.resolveFuel(wp, curves.FuelRate, r.EngineRPM, r.DurationHours)

	return r
}

// DefaultRPM derives the vessel-wide RPM: the median-indexed sample of the
// fuel curve, or the policy default when the vessel has no fuel curve
func (c *LegCalculator) DefaultRPM(curves calibration.Curves) int {
	if rpm, ok := curves.FuelRate.MedianRPM(); ok && rpm > 0 {
		return rpm
	}
	return c.policy.DefaultRPM
}

func (c *LegCalculator) resolveDistance(prev, wp *Waypoint) (float64, Source) {
	if wp.Distance != nil && validNonNegative(*wp.Distance) {
		return *wp.Distance, SourceRecorded
	}

	distance := roundQuantity(prev.Position().DistanceNM(wp.Position()))
	wp.Distance = &distance
	wp.Derived = wp.Derived.Add(FieldDistance)
	return distance, SourceComputed
}

func (c *LegCalculator) resolveRPM(wp *Waypoint, defaultRPM int) (int, Source) {
	if wp.EngineRPM != nil && *wp.EngineRPM > 0 {
		return *wp.EngineRPM, SourceRecorded
	}

	rpm := defaultRPM
	if rpm > 0 {
		wp.EngineRPM = &rpm
		wp.Derived = wp.Derived.Add(FieldEngineRPM)
	}
	return rpm, SourceDefault
}

func (c *LegCalculator) resolveSpeed(wp *Waypoint, curve calibration.Curve, rpm int) (float64, Source) {
	speed, source := c.speedFor(wp, curve, rpm)
	speed = finite(speed)
	if source == SourceEstimate || source == SourceDefault {
		// read back as the planned speed on the next pass
		speed = roundQuantity(speed)
	}

	if wp.PlannedSpeed == nil {
		planned := roundQuantity(speed)
		wp.PlannedSpeed = &planned
		wp.Derived = wp.Derived.Add(FieldPlannedSpeed)
	}
	return speed, source
}

func (c *LegCalculator) speedFor(wp *Waypoint, curve calibration.Curve, rpm int) (float64, Source) {
	if rpm > 0 {
		if speed, ok := calibration.ResolveSpeed(curve, rpm); ok {
			return speed, SourceCalibration
		}
	}
	if wp.PlannedSpeed != nil {
		return *wp.PlannedSpeed, SourcePlanned
	}
	if rpm > 0 {
		return float64(rpm) / c.policy.RPMPerKnot, SourceEstimate
	}
	return c.policy.FallbackSpeedKnots, SourceDefault
}

func (c *LegCalculator) resolveDuration(distance, speed float64) (float64, bool) {
	if speed <= 0 || math.IsNaN(speed) {
		return 0, true
	}
	return finite(distance / speed), false
}

func (c *LegCalculator) resolveFuel(wp *Waypoint, curve calibration.Curve, rpm int, hours float64) (float64, Source) {
	fuel, source := c.fuelFor(wp, curve, rpm, hours)
	fuel = finite(fuel)
	if source == SourceEstimate {
		// read back as the recorded fuel on the next pass
		fuel = roundQuantity(fuel)
	}

	if wp.FuelConsumption == nil {
		recorded := roundQuantity(fuel)
		wp.FuelConsumption = &recorded
		wp.Derived = wp.Derived.Add(FieldFuelConsumption)
	}
	return fuel, source
}

func (c *LegCalculator) fuelFor(wp *Waypoint, curve calibration.Curve, rpm int, hours float64) (float64, Source) {
	if rpm > 0 {
		if rate, ok := calibration.ResolveFuelRate(curve, rpm); ok {
			return rate * hours, SourceCalibration
		}
	}
	if wp.FuelConsumption != nil {
		return *wp.FuelConsumption, SourceRecorded
	}
	return c.policy.FuelPerRPMHour * float64(rpm) * hours, SourceEstimate
}

func validNonNegative(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// finite maps NaN and ±Inf to 0 so no non-finite value leaves the calculator
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
