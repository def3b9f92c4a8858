package calibration

import "sort"

// Curve is the unordered set of samples a vessel owns for one Kind
type Curve []Sample

// Nearest returns the sample whose EngineRPM has the smallest absolute
// difference from rpm. Equidistant samples resolve to the lower RPM, and
// duplicate RPMs resolve to the sample listed first. The curve is never
// reordered. The bool is false when the curve is empty.
func (c Curve) Nearest(rpm int) (Sample, bool) {
	if len(c) == 0 {
		return Sample{}, false
	}

	best := c[0]
	bestDiff := absInt(best.EngineRPM - rpm)

	for _, s := range c[1:] {
		diff := absInt(s.EngineRPM - rpm)
		if diff < bestDiff || (diff == bestDiff && s.EngineRPM < best.EngineRPM) {
			best = s
			bestDiff = diff
		}
	}

	return best, true
}

// MedianRPM returns the RPM of the median-indexed sample (index len/2)
// after ordering a copy of the curve by RPM
func (c Curve) MedianRPM() (int, bool) {
	if len(c) == 0 {
		return 0, false
	}

	rpms := make([]int, len(c))
	for i, s := range c {
		rpms[i] = s.EngineRPM
	}
	sort.Ints(rpms)

	return rpms[len(rpms)/2], true
}

// ResolveSpeed returns the speed in knots of the sample nearest to targetRPM.
// The bool is false when no calibration data exists.
func ResolveSpeed(samples Curve, targetRPM int) (float64, bool) {
	s, ok := samples.Nearest(targetRPM)
	if !ok {
		return 0, false
	}
	return s.Value, true
}

// ResolveFuelRate returns the hourly burn rate of the sample nearest to
// targetRPM. The bool is false when no calibration data exists.
func ResolveFuelRate(samples Curve, targetRPM int) (float64, bool) {
	s, ok := samples.Nearest(targetRPM)
	if !ok {
		return 0, false
	}
	return s.Value, true
}

// Curves bundles both calibration curves of one vessel
type Curves struct {
	VesselID int64
	Speed    Curve
	FuelRate Curve
}

// IsEmpty reports whether the vessel has no calibration data at all
func (c Curves) IsEmpty() bool {
	return len(c.Speed) == 0 && len(c.FuelRate) == 0
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
