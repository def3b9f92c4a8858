package voyage

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Stores keep quantities at four decimal places and timestamps at microsecond
// resolution. Anything the scheduler writes back is reduced to that precision
// first, so reading it back on the next pass yields the same value.
const (
	quantityScale  = 4
	timeResolution = time.Microsecond
)

// maxLegDuration is what a leg too long for time.Duration saturates to
var maxLegDuration = time.Duration(math.MaxInt64).Truncate(timeResolution)

func roundQuantity(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(quantityScale).InexactFloat64()
}

func truncateTime(t time.Time) time.Time {
	return t.Truncate(timeResolution)
}
