package calibration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/voyageplanner-go/internal/domain/calibration"
)

func speedCurve(points ...[2]float64) calibration.Curve {
	curve := make(calibration.Curve, len(points))
	for i, p := range points {
		curve[i] = calibration.Sample{
			ID:        int64(i + 1),
			VesselID:  1,
			Kind:      calibration.KindSpeed,
			EngineRPM: int(p[0]),
			Value:     p[1],
		}
	}
	return curve
}

func TestResolveSpeed_EmptyCurveSignalsNoData(t *testing.T) {
	speed, ok := calibration.ResolveSpeed(nil, 1600)

	assert.False(t, ok)
	assert.Equal(t, 0.0, speed)
}

func TestResolveSpeed_ExactMatch(t *testing.T) {
	curve := speedCurve([2]float64{1200, 9}, [2]float64{1600, 12}, [2]float64{2000, 14})

	speed, ok := calibration.ResolveSpeed(curve, 1600)

	require.True(t, ok)
	assert.Equal(t, 12.0, speed)
}

func TestResolveSpeed_NearestNeighbour(t *testing.T) {
	curve := speedCurve([2]float64{2000, 14}, [2]float64{1200, 9}, [2]float64{1600, 12})

	tests := []struct {
		rpm  int
		want float64
	}{
		{0, 9},
		{1300, 9},
		{1500, 12},
		{1850, 14},
		{5000, 14},
	}

	for _, tt := range tests {
		speed, ok := calibration.ResolveSpeed(curve, tt.rpm)
		require.True(t, ok)
		assert.Equal(t, tt.want, speed, "rpm %d", tt.rpm)
	}
}

func TestNearest_TieResolvesToLowerRPM(t *testing.T) {
	// 1400 is 200 away from both samples, regardless of list order
	forward := speedCurve([2]float64{1200, 9}, [2]float64{1600, 12})
	reverse := speedCurve([2]float64{1600, 12}, [2]float64{1200, 9})

	a, ok := forward.Nearest(1400)
	require.True(t, ok)
	b, ok := reverse.Nearest(1400)
	require.True(t, ok)

	assert.Equal(t, 1200, a.EngineRPM)
	assert.Equal(t, 1200, b.EngineRPM)
}

func TestNearest_DuplicateRPMResolvesToFirstListed(t *testing.T) {
	curve := speedCurve([2]float64{1600, 11}, [2]float64{1600, 13})

	s, ok := curve.Nearest(1600)

	require.True(t, ok)
	assert.Equal(t, 11.0, s.Value)
}

func TestNearest_DoesNotReorderCurve(t *testing.T) {
	curve := speedCurve([2]float64{2000, 14}, [2]float64{1200, 9}, [2]float64{1600, 12})
	before := append(calibration.Curve(nil), curve...)

	_, _ = curve.Nearest(1250)
	_, _ = curve.MedianRPM()

	assert.Equal(t, before, curve)
}

func TestMedianRPM(t *testing.T) {
	tests := []struct {
		name  string
		curve calibration.Curve
		want  int
		ok    bool
	}{
		{"empty", nil, 0, false},
		{"single", speedCurve([2]float64{1800, 40}), 1800, true},
		{"odd count", speedCurve([2]float64{2000, 60}, [2]float64{1000, 20}, [2]float64{1500, 35}), 1500, true},
		{"even count takes upper middle", speedCurve([2]float64{1000, 20}, [2]float64{2200, 70}, [2]float64{1400, 30}, [2]float64{1800, 50}), 1800, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rpm, ok := tt.curve.MedianRPM()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, rpm)
		})
	}
}

func TestCurves_IsEmpty(t *testing.T) {
	assert.True(t, calibration.Curves{VesselID: 1}.IsEmpty())
	assert.False(t, calibration.Curves{VesselID: 1, FuelRate: speedCurve([2]float64{1600, 50})}.IsEmpty())
}

func TestNewSample_Validation(t *testing.T) {
	_, err := calibration.NewSample(0, calibration.KindSpeed, 1600, 12)
	assert.Error(t, err)

	_, err = calibration.NewSample(1, calibration.Kind("torque"), 1600, 12)
	assert.Error(t, err)

	_, err = calibration.NewSample(1, calibration.KindFuelRate, -1, 12)
	assert.Error(t, err)

	s, err := calibration.NewSample(1, calibration.KindFuelRate, 0, 3.5)
	require.NoError(t, err)
	assert.Equal(t, calibration.KindFuelRate, s.Kind)
	assert.Equal(t, 0, s.EngineRPM)
}
