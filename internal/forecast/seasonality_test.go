package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repeatCycle(cycle []float64, times int) []float64 {
	out := make([]float64, 0, len(cycle)*times)
	for i := 0; i < times; i++ {
		out = append(out, cycle...)
	}
	return out
}

func TestDetectSeasonality_WeeklyCycle(t *testing.T) {
	history := repeatCycle([]float64{10, 10, 10, 10, 10, 30, 30}, 8)

	info := DetectSeasonality(history, DefaultMinPeriod, DefaultMaxPeriod, DefaultSeasonalityThreshold)
	require.True(t, info.Detected)
	assert.Equal(t, 7, info.Period)
	assert.Greater(t, info.Strength, DefaultSeasonalityThreshold)
	require.Len(t, info.Factors, 7)

	// Weekend positions carry larger factors than weekdays.
	assert.Greater(t, info.Factors[5], info.Factors[0])
	assert.Greater(t, info.Factors[6], info.Factors[0])
}

func TestDetectSeasonality_FactorsAverageToOne(t *testing.T) {
	history := repeatCycle([]float64{3, 7, 12, 5, 9, 22, 18}, 6)

	info := DetectSeasonality(history, DefaultMinPeriod, DefaultMaxPeriod, DefaultSeasonalityThreshold)
	require.True(t, info.Detected)

	assert.InDelta(t, 1.0, Mean(info.Factors), 1e-9)
}

func TestDetectSeasonality_ShortHistory(t *testing.T) {
	// Below 2*minPeriod there is nothing to test against.
	info := DetectSeasonality(constantHistory(10, 13), DefaultMinPeriod, DefaultMaxPeriod, DefaultSeasonalityThreshold)
	assert.False(t, info.Detected)
	assert.Equal(t, 0, info.Period)
	assert.Empty(t, info.Factors)
}

func TestDetectSeasonality_ZeroMean(t *testing.T) {
	info := DetectSeasonality(constantHistory(0, 60), DefaultMinPeriod, DefaultMaxPeriod, DefaultSeasonalityThreshold)
	assert.False(t, info.Detected)
}

func TestDetectSeasonality_ThresholdBoundary(t *testing.T) {
	history := repeatCycle([]float64{10, 10, 10, 10, 10, 30, 30}, 8)

	// Raising the threshold above the measured strength suppresses detection.
	info := DetectSeasonality(history, DefaultMinPeriod, DefaultMaxPeriod, DefaultSeasonalityThreshold)
	require.True(t, info.Detected)

	suppressed := DetectSeasonality(history, DefaultMinPeriod, DefaultMaxPeriod, info.Strength+1)
	assert.False(t, suppressed.Detected)
}
