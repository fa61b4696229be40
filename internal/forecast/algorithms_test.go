package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constantHistory(value float64, n int) []float64 {
	h := make([]float64, n)
	for i := range h {
		h[i] = value
	}
	return h
}

func linearHistory(start, step float64, n int) []float64 {
	h := make([]float64, n)
	for i := range h {
		h[i] = start + step*float64(i)
	}
	return h
}

func TestSimpleMovingAverage_ConstantDemand(t *testing.T) {
	// 30 days of constant quantity 10 forecasts flat 10s.
	got := SimpleMovingAverage(constantHistory(10, 30), 5, 7)
	require.Len(t, got, 5)
	for _, v := range got {
		assert.InDelta(t, 10.0, v, 1e-9)
	}
}

func TestSimpleMovingAverage_ShortHistoryFallsBackToMean(t *testing.T) {
	history := []float64{4, 8}
	got := SimpleMovingAverage(history, 6, 7)
	require.Len(t, got, 6)
	for _, v := range got {
		assert.InDelta(t, 6.0, v, 1e-9)
	}
}

func TestSimpleMovingAverage_RollsIntoOwnForecast(t *testing.T) {
	// window 2 over [2,4]: first step (2+4)/2=3, second (4+3)/2=3.5.
	got := SimpleMovingAverage([]float64{2, 4}, 2, 2)
	require.Len(t, got, 2)
	assert.InDelta(t, 3.0, got[0], 1e-9)
	assert.InDelta(t, 3.5, got[1], 1e-9)
}

func TestSimpleMovingAverage_EmptyHistory(t *testing.T) {
	got := SimpleMovingAverage(nil, 3, 7)
	require.Len(t, got, 3)
	for _, v := range got {
		assert.Equal(t, 0.0, v)
	}
}

func TestDoubleExponentialSmoothing_TracksLinearTrend(t *testing.T) {
	history := linearHistory(5, 5, 10)
	got := DoubleExponentialSmoothing(history, 3, 0.3, 0.1)
	require.Len(t, got, 3)
	// A clean linear series is tracked exactly: level 50, trend 5.
	assert.InDelta(t, 55.0, got[0], 1e-6)
	assert.InDelta(t, 60.0, got[1], 1e-6)
	assert.InDelta(t, 65.0, got[2], 1e-6)
}

func TestDoubleExponentialSmoothing_ShortHistory(t *testing.T) {
	flat := DoubleExponentialSmoothing([]float64{12}, 4, 0.3, 0.1)
	require.Len(t, flat, 4)
	for _, v := range flat {
		assert.Equal(t, 12.0, v)
	}

	empty := DoubleExponentialSmoothing(nil, 2, 0.3, 0.1)
	require.Len(t, empty, 2)
	assert.Equal(t, []float64{0, 0}, empty)
}

func TestDoubleExponentialSmoothing_FloorsAtZero(t *testing.T) {
	// Steep decline projects negative; forecasts clamp to 0.
	history := []float64{100, 80, 60, 40, 20, 0}
	got := DoubleExponentialSmoothing(history, 10, 0.5, 0.5)
	for _, v := range got {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestLinearRegression_PerfectTrend(t *testing.T) {
	// [5,10,15,20,25] continues to 30 with R^2 of 1.
	got, r2 := LinearRegression([]float64{5, 10, 15, 20, 25}, 1)
	require.Len(t, got, 1)
	assert.InDelta(t, 30.0, got[0], 1e-9)
	require.True(t, r2.Valid)
	assert.InDelta(t, 1.0, r2.Value, 1e-9)
}

func TestLinearRegression_ShortHistory(t *testing.T) {
	got, r2 := LinearRegression([]float64{7}, 3)
	require.Len(t, got, 3)
	for _, v := range got {
		assert.Equal(t, 7.0, v)
	}
	assert.False(t, r2.Valid)
}

func TestLinearRegression_DecliningTrendFloorsAtZero(t *testing.T) {
	got, _ := LinearRegression([]float64{10, 8, 6, 4, 2}, 10)
	for _, v := range got {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestSeasonalForecast_ShortHistoryFallsBackToHolt(t *testing.T) {
	history := linearHistory(1, 1, 10) // below the 14-point floor
	got, seasonality := SeasonalForecast(history, 5, 0.3, 0.1)
	want := DoubleExponentialSmoothing(history, 5, 0.3, 0.1)
	assert.Equal(t, want, got)
	assert.False(t, seasonality.Detected)
	assert.Equal(t, 0, seasonality.Period)
}

func TestSeasonalForecast_AppliesFactorsCyclically(t *testing.T) {
	// Strong weekly cycle over 8 weeks.
	week := []float64{10, 10, 10, 10, 10, 30, 30}
	history := make([]float64, 0, 56)
	for i := 0; i < 8; i++ {
		history = append(history, week...)
	}

	got, seasonality := SeasonalForecast(history, 14, 0.3, 0.1)
	require.Len(t, got, 14)
	require.True(t, seasonality.Detected)
	require.Equal(t, 7, seasonality.Period)

	trend := DoubleExponentialSmoothing(history, 14, 0.3, 0.1)
	for i, v := range got {
		want := trend[i] * seasonality.Factors[i%7]
		if want < 0 {
			want = 0
		}
		assert.InDelta(t, want, v, 1e-9, "step %d", i)
	}
}
