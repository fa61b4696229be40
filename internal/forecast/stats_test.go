package forecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, Mean([]float64{}))
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}))
	assert.Equal(t, 10.0, Mean([]float64{10}))
}

func TestStdDev(t *testing.T) {
	assert.Equal(t, 0.0, StdDev(nil))
	assert.Equal(t, 0.0, StdDev([]float64{5, 5, 5}))

	// Population (not sample-corrected): variance of {2,4,4,4,5,5,7,9} is 4.
	got := StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 2.0, got, 1e-9)
}

func TestMAPE(t *testing.T) {
	m := MAPE([]float64{100, 200}, []float64{110, 180})
	assert.True(t, m.Valid)
	assert.InDelta(t, 10.0, m.Value, 1e-9)

	t.Run("skips zero actuals", func(t *testing.T) {
		m := MAPE([]float64{0, 100}, []float64{50, 110})
		assert.True(t, m.Valid)
		assert.InDelta(t, 10.0, m.Value, 1e-9)
	})

	t.Run("unavailable cases", func(t *testing.T) {
		assert.False(t, MAPE(nil, nil).Valid)
		assert.False(t, MAPE([]float64{1, 2}, []float64{1}).Valid)
		assert.False(t, MAPE([]float64{0, 0}, []float64{1, 2}).Valid)
	})

	t.Run("sentinel at the boundary", func(t *testing.T) {
		assert.Equal(t, 100.0, MAPE(nil, nil).Or(MAPEUnavailable))
	})
}

func TestMAEAndRMSE(t *testing.T) {
	actual := []float64{1, 2, 3}
	predicted := []float64{2, 2, 5}

	mae := MAE(actual, predicted)
	assert.True(t, mae.Valid)
	assert.InDelta(t, 1.0, mae.Value, 1e-9)

	rmse := RMSE(actual, predicted)
	assert.True(t, rmse.Valid)
	assert.InDelta(t, math.Sqrt(5.0/3.0), rmse.Value, 1e-9)

	assert.False(t, MAE(nil, nil).Valid)
	assert.False(t, RMSE([]float64{1}, []float64{1, 2}).Valid)
}

func TestR2(t *testing.T) {
	t.Run("perfect fit", func(t *testing.T) {
		m := R2([]float64{1, 2, 3}, []float64{1, 2, 3})
		assert.True(t, m.Valid)
		assert.InDelta(t, 1.0, m.Value, 1e-9)
	})

	t.Run("constant actuals are degenerate, not perfect", func(t *testing.T) {
		m := R2([]float64{5, 5, 5}, []float64{5, 5, 5})
		assert.False(t, m.Valid)
	})

	t.Run("mismatch", func(t *testing.T) {
		assert.False(t, R2([]float64{1, 2}, []float64{1}).Valid)
	})
}

func TestZScoreForConfidence(t *testing.T) {
	assert.Equal(t, 1.645, ZScoreForConfidence(0.90))
	assert.Equal(t, 1.96, ZScoreForConfidence(0.95))
	assert.Equal(t, 2.576, ZScoreForConfidence(0.99))

	// Unknown levels fall back to 95%.
	assert.Equal(t, 1.96, ZScoreForConfidence(0.42))
	assert.Equal(t, 1.96, ZScoreForConfidence(0))
}
