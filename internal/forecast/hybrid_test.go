package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHybridForecast_PrefersTrendModelsOverSMAOnLinearTrend(t *testing.T) {
	history := linearHistory(5, 5, 30)
	result := HybridForecast(history, 5, DefaultSettings())

	require.Len(t, result.Comparisons, 4)

	var sma, linear, recommended *int
	for i := range result.Comparisons {
		i := i
		switch result.Comparisons[i].Algorithm {
		case "sma":
			sma = &i
		case "linear":
			linear = &i
		}
		if result.Comparisons[i].Recommended {
			recommended = &i
		}
	}
	require.NotNil(t, sma)
	require.NotNil(t, linear)
	require.NotNil(t, recommended)

	// On a pure trend the regression nails the holdout while the moving
	// average lags behind it.
	assert.InDelta(t, 0.0, result.Comparisons[*linear].MAPE, 1e-6)
	assert.Greater(t, result.Comparisons[*sma].MAPE, result.Comparisons[*linear].MAPE)
	assert.NotEqual(t, "sma", result.Comparisons[*recommended].Algorithm)
	assert.NotEqual(t, AlgorithmSMA, result.Algorithm)
}

func TestHybridForecast_RecommendedHasLowestMAPE(t *testing.T) {
	history := []float64{12, 9, 14, 11, 13, 10, 15, 12, 16, 13, 11, 14, 12, 15, 13, 16, 14, 12, 15, 13}
	result := HybridForecast(history, 7, DefaultSettings())

	require.Len(t, result.Comparisons, 4)

	recommendedCount := 0
	bestMAPE := result.Comparisons[0].MAPE
	for _, c := range result.Comparisons {
		if c.Recommended {
			recommendedCount++
			assert.Equal(t, result.Algorithm.String(), c.Algorithm)
		}
		if c.MAPE < bestMAPE {
			bestMAPE = c.MAPE
		}
	}
	assert.Equal(t, 1, recommendedCount)

	for _, c := range result.Comparisons {
		if c.Recommended {
			assert.Equal(t, bestMAPE, c.MAPE)
		}
	}
}

func TestHybridForecast_ShortHistoryFallsBackToSMA(t *testing.T) {
	history := []float64{8, 12, 10}
	result := HybridForecast(history, 4, DefaultSettings())

	assert.Equal(t, AlgorithmSMA, result.Algorithm)
	assert.Empty(t, result.Comparisons)
	require.Len(t, result.Forecast, 4)
	for _, v := range result.Forecast {
		assert.InDelta(t, 10.0, v, 1e-9)
	}
}

func TestHybridForecast_FinalForecastUsesFullHistory(t *testing.T) {
	history := linearHistory(5, 5, 30)
	result := HybridForecast(history, 3, DefaultSettings())

	// The winner is recomputed on the full history, so the forecast must
	// continue the trend past the last observation (150), not past the
	// training slice.
	require.Len(t, result.Forecast, 3)
	assert.Greater(t, result.Forecast[0], 150.0)
}
