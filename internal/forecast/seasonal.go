// internal/forecast/seasonal.go
package forecast

import "github.com/prasetyowira/stockcast/backend-go/internal/domain"

// minSeasonalHistory is the fewest observations seasonal decomposition will
// attempt to work with before falling back to plain trend smoothing.
const minSeasonalHistory = 14

// SeasonalForecast separates trend from a repeating demand cycle: it takes
// the Holt trend forecast and multiplies each future step by the seasonal
// factor for its position in the cycle. The detection result is returned so
// callers can report the cycle alongside the forecast.
//
// Without enough history or a detected cycle the forecast is plain double
// exponential smoothing and the returned seasonality is the zero result.
func SeasonalForecast(history []float64, periods int, alpha, beta float64) ([]float64, domain.SeasonalityInfo) {
	if len(history) < minSeasonalHistory {
		return DoubleExponentialSmoothing(history, periods, alpha, beta), domain.SeasonalityInfo{}
	}

	seasonality := DetectSeasonality(history, DefaultMinPeriod, DefaultMaxPeriod, DefaultSeasonalityThreshold)
	trend := DoubleExponentialSmoothing(history, periods, alpha, beta)
	if !seasonality.Detected {
		return trend, seasonality
	}

	result := make([]float64, len(trend))
	for i, v := range trend {
		next := v * seasonality.Factors[i%seasonality.Period]
		if next < 0 {
			next = 0
		}
		result[i] = next
	}
	return result, seasonality
}
