// internal/forecast/linear.go
package forecast

// LinearRegression fits ordinary least squares of quantity against the time
// index and projects the fitted line over the horizon, floored at 0. The
// second return value is the R² of the in-sample fit so callers can judge
// how trustworthy the extrapolation is.
//
// With fewer than 2 observations the fit is undefined; the forecast degrades
// to the flat historical average with an unavailable R².
func LinearRegression(history []float64, periods int) ([]float64, Metric) {
	if periods <= 0 {
		return nil, Metric{}
	}

	n := len(history)
	result := make([]float64, periods)
	if n < 2 {
		mean := Mean(history)
		if mean < 0 {
			mean = 0
		}
		for i := range result {
			result[i] = mean
		}
		return result, Metric{}
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range history {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		mean := Mean(history)
		if mean < 0 {
			mean = 0
		}
		for i := range result {
			result[i] = mean
		}
		return result, Metric{}
	}

	slope := (fn*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / fn

	fitted := make([]float64, n)
	for i := range fitted {
		fitted[i] = intercept + slope*float64(i)
	}

	for i := 0; i < periods; i++ {
		next := intercept + slope*float64(n+i)
		if next < 0 {
			next = 0
		}
		result[i] = next
	}
	return result, R2(history, fitted)
}
