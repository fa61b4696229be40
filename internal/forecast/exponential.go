// internal/forecast/exponential.go
package forecast

// Default smoothing weights for Holt's method.
const (
	DefaultSmoothingFactor = 0.3 // alpha, level weight
	DefaultTrendFactor     = 0.1 // beta, trend weight
)

// DoubleExponentialSmoothing forecasts with Holt's method: running level and
// trend estimates are updated over the history, then projected linearly over
// the horizon. Each projection is floored at 0 since demand cannot be
// negative.
//
// With fewer than 2 observations there is no trend to estimate and the
// method degrades to a flat forecast of the last observed value (or 0 for
// empty history).
func DoubleExponentialSmoothing(history []float64, periods int, alpha, beta float64) []float64 {
	if periods <= 0 {
		return nil
	}
	if alpha <= 0 || alpha > 1 {
		alpha = DefaultSmoothingFactor
	}
	if beta <= 0 || beta > 1 {
		beta = DefaultTrendFactor
	}

	result := make([]float64, periods)
	if len(history) < 2 {
		flat := 0.0
		if len(history) == 1 && history[0] > 0 {
			flat = history[0]
		}
		for i := range result {
			result[i] = flat
		}
		return result
	}

	level := history[0]
	trend := history[1] - history[0]
	for i := 1; i < len(history); i++ {
		prevLevel := level
		level = alpha*history[i] + (1-alpha)*(level+trend)
		trend = beta*(level-prevLevel) + (1-beta)*trend
	}

	for i := 0; i < periods; i++ {
		next := level + float64(i+1)*trend
		if next < 0 {
			next = 0
		}
		result[i] = next
	}
	return result
}
