// internal/forecast/stats.go
package forecast

import "math"

// Metric is a forecast error statistic that may be unavailable. An
// unavailable MAPE is not the same thing as a MAPE of 100, so availability
// is tracked explicitly instead of overloading numeric sentinels. The
// reporting boundary converts unavailable metrics back to the classic
// dashboard sentinels via Or.
type Metric struct {
	Value float64
	Valid bool
}

func metricOf(v float64) Metric {
	return Metric{Value: v, Valid: true}
}

// Or returns the metric value, or fallback when the metric is unavailable.
func (m Metric) Or(fallback float64) float64 {
	if m.Valid {
		return m.Value
	}
	return fallback
}

// Sentinel values emitted at the reporting boundary when a metric could not
// be computed. MAPE uses its worst case so unavailable accuracy never looks
// like a perfect fit.
const (
	MAPEUnavailable = 100.0
	MAEUnavailable  = 0.0
	RMSEUnavailable = 0.0
	R2Unavailable   = 0.0
)

// Mean returns the arithmetic average, 0 for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the population standard deviation, 0 for empty input.
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

// MAPE returns the mean absolute percentage error over indices where the
// actual value is non-zero. Unavailable when the slices mismatch, are empty,
// or no non-zero actual exists.
func MAPE(actual, predicted []float64) Metric {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return Metric{}
	}
	sum := 0.0
	count := 0
	for i := range actual {
		if actual[i] == 0 {
			continue
		}
		sum += math.Abs((actual[i]-predicted[i])/actual[i]) * 100
		count++
	}
	if count == 0 {
		return Metric{}
	}
	return metricOf(sum / float64(count))
}

// MAE returns the mean absolute error, unavailable on mismatch or empty input.
func MAE(actual, predicted []float64) Metric {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return Metric{}
	}
	sum := 0.0
	for i := range actual {
		sum += math.Abs(actual[i] - predicted[i])
	}
	return metricOf(sum / float64(len(actual)))
}

// RMSE returns the root mean squared error, unavailable on mismatch or empty
// input.
func RMSE(actual, predicted []float64) Metric {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return Metric{}
	}
	sum := 0.0
	for i := range actual {
		d := actual[i] - predicted[i]
		sum += d * d
	}
	return metricOf(math.Sqrt(sum / float64(len(actual))))
}

// R2 returns the coefficient of determination. Unavailable on mismatch,
// empty input, or when the actual series is constant (total sum of squares
// is zero), where no variance remains to explain.
func R2(actual, predicted []float64) Metric {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return Metric{}
	}
	mean := Mean(actual)
	ssTot := 0.0
	ssRes := 0.0
	for i := range actual {
		dt := actual[i] - mean
		dr := actual[i] - predicted[i]
		ssTot += dt * dt
		ssRes += dr * dr
	}
	if ssTot == 0 {
		return Metric{}
	}
	return metricOf(1 - ssRes/ssTot)
}

// confidenceZScores are the supported two-sided confidence levels.
var confidenceZScores = map[float64]float64{
	0.90: 1.645,
	0.95: 1.96,
	0.99: 2.576,
}

// ZScoreForConfidence returns the z-score for a confidence level, falling
// back to the 95% score for unknown levels.
func ZScoreForConfidence(level float64) float64 {
	if z, ok := confidenceZScores[level]; ok {
		return z
	}
	return confidenceZScores[0.95]
}
