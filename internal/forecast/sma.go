// internal/forecast/sma.go
package forecast

// DefaultSMAWindow is the rolling window size used when the caller does not
// configure one.
const DefaultSMAWindow = 7

// SimpleMovingAverage forecasts by averaging the most recent window of
// values. The window rolls forward into the forecast itself: once the
// horizon extends past available history, earlier forecasted steps feed the
// average for later ones. The growing buffer keeps that recursion explicit.
//
// History shorter than the window degrades to the overall historical mean
// repeated for every period.
func SimpleMovingAverage(history []float64, periods, window int) []float64 {
	if periods <= 0 {
		return nil
	}
	if window <= 0 {
		window = DefaultSMAWindow
	}

	result := make([]float64, periods)
	if len(history) < window {
		mean := Mean(history)
		if mean < 0 {
			mean = 0
		}
		for i := range result {
			result[i] = mean
		}
		return result
	}

	buffer := make([]float64, len(history), len(history)+periods)
	copy(buffer, history)

	for i := 0; i < periods; i++ {
		sum := 0.0
		for _, v := range buffer[len(buffer)-window:] {
			sum += v
		}
		next := sum / float64(window)
		if next < 0 {
			next = 0
		}
		result[i] = next
		buffer = append(buffer, next)
	}
	return result
}
