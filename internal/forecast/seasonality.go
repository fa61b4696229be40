// internal/forecast/seasonality.go
package forecast

import "github.com/prasetyowira/stockcast/backend-go/internal/domain"

// Seasonality detection defaults. The strength threshold is an empirical
// cutoff with no derivation behind it; it is exported so callers and tests
// can probe the boundary.
const (
	DefaultMinPeriod            = 7
	DefaultMaxPeriod            = 365
	DefaultSeasonalityThreshold = 0.3
)

// DetectSeasonality scans candidate periods from minPeriod up to
// min(maxPeriod, len(history)/2) and scores each with a lag-autocorrelation
// statistic: the mean of products of values one period apart, normalized by
// the squared series mean. The strongest candidate is declared detected when
// its strength exceeds the threshold.
//
// Detected results carry per-position seasonal factors, normalized so the
// factor set averages exactly 1.0. History shorter than 2*minPeriod cannot
// support detection and returns the zero result.
func DetectSeasonality(history []float64, minPeriod, maxPeriod int, threshold float64) domain.SeasonalityInfo {
	if minPeriod <= 0 {
		minPeriod = DefaultMinPeriod
	}
	if maxPeriod <= 0 {
		maxPeriod = DefaultMaxPeriod
	}
	if threshold <= 0 {
		threshold = DefaultSeasonalityThreshold
	}

	none := domain.SeasonalityInfo{}
	if len(history) < 2*minPeriod {
		return none
	}

	mean := Mean(history)
	if mean == 0 {
		return none
	}

	limit := len(history) / 2
	if maxPeriod < limit {
		limit = maxPeriod
	}

	bestPeriod := 0
	bestStrength := 0.0
	for period := minPeriod; period <= limit; period++ {
		sum := 0.0
		count := 0
		for i := 0; i+period < len(history); i++ {
			sum += history[i] * history[i+period]
			count++
		}
		if count == 0 {
			continue
		}
		strength := (sum / float64(count)) / (mean * mean)
		if strength > bestStrength {
			bestStrength = strength
			bestPeriod = period
		}
	}

	if bestPeriod == 0 || bestStrength <= threshold {
		return none
	}

	return domain.SeasonalityInfo{
		Detected: true,
		Period:   bestPeriod,
		Strength: bestStrength,
		Factors:  seasonalFactors(history, bestPeriod, mean),
	}
}

// seasonalFactors averages the historical values at each position in the
// cycle and rescales the factor set to average exactly 1.0.
func seasonalFactors(history []float64, period int, mean float64) []float64 {
	factors := make([]float64, period)
	for pos := 0; pos < period; pos++ {
		sum := 0.0
		count := 0
		for i := pos; i < len(history); i += period {
			sum += history[i]
			count++
		}
		if count > 0 && mean != 0 {
			factors[pos] = (sum / float64(count)) / mean
		} else {
			factors[pos] = 1
		}
	}

	factorMean := Mean(factors)
	if factorMean == 0 {
		for i := range factors {
			factors[i] = 1
		}
		return factors
	}
	for i := range factors {
		factors[i] /= factorMean
	}
	return factors
}
