// internal/forecast/hybrid.go
package forecast

import (
	"sort"

	"github.com/prasetyowira/stockcast/backend-go/internal/domain"
)

// Holdout split and minimum slice sizes for algorithm selection. The split
// is chronological; shuffling would leak future demand into training.
const (
	holdoutTrainRatio   = 0.8
	minHybridHistory    = 7
	minTrainPoints      = 5
	minValidationPoints = 2
)

// HybridResult is the selector output: the chosen algorithm's forecast
// recomputed on the full history, plus the validation table kept for
// transparency.
type HybridResult struct {
	Forecast    []float64
	Algorithm   Algorithm
	Comparisons []domain.AlgorithmComparison
}

// candidateAlgorithms are the point-forecast methods the selector races.
var candidateAlgorithms = []Algorithm{
	AlgorithmSMA,
	AlgorithmExponential,
	AlgorithmLinear,
	AlgorithmSeasonal,
}

// HybridForecast holds out the most recent 20% of history, runs every
// candidate algorithm on the training slice, scores each against the held
// out actuals by MAPE, and recomputes the lowest-MAPE algorithm on the full
// history for the final forecast.
//
// Histories too short to validate degrade: fewer than minHybridHistory
// points yields the flat SMA mean forecast, and a split leaving too few
// train or validation points yields the Holt forecast, both without a
// comparison table.
func HybridForecast(history []float64, periods int, s Settings) HybridResult {
	if len(history) < minHybridHistory {
		return HybridResult{
			Forecast:  SimpleMovingAverage(history, periods, s.SMAWindow),
			Algorithm: AlgorithmSMA,
		}
	}

	split := int(float64(len(history)) * holdoutTrainRatio)
	train := history[:split]
	validation := history[split:]
	if len(train) < minTrainPoints || len(validation) < minValidationPoints {
		return HybridResult{
			Forecast:  DoubleExponentialSmoothing(history, periods, s.SmoothingFactor, s.TrendFactor),
			Algorithm: AlgorithmExponential,
		}
	}

	comparisons := make([]domain.AlgorithmComparison, 0, len(candidateAlgorithms))
	best := AlgorithmExponential
	bestMAPE := MAPEUnavailable + 1
	for _, alg := range candidateAlgorithms {
		predicted := runPointAlgorithm(alg, train, len(validation), s)
		mape := MAPE(validation, predicted)
		comparisons = append(comparisons, domain.AlgorithmComparison{
			Algorithm: alg.String(),
			MAPE:      mape.Or(MAPEUnavailable),
			MAE:       MAE(validation, predicted).Or(MAEUnavailable),
			RMSE:      RMSE(validation, predicted).Or(RMSEUnavailable),
			R2:        R2(validation, predicted).Or(R2Unavailable),
		})
		if mape.Or(MAPEUnavailable) < bestMAPE {
			bestMAPE = mape.Or(MAPEUnavailable)
			best = alg
		}
	}

	for i := range comparisons {
		comparisons[i].Recommended = comparisons[i].Algorithm == best.String()
	}
	sort.SliceStable(comparisons, func(i, j int) bool {
		return comparisons[i].MAPE < comparisons[j].MAPE
	})

	return HybridResult{
		Forecast:    runPointAlgorithm(best, history, periods, s),
		Algorithm:   best,
		Comparisons: comparisons,
	}
}

// runPointAlgorithm dispatches to one of the four point-forecast methods.
// Hybrid is deliberately not a case: the selector never races itself.
func runPointAlgorithm(alg Algorithm, history []float64, periods int, s Settings) []float64 {
	switch alg {
	case AlgorithmSMA:
		return SimpleMovingAverage(history, periods, s.SMAWindow)
	case AlgorithmExponential:
		return DoubleExponentialSmoothing(history, periods, s.SmoothingFactor, s.TrendFactor)
	case AlgorithmLinear:
		result, _ := LinearRegression(history, periods)
		return result
	case AlgorithmSeasonal:
		result, _ := SeasonalForecast(history, periods, s.SmoothingFactor, s.TrendFactor)
		return result
	default:
		return DoubleExponentialSmoothing(history, periods, s.SmoothingFactor, s.TrendFactor)
	}
}
