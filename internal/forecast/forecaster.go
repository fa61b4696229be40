// internal/forecast/forecaster.go
package forecast

import (
	"fmt"
	"time"

	"github.com/prasetyowira/stockcast/backend-go/internal/domain"
)

// Orchestrator defaults.
const (
	DefaultPeriods         = 30
	DefaultConfidenceLevel = 0.95

	// minValidationHistory is the fewest observations worth spending an
	// extra holdout pass on just to report error metrics.
	minValidationHistory = 14

	// unknownAccuracy is reported when no MAPE could be computed at all.
	unknownAccuracy = 0.5
)

// Settings configures a forecast request. The zero value is usable; every
// field falls back to its documented default.
type Settings struct {
	Algorithm       Algorithm
	Periods         int
	ConfidenceLevel float64
	SmoothingFactor float64 // alpha for exponential smoothing
	TrendFactor     float64 // beta for exponential smoothing
	SMAWindow       int
}

// DefaultSettings returns the hybrid 30-day forecast configuration.
func DefaultSettings() Settings {
	return Settings{
		Algorithm:       AlgorithmHybrid,
		Periods:         DefaultPeriods,
		ConfidenceLevel: DefaultConfidenceLevel,
		SmoothingFactor: DefaultSmoothingFactor,
		TrendFactor:     DefaultTrendFactor,
		SMAWindow:       DefaultSMAWindow,
	}
}

func (s Settings) normalized() Settings {
	if s.Periods <= 0 {
		s.Periods = DefaultPeriods
	}
	if s.ConfidenceLevel <= 0 || s.ConfidenceLevel >= 1 {
		s.ConfidenceLevel = DefaultConfidenceLevel
	}
	if s.SmoothingFactor <= 0 || s.SmoothingFactor > 1 {
		s.SmoothingFactor = DefaultSmoothingFactor
	}
	if s.TrendFactor <= 0 || s.TrendFactor > 1 {
		s.TrendFactor = DefaultTrendFactor
	}
	if s.SMAWindow <= 0 {
		s.SMAWindow = DefaultSMAWindow
	}
	return s
}

// Result bundles the forecast with the hybrid selector's comparison table.
// Comparisons is nil when the request pinned a single algorithm or the
// history was too short to validate.
type Result struct {
	Forecast    *domain.Forecast
	Comparisons []domain.AlgorithmComparison
}

// Calculate is the forecasting entry point: it validates the history,
// dispatches to the requested algorithm, builds future dates and the
// confidence band, and assembles the result. The computation is pure; the
// same inputs always produce the same forecast.
func Calculate(productID string, history []domain.DemandObservation, settings Settings) (*Result, error) {
	s := settings.normalized()

	quantities := make([]float64, len(history))
	for i, obs := range history {
		if obs.Quantity < 0 {
			return nil, fmt.Errorf("demand history for %s: negative quantity %.2f at index %d", productID, obs.Quantity, i)
		}
		quantities[i] = obs.Quantity
	}

	var (
		values      []float64
		seasonality domain.SeasonalityInfo
		used        string
		comparisons []domain.AlgorithmComparison
		metrics     *domain.ErrorMetrics
		mape        = Metric{}
	)

	switch s.Algorithm {
	case AlgorithmSMA:
		values = SimpleMovingAverage(quantities, s.Periods, s.SMAWindow)
		used = AlgorithmSMA.String()
	case AlgorithmExponential:
		values = DoubleExponentialSmoothing(quantities, s.Periods, s.SmoothingFactor, s.TrendFactor)
		used = AlgorithmExponential.String()
	case AlgorithmLinear:
		var r2 Metric
		values, r2 = LinearRegression(quantities, s.Periods)
		used = AlgorithmLinear.String()
		if r2.Valid {
			metrics = &domain.ErrorMetrics{MAPE: MAPEUnavailable, R2: r2.Value}
		}
	case AlgorithmSeasonal:
		values, seasonality = SeasonalForecast(quantities, s.Periods, s.SmoothingFactor, s.TrendFactor)
		used = AlgorithmSeasonal.String()
	case AlgorithmHybrid:
		hybrid := HybridForecast(quantities, s.Periods, s)
		values = hybrid.Forecast
		comparisons = hybrid.Comparisons
		if len(hybrid.Comparisons) > 0 {
			used = AlgorithmHybrid.String()
			for _, c := range hybrid.Comparisons {
				if c.Recommended {
					metrics = &domain.ErrorMetrics{MAPE: c.MAPE, MAE: c.MAE, RMSE: c.RMSE, R2: c.R2}
					mape = metricOf(c.MAPE)
				}
			}
		} else {
			// Degraded path: too little history to race algorithms, so the
			// label reflects what actually produced the numbers.
			used = hybrid.Algorithm.String()
		}
	default:
		return nil, fmt.Errorf("forecast algorithm %d not supported", s.Algorithm)
	}

	// One extra holdout pass, restricted to the chosen algorithm, purely to
	// populate reporting metrics when the algorithm did not already.
	if !mape.Valid && len(quantities) >= minValidationHistory && s.Algorithm != AlgorithmHybrid {
		vm, vmape := validationMetrics(quantities, s.Algorithm, s)
		if vmape.Valid {
			mape = vmape
			if metrics != nil && metrics.R2 != 0 {
				vm.R2 = metrics.R2
			}
			metrics = &vm
		}
	}

	if !seasonality.Detected && s.Algorithm != AlgorithmSeasonal {
		seasonality = DetectSeasonality(quantities, DefaultMinPeriod, DefaultMaxPeriod, DefaultSeasonalityThreshold)
	}

	margin := ZScoreForConfidence(s.ConfidenceLevel) * StdDev(quantities)
	lower := make([]float64, len(values))
	upper := make([]float64, len(values))
	for i, v := range values {
		lo := v - margin
		if lo < 0 {
			lo = 0
		}
		lower[i] = lo
		upper[i] = v + margin
	}

	accuracy := unknownAccuracy
	if mape.Valid {
		accuracy = 1 - mape.Value/100
		if accuracy < 0 {
			accuracy = 0
		}
	}

	forecast := &domain.Forecast{
		ProductID:       productID,
		Dates:           forecastDates(history, s.Periods),
		PointForecast:   values,
		ConfidenceLower: lower,
		ConfidenceUpper: upper,
		AlgorithmUsed:   used,
		AccuracyScore:   accuracy,
		ErrorMetrics:    metrics,
	}
	if seasonality.Detected || s.Algorithm == AlgorithmSeasonal {
		forecast.Seasonality = &seasonality
	}

	return &Result{Forecast: forecast, Comparisons: comparisons}, nil
}

// validationMetrics runs one 80/20 holdout of the given algorithm and
// reports the resulting error metrics with sentinel fallbacks.
func validationMetrics(history []float64, alg Algorithm, s Settings) (domain.ErrorMetrics, Metric) {
	split := int(float64(len(history)) * holdoutTrainRatio)
	train := history[:split]
	validation := history[split:]
	if len(train) < minTrainPoints || len(validation) < minValidationPoints {
		return domain.ErrorMetrics{MAPE: MAPEUnavailable}, Metric{}
	}

	predicted := runPointAlgorithm(alg, train, len(validation), s)
	mape := MAPE(validation, predicted)
	return domain.ErrorMetrics{
		MAPE: mape.Or(MAPEUnavailable),
		MAE:  MAE(validation, predicted).Or(MAEUnavailable),
		RMSE: RMSE(validation, predicted).Or(RMSEUnavailable),
		R2:   R2(validation, predicted).Or(R2Unavailable),
	}, mape
}

// forecastDates generates consecutive calendar dates starting the day after
// the last observation, or today when there is no history.
func forecastDates(history []domain.DemandObservation, periods int) []time.Time {
	start := time.Now().UTC().Truncate(24 * time.Hour)
	if len(history) > 0 {
		start = history[len(history)-1].Date.AddDate(0, 0, 1)
	}

	dates := make([]time.Time, periods)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates
}

// ChartSeries merges history and forecast into one chronological series for
// the dashboard chart: actuals first, then forecasted points with bounds.
func ChartSeries(history []domain.DemandObservation, f *domain.Forecast) []domain.ChartPoint {
	points := make([]domain.ChartPoint, 0, len(history)+len(f.Dates))
	for _, obs := range history {
		actual := obs.Quantity
		points = append(points, domain.ChartPoint{Date: obs.Date, Actual: &actual})
	}
	for i, date := range f.Dates {
		forecast := f.PointForecast[i]
		lo := f.ConfidenceLower[i]
		hi := f.ConfidenceUpper[i]
		points = append(points, domain.ChartPoint{
			Date:     date,
			Forecast: &forecast,
			Lower:    &lo,
			Upper:    &hi,
		})
	}
	return points
}
