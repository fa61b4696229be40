// internal/domain/forecast.go
package domain

import "time"

// SeasonalityInfo describes a detected repeating demand cycle.
// Period is 0 exactly when Detected is false. Factors average to 1.0.
type SeasonalityInfo struct {
	Detected bool      `json:"detected"`
	Period   int       `json:"period"`
	Strength float64   `json:"strength"`
	Factors  []float64 `json:"factors,omitempty"`
}

// ErrorMetrics is the reporting view of forecast accuracy. Unavailable
// metrics carry the dashboard-compatible sentinels (MAPE 100, others 0);
// the forecasting core itself tracks availability explicitly.
type ErrorMetrics struct {
	MAPE float64 `json:"mape"`
	MAE  float64 `json:"mae"`
	RMSE float64 `json:"rmse"`
	R2   float64 `json:"r2"`
}

// Forecast is the orchestrator output for a single product.
// Dates, PointForecast, ConfidenceLower and ConfidenceUpper always have
// equal length, every forecast value is >= 0, and
// ConfidenceLower[i] <= PointForecast[i] <= ConfidenceUpper[i] for all i.
type Forecast struct {
	ProductID       string           `json:"product_id"`
	Dates           []time.Time      `json:"dates"`
	PointForecast   []float64        `json:"point_forecast"`
	ConfidenceLower []float64        `json:"confidence_lower"`
	ConfidenceUpper []float64        `json:"confidence_upper"`
	AlgorithmUsed   string           `json:"algorithm_used"`
	AccuracyScore   float64          `json:"accuracy_score"`
	Seasonality     *SeasonalityInfo `json:"seasonality,omitempty"`
	ErrorMetrics    *ErrorMetrics    `json:"error_metrics,omitempty"`
}

// AlgorithmComparison is one row of the hybrid selector's validation table.
// Exactly one row in a comparison set has Recommended true.
type AlgorithmComparison struct {
	Algorithm   string  `json:"algorithm"`
	MAPE        float64 `json:"mape"`
	MAE         float64 `json:"mae"`
	RMSE        float64 `json:"rmse"`
	R2          float64 `json:"r2"`
	Recommended bool    `json:"recommended"`
}

// ChartPoint merges history and forecast into one chronological series for
// dashboard charting. Actual is set on historical points, Forecast and the
// bounds on future points.
type ChartPoint struct {
	Date     time.Time `json:"date"`
	Actual   *float64  `json:"actual,omitempty"`
	Forecast *float64  `json:"forecast,omitempty"`
	Lower    *float64  `json:"lower,omitempty"`
	Upper    *float64  `json:"upper,omitempty"`
}
