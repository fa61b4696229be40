// backend-go/internal/service/forecast_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/prasetyowira/stockcast/backend-go/internal/cache"
	"github.com/prasetyowira/stockcast/backend-go/internal/domain"
	"github.com/prasetyowira/stockcast/backend-go/internal/forecast"
	"github.com/prasetyowira/stockcast/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// historyLookbackDays bounds how far back demand history is loaded for a
// forecast. A year is enough for the longest detectable seasonal cycle.
const historyLookbackDays = 365

// batchConcurrency caps parallel forecast computations in BatchForecast.
const batchConcurrency = 4

type ForecastService struct {
	demandRepo  repository.DemandRepository
	catalogRepo repository.CatalogRepository
	cache       cache.ForecastCache
}

func NewForecastService(demandRepo repository.DemandRepository, catalogRepo repository.CatalogRepository, cacheImpl cache.ForecastCache) *ForecastService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopForecastCache()
	}
	return &ForecastService{
		demandRepo:  demandRepo,
		catalogRepo: catalogRepo,
		cache:       cacheImpl,
	}
}

// GetForecast loads demand history and computes (or returns the cached)
// forecast for one product.
func (s *ForecastService) GetForecast(ctx context.Context, productID, warehouseID string, settings forecast.Settings) (*forecast.Result, error) {
	fingerprint := settingsFingerprint(warehouseID, settings)

	if cached, ok, err := s.cache.Get(ctx, productID, fingerprint); err == nil && ok {
		return &forecast.Result{Forecast: cached.Forecast, Comparisons: cached.Comparisons}, nil
	} else if err != nil {
		log.Warn().Err(err).Str("product_id", productID).Msg("forecast: cache get failed")
	}

	if _, err := s.catalogRepo.GetProduct(ctx, productID); err != nil {
		return nil, err
	}

	history, err := s.loadHistory(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}

	result, err := forecast.Calculate(productID, history, settings)
	if err != nil {
		return nil, err
	}

	err = s.cache.Set(ctx, productID, fingerprint, &cache.CachedForecast{
		Forecast:    result.Forecast,
		Comparisons: result.Comparisons,
	})
	if err != nil {
		log.Warn().Err(err).Str("product_id", productID).Msg("forecast: cache set failed")
	}

	return result, nil
}

// CompareAlgorithms races every algorithm on a holdout and returns the
// ranked comparison table.
func (s *ForecastService) CompareAlgorithms(ctx context.Context, productID, warehouseID string, settings forecast.Settings) ([]domain.AlgorithmComparison, error) {
	settings.Algorithm = forecast.AlgorithmHybrid

	result, err := s.GetForecast(ctx, productID, warehouseID, settings)
	if err != nil {
		return nil, err
	}
	if result.Comparisons == nil {
		return []domain.AlgorithmComparison{}, nil
	}

	return result.Comparisons, nil
}

// GetChart returns the merged history-plus-forecast series for charting.
func (s *ForecastService) GetChart(ctx context.Context, productID, warehouseID string, settings forecast.Settings) ([]domain.ChartPoint, error) {
	result, err := s.GetForecast(ctx, productID, warehouseID, settings)
	if err != nil {
		return nil, err
	}

	history, err := s.loadHistory(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}

	return forecast.ChartSeries(history, result.Forecast), nil
}

// BatchForecast computes forecasts for many products concurrently. One
// failing product fails the batch.
func (s *ForecastService) BatchForecast(ctx context.Context, productIDs []string, warehouseID string, settings forecast.Settings) (map[string]*domain.Forecast, error) {
	results := make([]*forecast.Result, len(productIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, productID := range productIDs {
		i, productID := i, productID
		g.Go(func() error {
			result, err := s.GetForecast(gctx, productID, warehouseID, settings)
			if err != nil {
				return fmt.Errorf("forecast for %s: %w", productID, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	forecasts := make(map[string]*domain.Forecast, len(productIDs))
	for i, productID := range productIDs {
		forecasts[productID] = results[i].Forecast
	}
	return forecasts, nil
}

// InvalidateProduct drops cached forecasts after a demand data change.
func (s *ForecastService) InvalidateProduct(ctx context.Context, productID string) error {
	return s.cache.InvalidateProduct(ctx, productID)
}

func (s *ForecastService) loadHistory(ctx context.Context, productID, warehouseID string) ([]domain.DemandObservation, error) {
	since := time.Now().UTC().AddDate(0, 0, -historyLookbackDays)
	history, err := s.demandRepo.GetDemandHistory(ctx, productID, warehouseID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load demand history for %s: %w", productID, err)
	}
	return history, nil
}

// settingsFingerprint keys the cache on everything that changes the output.
func settingsFingerprint(warehouseID string, s forecast.Settings) string {
	return fmt.Sprintf("wh=%s|alg=%s|periods=%d|conf=%.4f|alpha=%.4f|beta=%.4f|window=%d",
		warehouseID, s.Algorithm, s.Periods, s.ConfidenceLevel, s.SmoothingFactor, s.TrendFactor, s.SMAWindow)
}
