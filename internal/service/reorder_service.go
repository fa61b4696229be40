// backend-go/internal/service/reorder_service.go
package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/prasetyowira/stockcast/backend-go/internal/domain"
	"github.com/prasetyowira/stockcast/backend-go/internal/reorder"
	"github.com/prasetyowira/stockcast/backend-go/internal/repository"
	"github.com/prasetyowira/stockcast/backend-go/internal/storage"
	"github.com/rs/zerolog/log"
)

type ReorderService struct {
	demandRepo  repository.DemandRepository
	catalogRepo repository.CatalogRepository
	ruleRepo    repository.ReorderRuleRepository
	poRepo      repository.PORepository
	storage     storage.ObjectStorage

	serviceLevel        float64
	defaultLeadTimeDays int
	maxStockMultiplier  float64
}

type ReorderServiceConfig struct {
	ServiceLevel        float64
	DefaultLeadTimeDays int
	MaxStockMultiplier  float64
}

func NewReorderService(
	demandRepo repository.DemandRepository,
	catalogRepo repository.CatalogRepository,
	ruleRepo repository.ReorderRuleRepository,
	poRepo repository.PORepository,
	objectStorage storage.ObjectStorage,
	cfg ReorderServiceConfig,
) *ReorderService {
	if cfg.ServiceLevel <= 0 || cfg.ServiceLevel >= 1 {
		cfg.ServiceLevel = reorder.DefaultServiceLevel
	}
	if cfg.DefaultLeadTimeDays <= 0 {
		cfg.DefaultLeadTimeDays = reorder.DefaultLeadTimeDays
	}
	if cfg.MaxStockMultiplier <= 0 {
		cfg.MaxStockMultiplier = reorder.DefaultMaxStockMultiplier
	}

	return &ReorderService{
		demandRepo:          demandRepo,
		catalogRepo:         catalogRepo,
		ruleRepo:            ruleRepo,
		poRepo:              poRepo,
		storage:             objectStorage,
		serviceLevel:        cfg.ServiceLevel,
		defaultLeadTimeDays: cfg.DefaultLeadTimeDays,
		maxStockMultiplier:  cfg.MaxStockMultiplier,
	}
}

// GetSuggestions computes the current reorder suggestions for a warehouse,
// most urgent first.
func (s *ReorderService) GetSuggestions(ctx context.Context, warehouseID string) ([]domain.ReorderSuggestion, error) {
	positions, err := s.demandRepo.GetStockPositions(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stock positions: %w", err)
	}

	return reorder.GenerateSuggestions(positions, reorder.DefaultPriorityCutoffs), nil
}

// Consolidate turns the current suggestions into draft purchase orders, one
// per supplier, and optionally persists them.
func (s *ReorderService) Consolidate(ctx context.Context, warehouseID string, policy reorder.ShortfallPolicy, persist bool) ([]domain.PurchaseOrderDraft, error) {
	suggestions, err := s.GetSuggestions(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if len(suggestions) == 0 {
		return []domain.PurchaseOrderDraft{}, nil
	}

	supplierIDs := make([]string, 0, len(suggestions))
	seen := make(map[string]bool)
	for _, suggestion := range suggestions {
		if !seen[suggestion.SupplierID] {
			seen[suggestion.SupplierID] = true
			supplierIDs = append(supplierIDs, suggestion.SupplierID)
		}
	}

	terms, err := s.catalogRepo.GetSupplierTerms(ctx, supplierIDs)
	if err != nil {
		return nil, err
	}

	drafts := reorder.Consolidate(suggestions, terms, reorder.ConsolidateOptions{
		WarehouseID:         warehouseID,
		DefaultLeadTimeDays: s.defaultLeadTimeDays,
		Policy:              policy,
	})

	if persist && len(drafts) > 0 {
		if err := s.poRepo.SaveDrafts(ctx, drafts); err != nil {
			return nil, err
		}
	}

	return drafts, nil
}

// ExportDrafts uploads the drafts as one CSV per consolidation run and
// returns the object key.
func (s *ReorderService) ExportDrafts(ctx context.Context, drafts []domain.PurchaseOrderDraft) (string, error) {
	if s.storage == nil {
		return "", fmt.Errorf("object storage is not configured")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"po_id", "supplier_id", "warehouse_id", "product_id", "product_name", "quantity", "unit_cost", "line_total", "order_date", "expected_delivery"}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("failed to write export header: %w", err)
	}

	for _, draft := range drafts {
		for _, item := range draft.Items {
			row := []string{
				draft.ID,
				draft.SupplierID,
				draft.WarehouseID,
				item.ProductID,
				item.ProductName,
				strconv.FormatFloat(item.Quantity, 'f', -1, 64),
				item.UnitCost.String(),
				item.TotalCost.String(),
				draft.OrderDate.Format("2006-01-02"),
				draft.ExpectedDeliveryDate.Format("2006-01-02"),
			}
			if err := w.Write(row); err != nil {
				return "", fmt.Errorf("failed to write export row: %w", err)
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush export: %w", err)
	}

	key := fmt.Sprintf("po-drafts/%s.csv", time.Now().UTC().Format("20060102T150405"))
	if err := s.storage.UploadObject(ctx, key, "text/csv", buf.Bytes()); err != nil {
		return "", err
	}

	log.Info().Str("key", key).Int("drafts", len(drafts)).Msg("exported purchase order drafts")
	return key, nil
}

// SuggestRule derives replenishment parameters for a product from its demand
// statistics and the supplier lead time. Used to prefill the rule form and by
// auto-generation.
func (s *ReorderService) SuggestRule(ctx context.Context, productID, warehouseID string) (*domain.ReorderRule, error) {
	positions, err := s.demandRepo.GetStockPositions(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stock positions: %w", err)
	}

	var pos *domain.StockPosition
	for i := range positions {
		if positions[i].ProductID == productID {
			pos = &positions[i]
			break
		}
	}
	if pos == nil {
		return nil, fmt.Errorf("no stock position for product %s", productID)
	}

	leadTime := float64(s.defaultLeadTimeDays)
	if pos.Rule.LeadTimeDays > 0 {
		leadTime = float64(pos.Rule.LeadTimeDays)
	}

	safety := reorder.SafetyStock(pos.AvgDailyDemand, pos.DemandStdDev, leadTime, 0, s.serviceLevel)
	point := reorder.ReorderPoint(pos.AvgDailyDemand, leadTime, safety)
	maxStock := reorder.MaxStock(pos.AvgDailyDemand, leadTime, safety, s.maxStockMultiplier)
	eoq := reorder.EOQ(pos.AvgDailyDemand*365, defaultOrderingCost, pos.UnitCost*defaultHoldingRate)
	quantity := reorder.ReorderQuantity(pos.CurrentStock, maxStock, eoq)

	return &domain.ReorderRule{
		ProductID:       productID,
		SupplierID:      pos.SupplierID,
		WarehouseID:     warehouseID,
		ReorderPoint:    point,
		ReorderQuantity: quantity,
		MinimumStock:    safety,
		MaximumStock:    maxStock,
		LeadTimeDays:    int(leadTime),
		IsActive:        true,
	}, nil
}

// Annual ordering and holding cost assumptions for EOQ when the tenant has
// not configured real values.
const (
	defaultOrderingCost = 50.0
	defaultHoldingRate  = 0.2
)

func (s *ReorderService) ListRules(ctx context.Context, productID string, activeOnly bool) ([]domain.ReorderRule, error) {
	return s.ruleRepo.ListRules(ctx, productID, activeOnly)
}

func (s *ReorderService) GetRule(ctx context.Context, id int64) (*domain.ReorderRule, error) {
	return s.ruleRepo.GetRule(ctx, id)
}

func (s *ReorderService) CreateRule(ctx context.Context, rule *domain.ReorderRule) error {
	if err := validateRule(rule); err != nil {
		return err
	}
	if _, err := s.catalogRepo.GetProduct(ctx, rule.ProductID); err != nil {
		return err
	}
	return s.ruleRepo.CreateRule(ctx, rule)
}

func (s *ReorderService) UpdateRule(ctx context.Context, rule *domain.ReorderRule) error {
	if err := validateRule(rule); err != nil {
		return err
	}
	return s.ruleRepo.UpdateRule(ctx, rule)
}

func (s *ReorderService) DeleteRule(ctx context.Context, id int64) error {
	return s.ruleRepo.DeleteRule(ctx, id)
}

func (s *ReorderService) ListDrafts(ctx context.Context, warehouseID string) ([]domain.PurchaseOrderDraft, error) {
	return s.poRepo.ListDrafts(ctx, warehouseID)
}

func validateRule(rule *domain.ReorderRule) error {
	if rule.ProductID == "" {
		return fmt.Errorf("rule product_id is required")
	}
	if rule.ReorderPoint < 0 {
		return fmt.Errorf("rule reorder_point must not be negative")
	}
	if rule.ReorderQuantity <= 0 {
		return fmt.Errorf("rule reorder_quantity must be positive")
	}
	if rule.MaximumStock > 0 && rule.MaximumStock < rule.MinimumStock {
		return fmt.Errorf("rule maximum_stock must not be below minimum_stock")
	}
	return nil
}
