// internal/reorder/consolidator.go
package reorder

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/prasetyowira/stockcast/backend-go/internal/domain"
	"github.com/shopspring/decimal"
)

// ShortfallPolicy decides what happens to a supplier group whose aggregated
// order misses the supplier's minimum.
type ShortfallPolicy int

const (
	// DropBelowMinimum removes the whole supplier group from the output.
	// The conservative default: no order is ever inflated silently.
	DropBelowMinimum ShortfallPolicy = iota
	// TopUpToMinimum raises the most urgent line item until the minimum is
	// met.
	TopUpToMinimum
)

// ConsolidateOptions configures a consolidation run.
type ConsolidateOptions struct {
	WarehouseID         string
	OrderDate           time.Time
	DefaultLeadTimeDays int
	Policy              ShortfallPolicy
}

// Consolidate groups reorder suggestions by supplier and turns each
// surviving group into one draft purchase order. Supplier terms (minimum
// order value/quantity, lead time) are applied per group; groups that miss
// a minimum are handled per the shortfall policy. Suggestions are assumed to
// be in urgency order, so the first line of each group is the most urgent.
func Consolidate(suggestions []domain.ReorderSuggestion, terms map[string]domain.SupplierTerms, opts ConsolidateOptions) []domain.PurchaseOrderDraft {
	if opts.OrderDate.IsZero() {
		opts.OrderDate = time.Now().UTC().Truncate(24 * time.Hour)
	}
	if opts.DefaultLeadTimeDays <= 0 {
		opts.DefaultLeadTimeDays = DefaultLeadTimeDays
	}

	groups := make(map[string][]domain.ReorderSuggestion)
	supplierIDs := make([]string, 0)
	for _, s := range suggestions {
		if s.SuggestedQuantity <= 0 {
			continue
		}
		if _, seen := groups[s.SupplierID]; !seen {
			supplierIDs = append(supplierIDs, s.SupplierID)
		}
		groups[s.SupplierID] = append(groups[s.SupplierID], s)
	}
	sort.Strings(supplierIDs)

	drafts := make([]domain.PurchaseOrderDraft, 0, len(supplierIDs))
	for _, supplierID := range supplierIDs {
		group := groups[supplierID]

		items := make([]domain.PurchaseOrderItem, 0, len(group))
		totalQty := 0.0
		total := decimal.Zero
		for _, s := range group {
			unitCost := decimal.NewFromFloat(s.UnitCost)
			lineTotal := unitCost.Mul(decimal.NewFromFloat(s.SuggestedQuantity))
			items = append(items, domain.PurchaseOrderItem{
				ProductID:   s.ProductID,
				ProductName: s.ProductName,
				Quantity:    s.SuggestedQuantity,
				UnitCost:    unitCost,
				TotalCost:   lineTotal,
			})
			totalQty += s.SuggestedQuantity
			total = total.Add(lineTotal)
		}

		leadTime := opts.DefaultLeadTimeDays
		if t, ok := terms[supplierID]; ok {
			if t.LeadTimeDays > 0 {
				leadTime = t.LeadTimeDays
			}
			var met bool
			items, total, totalQty, met = applyMinimums(items, total, totalQty, t, opts.Policy)
			if !met {
				continue
			}
		}

		drafts = append(drafts, domain.PurchaseOrderDraft{
			ID:                   uuid.NewString(),
			SupplierID:           supplierID,
			WarehouseID:          opts.WarehouseID,
			Items:                items,
			TotalCost:            total,
			Status:               domain.POStatusDraft,
			OrderDate:            opts.OrderDate,
			ExpectedDeliveryDate: opts.OrderDate.AddDate(0, 0, leadTime),
		})
	}
	return drafts
}

// applyMinimums enforces a supplier's minimum order constraints on one
// group. Under DropBelowMinimum an unmet constraint fails the group; under
// TopUpToMinimum the first (most urgent) line is raised until both minimums
// hold.
func applyMinimums(items []domain.PurchaseOrderItem, total decimal.Decimal, totalQty float64, t domain.SupplierTerms, policy ShortfallPolicy) ([]domain.PurchaseOrderItem, decimal.Decimal, float64, bool) {
	met := func() bool {
		valueMet := t.MinOrderValue.IsZero() || total.GreaterThanOrEqual(t.MinOrderValue)
		qtyMet := t.MinOrderQuantity <= 0 || totalQty >= t.MinOrderQuantity
		return valueMet && qtyMet
	}
	if met() {
		return items, total, totalQty, true
	}
	if policy == DropBelowMinimum || len(items) == 0 {
		return items, total, totalQty, false
	}

	lead := &items[0]
	bump := func(extra float64) {
		lead.Quantity += extra
		totalQty += extra
		total = total.Sub(lead.TotalCost)
		lead.TotalCost = lead.UnitCost.Mul(decimal.NewFromFloat(lead.Quantity))
		total = total.Add(lead.TotalCost)
	}

	if t.MinOrderQuantity > 0 && totalQty < t.MinOrderQuantity {
		bump(math.Ceil(t.MinOrderQuantity - totalQty))
	}
	if !t.MinOrderValue.IsZero() && total.LessThan(t.MinOrderValue) && lead.UnitCost.IsPositive() {
		extra := t.MinOrderValue.Sub(total).Div(lead.UnitCost).Ceil()
		extraF, _ := extra.Float64()
		bump(extraF)
	}

	return items, total, totalQty, met()
}
