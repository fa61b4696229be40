// internal/reorder/suggestions.go
package reorder

import (
	"math"
	"sort"

	"github.com/prasetyowira/stockcast/backend-go/internal/domain"
)

// PriorityCutoffs are the day thresholds separating urgency bands. Named so
// tests can probe the exact boundaries.
type PriorityCutoffs struct {
	High   int
	Medium int
}

// DefaultPriorityCutoffs marks anything at risk within 3 days as high
// priority and within 7 as medium.
var DefaultPriorityCutoffs = PriorityCutoffs{High: 3, Medium: 7}

func (c PriorityCutoffs) classify(daysUntilStockout int) domain.Priority {
	switch {
	case daysUntilStockout != domain.StockoutNever && daysUntilStockout <= c.High:
		return domain.PriorityHigh
	case daysUntilStockout != domain.StockoutNever && daysUntilStockout <= c.Medium:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

var priorityRank = map[domain.Priority]int{
	domain.PriorityHigh:   0,
	domain.PriorityMedium: 1,
	domain.PriorityLow:    2,
}

// GenerateSuggestions filters the catalog down to products at or below
// their reorder point and ranks them by urgency. Products above the reorder
// point never appear; this is a pure filter and rank, not a scoring model.
//
// Output ordering: high priority first, then within equal priority ascending
// days-until-stockout (a product that never runs out sorts last).
func GenerateSuggestions(positions []domain.StockPosition, cutoffs PriorityCutoffs) []domain.ReorderSuggestion {
	if cutoffs.High <= 0 || cutoffs.Medium <= 0 {
		cutoffs = DefaultPriorityCutoffs
	}

	suggestions := make([]domain.ReorderSuggestion, 0)
	for _, pos := range positions {
		if !pos.Rule.IsActive || pos.CurrentStock > pos.Rule.ReorderPoint {
			continue
		}

		days := DaysUntilStockout(pos.CurrentStock, pos.AvgDailyDemand)
		qty := pos.Rule.ReorderQuantity
		suggestions = append(suggestions, domain.ReorderSuggestion{
			ProductID:         pos.ProductID,
			ProductName:       pos.ProductName,
			SupplierID:        pos.SupplierID,
			WarehouseID:       pos.WarehouseID,
			CurrentStock:      pos.CurrentStock,
			ReorderPoint:      pos.Rule.ReorderPoint,
			SuggestedQuantity: qty,
			UnitCost:          pos.UnitCost,
			EstimatedCost:     qty * pos.UnitCost,
			Priority:          cutoffs.classify(days),
			DaysUntilStockout: days,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if priorityRank[a.Priority] != priorityRank[b.Priority] {
			return priorityRank[a.Priority] < priorityRank[b.Priority]
		}
		return stockoutSortKey(a.DaysUntilStockout) < stockoutSortKey(b.DaysUntilStockout)
	})
	return suggestions
}

// stockoutSortKey orders the never-stockout sentinel after every finite day
// count.
func stockoutSortKey(days int) int {
	if days == domain.StockoutNever {
		return math.MaxInt
	}
	return days
}
