package reorder

import (
	"testing"

	"github.com/prasetyowira/stockcast/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func position(productID string, currentStock, reorderPoint, avgDailyDemand, unitCost float64) domain.StockPosition {
	return domain.StockPosition{
		ProductID:      productID,
		ProductName:    "Product " + productID,
		SupplierID:     "sup-1",
		WarehouseID:    "wh-1",
		CurrentStock:   currentStock,
		AvgDailyDemand: avgDailyDemand,
		UnitCost:       unitCost,
		Rule: domain.ReorderRule{
			ProductID:       productID,
			SupplierID:      "sup-1",
			WarehouseID:     "wh-1",
			ReorderPoint:    reorderPoint,
			ReorderQuantity: 40,
			IsActive:        true,
		},
	}
}

func TestGenerateSuggestions_FiltersAboveReorderPoint(t *testing.T) {
	positions := []domain.StockPosition{
		position("healthy", 100, 20, 2, 5), // well stocked
		position("low", 5, 20, 2, 5),
	}

	got := GenerateSuggestions(positions, DefaultPriorityCutoffs)
	require.Len(t, got, 1)
	assert.Equal(t, "low", got[0].ProductID)
}

func TestGenerateSuggestions_SkipsInactiveRules(t *testing.T) {
	p := position("low", 5, 20, 2, 5)
	p.Rule.IsActive = false

	got := GenerateSuggestions([]domain.StockPosition{p}, DefaultPriorityCutoffs)
	assert.Empty(t, got)
}

func TestGenerateSuggestions_PriorityAssignment(t *testing.T) {
	tests := []struct {
		name         string
		currentStock float64
		dailyDemand  float64
		wantDays     int
		wantPriority domain.Priority
	}{
		{"stockout in 2 days", 5, 2, 2, domain.PriorityHigh},
		{"boundary of high", 6, 2, 3, domain.PriorityHigh},
		{"medium band", 10, 2, 5, domain.PriorityMedium},
		{"boundary of medium", 14, 2, 7, domain.PriorityMedium},
		{"low band", 18, 2, 9, domain.PriorityLow},
		{"zero demand is low", 10, 0, domain.StockoutNever, domain.PriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateSuggestions([]domain.StockPosition{
				position("p", tt.currentStock, 20, tt.dailyDemand, 5),
			}, DefaultPriorityCutoffs)
			require.Len(t, got, 1)
			assert.Equal(t, tt.wantDays, got[0].DaysUntilStockout)
			assert.Equal(t, tt.wantPriority, got[0].Priority)
		})
	}
}

func TestGenerateSuggestions_QuantityAndCostFromRule(t *testing.T) {
	got := GenerateSuggestions([]domain.StockPosition{
		position("p", 5, 20, 2, 3.5),
	}, DefaultPriorityCutoffs)
	require.Len(t, got, 1)
	assert.Equal(t, 40.0, got[0].SuggestedQuantity)
	assert.InDelta(t, 140.0, got[0].EstimatedCost, 1e-9)
}

func TestGenerateSuggestions_Ordering(t *testing.T) {
	positions := []domain.StockPosition{
		position("low-9d", 18, 20, 2, 5),
		position("high-1d", 2, 20, 2, 5),
		position("never", 10, 20, 0, 5),
		position("medium-5d", 10, 20, 2, 5),
		position("high-3d", 6, 20, 2, 5),
		position("medium-4d", 8, 20, 2, 5),
	}

	got := GenerateSuggestions(positions, DefaultPriorityCutoffs)
	require.Len(t, got, 6)

	ids := make([]string, len(got))
	for i, s := range got {
		ids[i] = s.ProductID
	}
	assert.Equal(t, []string{"high-1d", "high-3d", "medium-4d", "medium-5d", "low-9d", "never"}, ids)

	// Priorities never increase in urgency down the list, and days are
	// non-decreasing within a priority band.
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, priorityRank[got[i].Priority], priorityRank[got[i-1].Priority])
		if got[i].Priority == got[i-1].Priority {
			assert.GreaterOrEqual(t, stockoutSortKey(got[i].DaysUntilStockout), stockoutSortKey(got[i-1].DaysUntilStockout))
		}
	}
}
