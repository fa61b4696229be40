package reorder

import (
	"testing"

	"github.com/prasetyowira/stockcast/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestServiceLevelZ(t *testing.T) {
	assert.Equal(t, 1.645, ServiceLevelZ(0.95))
	assert.Equal(t, 0.0, ServiceLevelZ(0.50))
	assert.Equal(t, 2.576, ServiceLevelZ(0.995))

	// Undefined levels snap to the nearest defined one.
	assert.Equal(t, 1.645, ServiceLevelZ(0.94))
	assert.Equal(t, 2.326, ServiceLevelZ(0.991))
}

func TestSafetyStock(t *testing.T) {
	// ceil(1.645 * 2 * sqrt(4)) = ceil(6.58) = 7
	got := SafetyStock(10, 2, 4, 0, 0.95)
	assert.Equal(t, 7.0, got)
}

func TestSafetyStock_CombinedVariance(t *testing.T) {
	// ceil(1.645 * sqrt(4*4 + 100*1)) = ceil(1.645 * sqrt(116)) = ceil(17.71...) = 18
	got := SafetyStock(10, 2, 4, 1, 0.95)
	assert.Equal(t, 18.0, got)
}

func TestSafetyStock_ZeroVariability(t *testing.T) {
	assert.Equal(t, 0.0, SafetyStock(10, 0, 4, 0, 0.95))
}

func TestReorderPoint(t *testing.T) {
	// 10/day over 4 days lead time plus 7 buffer.
	assert.Equal(t, 47.0, ReorderPoint(10, 4, 7))
}

func TestReorderPoint_MonotonicInLeadTime(t *testing.T) {
	prev := 0.0
	for leadTime := 0.0; leadTime <= 30; leadTime++ {
		rop := ReorderPoint(10, leadTime, 7)
		assert.GreaterOrEqual(t, rop, prev, "lead time %.0f", leadTime)
		prev = rop
	}
}

func TestMaxStock(t *testing.T) {
	// 10/day * 4 days * 2 + 7 = 87
	assert.Equal(t, 87.0, MaxStock(10, 4, 7, 2))

	// Non-positive multiplier falls back to the default of 2.
	assert.Equal(t, 87.0, MaxStock(10, 4, 7, 0))
}

func TestEOQ(t *testing.T) {
	// ceil(sqrt(2*1000*50/2)) = ceil(sqrt(50000)) = 224
	assert.Equal(t, 224.0, EOQ(1000, 50, 2))
}

func TestEOQ_NonPositiveInputs(t *testing.T) {
	assert.Equal(t, 0.0, EOQ(0, 50, 2))
	assert.Equal(t, 0.0, EOQ(1000, 0, 2))
	assert.Equal(t, 0.0, EOQ(1000, 50, 0))
	assert.Equal(t, 0.0, EOQ(-5, 50, 2))
}

func TestEOQ_ScaleDirection(t *testing.T) {
	base := EOQ(1000, 50, 2)
	scaled := EOQ(2000, 100, 2)
	assert.Greater(t, scaled, base)
}

func TestEOQWithQuantityDiscounts(t *testing.T) {
	// Base EOQ is 224 at unit cost 10. A deep discount at 500 units wins on
	// total annual cost.
	tiers := []DiscountTier{
		{MinQuantity: 500, UnitCost: 8},
	}
	got := EOQWithQuantityDiscounts(1000, 50, 2, 10, tiers)
	assert.Equal(t, 500.0, got)
}

func TestEOQWithQuantityDiscounts_IgnoresUneconomicTiers(t *testing.T) {
	// A token discount at a huge quantity loses to the base EOQ.
	tiers := []DiscountTier{
		{MinQuantity: 100000, UnitCost: 9.99},
	}
	got := EOQWithQuantityDiscounts(1000, 50, 2, 10, tiers)
	assert.Equal(t, 224.0, got)
}

func TestEOQWithQuantityDiscounts_DegenerateInputs(t *testing.T) {
	assert.Equal(t, 0.0, EOQWithQuantityDiscounts(0, 50, 2, 10, nil))
}

func TestReorderQuantity(t *testing.T) {
	assert.Equal(t, 80.0, ReorderQuantity(20, 100, 0))

	// EOQ caps the order when smaller than the gap to max stock.
	assert.Equal(t, 50.0, ReorderQuantity(20, 100, 50))

	// EOQ larger than the gap does not inflate the order.
	assert.Equal(t, 80.0, ReorderQuantity(20, 100, 200))

	// Already at or above max stock.
	assert.Equal(t, 0.0, ReorderQuantity(120, 100, 50))
}

func TestDaysUntilStockout(t *testing.T) {
	assert.Equal(t, 2, DaysUntilStockout(5, 2))
	assert.Equal(t, 10, DaysUntilStockout(100, 10))

	// Zero demand never stocks out.
	assert.Equal(t, domain.StockoutNever, DaysUntilStockout(50, 0))

	// Depleted stock is already out.
	assert.Equal(t, 0, DaysUntilStockout(0, 5))
	assert.Equal(t, 0, DaysUntilStockout(-3, 5))
}
