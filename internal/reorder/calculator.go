// internal/reorder/calculator.go
package reorder

import (
	"math"
	"sort"

	"github.com/prasetyowira/stockcast/backend-go/internal/domain"
)

// Calculator defaults.
const (
	DefaultServiceLevel       = 0.95
	DefaultMaxStockMultiplier = 2.0
	DefaultLeadTimeDays       = 7
)

// serviceLevelZScores maps target in-stock probability during lead time to
// the corresponding z-score.
var serviceLevelZScores = map[float64]float64{
	0.50:  0,
	0.75:  0.674,
	0.80:  0.842,
	0.85:  1.036,
	0.90:  1.282,
	0.95:  1.645,
	0.97:  1.881,
	0.98:  2.054,
	0.99:  2.326,
	0.995: 2.576,
}

// ServiceLevelZ returns the z-score for a service level, snapping to the
// nearest defined level.
func ServiceLevelZ(level float64) float64 {
	levels := make([]float64, 0, len(serviceLevelZScores))
	for l := range serviceLevelZScores {
		levels = append(levels, l)
	}
	sort.Float64s(levels)

	nearest := levels[0]
	for _, l := range levels {
		if math.Abs(l-level) < math.Abs(nearest-level) {
			nearest = l
		}
	}
	return serviceLevelZScores[nearest]
}

// SafetyStock computes the buffer inventory for a target service level.
// With lead-time variability it uses the combined-variance form
// Z * sqrt(LT*σD² + D²*σLT²); otherwise Z * σD * sqrt(LT). The result is
// rounded up so rounding never under-provisions the buffer.
func SafetyStock(avgDailyDemand, demandStdDev, leadTimeDays, leadTimeVariability, serviceLevel float64) float64 {
	if serviceLevel <= 0 {
		serviceLevel = DefaultServiceLevel
	}
	z := ServiceLevelZ(serviceLevel)

	var raw float64
	if leadTimeVariability > 0 {
		raw = z * math.Sqrt(leadTimeDays*demandStdDev*demandStdDev+
			avgDailyDemand*avgDailyDemand*leadTimeVariability*leadTimeVariability)
	} else {
		raw = z * demandStdDev * math.Sqrt(leadTimeDays)
	}
	return math.Ceil(math.Max(0, raw))
}

// ReorderPoint is the stock level at which a new order must be placed:
// expected demand over the lead time plus safety stock.
func ReorderPoint(avgDailyDemand, leadTimeDays, safetyStock float64) float64 {
	return math.Ceil(math.Max(0, avgDailyDemand*leadTimeDays+safetyStock))
}

// MaxStock is the replenish-up-to level: a multiple of lead-time demand plus
// safety stock.
func MaxStock(avgDailyDemand, leadTimeDays, safetyStock, multiplier float64) float64 {
	if multiplier <= 0 {
		multiplier = DefaultMaxStockMultiplier
	}
	return math.Ceil(math.Max(0, avgDailyDemand*leadTimeDays*multiplier+safetyStock))
}

// EOQ is the classic economic order quantity, the order size minimizing
// combined ordering and holding cost. Returns 0 for any non-positive input,
// where the formula is undefined.
func EOQ(annualDemand, orderingCost, holdingCost float64) float64 {
	if annualDemand <= 0 || orderingCost <= 0 || holdingCost <= 0 {
		return 0
	}
	return math.Ceil(math.Sqrt(2 * annualDemand * orderingCost / holdingCost))
}

// DiscountTier is a quantity break offered by a supplier.
type DiscountTier struct {
	MinQuantity float64 `json:"min_quantity"`
	UnitCost    float64 `json:"unit_cost"`
}

// EOQWithQuantityDiscounts evaluates the base EOQ plus each discount tier's
// minimum-quantity point and returns the candidate with the lowest total
// annual cost (purchase + ordering + holding).
func EOQWithQuantityDiscounts(annualDemand, orderingCost, holdingCost, unitCost float64, tiers []DiscountTier) float64 {
	base := EOQ(annualDemand, orderingCost, holdingCost)
	if base == 0 {
		return 0
	}

	totalCost := func(qty, unit float64) float64 {
		return annualDemand*unit + (annualDemand/qty)*orderingCost + (qty/2)*holdingCost
	}

	bestQty := base
	bestCost := totalCost(base, unitCost)
	for _, tier := range tiers {
		if tier.MinQuantity <= 0 {
			continue
		}
		qty := math.Ceil(tier.MinQuantity)
		if cost := totalCost(qty, tier.UnitCost); cost < bestCost {
			bestCost = cost
			bestQty = qty
		}
	}
	return bestQty
}

// ReorderQuantity is the amount needed to reach max stock, capped by the EOQ
// when one is supplied (eoq <= 0 means no cap).
func ReorderQuantity(currentStock, maxStock, eoq float64) float64 {
	qty := math.Max(0, maxStock-currentStock)
	if eoq > 0 && eoq < qty {
		qty = eoq
	}
	return math.Ceil(qty)
}

// DaysUntilStockout is how many whole days the current stock covers.
// Returns domain.StockoutNever when demand is zero and 0 when stock is
// already depleted.
func DaysUntilStockout(currentStock, avgDailyDemand float64) int {
	if currentStock <= 0 {
		return 0
	}
	if avgDailyDemand <= 0 {
		return domain.StockoutNever
	}
	return int(math.Floor(currentStock / avgDailyDemand))
}
