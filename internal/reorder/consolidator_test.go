package reorder

import (
	"testing"
	"time"

	"github.com/prasetyowira/stockcast/backend-go/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func suggestion(productID, supplierID string, qty, unitCost float64) domain.ReorderSuggestion {
	return domain.ReorderSuggestion{
		ProductID:         productID,
		ProductName:       "Product " + productID,
		SupplierID:        supplierID,
		WarehouseID:       "wh-1",
		SuggestedQuantity: qty,
		UnitCost:          unitCost,
		EstimatedCost:     qty * unitCost,
		Priority:          domain.PriorityHigh,
	}
}

var orderDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func TestConsolidate_GroupsBySupplier(t *testing.T) {
	suggestions := []domain.ReorderSuggestion{
		suggestion("p1", "sup-b", 10, 2),
		suggestion("p2", "sup-a", 5, 4),
		suggestion("p3", "sup-b", 20, 1.5),
	}

	drafts := Consolidate(suggestions, nil, ConsolidateOptions{WarehouseID: "wh-1", OrderDate: orderDate})
	require.Len(t, drafts, 2)

	// Groups come out in supplier ID order.
	assert.Equal(t, "sup-a", drafts[0].SupplierID)
	assert.Equal(t, "sup-b", drafts[1].SupplierID)

	require.Len(t, drafts[0].Items, 1)
	require.Len(t, drafts[1].Items, 2)

	assert.True(t, drafts[0].TotalCost.Equal(decimal.NewFromInt(20)), drafts[0].TotalCost.String())
	assert.True(t, drafts[1].TotalCost.Equal(decimal.NewFromInt(50)), drafts[1].TotalCost.String())

	for _, d := range drafts {
		assert.NotEmpty(t, d.ID)
		assert.Equal(t, domain.POStatusDraft, d.Status)
		assert.Equal(t, "wh-1", d.WarehouseID)
		assert.Equal(t, orderDate, d.OrderDate)
	}
}

func TestConsolidate_SkipsNonPositiveQuantities(t *testing.T) {
	suggestions := []domain.ReorderSuggestion{
		suggestion("p1", "sup-a", 0, 2),
		suggestion("p2", "sup-a", -5, 2),
	}

	drafts := Consolidate(suggestions, nil, ConsolidateOptions{OrderDate: orderDate})
	assert.Empty(t, drafts)
}

func TestConsolidate_DeliveryDateFromSupplierLeadTime(t *testing.T) {
	suggestions := []domain.ReorderSuggestion{
		suggestion("p1", "sup-a", 10, 2),
		suggestion("p2", "sup-b", 10, 2),
	}
	terms := map[string]domain.SupplierTerms{
		"sup-a": {LeadTimeDays: 12},
	}

	drafts := Consolidate(suggestions, terms, ConsolidateOptions{OrderDate: orderDate, DefaultLeadTimeDays: 5})
	require.Len(t, drafts, 2)

	assert.Equal(t, orderDate.AddDate(0, 0, 12), drafts[0].ExpectedDeliveryDate)
	// No terms on record falls back to the default lead time.
	assert.Equal(t, orderDate.AddDate(0, 0, 5), drafts[1].ExpectedDeliveryDate)
}

func TestConsolidate_DropBelowMinimumValue(t *testing.T) {
	suggestions := []domain.ReorderSuggestion{
		suggestion("p1", "sup-a", 10, 2), // order value 20
		suggestion("p2", "sup-b", 10, 2),
	}
	terms := map[string]domain.SupplierTerms{
		"sup-a": {MinOrderValue: decimal.NewFromInt(100)},
	}

	drafts := Consolidate(suggestions, terms, ConsolidateOptions{OrderDate: orderDate, Policy: DropBelowMinimum})
	require.Len(t, drafts, 1)
	assert.Equal(t, "sup-b", drafts[0].SupplierID)
}

func TestConsolidate_TopUpToMinimumValue(t *testing.T) {
	suggestions := []domain.ReorderSuggestion{
		suggestion("p1", "sup-a", 10, 2), // most urgent line, value 20
		suggestion("p2", "sup-a", 5, 4),  // value 20
	}
	terms := map[string]domain.SupplierTerms{
		"sup-a": {MinOrderValue: decimal.NewFromInt(100)},
	}

	drafts := Consolidate(suggestions, terms, ConsolidateOptions{OrderDate: orderDate, Policy: TopUpToMinimum})
	require.Len(t, drafts, 1)

	d := drafts[0]
	require.Len(t, d.Items, 2)
	// Shortfall of 60 at unit cost 2 adds 30 units to the lead line.
	assert.Equal(t, 40.0, d.Items[0].Quantity)
	assert.Equal(t, 5.0, d.Items[1].Quantity)
	assert.True(t, d.TotalCost.Equal(decimal.NewFromInt(100)), d.TotalCost.String())
}

func TestConsolidate_TopUpToMinimumQuantity(t *testing.T) {
	suggestions := []domain.ReorderSuggestion{
		suggestion("p1", "sup-a", 8, 3),
		suggestion("p2", "sup-a", 4, 3),
	}
	terms := map[string]domain.SupplierTerms{
		"sup-a": {MinOrderQuantity: 20},
	}

	drafts := Consolidate(suggestions, terms, ConsolidateOptions{OrderDate: orderDate, Policy: TopUpToMinimum})
	require.Len(t, drafts, 1)

	d := drafts[0]
	assert.Equal(t, 16.0, d.Items[0].Quantity)
	assert.Equal(t, 4.0, d.Items[1].Quantity)
	assert.True(t, d.TotalCost.Equal(decimal.NewFromInt(60)), d.TotalCost.String())
}

func TestConsolidate_MinimumAlreadyMet(t *testing.T) {
	suggestions := []domain.ReorderSuggestion{
		suggestion("p1", "sup-a", 50, 2),
	}
	terms := map[string]domain.SupplierTerms{
		"sup-a": {MinOrderValue: decimal.NewFromInt(100), MinOrderQuantity: 10},
	}

	drafts := Consolidate(suggestions, terms, ConsolidateOptions{OrderDate: orderDate, Policy: DropBelowMinimum})
	require.Len(t, drafts, 1)
	assert.Equal(t, 50.0, drafts[0].Items[0].Quantity)
	assert.True(t, drafts[0].TotalCost.Equal(decimal.NewFromInt(100)))
}

func TestConsolidate_DecimalTotalsAreExact(t *testing.T) {
	// 0.1 * 3 style sums that drift under float64 arithmetic.
	suggestions := []domain.ReorderSuggestion{
		suggestion("p1", "sup-a", 3, 0.1),
		suggestion("p2", "sup-a", 3, 0.2),
	}

	drafts := Consolidate(suggestions, nil, ConsolidateOptions{OrderDate: orderDate})
	require.Len(t, drafts, 1)
	assert.True(t, drafts[0].TotalCost.Equal(decimal.RequireFromString("0.9")), drafts[0].TotalCost.String())
}
