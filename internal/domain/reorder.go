// internal/domain/reorder.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Priority classifies how urgently a reorder suggestion must be acted on.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// StockoutNever marks a product whose demand rate is zero, so the current
// stock never runs out. Kept as a sentinel instead of a huge day count so
// callers can render it as "infinite".
const StockoutNever = -1

// ReorderSuggestion is a derived, ephemeral recommendation to replenish one
// product. Recomputed on demand and never persisted.
type ReorderSuggestion struct {
	ProductID         string   `json:"product_id"`
	ProductName       string   `json:"product_name"`
	SupplierID        string   `json:"supplier_id"`
	WarehouseID       string   `json:"warehouse_id"`
	CurrentStock      float64  `json:"current_stock"`
	ReorderPoint      float64  `json:"reorder_point"`
	SuggestedQuantity float64  `json:"suggested_quantity"`
	UnitCost          float64  `json:"unit_cost"`
	EstimatedCost     float64  `json:"estimated_cost"`
	Priority          Priority `json:"priority"`
	// DaysUntilStockout is StockoutNever when demand is zero.
	DaysUntilStockout int `json:"days_until_stockout"`
}

// SupplierTerms carries the ordering constraints the consolidator applies
// per supplier group.
type SupplierTerms struct {
	SupplierID       string          `json:"supplier_id" db:"supplier_id"`
	MinOrderValue    decimal.Decimal `json:"min_order_value" db:"min_order_value"`
	MinOrderQuantity float64         `json:"min_order_quantity" db:"min_order_quantity"`
	LeadTimeDays     int             `json:"lead_time_days" db:"lead_time_days"`
}

// POStatusDraft is the only status this core ever emits; downstream
// purchasing flows move drafts through their own lifecycle.
const POStatusDraft = "draft"

// PurchaseOrderItem is one line of a consolidated draft PO.
type PurchaseOrderItem struct {
	ProductID   string          `json:"product_id" db:"product_id"`
	ProductName string          `json:"product_name" db:"product_name"`
	Quantity    float64         `json:"quantity" db:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost" db:"unit_cost"`
	TotalCost   decimal.Decimal `json:"total_cost" db:"total_cost"`
}

// PurchaseOrderDraft is the consolidated output of the PO generator, one per
// surviving supplier group.
type PurchaseOrderDraft struct {
	ID                   string              `json:"id" db:"id"`
	SupplierID           string              `json:"supplier_id" db:"supplier_id"`
	WarehouseID          string              `json:"warehouse_id" db:"warehouse_id"`
	Items                []PurchaseOrderItem `json:"items"`
	TotalCost            decimal.Decimal     `json:"total_cost" db:"total_cost"`
	Status               string              `json:"status" db:"status"`
	OrderDate            time.Time           `json:"order_date" db:"order_date"`
	ExpectedDeliveryDate time.Time           `json:"expected_delivery_date" db:"expected_delivery_date"`
}
