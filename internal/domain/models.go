// internal/domain/models.go
package domain

import "time"

// Product represents a catalog entry
type Product struct {
	ID         string    `json:"id" db:"id"`
	SKU        string    `json:"sku" db:"sku"`
	Name       string    `json:"name" db:"name"`
	UnitCost   float64   `json:"unit_cost" db:"unit_cost"`
	SupplierID string    `json:"supplier_id" db:"supplier_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Supplier represents a supplier the purchasing flow orders from
type Supplier struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	LeadTimeDays int       `json:"lead_time_days" db:"lead_time_days"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Warehouse represents a stocking location
type Warehouse struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// DemandObservation is one historical demand data point for a product.
// Sequences are chronologically ascending; the loader is responsible for
// deduplicating same-date rows before handing them to the forecasting core.
type DemandObservation struct {
	Date     time.Time `json:"date" db:"date"`
	Quantity float64   `json:"quantity" db:"quantity"`
	Revenue  float64   `json:"revenue" db:"revenue"`
}

// ReorderRule is the per product-supplier replenishment configuration.
// The forecasting core only reads rules; CRUD happens through the rule
// management API.
type ReorderRule struct {
	ID              int64     `json:"id" db:"id"`
	ProductID       string    `json:"product_id" db:"product_id"`
	SupplierID      string    `json:"supplier_id" db:"supplier_id"`
	WarehouseID     string    `json:"warehouse_id" db:"warehouse_id"`
	ReorderPoint    float64   `json:"reorder_point" db:"reorder_point"`
	ReorderQuantity float64   `json:"reorder_quantity" db:"reorder_quantity"`
	MinimumStock    float64   `json:"minimum_stock" db:"minimum_stock"`
	MaximumStock    float64   `json:"maximum_stock" db:"maximum_stock"`
	LeadTimeDays    int       `json:"lead_time_days" db:"lead_time_days"`
	IsActive        bool      `json:"is_active" db:"is_active"`
	AutoGenerate    bool      `json:"auto_generate" db:"auto_generate"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// StockPosition is the per-product snapshot the suggestion generator
// consumes: current stock joined with demand statistics and the active rule.
type StockPosition struct {
	ProductID      string      `json:"product_id" db:"product_id"`
	ProductName    string      `json:"product_name" db:"product_name"`
	SupplierID     string      `json:"supplier_id" db:"supplier_id"`
	WarehouseID    string      `json:"warehouse_id" db:"warehouse_id"`
	CurrentStock   float64     `json:"current_stock" db:"current_stock"`
	AvgDailyDemand float64     `json:"avg_daily_demand" db:"avg_daily_demand"`
	DemandStdDev   float64     `json:"demand_std_dev" db:"demand_std_dev"`
	UnitCost       float64     `json:"unit_cost" db:"unit_cost"`
	Rule           ReorderRule `json:"rule"`
}
