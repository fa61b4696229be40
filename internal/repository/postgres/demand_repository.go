// backend-go/internal/repository/postgres/demand_repository.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prasetyowira/stockcast/backend-go/internal/domain"
)

type demandRepository struct {
	db *DB
}

func NewDemandRepository(db *DB) *demandRepository {
	return &demandRepository{db: db}
}

func (r *demandRepository) GetDemandHistory(ctx context.Context, productID, warehouseID string, since time.Time) ([]domain.DemandObservation, error) {
	query := `
		SELECT
			sale_date AS date,
			SUM(quantity) AS quantity,
			SUM(revenue) AS revenue
		FROM demand_history
		WHERE product_id = $1
		  AND ($2 = '' OR warehouse_id = $2)
		  AND sale_date >= $3
		GROUP BY sale_date
		ORDER BY sale_date ASC
	`

	var observations []domain.DemandObservation
	err := sqlx.SelectContext(ctx, r.db, &observations, query, productID, warehouseID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get demand history: %w", err)
	}

	return observations, nil
}

func (r *demandRepository) GetStockPositions(ctx context.Context, warehouseID string) ([]domain.StockPosition, error) {
	// Demand statistics come from the last 90 days so stale products do not
	// drag averages down forever.
	query := `
		SELECT
			p.id AS product_id,
			p.name AS product_name,
			p.supplier_id,
			sl.warehouse_id,
			sl.quantity AS current_stock,
			COALESCE(d.avg_daily_demand, 0) AS avg_daily_demand,
			COALESCE(d.demand_std_dev, 0) AS demand_std_dev,
			p.unit_cost,
			rr.id AS "rule.id",
			rr.product_id AS "rule.product_id",
			rr.supplier_id AS "rule.supplier_id",
			rr.warehouse_id AS "rule.warehouse_id",
			rr.reorder_point AS "rule.reorder_point",
			rr.reorder_quantity AS "rule.reorder_quantity",
			rr.minimum_stock AS "rule.minimum_stock",
			rr.maximum_stock AS "rule.maximum_stock",
			rr.lead_time_days AS "rule.lead_time_days",
			rr.is_active AS "rule.is_active",
			rr.auto_generate AS "rule.auto_generate",
			rr.created_at AS "rule.created_at",
			rr.updated_at AS "rule.updated_at"
		FROM reorder_rules rr
		JOIN products p ON p.id = rr.product_id
		JOIN stock_levels sl ON sl.product_id = rr.product_id AND sl.warehouse_id = rr.warehouse_id
		LEFT JOIN (
			SELECT
				product_id,
				AVG(quantity) AS avg_daily_demand,
				COALESCE(STDDEV_POP(quantity), 0) AS demand_std_dev
			FROM demand_history
			WHERE sale_date >= NOW() - INTERVAL '90 days'
			GROUP BY product_id
		) d ON d.product_id = rr.product_id
		WHERE ($1 = '' OR rr.warehouse_id = $1)
		ORDER BY p.id
	`

	var positions []domain.StockPosition
	err := sqlx.SelectContext(ctx, r.db, &positions, query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stock positions: %w", err)
	}

	return positions, nil
}
