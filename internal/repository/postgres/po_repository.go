// backend-go/internal/repository/postgres/po_repository.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/prasetyowira/stockcast/backend-go/internal/domain"
)

type poRepository struct {
	db *DB
}

func NewPORepository(db *DB) *poRepository {
	return &poRepository{db: db}
}

func (r *poRepository) SaveDrafts(ctx context.Context, drafts []domain.PurchaseOrderDraft) error {
	if len(drafts) == 0 {
		return nil
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		draftStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO purchase_orders (
				id, supplier_id, warehouse_id, total_cost, status,
				order_date, expected_delivery_date, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare purchase order statement: %w", err)
		}
		defer draftStmt.Close()

		itemStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO purchase_order_items (
				purchase_order_id, product_id, product_name, quantity,
				unit_cost, total_cost
			) VALUES ($1, $2, $3, $4, $5, $6)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare purchase order item statement: %w", err)
		}
		defer itemStmt.Close()

		for _, draft := range drafts {
			_, err := draftStmt.ExecContext(ctx,
				draft.ID, draft.SupplierID, draft.WarehouseID, draft.TotalCost,
				draft.Status, draft.OrderDate, draft.ExpectedDeliveryDate,
			)
			if err != nil {
				return fmt.Errorf("failed to insert purchase order: %w", err)
			}

			for _, item := range draft.Items {
				_, err := itemStmt.ExecContext(ctx,
					draft.ID, item.ProductID, item.ProductName, item.Quantity,
					item.UnitCost, item.TotalCost,
				)
				if err != nil {
					return fmt.Errorf("failed to insert purchase order item: %w", err)
				}
			}
		}

		return nil
	})
}

func (r *poRepository) ListDrafts(ctx context.Context, warehouseID string) ([]domain.PurchaseOrderDraft, error) {
	query := `
		SELECT id, supplier_id, warehouse_id, total_cost, status,
			order_date, expected_delivery_date
		FROM purchase_orders
		WHERE status = $1
		  AND ($2 = '' OR warehouse_id = $2)
		ORDER BY order_date DESC, supplier_id
	`

	var drafts []domain.PurchaseOrderDraft
	if err := sqlx.SelectContext(ctx, r.db, &drafts, query, domain.POStatusDraft, warehouseID); err != nil {
		return nil, fmt.Errorf("failed to list purchase order drafts: %w", err)
	}

	for i := range drafts {
		items, err := r.listItems(ctx, drafts[i].ID)
		if err != nil {
			return nil, err
		}
		drafts[i].Items = items
	}

	return drafts, nil
}

func (r *poRepository) listItems(ctx context.Context, draftID string) ([]domain.PurchaseOrderItem, error) {
	query := `
		SELECT product_id, product_name, quantity, unit_cost, total_cost
		FROM purchase_order_items
		WHERE purchase_order_id = $1
		ORDER BY product_id
	`

	var items []domain.PurchaseOrderItem
	if err := sqlx.SelectContext(ctx, r.db, &items, query, draftID); err != nil {
		return nil, fmt.Errorf("failed to list purchase order items: %w", err)
	}

	return items, nil
}
