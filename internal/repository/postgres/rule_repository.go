// backend-go/internal/repository/postgres/rule_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/prasetyowira/stockcast/backend-go/internal/domain"
)

// ErrRuleNotFound is returned when a rule ID does not exist.
var ErrRuleNotFound = errors.New("reorder rule not found")

type ruleRepository struct {
	db *DB
}

func NewRuleRepository(db *DB) *ruleRepository {
	return &ruleRepository{db: db}
}

func (r *ruleRepository) ListRules(ctx context.Context, productID string, activeOnly bool) ([]domain.ReorderRule, error) {
	query := `
		SELECT id, product_id, supplier_id, warehouse_id, reorder_point,
			reorder_quantity, minimum_stock, maximum_stock, lead_time_days,
			is_active, auto_generate, created_at, updated_at
		FROM reorder_rules
		WHERE ($1 = '' OR product_id = $1)
		  AND (NOT $2 OR is_active)
		ORDER BY product_id, warehouse_id
	`

	var rules []domain.ReorderRule
	if err := sqlx.SelectContext(ctx, r.db, &rules, query, productID, activeOnly); err != nil {
		return nil, fmt.Errorf("failed to list reorder rules: %w", err)
	}

	return rules, nil
}

func (r *ruleRepository) GetRule(ctx context.Context, id int64) (*domain.ReorderRule, error) {
	query := `
		SELECT id, product_id, supplier_id, warehouse_id, reorder_point,
			reorder_quantity, minimum_stock, maximum_stock, lead_time_days,
			is_active, auto_generate, created_at, updated_at
		FROM reorder_rules
		WHERE id = $1
	`

	var rule domain.ReorderRule
	err := sqlx.GetContext(ctx, r.db, &rule, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reorder rule: %w", err)
	}

	return &rule, nil
}

func (r *ruleRepository) CreateRule(ctx context.Context, rule *domain.ReorderRule) error {
	query := `
		INSERT INTO reorder_rules (
			product_id, supplier_id, warehouse_id, reorder_point,
			reorder_quantity, minimum_stock, maximum_stock, lead_time_days,
			is_active, auto_generate, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		rule.ProductID, rule.SupplierID, rule.WarehouseID, rule.ReorderPoint,
		rule.ReorderQuantity, rule.MinimumStock, rule.MaximumStock,
		rule.LeadTimeDays, rule.IsActive, rule.AutoGenerate,
	).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create reorder rule: %w", err)
	}

	return nil
}

func (r *ruleRepository) UpdateRule(ctx context.Context, rule *domain.ReorderRule) error {
	query := `
		UPDATE reorder_rules SET
			supplier_id = $2,
			warehouse_id = $3,
			reorder_point = $4,
			reorder_quantity = $5,
			minimum_stock = $6,
			maximum_stock = $7,
			lead_time_days = $8,
			is_active = $9,
			auto_generate = $10,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		rule.ID, rule.SupplierID, rule.WarehouseID, rule.ReorderPoint,
		rule.ReorderQuantity, rule.MinimumStock, rule.MaximumStock,
		rule.LeadTimeDays, rule.IsActive, rule.AutoGenerate,
	).Scan(&rule.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRuleNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update reorder rule: %w", err)
	}

	return nil
}

func (r *ruleRepository) DeleteRule(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reorder_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reorder rule: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrRuleNotFound
	}

	return nil
}
