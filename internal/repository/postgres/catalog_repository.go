// backend-go/internal/repository/postgres/catalog_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/prasetyowira/stockcast/backend-go/internal/domain"
)

// ErrProductNotFound is returned when a product ID does not exist.
var ErrProductNotFound = errors.New("product not found")

type catalogRepository struct {
	db *DB
}

func NewCatalogRepository(db *DB) *catalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	query := `
		SELECT id, sku, name, unit_cost, supplier_id, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var product domain.Product
	err := sqlx.GetContext(ctx, r.db, &product, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

func (r *catalogRepository) ListProducts(ctx context.Context, search string, limit, offset int) ([]*domain.Product, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, sku, name, unit_cost, supplier_id, created_at, updated_at
		FROM products
		WHERE ($1 = '' OR sku ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%')
		ORDER BY sku ASC
		LIMIT $2 OFFSET $3
	`

	var products []*domain.Product
	if err := sqlx.SelectContext(ctx, r.db, &products, query, search, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

func (r *catalogRepository) GetSuppliers(ctx context.Context) ([]*domain.Supplier, error) {
	query := `
		SELECT id, name, lead_time_days, created_at, updated_at
		FROM suppliers
		ORDER BY name
	`

	var suppliers []*domain.Supplier
	if err := sqlx.SelectContext(ctx, r.db, &suppliers, query); err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}

	return suppliers, nil
}

func (r *catalogRepository) GetSupplierTerms(ctx context.Context, supplierIDs []string) (map[string]domain.SupplierTerms, error) {
	if len(supplierIDs) == 0 {
		return map[string]domain.SupplierTerms{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT supplier_id, min_order_value, min_order_quantity, lead_time_days
		FROM supplier_terms
		WHERE supplier_id IN (?)
	`, supplierIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build supplier terms query: %w", err)
	}

	var rows []domain.SupplierTerms
	if err := sqlx.SelectContext(ctx, r.db, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get supplier terms: %w", err)
	}

	terms := make(map[string]domain.SupplierTerms, len(rows))
	for _, t := range rows {
		terms[t.SupplierID] = t
	}

	return terms, nil
}
