// backend-go/internal/repository/repository.go
package repository

import (
	"context"
	"time"

	"github.com/prasetyowira/stockcast/backend-go/internal/domain"
)

type DemandRepository interface {
	// GetDemandHistory returns one observation per day, ascending by date,
	// starting at since.
	GetDemandHistory(ctx context.Context, productID, warehouseID string, since time.Time) ([]domain.DemandObservation, error)
	GetStockPositions(ctx context.Context, warehouseID string) ([]domain.StockPosition, error)
}

type ReorderRuleRepository interface {
	ListRules(ctx context.Context, productID string, activeOnly bool) ([]domain.ReorderRule, error)
	GetRule(ctx context.Context, id int64) (*domain.ReorderRule, error)
	CreateRule(ctx context.Context, rule *domain.ReorderRule) error
	UpdateRule(ctx context.Context, rule *domain.ReorderRule) error
	DeleteRule(ctx context.Context, id int64) error
}

type CatalogRepository interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context, search string, limit, offset int) ([]*domain.Product, error)
	GetSuppliers(ctx context.Context) ([]*domain.Supplier, error)
	// GetSupplierTerms returns the ordering constraints for the given
	// suppliers, keyed by supplier ID. Suppliers without terms on record are
	// absent from the map.
	GetSupplierTerms(ctx context.Context, supplierIDs []string) (map[string]domain.SupplierTerms, error)
}

type PORepository interface {
	SaveDrafts(ctx context.Context, drafts []domain.PurchaseOrderDraft) error
	ListDrafts(ctx context.Context, warehouseID string) ([]domain.PurchaseOrderDraft, error)
}
