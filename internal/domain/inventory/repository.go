package inventory

import (
	"context"
	"time"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/id"
)

// ProductFilter narrows product queries.
type ProductFilter struct {
	Category   string
	Search     string
	ActiveOnly bool
	Limit      int
	Offset     int
}

// MovementFilter narrows movement queries.
type MovementFilter struct {
	ProductID *id.ID
	Type      *MovementType
	DateFrom  *time.Time
	DateTo    *time.Time
	Limit     int
	Offset    int
}

// Repository is the persistence contract for products and movements.
type Repository interface {
	CreateProduct(ctx context.Context, product *Product) error
	UpdateProduct(ctx context.Context, product *Product) error
	GetProduct(ctx context.Context, productID id.ID) (*Product, error)
	GetProductByCode(ctx context.Context, code string) (*Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error)
	ListLowStock(ctx context.Context) ([]Product, error)

	// GetProductsForSale loads all products referenced by a sale in one
	// round trip, keyed by ID. Missing IDs are simply absent from the map.
	GetProductsForSale(ctx context.Context, ids []id.ID) (map[id.ID]*Product, error)

	// DecrementStock atomically decreases stock if enough remains.
	// Returns false when the guard fails, without changing anything.
	DecrementStock(ctx context.Context, productID id.ID, quantity int) (bool, error)
	IncrementStock(ctx context.Context, productID id.ID, quantity int) error

	CreateMovement(ctx context.Context, movement *InventoryMovement) error
	ListMovements(ctx context.Context, filter MovementFilter) ([]InventoryMovement, error)
}
