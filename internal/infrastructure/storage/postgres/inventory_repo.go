package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/apperror"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/id"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/inventory"
)

const (
	productsTable  = "products"
	movementsTable = "inventory_movements"
)

// InventoryRepo implements inventory.Repository.
type InventoryRepo struct {
	txm     *TxManager
	builder squirrel.StatementBuilderType
}

// NewInventoryRepo creates an inventory repository.
func NewInventoryRepo(txm *TxManager) *InventoryRepo {
	return &InventoryRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var _ inventory.Repository = (*InventoryRepo)(nil)

var productColumns = []string{
	"id", "code", "name", "description", "category",
	"unit_price", "cost", "stock", "min_stock", "active",
	"created_at", "updated_at",
}

// CreateProduct inserts a product.
func (r *InventoryRepo) CreateProduct(ctx context.Context, product *inventory.Product) error {
	q := r.builder.Insert(productsTable).
		Columns(productColumns...).
		Values(
			product.ID, product.Code, product.Name, product.Description, product.Category,
			product.UnitPrice, product.Cost, product.Stock, product.MinStock, product.Active,
			product.CreatedAt, product.UpdatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// UpdateProduct updates catalog fields. Stock is excluded: it changes
// only through IncrementStock and DecrementStock.
func (r *InventoryRepo) UpdateProduct(ctx context.Context, product *inventory.Product) error {
	q := r.builder.Update(productsTable).
		Set("code", product.Code).
		Set("name", product.Name).
		Set("description", product.Description).
		Set("category", product.Category).
		Set("unit_price", product.UnitPrice).
		Set("cost", product.Cost).
		Set("min_stock", product.MinStock).
		Set("active", product.Active).
		Set("updated_at", product.UpdatedAt).
		Where(squirrel.Eq{"id": product.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("product", product.ID)
	}
	return nil
}

// GetProduct returns a product by ID.
func (r *InventoryRepo) GetProduct(ctx context.Context, productID id.ID) (*inventory.Product, error) {
	return r.getProduct(ctx, squirrel.Eq{"id": productID}, productID)
}

// GetProductByCode returns a product by catalog code.
func (r *InventoryRepo) GetProductByCode(ctx context.Context, code string) (*inventory.Product, error) {
	return r.getProduct(ctx, squirrel.Eq{"code": code}, code)
}

func (r *InventoryRepo) getProduct(ctx context.Context, where squirrel.Eq, key any) (*inventory.Product, error) {
	q := r.builder.Select(productColumns...).
		From(productsTable).
		Where(where).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var product inventory.Product
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &product, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("product", key)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &product, nil
}

// ListProducts returns products matching the filter.
func (r *InventoryRepo) ListProducts(ctx context.Context, filter inventory.ProductFilter) ([]inventory.Product, error) {
	q := r.builder.Select(productColumns...).
		From(productsTable).
		OrderBy("code")

	if filter.ActiveOnly {
		q = q.Where(squirrel.Eq{"active": true})
	}
	if filter.Category != "" {
		q = q.Where(squirrel.Eq{"category": filter.Category})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"code": pattern},
		})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var products []inventory.Product
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &products, sql, args...); err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	return products, nil
}

// ListLowStock returns active products at or below their threshold.
func (r *InventoryRepo) ListLowStock(ctx context.Context) ([]inventory.Product, error) {
	q := r.builder.Select(productColumns...).
		From(productsTable).
		Where(squirrel.Eq{"active": true}).
		Where("stock <= min_stock").
		OrderBy("stock")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var products []inventory.Product
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &products, sql, args...); err != nil {
		return nil, fmt.Errorf("select low stock: %w", err)
	}
	return products, nil
}

// GetProductsForSale loads the sale's products in one query.
func (r *InventoryRepo) GetProductsForSale(ctx context.Context, ids []id.ID) (map[id.ID]*inventory.Product, error) {
	if len(ids) == 0 {
		return map[id.ID]*inventory.Product{}, nil
	}

	q := r.builder.Select(productColumns...).
		From(productsTable).
		Where(squirrel.Eq{"id": ids})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var products []inventory.Product
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &products, sql, args...); err != nil {
		return nil, fmt.Errorf("select sale products: %w", err)
	}

	out := make(map[id.ID]*inventory.Product, len(products))
	for i := range products {
		out[products[i].ID] = &products[i]
	}
	return out, nil
}

// DecrementStock decreases stock only when enough remains. The guard in
// the WHERE clause makes check and decrement one atomic statement; the
// affected-rows count tells the caller whether it won.
func (r *InventoryRepo) DecrementStock(ctx context.Context, productID id.ID, quantity int) (bool, error) {
	sql := `
		UPDATE products
		SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock >= $2
	`

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, productID, quantity)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// IncrementStock increases stock unconditionally.
func (r *InventoryRepo) IncrementStock(ctx context.Context, productID id.ID, quantity int) error {
	sql := `
		UPDATE products
		SET stock = stock + $2, updated_at = now()
		WHERE id = $1
	`

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, productID, quantity)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("product", productID)
	}
	return nil
}

// CreateMovement inserts a movement row.
func (r *InventoryRepo) CreateMovement(ctx context.Context, movement *inventory.InventoryMovement) error {
	q := r.builder.Insert(movementsTable).
		Columns("id", "product_id", "user_id", "type", "quantity", "date", "notes", "created_at").
		Values(
			movement.ID, movement.ProductID, movement.UserID, movement.Type,
			movement.Quantity, movement.Date, movement.Notes, movement.CreatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// ListMovements returns the movement trail, newest first.
func (r *InventoryRepo) ListMovements(ctx context.Context, filter inventory.MovementFilter) ([]inventory.InventoryMovement, error) {
	q := r.builder.Select(
		"id", "product_id", "user_id", "type", "quantity", "date", "notes", "created_at",
	).From(movementsTable)

	if filter.ProductID != nil {
		q = q.Where(squirrel.Eq{"product_id": *filter.ProductID})
	}
	if filter.Type != nil {
		q = q.Where(squirrel.Eq{"type": *filter.Type})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	q = q.OrderBy("date DESC", "created_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var movements []inventory.InventoryMovement
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("select movements: %w", err)
	}
	return movements, nil
}
