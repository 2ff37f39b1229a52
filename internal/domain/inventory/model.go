// Package inventory provides the product catalog and stock tracking.
package inventory

import (
	"context"
	"time"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/apperror"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/id"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/types"
)

// Product is a catalog item with pricing and stock.
type Product struct {
	ID          id.ID       `db:"id" json:"id"`
	Code        string      `db:"code" json:"code"`
	Name        string      `db:"name" json:"name"`
	Description string      `db:"description" json:"description,omitempty"`
	Category    string      `db:"category" json:"category,omitempty"`
	UnitPrice   types.Money `db:"unit_price" json:"unitPrice"`
	Cost        types.Money `db:"cost" json:"cost"`
	Stock       int         `db:"stock" json:"stock"`
	MinStock    int         `db:"min_stock" json:"minStock"`
	Active      bool        `db:"active" json:"active"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updatedAt"`
}

// NewProduct creates a product with a generated ID.
func NewProduct(code, name string) *Product {
	now := time.Now().UTC()
	return &Product{
		ID:        id.New(),
		Code:      code,
		Name:      name,
		UnitPrice: types.Zero(),
		Cost:      types.Zero(),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsLowStock reports whether stock is at or below the reorder threshold.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}

// Validate checks product invariants.
func (p *Product) Validate(ctx context.Context) error {
	if p.Code == "" {
		return apperror.NewValidation("product code is required").
			WithDetail("field", "code")
	}
	if p.Name == "" {
		return apperror.NewValidation("product name is required").
			WithDetail("field", "name")
	}
	if p.UnitPrice.IsNegative() {
		return apperror.NewValidation("unit price cannot be negative").
			WithDetail("field", "unitPrice")
	}
	if p.Cost.IsNegative() {
		return apperror.NewValidation("cost cannot be negative").
			WithDetail("field", "cost")
	}
	if p.Stock < 0 {
		return apperror.NewValidation("stock cannot be negative").
			WithDetail("field", "stock")
	}
	if p.MinStock < 0 {
		return apperror.NewValidation("minimum stock cannot be negative").
			WithDetail("field", "minStock")
	}
	return nil
}

// MovementType classifies stock movements.
type MovementType string

const (
	MovementPurchase      MovementType = "purchase"
	MovementSale          MovementType = "sale"
	MovementAdjustmentIn  MovementType = "adjustment_in"
	MovementAdjustmentOut MovementType = "adjustment_out"
)

// Valid reports whether t is a known movement type.
func (t MovementType) Valid() bool {
	switch t {
	case MovementPurchase, MovementSale, MovementAdjustmentIn, MovementAdjustmentOut:
		return true
	}
	return false
}

// IsOutgoing reports whether the movement decreases stock.
func (t MovementType) IsOutgoing() bool {
	return t == MovementSale || t == MovementAdjustmentOut
}

// InventoryMovement is the audit trail row for every stock change.
// Quantity is always positive; direction comes from the type.
type InventoryMovement struct {
	ID        id.ID        `db:"id" json:"id"`
	ProductID id.ID        `db:"product_id" json:"productId"`
	UserID    string       `db:"user_id" json:"userId,omitempty"`
	Type      MovementType `db:"type" json:"type"`
	Quantity  int          `db:"quantity" json:"quantity"`
	Date      time.Time    `db:"date" json:"date"`
	Notes     string       `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time    `db:"created_at" json:"createdAt"`
}

// NewMovement creates a movement row.
func NewMovement(productID id.ID, movementType MovementType, quantity int, date time.Time, notes string) *InventoryMovement {
	return &InventoryMovement{
		ID:        id.New(),
		ProductID: productID,
		Type:      movementType,
		Quantity:  quantity,
		Date:      date,
		Notes:     notes,
		CreatedAt: time.Now().UTC(),
	}
}

// Validate checks movement invariants.
func (m *InventoryMovement) Validate(ctx context.Context) error {
	if id.IsNil(m.ProductID) {
		return apperror.NewValidation("movement product is required").
			WithDetail("field", "productId")
	}
	if !m.Type.Valid() {
		return apperror.NewValidation("invalid movement type").
			WithDetail("field", "type").
			WithDetail("value", string(m.Type))
	}
	if m.Quantity <= 0 {
		return apperror.NewValidation("movement quantity must be positive").
			WithDetail("field", "quantity").
			WithDetail("value", m.Quantity)
	}
	if m.Date.IsZero() {
		return apperror.NewValidation("movement date is required").
			WithDetail("field", "date")
	}
	return nil
}
