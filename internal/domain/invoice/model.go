// Package invoice provides sales invoices and their totals arithmetic.
package invoice

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/apperror"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/id"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/types"
)

// PaymentMethod is how the customer pays.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentCredit   PaymentMethod = "credit"
)

// Valid reports whether m is a known payment method.
// The empty method is accepted and treated as cash at the register.
func (m PaymentMethod) Valid() bool {
	switch m {
	case "", PaymentCash, PaymentCard, PaymentTransfer, PaymentCredit:
		return true
	}
	return false
}

// IsCredit reports whether payment is deferred.
func (m PaymentMethod) IsCredit() bool {
	return m == PaymentCredit
}

// PaymentStatus tracks whether the invoice has been settled.
type PaymentStatus string

const (
	StatusPaid    PaymentStatus = "paid"
	StatusPartial PaymentStatus = "partial"
	StatusPending PaymentStatus = "pending"
)

// InvoiceItem is one line of an invoice. UnitPrice and UnitCost are
// captured at sale time so later catalog changes do not rewrite history.
type InvoiceItem struct {
	ID        id.ID       `db:"id" json:"id"`
	InvoiceID id.ID       `db:"invoice_id" json:"invoiceId"`
	ProductID id.ID       `db:"product_id" json:"productId"`
	Name      string      `db:"name" json:"name"`
	Quantity  int         `db:"quantity" json:"quantity"`
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`
	UnitCost  types.Money `db:"unit_cost" json:"unitCost"`
	LineTotal types.Money `db:"line_total" json:"lineTotal"`
}

// Invoice is a sales invoice header with its items.
type Invoice struct {
	ID            id.ID         `db:"id" json:"id"`
	Number        string        `db:"number" json:"number"`
	CustomerID    *id.ID        `db:"customer_id" json:"customerId,omitempty"`
	UserID        string        `db:"user_id" json:"userId,omitempty"`
	Date          time.Time     `db:"date" json:"date"`
	PaymentMethod PaymentMethod `db:"payment_method" json:"paymentMethod"`
	PaymentStatus PaymentStatus `db:"payment_status" json:"paymentStatus"`
	Subtotal      types.Money   `db:"subtotal" json:"subtotal"`
	Tax           types.Money   `db:"tax" json:"tax"`
	Discount      types.Money   `db:"discount" json:"discount"`
	Total         types.Money   `db:"total" json:"total"`
	Notes         string        `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time     `db:"created_at" json:"createdAt"`

	Items []InvoiceItem `db:"-" json:"items,omitempty"`
}

// NewInvoice creates an invoice header. Credit sales start pending,
// everything else is settled at the register.
func NewInvoice(date time.Time, method PaymentMethod) *Invoice {
	status := StatusPaid
	if method.IsCredit() {
		status = StatusPending
	}
	return &Invoice{
		ID:            id.New(),
		Date:          date,
		PaymentMethod: method,
		PaymentStatus: status,
		Subtotal:      types.Zero(),
		Tax:           types.Zero(),
		Discount:      types.Zero(),
		Total:         types.Zero(),
		CreatedAt:     time.Now().UTC(),
	}
}

// AddItem appends a line. LineTotal is derived, never supplied.
func (inv *Invoice) AddItem(productID id.ID, name string, quantity int, unitPrice, unitCost types.Money) *InvoiceItem {
	item := InvoiceItem{
		ID:        id.New(),
		InvoiceID: inv.ID,
		ProductID: productID,
		Name:      name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		UnitCost:  unitCost,
		LineTotal: unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
	inv.Items = append(inv.Items, item)
	return &inv.Items[len(inv.Items)-1]
}

// RecalculateTotals recomputes subtotal, tax and total from the items.
//
//	subtotal = sum(quantity * unitPrice)
//	tax      = round(subtotal * vatRate, 2)
//	total    = subtotal + tax - discount
//
// Tax rounds once on the invoice subtotal, not per line.
func (inv *Invoice) RecalculateTotals(vatRate decimal.Decimal) {
	subtotal := types.Zero()
	for i := range inv.Items {
		inv.Items[i].LineTotal = inv.Items[i].UnitPrice.Mul(decimal.NewFromInt(int64(inv.Items[i].Quantity)))
		subtotal = subtotal.Add(inv.Items[i].LineTotal)
	}
	inv.Subtotal = subtotal
	inv.Tax = types.RoundMoney(subtotal.Mul(vatRate))
	inv.Total = inv.Subtotal.Add(inv.Tax).Sub(inv.Discount)
}

// CostTotal returns the summed acquisition cost of the items, used for
// the COGS and inventory postings.
func (inv *Invoice) CostTotal() types.Money {
	total := types.Zero()
	for i := range inv.Items {
		total = total.Add(inv.Items[i].UnitCost.Mul(decimal.NewFromInt(int64(inv.Items[i].Quantity))))
	}
	return total
}

// Validate checks invoice invariants before persisting.
func (inv *Invoice) Validate(ctx context.Context) error {
	if inv.Date.IsZero() {
		return apperror.NewValidation("invoice date is required").
			WithDetail("field", "date")
	}
	if !inv.PaymentMethod.Valid() {
		return apperror.NewValidation("invalid payment method").
			WithDetail("field", "paymentMethod").
			WithDetail("value", string(inv.PaymentMethod))
	}
	if len(inv.Items) == 0 {
		return apperror.NewValidation("invoice must have at least one item").
			WithDetail("field", "items")
	}
	if inv.Discount.IsNegative() {
		return apperror.NewValidation("discount cannot be negative").
			WithDetail("field", "discount")
	}
	for i := range inv.Items {
		item := &inv.Items[i]
		if item.Quantity <= 0 {
			return apperror.NewValidation("item quantity must be positive").
				WithDetail("field", "items").
				WithDetail("product", item.Name).
				WithDetail("quantity", item.Quantity)
		}
		if item.UnitPrice.IsNegative() {
			return apperror.NewValidation("item price cannot be negative").
				WithDetail("field", "items").
				WithDetail("product", item.Name)
		}
	}
	return nil
}
