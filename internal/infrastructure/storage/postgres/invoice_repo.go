package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/apperror"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/id"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/invoice"
)

const (
	invoicesTable     = "invoices"
	invoiceItemsTable = "invoice_items"
)

// InvoiceRepo implements invoice.Repository.
type InvoiceRepo struct {
	txm     *TxManager
	builder squirrel.StatementBuilderType
}

// NewInvoiceRepo creates an invoice repository.
func NewInvoiceRepo(txm *TxManager) *InvoiceRepo {
	return &InvoiceRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var _ invoice.Repository = (*InvoiceRepo)(nil)

var invoiceColumns = []string{
	"id", "number", "customer_id", "user_id", "date",
	"payment_method", "payment_status",
	"subtotal", "tax", "discount", "total", "notes", "created_at",
}

// Create inserts an invoice header.
func (r *InvoiceRepo) Create(ctx context.Context, inv *invoice.Invoice) error {
	q := r.builder.Insert(invoicesTable).
		Columns(invoiceColumns...).
		Values(
			inv.ID, inv.Number, inv.CustomerID, inv.UserID, inv.Date,
			inv.PaymentMethod, inv.PaymentStatus,
			inv.Subtotal, inv.Tax, inv.Discount, inv.Total, inv.Notes, inv.CreatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// SaveItems batch inserts invoice lines.
func (r *InvoiceRepo) SaveItems(ctx context.Context, items []invoice.InvoiceItem) error {
	if len(items) == 0 {
		return nil
	}

	q := r.builder.Insert(invoiceItemsTable).Columns(
		"id", "invoice_id", "product_id", "name",
		"quantity", "unit_price", "unit_cost", "line_total",
	)
	for _, item := range items {
		q = q.Values(
			item.ID, item.InvoiceID, item.ProductID, item.Name,
			item.Quantity, item.UnitPrice, item.UnitCost, item.LineTotal,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert invoice items: %w", err)
	}
	return nil
}

// UpdateTotals persists the recalculated totals.
func (r *InvoiceRepo) UpdateTotals(ctx context.Context, inv *invoice.Invoice) error {
	q := r.builder.Update(invoicesTable).
		Set("subtotal", inv.Subtotal).
		Set("tax", inv.Tax).
		Set("discount", inv.Discount).
		Set("total", inv.Total).
		Where(squirrel.Eq{"id": inv.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("invoice", inv.ID)
	}
	return nil
}

// UpdateStatus changes the payment status.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, invoiceID id.ID, status invoice.PaymentStatus) error {
	q := r.builder.Update(invoicesTable).
		Set("payment_status", status).
		Where(squirrel.Eq{"id": invoiceID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("invoice", invoiceID)
	}
	return nil
}

// GetByID returns an invoice with its items.
func (r *InvoiceRepo) GetByID(ctx context.Context, invoiceID id.ID) (*invoice.Invoice, error) {
	return r.get(ctx, squirrel.Eq{"id": invoiceID}, invoiceID)
}

// GetByNumber returns an invoice by number with its items.
func (r *InvoiceRepo) GetByNumber(ctx context.Context, number string) (*invoice.Invoice, error) {
	return r.get(ctx, squirrel.Eq{"number": number}, number)
}

func (r *InvoiceRepo) get(ctx context.Context, where squirrel.Eq, key any) (*invoice.Invoice, error) {
	q := r.builder.Select(invoiceColumns...).
		From(invoicesTable).
		Where(where).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var inv invoice.Invoice
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &inv, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("invoice", key)
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}

	items, err := r.loadItems(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	return &inv, nil
}

func (r *InvoiceRepo) loadItems(ctx context.Context, invoiceID id.ID) ([]invoice.InvoiceItem, error) {
	q := r.builder.Select(
		"id", "invoice_id", "product_id", "name",
		"quantity", "unit_price", "unit_cost", "line_total",
	).From(invoiceItemsTable).
		Where(squirrel.Eq{"invoice_id": invoiceID}).
		OrderBy("id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []invoice.InvoiceItem
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("select invoice items: %w", err)
	}
	return items, nil
}

// List returns invoice headers matching the filter, newest first.
// Items are not loaded for listings.
func (r *InvoiceRepo) List(ctx context.Context, filter invoice.Filter) ([]invoice.Invoice, error) {
	q := r.builder.Select(invoiceColumns...).
		From(invoicesTable)

	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"payment_status": *filter.Status})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	q = q.OrderBy("date DESC", "number DESC")
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

	var invoices []invoice.Invoice
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &invoices, sql, args...); err != nil {
		return nil, fmt.Errorf("select invoices: %w", err)
	}
	return invoices, nil
}
