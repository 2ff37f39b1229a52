package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/types"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/ledger"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/reports"
)

// ReportRepo implements reports.Repository with SQL aggregates.
// Every query is a plain read; nothing here writes.
type ReportRepo struct {
	txm *TxManager
}

// NewReportRepo creates a report repository.
func NewReportRepo(txm *TxManager) *ReportRepo {
	return &ReportRepo{txm: txm}
}

var _ reports.Repository = (*ReportRepo)(nil)

// SalesSums aggregates invoices for a period in one pass.
func (r *ReportRepo) SalesSums(ctx context.Context, period reports.Period) (reports.SalesSums, error) {
	sums := reports.SalesSums{
		Total:        types.Zero(),
		PaidTotal:    types.Zero(),
		PendingTotal: types.Zero(),
		ByMethod:     make(map[string]types.Money),
	}

	querier := r.txm.GetQuerier(ctx)

	sql := `
		SELECT
			COALESCE(SUM(total), 0),
			COUNT(*),
			COALESCE(SUM(CASE WHEN payment_status = 'paid' THEN total ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN payment_status <> 'paid' THEN total ELSE 0 END), 0)
		FROM invoices
		WHERE date >= $1 AND date <= $2
	`
	err := querier.QueryRow(ctx, sql, period.From, period.To).
		Scan(&sums.Total, &sums.Count, &sums.PaidTotal, &sums.PendingTotal)
	if err != nil && err != pgx.ErrNoRows {
		return sums, fmt.Errorf("sum sales: %w", err)
	}

	methodSQL := `
		SELECT payment_method, COALESCE(SUM(total), 0)
		FROM invoices
		WHERE date >= $1 AND date <= $2
		GROUP BY payment_method
	`
	rows, err := querier.Query(ctx, methodSQL, period.From, period.To)
	if err != nil {
		return sums, fmt.Errorf("sum sales by method: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var method string
		var total types.Money
		if err := rows.Scan(&method, &total); err != nil {
			return sums, fmt.Errorf("scan method sum: %w", err)
		}
		sums.ByMethod[method] = total
	}
	if err := rows.Err(); err != nil {
		return sums, fmt.Errorf("iterate method sums: %w", err)
	}

	return sums, nil
}

// InventoryLines returns the per-product valuation rows.
func (r *ReportRepo) InventoryLines(ctx context.Context) ([]reports.InventoryLine, error) {
	sql := `
		SELECT
			id AS product_id,
			code,
			name,
			stock,
			min_stock,
			cost,
			stock * cost AS value,
			stock <= min_stock AS low_stock
		FROM products
		WHERE active
		ORDER BY code
	`

	var lines []reports.InventoryLine
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &lines, sql); err != nil {
		return nil, fmt.Errorf("select inventory lines: %w", err)
	}
	return lines, nil
}

// SumByAccountType returns Σdebit/Σcredit across all accounts of a type
// over a period.
func (r *ReportRepo) SumByAccountType(ctx context.Context, accountType ledger.AccountType, period reports.Period) (reports.TypeSums, error) {
	sums := reports.TypeSums{Debits: types.Zero(), Credits: types.Zero()}

	sql := `
		SELECT COALESCE(SUM(p.debit), 0), COALESCE(SUM(p.credit), 0)
		FROM ledger_postings p
		JOIN accounts a ON a.id = p.account_id
		WHERE a.type = $1 AND p.date >= $2 AND p.date <= $3
	`
	err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, accountType, period.From, period.To).
		Scan(&sums.Debits, &sums.Credits)
	if err != nil && err != pgx.ErrNoRows {
		return sums, fmt.Errorf("sum by account type: %w", err)
	}
	return sums, nil
}

// AccountBalancesByType returns signed balances per account of a type as
// of a date. The sign flips for credit-normal types in SQL so the rows
// come back ready to total.
func (r *ReportRepo) AccountBalancesByType(ctx context.Context, accountType ledger.AccountType, asOf time.Time) ([]ledger.AccountBalance, error) {
	direction := "SUM(p.debit) - SUM(p.credit)"
	if !accountType.DebitNormal() {
		direction = "SUM(p.credit) - SUM(p.debit)"
	}

	sql := fmt.Sprintf(`
		SELECT
			a.id AS account_id,
			a.code,
			a.name,
			a.type,
			COALESCE(%s, 0) AS balance
		FROM accounts a
		LEFT JOIN ledger_postings p ON p.account_id = a.id AND p.date <= $2
		WHERE a.type = $1 AND a.active
		GROUP BY a.id, a.code, a.name, a.type
		HAVING COUNT(p.id) > 0
		ORDER BY a.code
	`, direction)

	var balances []ledger.AccountBalance
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &balances, sql, accountType, asOf); err != nil {
		return nil, fmt.Errorf("select balances by type: %w", err)
	}
	return balances, nil
}

// TopProducts ranks products by quantity sold in a period.
func (r *ReportRepo) TopProducts(ctx context.Context, period reports.Period, limit int) ([]reports.TopProduct, error) {
	sql := `
		SELECT
			it.product_id,
			p.code,
			p.name,
			SUM(it.quantity)::int AS quantity_sold,
			COALESCE(SUM(it.line_total), 0) AS revenue
		FROM invoice_items it
		JOIN invoices i ON i.id = it.invoice_id
		JOIN products p ON p.id = it.product_id
		WHERE i.date >= $1 AND i.date <= $2
		GROUP BY it.product_id, p.code, p.name
		ORDER BY quantity_sold DESC, revenue DESC
		LIMIT $3
	`

	var top []reports.TopProduct
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &top, sql, period.From, period.To, limit); err != nil {
		return nil, fmt.Errorf("select top products: %w", err)
	}
	return top, nil
}

// PendingInvoiceCount counts unsettled invoices.
func (r *ReportRepo) PendingInvoiceCount(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM invoices WHERE payment_status <> 'paid'`)
}

// LowStockCount counts active products at or below their threshold.
func (r *ReportRepo) LowStockCount(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM products WHERE active AND stock <= min_stock`)
}

// ActiveCustomerCount counts active customers.
func (r *ReportRepo) ActiveCustomerCount(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM customers WHERE active`)
}

func (r *ReportRepo) count(ctx context.Context, sql string) (int, error) {
	var n int
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}
