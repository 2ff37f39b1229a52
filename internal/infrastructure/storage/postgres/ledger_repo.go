package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/apperror"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/id"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/types"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/ledger"
)

const (
	accountsTable = "accounts"
	postingsTable = "ledger_postings"
)

// LedgerRepo implements ledger.Repository.
type LedgerRepo struct {
	txm     *TxManager
	builder squirrel.StatementBuilderType
}

// NewLedgerRepo creates a ledger repository.
func NewLedgerRepo(txm *TxManager) *LedgerRepo {
	return &LedgerRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var _ ledger.Repository = (*LedgerRepo)(nil)

var accountColumns = []string{
	"id", "code", "name", "type", "parent_id", "active", "created_at", "updated_at",
}

// CreateAccount inserts an account.
func (r *LedgerRepo) CreateAccount(ctx context.Context, account *ledger.Account) error {
	q := r.builder.Insert(accountsTable).
		Columns(accountColumns...).
		Values(
			account.ID, account.Code, account.Name, account.Type,
			account.ParentID, account.Active, account.CreatedAt, account.UpdatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// UpdateAccount updates account fields.
func (r *LedgerRepo) UpdateAccount(ctx context.Context, account *ledger.Account) error {
	q := r.builder.Update(accountsTable).
		Set("code", account.Code).
		Set("name", account.Name).
		Set("type", account.Type).
		Set("parent_id", account.ParentID).
		Set("active", account.Active).
		Set("updated_at", account.UpdatedAt).
		Where(squirrel.Eq{"id": account.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("account", account.ID)
	}
	return nil
}

// GetAccount returns an account by ID.
func (r *LedgerRepo) GetAccount(ctx context.Context, accountID id.ID) (*ledger.Account, error) {
	return r.getAccount(ctx, squirrel.Eq{"id": accountID}, accountID)
}

// GetAccountByCode returns an account by code.
func (r *LedgerRepo) GetAccountByCode(ctx context.Context, code string) (*ledger.Account, error) {
	return r.getAccount(ctx, squirrel.Eq{"code": code}, code)
}

func (r *LedgerRepo) getAccount(ctx context.Context, where squirrel.Eq, key any) (*ledger.Account, error) {
	q := r.builder.Select(accountColumns...).
		From(accountsTable).
		Where(where).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var account ledger.Account
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &account, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("account", key)
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &account, nil
}

// ListAccounts returns the chart of accounts ordered by code.
func (r *LedgerRepo) ListAccounts(ctx context.Context, activeOnly bool) ([]ledger.Account, error) {
	q := r.builder.Select(accountColumns...).
		From(accountsTable).
		OrderBy("code")
	if activeOnly {
		q = q.Where(squirrel.Eq{"active": true})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var accounts []ledger.Account
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &accounts, sql, args...); err != nil {
		return nil, fmt.Errorf("select accounts: %w", err)
	}
	return accounts, nil
}

// HasPostings reports whether any posting references the account.
func (r *LedgerRepo) HasPostings(ctx context.Context, accountID id.ID) (bool, error) {
	sql := `SELECT EXISTS (SELECT 1 FROM ledger_postings WHERE account_id = $1)`

	var exists bool
	err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, accountID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check postings: %w", err)
	}
	return exists, nil
}

// CreatePostings batch inserts postings.
func (r *LedgerRepo) CreatePostings(ctx context.Context, postings []ledger.Posting) error {
	if len(postings) == 0 {
		return nil
	}

	q := r.builder.Insert(postingsTable).Columns(
		"id", "account_id", "invoice_id", "user_id",
		"date", "description", "debit", "credit", "reference", "created_at",
	)
	for _, p := range postings {
		q = q.Values(
			p.ID, p.AccountID, p.InvoiceID, p.UserID,
			p.Date, p.Description, p.Debit, p.Credit, p.Reference, p.CreatedAt,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert postings: %w", err)
	}
	return nil
}

// ListPostings returns postings matching the filter, newest first.
func (r *LedgerRepo) ListPostings(ctx context.Context, filter ledger.PostingFilter) ([]ledger.Posting, error) {
	q := r.builder.Select(
		"id", "account_id", "invoice_id", "user_id",
		"date", "description", "debit", "credit", "reference", "created_at",
	).From(postingsTable)

	if filter.AccountID != nil {
		q = q.Where(squirrel.Eq{"account_id": *filter.AccountID})
	}
	if filter.InvoiceID != nil {
		q = q.Where(squirrel.Eq{"invoice_id": *filter.InvoiceID})
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

	var postings []ledger.Posting
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &postings, sql, args...); err != nil {
		return nil, fmt.Errorf("select postings: %w", err)
	}
	return postings, nil
}

// SumPostings returns Σdebit and Σcredit for an account, optionally
// bounded by date.
func (r *LedgerRepo) SumPostings(ctx context.Context, accountID id.ID, until *time.Time) (ledger.BalanceSums, error) {
	sums := ledger.BalanceSums{Debits: types.Zero(), Credits: types.Zero()}

	sql := `
		SELECT COALESCE(SUM(debit), 0) AS debits, COALESCE(SUM(credit), 0) AS credits
		FROM ledger_postings
		WHERE account_id = $1
	`
	args := []any{accountID}
	if until != nil {
		sql += " AND date <= $2"
		args = append(args, *until)
	}

	err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&sums.Debits, &sums.Credits)
	if err != nil && err != pgx.ErrNoRows {
		return sums, fmt.Errorf("sum postings: %w", err)
	}
	return sums, nil
}
