package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/tx"
	"github.com/Alejoxd70/sactpaper-stationery/pkg/logger"
)

var tracer = otel.Tracer("sactpaper/tx")

var _ tx.ReadOnlyManager = (*TxManager)(nil)

// TxOptions configures transaction behavior.
type TxOptions struct {
	IsolationLevel pgx.TxIsoLevel
	AccessMode     pgx.TxAccessMode

	// StatementTimeout protects against runaway queries
	StatementTimeout time.Duration
}

// DefaultTxOptions returns the read-committed defaults the sale pipeline
// relies on: conditional updates make check-then-decrement atomic per
// product, so no stronger isolation is needed.
func DefaultTxOptions() TxOptions {
	return TxOptions{
		IsolationLevel:   pgx.ReadCommitted,
		AccessMode:       pgx.ReadWrite,
		StatementTimeout: 30 * time.Second,
	}
}

// TxManager manages database transactions. Nested RunInTransaction calls
// reuse the transaction already stored in context.
type TxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager creates a transaction manager.
func NewTxManager(pool *Pool) *TxManager {
	return &TxManager{pool: pool.Pool}
}

type txKey struct{}

// Tx wraps pgx.Tx.
type Tx struct {
	pgx.Tx
}

// RunInTransaction executes fn within a transaction with default options.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.RunInTransactionWithOptions(ctx, DefaultTxOptions(), fn)
}

// RunInTransactionWithOptions executes fn with custom transaction options.
func (m *TxManager) RunInTransactionWithOptions(ctx context.Context, opts TxOptions, fn func(ctx context.Context) error) error {
	ctx, span := tracer.Start(ctx, "transaction",
		trace.WithAttributes(
			attribute.String("tx.isolation", string(opts.IsolationLevel)),
		))
	defer span.End()

	// Reuse an in-flight transaction so nested service calls share one commit.
	if existing := m.GetTx(ctx); existing != nil {
		return fn(ctx)
	}

	dbTx, err := m.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   opts.IsolationLevel,
		AccessMode: opts.AccessMode,
	})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if opts.StatementTimeout > 0 {
		_, err = dbTx.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = '%dms'", opts.StatementTimeout.Milliseconds()))
		if err != nil {
			_ = dbTx.Rollback(ctx)
			return fmt.Errorf("set statement_timeout: %w", err)
		}
	}

	txCtx := context.WithValue(ctx, txKey{}, &Tx{Tx: dbTx})

	if err := fn(txCtx); err != nil {
		// Rollback on a background context so it completes even when the
		// request context is already cancelled.
		if rbErr := dbTx.Rollback(context.Background()); rbErr != nil && rbErr != pgx.ErrTxClosed {
			logger.Error(ctx, "rollback failed", "error", rbErr, "original_error", err)
		}
		return err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ReadOnly executes fn in a read-only transaction, used by reports to get
// a consistent snapshot without taking write locks.
func (m *TxManager) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := DefaultTxOptions()
	opts.AccessMode = pgx.ReadOnly
	return m.RunInTransactionWithOptions(ctx, opts, fn)
}

// GetTx returns the current transaction from context, or nil.
func (m *TxManager) GetTx(ctx context.Context) *Tx {
	if t, ok := ctx.Value(txKey{}).(*Tx); ok {
		return t
	}
	return nil
}

// Querier is the subset of pgx both a pool and a transaction satisfy.
// Repos use it so the same code runs inside and outside transactions.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// GetQuerier returns the in-flight transaction when present, otherwise
// the pool.
func (m *TxManager) GetQuerier(ctx context.Context) Querier {
	if t := m.GetTx(ctx); t != nil {
		return t.Tx
	}
	return m.pool
}

// SequenceQuerier adapts the manager to pkg/sequence: number allocation
// runs on whatever querier the context carries, so inside a sale it joins
// the sale's transaction and rolls back with it.
type SequenceQuerier struct {
	txm *TxManager
}

// NewSequenceQuerier creates the adapter.
func NewSequenceQuerier(txm *TxManager) *SequenceQuerier {
	return &SequenceQuerier{txm: txm}
}

// QueryRow delegates to the context's querier.
func (q *SequenceQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return q.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...)
}
