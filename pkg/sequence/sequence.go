// Package sequence provides atomic document numbering.
//
// Numbers are allocated from a single counter row per (prefix, period) key via
// an UPSERT ... RETURNING statement, so two concurrent callers can never
// observe the same value. This deliberately replaces number derivation from a
// non-locking count query, which collides under concurrent inserts.
package sequence

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Querier is the minimal database interface the service needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ResetPeriod controls when the counter restarts from 1.
type ResetPeriod string

const (
	ResetDaily   ResetPeriod = "day"
	ResetMonthly ResetPeriod = "month"
	ResetYearly  ResetPeriod = "year"
	ResetNever   ResetPeriod = "never"
)

// Config holds numbering configuration.
type Config struct {
	// Prefix added to all numbers (e.g., "INV")
	Prefix string

	// PadWidth is the minimum counter width (default 4)
	PadWidth int

	// ResetPeriod controls counter restart and the period part of the number
	ResetPeriod ResetPeriod
}

// InvoiceConfig returns the configuration for sales invoice numbers:
// INV-YYYYMMDD-NNNN with a daily counter.
func InvoiceConfig() Config {
	return Config{
		Prefix:      "INV",
		PadWidth:    4,
		ResetPeriod: ResetDaily,
	}
}

// Service allocates document numbers.
type Service struct {
	querier Querier
}

// New creates a sequence service backed by the given querier.
// When the querier is a transaction, the allocated number commits or rolls
// back together with the rest of the operation.
func New(querier Querier) *Service {
	return &Service{querier: querier}
}

// Next allocates the next number for cfg in the given period.
//
// The counter row is locked for the remainder of the caller's transaction,
// which serializes concurrent allocations for the same key and guarantees
// uniqueness of the formatted number.
func (s *Service) Next(ctx context.Context, cfg Config, period time.Time) (string, error) {
	if s == nil || s.querier == nil {
		return "", fmt.Errorf("sequence service is not initialized")
	}

	key := buildKey(cfg, period)

	var num int64
	err := s.querier.QueryRow(ctx, `
		INSERT INTO sys_sequences (key, current_val)
		VALUES ($1, 1)
		ON CONFLICT (key) DO UPDATE SET current_val = sys_sequences.current_val + 1
		RETURNING current_val
	`, key).Scan(&num)
	if err != nil {
		return "", fmt.Errorf("next sequence value: %w", err)
	}

	return formatNumber(cfg, period, num), nil
}

// WithQuerier returns a service bound to a different querier.
// Used to run allocations against an in-flight transaction.
func (s *Service) WithQuerier(querier Querier) *Service {
	return &Service{querier: querier}
}

func buildKey(cfg Config, period time.Time) string {
	switch cfg.ResetPeriod {
	case ResetDaily:
		return fmt.Sprintf("%s_%s", cfg.Prefix, period.Format("20060102"))
	case ResetMonthly:
		return fmt.Sprintf("%s_%s", cfg.Prefix, period.Format("200601"))
	case ResetYearly:
		return fmt.Sprintf("%s_%s", cfg.Prefix, period.Format("2006"))
	default:
		return cfg.Prefix
	}
}

func formatNumber(cfg Config, period time.Time, num int64) string {
	padWidth := cfg.PadWidth
	if padWidth == 0 {
		padWidth = 4
	}

	switch cfg.ResetPeriod {
	case ResetDaily:
		return fmt.Sprintf("%s-%s-%0*d", cfg.Prefix, period.Format("20060102"), padWidth, num)
	case ResetMonthly:
		return fmt.Sprintf("%s-%s-%0*d", cfg.Prefix, period.Format("200601"), padWidth, num)
	case ResetYearly:
		return fmt.Sprintf("%s-%s-%0*d", cfg.Prefix, period.Format("2006"), padWidth, num)
	default:
		return fmt.Sprintf("%s-%0*d", cfg.Prefix, padWidth, num)
	}
}
