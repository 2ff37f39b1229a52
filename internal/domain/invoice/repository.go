package invoice

import (
	"context"
	"time"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/id"
)

// Filter narrows invoice queries.
type Filter struct {
	CustomerID *id.ID
	Status     *PaymentStatus
	DateFrom   *time.Time
	DateTo     *time.Time
	Limit      int
	Offset     int
}

// Repository is the persistence contract for invoices.
type Repository interface {
	Create(ctx context.Context, invoice *Invoice) error
	SaveItems(ctx context.Context, items []InvoiceItem) error
	UpdateTotals(ctx context.Context, invoice *Invoice) error
	UpdateStatus(ctx context.Context, invoiceID id.ID, status PaymentStatus) error

	// GetByID returns the invoice with its items loaded.
	GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error)
	GetByNumber(ctx context.Context, number string) (*Invoice, error)
	List(ctx context.Context, filter Filter) ([]Invoice, error)
}
