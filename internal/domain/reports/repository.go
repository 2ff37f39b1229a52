package reports

import (
	"context"
	"time"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/types"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/ledger"
)

// SalesSums holds raw invoice aggregates for a period.
type SalesSums struct {
	Total        types.Money            `json:"total"`
	Count        int                    `json:"count"`
	ByMethod     map[string]types.Money `json:"byMethod"`
	PaidTotal    types.Money            `json:"paidTotal"`
	PendingTotal types.Money            `json:"pendingTotal"`
}

// TypeSums holds Σdebit and Σcredit per account type over a period.
type TypeSums struct {
	Debits  types.Money `db:"debits"`
	Credits types.Money `db:"credits"`
}

// Repository is the read-side query contract. Aggregation happens in SQL;
// the service only combines and derives.
type Repository interface {
	SalesSums(ctx context.Context, period Period) (SalesSums, error)
	InventoryLines(ctx context.Context) ([]InventoryLine, error)
	SumByAccountType(ctx context.Context, accountType ledger.AccountType, period Period) (TypeSums, error)
	AccountBalancesByType(ctx context.Context, accountType ledger.AccountType, asOf time.Time) ([]ledger.AccountBalance, error)
	TopProducts(ctx context.Context, period Period, limit int) ([]TopProduct, error)
	PendingInvoiceCount(ctx context.Context) (int, error)
	LowStockCount(ctx context.Context) (int, error)
	ActiveCustomerCount(ctx context.Context) (int, error)
}
