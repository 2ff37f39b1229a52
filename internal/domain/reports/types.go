// Package reports computes read-side aggregates over sales, inventory
// and the ledger. Nothing here is materialized: every call recomputes
// from the source tables.
package reports

import (
	"time"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/id"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/types"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/ledger"
)

// Period is an inclusive date range.
type Period struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// SalesReport summarizes invoicing over a period.
type SalesReport struct {
	Period       Period                 `json:"period"`
	TotalSales   types.Money            `json:"totalSales"`
	InvoiceCount int                    `json:"invoiceCount"`
	AverageSale  types.Money            `json:"averageSale"`
	ByMethod     map[string]types.Money `json:"byMethod"`
	PaidTotal    types.Money            `json:"paidTotal"`
	PendingTotal types.Money            `json:"pendingTotal"`
}

// InventoryLine is one product's valuation row.
type InventoryLine struct {
	ProductID id.ID       `db:"product_id" json:"productId"`
	Code      string      `db:"code" json:"code"`
	Name      string      `db:"name" json:"name"`
	Stock     int         `db:"stock" json:"stock"`
	MinStock  int         `db:"min_stock" json:"minStock"`
	Cost      types.Money `db:"cost" json:"cost"`
	Value     types.Money `db:"value" json:"value"`
	LowStock  bool        `db:"low_stock" json:"lowStock"`
}

// InventoryReport is the stock valuation snapshot.
type InventoryReport struct {
	Lines         []InventoryLine `json:"lines"`
	TotalValue    types.Money     `json:"totalValue"`
	LowStockCount int             `json:"lowStockCount"`
	ProductCount  int             `json:"productCount"`
}

// ProfitAndLoss is the income statement for a period.
type ProfitAndLoss struct {
	Period      Period      `json:"period"`
	Income      types.Money `json:"income"`
	Costs       types.Money `json:"costs"`
	Expenses    types.Money `json:"expenses"`
	GrossProfit types.Money `json:"grossProfit"`
	NetProfit   types.Money `json:"netProfit"`
	// Margin is net profit as a percentage of income; zero when income is zero.
	Margin types.Money `json:"margin"`
}

// BalanceSheet groups account balances by type as of a date.
type BalanceSheet struct {
	AsOf             time.Time               `json:"asOf"`
	Assets           []ledger.AccountBalance `json:"assets"`
	Liabilities      []ledger.AccountBalance `json:"liabilities"`
	Equity           []ledger.AccountBalance `json:"equity"`
	TotalAssets      types.Money             `json:"totalAssets"`
	TotalLiabilities types.Money             `json:"totalLiabilities"`
	TotalEquity      types.Money             `json:"totalEquity"`
}

// TopProduct is one row of the best-sellers ranking.
type TopProduct struct {
	ProductID    id.ID       `db:"product_id" json:"productId"`
	Code         string      `db:"code" json:"code"`
	Name         string      `db:"name" json:"name"`
	QuantitySold int         `db:"quantity_sold" json:"quantitySold"`
	Revenue      types.Money `db:"revenue" json:"revenue"`
}

// DashboardSummary holds the landing-page quick stats.
type DashboardSummary struct {
	TodaySales      types.Money `json:"todaySales"`
	TodayInvoices   int         `json:"todayInvoices"`
	PendingInvoices int         `json:"pendingInvoices"`
	LowStockCount   int         `json:"lowStockCount"`
	ActiveCustomers int         `json:"activeCustomers"`
}

// GeneralReport is the consolidated aggregate handed to presentation,
// the input for a printable period report.
type GeneralReport struct {
	CompanyName string          `json:"companyName"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Period      Period          `json:"period"`
	Sales       SalesReport     `json:"sales"`
	Inventory   InventoryReport `json:"inventory"`
	TopProducts []TopProduct    `json:"topProducts"`
	ProfitLoss  ProfitAndLoss   `json:"profitLoss"`
}
