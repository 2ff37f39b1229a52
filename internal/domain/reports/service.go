package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/apperror"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/tx"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/types"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/ledger"
)

var hundred = decimal.NewFromInt(100)

// Service computes the reporting aggregates.
type Service struct {
	repo        Repository
	txm         tx.ReadOnlyManager
	companyName string
}

// NewService creates a reports service.
func NewService(repo Repository, txm tx.ReadOnlyManager, companyName string) *Service {
	return &Service{repo: repo, txm: txm, companyName: companyName}
}

func validatePeriod(period Period) error {
	if period.From.IsZero() || period.To.IsZero() {
		return apperror.NewValidation("report period is required").
			WithDetail("field", "period")
	}
	if period.To.Before(period.From) {
		return apperror.NewValidation("report period end precedes its start").
			WithDetail("from", period.From).
			WithDetail("to", period.To)
	}
	return nil
}

// Sales builds the sales summary for a period.
func (s *Service) Sales(ctx context.Context, period Period) (*SalesReport, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	sums, err := s.repo.SalesSums(ctx, period)
	if err != nil {
		return nil, err
	}

	average := types.Zero()
	if sums.Count > 0 {
		average = types.RoundMoney(sums.Total.Div(decimal.NewFromInt(int64(sums.Count))))
	}

	return &SalesReport{
		Period:       period,
		TotalSales:   sums.Total,
		InvoiceCount: sums.Count,
		AverageSale:  average,
		ByMethod:     sums.ByMethod,
		PaidTotal:    sums.PaidTotal,
		PendingTotal: sums.PendingTotal,
	}, nil
}

// Inventory builds the stock valuation snapshot.
func (s *Service) Inventory(ctx context.Context) (*InventoryReport, error) {
	lines, err := s.repo.InventoryLines(ctx)
	if err != nil {
		return nil, err
	}

	report := &InventoryReport{
		Lines:      lines,
		TotalValue: types.Zero(),
	}
	for i := range lines {
		report.TotalValue = report.TotalValue.Add(lines[i].Value)
		if lines[i].LowStock {
			report.LowStockCount++
		}
	}
	report.ProductCount = len(lines)
	return report, nil
}

// ProfitLoss builds the income statement for a period.
//
// Income accounts accumulate on the credit side, so income is
// Σ(credit-debit); cost and expense accounts accumulate on the debit
// side, Σ(debit-credit). Margin guards against zero income.
func (s *Service) ProfitLoss(ctx context.Context, period Period) (*ProfitAndLoss, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	incomeSums, err := s.repo.SumByAccountType(ctx, ledger.TypeIncome, period)
	if err != nil {
		return nil, err
	}
	costSums, err := s.repo.SumByAccountType(ctx, ledger.TypeCost, period)
	if err != nil {
		return nil, err
	}
	expenseSums, err := s.repo.SumByAccountType(ctx, ledger.TypeExpense, period)
	if err != nil {
		return nil, err
	}

	income := incomeSums.Credits.Sub(incomeSums.Debits)
	costs := costSums.Debits.Sub(costSums.Credits)
	expenses := expenseSums.Debits.Sub(expenseSums.Credits)
	gross := income.Sub(costs)
	net := gross.Sub(expenses)

	margin := types.Zero()
	if !income.IsZero() {
		margin = types.RoundMoney(net.Div(income).Mul(hundred))
	}

	return &ProfitAndLoss{
		Period:      period,
		Income:      income,
		Costs:       costs,
		Expenses:    expenses,
		GrossProfit: gross,
		NetProfit:   net,
		Margin:      margin,
	}, nil
}

// Balance builds the balance sheet as of a date.
func (s *Service) Balance(ctx context.Context, asOf time.Time) (*BalanceSheet, error) {
	if asOf.IsZero() {
		return nil, apperror.NewValidation("balance sheet date is required").
			WithDetail("field", "asOf")
	}

	assets, err := s.repo.AccountBalancesByType(ctx, ledger.TypeAsset, asOf)
	if err != nil {
		return nil, err
	}
	liabilities, err := s.repo.AccountBalancesByType(ctx, ledger.TypeLiability, asOf)
	if err != nil {
		return nil, err
	}
	equity, err := s.repo.AccountBalancesByType(ctx, ledger.TypeEquity, asOf)
	if err != nil {
		return nil, err
	}

	sheet := &BalanceSheet{
		AsOf:             asOf,
		Assets:           assets,
		Liabilities:      liabilities,
		Equity:           equity,
		TotalAssets:      types.Zero(),
		TotalLiabilities: types.Zero(),
		TotalEquity:      types.Zero(),
	}
	for _, b := range assets {
		sheet.TotalAssets = sheet.TotalAssets.Add(b.Balance)
	}
	for _, b := range liabilities {
		sheet.TotalLiabilities = sheet.TotalLiabilities.Add(b.Balance)
	}
	for _, b := range equity {
		sheet.TotalEquity = sheet.TotalEquity.Add(b.Balance)
	}
	return sheet, nil
}

// TopProducts returns the best sellers for a period.
func (s *Service) TopProducts(ctx context.Context, period Period, limit int) ([]TopProduct, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 5
	}
	return s.repo.TopProducts(ctx, period, limit)
}

// Dashboard builds the landing-page quick stats for the given day.
// The reads share one read-only snapshot so the counters agree.
func (s *Service) Dashboard(ctx context.Context, today time.Time) (*DashboardSummary, error) {
	dayStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	day := Period{From: dayStart, To: dayStart.AddDate(0, 0, 1).Add(-time.Nanosecond)}

	var summary *DashboardSummary
	err := s.txm.ReadOnly(ctx, func(ctx context.Context) error {
		sales, err := s.repo.SalesSums(ctx, day)
		if err != nil {
			return err
		}
		pending, err := s.repo.PendingInvoiceCount(ctx)
		if err != nil {
			return err
		}
		lowStock, err := s.repo.LowStockCount(ctx)
		if err != nil {
			return err
		}
		customers, err := s.repo.ActiveCustomerCount(ctx)
		if err != nil {
			return err
		}

		summary = &DashboardSummary{
			TodaySales:      sales.Total,
			TodayInvoices:   sales.Count,
			PendingInvoices: pending,
			LowStockCount:   lowStock,
			ActiveCustomers: customers,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// General builds the consolidated period report. All sections read from
// one read-only snapshot, so a sale committed mid-report cannot show up
// in some sections and not others.
func (s *Service) General(ctx context.Context, period Period) (*GeneralReport, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	var report *GeneralReport
	err := s.txm.ReadOnly(ctx, func(ctx context.Context) error {
		sales, err := s.Sales(ctx, period)
		if err != nil {
			return err
		}
		inventoryReport, err := s.Inventory(ctx)
		if err != nil {
			return err
		}
		topProducts, err := s.TopProducts(ctx, period, 5)
		if err != nil {
			return err
		}
		profitLoss, err := s.ProfitLoss(ctx, period)
		if err != nil {
			return err
		}

		report = &GeneralReport{
			CompanyName: s.companyName,
			GeneratedAt: time.Now().UTC(),
			Period:      period,
			Sales:       *sales,
			Inventory:   *inventoryReport,
			TopProducts: topProducts,
			ProfitLoss:  *profitLoss,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}
