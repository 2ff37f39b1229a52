package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/apperror"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/id"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/types"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/ledger"
)

// fakeRepo serves canned aggregates and counts calls to verify that
// report reads never write anything.
type fakeRepo struct {
	sales     SalesSums
	lines     []InventoryLine
	typeSums  map[ledger.AccountType]TypeSums
	balances  map[ledger.AccountType][]ledger.AccountBalance
	top       []TopProduct
	pending   int
	lowStock  int
	customers int
	calls     int
}

func (r *fakeRepo) SalesSums(ctx context.Context, period Period) (SalesSums, error) {
	r.calls++
	return r.sales, nil
}

func (r *fakeRepo) InventoryLines(ctx context.Context) ([]InventoryLine, error) {
	r.calls++
	return r.lines, nil
}

func (r *fakeRepo) SumByAccountType(ctx context.Context, accountType ledger.AccountType, period Period) (TypeSums, error) {
	r.calls++
	if sums, ok := r.typeSums[accountType]; ok {
		return sums, nil
	}
	return TypeSums{Debits: types.Zero(), Credits: types.Zero()}, nil
}

func (r *fakeRepo) AccountBalancesByType(ctx context.Context, accountType ledger.AccountType, asOf time.Time) ([]ledger.AccountBalance, error) {
	r.calls++
	return r.balances[accountType], nil
}

func (r *fakeRepo) TopProducts(ctx context.Context, period Period, limit int) ([]TopProduct, error) {
	r.calls++
	if limit < len(r.top) {
		return r.top[:limit], nil
	}
	return r.top, nil
}

func (r *fakeRepo) PendingInvoiceCount(ctx context.Context) (int, error)  { r.calls++; return r.pending, nil }
func (r *fakeRepo) LowStockCount(ctx context.Context) (int, error)       { r.calls++; return r.lowStock, nil }
func (r *fakeRepo) ActiveCustomerCount(ctx context.Context) (int, error) { r.calls++; return r.customers, nil }

// recordingTxManager counts snapshot usage and runs functions directly.
type recordingTxManager struct {
	readOnlyCalls int
}

func (m *recordingTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *recordingTxManager) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	m.readOnlyCalls++
	return fn(ctx)
}

func newService(repo *fakeRepo) *Service {
	return NewService(repo, &recordingTxManager{}, "Papelería El Sol")
}

var testPeriod = Period{
	From: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	To:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
}

func TestSales_Average(t *testing.T) {
	repo := &fakeRepo{
		sales: SalesSums{
			Total:        types.MustMoney("300.00"),
			Count:        4,
			PaidTotal:    types.MustMoney("250.00"),
			PendingTotal: types.MustMoney("50.00"),
		},
	}
	svc := newService(repo)

	report, err := svc.Sales(context.Background(), testPeriod)
	require.NoError(t, err)

	assert.True(t, report.AverageSale.Equal(types.MustMoney("75.00")))
	assert.Equal(t, 4, report.InvoiceCount)
}

func TestSales_EmptyPeriodNoDivideByZero(t *testing.T) {
	repo := &fakeRepo{sales: SalesSums{Total: types.Zero()}}
	svc := newService(repo)

	report, err := svc.Sales(context.Background(), testPeriod)
	require.NoError(t, err)
	assert.True(t, report.AverageSale.IsZero())
}

func TestProfitLoss(t *testing.T) {
	repo := &fakeRepo{
		typeSums: map[ledger.AccountType]TypeSums{
			ledger.TypeIncome:  {Debits: types.Zero(), Credits: types.MustMoney("1000.00")},
			ledger.TypeCost:    {Debits: types.MustMoney("600.00"), Credits: types.Zero()},
			ledger.TypeExpense: {Debits: types.MustMoney("150.00"), Credits: types.Zero()},
		},
	}
	svc := newService(repo)

	pl, err := svc.ProfitLoss(context.Background(), testPeriod)
	require.NoError(t, err)

	assert.True(t, pl.Income.Equal(types.MustMoney("1000.00")))
	assert.True(t, pl.GrossProfit.Equal(types.MustMoney("400.00")))
	assert.True(t, pl.NetProfit.Equal(types.MustMoney("250.00")))
	assert.True(t, pl.Margin.Equal(types.MustMoney("25.00")), "margin = %s", pl.Margin)
}

func TestProfitLoss_ZeroIncomeMarginGuard(t *testing.T) {
	repo := &fakeRepo{
		typeSums: map[ledger.AccountType]TypeSums{
			ledger.TypeExpense: {Debits: types.MustMoney("50.00"), Credits: types.Zero()},
		},
	}
	svc := newService(repo)

	pl, err := svc.ProfitLoss(context.Background(), testPeriod)
	require.NoError(t, err)

	assert.True(t, pl.NetProfit.Equal(types.MustMoney("-50.00")))
	assert.True(t, pl.Margin.IsZero(), "margin must stay zero without income")
}

func TestInventory_ValuationAndLowStock(t *testing.T) {
	repo := &fakeRepo{
		lines: []InventoryLine{
			{Code: "NB-001", Stock: 10, MinStock: 2, Cost: types.MustMoney("12.00"), Value: types.MustMoney("120.00")},
			{Code: "PN-001", Stock: 1, MinStock: 3, Cost: types.MustMoney("2.00"), Value: types.MustMoney("2.00"), LowStock: true},
		},
	}
	svc := newService(repo)

	report, err := svc.Inventory(context.Background())
	require.NoError(t, err)

	assert.True(t, report.TotalValue.Equal(types.MustMoney("122.00")))
	assert.Equal(t, 1, report.LowStockCount)
	assert.Equal(t, 2, report.ProductCount)
}

func TestBalance_Totals(t *testing.T) {
	repo := &fakeRepo{
		balances: map[ledger.AccountType][]ledger.AccountBalance{
			ledger.TypeAsset: {
				{AccountID: id.New(), Code: "1105", Balance: types.MustMoney("500.00")},
				{AccountID: id.New(), Code: "1435", Balance: types.MustMoney("300.00")},
			},
			ledger.TypeLiability: {
				{AccountID: id.New(), Code: "2367", Balance: types.MustMoney("95.00")},
			},
		},
	}
	svc := newService(repo)

	sheet, err := svc.Balance(context.Background(), testPeriod.To)
	require.NoError(t, err)

	assert.True(t, sheet.TotalAssets.Equal(types.MustMoney("800.00")))
	assert.True(t, sheet.TotalLiabilities.Equal(types.MustMoney("95.00")))
	assert.True(t, sheet.TotalEquity.IsZero())
}

func TestReports_ReadsAreIdempotent(t *testing.T) {
	repo := &fakeRepo{
		sales: SalesSums{Total: types.MustMoney("100.00"), Count: 1},
	}
	svc := newService(repo)
	ctx := context.Background()

	first, err := svc.Sales(ctx, testPeriod)
	require.NoError(t, err)
	second, err := svc.Sales(ctx, testPeriod)
	require.NoError(t, err)

	assert.True(t, first.TotalSales.Equal(second.TotalSales))
	assert.Equal(t, first.InvoiceCount, second.InvoiceCount)
}

func TestGeneral_ComposesSections(t *testing.T) {
	repo := &fakeRepo{
		sales: SalesSums{Total: types.MustMoney("300.00"), Count: 3},
		lines: []InventoryLine{
			{Code: "NB-001", Value: types.MustMoney("120.00")},
		},
		top: []TopProduct{
			{Code: "NB-001", QuantitySold: 12, Revenue: types.MustMoney("240.00")},
		},
		typeSums: map[ledger.AccountType]TypeSums{
			ledger.TypeIncome: {Debits: types.Zero(), Credits: types.MustMoney("300.00")},
		},
	}
	svc := newService(repo)

	report, err := svc.General(context.Background(), testPeriod)
	require.NoError(t, err)

	assert.Equal(t, "Papelería El Sol", report.CompanyName)
	assert.Equal(t, 3, report.Sales.InvoiceCount)
	assert.Len(t, report.TopProducts, 1)
	assert.True(t, report.ProfitLoss.Income.Equal(types.MustMoney("300.00")))
	assert.False(t, report.GeneratedAt.IsZero())
}

func TestGeneral_ReadsFromOneSnapshot(t *testing.T) {
	repo := &fakeRepo{sales: SalesSums{Total: types.MustMoney("300.00"), Count: 3}}
	txm := &recordingTxManager{}
	svc := NewService(repo, txm, "Papelería El Sol")

	_, err := svc.General(context.Background(), testPeriod)
	require.NoError(t, err)
	assert.Equal(t, 1, txm.readOnlyCalls, "composed sections must share one read-only transaction")
}

func TestDashboard_ReadsFromOneSnapshot(t *testing.T) {
	repo := &fakeRepo{pending: 2, lowStock: 1, customers: 5}
	txm := &recordingTxManager{}
	svc := NewService(repo, txm, "Papelería El Sol")

	summary, err := svc.Dashboard(context.Background(), testPeriod.From)
	require.NoError(t, err)
	assert.Equal(t, 1, txm.readOnlyCalls)
	assert.Equal(t, 2, summary.PendingInvoices)
	assert.Equal(t, 5, summary.ActiveCustomers)
}

func TestPeriodValidation(t *testing.T) {
	svc := newService(&fakeRepo{})
	ctx := context.Background()

	_, err := svc.Sales(ctx, Period{})
	require.Error(t, err)
	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	_, err = svc.Sales(ctx, Period{From: testPeriod.To, To: testPeriod.From})
	require.Error(t, err)
}
