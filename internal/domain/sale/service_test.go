package sale

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/apperror"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/id"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/types"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/customer"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/inventory"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/invoice"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/ledger"
	"github.com/Alejoxd70/sactpaper-stationery/pkg/sequence"
)

// --- fakes ---

type fakeInvoiceRepo struct {
	invoices map[id.ID]*invoice.Invoice
	items    []invoice.InvoiceItem
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[id.ID]*invoice.Invoice)}
}

func (r *fakeInvoiceRepo) Create(ctx context.Context, inv *invoice.Invoice) error {
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) SaveItems(ctx context.Context, items []invoice.InvoiceItem) error {
	r.items = append(r.items, items...)
	return nil
}

func (r *fakeInvoiceRepo) UpdateTotals(ctx context.Context, inv *invoice.Invoice) error {
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) UpdateStatus(ctx context.Context, invoiceID id.ID, status invoice.PaymentStatus) error {
	if inv, ok := r.invoices[invoiceID]; ok {
		inv.PaymentStatus = status
	}
	return nil
}

func (r *fakeInvoiceRepo) GetByID(ctx context.Context, invoiceID id.ID) (*invoice.Invoice, error) {
	if inv, ok := r.invoices[invoiceID]; ok {
		cp := *inv
		for _, item := range r.items {
			if item.InvoiceID == invoiceID {
				cp.Items = append(cp.Items, item)
			}
		}
		return &cp, nil
	}
	return nil, apperror.NewNotFound("invoice", invoiceID)
}

func (r *fakeInvoiceRepo) GetByNumber(ctx context.Context, number string) (*invoice.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.Number == number {
			return r.GetByID(ctx, inv.ID)
		}
	}
	return nil, apperror.NewNotFound("invoice", number)
}

func (r *fakeInvoiceRepo) List(ctx context.Context, filter invoice.Filter) ([]invoice.Invoice, error) {
	var out []invoice.Invoice
	for _, inv := range r.invoices {
		out = append(out, *inv)
	}
	return out, nil
}

type fakeInventoryRepo struct {
	products  map[id.ID]*inventory.Product
	movements []inventory.InventoryMovement
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{products: make(map[id.ID]*inventory.Product)}
}

func (r *fakeInventoryRepo) CreateProduct(ctx context.Context, p *inventory.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeInventoryRepo) UpdateProduct(ctx context.Context, p *inventory.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeInventoryRepo) GetProduct(ctx context.Context, productID id.ID) (*inventory.Product, error) {
	if p, ok := r.products[productID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, apperror.NewNotFound("product", productID)
}

func (r *fakeInventoryRepo) GetProductByCode(ctx context.Context, code string) (*inventory.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("product", code)
}

func (r *fakeInventoryRepo) ListProducts(ctx context.Context, filter inventory.ProductFilter) ([]inventory.Product, error) {
	return nil, nil
}

func (r *fakeInventoryRepo) ListLowStock(ctx context.Context) ([]inventory.Product, error) {
	return nil, nil
}

func (r *fakeInventoryRepo) GetProductsForSale(ctx context.Context, ids []id.ID) (map[id.ID]*inventory.Product, error) {
	out := make(map[id.ID]*inventory.Product, len(ids))
	for _, pid := range ids {
		if p, ok := r.products[pid]; ok {
			cp := *p
			out[pid] = &cp
		}
	}
	return out, nil
}

func (r *fakeInventoryRepo) DecrementStock(ctx context.Context, productID id.ID, quantity int) (bool, error) {
	p, ok := r.products[productID]
	if !ok {
		return false, apperror.NewNotFound("product", productID)
	}
	if p.Stock < quantity {
		return false, nil
	}
	p.Stock -= quantity
	return true, nil
}

func (r *fakeInventoryRepo) IncrementStock(ctx context.Context, productID id.ID, quantity int) error {
	if p, ok := r.products[productID]; ok {
		p.Stock += quantity
	}
	return nil
}

func (r *fakeInventoryRepo) CreateMovement(ctx context.Context, m *inventory.InventoryMovement) error {
	r.movements = append(r.movements, *m)
	return nil
}

func (r *fakeInventoryRepo) ListMovements(ctx context.Context, filter inventory.MovementFilter) ([]inventory.InventoryMovement, error) {
	return r.movements, nil
}

type fakeCustomerRepo struct {
	customers map[id.ID]*customer.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[id.ID]*customer.Customer)}
}

func (r *fakeCustomerRepo) Create(ctx context.Context, c *customer.Customer) error {
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, c *customer.Customer) error {
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) Get(ctx context.Context, customerID id.ID) (*customer.Customer, error) {
	if c, ok := r.customers[customerID]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, apperror.NewNotFound("customer", customerID)
}

func (r *fakeCustomerRepo) GetByDocument(ctx context.Context, documentNumber string) (*customer.Customer, error) {
	for _, c := range r.customers {
		if c.DocumentNumber == documentNumber {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("customer", documentNumber)
}

func (r *fakeCustomerRepo) List(ctx context.Context, filter customer.Filter) ([]customer.Customer, error) {
	return nil, nil
}

type fakeLedgerRepo struct {
	accounts map[id.ID]*ledger.Account
	byCode   map[string]*ledger.Account
	postings []ledger.Posting
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{
		accounts: make(map[id.ID]*ledger.Account),
		byCode:   make(map[string]*ledger.Account),
	}
}

func (r *fakeLedgerRepo) CreateAccount(ctx context.Context, a *ledger.Account) error {
	cp := *a
	r.accounts[a.ID] = &cp
	r.byCode[a.Code] = &cp
	return nil
}

func (r *fakeLedgerRepo) UpdateAccount(ctx context.Context, a *ledger.Account) error {
	return r.CreateAccount(ctx, a)
}

func (r *fakeLedgerRepo) GetAccount(ctx context.Context, accountID id.ID) (*ledger.Account, error) {
	if a, ok := r.accounts[accountID]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, apperror.NewNotFound("account", accountID)
}

func (r *fakeLedgerRepo) GetAccountByCode(ctx context.Context, code string) (*ledger.Account, error) {
	if a, ok := r.byCode[code]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, apperror.NewNotFound("account", code)
}

func (r *fakeLedgerRepo) ListAccounts(ctx context.Context, activeOnly bool) ([]ledger.Account, error) {
	return nil, nil
}

func (r *fakeLedgerRepo) HasPostings(ctx context.Context, accountID id.ID) (bool, error) {
	return false, nil
}

func (r *fakeLedgerRepo) CreatePostings(ctx context.Context, postings []ledger.Posting) error {
	r.postings = append(r.postings, postings...)
	return nil
}

func (r *fakeLedgerRepo) ListPostings(ctx context.Context, filter ledger.PostingFilter) ([]ledger.Posting, error) {
	return r.postings, nil
}

func (r *fakeLedgerRepo) SumPostings(ctx context.Context, accountID id.ID, until *time.Time) (ledger.BalanceSums, error) {
	sums := ledger.BalanceSums{Debits: types.Zero(), Credits: types.Zero()}
	for _, p := range r.postings {
		if p.AccountID == accountID {
			sums.Debits = sums.Debits.Add(p.Debit)
			sums.Credits = sums.Credits.Add(p.Credit)
		}
	}
	return sums, nil
}

// stubTxManager runs the function directly, no transaction semantics.
type stubTxManager struct{}

func (stubTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeNumberer allocates sequential numbers per day.
type fakeNumberer struct {
	counts map[string]int
}

func (n *fakeNumberer) Next(ctx context.Context, cfg sequence.Config, period time.Time) (string, error) {
	if n.counts == nil {
		n.counts = make(map[string]int)
	}
	day := period.Format("20060102")
	n.counts[day]++
	return fmt.Sprintf("INV-%s-%04d", day, n.counts[day]), nil
}

// --- fixture ---

type fixture struct {
	svc       *Service
	invoices  *fakeInvoiceRepo
	inventory *fakeInventoryRepo
	customers *fakeCustomerRepo
	ledger    *fakeLedgerRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		invoices:  newFakeInvoiceRepo(),
		inventory: newFakeInventoryRepo(),
		customers: newFakeCustomerRepo(),
		ledger:    newFakeLedgerRepo(),
	}

	ctx := context.Background()
	for _, a := range []*ledger.Account{
		ledger.NewAccount("1105", "CAJA", ledger.TypeAsset),
		ledger.NewAccount("1305", "CLIENTES", ledger.TypeAsset),
		ledger.NewAccount("2367", "IVA POR PAGAR", ledger.TypeLiability),
		ledger.NewAccount("4135", "COMERCIO", ledger.TypeIncome),
		ledger.NewAccount("6135", "COSTO DE VENTAS", ledger.TypeCost),
		ledger.NewAccount("1435", "MERCANCIAS", ledger.TypeAsset),
	} {
		require.NoError(t, f.ledger.CreateAccount(ctx, a))
	}

	f.svc = NewService(
		f.invoices,
		f.inventory,
		f.customers,
		ledger.NewService(f.ledger),
		&fakeNumberer{},
		stubTxManager{},
		Config{
			VATRate:      decimal.RequireFromString("0.19"),
			AccountCodes: ledger.DefaultAccountCodes(),
		},
	)
	return f
}

func (f *fixture) seedProduct(t *testing.T, code string, stock int, price, cost string) *inventory.Product {
	t.Helper()
	p := inventory.NewProduct(code, "Product "+code)
	p.UnitPrice = types.MustMoney(price)
	p.Cost = types.MustMoney(cost)
	p.Stock = stock
	require.NoError(t, f.inventory.CreateProduct(context.Background(), p))
	return p
}

func (f *fixture) accountByCode(code string) *ledger.Account {
	return f.ledger.byCode[code]
}

var saleDate = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

// --- tests ---

func TestCreateSale_CashHappyPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedProduct(t, "NB-001", 10, "20.00", "12.00")

	inv, err := f.svc.CreateSale(ctx, Input{
		Date:          saleDate,
		PaymentMethod: invoice.PaymentCash,
		Discount:      types.Zero(),
		Items:         []ItemInput{{ProductID: p.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-20260315-0001", inv.Number)
	assert.Equal(t, invoice.StatusPaid, inv.PaymentStatus)
	assert.True(t, inv.Subtotal.Equal(types.MustMoney("60.00")), "subtotal = %s", inv.Subtotal)
	assert.True(t, inv.Tax.Equal(types.MustMoney("11.40")), "tax = %s", inv.Tax)
	assert.True(t, inv.Total.Equal(types.MustMoney("71.40")), "total = %s", inv.Total)

	// Stock decremented, one sale movement recorded.
	updated, err := f.inventory.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Stock)
	require.Len(t, f.inventory.movements, 1)
	assert.Equal(t, inventory.MovementSale, f.inventory.movements[0].Type)
	assert.Equal(t, 3, f.inventory.movements[0].Quantity)
	assert.Contains(t, f.inventory.movements[0].Notes, inv.Number)
	assert.Equal(t, saleDate, f.inventory.movements[0].Date)

	// Exactly five postings, balanced, all dated with the sale date.
	require.Len(t, f.ledger.postings, 5)
	debits, credits := types.Zero(), types.Zero()
	for _, posting := range f.ledger.postings {
		debits = debits.Add(posting.Debit)
		credits = credits.Add(posting.Credit)
		assert.Equal(t, saleDate, posting.Date)
		assert.Equal(t, inv.Number, posting.Reference)
	}
	assert.True(t, debits.Equal(credits), "debits %s != credits %s", debits, credits)

	// Cash debited the full total; cost legs use 3 * 12.00 = 36.00.
	cash := f.accountByCode("1105")
	cogs := f.accountByCode("6135")
	merch := f.accountByCode("1435")
	for _, posting := range f.ledger.postings {
		switch posting.AccountID {
		case cash.ID:
			assert.True(t, posting.Debit.Equal(types.MustMoney("71.40")))
		case cogs.ID:
			assert.True(t, posting.Debit.Equal(types.MustMoney("36.00")))
		case merch.ID:
			assert.True(t, posting.Credit.Equal(types.MustMoney("36.00")))
		}
	}
}

func TestCreateSale_ZeroCostSkipsCostLegs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedProduct(t, "SRV-001", 10, "20.00", "0.00")

	inv, err := f.svc.CreateSale(ctx, Input{
		Date:          saleDate,
		PaymentMethod: invoice.PaymentCash,
		Discount:      types.Zero(),
		Items:         []ItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// No COGS or inventory legs at zero cost: a posting must carry exactly
	// one non-zero side, so the entry shrinks to cash, VAT and sales.
	require.Len(t, f.ledger.postings, 3)
	debits, credits := types.Zero(), types.Zero()
	for _, posting := range f.ledger.postings {
		debits = debits.Add(posting.Debit)
		credits = credits.Add(posting.Credit)
	}
	assert.True(t, debits.Equal(credits), "debits %s != credits %s", debits, credits)
	assert.True(t, debits.Equal(inv.Total))

	cogs := f.accountByCode("6135")
	merch := f.accountByCode("1435")
	for _, posting := range f.ledger.postings {
		assert.NotEqual(t, cogs.ID, posting.AccountID)
		assert.NotEqual(t, merch.ID, posting.AccountID)
	}
}

func TestCreateSale_LinePriceOverridesCatalog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedProduct(t, "NB-001", 10, "20.00", "12.00")

	registerPrice := types.MustMoney("15.00")
	inv, err := f.svc.CreateSale(ctx, Input{
		Date:          saleDate,
		PaymentMethod: invoice.PaymentCash,
		Discount:      types.Zero(),
		Items:         []ItemInput{{ProductID: p.ID, Quantity: 2, UnitPrice: &registerPrice}},
	})
	require.NoError(t, err)

	// Billed at the register price, not the catalog's 20.00.
	require.Len(t, inv.Items, 1)
	assert.True(t, inv.Items[0].UnitPrice.Equal(registerPrice))
	assert.True(t, inv.Subtotal.Equal(types.MustMoney("30.00")), "subtotal = %s", inv.Subtotal)
	assert.True(t, inv.Tax.Equal(types.MustMoney("5.70")), "tax = %s", inv.Tax)
	assert.True(t, inv.Total.Equal(types.MustMoney("35.70")), "total = %s", inv.Total)

	// Cost legs still use the catalog cost.
	cogs := f.accountByCode("6135")
	for _, posting := range f.ledger.postings {
		if posting.AccountID == cogs.ID {
			assert.True(t, posting.Debit.Equal(types.MustMoney("24.00")))
		}
	}

	// The catalog price itself is untouched.
	updated, err := f.inventory.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, updated.UnitPrice.Equal(types.MustMoney("20.00")))
}

func TestCreateSale_NegativeLinePriceRejected(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "NB-001", 10, "20.00", "12.00")

	negative := types.MustMoney("-1.00")
	_, err := f.svc.CreateSale(context.Background(), Input{
		Date:          saleDate,
		PaymentMethod: invoice.PaymentCash,
		Discount:      types.Zero(),
		Items:         []ItemInput{{ProductID: p.ID, Quantity: 1, UnitPrice: &negative}},
	})
	require.Error(t, err)
	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Empty(t, f.invoices.invoices)
}

func TestCreateSale_InsufficientStockWritesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedProduct(t, "NB-001", 2, "20.00", "12.00")

	_, err := f.svc.CreateSale(ctx, Input{
		Date:          saleDate,
		PaymentMethod: invoice.PaymentCash,
		Discount:      types.Zero(),
		Items:         []ItemInput{{ProductID: p.ID, Quantity: 3}},
	})
	require.Error(t, err)
	require.True(t, apperror.IsInsufficientStock(err))

	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, 2, appErr.Details["available"])
	assert.Equal(t, 3, appErr.Details["requested"])

	// Shortfall is detected before any write.
	assert.Empty(t, f.invoices.invoices)
	assert.Empty(t, f.inventory.movements)
	assert.Empty(t, f.ledger.postings)
	updated, _ := f.inventory.GetProduct(ctx, p.ID)
	assert.Equal(t, 2, updated.Stock)
}

func TestCreateSale_ShortfallOnAnyLineBlocksAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ok := f.seedProduct(t, "NB-001", 10, "20.00", "12.00")
	short := f.seedProduct(t, "PN-001", 1, "5.00", "2.00")

	_, err := f.svc.CreateSale(ctx, Input{
		Date:          saleDate,
		PaymentMethod: invoice.PaymentCash,
		Discount:      types.Zero(),
		Items: []ItemInput{
			{ProductID: ok.ID, Quantity: 2},
			{ProductID: short.ID, Quantity: 5},
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	// The in-stock line must not be touched either.
	updated, _ := f.inventory.GetProduct(ctx, ok.ID)
	assert.Equal(t, 10, updated.Stock)
	assert.Empty(t, f.inventory.movements)
}

func TestCreateSale_CreditUsesReceivableAndPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedProduct(t, "NB-001", 10, "20.00", "12.00")

	c := customer.NewCustomer(customer.DocumentCC, "1020304050", "Ana Torres")
	require.NoError(t, f.customers.Create(ctx, c))

	inv, err := f.svc.CreateSale(ctx, Input{
		Date:          saleDate,
		CustomerID:    &c.ID,
		PaymentMethod: invoice.PaymentCredit,
		Discount:      types.Zero(),
		Items:         []ItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, invoice.StatusPending, inv.PaymentStatus)

	receivable := f.accountByCode("1305")
	cash := f.accountByCode("1105")
	receivableDebit := types.Zero()
	for _, posting := range f.ledger.postings {
		require.NotEqual(t, cash.ID, posting.AccountID, "cash must not be touched on credit sales")
		if posting.AccountID == receivable.ID {
			receivableDebit = receivableDebit.Add(posting.Debit)
		}
	}
	assert.True(t, receivableDebit.Equal(inv.Total))
}

func TestCreateSale_MissingAccountIsConfigurationError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedProduct(t, "NB-001", 10, "20.00", "12.00")

	delete(f.ledger.byCode, "2367")

	_, err := f.svc.CreateSale(ctx, Input{
		Date:          saleDate,
		PaymentMethod: invoice.PaymentCash,
		Discount:      types.Zero(),
		Items:         []ItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsConfiguration(err))
	assert.Empty(t, f.ledger.postings)
}

func TestCreateSale_LostRaceIsConcurrentModification(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedProduct(t, "NB-001", 5, "20.00", "12.00")

	// Simulate another transaction taking the stock between the pre-check
	// and the decrement.
	raced := &racingInventoryRepo{fakeInventoryRepo: f.inventory, productID: p.ID}
	f.svc.products = raced

	_, err := f.svc.CreateSale(ctx, Input{
		Date:          saleDate,
		PaymentMethod: invoice.PaymentCash,
		Discount:      types.Zero(),
		Items:         []ItemInput{{ProductID: p.ID, Quantity: 3}},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsConcurrentModification(err))
}

type racingInventoryRepo struct {
	*fakeInventoryRepo
	productID id.ID
}

func (r *racingInventoryRepo) GetProductsForSale(ctx context.Context, ids []id.ID) (map[id.ID]*inventory.Product, error) {
	products, err := r.fakeInventoryRepo.GetProductsForSale(ctx, ids)
	if err != nil {
		return nil, err
	}
	// Drain the stock after the pre-check snapshot is taken.
	r.products[r.productID].Stock = 0
	return products, nil
}

func TestCreateSale_ZeroDateRejected(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "NB-001", 10, "20.00", "12.00")

	_, err := f.svc.CreateSale(context.Background(), Input{
		PaymentMethod: invoice.PaymentCash,
		Discount:      types.Zero(),
		Items:         []ItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	require.Error(t, err)
	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestCreateSale_NumbersIncrementWithinDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedProduct(t, "NB-001", 10, "20.00", "12.00")

	first, err := f.svc.CreateSale(ctx, Input{
		Date:          saleDate,
		PaymentMethod: invoice.PaymentCash,
		Discount:      types.Zero(),
		Items:         []ItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	second, err := f.svc.CreateSale(ctx, Input{
		Date:          saleDate,
		PaymentMethod: invoice.PaymentCash,
		Discount:      types.Zero(),
		Items:         []ItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-20260315-0001", first.Number)
	assert.Equal(t, "INV-20260315-0002", second.Number)
}
