package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/apperror"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/id"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/types"
)

// fakeRepo is an in-memory Repository for service tests.
type fakeRepo struct {
	accounts map[id.ID]*Account
	byCode   map[string]*Account
	postings []Posting
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		accounts: make(map[id.ID]*Account),
		byCode:   make(map[string]*Account),
	}
}

func (r *fakeRepo) CreateAccount(ctx context.Context, account *Account) error {
	cp := *account
	r.accounts[account.ID] = &cp
	r.byCode[account.Code] = &cp
	return nil
}

func (r *fakeRepo) UpdateAccount(ctx context.Context, account *Account) error {
	cp := *account
	r.accounts[account.ID] = &cp
	r.byCode[account.Code] = &cp
	return nil
}

func (r *fakeRepo) GetAccount(ctx context.Context, accountID id.ID) (*Account, error) {
	if a, ok := r.accounts[accountID]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, apperror.NewNotFound("account", accountID)
}

func (r *fakeRepo) GetAccountByCode(ctx context.Context, code string) (*Account, error) {
	if a, ok := r.byCode[code]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, apperror.NewNotFound("account", code)
}

func (r *fakeRepo) ListAccounts(ctx context.Context, activeOnly bool) ([]Account, error) {
	var out []Account
	for _, a := range r.accounts {
		if activeOnly && !a.Active {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (r *fakeRepo) HasPostings(ctx context.Context, accountID id.ID) (bool, error) {
	for _, p := range r.postings {
		if p.AccountID == accountID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) CreatePostings(ctx context.Context, postings []Posting) error {
	r.postings = append(r.postings, postings...)
	return nil
}

func (r *fakeRepo) ListPostings(ctx context.Context, filter PostingFilter) ([]Posting, error) {
	var out []Posting
	for _, p := range r.postings {
		if filter.AccountID != nil && p.AccountID != *filter.AccountID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeRepo) SumPostings(ctx context.Context, accountID id.ID, until *time.Time) (BalanceSums, error) {
	sums := BalanceSums{Debits: types.Zero(), Credits: types.Zero()}
	for _, p := range r.postings {
		if p.AccountID != accountID {
			continue
		}
		if until != nil && p.Date.After(*until) {
			continue
		}
		sums.Debits = sums.Debits.Add(p.Debit)
		sums.Credits = sums.Credits.Add(p.Credit)
	}
	return sums, nil
}

func seedAccount(t *testing.T, repo *fakeRepo, code, name string, accountType AccountType) *Account {
	t.Helper()
	account := NewAccount(code, name, accountType)
	require.NoError(t, repo.CreateAccount(context.Background(), account))
	return account
}

func TestGetBalance_SignConvention(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	cash := seedAccount(t, repo, "1105", "CAJA", TypeAsset)
	sales := seedAccount(t, repo, "4135", "COMERCIO", TypeIncome)

	postings := []Posting{
		NewDebit(cash.ID, date, types.MustMoney("100"), "test sale"),
		NewCredit(sales.ID, date, types.MustMoney("100"), "test sale"),
	}
	require.NoError(t, svc.PostEntry(ctx, postings))

	// Asset debited 100 shows +100.
	cashBalance, err := svc.GetBalance(ctx, cash.ID, nil)
	require.NoError(t, err)
	assert.True(t, cashBalance.Equal(types.MustMoney("100")), "cash balance = %s", cashBalance)

	// Income credited 100 also shows +100, not -100.
	salesBalance, err := svc.GetBalance(ctx, sales.ID, nil)
	require.NoError(t, err)
	assert.True(t, salesBalance.Equal(types.MustMoney("100")), "sales balance = %s", salesBalance)
}

func TestPostEntry_RejectsUnbalanced(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	cash := seedAccount(t, repo, "1105", "CAJA", TypeAsset)
	sales := seedAccount(t, repo, "4135", "COMERCIO", TypeIncome)

	postings := []Posting{
		NewDebit(cash.ID, date, types.MustMoney("100"), "bad entry"),
		NewCredit(sales.ID, date, types.MustMoney("99.99"), "bad entry"),
	}

	err := svc.PostEntry(ctx, postings)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeBusinessRule, appErr.Code)
	assert.Empty(t, repo.postings, "unbalanced entry must not persist anything")
}

func TestPostEntry_RejectsPostingWithBothSides(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	cash := seedAccount(t, repo, "1105", "CAJA", TypeAsset)

	bad := NewDebit(cash.ID, date, types.MustMoney("50"), "both sides")
	bad.Credit = types.MustMoney("50")

	err := svc.PostEntry(ctx, []Posting{bad, NewCredit(cash.ID, date, types.Zero(), "zero")})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestResolvePostingAccounts_MissingIsConfigurationError(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	seedAccount(t, repo, "1105", "CAJA", TypeAsset)
	seedAccount(t, repo, "1305", "CLIENTES", TypeAsset)
	seedAccount(t, repo, "2367", "IVA POR PAGAR", TypeLiability)
	seedAccount(t, repo, "4135", "COMERCIO", TypeIncome)
	seedAccount(t, repo, "6135", "COSTO DE VENTAS", TypeCost)
	// 1435 deliberately missing.

	_, err := svc.ResolvePostingAccounts(ctx, DefaultAccountCodes())
	require.Error(t, err)
	assert.True(t, apperror.IsConfiguration(err))

	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, "1435", appErr.Details["code"])
	// The client-facing message stays generic.
	assert.NotContains(t, appErr.Message, "1435")
}

func TestResolvePostingAccounts_InactiveIsConfigurationError(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	cash := seedAccount(t, repo, "1105", "CAJA", TypeAsset)
	seedAccount(t, repo, "1305", "CLIENTES", TypeAsset)
	seedAccount(t, repo, "2367", "IVA POR PAGAR", TypeLiability)
	seedAccount(t, repo, "4135", "COMERCIO", TypeIncome)
	seedAccount(t, repo, "6135", "COSTO DE VENTAS", TypeCost)
	seedAccount(t, repo, "1435", "MERCANCIAS", TypeAsset)

	cash.Active = false
	require.NoError(t, repo.UpdateAccount(ctx, cash))

	_, err := svc.ResolvePostingAccounts(ctx, DefaultAccountCodes())
	require.Error(t, err)
	assert.True(t, apperror.IsConfiguration(err))
}

func TestUpdateAccount_TypeImmutableWithPostings(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	cash := seedAccount(t, repo, "1105", "CAJA", TypeAsset)
	sales := seedAccount(t, repo, "4135", "COMERCIO", TypeIncome)
	require.NoError(t, svc.PostEntry(ctx, []Posting{
		NewDebit(cash.ID, date, types.MustMoney("10"), "entry"),
		NewCredit(sales.ID, date, types.MustMoney("10"), "entry"),
	}))

	cash.Type = TypeExpense
	err := svc.UpdateAccount(ctx, cash)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeBusinessRule, appErr.Code)

	// Renaming without touching the type is still allowed.
	cash.Type = TypeAsset
	cash.Name = "CAJA GENERAL"
	require.NoError(t, svc.UpdateAccount(ctx, cash))
}

func TestCreateAccount_DuplicateCode(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.CreateAccount(ctx, NewAccount("1105", "CAJA", TypeAsset)))

	err := svc.CreateAccount(ctx, NewAccount("1105", "CAJA 2", TypeAsset))
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}
