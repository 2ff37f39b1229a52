package ledger

import (
	"context"
	"time"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/apperror"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/id"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/types"
	"github.com/Alejoxd70/sactpaper-stationery/pkg/logger"
)

// Service implements chart of accounts management and posting.
type Service struct {
	repo Repository
}

// NewService creates a ledger service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateAccount validates and stores a new account.
func (s *Service) CreateAccount(ctx context.Context, account *Account) error {
	if err := account.Validate(ctx); err != nil {
		return err
	}

	existing, err := s.repo.GetAccountByCode(ctx, account.Code)
	if err != nil && !apperror.IsNotFound(err) {
		return err
	}
	if existing != nil {
		return apperror.NewDuplicate("account", "code", account.Code)
	}

	if account.ParentID != nil {
		if _, err := s.repo.GetAccount(ctx, *account.ParentID); err != nil {
			return err
		}
	}

	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return err
	}

	logger.Info(ctx, "account created", "code", account.Code, "type", account.Type)
	return nil
}

// UpdateAccount updates name, parent and active flag. The account type is
// immutable once the account has postings, since changing it would flip the
// sign of every historical balance.
func (s *Service) UpdateAccount(ctx context.Context, account *Account) error {
	if err := account.Validate(ctx); err != nil {
		return err
	}

	current, err := s.repo.GetAccount(ctx, account.ID)
	if err != nil {
		return err
	}

	if current.Type != account.Type {
		hasPostings, err := s.repo.HasPostings(ctx, account.ID)
		if err != nil {
			return err
		}
		if hasPostings {
			return apperror.NewBusinessRule(apperror.CodeBusinessRule, "cannot change type of an account with postings").
				WithDetail("code", account.Code)
		}
	}

	account.UpdatedAt = time.Now().UTC()
	return s.repo.UpdateAccount(ctx, account)
}

// GetAccount returns an account by ID.
func (s *Service) GetAccount(ctx context.Context, accountID id.ID) (*Account, error) {
	return s.repo.GetAccount(ctx, accountID)
}

// GetAccountByCode returns an account by its PUC code.
func (s *Service) GetAccountByCode(ctx context.Context, code string) (*Account, error) {
	return s.repo.GetAccountByCode(ctx, code)
}

// ListAccounts returns the chart of accounts.
func (s *Service) ListAccounts(ctx context.Context, activeOnly bool) ([]Account, error) {
	return s.repo.ListAccounts(ctx, activeOnly)
}

// GetBalance computes the signed balance of an account as of the given time
// (inclusive; nil means all postings).
//
// Asset, expense and cost accounts are debit-normal: balance = debits - credits.
// Liability, equity and income accounts invert: balance = credits - debits.
// A cash account that received 100 in debits shows +100; a sales account that
// received 100 in credits also shows +100.
func (s *Service) GetBalance(ctx context.Context, accountID id.ID, until *time.Time) (types.Money, error) {
	account, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return types.Zero(), err
	}

	sums, err := s.repo.SumPostings(ctx, accountID, until)
	if err != nil {
		return types.Zero(), err
	}

	if account.Type.DebitNormal() {
		return sums.Debits.Sub(sums.Credits), nil
	}
	return sums.Credits.Sub(sums.Debits), nil
}

// ResolvePostingAccounts looks up the configured sale posting accounts by
// code. A missing or inactive account is a configuration error: the operator
// has to fix the chart of accounts, the cashier cannot.
func (s *Service) ResolvePostingAccounts(ctx context.Context, codes AccountCodes) (*PostingAccounts, error) {
	resolve := func(code, role string) (*Account, error) {
		account, err := s.repo.GetAccountByCode(ctx, code)
		if err != nil {
			if apperror.IsNotFound(err) {
				return nil, apperror.NewConfiguration("chart of accounts is missing a required account").
					WithDetail("code", code).
					WithDetail("role", role)
			}
			return nil, err
		}
		if !account.Active {
			return nil, apperror.NewConfiguration("required account is inactive").
				WithDetail("code", code).
				WithDetail("role", role)
		}
		return account, nil
	}

	var (
		accounts PostingAccounts
		err      error
	)
	if accounts.Cash, err = resolve(codes.Cash, "cash"); err != nil {
		return nil, err
	}
	if accounts.Receivable, err = resolve(codes.Receivable, "receivable"); err != nil {
		return nil, err
	}
	if accounts.VATPayable, err = resolve(codes.VATPayable, "vat_payable"); err != nil {
		return nil, err
	}
	if accounts.SalesIncome, err = resolve(codes.SalesIncome, "sales_income"); err != nil {
		return nil, err
	}
	if accounts.CostOfGoods, err = resolve(codes.CostOfGoods, "cost_of_goods"); err != nil {
		return nil, err
	}
	if accounts.Inventory, err = resolve(codes.Inventory, "inventory"); err != nil {
		return nil, err
	}
	return &accounts, nil
}

// PostEntry stores a balanced set of postings.
// Every posting is validated individually and the set must satisfy
// sum(debits) == sum(credits) exactly.
func (s *Service) PostEntry(ctx context.Context, postings []Posting) error {
	if len(postings) == 0 {
		return apperror.NewValidation("journal entry has no postings")
	}

	debits := types.Zero()
	credits := types.Zero()
	for i := range postings {
		if err := postings[i].Validate(ctx); err != nil {
			return err
		}
		debits = debits.Add(postings[i].Debit)
		credits = credits.Add(postings[i].Credit)
	}

	if !debits.Equal(credits) {
		return apperror.NewBusinessRule(apperror.CodeBusinessRule, "journal entry is not balanced").
			WithDetail("debits", debits).
			WithDetail("credits", credits)
	}

	return s.repo.CreatePostings(ctx, postings)
}

// ListPostings returns postings matching the filter.
func (s *Service) ListPostings(ctx context.Context, filter PostingFilter) ([]Posting, error) {
	return s.repo.ListPostings(ctx, filter)
}
