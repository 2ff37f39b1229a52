package ledger

import (
	"context"
	"time"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/id"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/types"
)

// PostingFilter narrows posting queries.
type PostingFilter struct {
	AccountID *id.ID
	InvoiceID *id.ID
	DateFrom  *time.Time
	DateTo    *time.Time
	Limit     int
	Offset    int
}

// BalanceSums holds the raw debit and credit totals for an account.
type BalanceSums struct {
	Debits  types.Money `db:"debits"`
	Credits types.Money `db:"credits"`
}

// Repository is the persistence contract for accounts and postings.
type Repository interface {
	CreateAccount(ctx context.Context, account *Account) error
	UpdateAccount(ctx context.Context, account *Account) error
	GetAccount(ctx context.Context, accountID id.ID) (*Account, error)
	GetAccountByCode(ctx context.Context, code string) (*Account, error)
	ListAccounts(ctx context.Context, activeOnly bool) ([]Account, error)
	HasPostings(ctx context.Context, accountID id.ID) (bool, error)

	CreatePostings(ctx context.Context, postings []Posting) error
	ListPostings(ctx context.Context, filter PostingFilter) ([]Posting, error)
	SumPostings(ctx context.Context, accountID id.ID, until *time.Time) (BalanceSums, error)
}
