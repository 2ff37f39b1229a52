// Package ledger provides the chart of accounts (PUC) and double-entry postings.
package ledger

import (
	"context"
	"time"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/apperror"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/id"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/types"
)

// AccountType classifies accounts for the balance sign convention.
type AccountType string

const (
	TypeAsset     AccountType = "asset"
	TypeLiability AccountType = "liability"
	TypeEquity    AccountType = "equity"
	TypeIncome    AccountType = "income"
	TypeExpense   AccountType = "expense"
	TypeCost      AccountType = "cost"
)

// DebitNormal reports whether the account type carries a debit-normal balance.
// Debit-normal accounts compute balance as debits - credits; all others invert.
func (t AccountType) DebitNormal() bool {
	return t == TypeAsset || t == TypeExpense || t == TypeCost
}

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	switch t {
	case TypeAsset, TypeLiability, TypeEquity, TypeIncome, TypeExpense, TypeCost:
		return true
	}
	return false
}

// Account is an entry in the hierarchical chart of accounts.
// Codes follow the PUC convention: "1" ACTIVO, "1105" CAJA, etc.
type Account struct {
	ID        id.ID       `db:"id" json:"id"`
	Code      string      `db:"code" json:"code"`
	Name      string      `db:"name" json:"name"`
	Type      AccountType `db:"type" json:"type"`
	ParentID  *id.ID      `db:"parent_id" json:"parentId,omitempty"`
	Active    bool        `db:"active" json:"active"`
	CreatedAt time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time   `db:"updated_at" json:"updatedAt"`
}

// NewAccount creates an account with a generated ID.
func NewAccount(code, name string, accountType AccountType) *Account {
	now := time.Now().UTC()
	return &Account{
		ID:        id.New(),
		Code:      code,
		Name:      name,
		Type:      accountType,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks account invariants.
func (a *Account) Validate(ctx context.Context) error {
	if a.Code == "" {
		return apperror.NewValidation("account code is required").
			WithDetail("field", "code")
	}
	if a.Name == "" {
		return apperror.NewValidation("account name is required").
			WithDetail("field", "name")
	}
	if !a.Type.Valid() {
		return apperror.NewValidation("invalid account type").
			WithDetail("field", "type").
			WithDetail("value", string(a.Type))
	}
	return nil
}

// Posting is a single debit or credit line in the ledger.
// Postings are append-only: never updated, never deleted.
type Posting struct {
	ID          id.ID       `db:"id" json:"id"`
	AccountID   id.ID       `db:"account_id" json:"accountId"`
	InvoiceID   *id.ID      `db:"invoice_id" json:"invoiceId,omitempty"`
	UserID      string      `db:"user_id" json:"userId,omitempty"`
	Date        time.Time   `db:"date" json:"date"`
	Description string      `db:"description" json:"description"`
	Debit       types.Money `db:"debit" json:"debit"`
	Credit      types.Money `db:"credit" json:"credit"`
	Reference   string      `db:"reference" json:"reference,omitempty"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
}

// NewDebit creates a debit posting against an account.
func NewDebit(accountID id.ID, date time.Time, amount types.Money, description string) Posting {
	return Posting{
		ID:          id.New(),
		AccountID:   accountID,
		Date:        date,
		Description: description,
		Debit:       amount,
		Credit:      types.Zero(),
		CreatedAt:   time.Now().UTC(),
	}
}

// NewCredit creates a credit posting against an account.
func NewCredit(accountID id.ID, date time.Time, amount types.Money, description string) Posting {
	return Posting{
		ID:          id.New(),
		AccountID:   accountID,
		Date:        date,
		Description: description,
		Debit:       types.Zero(),
		Credit:      amount,
		CreatedAt:   time.Now().UTC(),
	}
}

// ForInvoice tags the posting with its source invoice and reference number.
func (p Posting) ForInvoice(invoiceID id.ID, number, userID string) Posting {
	p.InvoiceID = &invoiceID
	p.Reference = number
	p.UserID = userID
	return p
}

// Validate checks posting invariants: exactly one of debit/credit is
// non-zero and neither side is negative.
func (p *Posting) Validate(ctx context.Context) error {
	if id.IsNil(p.AccountID) {
		return apperror.NewValidation("posting account is required").
			WithDetail("field", "accountId")
	}
	if p.Date.IsZero() {
		return apperror.NewValidation("posting date is required").
			WithDetail("field", "date")
	}
	if p.Debit.IsNegative() || p.Credit.IsNegative() {
		return apperror.NewValidation("posting amounts cannot be negative").
			WithDetail("debit", p.Debit).
			WithDetail("credit", p.Credit)
	}
	debitSet := p.Debit.IsPositive()
	creditSet := p.Credit.IsPositive()
	if debitSet == creditSet {
		return apperror.NewValidation("posting must have exactly one of debit or credit").
			WithDetail("debit", p.Debit).
			WithDetail("credit", p.Credit)
	}
	return nil
}

// AccountCodes names the well-known PUC codes the sale posting engine
// resolves at posting time. Values come from configuration so a different
// chart layout does not require touching orchestration code.
type AccountCodes struct {
	Cash        string // caja
	Receivable  string // clientes
	VATPayable  string // IVA por pagar
	SalesIncome string // comercio al por mayor y menor
	CostOfGoods string // costo de mercancías vendidas
	Inventory   string // inventario de mercancías
}

// DefaultAccountCodes returns the Colombian PUC codes the shop is seeded with.
func DefaultAccountCodes() AccountCodes {
	return AccountCodes{
		Cash:        "1105",
		Receivable:  "1305",
		VATPayable:  "2367",
		SalesIncome: "4135",
		CostOfGoods: "6135",
		Inventory:   "1435",
	}
}

// PostingAccounts holds the resolved accounts for a sale entry.
type PostingAccounts struct {
	Cash        *Account
	Receivable  *Account
	VATPayable  *Account
	SalesIncome *Account
	CostOfGoods *Account
	Inventory   *Account
}

// AccountBalance pairs an account with its signed balance.
type AccountBalance struct {
	AccountID id.ID       `json:"accountId"`
	Code      string      `json:"code"`
	Name      string      `json:"name"`
	Type      AccountType `json:"type"`
	Balance   types.Money `json:"balance"`
}
