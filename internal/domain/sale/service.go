// Package sale orchestrates the atomic sale pipeline: invoice, stock
// movements and ledger postings commit together or not at all.
package sale

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/apperror"
	appctx "github.com/Alejoxd70/sactpaper-stationery/internal/core/context"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/id"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/tx"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/types"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/customer"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/inventory"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/invoice"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/ledger"
	"github.com/Alejoxd70/sactpaper-stationery/pkg/logger"
	"github.com/Alejoxd70/sactpaper-stationery/pkg/sequence"
)

// Numberer allocates document numbers inside the sale transaction.
// *sequence.Service satisfies it.
type Numberer interface {
	Next(ctx context.Context, cfg sequence.Config, period time.Time) (string, error)
}

// Config holds the accounting parameters of the pipeline.
type Config struct {
	VATRate      decimal.Decimal
	AccountCodes ledger.AccountCodes
}

// ItemInput is one requested sale line. UnitPrice lets the cashier price
// the line at the register; nil bills the catalog price.
type ItemInput struct {
	ProductID id.ID        `json:"productId"`
	Quantity  int          `json:"quantity"`
	UnitPrice *types.Money `json:"unitPrice,omitempty"`
}

// Input is a sale request.
type Input struct {
	Date          time.Time             `json:"date"`
	CustomerID    *id.ID                `json:"customerId,omitempty"`
	PaymentMethod invoice.PaymentMethod `json:"paymentMethod"`
	Discount      types.Money           `json:"discount"`
	Notes         string                `json:"notes,omitempty"`
	Items         []ItemInput           `json:"items"`
}

// Service runs the sale pipeline.
type Service struct {
	invoices  invoice.Repository
	products  inventory.Repository
	customers customer.Repository
	ledger    *ledger.Service
	numbers   Numberer
	txm       tx.Manager
	cfg       Config
}

// NewService creates the sale orchestrator.
func NewService(
	invoices invoice.Repository,
	products inventory.Repository,
	customers customer.Repository,
	ledgerSvc *ledger.Service,
	numbers Numberer,
	txm tx.Manager,
	cfg Config,
) *Service {
	return &Service{
		invoices:  invoices,
		products:  products,
		customers: customers,
		ledger:    ledgerSvc,
		numbers:   numbers,
		txm:       txm,
		cfg:       cfg,
	}
}

// CreateSale runs the whole pipeline in one transaction:
// stock pre-check, invoice number, header, items with conditional stock
// decrements and movement rows, totals, and the balanced ledger postings.
// Any failure rolls back everything.
//
// The caller-supplied date stamps the invoice, the movements and the
// postings, so a back-dated sale lands entirely in its accounting period.
func (s *Service) CreateSale(ctx context.Context, input Input) (*invoice.Invoice, error) {
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	var result *invoice.Invoice
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		inv, err := s.createSaleTx(ctx, input)
		if err != nil {
			return err
		}
		result = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "sale completed",
		"invoice", result.Number,
		"total", result.Total,
		"items", len(result.Items),
	)
	return result, nil
}

func (s *Service) validateInput(ctx context.Context, input Input) error {
	if input.Date.IsZero() {
		return apperror.NewValidation("sale date is required").
			WithDetail("field", "date")
	}
	if !input.PaymentMethod.Valid() {
		return apperror.NewValidation("invalid payment method").
			WithDetail("field", "paymentMethod").
			WithDetail("value", string(input.PaymentMethod))
	}
	if len(input.Items) == 0 {
		return apperror.NewValidation("sale must have at least one item").
			WithDetail("field", "items")
	}
	if input.Discount.IsNegative() {
		return apperror.NewValidation("discount cannot be negative").
			WithDetail("field", "discount")
	}
	seen := make(map[id.ID]bool, len(input.Items))
	for _, item := range input.Items {
		if id.IsNil(item.ProductID) {
			return apperror.NewValidation("item product is required").
				WithDetail("field", "items")
		}
		if item.Quantity <= 0 {
			return apperror.NewValidation("item quantity must be positive").
				WithDetail("field", "items").
				WithDetail("productId", item.ProductID)
		}
		if item.UnitPrice != nil && item.UnitPrice.IsNegative() {
			return apperror.NewValidation("item price cannot be negative").
				WithDetail("field", "items").
				WithDetail("productId", item.ProductID)
		}
		if seen[item.ProductID] {
			return apperror.NewValidation("duplicate product in sale").
				WithDetail("field", "items").
				WithDetail("productId", item.ProductID)
		}
		seen[item.ProductID] = true
	}
	if input.CustomerID != nil {
		if _, err := s.customers.Get(ctx, *input.CustomerID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) createSaleTx(ctx context.Context, input Input) (*invoice.Invoice, error) {
	products, err := s.precheckStock(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	number, err := s.numbers.Next(ctx, sequence.InvoiceConfig(), input.Date)
	if err != nil {
		return nil, err
	}

	userID := appctx.GetUserID(ctx)

	inv := invoice.NewInvoice(input.Date, input.PaymentMethod)
	inv.Number = number
	inv.CustomerID = input.CustomerID
	inv.UserID = userID
	inv.Discount = input.Discount
	inv.Notes = input.Notes

	if err := s.invoices.Create(ctx, inv); err != nil {
		return nil, err
	}

	movementNotes := fmt.Sprintf("Sale - Invoice %s", number)
	for _, line := range input.Items {
		product := products[line.ProductID]
		unitPrice := product.UnitPrice
		if line.UnitPrice != nil {
			unitPrice = *line.UnitPrice
		}
		inv.AddItem(product.ID, product.Name, line.Quantity, unitPrice, product.Cost)

		ok, err := s.products.DecrementStock(ctx, product.ID, line.Quantity)
		if err != nil {
			return nil, err
		}
		if !ok {
			// Pre-check passed, so someone else took the stock meanwhile.
			return nil, apperror.NewConcurrentModification("product", product.Code)
		}

		movement := inventory.NewMovement(product.ID, inventory.MovementSale, line.Quantity, input.Date, movementNotes)
		movement.UserID = userID
		if err := s.products.CreateMovement(ctx, movement); err != nil {
			return nil, err
		}
	}

	inv.RecalculateTotals(s.cfg.VATRate)
	if err := inv.Validate(ctx); err != nil {
		return nil, err
	}
	if err := s.invoices.SaveItems(ctx, inv.Items); err != nil {
		return nil, err
	}
	if err := s.invoices.UpdateTotals(ctx, inv); err != nil {
		return nil, err
	}

	if err := s.postSale(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

// precheckStock loads all sale products in one query and verifies
// existence, active flag and stock for every line before any write.
func (s *Service) precheckStock(ctx context.Context, items []ItemInput) (map[id.ID]*inventory.Product, error) {
	ids := make([]id.ID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.products.GetProductsForSale(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			return nil, apperror.NewNotFound("product", item.ProductID)
		}
		if !product.Active {
			return nil, apperror.NewBusinessRule(apperror.CodeBusinessRule, "product is not for sale").
				WithDetail("product", product.Code)
		}
		if product.Stock < item.Quantity {
			return nil, apperror.NewInsufficientStock(product.Name, product.Stock, item.Quantity)
		}
	}

	return products, nil
}

// postSale resolves the posting accounts and writes the journal entry:
//
//	debit  cash or receivable  total
//	credit VAT payable         tax
//	credit sales income        subtotal
//	debit  cost of goods sold  cost
//	credit inventory           cost
//
// Balanced by construction since total = subtotal + tax - discount and the
// cost legs mirror each other. Zero-amount legs are omitted.
func (s *Service) postSale(ctx context.Context, inv *invoice.Invoice) error {
	accounts, err := s.ledger.ResolvePostingAccounts(ctx, s.cfg.AccountCodes)
	if err != nil {
		return err
	}

	counterpart := accounts.Cash
	if inv.PaymentMethod.IsCredit() {
		counterpart = accounts.Receivable
	}

	description := fmt.Sprintf("Sale - Invoice %s", inv.Number)
	cost := inv.CostTotal()

	candidates := []ledger.Posting{
		ledger.NewDebit(counterpart.ID, inv.Date, inv.Total, description),
		ledger.NewCredit(accounts.VATPayable.ID, inv.Date, inv.Tax, description),
		ledger.NewCredit(accounts.SalesIncome.ID, inv.Date, inv.Subtotal.Sub(inv.Discount), description),
		ledger.NewDebit(accounts.CostOfGoods.ID, inv.Date, cost, description),
		ledger.NewCredit(accounts.Inventory.ID, inv.Date, cost, description),
	}

	postings := make([]ledger.Posting, 0, len(candidates))
	for _, p := range candidates {
		if p.Debit.IsZero() && p.Credit.IsZero() {
			continue
		}
		postings = append(postings, p.ForInvoice(inv.ID, inv.Number, inv.UserID))
	}

	return s.ledger.PostEntry(ctx, postings)
}

// GetInvoice returns an invoice with its items.
func (s *Service) GetInvoice(ctx context.Context, invoiceID id.ID) (*invoice.Invoice, error) {
	return s.invoices.GetByID(ctx, invoiceID)
}

// ListInvoices returns invoices matching the filter.
func (s *Service) ListInvoices(ctx context.Context, filter invoice.Filter) ([]invoice.Invoice, error) {
	return s.invoices.List(ctx, filter)
}

// ExportElectronic renders the invoice's electronic XML document.
func (s *Service) ExportElectronic(ctx context.Context, invoiceID id.ID) ([]byte, error) {
	inv, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	customerName := ""
	if inv.CustomerID != nil {
		c, err := s.customers.Get(ctx, *inv.CustomerID)
		if err != nil && !apperror.IsNotFound(err) {
			return nil, err
		}
		if c != nil {
			customerName = c.Name
		}
	}

	return inv.ToElectronic(customerName).Render()
}
