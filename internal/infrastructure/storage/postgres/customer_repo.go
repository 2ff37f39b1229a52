package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/apperror"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/id"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/customer"
)

const customersTable = "customers"

// CustomerRepo implements customer.Repository.
type CustomerRepo struct {
	txm     *TxManager
	builder squirrel.StatementBuilderType
}

// NewCustomerRepo creates a customer repository.
func NewCustomerRepo(txm *TxManager) *CustomerRepo {
	return &CustomerRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var _ customer.Repository = (*CustomerRepo)(nil)

var customerColumns = []string{
	"id", "document_type", "document_number", "name",
	"email", "phone", "address", "active", "created_at", "updated_at",
}

// Create inserts a customer.
func (r *CustomerRepo) Create(ctx context.Context, c *customer.Customer) error {
	q := r.builder.Insert(customersTable).
		Columns(customerColumns...).
		Values(
			c.ID, c.DocumentType, c.DocumentNumber, c.Name,
			c.Email, c.Phone, c.Address, c.Active, c.CreatedAt, c.UpdatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// Update updates a customer.
func (r *CustomerRepo) Update(ctx context.Context, c *customer.Customer) error {
	q := r.builder.Update(customersTable).
		Set("document_type", c.DocumentType).
		Set("document_number", c.DocumentNumber).
		Set("name", c.Name).
		Set("email", c.Email).
		Set("phone", c.Phone).
		Set("address", c.Address).
		Set("active", c.Active).
		Set("updated_at", c.UpdatedAt).
		Where(squirrel.Eq{"id": c.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("customer", c.ID)
	}
	return nil
}

// Get returns a customer by ID.
func (r *CustomerRepo) Get(ctx context.Context, customerID id.ID) (*customer.Customer, error) {
	return r.get(ctx, squirrel.Eq{"id": customerID}, customerID)
}

// GetByDocument returns a customer by document number.
func (r *CustomerRepo) GetByDocument(ctx context.Context, documentNumber string) (*customer.Customer, error) {
	return r.get(ctx, squirrel.Eq{"document_number": documentNumber}, documentNumber)
}

func (r *CustomerRepo) get(ctx context.Context, where squirrel.Eq, key any) (*customer.Customer, error) {
	q := r.builder.Select(customerColumns...).
		From(customersTable).
		Where(where).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var c customer.Customer
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &c, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("customer", key)
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// List returns customers matching the filter.
func (r *CustomerRepo) List(ctx context.Context, filter customer.Filter) ([]customer.Customer, error) {
	q := r.builder.Select(customerColumns...).
		From(customersTable).
		OrderBy("name")

	if filter.ActiveOnly {
		q = q.Where(squirrel.Eq{"active": true})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"document_number": pattern},
		})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var customers []customer.Customer
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &customers, sql, args...); err != nil {
		return nil, fmt.Errorf("select customers: %w", err)
	}
	return customers, nil
}
