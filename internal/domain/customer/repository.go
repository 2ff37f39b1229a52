package customer

import (
	"context"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/id"
)

// Filter narrows customer queries.
type Filter struct {
	Search     string
	ActiveOnly bool
	Limit      int
	Offset     int
}

// Repository is the persistence contract for customers.
type Repository interface {
	Create(ctx context.Context, customer *Customer) error
	Update(ctx context.Context, customer *Customer) error
	Get(ctx context.Context, customerID id.ID) (*Customer, error)
	GetByDocument(ctx context.Context, documentNumber string) (*Customer, error)
	List(ctx context.Context, filter Filter) ([]Customer, error)
}
