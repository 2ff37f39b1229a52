package customer

import (
	"context"
	"time"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/apperror"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/id"
	"github.com/Alejoxd70/sactpaper-stationery/pkg/logger"
)

// Service implements customer management.
type Service struct {
	repo Repository
}

// NewService creates a customer service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new customer.
// Document numbers are unique across the catalog.
func (s *Service) Create(ctx context.Context, customer *Customer) error {
	if err := customer.Validate(ctx); err != nil {
		return err
	}

	existing, err := s.repo.GetByDocument(ctx, customer.DocumentNumber)
	if err != nil && !apperror.IsNotFound(err) {
		return err
	}
	if existing != nil {
		return apperror.NewDuplicate("customer", "documentNumber", customer.DocumentNumber)
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		return err
	}

	logger.Info(ctx, "customer created", "document", customer.DocumentNumber)
	return nil
}

// Update validates and stores customer changes.
func (s *Service) Update(ctx context.Context, customer *Customer) error {
	if err := customer.Validate(ctx); err != nil {
		return err
	}

	current, err := s.repo.Get(ctx, customer.ID)
	if err != nil {
		return err
	}

	if current.DocumentNumber != customer.DocumentNumber {
		existing, err := s.repo.GetByDocument(ctx, customer.DocumentNumber)
		if err != nil && !apperror.IsNotFound(err) {
			return err
		}
		if existing != nil {
			return apperror.NewDuplicate("customer", "documentNumber", customer.DocumentNumber)
		}
	}

	customer.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, customer)
}

// Get returns a customer by ID.
func (s *Service) Get(ctx context.Context, customerID id.ID) (*Customer, error) {
	return s.repo.Get(ctx, customerID)
}

// GetByDocument returns a customer by document number.
func (s *Service) GetByDocument(ctx context.Context, documentNumber string) (*Customer, error) {
	return s.repo.GetByDocument(ctx, documentNumber)
}

// List returns customers matching the filter.
func (s *Service) List(ctx context.Context, filter Filter) ([]Customer, error) {
	return s.repo.List(ctx, filter)
}
