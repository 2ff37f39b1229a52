package inventory

import (
	"context"
	"time"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/apperror"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/id"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/tx"
	"github.com/Alejoxd70/sactpaper-stationery/pkg/logger"
)

// Service implements product catalog management and stock adjustments.
type Service struct {
	repo Repository
	txm  tx.Manager
}

// NewService creates an inventory service.
func NewService(repo Repository, txm tx.Manager) *Service {
	return &Service{repo: repo, txm: txm}
}

// CreateProduct validates and stores a new product.
func (s *Service) CreateProduct(ctx context.Context, product *Product) error {
	if err := product.Validate(ctx); err != nil {
		return err
	}

	existing, err := s.repo.GetProductByCode(ctx, product.Code)
	if err != nil && !apperror.IsNotFound(err) {
		return err
	}
	if existing != nil {
		return apperror.NewDuplicate("product", "code", product.Code)
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return err
	}

	logger.Info(ctx, "product created", "code", product.Code, "name", product.Name)
	return nil
}

// UpdateProduct updates catalog fields. Stock is not writable here:
// all stock changes go through Adjust or the sale pipeline so the
// movement trail stays complete.
func (s *Service) UpdateProduct(ctx context.Context, product *Product) error {
	if err := product.Validate(ctx); err != nil {
		return err
	}

	current, err := s.repo.GetProduct(ctx, product.ID)
	if err != nil {
		return err
	}

	product.Stock = current.Stock
	product.UpdatedAt = time.Now().UTC()
	return s.repo.UpdateProduct(ctx, product)
}

// GetProduct returns a product by ID.
func (s *Service) GetProduct(ctx context.Context, productID id.ID) (*Product, error) {
	return s.repo.GetProduct(ctx, productID)
}

// GetProductByCode returns a product by its catalog code.
func (s *Service) GetProductByCode(ctx context.Context, code string) (*Product, error) {
	return s.repo.GetProductByCode(ctx, code)
}

// ListProducts returns products matching the filter.
func (s *Service) ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error) {
	return s.repo.ListProducts(ctx, filter)
}

// ListLowStock returns active products at or below their reorder threshold.
func (s *Service) ListLowStock(ctx context.Context) ([]Product, error) {
	return s.repo.ListLowStock(ctx)
}

// ListMovements returns the stock movement trail.
func (s *Service) ListMovements(ctx context.Context, filter MovementFilter) ([]InventoryMovement, error) {
	return s.repo.ListMovements(ctx, filter)
}

// Adjust applies a manual stock movement (purchase receipt or adjustment)
// and records the movement row in one transaction.
//
// Outgoing movements use the same conditional decrement as sales, so an
// adjustment can never drive stock negative even under concurrent writes.
func (s *Service) Adjust(ctx context.Context, movement *InventoryMovement) error {
	if err := movement.Validate(ctx); err != nil {
		return err
	}
	if movement.Type == MovementSale {
		return apperror.NewValidation("sale movements are created by the sale pipeline").
			WithDetail("field", "type")
	}

	return s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		product, err := s.repo.GetProduct(ctx, movement.ProductID)
		if err != nil {
			return err
		}

		if movement.Type.IsOutgoing() {
			ok, err := s.repo.DecrementStock(ctx, product.ID, movement.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return apperror.NewInsufficientStock(product.Name, product.Stock, movement.Quantity)
			}
		} else {
			if err := s.repo.IncrementStock(ctx, product.ID, movement.Quantity); err != nil {
				return err
			}
		}

		if err := s.repo.CreateMovement(ctx, movement); err != nil {
			return err
		}

		logger.Info(ctx, "stock adjusted",
			"product", product.Code,
			"type", movement.Type,
			"quantity", movement.Quantity,
		)
		return nil
	})
}
