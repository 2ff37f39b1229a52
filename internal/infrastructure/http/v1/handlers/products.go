package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/apperror"
	appctx "github.com/Alejoxd70/sactpaper-stationery/internal/core/context"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/types"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/inventory"
	"github.com/Alejoxd70/sactpaper-stationery/internal/infrastructure/http/v1/dto"
)

// ProductHandler provides product catalog and stock endpoints.
type ProductHandler struct {
	BaseHandler
	service *inventory.Service
}

// NewProductHandler creates a product handler.
func NewProductHandler(service *inventory.Service) *ProductHandler {
	return &ProductHandler{service: service}
}

// List returns products.
// GET /api/v1/products
func (h *ProductHandler) List(c *gin.Context) {
	filter := inventory.ProductFilter{
		Category:   c.Query("category"),
		Search:     c.Query("search"),
		ActiveOnly: c.Query("all") == "",
		Limit:      h.ParseIntQuery(c, "limit", 50),
		Offset:     h.ParseIntQuery(c, "offset", 0),
	}

	products, err := h.service.ListProducts(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(products))
}

// Get returns one product.
// GET /api/v1/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	product, err := h.service.GetProduct(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, product)
}

// Create adds a product to the catalog.
// POST /api/v1/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	product, err := h.productFromRequest(req)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.CreateProduct(c.Request.Context(), product); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, product.ID.String())
}

// Update modifies catalog fields of a product.
// PUT /api/v1/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	product, err := h.productFromRequest(req)
	if err != nil {
		h.Error(c, err)
		return
	}
	product.ID = productID

	if err := h.service.UpdateProduct(c.Request.Context(), product); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "product updated")
}

// Adjust applies a manual stock movement.
// POST /api/v1/products/:id/adjust
func (h *ProductHandler) Adjust(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.AdjustStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid date, expected YYYY-MM-DD").WithDetail("field", "date"))
		return
	}

	movement := inventory.NewMovement(productID, inventory.MovementType(req.Type), req.Quantity, date, req.Notes)
	movement.UserID = appctx.GetUserID(c.Request.Context())

	if err := h.service.Adjust(c.Request.Context(), movement); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "stock adjusted")
}

// Movements returns the stock movement trail for a product.
// GET /api/v1/products/:id/movements
func (h *ProductHandler) Movements(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	filter := inventory.MovementFilter{
		ProductID: &productID,
		Limit:     h.ParseIntQuery(c, "limit", 50),
		Offset:    h.ParseIntQuery(c, "offset", 0),
	}

	movements, err := h.service.ListMovements(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(movements))
}

// LowStock returns products at or below their reorder threshold.
// GET /api/v1/products/low-stock
func (h *ProductHandler) LowStock(c *gin.Context) {
	products, err := h.service.ListLowStock(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(products))
}

func (h *ProductHandler) productFromRequest(req dto.CreateProductRequest) (*inventory.Product, error) {
	unitPrice, err := types.NewMoneyFromString(req.UnitPrice)
	if err != nil {
		return nil, apperror.NewValidation("invalid unit price").WithDetail("field", "unitPrice")
	}
	cost, err := types.NewMoneyFromString(req.Cost)
	if err != nil {
		return nil, apperror.NewValidation("invalid cost").WithDetail("field", "cost")
	}

	product := inventory.NewProduct(req.Code, req.Name)
	product.Description = req.Description
	product.Category = req.Category
	product.UnitPrice = unitPrice
	product.Cost = cost
	product.Stock = req.Stock
	product.MinStock = req.MinStock
	if req.Active != nil {
		product.Active = *req.Active
	}
	return product, nil
}
