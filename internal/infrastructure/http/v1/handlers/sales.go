package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/apperror"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/id"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/types"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/invoice"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/sale"
	"github.com/Alejoxd70/sactpaper-stationery/internal/infrastructure/http/v1/dto"
)

// SaleHandler provides sale and invoice endpoints.
type SaleHandler struct {
	BaseHandler
	service *sale.Service
}

// NewSaleHandler creates a sale handler.
func NewSaleHandler(service *sale.Service) *SaleHandler {
	return &SaleHandler{service: service}
}

// Create records a sale. Stock, invoice and ledger postings commit together.
// POST /api/v1/sales
func (h *SaleHandler) Create(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	input, err := h.inputFromRequest(req)
	if err != nil {
		h.Error(c, err)
		return
	}

	inv, err := h.service.CreateSale(c.Request.Context(), input)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

// List returns invoices matching the filters.
// GET /api/v1/sales
func (h *SaleHandler) List(c *gin.Context) {
	filter := invoice.Filter{
		Limit:  h.ParseIntQuery(c, "limit", 50),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	if status := c.Query("status"); status != "" {
		paymentStatus := invoice.PaymentStatus(status)
		filter.Status = &paymentStatus
	}

	from, ok := h.ParseDateQuery(c, "from")
	if !ok {
		return
	}
	if !from.IsZero() {
		filter.DateFrom = &from
	}

	to, ok := h.ParseDateQuery(c, "to")
	if !ok {
		return
	}
	if !to.IsZero() {
		filter.DateTo = &to
	}

	invoices, err := h.service.ListInvoices(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(invoices))
}

// Get returns one invoice with its items.
// GET /api/v1/sales/:id
func (h *SaleHandler) Get(c *gin.Context) {
	invoiceID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	inv, err := h.service.GetInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, inv)
}

// Export renders the invoice as an electronic invoicing XML document.
// GET /api/v1/sales/:id/xml
func (h *SaleHandler) Export(c *gin.Context) {
	invoiceID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	data, err := h.service.ExportElectronic(c.Request.Context(), invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", data)
}

func (h *SaleHandler) inputFromRequest(req dto.CreateSaleRequest) (sale.Input, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return sale.Input{}, apperror.NewValidation("invalid date, expected YYYY-MM-DD").WithDetail("field", "date")
	}

	input := sale.Input{
		Date:          date,
		PaymentMethod: invoice.PaymentMethod(req.PaymentMethod),
		Discount:      types.Zero(),
		Notes:         req.Notes,
	}

	if req.CustomerID != nil {
		customerID, err := id.Parse(*req.CustomerID)
		if err != nil {
			return sale.Input{}, apperror.NewValidation("invalid customer id").WithDetail("field", "customerId")
		}
		input.CustomerID = &customerID
	}

	if req.Discount != "" {
		discount, err := types.NewMoneyFromString(req.Discount)
		if err != nil {
			return sale.Input{}, apperror.NewValidation("invalid discount").WithDetail("field", "discount")
		}
		input.Discount = discount
	}

	input.Items = make([]sale.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := id.Parse(item.ProductID)
		if err != nil {
			return sale.Input{}, apperror.NewValidation("invalid product id").WithDetail("field", "items.productId")
		}
		line := sale.ItemInput{ProductID: productID, Quantity: item.Quantity}
		if item.UnitPrice != "" {
			unitPrice, err := types.NewMoneyFromString(item.UnitPrice)
			if err != nil {
				return sale.Input{}, apperror.NewValidation("invalid unit price").WithDetail("field", "items.unitPrice")
			}
			line.UnitPrice = &unitPrice
		}
		input.Items = append(input.Items, line)
	}

	return input, nil
}
