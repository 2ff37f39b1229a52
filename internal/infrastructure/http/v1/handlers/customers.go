package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/customer"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/invoice"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/sale"
	"github.com/Alejoxd70/sactpaper-stationery/internal/infrastructure/http/v1/dto"
)

// CustomerHandler provides customer endpoints.
type CustomerHandler struct {
	BaseHandler
	service *customer.Service
	sales   *sale.Service
}

// NewCustomerHandler creates a customer handler.
func NewCustomerHandler(service *customer.Service, sales *sale.Service) *CustomerHandler {
	return &CustomerHandler{service: service, sales: sales}
}

// List returns customers.
// GET /api/v1/customers
func (h *CustomerHandler) List(c *gin.Context) {
	filter := customer.Filter{
		Search:     c.Query("search"),
		ActiveOnly: c.Query("all") == "",
		Limit:      h.ParseIntQuery(c, "limit", 50),
		Offset:     h.ParseIntQuery(c, "offset", 0),
	}

	customers, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(customers))
}

// Get returns one customer.
// GET /api/v1/customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	customerID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	found, err := h.service.Get(c.Request.Context(), customerID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, found)
}

// Create registers a customer.
// POST /api/v1/customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	created := customer.NewCustomer(customer.DocumentType(req.DocumentType), req.DocumentNumber, req.Name)
	created.Email = req.Email
	created.Phone = req.Phone
	created.Address = req.Address
	if req.Active != nil {
		created.Active = *req.Active
	}

	if err := h.service.Create(c.Request.Context(), created); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, created.ID.String())
}

// Update modifies a customer.
// PUT /api/v1/customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	customerID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated := customer.NewCustomer(customer.DocumentType(req.DocumentType), req.DocumentNumber, req.Name)
	updated.ID = customerID
	updated.Email = req.Email
	updated.Phone = req.Phone
	updated.Address = req.Address
	if req.Active != nil {
		updated.Active = *req.Active
	}

	if err := h.service.Update(c.Request.Context(), updated); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "customer updated")
}

// Invoices returns the customer's invoices.
// GET /api/v1/customers/:id/invoices
func (h *CustomerHandler) Invoices(c *gin.Context) {
	customerID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	filter := invoice.Filter{
		CustomerID: &customerID,
		Limit:      h.ParseIntQuery(c, "limit", 50),
		Offset:     h.ParseIntQuery(c, "offset", 0),
	}

	invoices, err := h.sales.ListInvoices(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(invoices))
}
