package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/reports"
	"github.com/Alejoxd70/sactpaper-stationery/internal/infrastructure/http/v1/dto"
)

// ReportHandler provides reporting endpoints.
type ReportHandler struct {
	BaseHandler
	service *reports.Service
}

// NewReportHandler creates a report handler.
func NewReportHandler(service *reports.Service) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) period(c *gin.Context) (reports.Period, bool) {
	from, ok := h.ParseDateQuery(c, "from")
	if !ok {
		return reports.Period{}, false
	}
	to, ok := h.ParseDateQuery(c, "to")
	if !ok {
		return reports.Period{}, false
	}
	if !to.IsZero() {
		// Inclusive end of day.
		to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return reports.Period{From: from, To: to}, true
}

// Sales returns the sales summary for a period.
// GET /api/v1/reports/sales
func (h *ReportHandler) Sales(c *gin.Context) {
	period, ok := h.period(c)
	if !ok {
		return
	}

	report, err := h.service.Sales(c.Request.Context(), period)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, report)
}

// Inventory returns the stock valuation snapshot.
// GET /api/v1/reports/inventory
func (h *ReportHandler) Inventory(c *gin.Context) {
	report, err := h.service.Inventory(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, report)
}

// ProfitLoss returns the income statement for a period.
// GET /api/v1/reports/profit-loss
func (h *ReportHandler) ProfitLoss(c *gin.Context) {
	period, ok := h.period(c)
	if !ok {
		return
	}

	report, err := h.service.ProfitLoss(c.Request.Context(), period)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, report)
}

// Balance returns the balance sheet as of a date. Defaults to today.
// GET /api/v1/reports/balance
func (h *ReportHandler) Balance(c *gin.Context) {
	asOf, ok := h.ParseDateQuery(c, "asOf")
	if !ok {
		return
	}
	if asOf.IsZero() {
		asOf = time.Now()
	}

	report, err := h.service.Balance(c.Request.Context(), asOf)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, report)
}

// TopProducts returns the best sellers for a period.
// GET /api/v1/reports/top-products
func (h *ReportHandler) TopProducts(c *gin.Context) {
	period, ok := h.period(c)
	if !ok {
		return
	}

	top, err := h.service.TopProducts(c.Request.Context(), period, h.ParseIntQuery(c, "limit", 5))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(top))
}

// Dashboard returns today's quick stats.
// GET /api/v1/reports/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	summary, err := h.service.Dashboard(c.Request.Context(), time.Now())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, summary)
}

// General returns the consolidated period report.
// GET /api/v1/reports/general
func (h *ReportHandler) General(c *gin.Context) {
	period, ok := h.period(c)
	if !ok {
		return
	}

	report, err := h.service.General(c.Request.Context(), period)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, report)
}
