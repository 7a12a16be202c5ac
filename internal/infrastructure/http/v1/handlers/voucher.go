package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripdesk/internal/core/apperror"
	"tripdesk/internal/core/id"
	"tripdesk/internal/domain"
	"tripdesk/internal/domain/documents/voucher"
	"tripdesk/internal/infrastructure/http/v1/dto"
)

// VoucherHandler provides HTTP handlers for payment vouchers.
type VoucherHandler struct {
	*BaseHandler
	service *voucher.Service
}

// NewVoucherHandler creates a new voucher handler.
func NewVoucherHandler(base *BaseHandler, service *voucher.Service) *VoucherHandler {
	return &VoucherHandler{BaseHandler: base, service: service}
}

// List handles GET /vouchers.
func (h *VoucherHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := domain.DefaultListFilter()
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", filter.Limit)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "")
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, v := range result.Items {
		items[i] = dto.FromVoucher(v)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /vouchers/:id.
func (h *VoucherHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	voucherID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	v, err := h.service.GetByID(ctx, voucherID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromVoucher(v))
}

// Create handles POST /vouchers.
// Recording a payment that covers the invoice total settles the invoice to
// PAID in the same transaction.
func (h *VoucherHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateVoucherRequest
	if !h.BindJSON(c, &req) {
		return
	}

	input, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	v, err := h.service.Create(ctx, input)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromVoucher(v))
}

// ListByInvoice handles GET /invoices/:id/vouchers.
func (h *VoucherHandler) ListByInvoice(c *gin.Context) {
	ctx := c.Request.Context()

	invoiceID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	vouchers, err := h.service.ListByInvoice(ctx, invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(vouchers))
	for i, v := range vouchers {
		items[i] = dto.FromVoucher(v)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}
