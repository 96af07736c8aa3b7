package handlers

import (
	"constru_backend/internal/services"
	"constru_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// InvoiceHandler exposes invoice issuance and settlement.
type InvoiceHandler struct {
	*BaseHandler
	invoiceService services.InvoiceService
}

func NewInvoiceHandler(base *BaseHandler, invoiceService services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{BaseHandler: base, invoiceService: invoiceService}
}

func (h *InvoiceHandler) RegisterRoutes(protected, admin *gin.RouterGroup) {
	invoices := protected.Group("/invoices")
	{
		invoices.POST("", h.Issue)
		invoices.GET("", h.List)
		invoices.GET("/:invoiceId", h.Get)
	}

	adminInvoices := admin.Group("/invoices")
	{
		adminInvoices.POST("/:invoiceId/pay", h.MarkPaid)
		adminInvoices.POST("/:invoiceId/void", h.Void)
	}
}

// Issue godoc
// @Summary      Issue an invoice for an order
// @Description  One invoice per order; the order must be confirmed.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.IssueInvoiceRequest true "Order reference"
// @Success      201 {object} SuccessResponse{data=models.Invoice}
// @Failure      409 {object} apperrors.ErrorResponse
// @Router       /invoices [post]
func (h *InvoiceHandler) Issue(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.IssueInvoiceRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.Issue(c.Request.Context(), h.GetDB(c), userID, h.IsAdmin(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondCreated(c, invoice)
}

// List godoc
// @Summary      List the current user's invoices
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} PaginatedResponse
// @Router       /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	page, pageSize := h.ParsePagination(c)
	invoices, total, err := h.invoiceService.List(c.Request.Context(), h.GetDB(c), userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondPaginated(c, invoices, total, page, pageSize)
}

// Get godoc
// @Summary      Get an invoice
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        invoiceId path string true "Invoice ID"
// @Success      200 {object} SuccessResponse{data=models.Invoice}
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /invoices/{invoiceId} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), h.GetDB(c), userID, h.IsAdmin(c), c.Param("invoiceId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, invoice)
}

// MarkPaid godoc
// @Summary      Mark an invoice paid
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        invoiceId path string true "Invoice ID"
// @Success      200 {object} SuccessResponse{data=models.Invoice}
// @Failure      409 {object} apperrors.ErrorResponse
// @Router       /invoices/{invoiceId}/pay [post]
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	invoice, err := h.invoiceService.MarkPaid(c.Request.Context(), h.GetDB(c), c.Param("invoiceId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, invoice)
}

// Void godoc
// @Summary      Void an invoice
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        invoiceId path string true "Invoice ID"
// @Success      200 {object} SuccessResponse
// @Failure      409 {object} apperrors.ErrorResponse
// @Router       /invoices/{invoiceId}/void [post]
func (h *InvoiceHandler) Void(c *gin.Context) {
	if err := h.invoiceService.Void(c.Request.Context(), h.GetDB(c), c.Param("invoiceId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondMessage(c, "Invoice voided")
}
