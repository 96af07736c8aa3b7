package handlers

import (
	"constru_backend/internal/models"
	"constru_backend/internal/services"
	"constru_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// OrderHandler exposes order placement and tracking.
type OrderHandler struct {
	*BaseHandler
	orderService services.OrderService
}

func NewOrderHandler(base *BaseHandler, orderService services.OrderService) *OrderHandler {
	return &OrderHandler{BaseHandler: base, orderService: orderService}
}

func (h *OrderHandler) RegisterRoutes(protected *gin.RouterGroup) {
	orders := protected.Group("/orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.GET("/:orderId", h.Get)
		orders.PATCH("/:orderId/status", h.UpdateStatus)
	}
}

// Create godoc
// @Summary      Place an order
// @Description  Stock is reserved for every item inside one transaction.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateOrderRequest true "Order items"
// @Success      201 {object} SuccessResponse{data=models.Order}
// @Failure      400 {object} apperrors.ErrorResponse
// @Failure      409 {object} apperrors.ErrorResponse
// @Router       /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateOrderRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondCreated(c, order)
}

// List godoc
// @Summary      List the current user's orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Status filter"
// @Success      200 {object} PaginatedResponse
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var query dto.OrderListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	page, pageSize := h.ParsePagination(c)
	orders, total, err := h.orderService.List(c.Request.Context(), h.GetDB(c), userID, &query, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondPaginated(c, orders, total, page, pageSize)
}

// Get godoc
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        orderId path string true "Order ID"
// @Success      200 {object} SuccessResponse{data=models.Order}
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /orders/{orderId} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), h.GetDB(c), userID, h.IsAdmin(c), c.Param("orderId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, order)
}

// UpdateStatus godoc
// @Summary      Change an order's status
// @Description  Customers may only cancel; other transitions are admin
// @Description  operations. Cancellation returns the reserved stock.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        orderId path string true "Order ID"
// @Param        request body dto.UpdateOrderStatusRequest true "New status"
// @Success      200 {object} SuccessResponse{data=models.Order}
// @Failure      409 {object} apperrors.ErrorResponse
// @Router       /orders/{orderId}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateOrderStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), h.GetDB(c), userID, h.IsAdmin(c),
		c.Param("orderId"), models.OrderStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, order)
}
