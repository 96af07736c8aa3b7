package handlers

import (
	"constru_backend/internal/models"
	"constru_backend/internal/services"
	"constru_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// BudgetHandler exposes estimation budgets.
type BudgetHandler struct {
	*BaseHandler
	budgetService services.BudgetService
}

func NewBudgetHandler(base *BaseHandler, budgetService services.BudgetService) *BudgetHandler {
	return &BudgetHandler{BaseHandler: base, budgetService: budgetService}
}

func (h *BudgetHandler) RegisterRoutes(protected *gin.RouterGroup) {
	budgets := protected.Group("/budgets")
	{
		budgets.POST("", h.Create)
		budgets.GET("", h.List)
		budgets.GET("/:budgetId", h.Get)
		budgets.PUT("/:budgetId/items", h.ReplaceItems)
		budgets.PATCH("/:budgetId/status", h.UpdateStatus)
		budgets.DELETE("/:budgetId", h.Delete)
	}
}

// Create godoc
// @Summary      Create a budget
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBudgetRequest true "Budget data"
// @Success      201 {object} SuccessResponse{data=models.Budget}
// @Router       /budgets [post]
func (h *BudgetHandler) Create(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBudgetRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	budget, err := h.budgetService.Create(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondCreated(c, budget)
}

// List godoc
// @Summary      List the current user's budgets
// @Tags         budgets
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} PaginatedResponse
// @Router       /budgets [get]
func (h *BudgetHandler) List(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	page, pageSize := h.ParsePagination(c)
	budgets, total, err := h.budgetService.List(c.Request.Context(), h.GetDB(c), userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondPaginated(c, budgets, total, page, pageSize)
}

// Get godoc
// @Summary      Get a budget
// @Tags         budgets
// @Produce      json
// @Security     BearerAuth
// @Param        budgetId path string true "Budget ID"
// @Success      200 {object} SuccessResponse{data=models.Budget}
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /budgets/{budgetId} [get]
func (h *BudgetHandler) Get(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	budget, err := h.budgetService.GetByID(c.Request.Context(), h.GetDB(c), userID, h.IsAdmin(c), c.Param("budgetId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, budget)
}

// ReplaceItems godoc
// @Summary      Replace a budget's item set
// @Description  The whole item set and the recomputed total are swapped in
// @Description  one transaction. Only draft budgets are editable.
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        budgetId path string true "Budget ID"
// @Param        request body dto.ReplaceBudgetItemsRequest true "New items"
// @Success      200 {object} SuccessResponse{data=models.Budget}
// @Failure      409 {object} apperrors.ErrorResponse
// @Router       /budgets/{budgetId}/items [put]
func (h *BudgetHandler) ReplaceItems(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.ReplaceBudgetItemsRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	budget, err := h.budgetService.ReplaceItems(c.Request.Context(), h.GetDB(c), userID, c.Param("budgetId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, budget)
}

// UpdateStatus godoc
// @Summary      Change a budget's status
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        budgetId path string true "Budget ID"
// @Param        request body dto.UpdateBudgetStatusRequest true "New status"
// @Success      200 {object} SuccessResponse{data=models.Budget}
// @Failure      409 {object} apperrors.ErrorResponse
// @Router       /budgets/{budgetId}/status [patch]
func (h *BudgetHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateBudgetStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	budget, err := h.budgetService.UpdateStatus(c.Request.Context(), h.GetDB(c), userID, h.IsAdmin(c),
		c.Param("budgetId"), models.BudgetStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, budget)
}

// Delete godoc
// @Summary      Delete a budget
// @Tags         budgets
// @Produce      json
// @Security     BearerAuth
// @Param        budgetId path string true "Budget ID"
// @Success      200 {object} SuccessResponse
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /budgets/{budgetId} [delete]
func (h *BudgetHandler) Delete(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	if err := h.budgetService.Delete(c.Request.Context(), h.GetDB(c), userID, c.Param("budgetId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondMessage(c, "Budget deleted")
}
