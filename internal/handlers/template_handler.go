package handlers

import (
	"constru_backend/internal/services"
	"constru_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// TemplateHandler exposes calculation templates and the favorites API.
type TemplateHandler struct {
	*BaseHandler
	templateService services.TemplateService
}

func NewTemplateHandler(base *BaseHandler, templateService services.TemplateService) *TemplateHandler {
	return &TemplateHandler{BaseHandler: base, templateService: templateService}
}

func (h *TemplateHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/templates", h.List)

	templates := protected.Group("/templates")
	{
		// Order matters: /favorites must not be captured by /:templateId.
		templates.GET("/favorites", h.GetFavorites)
		templates.GET("/:templateId", h.Get)
		templates.POST("", h.Create)
		templates.PUT("/:templateId", h.Update)
		templates.DELETE("/:templateId", h.Delete)
		templates.POST("/:templateId/favorite", h.ToggleFavorite)
	}
}

// List godoc
// @Summary      List calculation templates
// @Tags         templates
// @Produce      json
// @Param        q query string false "Name search"
// @Param        projectType query string false "Project type filter"
// @Success      200 {object} PaginatedResponse
// @Router       /templates [get]
func (h *TemplateHandler) List(c *gin.Context) {
	var query dto.TemplateListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	page, pageSize := h.ParsePagination(c)
	templates, total, err := h.templateService.List(c.Request.Context(), h.GetDB(c), &query, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondPaginated(c, templates, total, page, pageSize)
}

// Get godoc
// @Summary      Get a template
// @Description  Includes the caller's favorite flag and the template's
// @Description  overall favorite count.
// @Tags         templates
// @Produce      json
// @Security     BearerAuth
// @Param        templateId path string true "Template ID"
// @Success      200 {object} SuccessResponse{data=dto.TemplateDetail}
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /templates/{templateId} [get]
func (h *TemplateHandler) Get(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	detail, err := h.templateService.GetDetail(c.Request.Context(), h.GetDB(c), userID, c.Param("templateId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, detail)
}

// Create godoc
// @Summary      Create a template
// @Tags         templates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateTemplateRequest true "Template data"
// @Success      201 {object} SuccessResponse{data=models.CalculationTemplate}
// @Router       /templates [post]
func (h *TemplateHandler) Create(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTemplateRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	template, err := h.templateService.Create(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondCreated(c, template)
}

// Update godoc
// @Summary      Update a template
// @Tags         templates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        templateId path string true "Template ID"
// @Param        request body dto.UpdateTemplateRequest true "Changes"
// @Success      200 {object} SuccessResponse{data=models.CalculationTemplate}
// @Failure      403 {object} apperrors.ErrorResponse
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /templates/{templateId} [put]
func (h *TemplateHandler) Update(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTemplateRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	template, err := h.templateService.Update(c.Request.Context(), h.GetDB(c), userID, h.IsAdmin(c), c.Param("templateId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, template)
}

// Delete godoc
// @Summary      Delete a template
// @Tags         templates
// @Produce      json
// @Security     BearerAuth
// @Param        templateId path string true "Template ID"
// @Success      200 {object} SuccessResponse
// @Failure      403 {object} apperrors.ErrorResponse
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /templates/{templateId} [delete]
func (h *TemplateHandler) Delete(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	if err := h.templateService.Delete(c.Request.Context(), h.GetDB(c), userID, h.IsAdmin(c), c.Param("templateId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondMessage(c, "Template deleted")
}

// ToggleFavorite godoc
// @Summary      Toggle a template favorite
// @Description  Favorited templates are unfavorited and vice versa. The
// @Description  response reports the state after the toggle.
// @Tags         templates
// @Produce      json
// @Security     BearerAuth
// @Param        templateId path string true "Template ID"
// @Success      200 {object} SuccessResponse{data=dto.ToggleFavoriteResponse}
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /templates/{templateId}/favorite [post]
func (h *TemplateHandler) ToggleFavorite(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	result, err := h.templateService.ToggleFavorite(c.Request.Context(), h.GetDB(c), userID, c.Param("templateId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, result)
}

// GetFavorites godoc
// @Summary      List the current user's favorite templates
// @Description  Most recently favorited first. Templates deleted since
// @Description  being favorited are omitted.
// @Tags         templates
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} SuccessResponse{data=[]models.CalculationTemplate}
// @Router       /templates/favorites [get]
func (h *TemplateHandler) GetFavorites(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	templates, err := h.templateService.GetUserFavorites(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, templates)
}
