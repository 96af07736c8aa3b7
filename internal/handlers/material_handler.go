package handlers

import (
	"constru_backend/internal/services"
	"constru_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// MaterialHandler exposes the catalog: materials, categories, suppliers.
// Reads are public; writes are mounted on the admin group by the router.
type MaterialHandler struct {
	*BaseHandler
	materialService services.MaterialService
}

func NewMaterialHandler(base *BaseHandler, materialService services.MaterialService) *MaterialHandler {
	return &MaterialHandler{BaseHandler: base, materialService: materialService}
}

func (h *MaterialHandler) RegisterRoutes(public, admin *gin.RouterGroup) {
	materials := public.Group("/materials")
	{
		materials.GET("", h.Search)
		materials.GET("/:materialId", h.Get)
	}
	public.GET("/categories", h.ListCategories)
	public.GET("/suppliers", h.ListSuppliers)

	adminMaterials := admin.Group("/materials")
	{
		adminMaterials.POST("", h.Create)
		adminMaterials.PUT("/:materialId", h.Update)
		adminMaterials.DELETE("/:materialId", h.Deactivate)
	}
	admin.POST("/categories", h.CreateCategory)
	admin.POST("/suppliers", h.CreateSupplier)
}

// Search godoc
// @Summary      Search the material catalog
// @Tags         materials
// @Produce      json
// @Param        q query string false "Search term"
// @Param        categoryId query string false "Category filter"
// @Param        minPrice query number false "Minimum price"
// @Param        maxPrice query number false "Maximum price"
// @Success      200 {object} PaginatedResponse
// @Router       /materials [get]
func (h *MaterialHandler) Search(c *gin.Context) {
	var query dto.MaterialSearchQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	// Anonymous searches are served but not logged.
	userID := c.GetString(ContextUserIDKey)

	page, pageSize := h.ParsePagination(c)
	materials, total, err := h.materialService.Search(c.Request.Context(), h.GetDB(c), userID, &query, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondPaginated(c, materials, total, page, pageSize)
}

// Get godoc
// @Summary      Get a material
// @Tags         materials
// @Produce      json
// @Param        materialId path string true "Material ID"
// @Success      200 {object} SuccessResponse{data=models.Material}
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /materials/{materialId} [get]
func (h *MaterialHandler) Get(c *gin.Context) {
	material, err := h.materialService.GetByID(c.Request.Context(), h.GetDB(c), c.Param("materialId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, material)
}

// Create godoc
// @Summary      Create a material
// @Tags         materials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateMaterialRequest true "Material data"
// @Success      201 {object} SuccessResponse{data=models.Material}
// @Failure      409 {object} apperrors.ErrorResponse
// @Router       /materials [post]
func (h *MaterialHandler) Create(c *gin.Context) {
	var req dto.CreateMaterialRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	material, err := h.materialService.Create(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondCreated(c, material)
}

// Update godoc
// @Summary      Update a material
// @Tags         materials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        materialId path string true "Material ID"
// @Param        request body dto.UpdateMaterialRequest true "Changes"
// @Success      200 {object} SuccessResponse{data=models.Material}
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /materials/{materialId} [put]
func (h *MaterialHandler) Update(c *gin.Context) {
	var req dto.UpdateMaterialRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	material, err := h.materialService.Update(c.Request.Context(), h.GetDB(c), c.Param("materialId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, material)
}

// Deactivate godoc
// @Summary      Deactivate a material
// @Description  Soft removal: the material stays in order history but
// @Description  leaves the active catalog.
// @Tags         materials
// @Produce      json
// @Security     BearerAuth
// @Param        materialId path string true "Material ID"
// @Success      200 {object} SuccessResponse
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /materials/{materialId} [delete]
func (h *MaterialHandler) Deactivate(c *gin.Context) {
	if err := h.materialService.Deactivate(c.Request.Context(), h.GetDB(c), c.Param("materialId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondMessage(c, "Material deactivated")
}

// ListCategories godoc
// @Summary      List material categories
// @Tags         materials
// @Produce      json
// @Success      200 {object} SuccessResponse{data=[]models.MaterialCategory}
// @Router       /categories [get]
func (h *MaterialHandler) ListCategories(c *gin.Context) {
	categories, err := h.materialService.ListCategories(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, categories)
}

// CreateCategory godoc
// @Summary      Create a material category
// @Tags         materials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateCategoryRequest true "Category data"
// @Success      201 {object} SuccessResponse{data=models.MaterialCategory}
// @Router       /categories [post]
func (h *MaterialHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	category, err := h.materialService.CreateCategory(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondCreated(c, category)
}

// ListSuppliers godoc
// @Summary      List suppliers
// @Tags         materials
// @Produce      json
// @Success      200 {object} SuccessResponse{data=[]models.Supplier}
// @Router       /suppliers [get]
func (h *MaterialHandler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.materialService.ListSuppliers(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, suppliers)
}

// CreateSupplier godoc
// @Summary      Create a supplier
// @Tags         materials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateSupplierRequest true "Supplier data"
// @Success      201 {object} SuccessResponse{data=models.Supplier}
// @Router       /suppliers [post]
func (h *MaterialHandler) CreateSupplier(c *gin.Context) {
	var req dto.CreateSupplierRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	supplier, err := h.materialService.CreateSupplier(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondCreated(c, supplier)
}
