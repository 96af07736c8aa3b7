package handlers

import (
	"constru_backend/internal/models"
	"constru_backend/internal/services"
	"constru_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// RecommendationHandler exposes personalized recommendations and the
// behavior analysis behind them.
type RecommendationHandler struct {
	*BaseHandler
	recService services.RecommendationService
}

func NewRecommendationHandler(base *BaseHandler, recService services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{BaseHandler: base, recService: recService}
}

func (h *RecommendationHandler) RegisterRoutes(protected *gin.RouterGroup) {
	recs := protected.Group("/recommendations")
	{
		recs.GET("", h.List)
		recs.PATCH("/:recommendationId/status", h.UpdateStatus)
		recs.POST("/:recommendationId/interactions", h.LogInteraction)
		recs.GET("/behavior", h.GetBehaviorPattern)
		recs.GET("/similar-users", h.GetSimilarUsers)
	}
}

// List godoc
// @Summary      List the current user's recommendations
// @Tags         recommendations
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Status filter" Enums(active, dismissed, converted, expired)
// @Param        limit query int false "Result cap (default 20)"
// @Success      200 {object} SuccessResponse{data=[]models.UserRecommendation}
// @Router       /recommendations [get]
func (h *RecommendationHandler) List(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var query dto.RecommendationListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	recs, err := h.recService.GetForUser(c.Request.Context(), h.GetDB(c), userID, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, recs)
}

// UpdateStatus godoc
// @Summary      Change a recommendation's status
// @Description  Converted and expired are terminal; a dismissed
// @Description  recommendation can be restored to active.
// @Tags         recommendations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        recommendationId path string true "Recommendation ID"
// @Param        request body dto.UpdateRecommendationStatusRequest true "New status"
// @Success      200 {object} SuccessResponse{data=models.UserRecommendation}
// @Failure      404 {object} apperrors.ErrorResponse
// @Failure      409 {object} apperrors.ErrorResponse
// @Router       /recommendations/{recommendationId}/status [patch]
func (h *RecommendationHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateRecommendationStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	rec, err := h.recService.UpdateStatus(c.Request.Context(), h.GetDB(c), userID,
		c.Param("recommendationId"), models.RecommendationStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, rec)
}

// LogInteraction godoc
// @Summary      Record an interaction with a recommendation
// @Description  The write is fire-and-forget: the endpoint acknowledges
// @Description  before the row is persisted.
// @Tags         recommendations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        recommendationId path string true "Recommendation ID"
// @Param        request body dto.LogInteractionRequest true "Interaction"
// @Success      202 {object} SuccessResponse
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /recommendations/{recommendationId}/interactions [post]
func (h *RecommendationHandler) LogInteraction(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.LogInteractionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	err := h.recService.LogInteraction(c.Request.Context(), h.GetDB(c), userID,
		c.Param("recommendationId"), models.InteractionType(req.InteractionType))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondAccepted(c, "Interaction recorded")
}

// GetBehaviorPattern godoc
// @Summary      Get the current user's activity profile
// @Description  Computed over the configured window and cached briefly.
// @Tags         recommendations
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} SuccessResponse{data=dto.BehaviorPattern}
// @Router       /recommendations/behavior [get]
func (h *RecommendationHandler) GetBehaviorPattern(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	pattern, err := h.recService.GetBehaviorPattern(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, pattern)
}

// GetSimilarUsers godoc
// @Summary      Rank users with similar favorite sets
// @Tags         recommendations
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Result cap (default 10)"
// @Success      200 {object} SuccessResponse{data=[]algorithms.SimilarUser}
// @Router       /recommendations/similar-users [get]
func (h *RecommendationHandler) GetSimilarUsers(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := parsePositiveInt(raw); err == nil {
			limit = parsed
		}
	}

	similar, err := h.recService.FindSimilarUsers(c.Request.Context(), h.GetDB(c), userID, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, similar)
}
