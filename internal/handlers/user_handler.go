package handlers

import (
	"constru_backend/internal/models"
	"constru_backend/internal/services"
	"constru_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes the own-profile endpoints and the admin directory.
type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{BaseHandler: base, userService: userService}
}

func (h *UserHandler) RegisterRoutes(protected, admin *gin.RouterGroup) {
	users := protected.Group("/users")
	{
		users.GET("/me", h.GetProfile)
		users.PUT("/me", h.UpdateProfile)
	}

	adminUsers := admin.Group("/users")
	{
		adminUsers.GET("", h.List)
		adminUsers.PATCH("/:userId/status", h.UpdateStatus)
		adminUsers.DELETE("/:userId", h.Delete)
	}
}

// GetProfile godoc
// @Summary      Get the current user's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} SuccessResponse{data=dto.UserResponse}
// @Router       /users/me [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, profile)
}

// UpdateProfile godoc
// @Summary      Update the current user's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UpdateProfileRequest true "Profile changes"
// @Success      200 {object} SuccessResponse{data=dto.UserResponse}
// @Router       /users/me [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	profile, err := h.userService.UpdateProfile(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, profile)
}

// List godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        role query string false "Role filter"
// @Param        status query string false "Status filter"
// @Param        q query string false "Email or name search"
// @Success      200 {object} PaginatedResponse
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	var query dto.UserListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	page, pageSize := h.ParsePagination(c)
	users, total, err := h.userService.List(c.Request.Context(), h.GetDB(c), &query, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondPaginated(c, users, total, page, pageSize)
}

// UpdateStatus godoc
// @Summary      Change a user's account status
// @Description  Suspension revokes every open session immediately.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId path string true "User ID"
// @Param        request body dto.UpdateUserStatusRequest true "New status"
// @Success      200 {object} SuccessResponse
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /users/{userId}/status [patch]
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateUserStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	err := h.userService.UpdateStatus(c.Request.Context(), h.GetDB(c),
		c.Param("userId"), models.UserStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondMessage(c, "User status updated")
}

// Delete godoc
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        userId path string true "User ID"
// @Success      200 {object} SuccessResponse
// @Router       /users/{userId} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), h.GetDB(c), c.Param("userId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondMessage(c, "User deleted")
}
