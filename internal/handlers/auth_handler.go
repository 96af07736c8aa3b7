package handlers

import (
	"constru_backend/internal/services"
	"constru_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes registration, login and session management.
type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{BaseHandler: base, authService: authService}
}

// RegisterRoutes mounts the public auth endpoints on public and the
// session endpoints on protected.
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	auth := public.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
		auth.POST("/verify-email", h.VerifyEmail)
		auth.POST("/password-reset", h.RequestPasswordReset)
		auth.POST("/password-reset/confirm", h.ResetPassword)
	}

	session := protected.Group("/auth")
	{
		session.POST("/logout-all", h.LogoutAll)
		session.POST("/change-password", h.ChangePassword)
	}
}

// Register godoc
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "Registration data"
// @Success      201 {object} SuccessResponse{data=dto.UserResponse}
// @Failure      400 {object} apperrors.ErrorResponse
// @Failure      409 {object} apperrors.ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondCreated(c, user)
}

// Login godoc
// @Summary      Log in with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Credentials"
// @Success      200 {object} SuccessResponse{data=dto.LoginResponse}
// @Failure      401 {object} apperrors.ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	session, err := h.authService.Login(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, session)
}

// Refresh godoc
// @Summary      Rotate a refresh token
// @Description  The presented token is revoked and a fresh pair is issued.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.RefreshTokenRequest true "Refresh token"
// @Success      200 {object} SuccessResponse{data=dto.LoginResponse}
// @Failure      401 {object} apperrors.ErrorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	session, err := h.authService.Refresh(c.Request.Context(), h.GetDB(c), req.RefreshToken)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, session)
}

// Logout godoc
// @Summary      Revoke one refresh token
// @Description  Idempotent: revoking an unknown or already revoked token succeeds.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LogoutRequest true "Refresh token"
// @Success      200 {object} SuccessResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authService.Logout(c.Request.Context(), h.GetDB(c), req.RefreshToken); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondMessage(c, "Logged out")
}

// LogoutAll godoc
// @Summary      Revoke every session of the current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} SuccessResponse
// @Router       /auth/logout-all [post]
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	if err := h.authService.LogoutAll(c.Request.Context(), h.GetDB(c), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondMessage(c, "All sessions revoked")
}

// VerifyEmail godoc
// @Summary      Verify an email address
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.VerifyEmailRequest true "Verification token"
// @Success      200 {object} SuccessResponse
// @Failure      401 {object} apperrors.ErrorResponse
// @Router       /auth/verify-email [post]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authService.VerifyEmail(c.Request.Context(), h.GetDB(c), req.Token); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondMessage(c, "Email verified")
}

// RequestPasswordReset godoc
// @Summary      Request a password reset link
// @Description  Always succeeds, whether or not the email is registered.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.PasswordResetRequest true "Account email"
// @Success      200 {object} SuccessResponse
// @Router       /auth/password-reset [post]
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.PasswordResetRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authService.RequestPasswordReset(c.Request.Context(), h.GetDB(c), req.Email); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondMessage(c, "If the email is registered, a reset link has been sent")
}

// ResetPassword godoc
// @Summary      Reset the password with a reset token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.PasswordResetConfirm true "Token and new password"
// @Success      200 {object} SuccessResponse
// @Failure      401 {object} apperrors.ErrorResponse
// @Router       /auth/password-reset/confirm [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.PasswordResetConfirm
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), h.GetDB(c), req.Token, req.NewPassword); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondMessage(c, "Password updated")
}

// ChangePassword godoc
// @Summary      Change the current user's password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.ChangePasswordRequest true "Current and new password"
// @Success      200 {object} SuccessResponse
// @Failure      401 {object} apperrors.ErrorResponse
// @Router       /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	err := h.authService.ChangePassword(c.Request.Context(), h.GetDB(c), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondMessage(c, "Password changed")
}
