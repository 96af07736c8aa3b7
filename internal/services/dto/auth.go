package dto

import "constru_backend/internal/models"

type RegisterRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required,min=8"`
	Name     string `json:"name" binding:"required" validate:"required,min=2,max=120"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
	Role     string `json:"role" validate:"omitempty,is-user-role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required" validate:"required"`
}

type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required" validate:"required"`
}

type PasswordResetRequest struct {
	Email string `json:"email" binding:"required" validate:"required,email"`
}

type PasswordResetConfirm struct {
	Token       string `json:"token" binding:"required" validate:"required"`
	NewPassword string `json:"newPassword" binding:"required" validate:"required,min=8"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required" validate:"required"`
	NewPassword     string `json:"newPassword" binding:"required" validate:"required,min=8"`
}

type UserResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Phone      string `json:"phone,omitempty"`
	Role       string `json:"role"`
	Status     string `json:"status"`
	IsVerified bool   `json:"isVerified"`
}

type LoginResponse struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	User         *UserResponse `json:"user"`
}

// NewUserResponse maps the model, dropping credentials.
func NewUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		Name:       user.Name,
		Phone:      user.Phone,
		Role:       string(user.Role),
		Status:     string(user.Status),
		IsVerified: user.IsVerified,
	}
}
