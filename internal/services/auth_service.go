package services

import (
	"context"
	"errors"
	"time"

	"constru_backend/internal/auth"
	"constru_backend/internal/config"
	"constru_backend/internal/email"
	"constru_backend/internal/logger"
	"constru_backend/internal/models"
	"constru_backend/internal/repositories"
	"constru_backend/internal/services/dto"
	"constru_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// AuthService owns registration, login and the refresh-token lifecycle.
//
// Session records are never deleted on logout; their Revoked flag flips to
// true and stays true. Refresh rotates the token: the presented token is
// revoked and a fresh row is created. Unknown, revoked and expired tokens
// are all answered with the same ErrInvalidToken.
type AuthService interface {
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, db *gorm.DB, refreshToken string) (*dto.LoginResponse, error)
	Logout(ctx context.Context, db *gorm.DB, refreshToken string) error
	LogoutAll(ctx context.Context, db *gorm.DB, userID string) error
	VerifyEmail(ctx context.Context, db *gorm.DB, token string) error
	RequestPasswordReset(ctx context.Context, db *gorm.DB, emailAddr string) error
	ResetPassword(ctx context.Context, db *gorm.DB, token, newPassword string) error
	ChangePassword(ctx context.Context, db *gorm.DB, userID, currentPassword, newPassword string) error
}

type authService struct {
	userRepo  repositories.UserRepository
	tokenRepo repositories.RefreshTokenRepository
	mail      email.Provider
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokenRepo repositories.RefreshTokenRepository,
	mail email.Provider,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		mail:      mail,
	}
}

func (s *authService) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	role := models.UserRole(req.Role)
	if role == "" {
		role = models.UserRoleCustomer
	}
	// Admin accounts are seeded, never self-registered.
	if role == models.UserRoleAdmin {
		return nil, apperrors.ErrInvalidUserRole
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:             req.Email,
		PasswordHash:      hash,
		Name:              req.Name,
		Phone:             req.Phone,
		Role:              role,
		Status:            models.UserStatusPending,
		VerificationToken: auth.GenerateRandomToken(),
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	// Delivery failures must not fail the registration.
	go func(to, token string) {
		if err := s.mail.SendVerification(to, token); err != nil {
			logger.Error("failed to send verification email", "to", to, "error", err.Error())
		}
	}(user.Email, user.VerificationToken)

	logger.CtxInfo(ctx, "user registered", "user_id", user.ID, "role", user.Role)
	return dto.NewUserResponse(user), nil
}

func (s *authService) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Status == models.UserStatusSuspended {
		return nil, apperrors.ErrUserSuspended
	}

	return s.issueSession(ctx, db, user)
}

func (s *authService) Refresh(ctx context.Context, db *gorm.DB, refreshToken string) (*dto.LoginResponse, error) {
	record, err := s.tokenRepo.FindByToken(db, refreshToken)
	if err != nil {
		if errors.Is(err, repositories.ErrRefreshTokenNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}

	if record.Revoked {
		return nil, apperrors.ErrInvalidToken
	}

	if time.Now().After(record.ExpiresAt) {
		// Expired tokens are revoked on sight so the row can never be
		// replayed even if the clock moves.
		if _, err := s.tokenRepo.RevokeByToken(db, refreshToken); err != nil {
			logger.CtxWithError(ctx, "failed to revoke expired refresh token", err)
		}
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(db, record.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if user.Status == models.UserStatusSuspended {
		return nil, apperrors.ErrUserSuspended
	}

	// Rotation: the presented token dies, a fresh one replaces it.
	if _, err := s.tokenRepo.RevokeByToken(db, refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.issueSession(ctx, db, user)
}

// Logout is idempotent: revoking an already-revoked or unknown token
// succeeds without error.
func (s *authService) Logout(ctx context.Context, db *gorm.DB, refreshToken string) error {
	revoked, err := s.tokenRepo.RevokeByToken(db, refreshToken)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if revoked {
		logger.CtxInfo(ctx, "session revoked")
	}
	return nil
}

func (s *authService) LogoutAll(ctx context.Context, db *gorm.DB, userID string) error {
	if _, err := s.tokenRepo.RevokeByUserID(db, userID); err != nil {
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "all sessions revoked", "user_id", userID)
	return nil
}

func (s *authService) VerifyEmail(ctx context.Context, db *gorm.DB, token string) error {
	user, err := s.userRepo.FindByVerificationToken(db, token)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.VerifyUser(db, user.ID); err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "email verified", "user_id", user.ID)
	return nil
}

// RequestPasswordReset always reports success so the endpoint cannot be
// used to probe which emails are registered.
func (s *authService) RequestPasswordReset(ctx context.Context, db *gorm.DB, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(db, emailAddr)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}

	exp := time.Now().Add(1 * time.Hour)
	user.ResetToken = auth.GenerateRandomToken()
	user.ResetTokenExp = &exp

	if err := s.userRepo.Update(db, user); err != nil {
		return apperrors.InternalError(err)
	}

	go func(to, token string) {
		if err := s.mail.SendPasswordReset(to, token); err != nil {
			logger.Error("failed to send password reset email", "to", to, "error", err.Error())
		}
	}(user.Email, user.ResetToken)

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, db *gorm.DB, token, newPassword string) error {
	user, err := s.userRepo.FindByResetToken(db, token)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}

	if user.ResetTokenExp == nil || time.Now().After(*user.ResetTokenExp) {
		return apperrors.ErrInvalidToken
	}

	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user.PasswordHash = hash
	user.ResetToken = ""
	user.ResetTokenExp = nil

	if err := s.userRepo.Update(db, user); err != nil {
		return apperrors.InternalError(err)
	}

	// A password reset invalidates every open session.
	if _, err := s.tokenRepo.RevokeByUserID(db, user.ID); err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "password reset completed", "user_id", user.ID)
	return nil
}

func (s *authService) ChangePassword(ctx context.Context, db *gorm.DB, userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}

	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user.PasswordHash = hash
	if err := s.userRepo.Update(db, user); err != nil {
		return apperrors.InternalError(err)
	}

	return nil
}

// issueSession builds the access token and persists a fresh refresh record.
func (s *authService) issueSession(ctx context.Context, db *gorm.DB, user *models.User) (*dto.LoginResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	cfg := config.GetConfig()
	record := &models.RefreshToken{
		UserID:    user.ID,
		Token:     auth.GenerateRandomToken(),
		ExpiresAt: time.Now().Add(time.Duration(cfg.JWT.RefreshTTLHours) * time.Hour),
	}
	if err := s.tokenRepo.Create(db, record); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "session issued", "user_id", user.ID)
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: record.Token,
		User:         dto.NewUserResponse(user),
	}, nil
}
