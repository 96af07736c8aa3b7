package services

import (
	"context"
	"errors"

	"constru_backend/internal/logger"
	"constru_backend/internal/models"
	"constru_backend/internal/repositories"
	"constru_backend/internal/services/dto"
	"constru_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// UserService covers profile management and the admin user directory.
type UserService interface {
	GetProfile(ctx context.Context, db *gorm.DB, userID string) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)

	// Admin operations
	List(ctx context.Context, db *gorm.DB, query *dto.UserListQuery, page, pageSize int) ([]dto.UserResponse, int64, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, userID string, status models.UserStatus) error
	Delete(ctx context.Context, db *gorm.DB, userID string) error
}

type userService struct {
	userRepo  repositories.UserRepository
	tokenRepo repositories.RefreshTokenRepository
}

func NewUserService(
	userRepo repositories.UserRepository,
	tokenRepo repositories.RefreshTokenRepository,
) UserService {
	return &userService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

func (s *userService) GetProfile(ctx context.Context, db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}

	if err := s.userRepo.Update(db, user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

func (s *userService) List(ctx context.Context, db *gorm.DB, query *dto.UserListQuery, page, pageSize int) ([]dto.UserResponse, int64, error) {
	filter := repositories.UserFilter{
		Role:     models.UserRole(query.Role),
		Status:   models.UserStatus(query.Status),
		Search:   query.Search,
		Page:     page,
		PageSize: pageSize,
	}

	users, total, err := s.userRepo.FindWithFilter(db, filter)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *dto.NewUserResponse(&users[i]))
	}
	return responses, total, nil
}

// UpdateStatus changes the account status. Suspension revokes every open
// session so the user is locked out immediately, not at access-token expiry.
func (s *userService) UpdateStatus(ctx context.Context, db *gorm.DB, userID string, status models.UserStatus) error {
	if err := s.userRepo.UpdateStatus(db, userID, status); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if status == models.UserStatusSuspended {
		if _, err := s.tokenRepo.RevokeByUserID(db, userID); err != nil {
			return apperrors.InternalError(err)
		}
	}

	logger.CtxInfo(ctx, "user status changed", "user_id", userID, "status", status)
	return nil
}

func (s *userService) Delete(ctx context.Context, db *gorm.DB, userID string) error {
	if _, err := s.tokenRepo.RevokeByUserID(db, userID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.Delete(db, userID); err != nil {
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "user deleted", "user_id", userID)
	return nil
}
