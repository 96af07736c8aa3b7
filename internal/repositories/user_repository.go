package repositories

import (
	"errors"

	"constru_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserFilter struct {
	Role     models.UserRole
	Status   models.UserStatus
	Search   string
	Page     int
	PageSize int
}

type UserRepository interface {
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FindByVerificationToken(db *gorm.DB, token string) (*models.User, error)
	FindByResetToken(db *gorm.DB, token string) (*models.User, error)
	Create(db *gorm.DB, user *models.User) error
	Update(db *gorm.DB, user *models.User) error
	UpdateStatus(db *gorm.DB, userID string, status models.UserStatus) error
	VerifyUser(db *gorm.DB, userID string) error
	Delete(db *gorm.DB, userID string) error
	FindWithFilter(db *gorm.DB, filter UserFilter) ([]models.User, int64, error)
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

func (r *userRepository) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByVerificationToken(db *gorm.DB, token string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "verification_token = ? AND verification_token <> ''", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByResetToken(db *gorm.DB, token string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "reset_token = ? AND reset_token <> ''", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(db *gorm.DB, user *models.User) error {
	var existing models.User
	if err := db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}
	return db.Create(user).Error
}

func (r *userRepository) Update(db *gorm.DB, user *models.User) error {
	result := db.Model(user).Updates(map[string]interface{}{
		"email":           user.Email,
		"name":            user.Name,
		"phone":           user.Phone,
		"role":            user.Role,
		"status":          user.Status,
		"password_hash":   user.PasswordHash,
		"reset_token":     user.ResetToken,
		"reset_token_exp": user.ResetTokenExp,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) UpdateStatus(db *gorm.DB, userID string, status models.UserStatus) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) VerifyUser(db *gorm.DB, userID string) error {
	return db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"is_verified":        true,
		"status":             models.UserStatusActive,
		"verification_token": "",
	}).Error
}

func (r *userRepository) Delete(db *gorm.DB, userID string) error {
	return db.Delete(&models.User{}, "id = ?", userID).Error
}

func (r *userRepository) FindWithFilter(db *gorm.DB, filter UserFilter) ([]models.User, int64, error) {
	query := db.Model(&models.User{})

	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("email ILIKE ? OR name ILIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var users []models.User
	err := query.Order("created_at DESC").Find(&users).Error
	return users, total, err
}
