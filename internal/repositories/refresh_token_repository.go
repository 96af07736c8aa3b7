package repositories

import (
	"errors"
	"time"

	"constru_backend/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrRefreshTokenNotFound is returned when no row matches the token value.
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
)

// RefreshTokenRepository is the storage port for session records.
//
// Revocation is monotonic: a revoked row is never un-revoked and rows are
// never deleted on logout. IsTokenRevoked deliberately conflates "unknown"
// and "revoked" so callers fail closed.
type RefreshTokenRepository interface {
	// Create inserts a new session record. Revoked defaults to false.
	Create(db *gorm.DB, token *models.RefreshToken) error

	// FindByToken looks a token up by its exact string value.
	FindByToken(db *gorm.DB, tokenString string) (*models.RefreshToken, error)

	// RevokeByToken marks one token revoked. Idempotent: revoking an
	// already-revoked or unknown token returns false with no error.
	RevokeByToken(db *gorm.DB, tokenString string) (bool, error)

	// RevokeByUserID marks every active token of the user revoked and
	// reports whether any row changed ("log out everywhere").
	RevokeByUserID(db *gorm.DB, userID string) (bool, error)

	// IsTokenRevoked returns true when the token does not exist OR exists
	// and is revoked. Expiry is the auth service's responsibility.
	IsTokenRevoked(db *gorm.DB, tokenString string) (bool, error)

	// CleanExpired purges rows whose expiry is older than the cutoff.
	CleanExpired(db *gorm.DB, olderThan time.Time) (int64, error)

	// CountActiveByUserID counts non-revoked, non-expired tokens.
	CountActiveByUserID(db *gorm.DB, userID string) (int64, error)
}

type refreshTokenRepository struct{}

// NewRefreshTokenRepository returns the GORM-backed implementation.
func NewRefreshTokenRepository() RefreshTokenRepository {
	return &refreshTokenRepository{}
}

func (r *refreshTokenRepository) Create(db *gorm.DB, token *models.RefreshToken) error {
	return db.Create(token).Error
}

func (r *refreshTokenRepository) FindByToken(db *gorm.DB, tokenString string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := db.Where("token = ?", tokenString).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *refreshTokenRepository) RevokeByToken(db *gorm.DB, tokenString string) (bool, error) {
	result := db.Model(&models.RefreshToken{}).
		Where("token = ? AND revoked = false", tokenString).
		Update("revoked", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *refreshTokenRepository) RevokeByUserID(db *gorm.DB, userID string) (bool, error) {
	result := db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked = false", userID).
		Update("revoked", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *refreshTokenRepository) IsTokenRevoked(db *gorm.DB, tokenString string) (bool, error) {
	var token models.RefreshToken
	err := db.Select("revoked").Where("token = ?", tokenString).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Unknown token counts as revoked: fail closed.
			return true, nil
		}
		return true, err
	}
	return token.Revoked, nil
}

func (r *refreshTokenRepository) CleanExpired(db *gorm.DB, olderThan time.Time) (int64, error) {
	result := db.Where("expires_at < ?", olderThan).Delete(&models.RefreshToken{})
	return result.RowsAffected, result.Error
}

func (r *refreshTokenRepository) CountActiveByUserID(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked = false AND expires_at > ?", userID, time.Now()).
		Count(&count).Error
	return count, err
}
