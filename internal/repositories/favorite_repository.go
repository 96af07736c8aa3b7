package repositories

import (
	"constru_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserFavoriteRepository is the storage port for the user↔template relation.
// Row existence is the whole state; (userID, templateID) is unique.
type UserFavoriteRepository interface {
	// FindTemplateIDsByUserID returns the user's favorited template IDs,
	// most recently favorited first.
	FindTemplateIDsByUserID(db *gorm.DB, userID string) ([]string, error)

	// AddFavorite inserts the relation. Inserting an existing pair is a
	// no-op, enforced with ON CONFLICT DO NOTHING on the composite key.
	AddFavorite(db *gorm.DB, userID, templateID string) error

	// RemoveFavorite deletes the relation and reports whether a row was
	// removed. Removing an absent pair is not an error.
	RemoveFavorite(db *gorm.DB, userID, templateID string) (bool, error)

	IsFavorite(db *gorm.DB, userID, templateID string) (bool, error)

	// GetFavoriteCount counts the relation across all users.
	GetFavoriteCount(db *gorm.DB, templateID string) (int64, error)
}

type userFavoriteRepository struct{}

func NewUserFavoriteRepository() UserFavoriteRepository {
	return &userFavoriteRepository{}
}

func (r *userFavoriteRepository) FindTemplateIDsByUserID(db *gorm.DB, userID string) ([]string, error) {
	var ids []string
	err := db.Model(&models.UserFavorite{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("template_id", &ids).Error
	return ids, err
}

func (r *userFavoriteRepository) AddFavorite(db *gorm.DB, userID, templateID string) error {
	fav := &models.UserFavorite{UserID: userID, TemplateID: templateID}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(fav).Error
}

func (r *userFavoriteRepository) RemoveFavorite(db *gorm.DB, userID, templateID string) (bool, error) {
	result := db.Where("user_id = ? AND template_id = ?", userID, templateID).
		Delete(&models.UserFavorite{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *userFavoriteRepository) IsFavorite(db *gorm.DB, userID, templateID string) (bool, error) {
	var count int64
	err := db.Model(&models.UserFavorite{}).
		Where("user_id = ? AND template_id = ?", userID, templateID).
		Count(&count).Error
	return count > 0, err
}

func (r *userFavoriteRepository) GetFavoriteCount(db *gorm.DB, templateID string) (int64, error) {
	var count int64
	err := db.Model(&models.UserFavorite{}).
		Where("template_id = ?", templateID).
		Count(&count).Error
	return count, err
}
