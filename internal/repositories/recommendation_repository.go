package repositories

import (
	"errors"
	"time"

	"constru_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrRecommendationNotFound = errors.New("recommendation not found")
)

// UserOverlap is one candidate row of the similar-user query: how many
// favorite templates the candidate shares with the subject, and the size of
// the candidate's own favorite set.
type UserOverlap struct {
	UserID        string `json:"userId"`
	Shared        int64  `json:"shared"`
	FavoriteCount int64  `json:"favoriteCount"`
}

// TermFrequency is one row of the frequent-search-terms aggregate.
type TermFrequency struct {
	Term  string `json:"term"`
	Count int64  `json:"count"`
}

type RecommendationRepository interface {
	FindByID(db *gorm.DB, id string) (*models.UserRecommendation, error)
	Create(db *gorm.DB, rec *models.UserRecommendation) error
	CreateBatch(db *gorm.DB, recs []models.UserRecommendation) error

	// FindByUserID filters by status when status is non-empty and caps the
	// result when limit > 0. Highest score first.
	FindByUserID(db *gorm.DB, userID string, status models.RecommendationStatus, limit int) ([]models.UserRecommendation, error)

	// UpdateStatus writes the new status unconditionally; transition
	// legality is the service's concern.
	UpdateStatus(db *gorm.DB, id string, status models.RecommendationStatus) error

	// ExpireDue flips past-due active recommendations to expired.
	ExpireDue(db *gorm.DB, now time.Time) (int64, error)

	// Interactions (append-only audit)
	CreateInteraction(db *gorm.DB, interaction *models.RecommendationInteraction) error
	InteractionCounts(db *gorm.DB, userID string, days int) (map[models.InteractionType]int64, error)

	// Behavior-pattern feeds
	TopSearchTerms(db *gorm.DB, userID string, days, limit int) ([]TermFrequency, error)
	CreateSearchLog(db *gorm.DB, entry *models.SearchLog) error

	// FavoriteOverlaps finds users sharing favorite templates with the
	// subject, biggest overlap first.
	FavoriteOverlaps(db *gorm.DB, userID string, limit int) ([]UserOverlap, error)
}

type recommendationRepository struct{}

func NewRecommendationRepository() RecommendationRepository {
	return &recommendationRepository{}
}

func (r *recommendationRepository) FindByID(db *gorm.DB, id string) (*models.UserRecommendation, error) {
	var rec models.UserRecommendation
	if err := db.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecommendationNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *recommendationRepository) Create(db *gorm.DB, rec *models.UserRecommendation) error {
	return db.Create(rec).Error
}

func (r *recommendationRepository) CreateBatch(db *gorm.DB, recs []models.UserRecommendation) error {
	if len(recs) == 0 {
		return nil
	}
	return db.Create(&recs).Error
}

func (r *recommendationRepository) FindByUserID(db *gorm.DB, userID string, status models.RecommendationStatus, limit int) ([]models.UserRecommendation, error) {
	query := db.Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var recs []models.UserRecommendation
	err := query.Order("score DESC, created_at DESC").Find(&recs).Error
	return recs, err
}

func (r *recommendationRepository) UpdateStatus(db *gorm.DB, id string, status models.RecommendationStatus) error {
	result := db.Model(&models.UserRecommendation{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecommendationNotFound
	}
	return nil
}

func (r *recommendationRepository) ExpireDue(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Model(&models.UserRecommendation{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", models.RecommendationStatusActive, now).
		Update("status", models.RecommendationStatusExpired)
	return result.RowsAffected, result.Error
}

func (r *recommendationRepository) CreateInteraction(db *gorm.DB, interaction *models.RecommendationInteraction) error {
	return db.Create(interaction).Error
}

func (r *recommendationRepository) InteractionCounts(db *gorm.DB, userID string, days int) (map[models.InteractionType]int64, error) {
	var rows []struct {
		InteractionType models.InteractionType
		Count           int64
	}
	err := db.Model(&models.RecommendationInteraction{}).
		Select("interaction_type, COUNT(*) AS count").
		Where("user_id = ? AND created_at > NOW() - make_interval(days => ?)", userID, days).
		Group("interaction_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.InteractionType]int64, len(rows))
	for _, row := range rows {
		counts[row.InteractionType] = row.Count
	}
	return counts, nil
}

func (r *recommendationRepository) TopSearchTerms(db *gorm.DB, userID string, days, limit int) ([]TermFrequency, error) {
	var rows []TermFrequency
	err := db.Model(&models.SearchLog{}).
		Select("term, COUNT(*) AS count").
		Where("user_id = ? AND created_at > NOW() - make_interval(days => ?)", userID, days).
		Group("term").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *recommendationRepository) CreateSearchLog(db *gorm.DB, entry *models.SearchLog) error {
	return db.Create(entry).Error
}

func (r *recommendationRepository) FavoriteOverlaps(db *gorm.DB, userID string, limit int) ([]UserOverlap, error) {
	var rows []UserOverlap
	err := db.Raw(`
		SELECT uf2.user_id,
		       COUNT(*) AS shared,
		       (SELECT COUNT(*) FROM user_favorites f WHERE f.user_id = uf2.user_id) AS favorite_count
		FROM user_favorites uf1
		JOIN user_favorites uf2
		  ON uf1.template_id = uf2.template_id AND uf2.user_id <> uf1.user_id
		WHERE uf1.user_id = ?
		GROUP BY uf2.user_id
		ORDER BY shared DESC
		LIMIT ?
	`, userID, limit).Scan(&rows).Error
	return rows, err
}
