package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"constru_backend/internal/algorithms"
	"constru_backend/internal/cache"
	"constru_backend/internal/config"
	"constru_backend/internal/logger"
	"constru_backend/internal/models"
	"constru_backend/internal/repositories"
	"constru_backend/internal/services/dto"
	"constru_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// recommendationTransitions is the status machine. Converted and expired
// are terminal; a dismissed recommendation can be restored to active.
var recommendationTransitions = map[models.RecommendationStatus][]models.RecommendationStatus{
	models.RecommendationStatusActive: {
		models.RecommendationStatusDismissed,
		models.RecommendationStatusConverted,
		models.RecommendationStatusExpired,
	},
	models.RecommendationStatusDismissed: {
		models.RecommendationStatusActive,
	},
	models.RecommendationStatusConverted: {},
	models.RecommendationStatusExpired:   {},
}

func transitionAllowed(from, to models.RecommendationStatus) bool {
	for _, allowed := range recommendationTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// RecommendationService surfaces scored suggestions and the behavior
// analysis feeding them.
type RecommendationService interface {
	GetForUser(ctx context.Context, db *gorm.DB, userID string, query *dto.RecommendationListQuery) ([]models.UserRecommendation, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, userID, recommendationID string, status models.RecommendationStatus) (*models.UserRecommendation, error)

	// LogInteraction records the interaction without blocking the caller.
	// The write happens in the background; failures are logged, never
	// surfaced.
	LogInteraction(ctx context.Context, db *gorm.DB, userID, recommendationID string, interactionType models.InteractionType) error

	// GetBehaviorPattern computes (or serves from cache) the user's
	// activity profile over the configured window.
	GetBehaviorPattern(ctx context.Context, db *gorm.DB, userID string) (*dto.BehaviorPattern, error)

	// FindSimilarUsers ranks other users by favorite-set overlap.
	FindSimilarUsers(ctx context.Context, db *gorm.DB, userID string, limit int) ([]algorithms.SimilarUser, error)

	// GenerateForUser rebuilds the user's active recommendation set from
	// recent ordering behavior. Used by the background worker.
	GenerateForUser(ctx context.Context, db *gorm.DB, userID string) (int, error)

	// ExpireDue flips past-due active recommendations to expired.
	ExpireDue(ctx context.Context, db *gorm.DB) (int64, error)
}

type recommendationService struct {
	recRepo     repositories.RecommendationRepository
	orderRepo   repositories.OrderRepository
	projectRepo repositories.ProjectRepository
	favRepo     repositories.UserFavoriteRepository
	cache       *cache.Cache
}

func NewRecommendationService(
	recRepo repositories.RecommendationRepository,
	orderRepo repositories.OrderRepository,
	projectRepo repositories.ProjectRepository,
	favRepo repositories.UserFavoriteRepository,
	c *cache.Cache,
) RecommendationService {
	return &recommendationService{
		recRepo:     recRepo,
		orderRepo:   orderRepo,
		projectRepo: projectRepo,
		favRepo:     favRepo,
		cache:       c,
	}
}

func (s *recommendationService) GetForUser(ctx context.Context, db *gorm.DB, userID string, query *dto.RecommendationListQuery) ([]models.UserRecommendation, error) {
	status := models.RecommendationStatus(query.Status)
	limit := query.Limit
	if limit == 0 {
		limit = 20
	}

	recs, err := s.recRepo.FindByUserID(db, userID, status, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return recs, nil
}

func (s *recommendationService) UpdateStatus(ctx context.Context, db *gorm.DB, userID, recommendationID string, status models.RecommendationStatus) (*models.UserRecommendation, error) {
	rec, err := s.recRepo.FindByID(db, recommendationID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecommendationNotFound) {
			return nil, apperrors.ErrRecommendationNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	// Foreign recommendations look like missing ones to the caller.
	if rec.UserID != userID {
		return nil, apperrors.ErrRecommendationNotFound
	}

	if !transitionAllowed(rec.Status, status) {
		return nil, apperrors.ErrInvalidStatus("recommendations",
			fmt.Sprintf("Cannot change recommendation from '%s' to '%s'", rec.Status, status))
	}

	if err := s.recRepo.UpdateStatus(db, recommendationID, status); err != nil {
		if errors.Is(err, repositories.ErrRecommendationNotFound) {
			return nil, apperrors.ErrRecommendationNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	rec.Status = status
	return rec, nil
}

func (s *recommendationService) LogInteraction(ctx context.Context, db *gorm.DB, userID, recommendationID string, interactionType models.InteractionType) error {
	rec, err := s.recRepo.FindByID(db, recommendationID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecommendationNotFound) {
			return apperrors.ErrRecommendationNotFound
		}
		return apperrors.InternalError(err)
	}
	if rec.UserID != userID {
		return apperrors.ErrRecommendationNotFound
	}

	// Fire and forget. The request context dies with the response, so the
	// write runs detached.
	go func() {
		interaction := &models.RecommendationInteraction{
			UserID:           userID,
			RecommendationID: recommendationID,
			InteractionType:  interactionType,
		}
		if err := s.recRepo.CreateInteraction(db.WithContext(context.Background()), interaction); err != nil {
			logger.Error("failed to record recommendation interaction",
				"recommendation_id", recommendationID, "error", err.Error())
		}
	}()

	return nil
}

func behaviorCacheKey(userID string) string {
	return "behavior:" + userID
}

func (s *recommendationService) GetBehaviorPattern(ctx context.Context, db *gorm.DB, userID string) (*dto.BehaviorPattern, error) {
	var pattern dto.BehaviorPattern
	if err := s.cache.GetJSON(ctx, behaviorCacheKey(userID), &pattern); err == nil {
		return &pattern, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		logger.CtxWarn(ctx, "behavior cache read failed", "error", err.Error())
	}

	cfg := config.GetConfig()
	window := cfg.Recommendations.BehaviorWindowDays

	computed, err := s.computeBehaviorPattern(db, userID, window)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	ttl := time.Duration(cfg.Recommendations.CacheTTLMinutes) * time.Minute
	if err := s.cache.SetJSON(ctx, behaviorCacheKey(userID), computed, ttl); err != nil {
		logger.CtxWarn(ctx, "behavior cache write failed", "error", err.Error())
	}

	return computed, nil
}

func (s *recommendationService) computeBehaviorPattern(db *gorm.DB, userID string, windowDays int) (*dto.BehaviorPattern, error) {
	topMaterials, err := s.orderRepo.TopMaterialsForUser(db, userID, windowDays, 20)
	if err != nil {
		return nil, err
	}

	terms, err := s.recRepo.TopSearchTerms(db, userID, windowDays, 10)
	if err != nil {
		return nil, err
	}

	favoriteIDs, err := s.favRepo.FindTemplateIDsByUserID(db, userID)
	if err != nil {
		return nil, err
	}

	_, orderCount, err := s.orderRepo.FindWithFilter(db, repositories.OrderFilter{UserID: userID, Page: 1, PageSize: 1})
	if err != nil {
		return nil, err
	}

	projectTypes, err := s.projectRepo.ProjectTypeCounts(db, userID, windowDays)
	if err != nil {
		return nil, err
	}

	interactionCounts, err := s.recRepo.InteractionCounts(db, userID, windowDays)
	if err != nil {
		return nil, err
	}

	// Collapse material frequencies into category activity.
	categoryCounts := make(map[string]int64)
	for _, m := range topMaterials {
		categoryCounts[m.CategoryID] += m.Count
	}
	categories := make([]dto.CategoryActivity, 0, len(categoryCounts))
	for id, count := range categoryCounts {
		categories = append(categories, dto.CategoryActivity{CategoryID: id, Count: int(count)})
	}

	searches := make([]dto.SearchActivity, 0, len(terms))
	for _, t := range terms {
		searches = append(searches, dto.SearchActivity{Term: t.Term, Count: int(t.Count)})
	}

	preferred := make([]string, 0, len(projectTypes))
	for projectType := range projectTypes {
		preferred = append(preferred, projectType)
	}

	interactions := make(map[string]int, len(interactionCounts))
	for interactionType, count := range interactionCounts {
		interactions[string(interactionType)] = int(count)
	}

	return &dto.BehaviorPattern{
		UserID:            userID,
		WindowDays:        windowDays,
		TopCategories:     categories,
		TopSearchTerms:    searches,
		FavoriteCount:     len(favoriteIDs),
		OrderCount:        int(orderCount),
		Interactions:      interactions,
		PreferredProjects: preferred,
		ComputedAt:        time.Now(),
	}, nil
}

func (s *recommendationService) FindSimilarUsers(ctx context.Context, db *gorm.DB, userID string, limit int) ([]algorithms.SimilarUser, error) {
	if limit <= 0 {
		limit = 10
	}

	overlaps, err := s.recRepo.FavoriteOverlaps(db, userID, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	ownIDs, err := s.favRepo.FindTemplateIDsByUserID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return algorithms.RankSimilarUsers(overlaps, int64(len(ownIDs))), nil
}

func (s *recommendationService) GenerateForUser(ctx context.Context, db *gorm.DB, userID string) (int, error) {
	cfg := config.GetConfig()
	window := cfg.Recommendations.BehaviorWindowDays

	topMaterials, err := s.orderRepo.TopMaterialsForUser(db, userID, window, 10)
	if err != nil {
		return 0, err
	}
	if len(topMaterials) == 0 {
		return 0, nil
	}

	// Skip materials that already carry an active recommendation.
	active, err := s.recRepo.FindByUserID(db, userID, models.RecommendationStatusActive, 0)
	if err != nil {
		return 0, err
	}
	activeMaterials := make(map[string]bool, len(active))
	for _, rec := range active {
		if rec.MaterialID != nil {
			activeMaterials[*rec.MaterialID] = true
		}
	}

	maxCount := topMaterials[0].Count
	expiresAt := time.Now().Add(time.Duration(cfg.Recommendations.ExpiryDays) * 24 * time.Hour)

	var recs []models.UserRecommendation
	for _, freq := range topMaterials {
		if activeMaterials[freq.MaterialID] {
			continue
		}
		score, reason := algorithms.ScoreMaterialAffinity(freq, maxCount)
		if score <= 0 {
			continue
		}
		materialID := freq.MaterialID
		recs = append(recs, models.UserRecommendation{
			UserID:     userID,
			Type:       models.RecommendationTypeMaterial,
			MaterialID: &materialID,
			Score:      score,
			Reason:     reason,
			Status:     models.RecommendationStatusActive,
			ExpiresAt:  &expiresAt,
		})
	}

	if err := s.recRepo.CreateBatch(db, recs); err != nil {
		return 0, err
	}

	// Fresh recommendations mean the cached pattern is stale.
	if err := s.cache.Delete(ctx, behaviorCacheKey(userID)); err != nil {
		logger.CtxWarn(ctx, "behavior cache invalidation failed", "error", err.Error())
	}

	return len(recs), nil
}

func (s *recommendationService) ExpireDue(ctx context.Context, db *gorm.DB) (int64, error) {
	return s.recRepo.ExpireDue(db, time.Now())
}
