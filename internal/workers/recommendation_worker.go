package workers

import (
	"context"
	"time"

	"constru_backend/internal/logger"
	"constru_backend/internal/models"
	"constru_backend/internal/services"

	"gorm.io/gorm"
)

// RecommendationWorker expires stale recommendations and regenerates
// fresh ones from recent ordering activity.
type RecommendationWorker struct {
	db         *gorm.DB
	recService services.RecommendationService
	interval   time.Duration
	batchSize  int
}

func NewRecommendationWorker(db *gorm.DB, recService services.RecommendationService) *RecommendationWorker {
	return &RecommendationWorker{
		db:         db,
		recService: recService,
		interval:   1 * time.Hour,
		batchSize:  200,
	}
}

// Run blocks until ctx is cancelled.
func (w *RecommendationWorker) Run(ctx context.Context) {
	logger.Info("recommendation worker started", "interval", w.interval.String())

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("recommendation worker stopped")
			return
		case <-ticker.C:
			w.cycle(ctx)
		}
	}
}

func (w *RecommendationWorker) cycle(ctx context.Context) {
	db := w.db.WithContext(ctx)

	expired, err := w.recService.ExpireDue(ctx, db)
	logger.WorkerLog("recommendations", "expire", err)
	if err == nil && expired > 0 {
		logger.Info("recommendations expired", "count", expired)
	}

	// Regenerate for users with orders inside the window. Users without
	// recent activity keep whatever they have until it expires.
	userIDs, err := w.activeUserIDs(db)
	if err != nil {
		logger.WorkerLog("recommendations", "list_active_users", err)
		return
	}

	var generated int
	for _, userID := range userIDs {
		if ctx.Err() != nil {
			return
		}
		count, err := w.recService.GenerateForUser(ctx, db, userID)
		if err != nil {
			logger.Error("recommendation generation failed", "user_id", userID, "error", err.Error())
			continue
		}
		generated += count
	}

	logger.Info("recommendation cycle finished", "users", len(userIDs), "generated", generated)
}

// activeUserIDs lists users who placed an order in the last 30 days.
func (w *RecommendationWorker) activeUserIDs(db *gorm.DB) ([]string, error) {
	var ids []string
	err := db.Model(&models.Order{}).
		Where("created_at > NOW() - INTERVAL '30 days'").
		Distinct().
		Limit(w.batchSize).
		Pluck("user_id", &ids).Error
	return ids, err
}
