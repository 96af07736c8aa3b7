package workers

import (
	"context"
	"time"

	"constru_backend/internal/logger"
	"constru_backend/internal/repositories"

	"gorm.io/gorm"
)

// TokenCleanupWorker purges refresh-token rows long past their expiry.
// Revoked rows are kept until then so logout stays auditable.
type TokenCleanupWorker struct {
	db        *gorm.DB
	tokenRepo repositories.RefreshTokenRepository
	interval  time.Duration
	retention time.Duration
}

func NewTokenCleanupWorker(db *gorm.DB, tokenRepo repositories.RefreshTokenRepository) *TokenCleanupWorker {
	return &TokenCleanupWorker{
		db:        db,
		tokenRepo: tokenRepo,
		interval:  6 * time.Hour,
		retention: 30 * 24 * time.Hour,
	}
}

// Run blocks until ctx is cancelled, sweeping on every tick.
func (w *TokenCleanupWorker) Run(ctx context.Context) {
	logger.Info("token cleanup worker started", "interval", w.interval.String())

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info("token cleanup worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *TokenCleanupWorker) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-w.retention)
	removed, err := w.tokenRepo.CleanExpired(w.db.WithContext(ctx), cutoff)
	logger.WorkerLog("token_cleanup", "sweep", err)
	if err == nil && removed > 0 {
		logger.Info("expired refresh tokens purged", "count", removed)
	}
}
