package database

import (
	"constru_backend/internal/logger"
	"constru_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the Postgres pool.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		// Unique-violation errors surface as gorm.ErrDuplicatedKey so
		// services can map them to conflicts.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates the uuid extension and runs the schema migration.
// Parents before children so foreign keys resolve.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.MaterialCategory{},
		&models.Supplier{},
		&models.Material{},
		&models.CalculationTemplate{},
		&models.UserFavorite{},
		&models.Order{},
		&models.OrderItem{},
		&models.Invoice{},
		&models.Budget{},
		&models.BudgetItem{},
		&models.Project{},
		&models.ProjectPhase{},
		&models.ProjectTask{},
		&models.UserRecommendation{},
		&models.RecommendationInteraction{},
		&models.SearchLog{},
	)
	if err != nil {
		return err
	}

	logger.Info("database migration completed")
	return nil
}
