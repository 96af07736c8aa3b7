package repositories

import (
	"errors"

	"constru_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrBudgetNotFound = errors.New("budget not found")
)

type BudgetRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Budget, error)
	Create(db *gorm.DB, budget *models.Budget) error
	UpdateStatus(db *gorm.DB, id string, status models.BudgetStatus) error
	ReplaceItems(db *gorm.DB, budgetID string, items []models.BudgetItem, total float64) error
	FindByUserID(db *gorm.DB, userID string, page, pageSize int) ([]models.Budget, int64, error)
	Delete(db *gorm.DB, id string) error
}

type budgetRepository struct{}

func NewBudgetRepository() BudgetRepository {
	return &budgetRepository{}
}

func (r *budgetRepository) FindByID(db *gorm.DB, id string) (*models.Budget, error) {
	var budget models.Budget
	err := db.Preload("Items").Preload("Items.Material").First(&budget, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, err
	}
	return &budget, nil
}

func (r *budgetRepository) Create(db *gorm.DB, budget *models.Budget) error {
	return db.Create(budget).Error
}

func (r *budgetRepository) UpdateStatus(db *gorm.DB, id string, status models.BudgetStatus) error {
	result := db.Model(&models.Budget{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBudgetNotFound
	}
	return nil
}

// ReplaceItems swaps the item set and the recomputed total in one transaction.
func (r *budgetRepository) ReplaceItems(db *gorm.DB, budgetID string, items []models.BudgetItem, total float64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("budget_id = ?", budgetID).Delete(&models.BudgetItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].BudgetID = budgetID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		result := tx.Model(&models.Budget{}).Where("id = ?", budgetID).Update("total", total)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrBudgetNotFound
		}
		return nil
	})
}

func (r *budgetRepository) FindByUserID(db *gorm.DB, userID string, page, pageSize int) ([]models.Budget, int64, error) {
	query := db.Model(&models.Budget{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page > 0 && pageSize > 0 {
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	var budgets []models.Budget
	err := query.Preload("Items").Order("created_at DESC").Find(&budgets).Error
	return budgets, total, err
}

func (r *budgetRepository) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Budget{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBudgetNotFound
	}
	return nil
}
