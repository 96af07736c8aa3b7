package services

import (
	"context"
	"errors"
	"fmt"

	"constru_backend/internal/logger"
	"constru_backend/internal/models"
	"constru_backend/internal/repositories"
	"constru_backend/internal/services/dto"
	"constru_backend/pkg/apperrors"

	"gorm.io/gorm"
)

var budgetTransitions = map[models.BudgetStatus][]models.BudgetStatus{
	models.BudgetStatusDraft:    {models.BudgetStatusApproved, models.BudgetStatusRejected},
	models.BudgetStatusApproved: {},
	models.BudgetStatusRejected: {models.BudgetStatusDraft},
}

func budgetTransitionAllowed(from, to models.BudgetStatus) bool {
	for _, allowed := range budgetTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// BudgetService manages estimation budgets. Item sets are replaced whole;
// only draft budgets are editable.
type BudgetService interface {
	Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateBudgetRequest) (*models.Budget, error)
	GetByID(ctx context.Context, db *gorm.DB, userID string, isAdmin bool, id string) (*models.Budget, error)
	List(ctx context.Context, db *gorm.DB, userID string, page, pageSize int) ([]models.Budget, int64, error)
	ReplaceItems(ctx context.Context, db *gorm.DB, userID string, id string, req *dto.ReplaceBudgetItemsRequest) (*models.Budget, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, userID string, isAdmin bool, id string, status models.BudgetStatus) (*models.Budget, error)
	Delete(ctx context.Context, db *gorm.DB, userID string, id string) error
}

type budgetService struct {
	budgetRepo   repositories.BudgetRepository
	materialRepo repositories.MaterialRepository
}

func NewBudgetService(
	budgetRepo repositories.BudgetRepository,
	materialRepo repositories.MaterialRepository,
) BudgetService {
	return &budgetService{
		budgetRepo:   budgetRepo,
		materialRepo: materialRepo,
	}
}

// buildItems resolves the requested items against the catalog. A missing
// unit price falls back to the material's current price.
func (s *budgetService) buildItems(db *gorm.DB, reqItems []dto.BudgetItemRequest) ([]models.BudgetItem, float64, error) {
	items := make([]models.BudgetItem, 0, len(reqItems))
	var total float64

	for _, item := range reqItems {
		material, err := s.materialRepo.FindByID(db, item.MaterialID)
		if err != nil {
			if errors.Is(err, repositories.ErrMaterialNotFound) {
				return nil, 0, apperrors.ErrMaterialNotFound
			}
			return nil, 0, apperrors.InternalError(err)
		}

		unitPrice := item.UnitPrice
		if unitPrice == 0 {
			unitPrice = material.Price
		}

		total += unitPrice * item.Quantity
		items = append(items, models.BudgetItem{
			MaterialID: material.ID,
			Quantity:   item.Quantity,
			UnitPrice:  unitPrice,
		})
	}
	return items, total, nil
}

func (s *budgetService) Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateBudgetRequest) (*models.Budget, error) {
	items, total, err := s.buildItems(db, req.Items)
	if err != nil {
		return nil, err
	}

	budget := &models.Budget{
		UserID:    userID,
		ProjectID: req.ProjectID,
		Name:      req.Name,
		Status:    models.BudgetStatusDraft,
		Total:     total,
		Items:     items,
	}
	if err := s.budgetRepo.Create(db, budget); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "budget created", "budget_id", budget.ID, "items", len(items))
	return budget, nil
}

func (s *budgetService) GetByID(ctx context.Context, db *gorm.DB, userID string, isAdmin bool, id string) (*models.Budget, error) {
	budget, err := s.budgetRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrBudgetNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if budget.UserID != userID && !isAdmin {
		return nil, apperrors.ErrBudgetNotFound
	}
	return budget, nil
}

func (s *budgetService) List(ctx context.Context, db *gorm.DB, userID string, page, pageSize int) ([]models.Budget, int64, error) {
	budgets, total, err := s.budgetRepo.FindByUserID(db, userID, page, pageSize)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return budgets, total, nil
}

func (s *budgetService) ReplaceItems(ctx context.Context, db *gorm.DB, userID string, id string, req *dto.ReplaceBudgetItemsRequest) (*models.Budget, error) {
	budget, err := s.GetByID(ctx, db, userID, false, id)
	if err != nil {
		return nil, err
	}

	if budget.Status != models.BudgetStatusDraft {
		return nil, apperrors.ErrInvalidStatus("budgets", "Only draft budgets can be edited")
	}

	items, total, err := s.buildItems(db, req.Items)
	if err != nil {
		return nil, err
	}

	if err := s.budgetRepo.ReplaceItems(db, id, items, total); err != nil {
		if errors.Is(err, repositories.ErrBudgetNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	return s.GetByID(ctx, db, userID, false, id)
}

func (s *budgetService) UpdateStatus(ctx context.Context, db *gorm.DB, userID string, isAdmin bool, id string, status models.BudgetStatus) (*models.Budget, error) {
	budget, err := s.GetByID(ctx, db, userID, isAdmin, id)
	if err != nil {
		return nil, err
	}

	if !budgetTransitionAllowed(budget.Status, status) {
		return nil, apperrors.ErrInvalidStatus("budgets",
			fmt.Sprintf("Cannot change budget from '%s' to '%s'", budget.Status, status))
	}

	if err := s.budgetRepo.UpdateStatus(db, id, status); err != nil {
		return nil, apperrors.InternalError(err)
	}

	budget.Status = status
	logger.CtxInfo(ctx, "budget status changed", "budget_id", id, "status", status)
	return budget, nil
}

func (s *budgetService) Delete(ctx context.Context, db *gorm.DB, userID string, id string) error {
	if _, err := s.GetByID(ctx, db, userID, false, id); err != nil {
		return err
	}

	if err := s.budgetRepo.Delete(db, id); err != nil {
		if errors.Is(err, repositories.ErrBudgetNotFound) {
			return apperrors.ErrBudgetNotFound
		}
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "budget deleted", "budget_id", id)
	return nil
}
