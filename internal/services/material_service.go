package services

import (
	"context"
	"errors"

	"constru_backend/internal/logger"
	"constru_backend/internal/models"
	"constru_backend/internal/repositories"
	"constru_backend/internal/services/dto"
	"constru_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// MaterialService is the catalog: materials, categories and suppliers.
// Searches by authenticated users are logged to feed the behavior analysis.
type MaterialService interface {
	GetByID(ctx context.Context, db *gorm.DB, id string) (*models.Material, error)
	Search(ctx context.Context, db *gorm.DB, userID string, query *dto.MaterialSearchQuery, page, pageSize int) ([]models.Material, int64, error)
	Create(ctx context.Context, db *gorm.DB, req *dto.CreateMaterialRequest) (*models.Material, error)
	Update(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateMaterialRequest) (*models.Material, error)
	Deactivate(ctx context.Context, db *gorm.DB, id string) error

	ListCategories(ctx context.Context, db *gorm.DB) ([]models.MaterialCategory, error)
	CreateCategory(ctx context.Context, db *gorm.DB, req *dto.CreateCategoryRequest) (*models.MaterialCategory, error)
	ListSuppliers(ctx context.Context, db *gorm.DB) ([]models.Supplier, error)
	CreateSupplier(ctx context.Context, db *gorm.DB, req *dto.CreateSupplierRequest) (*models.Supplier, error)
}

type materialService struct {
	materialRepo repositories.MaterialRepository
	recRepo      repositories.RecommendationRepository
}

func NewMaterialService(
	materialRepo repositories.MaterialRepository,
	recRepo repositories.RecommendationRepository,
) MaterialService {
	return &materialService{
		materialRepo: materialRepo,
		recRepo:      recRepo,
	}
}

func (s *materialService) GetByID(ctx context.Context, db *gorm.DB, id string) (*models.Material, error) {
	material, err := s.materialRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMaterialNotFound) {
			return nil, apperrors.ErrMaterialNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return material, nil
}

// Search lists active materials. A non-empty term by an authenticated user
// is logged in the background; a lost log entry never fails the search.
func (s *materialService) Search(ctx context.Context, db *gorm.DB, userID string, query *dto.MaterialSearchQuery, page, pageSize int) ([]models.Material, int64, error) {
	filter := repositories.MaterialFilter{
		CategoryID: query.CategoryID,
		SupplierID: query.SupplierID,
		Search:     query.Search,
		OnlyActive: true,
		MinPrice:   query.MinPrice,
		MaxPrice:   query.MaxPrice,
		Page:       page,
		PageSize:   pageSize,
	}

	materials, total, err := s.materialRepo.FindWithFilter(db, filter)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}

	if userID != "" && query.Search != "" {
		go func(term string, results int) {
			entry := &models.SearchLog{UserID: userID, Term: term, Results: results}
			if err := s.recRepo.CreateSearchLog(db.WithContext(context.Background()), entry); err != nil {
				logger.Error("failed to record search log", "term", term, "error", err.Error())
			}
		}(query.Search, int(total))
	}

	return materials, total, nil
}

func (s *materialService) Create(ctx context.Context, db *gorm.DB, req *dto.CreateMaterialRequest) (*models.Material, error) {
	if _, err := s.materialRepo.FindCategoryByID(db, req.CategoryID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if _, err := s.materialRepo.FindSupplierByID(db, req.SupplierID); err != nil {
		if errors.Is(err, repositories.ErrSupplierNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if _, err := s.materialRepo.FindByCode(db, req.Code); err == nil {
		return nil, apperrors.ErrAlreadyExists(errors.New("material code already in use"))
	} else if !errors.Is(err, repositories.ErrMaterialNotFound) {
		return nil, apperrors.InternalError(err)
	}

	material := &models.Material{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		SupplierID:  req.SupplierID,
		Unit:        req.Unit,
		Price:       req.Price,
		Stock:       req.Stock,
		Active:      true,
	}
	if err := s.materialRepo.Create(db, material); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "material created", "material_id", material.ID, "code", material.Code)
	return material, nil
}

func (s *materialService) Update(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateMaterialRequest) (*models.Material, error) {
	material, err := s.GetByID(ctx, db, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		material.Name = req.Name
	}
	if req.Description != nil {
		material.Description = *req.Description
	}
	if req.CategoryID != "" {
		material.CategoryID = req.CategoryID
	}
	if req.SupplierID != "" {
		material.SupplierID = req.SupplierID
	}
	if req.Unit != "" {
		material.Unit = req.Unit
	}
	if req.Price != nil {
		material.Price = *req.Price
	}
	if req.Stock != nil {
		material.Stock = *req.Stock
	}
	if req.Active != nil {
		material.Active = *req.Active
	}

	if err := s.materialRepo.Update(db, material); err != nil {
		if errors.Is(err, repositories.ErrMaterialNotFound) {
			return nil, apperrors.ErrMaterialNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return material, nil
}

// Deactivate is a soft removal: the material stays referencable from order
// history but drops out of the active catalog.
func (s *materialService) Deactivate(ctx context.Context, db *gorm.DB, id string) error {
	if err := s.materialRepo.Deactivate(db, id); err != nil {
		if errors.Is(err, repositories.ErrMaterialNotFound) {
			return apperrors.ErrMaterialNotFound
		}
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "material deactivated", "material_id", id)
	return nil
}

func (s *materialService) ListCategories(ctx context.Context, db *gorm.DB) ([]models.MaterialCategory, error) {
	categories, err := s.materialRepo.ListCategories(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return categories, nil
}

func (s *materialService) CreateCategory(ctx context.Context, db *gorm.DB, req *dto.CreateCategoryRequest) (*models.MaterialCategory, error) {
	if req.ParentID != nil {
		if _, err := s.materialRepo.FindCategoryByID(db, *req.ParentID); err != nil {
			if errors.Is(err, repositories.ErrCategoryNotFound) {
				return nil, apperrors.ErrNotFound(err)
			}
			return nil, apperrors.InternalError(err)
		}
	}

	category := &models.MaterialCategory{Name: req.Name, ParentID: req.ParentID}
	if err := s.materialRepo.CreateCategory(db, category); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return category, nil
}

func (s *materialService) ListSuppliers(ctx context.Context, db *gorm.DB) ([]models.Supplier, error) {
	suppliers, err := s.materialRepo.ListSuppliers(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return suppliers, nil
}

func (s *materialService) CreateSupplier(ctx context.Context, db *gorm.DB, req *dto.CreateSupplierRequest) (*models.Supplier, error) {
	supplier := &models.Supplier{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		City:  req.City,
	}
	if err := s.materialRepo.CreateSupplier(db, supplier); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return supplier, nil
}
