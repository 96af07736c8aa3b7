package repositories

import (
	"errors"

	"constru_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrMaterialNotFound = errors.New("material not found")
	ErrCategoryNotFound = errors.New("material category not found")
	ErrSupplierNotFound = errors.New("supplier not found")
)

type MaterialFilter struct {
	CategoryID string
	SupplierID string
	Search     string
	OnlyActive bool
	MinPrice   *float64
	MaxPrice   *float64
	Page       int
	PageSize   int
}

type MaterialRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Material, error)
	FindByCode(db *gorm.DB, code string) (*models.Material, error)
	FindByIDs(db *gorm.DB, ids []string) ([]models.Material, error)
	Create(db *gorm.DB, material *models.Material) error
	Update(db *gorm.DB, material *models.Material) error
	Deactivate(db *gorm.DB, id string) error
	FindWithFilter(db *gorm.DB, filter MaterialFilter) ([]models.Material, int64, error)
	AdjustStock(db *gorm.DB, id string, delta int) error

	// Categories & suppliers
	FindCategoryByID(db *gorm.DB, id string) (*models.MaterialCategory, error)
	ListCategories(db *gorm.DB) ([]models.MaterialCategory, error)
	CreateCategory(db *gorm.DB, category *models.MaterialCategory) error
	FindSupplierByID(db *gorm.DB, id string) (*models.Supplier, error)
	ListSuppliers(db *gorm.DB) ([]models.Supplier, error)
	CreateSupplier(db *gorm.DB, supplier *models.Supplier) error
}

type materialRepository struct{}

func NewMaterialRepository() MaterialRepository {
	return &materialRepository{}
}

func (r *materialRepository) FindByID(db *gorm.DB, id string) (*models.Material, error) {
	var material models.Material
	err := db.Preload("Category").Preload("Supplier").First(&material, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMaterialNotFound
		}
		return nil, err
	}
	return &material, nil
}

func (r *materialRepository) FindByCode(db *gorm.DB, code string) (*models.Material, error) {
	var material models.Material
	err := db.First(&material, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMaterialNotFound
		}
		return nil, err
	}
	return &material, nil
}

func (r *materialRepository) FindByIDs(db *gorm.DB, ids []string) ([]models.Material, error) {
	var materials []models.Material
	err := db.Where("id IN ?", ids).Find(&materials).Error
	return materials, err
}

func (r *materialRepository) Create(db *gorm.DB, material *models.Material) error {
	return db.Create(material).Error
}

func (r *materialRepository) Update(db *gorm.DB, material *models.Material) error {
	result := db.Model(material).Updates(map[string]interface{}{
		"name":        material.Name,
		"description": material.Description,
		"category_id": material.CategoryID,
		"supplier_id": material.SupplierID,
		"unit":        material.Unit,
		"price":       material.Price,
		"stock":       material.Stock,
		"active":      material.Active,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMaterialNotFound
	}
	return nil
}

func (r *materialRepository) Deactivate(db *gorm.DB, id string) error {
	result := db.Model(&models.Material{}).Where("id = ?", id).Update("active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMaterialNotFound
	}
	return nil
}

func (r *materialRepository) FindWithFilter(db *gorm.DB, filter MaterialFilter) ([]models.Material, int64, error) {
	query := db.Model(&models.Material{})

	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.SupplierID != "" {
		query = query.Where("supplier_id = ?", filter.SupplierID)
	}
	if filter.OnlyActive {
		query = query.Where("active = true")
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", like, like)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var materials []models.Material
	err := query.Preload("Category").Preload("Supplier").
		Order("name ASC").Find(&materials).Error
	return materials, total, err
}

// AdjustStock applies the delta atomically and refuses to go negative.
func (r *materialRepository) AdjustStock(db *gorm.DB, id string, delta int) error {
	result := db.Model(&models.Material{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		UpdateColumn("stock", gorm.Expr("stock + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMaterialNotFound
	}
	return nil
}

func (r *materialRepository) FindCategoryByID(db *gorm.DB, id string) (*models.MaterialCategory, error) {
	var category models.MaterialCategory
	if err := db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *materialRepository) ListCategories(db *gorm.DB) ([]models.MaterialCategory, error) {
	var categories []models.MaterialCategory
	err := db.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *materialRepository) CreateCategory(db *gorm.DB, category *models.MaterialCategory) error {
	return db.Create(category).Error
}

func (r *materialRepository) FindSupplierByID(db *gorm.DB, id string) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := db.First(&supplier, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

func (r *materialRepository) ListSuppliers(db *gorm.DB) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	err := db.Order("rating DESC, name ASC").Find(&suppliers).Error
	return suppliers, err
}

func (r *materialRepository) CreateSupplier(db *gorm.DB, supplier *models.Supplier) error {
	return db.Create(supplier).Error
}
