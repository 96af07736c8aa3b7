package repositories

import (
	"errors"

	"constru_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrTemplateNotFound = errors.New("calculation template not found")
)

type TemplateFilter struct {
	ProjectType string
	Published   *bool
	Search      string
	Page        int
	PageSize    int
}

type TemplateRepository interface {
	FindByID(db *gorm.DB, id string) (*models.CalculationTemplate, error)
	Exists(db *gorm.DB, id string) (bool, error)
	Create(db *gorm.DB, template *models.CalculationTemplate) error
	Update(db *gorm.DB, template *models.CalculationTemplate) error
	Delete(db *gorm.DB, id string) error
	FindWithFilter(db *gorm.DB, filter TemplateFilter) ([]models.CalculationTemplate, int64, error)
	IncrementUsage(db *gorm.DB, id string) error
}

type templateRepository struct{}

func NewTemplateRepository() TemplateRepository {
	return &templateRepository{}
}

func (r *templateRepository) FindByID(db *gorm.DB, id string) (*models.CalculationTemplate, error) {
	var template models.CalculationTemplate
	if err := db.First(&template, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return &template, nil
}

func (r *templateRepository) Exists(db *gorm.DB, id string) (bool, error) {
	var count int64
	err := db.Model(&models.CalculationTemplate{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *templateRepository) Create(db *gorm.DB, template *models.CalculationTemplate) error {
	return db.Create(template).Error
}

func (r *templateRepository) Update(db *gorm.DB, template *models.CalculationTemplate) error {
	result := db.Model(template).Updates(map[string]interface{}{
		"name":         template.Name,
		"description":  template.Description,
		"project_type": template.ProjectType,
		"published":    template.Published,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

func (r *templateRepository) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.CalculationTemplate{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

func (r *templateRepository) FindWithFilter(db *gorm.DB, filter TemplateFilter) ([]models.CalculationTemplate, int64, error) {
	query := db.Model(&models.CalculationTemplate{})

	if filter.ProjectType != "" {
		query = query.Where("project_type = ?", filter.ProjectType)
	}
	if filter.Published != nil {
		query = query.Where("published = ?", *filter.Published)
	}
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var templates []models.CalculationTemplate
	err := query.Order("usage_count DESC, created_at DESC").Find(&templates).Error
	return templates, total, err
}

func (r *templateRepository) IncrementUsage(db *gorm.DB, id string) error {
	return db.Model(&models.CalculationTemplate{}).
		Where("id = ?", id).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error
}
