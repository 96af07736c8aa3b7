package repositories

import (
	"errors"

	"constru_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrPhaseNotFound   = errors.New("project phase not found")
	ErrTaskNotFound    = errors.New("project task not found")
)

type ProjectRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Project, error)
	Create(db *gorm.DB, project *models.Project) error
	Update(db *gorm.DB, project *models.Project) error
	Delete(db *gorm.DB, id string) error
	FindByUserID(db *gorm.DB, userID string, page, pageSize int) ([]models.Project, int64, error)

	// ProjectTypeCounts aggregates a user's projects by type for the
	// behavior-pattern analysis.
	ProjectTypeCounts(db *gorm.DB, userID string, days int) (map[string]int64, error)

	// Phases
	FindPhaseByID(db *gorm.DB, id string) (*models.ProjectPhase, error)
	CreatePhase(db *gorm.DB, phase *models.ProjectPhase) error
	UpdatePhaseStatus(db *gorm.DB, id string, status models.PhaseStatus) error
	DeletePhase(db *gorm.DB, id string) error

	// Tasks
	FindTaskByID(db *gorm.DB, id string) (*models.ProjectTask, error)
	CreateTask(db *gorm.DB, task *models.ProjectTask) error
	UpdateTask(db *gorm.DB, task *models.ProjectTask) error
	DeleteTask(db *gorm.DB, id string) error
}

type projectRepository struct{}

func NewProjectRepository() ProjectRepository {
	return &projectRepository{}
}

func (r *projectRepository) FindByID(db *gorm.DB, id string) (*models.Project, error) {
	var project models.Project
	err := db.Preload("Phases", func(db *gorm.DB) *gorm.DB {
		return db.Order("project_phases.phase_order ASC")
	}).Preload("Phases.Tasks").First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) Create(db *gorm.DB, project *models.Project) error {
	return db.Create(project).Error
}

func (r *projectRepository) Update(db *gorm.DB, project *models.Project) error {
	result := db.Model(project).Updates(map[string]interface{}{
		"name":       project.Name,
		"type":       project.Type,
		"status":     project.Status,
		"start_date": project.StartDate,
		"end_date":   project.EndDate,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *projectRepository) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Project{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *projectRepository) FindByUserID(db *gorm.DB, userID string, page, pageSize int) ([]models.Project, int64, error) {
	query := db.Model(&models.Project{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page > 0 && pageSize > 0 {
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	var projects []models.Project
	err := query.Order("created_at DESC").Find(&projects).Error
	return projects, total, err
}

func (r *projectRepository) ProjectTypeCounts(db *gorm.DB, userID string, days int) (map[string]int64, error) {
	var rows []struct {
		Type  string
		Count int64
	}
	err := db.Model(&models.Project{}).
		Select("type, COUNT(*) AS count").
		Where("user_id = ? AND type <> '' AND created_at > NOW() - make_interval(days => ?)", userID, days).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Type] = row.Count
	}
	return counts, nil
}

// Phases

func (r *projectRepository) FindPhaseByID(db *gorm.DB, id string) (*models.ProjectPhase, error) {
	var phase models.ProjectPhase
	if err := db.Preload("Tasks").First(&phase, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhaseNotFound
		}
		return nil, err
	}
	return &phase, nil
}

func (r *projectRepository) CreatePhase(db *gorm.DB, phase *models.ProjectPhase) error {
	return db.Create(phase).Error
}

func (r *projectRepository) UpdatePhaseStatus(db *gorm.DB, id string, status models.PhaseStatus) error {
	result := db.Model(&models.ProjectPhase{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPhaseNotFound
	}
	return nil
}

func (r *projectRepository) DeletePhase(db *gorm.DB, id string) error {
	result := db.Delete(&models.ProjectPhase{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPhaseNotFound
	}
	return nil
}

// Tasks

func (r *projectRepository) FindTaskByID(db *gorm.DB, id string) (*models.ProjectTask, error) {
	var task models.ProjectTask
	if err := db.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *projectRepository) CreateTask(db *gorm.DB, task *models.ProjectTask) error {
	return db.Create(task).Error
}

func (r *projectRepository) UpdateTask(db *gorm.DB, task *models.ProjectTask) error {
	result := db.Model(task).Updates(map[string]interface{}{
		"name":     task.Name,
		"status":   task.Status,
		"assignee": task.Assignee,
		"due_date": task.DueDate,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *projectRepository) DeleteTask(db *gorm.DB, id string) error {
	result := db.Delete(&models.ProjectTask{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
