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

// ProjectService manages construction projects with their phases and tasks.
// Ownership is enforced at the project level; phases and tasks inherit it.
type ProjectService interface {
	Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateProjectRequest) (*models.Project, error)
	GetByID(ctx context.Context, db *gorm.DB, userID string, isAdmin bool, id string) (*models.Project, error)
	List(ctx context.Context, db *gorm.DB, userID string, page, pageSize int) ([]models.Project, int64, error)
	Update(ctx context.Context, db *gorm.DB, userID string, id string, req *dto.UpdateProjectRequest) (*models.Project, error)
	Delete(ctx context.Context, db *gorm.DB, userID string, id string) error

	AddPhase(ctx context.Context, db *gorm.DB, userID string, projectID string, req *dto.CreatePhaseRequest) (*models.ProjectPhase, error)
	UpdatePhaseStatus(ctx context.Context, db *gorm.DB, userID string, projectID, phaseID string, status models.PhaseStatus) error
	DeletePhase(ctx context.Context, db *gorm.DB, userID string, projectID, phaseID string) error

	AddTask(ctx context.Context, db *gorm.DB, userID string, projectID, phaseID string, req *dto.CreateTaskRequest) (*models.ProjectTask, error)
	UpdateTaskStatus(ctx context.Context, db *gorm.DB, userID string, projectID, taskID string, status models.TaskStatus) (*models.ProjectTask, error)
	DeleteTask(ctx context.Context, db *gorm.DB, userID string, projectID, taskID string) error
}

type projectService struct {
	projectRepo repositories.ProjectRepository
}

func NewProjectService(projectRepo repositories.ProjectRepository) ProjectService {
	return &projectService{projectRepo: projectRepo}
}

func (s *projectService) Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateProjectRequest) (*models.Project, error) {
	project := &models.Project{
		UserID:    userID,
		Name:      req.Name,
		Type:      req.Type,
		Status:    models.ProjectStatusPlanning,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := s.projectRepo.Create(db, project); err != nil {
		return nil, apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "project created", "project_id", project.ID)
	return project, nil
}

func (s *projectService) GetByID(ctx context.Context, db *gorm.DB, userID string, isAdmin bool, id string) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if project.UserID != userID && !isAdmin {
		return nil, apperrors.ErrProjectNotFound
	}
	return project, nil
}

func (s *projectService) List(ctx context.Context, db *gorm.DB, userID string, page, pageSize int) ([]models.Project, int64, error) {
	projects, total, err := s.projectRepo.FindByUserID(db, userID, page, pageSize)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return projects, total, nil
}

func (s *projectService) Update(ctx context.Context, db *gorm.DB, userID string, id string, req *dto.UpdateProjectRequest) (*models.Project, error) {
	project, err := s.GetByID(ctx, db, userID, false, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		project.Name = req.Name
	}
	if req.Type != "" {
		project.Type = req.Type
	}
	if req.Status != "" {
		project.Status = models.ProjectStatus(req.Status)
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = req.EndDate
	}

	if err := s.projectRepo.Update(db, project); err != nil {
		if errors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, db *gorm.DB, userID string, id string) error {
	if _, err := s.GetByID(ctx, db, userID, false, id); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(db, id); err != nil {
		if errors.Is(err, repositories.ErrProjectNotFound) {
			return apperrors.ErrProjectNotFound
		}
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "project deleted", "project_id", id)
	return nil
}

func (s *projectService) AddPhase(ctx context.Context, db *gorm.DB, userID string, projectID string, req *dto.CreatePhaseRequest) (*models.ProjectPhase, error) {
	if _, err := s.GetByID(ctx, db, userID, false, projectID); err != nil {
		return nil, err
	}

	phase := &models.ProjectPhase{
		ProjectID: projectID,
		Name:      req.Name,
		Order:     req.Order,
		Status:    models.PhaseStatusPending,
	}
	if err := s.projectRepo.CreatePhase(db, phase); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return phase, nil
}

// ownedPhase loads the phase and checks it belongs to one of the caller's
// projects.
func (s *projectService) ownedPhase(ctx context.Context, db *gorm.DB, userID, projectID, phaseID string) (*models.ProjectPhase, error) {
	if _, err := s.GetByID(ctx, db, userID, false, projectID); err != nil {
		return nil, err
	}

	phase, err := s.projectRepo.FindPhaseByID(db, phaseID)
	if err != nil {
		if errors.Is(err, repositories.ErrPhaseNotFound) {
			return nil, apperrors.ErrPhaseNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if phase.ProjectID != projectID {
		return nil, apperrors.ErrPhaseNotFound
	}
	return phase, nil
}

func (s *projectService) UpdatePhaseStatus(ctx context.Context, db *gorm.DB, userID string, projectID, phaseID string, status models.PhaseStatus) error {
	if _, err := s.ownedPhase(ctx, db, userID, projectID, phaseID); err != nil {
		return err
	}
	if err := s.projectRepo.UpdatePhaseStatus(db, phaseID, status); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *projectService) DeletePhase(ctx context.Context, db *gorm.DB, userID string, projectID, phaseID string) error {
	if _, err := s.ownedPhase(ctx, db, userID, projectID, phaseID); err != nil {
		return err
	}
	if err := s.projectRepo.DeletePhase(db, phaseID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *projectService) AddTask(ctx context.Context, db *gorm.DB, userID string, projectID, phaseID string, req *dto.CreateTaskRequest) (*models.ProjectTask, error) {
	if _, err := s.ownedPhase(ctx, db, userID, projectID, phaseID); err != nil {
		return nil, err
	}

	task := &models.ProjectTask{
		PhaseID:  phaseID,
		Name:     req.Name,
		Status:   models.TaskStatusPending,
		Assignee: req.Assignee,
		DueDate:  req.DueDate,
	}
	if err := s.projectRepo.CreateTask(db, task); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return task, nil
}

func (s *projectService) UpdateTaskStatus(ctx context.Context, db *gorm.DB, userID string, projectID, taskID string, status models.TaskStatus) (*models.ProjectTask, error) {
	task, err := s.projectRepo.FindTaskByID(db, taskID)
	if err != nil {
		if errors.Is(err, repositories.ErrTaskNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if _, err := s.ownedPhase(ctx, db, userID, projectID, task.PhaseID); err != nil {
		return nil, err
	}

	task.Status = status
	if err := s.projectRepo.UpdateTask(db, task); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return task, nil
}

func (s *projectService) DeleteTask(ctx context.Context, db *gorm.DB, userID string, projectID, taskID string) error {
	task, err := s.projectRepo.FindTaskByID(db, taskID)
	if err != nil {
		if errors.Is(err, repositories.ErrTaskNotFound) {
			return apperrors.ErrTaskNotFound
		}
		return apperrors.InternalError(err)
	}

	if _, err := s.ownedPhase(ctx, db, userID, projectID, task.PhaseID); err != nil {
		return err
	}

	if err := s.projectRepo.DeleteTask(db, taskID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
