package handlers

import (
	"constru_backend/internal/models"
	"constru_backend/internal/services"
	"constru_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// ProjectHandler exposes construction projects with phases and tasks.
type ProjectHandler struct {
	*BaseHandler
	projectService services.ProjectService
}

func NewProjectHandler(base *BaseHandler, projectService services.ProjectService) *ProjectHandler {
	return &ProjectHandler{BaseHandler: base, projectService: projectService}
}

func (h *ProjectHandler) RegisterRoutes(protected *gin.RouterGroup) {
	projects := protected.Group("/projects")
	{
		projects.POST("", h.Create)
		projects.GET("", h.List)
		projects.GET("/:projectId", h.Get)
		projects.PUT("/:projectId", h.Update)
		projects.DELETE("/:projectId", h.Delete)

		projects.POST("/:projectId/phases", h.AddPhase)
		projects.PATCH("/:projectId/phases/:phaseId/status", h.UpdatePhaseStatus)
		projects.DELETE("/:projectId/phases/:phaseId", h.DeletePhase)

		projects.POST("/:projectId/phases/:phaseId/tasks", h.AddTask)
		projects.PATCH("/:projectId/tasks/:taskId/status", h.UpdateTaskStatus)
		projects.DELETE("/:projectId/tasks/:taskId", h.DeleteTask)
	}
}

// Create godoc
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateProjectRequest true "Project data"
// @Success      201 {object} SuccessResponse{data=models.Project}
// @Router       /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondCreated(c, project)
}

// List godoc
// @Summary      List the current user's projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} PaginatedResponse
// @Router       /projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	page, pageSize := h.ParsePagination(c)
	projects, total, err := h.projectService.List(c.Request.Context(), h.GetDB(c), userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondPaginated(c, projects, total, page, pageSize)
}

// Get godoc
// @Summary      Get a project with phases and tasks
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        projectId path string true "Project ID"
// @Success      200 {object} SuccessResponse{data=models.Project}
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /projects/{projectId} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	project, err := h.projectService.GetByID(c.Request.Context(), h.GetDB(c), userID, h.IsAdmin(c), c.Param("projectId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, project)
}

// Update godoc
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        projectId path string true "Project ID"
// @Param        request body dto.UpdateProjectRequest true "Changes"
// @Success      200 {object} SuccessResponse{data=models.Project}
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /projects/{projectId} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), h.GetDB(c), userID, c.Param("projectId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, project)
}

// Delete godoc
// @Summary      Delete a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        projectId path string true "Project ID"
// @Success      200 {object} SuccessResponse
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /projects/{projectId} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), h.GetDB(c), userID, c.Param("projectId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondMessage(c, "Project deleted")
}

// AddPhase godoc
// @Summary      Add a phase to a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        projectId path string true "Project ID"
// @Param        request body dto.CreatePhaseRequest true "Phase data"
// @Success      201 {object} SuccessResponse{data=models.ProjectPhase}
// @Router       /projects/{projectId}/phases [post]
func (h *ProjectHandler) AddPhase(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePhaseRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	phase, err := h.projectService.AddPhase(c.Request.Context(), h.GetDB(c), userID, c.Param("projectId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondCreated(c, phase)
}

// UpdatePhaseStatus godoc
// @Summary      Change a phase's status
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        projectId path string true "Project ID"
// @Param        phaseId path string true "Phase ID"
// @Param        request body dto.UpdateTaskStatusRequest true "New status"
// @Success      200 {object} SuccessResponse
// @Router       /projects/{projectId}/phases/{phaseId}/status [patch]
func (h *ProjectHandler) UpdatePhaseStatus(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	err := h.projectService.UpdatePhaseStatus(c.Request.Context(), h.GetDB(c), userID,
		c.Param("projectId"), c.Param("phaseId"), models.PhaseStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondMessage(c, "Phase status updated")
}

// DeletePhase godoc
// @Summary      Delete a phase
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        projectId path string true "Project ID"
// @Param        phaseId path string true "Phase ID"
// @Success      200 {object} SuccessResponse
// @Router       /projects/{projectId}/phases/{phaseId} [delete]
func (h *ProjectHandler) DeletePhase(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	err := h.projectService.DeletePhase(c.Request.Context(), h.GetDB(c), userID,
		c.Param("projectId"), c.Param("phaseId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondMessage(c, "Phase deleted")
}

// AddTask godoc
// @Summary      Add a task to a phase
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        projectId path string true "Project ID"
// @Param        phaseId path string true "Phase ID"
// @Param        request body dto.CreateTaskRequest true "Task data"
// @Success      201 {object} SuccessResponse{data=models.ProjectTask}
// @Router       /projects/{projectId}/phases/{phaseId}/tasks [post]
func (h *ProjectHandler) AddTask(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	task, err := h.projectService.AddTask(c.Request.Context(), h.GetDB(c), userID,
		c.Param("projectId"), c.Param("phaseId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondCreated(c, task)
}

// UpdateTaskStatus godoc
// @Summary      Change a task's status
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        projectId path string true "Project ID"
// @Param        taskId path string true "Task ID"
// @Param        request body dto.UpdateTaskStatusRequest true "New status"
// @Success      200 {object} SuccessResponse{data=models.ProjectTask}
// @Router       /projects/{projectId}/tasks/{taskId}/status [patch]
func (h *ProjectHandler) UpdateTaskStatus(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	task, err := h.projectService.UpdateTaskStatus(c.Request.Context(), h.GetDB(c), userID,
		c.Param("projectId"), c.Param("taskId"), models.TaskStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, task)
}

// DeleteTask godoc
// @Summary      Delete a task
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        projectId path string true "Project ID"
// @Param        taskId path string true "Task ID"
// @Success      200 {object} SuccessResponse
// @Router       /projects/{projectId}/tasks/{taskId} [delete]
func (h *ProjectHandler) DeleteTask(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	err := h.projectService.DeleteTask(c.Request.Context(), h.GetDB(c), userID,
		c.Param("projectId"), c.Param("taskId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondMessage(c, "Task deleted")
}
