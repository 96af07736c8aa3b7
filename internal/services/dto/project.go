package dto

import "time"

type CreateProjectRequest struct {
	Name      string     `json:"name" binding:"required" validate:"required,max=200"`
	Type      string     `json:"type" validate:"omitempty,max=60"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

type UpdateProjectRequest struct {
	Name      string     `json:"name" validate:"omitempty,max=200"`
	Type      string     `json:"type" validate:"omitempty,max=60"`
	Status    string     `json:"status"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

type CreatePhaseRequest struct {
	Name  string `json:"name" binding:"required" validate:"required,max=200"`
	Order int    `json:"order" validate:"omitempty,min=0"`
}

type CreateTaskRequest struct {
	Name     string     `json:"name" binding:"required" validate:"required,max=200"`
	Assignee *string    `json:"assignee" validate:"omitempty,uuid"`
	DueDate  *time.Time `json:"dueDate"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required" validate:"required,is-task-status"`
}
