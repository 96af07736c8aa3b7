package models

import "time"

type Project struct {
	BaseModel
	UserID    string        `gorm:"type:uuid;not null;index" json:"userId"`
	Name      string        `gorm:"type:varchar(200);not null" json:"name"`
	Type      string        `gorm:"type:varchar(60);index" json:"type"`
	Status    ProjectStatus `gorm:"type:varchar(20);not null;default:'planning';index" json:"status"`
	StartDate *time.Time    `json:"startDate,omitempty"`
	EndDate   *time.Time    `json:"endDate,omitempty"`

	Phases []ProjectPhase `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"phases,omitempty"`
}

type ProjectPhase struct {
	BaseModel
	ProjectID string      `gorm:"type:uuid;not null;index" json:"projectId"`
	Name      string      `gorm:"type:varchar(200);not null" json:"name"`
	Order     int         `gorm:"column:phase_order;not null;default:0" json:"order"`
	Status    PhaseStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	Tasks []ProjectTask `gorm:"foreignKey:PhaseID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
}

type ProjectTask struct {
	BaseModel
	PhaseID  string     `gorm:"type:uuid;not null;index" json:"phaseId"`
	Name     string     `gorm:"type:varchar(200);not null" json:"name"`
	Status   TaskStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Assignee *string    `gorm:"type:uuid" json:"assignee,omitempty"`
	DueDate  *time.Time `json:"dueDate,omitempty"`
}
