package models

import "time"

// CalculationTemplate is a reusable material-estimation template users can
// browse and favorite.
type CalculationTemplate struct {
	BaseModelWithDeleted
	Name        string `gorm:"type:varchar(200);not null;index" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	ProjectType string `gorm:"type:varchar(60);index" json:"projectType"`
	CreatedBy   string `gorm:"type:uuid;not null;index" json:"createdBy"`
	Published   bool   `gorm:"not null;default:false;index" json:"published"`
	UsageCount  int    `gorm:"not null;default:0" json:"usageCount"`
}

// UserFavorite links a user to a template. Row existence is the whole state;
// the (user, template) pair is unique.
type UserFavorite struct {
	UserID     string    `gorm:"type:uuid;primaryKey" json:"userId"`
	TemplateID string    `gorm:"type:uuid;primaryKey" json:"templateId"`
	CreatedAt  time.Time `gorm:"default:now()" json:"createdAt"`
}

func (UserFavorite) TableName() string {
	return "user_favorites"
}
