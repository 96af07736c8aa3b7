package dto

import "constru_backend/internal/models"

type CreateTemplateRequest struct {
	Name        string `json:"name" binding:"required" validate:"required,max=200"`
	Description string `json:"description"`
	ProjectType string `json:"projectType" validate:"omitempty,max=60"`
	Published   bool   `json:"published"`
}

type UpdateTemplateRequest struct {
	Name        string  `json:"name" validate:"omitempty,max=200"`
	Description *string `json:"description"`
	ProjectType string  `json:"projectType" validate:"omitempty,max=60"`
	Published   *bool   `json:"published"`
}

type TemplateListQuery struct {
	ProjectType string `form:"projectType"`
	Search      string `form:"q"`
	Published   *bool  `form:"published"`
}

// TemplateDetail is a template as seen by one user: the row itself plus
// that user's favorite flag and the overall favorite count.
type TemplateDetail struct {
	*models.CalculationTemplate
	Favorited     bool  `json:"favorited"`
	FavoriteCount int64 `json:"favoriteCount"`
}

// ToggleFavoriteResponse reports the state after the toggle, not before.
type ToggleFavoriteResponse struct {
	TemplateID    string `json:"templateId"`
	Favorited     bool   `json:"favorited"`
	FavoriteCount int64  `json:"favoriteCount"`
}
