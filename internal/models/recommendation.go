package models

import "time"

// UserRecommendation is a scored suggestion surfaced to one user.
// Exactly one of MaterialID / CategoryID / ProjectType / SupplierID is set,
// depending on Type.
type UserRecommendation struct {
	BaseModel
	UserID      string               `gorm:"type:uuid;not null;index" json:"userId"`
	Type        RecommendationType   `gorm:"type:varchar(20);not null" json:"type"`
	MaterialID  *string              `gorm:"type:uuid;index" json:"materialId,omitempty"`
	CategoryID  *string              `gorm:"type:uuid;index" json:"categoryId,omitempty"`
	ProjectType *string              `gorm:"type:varchar(60)" json:"projectType,omitempty"`
	SupplierID  *string              `gorm:"type:uuid;index" json:"supplierId,omitempty"`
	Score       float64              `gorm:"not null" json:"score"`
	Reason      string               `gorm:"type:text" json:"reason,omitempty"`
	Status      RecommendationStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	ExpiresAt   *time.Time           `json:"expiresAt,omitempty"`
}

// RecommendationInteraction is an append-only audit row.
type RecommendationInteraction struct {
	BaseModel
	UserID           string          `gorm:"type:uuid;not null;index" json:"userId"`
	RecommendationID string          `gorm:"type:uuid;not null;index" json:"recommendationId"`
	InteractionType  InteractionType `gorm:"type:varchar(20);not null" json:"interactionType"`
}
