package dto

import "time"

type RecommendationListQuery struct {
	Status string `form:"status" validate:"omitempty,is-recommendation-status"`
	Limit  int    `form:"limit" validate:"omitempty,min=1,max=100"`
}

type UpdateRecommendationStatusRequest struct {
	Status string `json:"status" binding:"required" validate:"required,is-recommendation-status"`
}

type LogInteractionRequest struct {
	InteractionType string `json:"interactionType" binding:"required" validate:"required,is-interaction-type"`
}

// BehaviorPattern is the derived activity profile used by the recommendation
// engine. It is computed, never stored.
type BehaviorPattern struct {
	UserID            string             `json:"userId"`
	WindowDays        int                `json:"windowDays"`
	TopCategories     []CategoryActivity `json:"topCategories"`
	TopSearchTerms    []SearchActivity   `json:"topSearchTerms"`
	FavoriteCount     int                `json:"favoriteCount"`
	OrderCount        int                `json:"orderCount"`
	Interactions      map[string]int     `json:"interactions"`
	PreferredProjects []string           `json:"preferredProjects"`
	ComputedAt        time.Time          `json:"computedAt"`
}

type CategoryActivity struct {
	CategoryID string `json:"categoryId"`
	Count      int    `json:"count"`
}

type SearchActivity struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}
