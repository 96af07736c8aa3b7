package dto

type BudgetItemRequest struct {
	MaterialID string  `json:"materialId" binding:"required" validate:"required,uuid"`
	Quantity   float64 `json:"quantity" binding:"required" validate:"required,gt=0"`
	UnitPrice  float64 `json:"unitPrice" validate:"omitempty,min=0"`
}

type CreateBudgetRequest struct {
	Name      string              `json:"name" binding:"required" validate:"required,max=200"`
	ProjectID *string             `json:"projectId" validate:"omitempty,uuid"`
	Items     []BudgetItemRequest `json:"items" validate:"omitempty,dive"`
}

// ReplaceBudgetItemsRequest replaces the whole item set atomically.
type ReplaceBudgetItemsRequest struct {
	Items []BudgetItemRequest `json:"items" binding:"required" validate:"required,dive"`
}

type UpdateBudgetStatusRequest struct {
	Status string `json:"status" binding:"required" validate:"required,is-budget-status"`
}
