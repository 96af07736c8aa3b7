package models

type Budget struct {
	BaseModel
	UserID    string       `gorm:"type:uuid;not null;index" json:"userId"`
	ProjectID *string      `gorm:"type:uuid;index" json:"projectId,omitempty"`
	Name      string       `gorm:"type:varchar(200);not null" json:"name"`
	Status    BudgetStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	Total     float64      `gorm:"not null;default:0" json:"total"`

	Items []BudgetItem `gorm:"foreignKey:BudgetID;constraint:OnDelete:CASCADE" json:"items"`
}

type BudgetItem struct {
	BaseModel
	BudgetID   string  `gorm:"type:uuid;not null;index" json:"budgetId"`
	MaterialID string  `gorm:"type:uuid;not null;index" json:"materialId"`
	Quantity   float64 `gorm:"not null" json:"quantity"`
	UnitPrice  float64 `gorm:"not null" json:"unitPrice"`

	Material *Material `gorm:"foreignKey:MaterialID" json:"material,omitempty"`
}
