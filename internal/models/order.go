package models

type Order struct {
	BaseModel
	UserID          string      `gorm:"type:uuid;not null;index" json:"userId"`
	Status          OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Total           float64     `gorm:"not null;default:0" json:"total"`
	ShippingAddress string      `gorm:"type:text" json:"shippingAddress"`
	Notes           string      `gorm:"type:text" json:"notes,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

type OrderItem struct {
	BaseModel
	OrderID    string  `gorm:"type:uuid;not null;index" json:"orderId"`
	MaterialID string  `gorm:"type:uuid;not null;index" json:"materialId"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	UnitPrice  float64 `gorm:"not null" json:"unitPrice"`
	Subtotal   float64 `gorm:"not null" json:"subtotal"`

	Material *Material `gorm:"foreignKey:MaterialID" json:"material,omitempty"`
}
