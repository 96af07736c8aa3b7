package models

import "time"

type Invoice struct {
	BaseModel
	OrderID   string        `gorm:"type:uuid;not null;uniqueIndex" json:"orderId"`
	UserID    string        `gorm:"type:uuid;not null;index" json:"userId"`
	Number    string        `gorm:"type:varchar(40);not null;uniqueIndex" json:"number"`
	Amount    float64       `gorm:"not null" json:"amount"`
	TaxAmount float64       `gorm:"not null;default:0" json:"taxAmount"`
	Status    InvoiceStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	IssuedAt  *time.Time    `json:"issuedAt,omitempty"`
	PaidAt    *time.Time    `json:"paidAt,omitempty"`

	Order *Order `gorm:"foreignKey:OrderID" json:"order,omitempty"`
}
