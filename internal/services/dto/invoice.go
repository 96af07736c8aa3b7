package dto

type IssueInvoiceRequest struct {
	OrderID string  `json:"orderId" binding:"required" validate:"required,uuid"`
	TaxRate float64 `json:"taxRate" validate:"omitempty,min=0,max=1"`
}
