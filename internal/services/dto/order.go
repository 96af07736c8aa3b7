package dto

type OrderItemRequest struct {
	MaterialID string `json:"materialId" binding:"required" validate:"required,uuid"`
	Quantity   int    `json:"quantity" binding:"required" validate:"required,gt=0"`
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" binding:"required" validate:"required,min=1,dive"`
	ShippingAddress string             `json:"shippingAddress" validate:"omitempty,max=500"`
	Notes           string             `json:"notes" validate:"omitempty,max=1000"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required" validate:"required,is-order-status"`
}

type OrderListQuery struct {
	Status string `form:"status" validate:"omitempty,is-order-status"`
}
