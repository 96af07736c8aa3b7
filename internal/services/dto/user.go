package dto

type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"omitempty,min=2,max=120"`
	Phone string `json:"phone" validate:"omitempty,max=30"`
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required" validate:"required,oneof=pending active suspended"`
}

type UserListQuery struct {
	Role   string `form:"role" validate:"omitempty,is-user-role"`
	Status string `form:"status" validate:"omitempty,oneof=pending active suspended"`
	Search string `form:"q"`
}
