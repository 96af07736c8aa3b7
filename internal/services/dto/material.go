package dto

type CreateMaterialRequest struct {
	Code        string  `json:"code" binding:"required" validate:"required,max=40"`
	Name        string  `json:"name" binding:"required" validate:"required,max=200"`
	Description string  `json:"description"`
	CategoryID  string  `json:"categoryId" binding:"required" validate:"required,uuid"`
	SupplierID  string  `json:"supplierId" binding:"required" validate:"required,uuid"`
	Unit        string  `json:"unit" binding:"required" validate:"required,max=20"`
	Price       float64 `json:"price" binding:"required" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"omitempty,min=0"`
}

type UpdateMaterialRequest struct {
	Name        string   `json:"name" validate:"omitempty,max=200"`
	Description *string  `json:"description"`
	CategoryID  string   `json:"categoryId" validate:"omitempty,uuid"`
	SupplierID  string   `json:"supplierId" validate:"omitempty,uuid"`
	Unit        string   `json:"unit" validate:"omitempty,max=20"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Stock       *int     `json:"stock" validate:"omitempty,min=0"`
	Active      *bool    `json:"active"`
}

type MaterialSearchQuery struct {
	Search     string   `form:"q"`
	CategoryID string   `form:"categoryId" validate:"omitempty,uuid"`
	SupplierID string   `form:"supplierId" validate:"omitempty,uuid"`
	MinPrice   *float64 `form:"minPrice" validate:"omitempty,min=0"`
	MaxPrice   *float64 `form:"maxPrice" validate:"omitempty,min=0"`
}

type CreateCategoryRequest struct {
	Name     string  `json:"name" binding:"required" validate:"required,max=120"`
	ParentID *string `json:"parentId" validate:"omitempty,uuid"`
}

type CreateSupplierRequest struct {
	Name  string `json:"name" binding:"required" validate:"required,max=160"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"omitempty,max=30"`
	City  string `json:"city" validate:"omitempty,max=80"`
}
