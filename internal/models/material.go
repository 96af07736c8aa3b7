package models

type MaterialCategory struct {
	BaseModel
	Name     string  `gorm:"type:varchar(120);not null;uniqueIndex" json:"name"`
	ParentID *string `gorm:"type:uuid;index" json:"parentId,omitempty"`

	Parent *MaterialCategory `gorm:"foreignKey:ParentID" json:"-"`
}

type Supplier struct {
	BaseModel
	Name   string  `gorm:"type:varchar(160);not null" json:"name"`
	Email  string  `gorm:"type:varchar(160)" json:"email"`
	Phone  string  `gorm:"type:varchar(30)" json:"phone,omitempty"`
	City   string  `gorm:"type:varchar(80);index" json:"city"`
	Rating float64 `gorm:"default:0" json:"rating"`
}

type Material struct {
	BaseModel
	Code        string  `gorm:"type:varchar(40);not null;uniqueIndex" json:"code"`
	Name        string  `gorm:"type:varchar(200);not null;index" json:"name"`
	Description string  `gorm:"type:text" json:"description,omitempty"`
	CategoryID  string  `gorm:"type:uuid;not null;index" json:"categoryId"`
	SupplierID  string  `gorm:"type:uuid;not null;index" json:"supplierId"`
	Unit        string  `gorm:"type:varchar(20);not null" json:"unit"`
	Price       float64 `gorm:"not null" json:"price"`
	Stock       int     `gorm:"not null;default:0" json:"stock"`
	Active      bool    `gorm:"not null;default:true;index" json:"active"`

	Category *MaterialCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Supplier *Supplier         `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
}
