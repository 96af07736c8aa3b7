package models

// SearchLog records one catalog search, feeding behavior-pattern analysis.
type SearchLog struct {
	BaseModel
	UserID  string `gorm:"type:uuid;not null;index" json:"userId"`
	Term    string `gorm:"type:varchar(200);not null" json:"term"`
	Results int    `gorm:"not null;default:0" json:"results"`
}
