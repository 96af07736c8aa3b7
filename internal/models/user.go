package models

import "time"

type User struct {
	BaseModel
	Email             string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash      string     `gorm:"not null" json:"-"`
	Name              string     `gorm:"type:varchar(120)" json:"name"`
	Phone             string     `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Role              UserRole   `gorm:"type:varchar(20);not null" json:"role"`
	Status            UserStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	IsVerified        bool       `gorm:"default:false" json:"isVerified"`
	VerificationToken string     `json:"-"`
	ResetToken        string     `json:"-"`
	ResetTokenExp     *time.Time `json:"-"`

	// Relations
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
	Favorites     []UserFavorite `gorm:"foreignKey:UserID" json:"-"`
}

// RefreshToken is one session record. Rows are never deleted on logout:
// Revoked flips to true and stays true. A cleanup worker purges rows long
// past their expiry.
type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index" json:"userId"`
	Token     string    `gorm:"not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	Revoked   bool      `gorm:"not null;default:false;index" json:"revoked"`
}
