package model

import (
	"time"
)

type User struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(50);uniqueIndex:idx_username;not null" json:"username"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex:idx_email;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Fullname  string    `gorm:"type:varchar(100)" json:"fullname"`
	Bio       string    `gorm:"type:varchar(500)" json:"bio"`
	Location  string    `gorm:"type:varchar(100)" json:"location"`
	Website   string    `gorm:"type:varchar(255)" json:"website"`
	AvatarURL string    `gorm:"type:varchar(500)" json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserRoles []UserRole `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// Author public projection of a user embedded in posts, comments and search hits
type Author struct {
	ID        uint64 `json:"id"`
	Username  string `json:"username"`
	Fullname  string `json:"fullname"`
	AvatarURL string `json:"avatarUrl"`
}
