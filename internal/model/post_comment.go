package model

import (
	"time"
)

type PostComment struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	PostID    uint64    `gorm:"not null;index:idx_post_id" json:"postId"`
	UserID    uint64    `gorm:"not null;index:idx_user_id" json:"userId"`
	Content   string    `gorm:"type:varchar(1000);not null" json:"content"`
	Status    string    `gorm:"type:varchar(16);not null;default:'pending';index:idx_status" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	Post *Post `gorm:"foreignKey:PostID;references:ID" json:"post,omitempty"`
}

func (PostComment) TableName() string {
	return "comments"
}
