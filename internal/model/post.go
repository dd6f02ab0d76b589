package model

import (
	"time"
)

// Moderation status shared by posts and comments
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Post struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	UserID      uint64    `gorm:"not null;index:idx_user_id" json:"userId"`
	CommunityID *uint64   `gorm:"index:idx_community_id" json:"communityId,omitempty"`
	Title       string    `gorm:"type:varchar(255)" json:"title"`
	Content     string    `gorm:"type:text" json:"content"`
	MediaURL    string    `gorm:"type:varchar(500)" json:"mediaUrl,omitempty"`
	MediaType   string    `gorm:"type:varchar(20)" json:"mediaType,omitempty"`
	LikeCount   int64     `gorm:"not null;default:0" json:"likeCount"`
	Status      string    `gorm:"type:varchar(16);not null;default:'pending';index:idx_status_created,priority:1" json:"status"`
	CreatedAt   time.Time `gorm:"index:idx_status_created,priority:2" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}

func (Post) TableName() string {
	return "posts"
}
