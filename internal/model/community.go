package model

import "time"

type Community struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(30);uniqueIndex:idx_name;not null" json:"name"`
	DisplayName string    `gorm:"type:varchar(100);not null" json:"displayName"`
	Description string    `gorm:"type:text" json:"description"`
	Rules       string    `gorm:"type:text" json:"rules"`
	Icon        string    `gorm:"type:varchar(500)" json:"icon"`
	Banner      string    `gorm:"type:varchar(500)" json:"banner"`
	CreatorID   uint64    `gorm:"not null;index" json:"creatorId"`
	IsPrivate   bool      `gorm:"type:tinyint(1);not null;default:0" json:"isPrivate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Community) TableName() string {
	return "communities"
}

// Community member roles
const (
	MemberRoleMember    = "member"
	MemberRoleModerator = "moderator"
	MemberRoleAdmin     = "admin"
)

type CommunityMember struct {
	CommunityID uint64    `gorm:"primaryKey" json:"communityId"`
	UserID      uint64    `gorm:"primaryKey;index:idx_user_id" json:"userId"`
	Role        string    `gorm:"type:varchar(16);not null;default:'member'" json:"role"`
	JoinedAt    time.Time `gorm:"autoCreateTime" json:"joinedAt"`

	User *User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}

func (CommunityMember) TableName() string {
	return "community_members"
}
