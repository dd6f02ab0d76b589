package model

import "time"

// NotificationKind
const (
	KindLike          = "like"
	KindComment       = "comment"
	KindFollow        = "follow"
	KindMention       = "mention"
	KindSystem        = "system"
	KindPostCreate    = "post_create"
	KindProfileUpdate = "profile_update"
)

// Notification is addressed to RecipientID, or to everyone when IsUniversal is set
type Notification struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	RecipientID *uint64   `gorm:"index:idx_recipient_read,priority:1" json:"recipientUserId,omitempty"`
	SenderID    *uint64   `json:"senderUserId,omitempty"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	Kind        string    `gorm:"type:varchar(32);not null;default:'system'" json:"kind"`
	IsRead      bool      `gorm:"type:tinyint(1);not null;default:0;index:idx_recipient_read,priority:2" json:"isRead"`
	IsUniversal bool      `gorm:"type:tinyint(1);not null;default:0;index" json:"isUniversal"`
	SourceID    *uint64   `json:"sourceEntityId,omitempty"`
	SourceKind  *string   `gorm:"type:varchar(32)" json:"sourceEntityKind,omitempty"`
	Link        *string   `gorm:"type:varchar(500)" json:"link,omitempty"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Notification) TableName() string {
	return "notifications"
}
