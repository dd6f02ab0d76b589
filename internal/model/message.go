package model

import "time"

type Message struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	SenderID   uint64    `gorm:"not null;index:idx_pair,priority:1" json:"senderId"`
	ReceiverID uint64    `gorm:"not null;index:idx_pair,priority:2;index:idx_receiver_read,priority:1" json:"receiverId"`
	Message    string    `gorm:"type:text;not null" json:"message"`
	IsRead     bool      `gorm:"type:tinyint(1);not null;default:0;index:idx_receiver_read,priority:2" json:"isRead"`
	CreatedAt  time.Time `gorm:"index" json:"timestamp"`
}

func (Message) TableName() string {
	return "messages"
}
