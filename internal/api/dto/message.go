package dto

import (
	"Bastion/internal/model"
	"time"
)

type SendMessageDTO struct {
	ReceiverID uint64 `json:"receiver_id" binding:"required"`
	Message    string `json:"message" binding:"required" validate:"max=5000"`
}

type MarkReadDTO struct {
	SenderID uint64 `json:"sender_id" binding:"required"`
}

type MessageDTO struct {
	ID           uint64    `json:"id"`
	SenderID     uint64    `json:"senderId"`
	ReceiverID   uint64    `json:"receiverId"`
	Message      string    `json:"message"`
	IsRead       bool      `json:"isRead"`
	Timestamp    time.Time `json:"timestamp"`
	IsOwnMessage bool      `json:"isOwnMessage"`
}

// ConversationDTO latest message exchanged with one partner
type ConversationDTO struct {
	Partner     *model.Author `json:"partner"`
	LastMessage *MessageDTO   `json:"lastMessage"`
}

type MarkReadResultDTO struct {
	ReaderID uint64 `json:"readerId"`
	Count    int64  `json:"count"`
}
