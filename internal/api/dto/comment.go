package dto

import (
	"Bastion/internal/model"
	"time"
)

type CreateCommentDTO struct {
	Content string `json:"content" binding:"required" validate:"max=1000"`
}

type CommentDTO struct {
	ID        uint64        `json:"id"`
	PostID    uint64        `json:"postId"`
	UserID    uint64        `json:"userId"`
	Content   string        `json:"content"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	Author    *model.Author `json:"author,omitempty"`
}
