package dto

import "time"

type AIChatDTO struct {
	Message string `json:"message" binding:"required" validate:"max=4000"`
}

type AIChatResultDTO struct {
	Response string `json:"response"`
}

type AIMessageDTO struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
