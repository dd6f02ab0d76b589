package dto

type UniversalNotificationDTO struct {
	Title   string `json:"title" binding:"required" validate:"max=255"`
	Message string `json:"message" binding:"required"`
	Link    string `json:"link,omitempty" validate:"omitempty,max=500"`
}

// NotificationEventDTO payload of newNotification
type NotificationEventDTO struct {
	ID      uint64 `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
	Link    string `json:"link,omitempty"`
}

type UnreadCountDTO struct {
	Count int64 `json:"count"`
}
