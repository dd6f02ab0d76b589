package es

import "time"

// PostDoc document stored in the post index
type PostDoc struct {
	ID          uint64    `json:"id"`
	UserID      uint64    `json:"user_id"`
	Username    string    `json:"username"`
	CommunityID *uint64   `json:"community_id,omitempty"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Status      string    `json:"status"`
	LikeCount   int64     `json:"like_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserDoc document stored in the user index
type UserDoc struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Fullname  string    `json:"fullname"`
	Bio       string    `json:"bio"`
	Location  string    `json:"location"`
	UpdatedAt time.Time `json:"updated_at"`
}
