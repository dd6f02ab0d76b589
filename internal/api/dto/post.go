package dto

import (
	"Bastion/internal/model"
	"time"
)

type CreatePostDTO struct {
	Title       string  `json:"title" validate:"max=255"`
	Content     string  `json:"content" validate:"max=10000"`
	MediaURL    string  `json:"media_url,omitempty" validate:"omitempty,url,max=500"`
	MediaType   string  `json:"media_type,omitempty" validate:"omitempty,oneof=image video"`
	CommunityID *uint64 `json:"community_id,omitempty"`
}

type UpdatePostDTO struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,max=255"`
	Content *string `json:"content,omitempty" validate:"omitempty,max=10000"`
}

// PostDTO post with its author
type PostDTO struct {
	ID          uint64        `json:"id"`
	UserID      uint64        `json:"userId"`
	CommunityID *uint64       `json:"communityId,omitempty"`
	Title       string        `json:"title"`
	Content     string        `json:"content"`
	MediaURL    string        `json:"mediaUrl,omitempty"`
	MediaType   string        `json:"mediaType,omitempty"`
	LikeCount   int64         `json:"likeCount"`
	Status      string        `json:"status"`
	IsLiked     bool          `json:"isLiked"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	Author      *model.Author `json:"author,omitempty"`
}

type FeedDTO struct {
	Posts      []*PostDTO `json:"posts"`
	NextCursor uint64     `json:"nextCursor,omitempty"`
}

type LikeResultDTO struct {
	PostID    uint64 `json:"post_id"`
	Liked     bool   `json:"liked"`
	LikeCount int64  `json:"like_count"`
}
