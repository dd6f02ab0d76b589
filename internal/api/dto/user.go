package dto

import "time"

// UserDTO public profile
type UserDTO struct {
	ID             uint64    `json:"id"`
	Username       string    `json:"username"`
	Fullname       string    `json:"fullname"`
	Bio            string    `json:"bio"`
	Location       string    `json:"location"`
	Website        string    `json:"website"`
	AvatarURL      string    `json:"avatarUrl"`
	CreatedAt      time.Time `json:"createdAt"`
	FollowerCount  int64     `json:"followerCount"`
	FollowingCount int64     `json:"followingCount"`
	IsFollowing    *bool     `json:"isFollowing,omitempty"`
}

// UpdateProfileDTO nil fields are left untouched
type UpdateProfileDTO struct {
	Fullname *string `json:"fullname,omitempty" validate:"omitempty,max=100"`
	Bio      *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=100"`
	Website  *string `json:"website,omitempty" validate:"omitempty,max=255"`
}

type AvatarResultDTO struct {
	AvatarURL string `json:"avatarUrl"`
}
