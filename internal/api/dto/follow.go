package dto

// Follow directions; an empty action toggles
const (
	FollowActionFollow   = "follow"
	FollowActionUnfollow = "unfollow"
)

type FollowActionDTO struct {
	Action string `json:"action,omitempty" validate:"omitempty,oneof=follow unfollow"`
}

type FollowResultDTO struct {
	FollowerID  uint64 `json:"followerId"`
	FollowingID uint64 `json:"followingId"`
	Action      string `json:"action"`
	Following   bool   `json:"following"`
}
